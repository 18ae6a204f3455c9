package application

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"hackathon-ideas/internal/domain"
)

var ErrStopped = errors.New("orchestrator stopped")

type envelope struct {
	event Event
	done  chan State
}

// Orchestrator runs the single event loop that owns State. User actions and
// adapter results are queued and applied one at a time.
type Orchestrator struct {
	generator   IdeaGenerator
	synthesizer SpeechSynthesizer
	recognizer  SpeechRecognizer
	player      AudioPlayer
	store       SnapshotStore
	notifier    Notifier
	logger      *slog.Logger

	initialRules string
	events       chan envelope
	stopped      chan struct{}

	// Loop-owned.
	state      State
	pending    []Event
	playback   Playback
	playbackID int

	mu        sync.RWMutex
	published State
	lastAudio []byte
}

func NewOrchestrator(
	generator IdeaGenerator,
	synthesizer SpeechSynthesizer,
	recognizer SpeechRecognizer,
	player AudioPlayer,
	store SnapshotStore,
	notifier Notifier,
	initialRules string,
	logger *slog.Logger,
) *Orchestrator {
	if recognizer == nil {
		recognizer = &NoopRecognizer{}
	}
	if notifier == nil {
		notifier = &NoopNotifier{}
	}
	return &Orchestrator{
		generator:    generator,
		synthesizer:  synthesizer,
		recognizer:   recognizer,
		player:       player,
		store:        store,
		notifier:     notifier,
		logger:       logger,
		initialRules: initialRules,
		events:       make(chan envelope, 32),
		stopped:      make(chan struct{}),
		published:    NewState(initialRules, false),
	}
}

func (o *Orchestrator) Run(ctx context.Context) error {
	defer close(o.stopped)

	o.state = NewState(o.initialRules, o.recognizer.Available())
	if !o.state.SpeechSupported {
		o.logger.Info("speech capture not supported, recording disabled")
	}

	ideas, err := o.store.Load(ctx)
	switch {
	case err == nil:
		o.apply(ctx, SnapshotLoaded{Ideas: ideas})
		o.logger.Info("loaded saved ideas", "count", len(ideas))
	case errors.Is(err, domain.ErrSnapshotNotFound):
	default:
		o.logger.Warn("loading saved ideas", "error", err)
	}
	o.publish()

	o.logger.Info("orchestrator ready")

	for {
		select {
		case <-ctx.Done():
			o.shutdown()
			return ctx.Err()
		case env := <-o.events:
			o.apply(ctx, env.event)
			state := o.publish()
			if env.done != nil {
				env.done <- state
			}
		}
	}
}

// State returns a copy of the latest state.
func (o *Orchestrator) State() State {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.published.clone()
}

// LastAudio returns the most recently synthesized narration, if any.
func (o *Orchestrator) LastAudio() []byte {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.lastAudio
}

func (o *Orchestrator) SetRules(ctx context.Context, text string) (State, error) {
	return o.Dispatch(ctx, EditRules{Text: text})
}

func (o *Orchestrator) ToggleRecording(ctx context.Context) (State, error) {
	return o.Dispatch(ctx, ToggleRecording{})
}

func (o *Orchestrator) Generate(ctx context.Context) (State, error) {
	return o.Dispatch(ctx, GenerateIdeas{})
}

func (o *Orchestrator) ReadAloud(ctx context.Context) (State, error) {
	return o.Dispatch(ctx, ReadAloud{})
}

func (o *Orchestrator) Save(ctx context.Context) (State, error) {
	return o.Dispatch(ctx, SaveIdeas{})
}

// Dispatch queues an event and waits until the loop has applied it. The
// returned state does not include the outcome of any work the event started.
func (o *Orchestrator) Dispatch(ctx context.Context, ev Event) (State, error) {
	env := envelope{event: ev, done: make(chan State, 1)}
	select {
	case o.events <- env:
	case <-ctx.Done():
		return State{}, ctx.Err()
	case <-o.stopped:
		return State{}, ErrStopped
	}

	select {
	case state := <-env.done:
		return state, nil
	case <-ctx.Done():
		return State{}, ctx.Err()
	case <-o.stopped:
		return State{}, ErrStopped
	}
}

func (o *Orchestrator) apply(ctx context.Context, ev Event) {
	o.pending = append(o.pending, ev)
	for len(o.pending) > 0 {
		next := o.pending[0]
		o.pending = o.pending[1:]

		var effects []Effect
		o.state, effects = Reduce(o.state, next)
		for _, eff := range effects {
			o.run(ctx, eff)
		}
	}
}

func (o *Orchestrator) publish() State {
	state := o.state.clone()
	o.mu.Lock()
	o.published = state
	o.mu.Unlock()
	return state.clone()
}

// post delivers a result from a background goroutine.
func (o *Orchestrator) post(ctx context.Context, ev Event) {
	select {
	case o.events <- envelope{event: ev}:
	case <-ctx.Done():
	case <-o.stopped:
	}
}

func (o *Orchestrator) run(ctx context.Context, eff Effect) {
	switch eff := eff.(type) {
	case StartRecognition:
		o.startRecognition(ctx, eff.Session)

	case StopRecognition:
		if err := o.recognizer.Stop(); err != nil {
			o.logger.Warn("stopping speech recognition", "error", err)
		}

	case RequestIdeas:
		go o.generate(ctx, eff.Rules)

	case RequestAudio:
		go o.synthesize(ctx, eff.Text)

	case StartPlayback:
		o.startPlayback(ctx, eff.ID, eff.Audio)

	case StopPlayback:
		o.releasePlayback()
		o.logger.Info("playback stopped")

	case ReleasePlayback:
		if o.playbackID == eff.ID {
			o.releasePlayback()
		}

	case PersistSnapshot:
		go o.persist(ctx, eff.Batch, eff.Ideas)

	case NotifyIdeas:
		go func() {
			if err := o.notifier.Notify(ctx, ideasReadyMessage(eff.Ideas)); err != nil {
				o.logger.Error("notifying ideas", "error", err)
			}
		}()
	}
}

func (o *Orchestrator) startRecognition(ctx context.Context, session int) {
	results, err := o.recognizer.Start(ctx)
	if err != nil {
		o.logger.Error("starting speech recognition", "error", err)
		o.pending = append(o.pending, RecognitionFailed{Session: session, Detail: err.Error()})
		return
	}
	o.logger.Info("recording started", "session", session)

	go func() {
		for ev := range results {
			switch ev.Kind {
			case domain.RecognitionTranscript:
				o.post(ctx, TranscriptFinalized{Session: session, Text: ev.Text})
			case domain.RecognitionError:
				o.logger.Error("speech recognition", "error", ev.Err)
				o.post(ctx, RecognitionFailed{Session: session, Detail: errText(ev.Err)})
			}
		}
		o.post(ctx, RecognitionEnded{Session: session})
	}()
}

func (o *Orchestrator) generate(ctx context.Context, rules string) {
	logger := o.logger.With("request_id", uuid.NewString())
	logger.Info("generating ideas", "rules_chars", len(rules))

	ideas, err := o.generator.Generate(ctx, rules)
	if err != nil {
		logger.Error("generating ideas", "error", err)
		o.post(ctx, GenerationFailed{Err: err})
		return
	}

	logger.Info("ideas generated", "count", len(ideas))
	o.post(ctx, IdeasGenerated{Ideas: ideas})
}

func (o *Orchestrator) synthesize(ctx context.Context, text string) {
	audio, err := o.synthesizer.Synthesize(ctx, text)
	if err != nil {
		o.logger.Error("synthesizing speech", "error", err)
		o.post(ctx, AudioFetchFailed{Err: err})
		return
	}

	o.logger.Info("speech synthesized", "bytes", len(audio))
	o.post(ctx, AudioFetched{Audio: audio})
}

func (o *Orchestrator) startPlayback(ctx context.Context, id int, audio []byte) {
	o.releasePlayback()

	o.mu.Lock()
	o.lastAudio = audio
	o.mu.Unlock()

	pb, err := o.player.Play(ctx, audio)
	if err != nil {
		o.logger.Error("starting playback", "error", err)
		o.pending = append(o.pending, PlaybackFailed{ID: id, Err: err})
		return
	}
	o.playback = pb
	o.playbackID = id

	go func() {
		if err := pb.Wait(); err != nil {
			o.logger.Error("playback", "error", err)
			o.post(ctx, PlaybackFailed{ID: id, Err: err})
			return
		}
		o.post(ctx, PlaybackEnded{ID: id})
	}()
}

func (o *Orchestrator) releasePlayback() {
	if o.playback == nil {
		return
	}
	if err := o.playback.Stop(); err != nil {
		o.logger.Warn("releasing playback", "error", err)
	}
	o.playback = nil
	o.playbackID = 0
}

func (o *Orchestrator) persist(ctx context.Context, batch int, ideas []domain.Idea) {
	if err := o.store.Save(ctx, ideas); err != nil {
		o.logger.Error("saving ideas", "error", err)
		o.post(ctx, SnapshotSaveFailed{Batch: batch, Err: err})
		return
	}
	o.logger.Info("ideas saved", "count", len(ideas))
	o.post(ctx, SnapshotSaved{Batch: batch})
}

func (o *Orchestrator) shutdown() {
	o.releasePlayback()
	if o.state.Recording {
		if err := o.recognizer.Stop(); err != nil {
			o.logger.Warn("stopping speech recognition", "error", err)
		}
	}
}
