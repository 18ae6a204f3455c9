package speech

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"hackathon-ideas/internal/domain"
)

type UtteranceSource interface {
	Available() bool
	Open() error
	Close() error
	NextUtterance(ctx context.Context) ([]byte, error)
}

type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// DictationRecognizer records utterances from a local source and transcribes
// each one; every transcription is a finalized fragment.
type DictationRecognizer struct {
	source UtteranceSource
	stt    Transcriber
	logger *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewDictationRecognizer(source UtteranceSource, stt Transcriber, logger *slog.Logger) *DictationRecognizer {
	return &DictationRecognizer{
		source: source,
		stt:    stt,
		logger: logger,
	}
}

func (d *DictationRecognizer) Available() bool {
	return d.source.Available()
}

func (d *DictationRecognizer) Start(ctx context.Context) (<-chan domain.RecognitionEvent, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cancel != nil {
		return nil, fmt.Errorf("dictation already running")
	}

	if err := d.source.Open(); err != nil {
		return nil, fmt.Errorf("opening audio source: %w", err)
	}

	sessionCtx, cancel := context.WithCancel(ctx)
	results := make(chan domain.RecognitionEvent, 8)
	done := make(chan struct{})
	d.cancel = cancel
	d.done = done

	go d.listen(ctx, sessionCtx, results, done)

	return results, nil
}

func (d *DictationRecognizer) Stop() error {
	d.mu.Lock()
	cancel, done := d.cancel, d.done
	d.cancel, d.done = nil, nil
	d.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	<-done
	return nil
}

func (d *DictationRecognizer) listen(ctx, sessionCtx context.Context, results chan<- domain.RecognitionEvent, done chan struct{}) {
	defer close(done)
	defer close(results)
	defer d.clear(done)
	defer func() {
		if err := d.source.Close(); err != nil {
			d.logger.Warn("closing audio source", "error", err)
		}
	}()

	emit := func(ev domain.RecognitionEvent) {
		select {
		case results <- ev:
		case <-ctx.Done():
		}
	}

	for {
		audio, err := d.source.NextUtterance(sessionCtx)
		if err != nil {
			if sessionCtx.Err() == nil {
				emit(domain.RecognitionEvent{Kind: domain.RecognitionError, Err: err})
			}
			return
		}

		d.logger.Debug("utterance captured", "bytes", len(audio))

		text, err := d.stt.Transcribe(sessionCtx, audio)
		if err != nil {
			if errors.Is(err, context.Canceled) || sessionCtx.Err() != nil {
				return
			}
			emit(domain.RecognitionEvent{Kind: domain.RecognitionError, Err: fmt.Errorf("transcribing: %w", err)})
			return
		}

		if text == "" {
			continue
		}
		emit(domain.RecognitionEvent{Kind: domain.RecognitionTranscript, Text: text})
	}
}

// clear forgets a session that ended on its own.
func (d *DictationRecognizer) clear(done chan struct{}) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.done == done {
		d.cancel()
		d.cancel, d.done = nil, nil
	}
}
