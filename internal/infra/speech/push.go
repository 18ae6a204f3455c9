package speech

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"hackathon-ideas/internal/domain"
)

var (
	ErrNotListening = errors.New("not listening")
	ErrQueueFull    = errors.New("transcript queue full")
)

// PushRecognizer is fed by a client that does its own speech recognition
// (a browser, a phone) and forwards results over the HTTP API.
type PushRecognizer struct {
	logger *slog.Logger

	mu      sync.Mutex
	session *pushSession
}

type pushSession struct {
	results chan domain.RecognitionEvent
	closed  chan struct{}
}

func NewPushRecognizer(logger *slog.Logger) *PushRecognizer {
	return &PushRecognizer{logger: logger}
}

func (p *PushRecognizer) Available() bool {
	return true
}

func (p *PushRecognizer) Start(ctx context.Context) (<-chan domain.RecognitionEvent, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.session != nil {
		p.closeLocked()
	}
	session := &pushSession{
		results: make(chan domain.RecognitionEvent, 16),
		closed:  make(chan struct{}),
	}
	p.session = session

	go func() {
		select {
		case <-ctx.Done():
			p.end(session)
		case <-session.closed:
		}
	}()

	return session.results, nil
}

func (p *PushRecognizer) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.session != nil {
		p.closeLocked()
	}
	return nil
}

// Listening reports whether a session is open.
func (p *PushRecognizer) Listening() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.session != nil
}

// Push delivers one recognition result. Interim results are dropped.
func (p *PushRecognizer) Push(text string, final bool) error {
	if !final {
		return nil
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return p.send(domain.RecognitionEvent{Kind: domain.RecognitionTranscript, Text: text})
}

// Fail reports a client-side recognition error and ends the session.
func (p *PushRecognizer) Fail(detail string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.sendLocked(domain.RecognitionEvent{Kind: domain.RecognitionError, Err: errors.New(detail)}); err != nil {
		return err
	}
	p.closeLocked()
	return nil
}

func (p *PushRecognizer) send(ev domain.RecognitionEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sendLocked(ev)
}

func (p *PushRecognizer) sendLocked(ev domain.RecognitionEvent) error {
	if p.session == nil {
		return ErrNotListening
	}
	select {
	case p.session.results <- ev:
		return nil
	default:
		p.logger.Warn("dropping recognition result, queue full")
		return ErrQueueFull
	}
}

// end closes session if it is still the active one.
func (p *PushRecognizer) end(session *pushSession) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.session == session {
		p.closeLocked()
	}
}

func (p *PushRecognizer) closeLocked() {
	close(p.session.results)
	close(p.session.closed)
	p.session = nil
}
