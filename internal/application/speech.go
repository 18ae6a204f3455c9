package application

import (
	"context"
	"errors"

	"hackathon-ideas/internal/domain"
)

var ErrUnavailable = errors.New("capability not available")

// SpeechRecognizer captures dictation. The returned channel is closed when the
// session ends, whether by Stop, by the platform or after an error event.
type SpeechRecognizer interface {
	Available() bool
	Start(ctx context.Context) (<-chan domain.RecognitionEvent, error)
	Stop() error
}

type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// NoopRecognizer reports speech capture as unsupported.
type NoopRecognizer struct{}

func (n *NoopRecognizer) Available() bool { return false }

func (n *NoopRecognizer) Start(_ context.Context) (<-chan domain.RecognitionEvent, error) {
	return nil, ErrUnavailable
}

func (n *NoopRecognizer) Stop() error { return nil }
