//go:build !portaudio
// +build !portaudio

package audio

import (
	"context"
	"fmt"
	"log/slog"
)

// Microphone stub when portaudio is not available. It reports itself as
// unavailable so dictation is disabled rather than failing at runtime.
type Microphone struct {
	logger *slog.Logger
}

func NewMicrophone(sampleRate int, logger *slog.Logger) *Microphone {
	return &Microphone{logger: logger}
}

func (m *Microphone) Available() bool {
	return false
}

func (m *Microphone) Open() error {
	return fmt.Errorf("microphone not available: rebuild with -tags portaudio")
}

func (m *Microphone) Close() error {
	return nil
}

func (m *Microphone) NextUtterance(_ context.Context) ([]byte, error) {
	return nil, fmt.Errorf("microphone not available")
}
