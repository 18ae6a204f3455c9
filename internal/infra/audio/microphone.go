//go:build portaudio
// +build portaudio

package audio

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gordonklaus/portaudio"
)

const framesPerBuffer = 1024

type Microphone struct {
	sampleRate int
	logger     *slog.Logger

	mu     sync.Mutex
	stream *portaudio.Stream
	buffer []int16
}

func NewMicrophone(sampleRate int, logger *slog.Logger) *Microphone {
	return &Microphone{
		sampleRate: sampleRate,
		logger:     logger,
	}
}

func (m *Microphone) Available() bool {
	return true
}

func (m *Microphone) Open() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stream != nil {
		return nil
	}

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("initializing portaudio: %w", err)
	}

	m.buffer = make([]int16, framesPerBuffer)

	stream, err := portaudio.OpenDefaultStream(1, 0, float64(m.sampleRate), framesPerBuffer, m.buffer)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("opening stream: %w", err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("starting stream: %w", err)
	}

	m.stream = stream
	m.logger.Info("microphone started", "sampleRate", m.sampleRate)
	return nil
}

func (m *Microphone) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stream == nil {
		return nil
	}
	m.stream.Stop()
	m.stream.Close()
	m.stream = nil
	return portaudio.Terminate()
}

// NextUtterance blocks until a stretch of speech followed by a second of
// silence has been captured and returns it as WAV. Leading silence is skipped.
func (m *Microphone) NextUtterance(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	stream := m.stream
	m.mu.Unlock()
	if stream == nil {
		return nil, fmt.Errorf("microphone not open")
	}

	samples := make([]int16, 0, m.sampleRate*5)
	silenceDuration := 0
	heardSpeech := false

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if err := stream.Read(); err != nil {
			return nil, fmt.Errorf("reading from stream: %w", err)
		}

		silent := isSilent(m.buffer)
		if !silent {
			heardSpeech = true
		}
		if !heardSpeech {
			continue
		}

		samples = append(samples, m.buffer...)

		if silent {
			silenceDuration += len(m.buffer)
		} else {
			silenceDuration = 0
		}

		if silenceDuration > m.sampleRate && len(samples) > m.sampleRate {
			break
		}

		if len(samples) > m.sampleRate*maxUtteranceSeconds {
			break
		}
	}

	return samplesToWav(samples, m.sampleRate)
}
