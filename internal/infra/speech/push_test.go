package speech_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"hackathon-ideas/internal/domain"
	"hackathon-ideas/internal/infra/speech"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func drain(t *testing.T, results <-chan domain.RecognitionEvent) []domain.RecognitionEvent {
	t.Helper()
	var events []domain.RecognitionEvent
	timeout := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-results:
			if !ok {
				return events
			}
			events = append(events, ev)
		case <-timeout:
			t.Fatal("timeout waiting for results channel to close")
			return nil
		}
	}
}

func TestPushRecognizer_FinalFragments(t *testing.T) {
	p := speech.NewPushRecognizer(testLogger())

	results, err := p.Start(context.Background())
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !p.Listening() {
		t.Error("should be listening after Start")
	}

	p.Push("Build a", false)
	p.Push("Build a voice agent", true)
	p.Push("   ", true)
	p.Push(" using ElevenLabs ", true)
	p.Stop()

	events := drain(t, results)
	if len(events) != 2 {
		t.Fatalf("events: got %d, want 2", len(events))
	}
	if events[0].Text != "Build a voice agent" || events[1].Text != "using ElevenLabs" {
		t.Errorf("texts: got %q, %q", events[0].Text, events[1].Text)
	}
	if p.Listening() {
		t.Error("should not be listening after Stop")
	}
}

func TestPushRecognizer_NotListening(t *testing.T) {
	p := speech.NewPushRecognizer(testLogger())

	if err := p.Push("hello", true); !errors.Is(err, speech.ErrNotListening) {
		t.Errorf("Push: got %v, want ErrNotListening", err)
	}
	if err := p.Fail("no-speech"); !errors.Is(err, speech.ErrNotListening) {
		t.Errorf("Fail: got %v, want ErrNotListening", err)
	}
	if err := p.Stop(); err != nil {
		t.Errorf("Stop without session: %v", err)
	}
}

func TestPushRecognizer_Fail(t *testing.T) {
	p := speech.NewPushRecognizer(testLogger())

	results, _ := p.Start(context.Background())
	if err := p.Fail("network"); err != nil {
		t.Fatalf("Fail: %v", err)
	}

	events := drain(t, results)
	if len(events) != 1 || events[0].Kind != domain.RecognitionError {
		t.Fatalf("events: got %+v", events)
	}
	if events[0].Err.Error() != "network" {
		t.Errorf("detail: got %v", events[0].Err)
	}
}

func TestPushRecognizer_RestartClosesPrevious(t *testing.T) {
	p := speech.NewPushRecognizer(testLogger())

	first, _ := p.Start(context.Background())
	second, _ := p.Start(context.Background())

	if events := drain(t, first); len(events) != 0 {
		t.Errorf("first session events: %+v", events)
	}

	p.Push("second", true)
	p.Stop()
	events := drain(t, second)
	if len(events) != 1 || events[0].Text != "second" {
		t.Errorf("second session events: %+v", events)
	}
}

func TestPushRecognizer_ContextEndsSession(t *testing.T) {
	p := speech.NewPushRecognizer(testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	results, _ := p.Start(ctx)
	cancel()

	drain(t, results)
	if p.Listening() {
		t.Error("session should end with its context")
	}
}

func TestPushRecognizer_QueueFull(t *testing.T) {
	p := speech.NewPushRecognizer(testLogger())
	results, _ := p.Start(context.Background())
	defer p.Stop()

	var err error
	for n := 0; n < 100 && err == nil; n++ {
		err = p.Push("fragment", true)
	}
	if !errors.Is(err, speech.ErrQueueFull) {
		t.Errorf("got %v, want ErrQueueFull", err)
	}
	_ = results
}
