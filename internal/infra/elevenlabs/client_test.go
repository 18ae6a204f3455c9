package elevenlabs_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hackathon-ideas/internal/infra/elevenlabs"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type capturedRequest struct {
	Text          string `json:"text"`
	ModelID       string `json:"model_id"`
	VoiceSettings struct {
		Stability       float64 `json:"stability"`
		SimilarityBoost float64 `json:"similarity_boost"`
	} `json:"voice_settings"`
}

func TestClient_SynthesizeDefaults(t *testing.T) {
	var got capturedRequest
	var path, accept, key string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		accept = r.Header.Get("Accept")
		key = r.Header.Get("xi-api-key")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("ID3 mp3 bytes"))
	}))
	defer server.Close()

	client := elevenlabs.NewClientWithURL("test-key", elevenlabs.Options{}, server.URL, testLogger())

	audio, err := client.Synthesize(context.Background(), "Idea 1: Pitch Coach.")
	if err != nil {
		t.Fatalf("Synthesize error: %v", err)
	}

	if string(audio) != "ID3 mp3 bytes" {
		t.Errorf("audio: got %q", audio)
	}
	if path != "/v1/text-to-speech/"+elevenlabs.DefaultVoiceID {
		t.Errorf("path: got %s", path)
	}
	if accept != "audio/mpeg" {
		t.Errorf("Accept: got %s, want audio/mpeg", accept)
	}
	if key != "test-key" {
		t.Errorf("xi-api-key: got %s", key)
	}
	if got.Text != "Idea 1: Pitch Coach." {
		t.Errorf("text: got %q", got.Text)
	}
	if got.ModelID != elevenlabs.DefaultModelID {
		t.Errorf("model_id: got %s, want %s", got.ModelID, elevenlabs.DefaultModelID)
	}
	if got.VoiceSettings.Stability != 0.5 || got.VoiceSettings.SimilarityBoost != 0.7 {
		t.Errorf("voice_settings: got %+v", got.VoiceSettings)
	}
}

func TestClient_SynthesizeCustomVoice(t *testing.T) {
	var got capturedRequest
	var path string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte("audio"))
	}))
	defer server.Close()

	opts := elevenlabs.Options{
		VoiceID:  "voice-x",
		ModelID:  "eleven_turbo_v2",
		Settings: elevenlabs.VoiceSettings{Stability: 0.3, SimilarityBoost: 0.9},
	}
	client := elevenlabs.NewClientWithURL("test-key", opts, server.URL, testLogger())

	if _, err := client.Synthesize(context.Background(), "hello"); err != nil {
		t.Fatalf("Synthesize error: %v", err)
	}

	if path != "/v1/text-to-speech/voice-x" {
		t.Errorf("path: got %s", path)
	}
	if got.ModelID != "eleven_turbo_v2" || got.VoiceSettings.Stability != 0.3 {
		t.Errorf("request: got %+v", got)
	}
}

func TestClient_SynthesizeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":{"status":"invalid_api_key"}}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := elevenlabs.NewClientWithURL("bad-key", elevenlabs.Options{}, server.URL, testLogger())

	_, err := client.Synthesize(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error for 401")
	}
	if !strings.Contains(err.Error(), "status 401") {
		t.Errorf("error: got %v", err)
	}
	if strings.Contains(err.Error(), "invalid_api_key") {
		t.Error("response body should be logged, not returned")
	}
}
