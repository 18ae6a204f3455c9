package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	DefaultVoiceID         = "21m00Tcm4TlvDq8ikWAM"
	DefaultModelID         = "eleven_monolingual_v1"
	DefaultStability       = 0.5
	DefaultSimilarityBoost = 0.7
)

type VoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

type Options struct {
	VoiceID  string
	ModelID  string
	Settings VoiceSettings
	Timeout  time.Duration
}

type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	opts       Options
	logger     *slog.Logger
}

func NewClient(apiKey string, opts Options, logger *slog.Logger) *Client {
	return NewClientWithURL(apiKey, opts, "https://api.elevenlabs.io", logger)
}

func NewClientWithURL(apiKey string, opts Options, baseURL string, logger *slog.Logger) *Client {
	if opts.VoiceID == "" {
		opts.VoiceID = DefaultVoiceID
	}
	if opts.ModelID == "" {
		opts.ModelID = DefaultModelID
	}
	if opts.Settings == (VoiceSettings{}) {
		opts.Settings = VoiceSettings{Stability: DefaultStability, SimilarityBoost: DefaultSimilarityBoost}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: opts.Timeout},
		baseURL:    baseURL,
		opts:       opts,
		logger:     logger,
	}
}

type request struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings VoiceSettings `json:"voice_settings"`
}

// Synthesize returns MPEG audio for text.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	bodyBytes, err := json.Marshal(request{
		Text:          text,
		ModelID:       c.opts.ModelID,
		VoiceSettings: c.opts.Settings,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", c.baseURL, c.opts.VoiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("elevenlabs API error", "status", resp.StatusCode, "body", string(errBody))
		return nil, fmt.Errorf("ElevenLabs API request failed with status %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading audio: %w", err)
	}
	return audio, nil
}
