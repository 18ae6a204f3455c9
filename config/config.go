package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Rules      RulesConfig      `yaml:"rules"`
	Generator  GeneratorConfig  `yaml:"generator"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	Anthropic  AnthropicConfig  `yaml:"anthropic"`
	ElevenLabs ElevenLabsConfig `yaml:"elevenlabs"`
	Speech     SpeechConfig     `yaml:"speech"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Playback   PlaybackConfig   `yaml:"playback"`
	Storage    StorageConfig    `yaml:"storage"`
	Pushover   PushoverConfig   `yaml:"pushover"`
	Log        LogConfig        `yaml:"log"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

type RulesConfig struct {
	Initial string `yaml:"initial"`
}

type GeneratorConfig struct {
	Provider string `yaml:"provider"`
	Timeout  string `yaml:"timeout"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type AnthropicConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type ElevenLabsConfig struct {
	APIKey          string  `yaml:"api_key"`
	VoiceID         string  `yaml:"voice_id"`
	ModelID         string  `yaml:"model_id"`
	Stability       float64 `yaml:"stability"`
	SimilarityBoost float64 `yaml:"similarity_boost"`
	Timeout         string  `yaml:"timeout"`
}

type SpeechConfig struct {
	Source     string `yaml:"source"`
	SampleRate int    `yaml:"sample_rate"`
}

type OpenAIConfig struct {
	APIKey   string `yaml:"api_key"`
	Language string `yaml:"language"`
}

type PlaybackConfig struct {
	Dir     string   `yaml:"dir"`
	Command []string `yaml:"command"`
}

type StorageConfig struct {
	Driver      string `yaml:"driver"`
	Dir         string `yaml:"dir"`
	DatabaseURL string `yaml:"database_url"`
}

type PushoverConfig struct {
	Token   string `yaml:"token"`
	UserKey string `yaml:"user_key"`
	Enabled bool   `yaml:"enabled"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads the YAML config at path. Credentials are expected as ${VARS},
// taken from the environment or from a .env file next to the process.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.Generator.Provider == "" {
		c.Generator.Provider = "gemini"
	}
	if c.Generator.Timeout == "" {
		c.Generator.Timeout = "60s"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-pro"
	}
	if c.Anthropic.Model == "" {
		c.Anthropic.Model = "claude-sonnet-4-20250514"
	}
	if c.ElevenLabs.VoiceID == "" {
		c.ElevenLabs.VoiceID = "21m00Tcm4TlvDq8ikWAM"
	}
	if c.ElevenLabs.ModelID == "" {
		c.ElevenLabs.ModelID = "eleven_monolingual_v1"
	}
	if c.ElevenLabs.Stability == 0 {
		c.ElevenLabs.Stability = 0.5
	}
	if c.ElevenLabs.SimilarityBoost == 0 {
		c.ElevenLabs.SimilarityBoost = 0.7
	}
	if c.ElevenLabs.Timeout == "" {
		c.ElevenLabs.Timeout = "60s"
	}
	if c.Speech.Source == "" {
		c.Speech.Source = "push"
	}
	if c.Speech.SampleRate == 0 {
		c.Speech.SampleRate = 16000
	}
	if c.OpenAI.Language == "" {
		c.OpenAI.Language = "en"
	}
	if c.Playback.Dir == "" {
		c.Playback.Dir = os.TempDir()
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "file"
	}
	if c.Storage.Dir == "" {
		c.Storage.Dir = "./data"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

func (c *Config) Validate() error {
	switch c.Generator.Provider {
	case "gemini", "anthropic":
	default:
		return fmt.Errorf("unknown generator provider %q", c.Generator.Provider)
	}
	switch c.Speech.Source {
	case "push", "microphone", "none":
	default:
		return fmt.Errorf("unknown speech source %q", c.Speech.Source)
	}
	switch c.Storage.Driver {
	case "file":
	case "postgres":
		if c.Storage.DatabaseURL == "" {
			return fmt.Errorf("storage.database_url is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if _, err := time.ParseDuration(c.Generator.Timeout); err != nil {
		return fmt.Errorf("invalid generator.timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.ElevenLabs.Timeout); err != nil {
		return fmt.Errorf("invalid elevenlabs.timeout: %w", err)
	}
	return nil
}

// Duration parses a value already checked by Validate.
func Duration(value string) time.Duration {
	d, _ := time.ParseDuration(value)
	return d
}
