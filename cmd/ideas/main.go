package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"hackathon-ideas/config"
	"hackathon-ideas/internal/application"
	"hackathon-ideas/internal/domain"
	"hackathon-ideas/internal/infra/anthropic"
	"hackathon-ideas/internal/infra/audio"
	"hackathon-ideas/internal/infra/elevenlabs"
	"hackathon-ideas/internal/infra/gemini"
	"hackathon-ideas/internal/infra/httpapi"
	"hackathon-ideas/internal/infra/openai"
	"hackathon-ideas/internal/infra/pushover"
	"hackathon-ideas/internal/infra/speech"
	"hackathon-ideas/internal/infra/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.Log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutting down")
		cancel()
	}()

	store, closeStore, err := createStore(ctx, cfg.Storage, logger)
	if err != nil {
		logger.Error("creating snapshot store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	recognizer, pushRecognizer := createRecognizer(cfg, logger)

	synthesizer := elevenlabs.NewClient(cfg.ElevenLabs.APIKey, elevenlabs.Options{
		VoiceID: cfg.ElevenLabs.VoiceID,
		ModelID: cfg.ElevenLabs.ModelID,
		Settings: elevenlabs.VoiceSettings{
			Stability:       cfg.ElevenLabs.Stability,
			SimilarityBoost: cfg.ElevenLabs.SimilarityBoost,
		},
		Timeout: config.Duration(cfg.ElevenLabs.Timeout),
	}, logger)

	var notifier application.Notifier
	if cfg.Pushover.Enabled {
		notifier = pushover.NewClient(cfg.Pushover.Token, cfg.Pushover.UserKey)
	} else {
		notifier = &application.NoopNotifier{}
	}

	initialRules := cfg.Rules.Initial
	if initialRules == "" {
		initialRules = application.DefaultRules
	}

	orchestrator := application.NewOrchestrator(
		createGenerator(cfg),
		synthesizer,
		recognizer,
		audio.NewFilePlayer(cfg.Playback.Dir, cfg.Playback.Command, logger),
		store,
		notifier,
		initialRules,
		logger,
	)

	var transcripts httpapi.TranscriptSink
	if pushRecognizer != nil {
		transcripts = pushRecognizer
	}
	server := httpapi.NewServer(cfg.HTTP.Addr, orchestrator, transcripts, logger)
	if err := server.Start(ctx); err != nil {
		logger.Error("starting HTTP API", "error", err)
		os.Exit(1)
	}
	defer server.Stop()

	logger.Info("starting hackathon idea generator",
		"generator", cfg.Generator.Provider,
		"speech_source", cfg.Speech.Source,
		"storage", cfg.Storage.Driver,
	)

	if err := orchestrator.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("orchestrator error", "error", err)
		os.Exit(1)
	}
}

func createGenerator(cfg *config.Config) application.IdeaGenerator {
	timeout := config.Duration(cfg.Generator.Timeout)
	if cfg.Generator.Provider == "anthropic" {
		return anthropic.NewClaudeClient(cfg.Anthropic.APIKey, cfg.Anthropic.Model, timeout)
	}
	return gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.Model, timeout)
}

func createRecognizer(cfg *config.Config, logger *slog.Logger) (application.SpeechRecognizer, *speech.PushRecognizer) {
	switch cfg.Speech.Source {
	case "push":
		push := speech.NewPushRecognizer(logger)
		return push, push
	case "microphone":
		mic := audio.NewMicrophone(cfg.Speech.SampleRate, logger)
		stt := openai.NewWhisperClient(cfg.OpenAI.APIKey, cfg.OpenAI.Language)
		return speech.NewDictationRecognizer(mic, stt, logger), nil
	default:
		return &application.NoopRecognizer{}, nil
	}
}

func createStore(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (application.SnapshotStore, func(), error) {
	if cfg.Driver == "postgres" {
		store, err := storage.NewPostgresStore(ctx, cfg.DatabaseURL, domain.SnapshotKey, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	}
	return storage.NewFileStore(cfg.Dir, domain.SnapshotKey, logger), func() {}, nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
