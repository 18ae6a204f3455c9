package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"hackathon-ideas/internal/application"
)

type Controller interface {
	State() application.State
	LastAudio() []byte
	SetRules(ctx context.Context, text string) (application.State, error)
	ToggleRecording(ctx context.Context) (application.State, error)
	Generate(ctx context.Context) (application.State, error)
	ReadAloud(ctx context.Context) (application.State, error)
	Save(ctx context.Context) (application.State, error)
}

// TranscriptSink receives recognition results from a remote client.
type TranscriptSink interface {
	Push(text string, final bool) error
	Fail(detail string) error
}

type Server struct {
	addr        string
	server      *http.Server
	controller  Controller
	transcripts TranscriptSink
	logger      *slog.Logger
	mux         *http.ServeMux

	mu      sync.Mutex
	running bool
}

// NewServer builds the control API. transcripts may be nil when speech is
// captured locally.
func NewServer(addr string, controller Controller, transcripts TranscriptSink, logger *slog.Logger) *Server {
	s := &Server{
		addr:        addr,
		controller:  controller,
		transcripts: transcripts,
		logger:      logger,
		mux:         http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /api/state", s.handleState)
	s.mux.HandleFunc("PUT /api/rules", s.handleRules)
	s.mux.HandleFunc("POST /api/recording/toggle", s.action(controller.ToggleRecording))
	s.mux.HandleFunc("POST /api/transcript", s.handleTranscript)
	s.mux.HandleFunc("POST /api/generate", s.action(controller.Generate))
	s.mux.HandleFunc("POST /api/read-aloud", s.action(controller.ReadAloud))
	s.mux.HandleFunc("GET /api/audio", s.handleAudio)
	s.mux.HandleFunc("POST /api/save", s.action(controller.Save))
	s.mux.HandleFunc("GET /health", s.handleHealth)
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) Start(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      s.mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		s.logger.Info("HTTP API starting", "addr", s.addr)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error", "error", err)
		}
	}()

	s.running = true
	return nil
}

func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.server.Shutdown(ctx); err != nil {
			s.logger.Warn("graceful shutdown failed, forcing close", "error", err)
			if err := s.server.Close(); err != nil {
				return fmt.Errorf("closing server: %w", err)
			}
		}
	}

	s.running = false
	return nil
}

func (s *Server) action(fn func(ctx context.Context) (application.State, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := fn(r.Context())
		if err != nil {
			s.dispatchError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, state)
	}
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.controller.State())
}

type rulesRequest struct {
	Rules string `json:"rules"`
}

func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	var req rulesRequest
	if err := decodeJSON(r, &req, 64*1024); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	state, err := s.controller.SetRules(r.Context(), req.Rules)
	if err != nil {
		s.dispatchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

type transcriptRequest struct {
	Text  string `json:"text"`
	Final bool   `json:"final"`
	Error string `json:"error,omitempty"`
}

func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	if s.transcripts == nil {
		http.Error(w, "transcripts are captured locally", http.StatusNotFound)
		return
	}

	var req transcriptRequest
	if err := decodeJSON(r, &req, 16*1024); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var err error
	if req.Error != "" {
		err = s.transcripts.Fail(req.Error)
	} else {
		err = s.transcripts.Push(req.Text, req.Final)
	}
	if err != nil {
		s.logger.Warn("rejected transcript", "error", err)
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	fmt.Fprint(w, `{"status":"received"}`)
}

func (s *Server) handleAudio(w http.ResponseWriter, _ *http.Request) {
	audio := s.controller.LastAudio()
	if len(audio) == 0 {
		http.Error(w, "no audio yet", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Length", fmt.Sprint(len(audio)))
	w.WriteHeader(http.StatusOK)
	w.Write(audio)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()

	status := "ok"
	statusCode := http.StatusOK

	if !running {
		status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	fmt.Fprintf(w, `{"status":"%s","running":%t}`, status, running)
}

func (s *Server) dispatchError(w http.ResponseWriter, err error) {
	if errors.Is(err, application.ErrStopped) {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}
	s.logger.Error("dispatching action", "error", err)
	http.Error(w, "request cancelled", http.StatusServiceUnavailable)
}

func decodeJSON(r *http.Request, v any, limit int64) error {
	defer r.Body.Close()
	data, err := io.ReadAll(io.LimitReader(r.Body, limit))
	if err != nil {
		return fmt.Errorf("failed to read body")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
