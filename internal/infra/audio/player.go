package audio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"hackathon-ideas/internal/application"
)

// FilePlayer writes each narration to a temporary MP3 file and plays it with
// an external command such as ["mpg123", "-q"]. Without a command nothing is
// played locally and playback ends at once; the audio stays reachable
// through the HTTP API.
type FilePlayer struct {
	dir     string
	command []string
	logger  *slog.Logger
}

func NewFilePlayer(dir string, command []string, logger *slog.Logger) *FilePlayer {
	return &FilePlayer{
		dir:     dir,
		command: command,
		logger:  logger,
	}
}

func (p *FilePlayer) Play(ctx context.Context, audio []byte) (application.Playback, error) {
	if len(p.command) == 0 {
		p.logger.Info("no audio player configured, skipping local playback", "bytes", len(audio))
		pb := &filePlayback{done: make(chan struct{}), logger: p.logger, released: true}
		pb.finish(nil)
		return pb, nil
	}

	if err := os.MkdirAll(p.dir, 0755); err != nil {
		return nil, fmt.Errorf("creating audio dir: %w", err)
	}

	path := filepath.Join(p.dir, uuid.NewString()+".mp3")
	if err := os.WriteFile(path, audio, 0644); err != nil {
		return nil, fmt.Errorf("writing audio file: %w", err)
	}

	pb := &filePlayback{
		path:   path,
		done:   make(chan struct{}),
		logger: p.logger,
	}

	playCtx, cancel := context.WithCancel(ctx)
	args := append(append([]string(nil), p.command[1:]...), path)
	cmd := exec.CommandContext(playCtx, p.command[0], args...)
	if err := cmd.Start(); err != nil {
		cancel()
		pb.release()
		return nil, fmt.Errorf("starting player: %w", err)
	}
	pb.cancel = cancel

	go func() {
		err := cmd.Wait()
		cancel()
		pb.mu.Lock()
		stopped := pb.stopped
		pb.mu.Unlock()
		if stopped {
			err = nil
		}
		pb.finish(err)
	}()

	p.logger.Info("playing audio", "path", path, "player", p.command[0])
	return pb, nil
}

type filePlayback struct {
	path   string
	cancel context.CancelFunc
	done   chan struct{}
	err    error
	logger *slog.Logger

	mu       sync.Mutex
	stopped  bool
	released bool
}

func (pb *filePlayback) Wait() error {
	<-pb.done
	return pb.err
}

// Stop kills the player. A later Play starts from the beginning of a fresh
// file, which is the rewind.
func (pb *filePlayback) Stop() error {
	pb.mu.Lock()
	pb.stopped = true
	cancel := pb.cancel
	pb.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	<-pb.done
	return nil
}

func (pb *filePlayback) finish(err error) {
	pb.err = err
	pb.release()
	close(pb.done)
}

func (pb *filePlayback) release() {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	if pb.released {
		return
	}
	pb.released = true
	if err := os.Remove(pb.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		pb.logger.Warn("removing audio file", "path", pb.path, "error", err)
	}
}
