package application

import "context"

type AudioPlayer interface {
	Play(ctx context.Context, audio []byte) (Playback, error)
}

// Playback is a single in-flight audio resource. Wait blocks until playback
// finishes naturally or fails; Stop halts it, rewinds and releases the
// resource, after which Wait returns nil.
type Playback interface {
	Wait() error
	Stop() error
}
