package domain

import "errors"

// SnapshotKey names the single persisted idea batch.
const SnapshotKey = "hackathonIdeas"

var (
	ErrSnapshotNotFound = errors.New("snapshot not found")
	ErrSnapshotCorrupt  = errors.New("snapshot corrupt")
)
