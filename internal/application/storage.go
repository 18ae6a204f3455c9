package application

import (
	"context"

	"hackathon-ideas/internal/domain"
)

type SnapshotStore interface {
	Load(ctx context.Context) ([]domain.Idea, error)
	Save(ctx context.Context, ideas []domain.Idea) error
}
