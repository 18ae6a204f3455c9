package application

import (
	"context"

	"hackathon-ideas/internal/domain"
)

type IdeaGenerator interface {
	Generate(ctx context.Context, rules string) ([]domain.Idea, error)
}
