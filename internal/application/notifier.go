package application

import (
	"context"
	"fmt"
	"strings"

	"hackathon-ideas/internal/domain"
)

type Notifier interface {
	Notify(ctx context.Context, message string) error
}

type NoopNotifier struct{}

func (n *NoopNotifier) Notify(_ context.Context, _ string) error {
	return nil
}

func ideasReadyMessage(ideas []domain.Idea) string {
	titles := make([]string, 0, len(ideas))
	for _, idea := range ideas {
		titles = append(titles, fmt.Sprintf("%s (%s)", idea.Title, idea.Category))
	}
	return fmt.Sprintf("%d new ideas: %s", len(ideas), strings.Join(titles, "; "))
}
