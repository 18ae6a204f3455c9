package storage_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"hackathon-ideas/internal/domain"
	"hackathon-ideas/internal/infra/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleIdeas() []domain.Idea {
	return []domain.Idea{
		{Title: "Pitch Coach", Description: "d", Category: domain.CategoryVoiceAgent, TechStack: []string{"Raindrop", "Vultr"}, Justification: "j"},
		{Title: "Rule Lawyer", Description: "d", Category: domain.CategoryDeveloperTool, TechStack: []string{"Raindrop"}, Justification: "j"},
		{Title: "Haiku Deploy", Description: "d", Category: domain.CategoryDelightfullyWeird, TechStack: []string{"Vultr"}, Justification: "j"},
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := storage.NewFileStore(filepath.Join(dir, "data"), domain.SnapshotKey, testLogger())
	ctx := context.Background()

	if err := store.Save(ctx, sampleIdeas()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Base(store.Path()) != "hackathonIdeas.json" {
		t.Errorf("Path: got %s", store.Path())
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 3 || loaded[1].Title != "Rule Lawyer" || loaded[0].TechStack[1] != "Vultr" {
		t.Errorf("loaded: %+v", loaded)
	}

	entries, _ := os.ReadDir(filepath.Join(dir, "data"))
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %d entries", len(entries))
	}
}

func TestFileStore_Overwrite(t *testing.T) {
	store := storage.NewFileStore(t.TempDir(), domain.SnapshotKey, testLogger())
	ctx := context.Background()

	store.Save(ctx, sampleIdeas())
	replacement := sampleIdeas()[2:]
	if err := store.Save(ctx, replacement); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Title != "Haiku Deploy" {
		t.Errorf("loaded: %+v", loaded)
	}
}

func TestFileStore_NotFound(t *testing.T) {
	store := storage.NewFileStore(t.TempDir(), domain.SnapshotKey, testLogger())

	if _, err := store.Load(context.Background()); !errors.Is(err, domain.ErrSnapshotNotFound) {
		t.Errorf("got %v, want ErrSnapshotNotFound", err)
	}
}

func TestFileStore_CorruptRemoved(t *testing.T) {
	store := storage.NewFileStore(t.TempDir(), domain.SnapshotKey, testLogger())
	if err := os.WriteFile(store.Path(), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := store.Load(context.Background())
	if !errors.Is(err, domain.ErrSnapshotCorrupt) {
		t.Fatalf("got %v, want ErrSnapshotCorrupt", err)
	}
	if _, statErr := os.Stat(store.Path()); !os.IsNotExist(statErr) {
		t.Error("corrupt snapshot should be removed")
	}

	if _, err := store.Load(context.Background()); !errors.Is(err, domain.ErrSnapshotNotFound) {
		t.Errorf("after removal: got %v, want ErrSnapshotNotFound", err)
	}
}
