package domain_test

import (
	"errors"
	"strings"
	"testing"

	"hackathon-ideas/internal/domain"
)

func validIdea(title string) domain.Idea {
	return domain.Idea{
		Title:         title,
		Description:   "A voice agent that reads hackathon rules back to you.",
		Category:      domain.CategoryVoiceAgent,
		TechStack:     []string{"Raindrop", "Vultr", "ElevenLabs"},
		Justification: "Uses Raindrop, a Vultr service and ElevenLabs.",
	}
}

func TestIdea_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.Idea)
		wantErr bool
	}{
		{name: "valid", mutate: func(*domain.Idea) {}},
		{name: "missing title", mutate: func(i *domain.Idea) { i.Title = "  " }, wantErr: true},
		{name: "missing description", mutate: func(i *domain.Idea) { i.Description = "" }, wantErr: true},
		{name: "unknown category", mutate: func(i *domain.Idea) { i.Category = "Game" }, wantErr: true},
		{name: "empty tech stack", mutate: func(i *domain.Idea) { i.TechStack = nil }, wantErr: true},
		{name: "blank tech entry", mutate: func(i *domain.Idea) { i.TechStack = []string{"Vultr", ""} }, wantErr: true},
		{name: "missing justification", mutate: func(i *domain.Idea) { i.Justification = "" }, wantErr: true},
		{name: "duplicate tech allowed", mutate: func(i *domain.Idea) { i.TechStack = []string{"Go", "Go"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idea := validIdea("Rule Reader")
			tt.mutate(&idea)
			err := idea.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate: got %v, wantErr %t", err, tt.wantErr)
			}
		})
	}
}

func TestValidateBatch(t *testing.T) {
	good := []domain.Idea{validIdea("A"), validIdea("B"), validIdea("C")}
	if err := domain.ValidateBatch(good); err != nil {
		t.Fatalf("ValidateBatch: %v", err)
	}

	if err := domain.ValidateBatch(good[:2]); !errors.Is(err, domain.ErrInvalidBatch) {
		t.Errorf("two ideas: got %v, want ErrInvalidBatch", err)
	}

	bad := domain.CloneIdeas(good)
	bad[2].Category = "Blockchain"
	err := domain.ValidateBatch(bad)
	if !errors.Is(err, domain.ErrInvalidBatch) {
		t.Fatalf("bad category: got %v, want ErrInvalidBatch", err)
	}
	if !strings.Contains(err.Error(), "idea 3") {
		t.Errorf("error should name the idea: %v", err)
	}
}

func TestCategories_Closed(t *testing.T) {
	if len(domain.Categories) != 6 {
		t.Fatalf("categories: got %d, want 6", len(domain.Categories))
	}
	for _, c := range domain.Categories {
		if !c.Valid() {
			t.Errorf("%s should be valid", c)
		}
	}
	if domain.Category("voice agent").Valid() {
		t.Error("category match must be exact")
	}
}

func TestCloneIdeas_DoesNotShareTechStack(t *testing.T) {
	orig := []domain.Idea{validIdea("A")}
	clone := domain.CloneIdeas(orig)
	clone[0].TechStack[0] = "changed"

	if orig[0].TechStack[0] != "Raindrop" {
		t.Errorf("original mutated: %v", orig[0].TechStack)
	}
	if domain.CloneIdeas(nil) != nil {
		t.Error("clone of nil should be nil")
	}
}

func TestAppendTranscript(t *testing.T) {
	tests := []struct {
		rules, fragment, want string
	}{
		{"", "build a bot", "build a bot"},
		{"   ", "build a bot", "build a bot"},
		{"Rules:", "build a bot", "Rules: build a bot"},
	}

	for _, tt := range tests {
		if got := domain.AppendTranscript(tt.rules, tt.fragment); got != tt.want {
			t.Errorf("AppendTranscript(%q, %q): got %q, want %q", tt.rules, tt.fragment, got, tt.want)
		}
	}
}

func TestNarration(t *testing.T) {
	ideas := []domain.Idea{
		{Title: "One", Description: "First", TechStack: []string{"Go", "Vultr"}, Justification: "Fits"},
		{Title: "Two", Description: "Second", TechStack: []string{"ElevenLabs"}, Justification: "Also fits"},
	}

	want := "Idea 1: One. \nFirst. \nSuggested tech stack includes Go, Vultr. \nJustification: Fits" +
		"\n\n" +
		"Idea 2: Two. \nSecond. \nSuggested tech stack includes ElevenLabs. \nJustification: Also fits"

	if got := domain.Narration(ideas); got != want {
		t.Errorf("Narration:\ngot  %q\nwant %q", got, want)
	}

	if got := domain.Narration(nil); got != "" {
		t.Errorf("empty narration: got %q", got)
	}
}
