package anthropic_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hackathon-ideas/internal/domain"
	"hackathon-ideas/internal/infra/anthropic"
)

const ideasJSON = `[
  {"title":"Pitch Coach","description":"Rehearse your demo with a voice agent.","category":"Voice Agent","techStack":["Raindrop","Vultr","ElevenLabs"],"justification":"Runs on Raindrop and Vultr."},
  {"title":"Rule Lawyer","description":"Checks submissions against the rules.","category":"Developer Tool","techStack":["Raindrop","Vultr"],"justification":"Uses SmartBuckets on Raindrop."},
  {"title":"Haiku Deploy","description":"Every deploy log becomes a haiku.","category":"Delightfully Weird","techStack":["Raindrop","Vultr"],"justification":"Deploys through Vultr."}
]`

func TestClaudeClient_Generate(t *testing.T) {
	var system string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/messages" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if r.Header.Get("x-api-key") != "test-key" || r.Header.Get("anthropic-version") == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req struct {
			Model  string `json:"model"`
			System string `json:"system"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		system = req.System

		response := map[string]any{
			"content": []map[string]string{
				{"type": "text", "text": ideasJSON},
			},
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := anthropic.NewClaudeClientWithURL("test-key", "claude-test", server.URL, 5*time.Second)

	ideas, err := client.Generate(context.Background(), "Build on Vultr")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	if len(ideas) != 3 {
		t.Fatalf("ideas: got %d, want 3", len(ideas))
	}
	if ideas[1].Category != domain.CategoryDeveloperTool {
		t.Errorf("Category: got %s, want Developer Tool", ideas[1].Category)
	}
	if !strings.Contains(system, `"ARRAY"`) {
		t.Errorf("system prompt should carry the schema: %s", system)
	}
}

func TestClaudeClient_GenerateAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := anthropic.NewClaudeClientWithURL("test-key", "claude-test", server.URL, time.Second)

	_, err := client.Generate(context.Background(), "rules")
	if err == nil {
		t.Fatal("expected error for 503")
	}
}

func TestClaudeClient_GenerateEmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"content": []any{}})
	}))
	defer server.Close()

	client := anthropic.NewClaudeClientWithURL("test-key", "claude-test", server.URL, time.Second)

	if _, err := client.Generate(context.Background(), "rules"); err == nil {
		t.Error("expected error for empty content")
	}
}
