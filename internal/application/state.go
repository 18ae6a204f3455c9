package application

import "hackathon-ideas/internal/domain"

// State is the whole application state. It is owned by the orchestrator loop;
// everyone else only sees copies.
type State struct {
	Rules           string        `json:"rules"`
	Ideas           []domain.Idea `json:"ideas"`
	Loading         bool          `json:"isLoading"`
	Recording       bool          `json:"isRecording"`
	Speaking        bool          `json:"isSpeaking"`
	FetchingAudio   bool          `json:"isFetchingAudio"`
	Saved           bool          `json:"saved"`
	SpeechSupported bool          `json:"speechSupported"`
	Error           string        `json:"error,omitempty"`

	// Sequence numbers used to drop events that belong to an earlier
	// recognition session, playback or idea batch.
	RecognitionSession int `json:"-"`
	Playback           int `json:"-"`
	Batch              int `json:"-"`
}

func NewState(rules string, speechSupported bool) State {
	return State{Rules: rules, SpeechSupported: speechSupported}
}

func (s State) clone() State {
	s.Ideas = domain.CloneIdeas(s.Ideas)
	return s
}

const (
	errSaveFailed  = "Could not save ideas. Storage might be full or unavailable."
	errPlayback    = "Failed to play audio."
	errNoAudio     = "Speech service returned no audio."
	errRecognition = "Speech recognition error: %s"
	errGeneration  = "Failed to generate ideas: %s"
	errSynthesis   = "Failed to generate audio: %s"
)

// DefaultRules is the sample hackathon description shown on first start.
const DefaultRules = `Your mission: build an AI-powered app that's original, useful, or delightfully weird. Whether you create a voice agent, productivity tool, creative assistant, or something no one expects, we want to see what you can ship.

Brought to you by LiquidMetal AI, in partnership with Vultr, Cerebras, ElevenLabs, Netlify, WorkOS, Stripe, Searchable and Cloudflare, this hackathon celebrates imagination, speed, and technical execution.

Core Requirements:
- Working AI application built on Raindrop Platform (via Raindrop MCP Server)
- Must use an AI coding assistant (Claude Code or Gemini CLI) to build on Raindrop
- Must integrate at least one of the Vultr services
- For Voice Agent Category ONLY: Must integrate with ElevenLabs`
