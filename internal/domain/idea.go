package domain

import (
	"errors"
	"fmt"
	"strings"
)

type Category string

const (
	CategoryProductivityTool  Category = "Productivity Tool"
	CategoryCreativeAssistant Category = "Creative Assistant"
	CategoryVoiceAgent        Category = "Voice Agent"
	CategoryDelightfullyWeird Category = "Delightfully Weird"
	CategoryDataVisualization Category = "Data Visualization"
	CategoryDeveloperTool     Category = "Developer Tool"
)

// Categories lists every accepted category in display order.
var Categories = []Category{
	CategoryProductivityTool,
	CategoryCreativeAssistant,
	CategoryVoiceAgent,
	CategoryDelightfullyWeird,
	CategoryDataVisualization,
	CategoryDeveloperTool,
}

// IdeasPerBatch is the number of ideas a single generation must produce.
const IdeasPerBatch = 3

var ErrInvalidBatch = errors.New("invalid idea batch")

type Idea struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Category      Category `json:"category"`
	TechStack     []string `json:"techStack"`
	Justification string   `json:"justification"`
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

func (i Idea) Validate() error {
	switch {
	case strings.TrimSpace(i.Title) == "":
		return errors.New("missing title")
	case strings.TrimSpace(i.Description) == "":
		return errors.New("missing description")
	case !i.Category.Valid():
		return fmt.Errorf("unknown category %q", i.Category)
	case len(i.TechStack) == 0:
		return errors.New("empty tech stack")
	case strings.TrimSpace(i.Justification) == "":
		return errors.New("missing justification")
	}
	for n, tech := range i.TechStack {
		if strings.TrimSpace(tech) == "" {
			return fmt.Errorf("tech stack entry %d is empty", n)
		}
	}
	return nil
}

// ValidateBatch checks a freshly generated batch. A single bad idea rejects
// the whole batch.
func ValidateBatch(ideas []Idea) error {
	if len(ideas) != IdeasPerBatch {
		return fmt.Errorf("%w: got %d ideas, want %d", ErrInvalidBatch, len(ideas), IdeasPerBatch)
	}
	for n, idea := range ideas {
		if err := idea.Validate(); err != nil {
			return fmt.Errorf("%w: idea %d: %v", ErrInvalidBatch, n+1, err)
		}
	}
	return nil
}

// CloneIdeas returns a deep copy so callers never share tech stack slices.
func CloneIdeas(ideas []Idea) []Idea {
	if ideas == nil {
		return nil
	}
	out := make([]Idea, len(ideas))
	for n, idea := range ideas {
		out[n] = idea
		out[n].TechStack = append([]string(nil), idea.TechStack...)
	}
	return out
}
