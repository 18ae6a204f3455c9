// Package prompt holds the instruction and response schema shared by every
// idea generation provider.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"hackathon-ideas/internal/domain"
)

// Ideas builds the mentor instruction embedding the user's rules.
func Ideas(rules string) string {
	return fmt.Sprintf(`
You are an expert AI Hackathon Mentor. Your goal is to generate innovative, useful, or delightfully weird project ideas based on a given set of hackathon rules.

The user has provided the following hackathon description:
---
%s
---

Based on these rules, generate exactly %d distinct and creative project ideas. For each idea, you must provide:
1.  A catchy project title.
2.  A one-paragraph description of the project.
3.  A "Category" from the available enum options.
4.  A suggested "Tech Stack", which MUST include the core requirements mentioned in the rules (e.g., LiquidMetal AI Raindrop Platform, Vultr). You can add other relevant technologies from the partners list or general web technologies.
5.  A "Justification" explaining exactly how the project meets the core requirements of the hackathon.

Return the output as a JSON object that matches the provided schema. The root of the JSON should be an array of these idea objects.
`, rules, domain.IdeasPerBatch)
}

// Schema is the response schema in the OpenAPI subset accepted by Gemini.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

func IdeasSchema() *Schema {
	categories := make([]string, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		categories = append(categories, string(c))
	}

	idea := &Schema{
		Type: "OBJECT",
		Properties: map[string]*Schema{
			"title": {
				Type:        "STRING",
				Description: "A catchy and descriptive project title.",
			},
			"description": {
				Type:        "STRING",
				Description: "A one-paragraph summary of the project idea.",
			},
			"category": {
				Type:        "STRING",
				Description: "The category of the project.",
				Enum:        categories,
			},
			"techStack": {
				Type: "ARRAY",
				Items: &Schema{
					Type:        "STRING",
					Description: "A technology or service in the stack.",
				},
				Description: "A list of suggested technologies, including required hackathon platforms.",
			},
			"justification": {
				Type:        "STRING",
				Description: "An explanation of how this idea meets the hackathon's core requirements.",
			},
		},
		Required: []string{"title", "description", "category", "techStack", "justification"},
	}

	return &Schema{Type: "ARRAY", Items: idea}
}

// SchemaJSON renders the schema for providers that take it as plain text.
func SchemaJSON() string {
	data, err := json.MarshalIndent(IdeasSchema(), "", "  ")
	if err != nil {
		return ""
	}
	return string(data)
}

// ParseIdeas decodes a model reply into a validated batch. Markdown code
// fences around the JSON are tolerated.
func ParseIdeas(text string) ([]domain.Idea, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var ideas []domain.Idea
	if err := json.Unmarshal([]byte(text), &ideas); err != nil {
		return nil, fmt.Errorf("parsing ideas JSON: %w", err)
	}
	if err := domain.ValidateBatch(ideas); err != nil {
		return nil, err
	}
	return ideas, nil
}
