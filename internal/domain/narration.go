package domain

import (
	"fmt"
	"strings"
)

// Narration renders an idea batch into the text sent to speech synthesis.
func Narration(ideas []Idea) string {
	blocks := make([]string, 0, len(ideas))
	for n, idea := range ideas {
		blocks = append(blocks, fmt.Sprintf(
			"Idea %d: %s. \n%s. \nSuggested tech stack includes %s. \nJustification: %s",
			n+1,
			idea.Title,
			idea.Description,
			strings.Join(idea.TechStack, ", "),
			idea.Justification,
		))
	}
	return strings.Join(blocks, "\n\n")
}
