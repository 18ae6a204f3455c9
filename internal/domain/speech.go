package domain

import "strings"

type RecognitionKind string

const (
	RecognitionTranscript RecognitionKind = "transcript"
	RecognitionError      RecognitionKind = "error"
)

// RecognitionEvent is emitted by a speech recognizer. Only finalized
// transcripts are ever emitted; interim results never leave the adapter.
type RecognitionEvent struct {
	Kind RecognitionKind
	Text string
	Err  error
}

// AppendTranscript joins a finalized fragment onto the rules text.
func AppendTranscript(rules, fragment string) string {
	if strings.TrimSpace(rules) == "" {
		return fragment
	}
	return rules + " " + fragment
}
