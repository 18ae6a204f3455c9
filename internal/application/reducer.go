package application

import (
	"fmt"
	"strings"

	"hackathon-ideas/internal/domain"
)

// Reduce applies one event to the state. It has no side effects; the work it
// needs done is returned as effects.
func Reduce(s State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case EditRules, ToggleRecording, TranscriptFinalized, RecognitionFailed, RecognitionEnded:
		return reduceRecording(s, ev)
	case GenerateIdeas, IdeasGenerated, GenerationFailed:
		return reduceGeneration(s, ev)
	case ReadAloud, AudioFetched, AudioFetchFailed, PlaybackEnded, PlaybackFailed:
		return reducePlayback(s, ev)
	case SaveIdeas, SnapshotLoaded, SnapshotSaved, SnapshotSaveFailed:
		return reducePersistence(s, ev)
	default:
		return s, nil
	}
}

func reduceRecording(s State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case EditRules:
		if s.Recording {
			return s, nil
		}
		s.Rules = ev.Text
		return s, nil

	case ToggleRecording:
		if !s.SpeechSupported {
			return s, nil
		}
		s.Error = ""
		if s.Recording {
			s.Recording = false
			return s, []Effect{StopRecognition{}}
		}
		s.Rules = ""
		s.Recording = true
		s.RecognitionSession++
		return s, []Effect{StartRecognition{Session: s.RecognitionSession}}

	case TranscriptFinalized:
		if ev.Session != s.RecognitionSession || strings.TrimSpace(ev.Text) == "" {
			return s, nil
		}
		s.Rules = domain.AppendTranscript(s.Rules, ev.Text)
		return s, nil

	case RecognitionFailed:
		if ev.Session != s.RecognitionSession {
			return s, nil
		}
		s.Recording = false
		s.Error = fmt.Sprintf(errRecognition, ev.Detail)
		return s, nil

	case RecognitionEnded:
		if ev.Session != s.RecognitionSession {
			return s, nil
		}
		s.Recording = false
		return s, nil
	}
	return s, nil
}

func reduceGeneration(s State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case GenerateIdeas:
		if strings.TrimSpace(s.Rules) == "" || s.Loading || s.Recording {
			return s, nil
		}
		s.Loading = true
		s.Error = ""
		return s, []Effect{RequestIdeas{Rules: s.Rules}}

	case IdeasGenerated:
		if !s.Loading {
			return s, nil
		}
		s.Loading = false
		s.Ideas = domain.CloneIdeas(ev.Ideas)
		s.Saved = false
		s.Batch++
		return s, []Effect{NotifyIdeas{Ideas: domain.CloneIdeas(ev.Ideas)}}

	case GenerationFailed:
		if !s.Loading {
			return s, nil
		}
		s.Loading = false
		s.Error = fmt.Sprintf(errGeneration, errText(ev.Err))
		return s, nil
	}
	return s, nil
}

func reducePlayback(s State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case ReadAloud:
		if s.Speaking {
			s.Speaking = false
			s.Error = ""
			return s, []Effect{StopPlayback{}}
		}
		if len(s.Ideas) == 0 || s.Loading || s.FetchingAudio {
			return s, nil
		}
		s.FetchingAudio = true
		s.Error = ""
		return s, []Effect{RequestAudio{Text: domain.Narration(s.Ideas)}}

	case AudioFetched:
		if !s.FetchingAudio {
			return s, nil
		}
		s.FetchingAudio = false
		if len(ev.Audio) == 0 {
			s.Error = errNoAudio
			return s, nil
		}
		s.Speaking = true
		s.Playback++
		return s, []Effect{StartPlayback{ID: s.Playback, Audio: ev.Audio}}

	case AudioFetchFailed:
		if !s.FetchingAudio {
			return s, nil
		}
		s.FetchingAudio = false
		s.Speaking = false
		s.Error = fmt.Sprintf(errSynthesis, errText(ev.Err))
		return s, nil

	case PlaybackEnded:
		if ev.ID != s.Playback || !s.Speaking {
			return s, nil
		}
		s.Speaking = false
		return s, []Effect{ReleasePlayback{ID: ev.ID}}

	case PlaybackFailed:
		if ev.ID != s.Playback || !s.Speaking {
			return s, nil
		}
		s.Speaking = false
		s.Error = errPlayback
		return s, []Effect{ReleasePlayback{ID: ev.ID}}
	}
	return s, nil
}

func reducePersistence(s State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case SaveIdeas:
		if len(s.Ideas) == 0 {
			return s, nil
		}
		s.Error = ""
		return s, []Effect{PersistSnapshot{Batch: s.Batch, Ideas: domain.CloneIdeas(s.Ideas)}}

	case SnapshotLoaded:
		if len(ev.Ideas) == 0 {
			return s, nil
		}
		s.Ideas = domain.CloneIdeas(ev.Ideas)
		s.Saved = true
		return s, nil

	case SnapshotSaved:
		if ev.Batch != s.Batch {
			return s, nil
		}
		s.Saved = true
		return s, nil

	case SnapshotSaveFailed:
		s.Error = errSaveFailed
		return s, nil
	}
	return s, nil
}

func errText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
