package application

import "hackathon-ideas/internal/domain"

// Event is anything the orchestrator loop reacts to: user actions and the
// settled results of asynchronous work.
type Event interface {
	event()
}

// User actions.
type (
	EditRules       struct{ Text string }
	ToggleRecording struct{}
	GenerateIdeas   struct{}
	ReadAloud       struct{}
	SaveIdeas       struct{}
)

// Results reported by adapters.
type (
	SnapshotLoaded      struct{ Ideas []domain.Idea }
	TranscriptFinalized struct {
		Session int
		Text    string
	}
	RecognitionFailed struct {
		Session int
		Detail  string
	}
	RecognitionEnded struct{ Session int }
	IdeasGenerated   struct{ Ideas []domain.Idea }
	GenerationFailed struct{ Err error }
	AudioFetched     struct{ Audio []byte }
	AudioFetchFailed struct{ Err error }
	PlaybackEnded    struct{ ID int }
	PlaybackFailed   struct {
		ID  int
		Err error
	}
	SnapshotSaved      struct{ Batch int }
	SnapshotSaveFailed struct {
		Batch int
		Err   error
	}
)

func (EditRules) event()           {}
func (ToggleRecording) event()     {}
func (GenerateIdeas) event()       {}
func (ReadAloud) event()           {}
func (SaveIdeas) event()           {}
func (SnapshotLoaded) event()      {}
func (TranscriptFinalized) event() {}
func (RecognitionFailed) event()   {}
func (RecognitionEnded) event()    {}
func (IdeasGenerated) event()      {}
func (GenerationFailed) event()    {}
func (AudioFetched) event()        {}
func (AudioFetchFailed) event()    {}
func (PlaybackEnded) event()       {}
func (PlaybackFailed) event()      {}
func (SnapshotSaved) event()       {}
func (SnapshotSaveFailed) event()  {}

// Effect is work the reducer asks the orchestrator to perform.
type Effect interface {
	effect()
}

type (
	StartRecognition struct{ Session int }
	StopRecognition  struct{}
	RequestIdeas     struct{ Rules string }
	RequestAudio     struct{ Text string }
	StartPlayback    struct {
		ID    int
		Audio []byte
	}
	StopPlayback    struct{}
	ReleasePlayback struct{ ID int }
	PersistSnapshot struct {
		Batch int
		Ideas []domain.Idea
	}
	NotifyIdeas struct{ Ideas []domain.Idea }
)

func (StartRecognition) effect() {}
func (StopRecognition) effect()  {}
func (RequestIdeas) effect()     {}
func (RequestAudio) effect()     {}
func (StartPlayback) effect()    {}
func (StopPlayback) effect()     {}
func (ReleasePlayback) effect()  {}
func (PersistSnapshot) effect()  {}
func (NotifyIdeas) effect()      {}
