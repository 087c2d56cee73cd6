package domain

// EpisodeType classifies how an episodic memory was formed.
type EpisodeType string

const (
	EpisodeObservation EpisodeType = "observation"
	EpisodeEvent       EpisodeType = "event"
	EpisodeDialogue    EpisodeType = "dialogue"
	EpisodeReflection  EpisodeType = "reflection"
)

func ValidEpisodeType(t string) bool {
	switch EpisodeType(t) {
	case EpisodeObservation, EpisodeEvent, EpisodeDialogue, EpisodeReflection:
		return true
	}
	return false
}

// EpisodicMemoryEntry is a timestamped record of something that happened.
// Significance is fixed at creation; Strength starts high and is reduced by
// explicit decay calls on the owning store, never by wall-clock time.
// CreatedAtTicks and SequenceNumber are assigned by the store unless the
// caller pre-sets CreatedAtTicks to a nonzero value.
//
// IDs are caller-chosen and not required to be unique; the store-assigned
// SequenceNumber is the identity used for final ordering.
type EpisodicMemoryEntry struct {
	ID             string      `json:"id,omitempty"`
	Description    string      `json:"description"`
	Type           EpisodeType `json:"type"`
	Significance   float64     `json:"significance"`
	Strength       float64     `json:"strength"`
	CreatedAtTicks int64       `json:"created_at_ticks"`
	SequenceNumber int64       `json:"sequence_number"`
	MutationSource string      `json:"mutation_source,omitempty"`
}
