package store

import (
	"github.com/npckit/mindstore/internal/domain"
)

const (
	// InitialStrength is assigned when a new episodic entry arrives with a
	// zero strength.
	InitialStrength = 1.0
	// DialogueSignificance is the default significance for dialogue turns.
	DialogueSignificance = 0.5
)

// AddEpisodicMemory records an episodic entry, assigning the next sequence
// number and, unless the caller pre-set CreatedAtTicks, the current tick.
// A zero Strength is treated as unset and defaults to InitialStrength;
// significance and strength are clamped into [0,1]. Episodic ids are free
// text and may repeat; ordering identity comes from the sequence number.
func (s *Store) AddEpisodicMemory(e domain.EpisodicMemoryEntry, mutationSource string) (domain.EpisodicMemoryEntry, error) {
	if e.Description == "" {
		return domain.EpisodicMemoryEntry{}, ErrEmptyContent
	}
	if e.Type == "" {
		e.Type = domain.EpisodeEvent
	} else if !domain.ValidEpisodeType(string(e.Type)) {
		return domain.EpisodicMemoryEntry{}, ErrInvalidEpisodeType
	}

	if e.Strength == 0 {
		e.Strength = InitialStrength
	}
	e.Strength = clamp01(e.Strength)
	e.Significance = clamp01(e.Significance)

	if e.CreatedAtTicks == 0 {
		e.CreatedAtTicks = s.nowTicks()
	}
	e.SequenceNumber = s.nextSequence()
	e.MutationSource = mutationSource

	cp := e
	s.episodes = append(s.episodes, &cp)
	s.touch()
	return e, nil
}

// AddDialogue records one spoken line as an episodic dialogue entry.
func (s *Store) AddDialogue(speaker, text string) (domain.EpisodicMemoryEntry, error) {
	if speaker == "" || text == "" {
		return domain.EpisodicMemoryEntry{}, ErrEmptyContent
	}
	return s.AddEpisodicMemory(domain.EpisodicMemoryEntry{
		Description:  speaker + ": " + text,
		Type:         domain.EpisodeDialogue,
		Significance: DialogueSignificance,
		Strength:     InitialStrength,
	}, speaker)
}

// GetActiveEpisodicMemories returns copies of all entries whose strength has
// not decayed to zero, in insertion order. Fully decayed entries stay in the
// store but drop out of this view.
func (s *Store) GetActiveEpisodicMemories() []domain.EpisodicMemoryEntry {
	out := make([]domain.EpisodicMemoryEntry, 0, len(s.episodes))
	for _, e := range s.episodes {
		if e.Strength > 0 {
			out = append(out, *e)
		}
	}
	return out
}

// EpisodicMemories returns copies of every episodic entry, decayed or not,
// in insertion order.
func (s *Store) EpisodicMemories() []domain.EpisodicMemoryEntry {
	out := make([]domain.EpisodicMemoryEntry, 0, len(s.episodes))
	for _, e := range s.episodes {
		out = append(out, *e)
	}
	return out
}

// RestoreEpisodicMemory reinserts a persisted entry verbatim, keeping its
// sequence number and ticks. Callers must run RecalculateNextSequenceNumber
// after a bulk restore.
func (s *Store) RestoreEpisodicMemory(e domain.EpisodicMemoryEntry) error {
	if e.Description == "" {
		return ErrEmptyContent
	}
	cp := e
	s.episodes = append(s.episodes, &cp)
	s.touch()
	return nil
}
