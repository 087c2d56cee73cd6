package store

import (
	"fmt"

	"github.com/npckit/mindstore/internal/domain"
)

// SetWorldState upserts a key/value fact about the world. Identity is the
// case-insensitive key; the most recent Set wins. The mutation source is
// recorded for audit. An existing entry keeps its original sequence number
// (its position in the world is stable), but the displayed key spelling,
// value, and source all follow the latest write.
func (s *Store) SetWorldState(key, value, mutationSource string) (domain.WorldStateEntry, error) {
	if key == "" {
		return domain.WorldStateEntry{}, ErrEmptyKey
	}

	norm := domain.NormalizeKey(key)
	if existing, ok := s.worldState[norm]; ok {
		existing.Key = key
		existing.Value = value
		existing.MutationSource = mutationSource
		s.touch()
		return *existing, nil
	}

	e := &domain.WorldStateEntry{
		Key:            key,
		Value:          value,
		MutationSource: mutationSource,
		SequenceNumber: s.nextSequence(),
	}
	s.worldState[norm] = e
	s.stateOrder = append(s.stateOrder, norm)
	s.touch()
	return *e, nil
}

// GetWorldState looks a key up case-insensitively. A missing key is an empty
// result, not an error.
func (s *Store) GetWorldState(key string) (domain.WorldStateEntry, bool) {
	e, ok := s.worldState[domain.NormalizeKey(key)]
	if !ok {
		return domain.WorldStateEntry{}, false
	}
	return *e, true
}

// WorldState returns copies of all entries in first-insertion order.
func (s *Store) WorldState() []domain.WorldStateEntry {
	out := make([]domain.WorldStateEntry, 0, len(s.stateOrder))
	for _, norm := range s.stateOrder {
		out = append(out, *s.worldState[norm])
	}
	return out
}

// RestoreWorldState reinserts a persisted entry verbatim, keeping its
// sequence number.
func (s *Store) RestoreWorldState(e domain.WorldStateEntry) error {
	if e.Key == "" {
		return ErrEmptyKey
	}
	norm := domain.NormalizeKey(e.Key)
	if _, ok := s.worldState[norm]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, norm)
	}
	cp := e
	s.worldState[norm] = &cp
	s.stateOrder = append(s.stateOrder, norm)
	s.touch()
	return nil
}
