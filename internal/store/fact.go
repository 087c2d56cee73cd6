package store

import (
	"fmt"

	"github.com/npckit/mindstore/internal/domain"
)

// AddCanonicalFact inserts an immutable lore fact. Fails with ErrDuplicateID
// when the id is already present; canonical facts are never silently
// overwritten.
func (s *Store) AddCanonicalFact(id, content, factDomain string) (domain.CanonicalFact, error) {
	if id == "" {
		return domain.CanonicalFact{}, ErrEmptyID
	}
	if content == "" {
		return domain.CanonicalFact{}, ErrEmptyContent
	}
	if _, ok := s.facts[id]; ok {
		return domain.CanonicalFact{}, fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}

	f := &domain.CanonicalFact{
		ID:             id,
		Content:        content,
		Domain:         factDomain,
		SequenceNumber: s.nextSequence(),
	}
	s.facts[id] = f
	s.factOrder = append(s.factOrder, id)
	s.touch()
	return *f, nil
}

// RemoveCanonicalFact is the only mutation a fact supports after creation.
func (s *Store) RemoveCanonicalFact(id string) error {
	if _, ok := s.facts[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.facts, id)
	for i, fid := range s.factOrder {
		if fid == id {
			s.factOrder = append(s.factOrder[:i], s.factOrder[i+1:]...)
			break
		}
	}
	s.touch()
	return nil
}

// CanonicalFacts returns copies of all facts in insertion order. The map is
// never enumerated directly; the explicit order slice keeps enumeration
// deterministic.
func (s *Store) CanonicalFacts() []domain.CanonicalFact {
	out := make([]domain.CanonicalFact, 0, len(s.factOrder))
	for _, id := range s.factOrder {
		out = append(out, *s.facts[id])
	}
	return out
}

// RestoreCanonicalFact reinserts a persisted fact verbatim, keeping its
// original sequence number. Callers must run RecalculateNextSequenceNumber
// after a bulk restore.
func (s *Store) RestoreCanonicalFact(f domain.CanonicalFact) error {
	if f.ID == "" {
		return ErrEmptyID
	}
	if _, ok := s.facts[f.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, f.ID)
	}
	cp := f
	s.facts[f.ID] = &cp
	s.factOrder = append(s.factOrder, f.ID)
	s.touch()
	return nil
}
