package store

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/npckit/mindstore/internal/domain"
)

// SetBelief upserts a belief by id. An empty id falls back to the entry's
// own ID field, then to a generated one. Updating an existing belief keeps
// its original sequence number and creation ticks so its place in the
// tie-break chain is stable; all other fields follow the latest write.
func (s *Store) SetBelief(id string, e domain.BeliefMemoryEntry, mutationSource string) (domain.BeliefMemoryEntry, error) {
	if id == "" {
		id = e.ID
	}
	if id == "" {
		id = uuid.NewString()
	}
	if e.Content == "" {
		return domain.BeliefMemoryEntry{}, ErrEmptyContent
	}

	e.ID = id
	e.Confidence = clamp01(e.Confidence)
	e.MutationSource = mutationSource

	if existing, ok := s.beliefs[id]; ok {
		e.SequenceNumber = existing.SequenceNumber
		e.CreatedAtTicks = existing.CreatedAtTicks
		*existing = e
		s.touch()
		return e, nil
	}

	if e.CreatedAtTicks == 0 {
		e.CreatedAtTicks = s.nowTicks()
	}
	e.SequenceNumber = s.nextSequence()

	cp := e
	s.beliefs[id] = &cp
	s.beliefOrder = append(s.beliefOrder, id)
	s.touch()
	return e, nil
}

// GetBelief returns a handle to a stored belief, or ErrNotFound. The handle
// is the sanctioned mutation path for contradiction marking; it never leaks
// a reference to internal state.
func (s *Store) GetBelief(id string) (*BeliefHandle, error) {
	if _, ok := s.beliefs[id]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return &BeliefHandle{store: s, id: id}, nil
}

// Beliefs returns copies of all beliefs in insertion order.
func (s *Store) Beliefs() []domain.BeliefMemoryEntry {
	out := make([]domain.BeliefMemoryEntry, 0, len(s.beliefOrder))
	for _, id := range s.beliefOrder {
		out = append(out, *s.beliefs[id])
	}
	return out
}

// RestoreBelief reinserts a persisted belief verbatim, keeping its sequence
// number and ticks.
func (s *Store) RestoreBelief(e domain.BeliefMemoryEntry) error {
	if e.ID == "" {
		return ErrEmptyID
	}
	if _, ok := s.beliefs[e.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, e.ID)
	}
	cp := e
	s.beliefs[e.ID] = &cp
	s.beliefOrder = append(s.beliefOrder, e.ID)
	s.touch()
	return nil
}

// BeliefHandle is a stable reference to one belief inside its owning store.
type BeliefHandle struct {
	store *Store
	id    string
}

// Entry returns a copy of the current belief state.
func (h *BeliefHandle) Entry() (domain.BeliefMemoryEntry, error) {
	b, ok := h.store.beliefs[h.id]
	if !ok {
		return domain.BeliefMemoryEntry{}, fmt.Errorf("%w: %s", ErrNotFound, h.id)
	}
	return *b, nil
}

// MarkContradicted flags the belief with a reason. Stored confidence is left
// untouched; the contradiction penalty is applied at scoring time only.
func (h *BeliefHandle) MarkContradicted(reason string) error {
	b, ok := h.store.beliefs[h.id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, h.id)
	}
	b.IsContradicted = true
	b.ContradictionReason = reason
	h.store.touch()
	return nil
}
