package store

import (
	"github.com/npckit/mindstore/internal/domain"
)

// SetRelationship upserts how an NPC relates to a target. Authority is
// owner-based: the acting NPC must be the entry's owner (case-insensitive),
// otherwise the mutation fails with ErrNotOwner.
func (s *Store) SetRelationship(actorID string, e domain.RelationshipEntry) error {
	if e.OwnerNPCID == "" || e.TargetID == "" {
		return ErrEmptyID
	}
	if !e.AuthorizedBy(actorID) {
		return ErrNotOwner
	}

	owner := domain.NormalizeKey(e.OwnerNPCID)
	target := domain.NormalizeKey(e.TargetID)
	for _, existing := range s.relationships {
		if domain.NormalizeKey(existing.OwnerNPCID) == owner && domain.NormalizeKey(existing.TargetID) == target {
			*existing = e
			s.touch()
			return nil
		}
	}

	cp := e
	s.relationships = append(s.relationships, &cp)
	s.touch()
	return nil
}

// Relationships returns copies of all relationship entries in insertion
// order.
func (s *Store) Relationships() []domain.RelationshipEntry {
	out := make([]domain.RelationshipEntry, 0, len(s.relationships))
	for _, r := range s.relationships {
		out = append(out, *r)
	}
	return out
}

// RelationshipsOf returns the entries owned by one NPC, matched
// case-insensitively, in insertion order.
func (s *Store) RelationshipsOf(ownerID string) []domain.RelationshipEntry {
	owner := domain.NormalizeKey(ownerID)
	var out []domain.RelationshipEntry
	for _, r := range s.relationships {
		if domain.NormalizeKey(r.OwnerNPCID) == owner {
			out = append(out, *r)
		}
	}
	return out
}
