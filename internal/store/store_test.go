package store

import (
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/npckit/mindstore/internal/domain"
)

func newTestStore() *Store {
	s := NewStore(zap.NewNop())
	ticks := int64(0)
	s.SetTickSource(func() int64 {
		ticks++
		return ticks
	})
	return s
}

func TestAddCanonicalFactDuplicate(t *testing.T) {
	s := newTestStore()

	if _, err := s.AddCanonicalFact("lore-1", "The kingdom fell in year 312", "history"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := s.AddCanonicalFact("lore-1", "something else", "history")
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}

	if err := s.RemoveCanonicalFact("lore-1"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := s.RemoveCanonicalFact("lore-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestWorldStateCaseInsensitiveUpsert(t *testing.T) {
	s := newTestStore()

	first, err := s.SetWorldState("Door", "closed", "init")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := s.SetWorldState("dOOr", "open", "player_action")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if second.SequenceNumber != first.SequenceNumber {
		t.Error("upsert must keep the original sequence number")
	}
	if len(s.WorldState()) != 1 {
		t.Fatalf("expected one entry, got %d", len(s.WorldState()))
	}

	got, ok := s.GetWorldState("DOOR")
	if !ok {
		t.Fatal("case-insensitive lookup failed")
	}
	if got.Value != "open" || got.MutationSource != "player_action" {
		t.Errorf("last writer must win, got %+v", got)
	}
}

func TestSequenceNumbersStrictlyIncrease(t *testing.T) {
	s := newTestStore()

	f, _ := s.AddCanonicalFact("f1", "fact", "")
	w, _ := s.SetWorldState("k", "v", "")
	e, _ := s.AddEpisodicMemory(domain.EpisodicMemoryEntry{Description: "saw a fox"}, "test")
	b, _ := s.SetBelief("b1", domain.BeliefMemoryEntry{Subject: "fox", Content: "is sly", Confidence: 0.8}, "test")

	seqs := []int64{f.SequenceNumber, w.SequenceNumber, e.SequenceNumber, b.SequenceNumber}
	for i := 1; i < len(seqs); i++ {
		if seqs[i] <= seqs[i-1] {
			t.Fatalf("sequence numbers must strictly increase, got %v", seqs)
		}
	}
}

func TestRecalculateNextSequenceNumberAfterRestore(t *testing.T) {
	s := newTestStore()

	if err := s.RestoreEpisodicMemory(domain.EpisodicMemoryEntry{
		Description: "restored", Strength: 0.9, CreatedAtTicks: 50, SequenceNumber: 41,
	}); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if err := s.RestoreBelief(domain.BeliefMemoryEntry{
		ID: "b1", Subject: "s", Content: "c", Confidence: 0.7, SequenceNumber: 17,
	}); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	if next := s.RecalculateNextSequenceNumber(); next != 42 {
		t.Fatalf("expected next sequence 42, got %d", next)
	}

	e, _ := s.AddEpisodicMemory(domain.EpisodicMemoryEntry{Description: "fresh"}, "test")
	if e.SequenceNumber != 42 {
		t.Fatalf("expected restored max+1, got %d", e.SequenceNumber)
	}
}

func TestEpisodicCallerSuppliedTicks(t *testing.T) {
	s := newTestStore()

	pinned, _ := s.AddEpisodicMemory(domain.EpisodicMemoryEntry{Description: "pinned", CreatedAtTicks: 777}, "test")
	if pinned.CreatedAtTicks != 777 {
		t.Errorf("caller-supplied ticks must be honored, got %d", pinned.CreatedAtTicks)
	}

	assigned, _ := s.AddEpisodicMemory(domain.EpisodicMemoryEntry{Description: "clocked"}, "test")
	if assigned.CreatedAtTicks == 0 {
		t.Error("store must assign ticks when the caller leaves them unset")
	}
}

func TestEpisodicValidation(t *testing.T) {
	s := newTestStore()

	if _, err := s.AddEpisodicMemory(domain.EpisodicMemoryEntry{}, "test"); !errors.Is(err, ErrEmptyContent) {
		t.Errorf("expected ErrEmptyContent, got %v", err)
	}
	if _, err := s.AddEpisodicMemory(domain.EpisodicMemoryEntry{Description: "x", Type: "daydream"}, "test"); !errors.Is(err, ErrInvalidEpisodeType) {
		t.Errorf("expected ErrInvalidEpisodeType, got %v", err)
	}

	e, err := s.AddEpisodicMemory(domain.EpisodicMemoryEntry{Description: "x", Significance: 3.5}, "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Significance != 1.0 {
		t.Errorf("significance must clamp to [0,1], got %f", e.Significance)
	}
	if e.Strength != InitialStrength {
		t.Errorf("zero strength must default to %f, got %f", InitialStrength, e.Strength)
	}
}

func TestAddDialogue(t *testing.T) {
	s := newTestStore()

	e, err := s.AddDialogue("Mara", "Welcome back, traveler.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Type != domain.EpisodeDialogue {
		t.Errorf("expected dialogue type, got %s", e.Type)
	}
	if e.Description != "Mara: Welcome back, traveler." {
		t.Errorf("unexpected description %q", e.Description)
	}
	if e.MutationSource != "Mara" {
		t.Errorf("speaker must be recorded as source, got %q", e.MutationSource)
	}
}

func TestBeliefHandleMarkContradicted(t *testing.T) {
	s := newTestStore()

	if _, err := s.GetBelief("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	set, _ := s.SetBelief("b1", domain.BeliefMemoryEntry{Subject: "guard", Content: "takes bribes", Confidence: 0.9}, "test")

	h, err := s.GetBelief("b1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := h.MarkContradicted("guard refused a bribe"); err != nil {
		t.Fatalf("mark failed: %v", err)
	}

	got, _ := h.Entry()
	if !got.IsContradicted || got.ContradictionReason != "guard refused a bribe" {
		t.Errorf("contradiction not recorded: %+v", got)
	}
	if got.Confidence != set.Confidence {
		t.Errorf("stored confidence must not change on contradiction, got %f", got.Confidence)
	}
}

func TestSetBeliefUpsertKeepsIdentity(t *testing.T) {
	s := newTestStore()

	first, _ := s.SetBelief("b1", domain.BeliefMemoryEntry{Subject: "fox", Content: "is sly", Confidence: 0.6}, "test")
	second, _ := s.SetBelief("b1", domain.BeliefMemoryEntry{Subject: "fox", Content: "is friendly", Confidence: 0.8}, "test")

	if second.SequenceNumber != first.SequenceNumber {
		t.Error("upsert must keep the original sequence number")
	}
	if second.CreatedAtTicks != first.CreatedAtTicks {
		t.Error("upsert must keep the original ticks")
	}
	if len(s.Beliefs()) != 1 {
		t.Fatalf("expected one belief, got %d", len(s.Beliefs()))
	}
	if s.Beliefs()[0].Content != "is friendly" {
		t.Error("latest write must win")
	}
}

func TestRelationshipOwnerAuthority(t *testing.T) {
	s := newTestStore()

	entry := domain.RelationshipEntry{OwnerNPCID: "Aldric", TargetID: "player", Label: "distrusts"}
	if err := s.SetRelationship("mara", entry); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if err := s.SetRelationship("ALDRIC", entry); err != nil {
		t.Fatalf("owner mutation must succeed case-insensitively: %v", err)
	}

	entry.Label = "trusts"
	if err := s.SetRelationship("aldric", entry); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	rels := s.RelationshipsOf("aldric")
	if len(rels) != 1 || rels[0].Label != "trusts" {
		t.Errorf("unexpected relationships %+v", rels)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	s := newTestStore()

	_, _ = s.AddCanonicalFact("f1", "original", "")
	_, _ = s.AddEpisodicMemory(domain.EpisodicMemoryEntry{Description: "original"}, "test")
	_, _ = s.SetBelief("b1", domain.BeliefMemoryEntry{Subject: "s", Content: "original", Confidence: 0.9}, "test")

	s.CanonicalFacts()[0].Content = "tampered"
	s.GetActiveEpisodicMemories()[0].Description = "tampered"
	s.Beliefs()[0].Content = "tampered"

	if s.CanonicalFacts()[0].Content != "original" {
		t.Error("fact accessor leaked a mutable reference")
	}
	if s.GetActiveEpisodicMemories()[0].Description != "original" {
		t.Error("episodic accessor leaked a mutable reference")
	}
	if s.Beliefs()[0].Content != "original" {
		t.Error("belief accessor leaked a mutable reference")
	}
}

func TestVersionBumpsOnMutation(t *testing.T) {
	s := newTestStore()

	v0 := s.Version()
	_, _ = s.SetWorldState("k", "v", "")
	if s.Version() == v0 {
		t.Error("mutation must bump the store version")
	}

	v1 := s.Version()
	_ = s.WorldState()
	_, _ = s.GetWorldState("k")
	if s.Version() != v1 {
		t.Error("reads must not bump the store version")
	}
}
