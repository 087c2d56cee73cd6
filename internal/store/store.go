// Package store owns all mutable NPC memory state: canonical facts, world
// state, episodic history, beliefs, and relationships. The Store is the sole
// writer of that state; every mutation records provenance and ordering
// metadata, and query accessors hand out copies only.
//
// A Store has a single logical owner (one NPC or session) and does no
// internal locking. Callers that share a Store across goroutines must
// serialize access themselves, ideally with a single-writer lock or an actor
// loop around the whole Store: sequence assignment and decay are cross-entry
// invariants that must be observed atomically.
package store

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/npckit/mindstore/internal/domain"
)

type Store struct {
	logger   *zap.Logger
	nowTicks func() int64

	nextSeq int64
	version uint64

	facts     map[string]*domain.CanonicalFact
	factOrder []string

	worldState map[string]*domain.WorldStateEntry
	stateOrder []string

	episodes []*domain.EpisodicMemoryEntry

	beliefs     map[string]*domain.BeliefMemoryEntry
	beliefOrder []string

	relationships []*domain.RelationshipEntry

	decayStep float64
}

func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		logger:     logger,
		nowTicks:   func() int64 { return time.Now().UnixNano() },
		facts:      make(map[string]*domain.CanonicalFact),
		worldState: make(map[string]*domain.WorldStateEntry),
		beliefs:    make(map[string]*domain.BeliefMemoryEntry),
		decayStep:  DefaultDecayStep,
	}
}

// SetTickSource replaces the clock used when a new entry arrives without a
// caller-supplied CreatedAtTicks. The default is time.Now().UnixNano().
func (s *Store) SetTickSource(f func() int64) {
	if f != nil {
		s.nowTicks = f
	}
}

// Version increments on every mutation. Retrieval caching keys on it.
func (s *Store) Version() uint64 {
	return s.version
}

func (s *Store) touch() {
	s.version++
}

// nextSequence assigns the next process-wide (per store instance) sequence
// number. Sequence numbers start at 1, strictly increase, and are never
// reused.
func (s *Store) nextSequence() int64 {
	s.nextSeq++
	return s.nextSeq
}

// RecalculateNextSequenceNumber rescans every entry and resets the internal
// counter to max(existing sequence numbers). It must be called after bulk
// restoring persisted entries, before any new mutation, or newly created
// entries could collide with restored ones. Returns the sequence number the
// next created entry will receive.
func (s *Store) RecalculateNextSequenceNumber() int64 {
	var max int64
	for _, f := range s.facts {
		if f.SequenceNumber > max {
			max = f.SequenceNumber
		}
	}
	for _, w := range s.worldState {
		if w.SequenceNumber > max {
			max = w.SequenceNumber
		}
	}
	for _, e := range s.episodes {
		if e.SequenceNumber > max {
			max = e.SequenceNumber
		}
	}
	for _, b := range s.beliefs {
		if b.SequenceNumber > max {
			max = b.SequenceNumber
		}
	}
	s.nextSeq = max
	s.logger.Debug("sequence counter recalculated", zap.Int64("next", max+1))
	return max + 1
}

// clamp01 clips v into [0,1]. NaN maps to 0 so that no NaN ever reaches the
// scoring comparators.
func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
