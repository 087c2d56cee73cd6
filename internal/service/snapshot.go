package service

import "github.com/google/uuid"

// DefaultMaxAttempts bounds generate-and-retry loops when the caller does
// not set a limit.
const DefaultMaxAttempts = 3

// SnapshotParams collects everything that goes into a snapshot. Context is
// usually a retrieval result; tests may leave it nil or hand-build one from
// direct memory slices.
type SnapshotParams struct {
	SystemPrompt string
	PlayerInput  string
	Context      *RetrievedContext
	Constraints  []string
	Metadata     map[string]string
	MaxAttempts  int
}

// StateSnapshot is the immutable bundle the downstream prompt builder
// consumes: retrieved context plus interaction metadata. Every snapshot
// carries its own freshly generated identifier. All constructors copy their
// inputs; treat a snapshot as frozen once built.
type StateSnapshot struct {
	ID            string            `json:"id"`
	SystemPrompt  string            `json:"system_prompt"`
	PlayerInput   string            `json:"player_input"`
	AttemptNumber int               `json:"attempt_number"`
	MaxAttempts   int               `json:"max_attempts"`
	Constraints   []string          `json:"constraints,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	Context       *RetrievedContext `json:"context,omitempty"`
}

func NewStateSnapshot(p SnapshotParams) *StateSnapshot {
	maxAttempts := p.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	s := &StateSnapshot{
		ID:            uuid.NewString(),
		SystemPrompt:  p.SystemPrompt,
		PlayerInput:   p.PlayerInput,
		AttemptNumber: 1,
		MaxAttempts:   maxAttempts,
		Constraints:   append([]string(nil), p.Constraints...),
		Metadata:      copyMetadata(p.Metadata),
	}
	if p.Context != nil {
		s.Context = p.Context.clone()
	}
	return s
}

// CanRetry reports whether another generation attempt is allowed.
func (s *StateSnapshot) CanRetry() bool {
	return s.AttemptNumber < s.MaxAttempts
}

// ForRetry derives the snapshot for the next attempt: a fresh identifier,
// the attempt counter incremented, and the constraint set widened to the
// union of the original constraints and the additional ones, original order
// first. Everything else is copied by value; the parent snapshot is left
// untouched.
func (s *StateSnapshot) ForRetry(additional ...string) *StateSnapshot {
	next := &StateSnapshot{
		ID:            uuid.NewString(),
		SystemPrompt:  s.SystemPrompt,
		PlayerInput:   s.PlayerInput,
		AttemptNumber: s.AttemptNumber + 1,
		MaxAttempts:   s.MaxAttempts,
		Constraints:   mergeConstraints(s.Constraints, additional),
		Metadata:      copyMetadata(s.Metadata),
	}
	if s.Context != nil {
		next.Context = s.Context.clone()
	}
	return next
}

func mergeConstraints(original, additional []string) []string {
	merged := append([]string(nil), original...)
	seen := make(map[string]struct{}, len(original))
	for _, c := range original {
		seen[c] = struct{}{}
	}
	for _, c := range additional {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		merged = append(merged, c)
	}
	return merged
}

func copyMetadata(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	cp := make(map[string]string, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}
