package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStateSnapshotDefaults(t *testing.T) {
	s := NewStateSnapshot(SnapshotParams{
		SystemPrompt: "You are Mara the innkeeper.",
		PlayerInput:  "Any news?",
	})

	require.NotEmpty(t, s.ID)
	assert.Equal(t, 1, s.AttemptNumber)
	assert.Equal(t, DefaultMaxAttempts, s.MaxAttempts)
	assert.True(t, s.CanRetry())
}

func TestForRetryMergesConstraints(t *testing.T) {
	parent := NewStateSnapshot(SnapshotParams{
		PlayerInput: "Any news?",
		Constraints: []string{"stay in character", "no spoilers"},
		Metadata:    map[string]string{"npc": "mara"},
		MaxAttempts: 3,
	})

	retry := parent.ForRetry("no spoilers", "shorter answer")

	require.NotEqual(t, parent.ID, retry.ID, "retry must mint a fresh identifier")
	assert.Equal(t, 2, retry.AttemptNumber)
	assert.Equal(t, []string{"stay in character", "no spoilers", "shorter answer"}, retry.Constraints)

	// The parent is untouched and shares no mutable state with the retry.
	assert.Equal(t, 1, parent.AttemptNumber)
	assert.Equal(t, []string{"stay in character", "no spoilers"}, parent.Constraints)
	retry.Metadata["npc"] = "aldric"
	assert.Equal(t, "mara", parent.Metadata["npc"])
}

func TestForRetryCopiesContext(t *testing.T) {
	rc := &RetrievedContext{
		EpisodicMemories: []string{"the guard hid the treasure"},
		TotalCount:       1,
		HasContent:       true,
	}
	parent := NewStateSnapshot(SnapshotParams{Context: rc})

	retry := parent.ForRetry()
	require.NotNil(t, retry.Context)
	retry.Context.EpisodicMemories[0] = "tampered"
	assert.Equal(t, "the guard hid the treasure", parent.Context.EpisodicMemories[0])

	// The caller's original bundle is also isolated from the snapshot.
	rc.EpisodicMemories[0] = "tampered at source"
	assert.Equal(t, "the guard hid the treasure", parent.Context.EpisodicMemories[0])
}

func TestCanRetryBoundary(t *testing.T) {
	s := NewStateSnapshot(SnapshotParams{MaxAttempts: 2})
	require.True(t, s.CanRetry())

	second := s.ForRetry()
	assert.Equal(t, 2, second.AttemptNumber)
	assert.False(t, second.CanRetry(), "attemptNumber == maxAttempts must block retries")
}
