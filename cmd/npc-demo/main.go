// npc-demo walks one NPC session end to end: seed the authoritative store,
// decay it, retrieve a context bundle, and fold it into a snapshot the way a
// dialogue agent would before prompting.
package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/npckit/mindstore/internal/buildconfig"
	"github.com/npckit/mindstore/internal/config"
	"github.com/npckit/mindstore/internal/domain"
	"github.com/npckit/mindstore/internal/service"
	"github.com/npckit/mindstore/internal/store"
)

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	if err := config.Load(); err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	logger.Info("npc-demo starting",
		zap.String("version", buildconfig.Version()),
		zap.String("commit", buildconfig.Commit()))

	st := store.NewStore(logger)
	seed(logger, st)

	eng := service.NewEngine(st, config.RetrievalConfig(), logger)
	if size := config.RetrievalCacheSize(); size > 0 {
		if err := eng.EnableCache(size); err != nil {
			logger.Fatal("failed to enable retrieval cache", zap.Error(err))
		}
	}

	rc := eng.RetrieveContext("what happened with the treasure", []string{"door"})

	snap := service.NewStateSnapshot(service.SnapshotParams{
		SystemPrompt: "You are Mara, the innkeeper of the Gilded Fox.",
		PlayerInput:  "Heard anything about the treasure?",
		Context:      rc,
		Constraints:  []string{"stay in character"},
		Metadata:     map[string]string{"npc": "mara"},
	})

	fmt.Printf("snapshot %s (attempt %d/%d)\n", snap.ID, snap.AttemptNumber, snap.MaxAttempts)
	snap.Context.ApplyTo(printWriter{})

	if snap.CanRetry() {
		retry := snap.ForRetry("shorter answer")
		fmt.Printf("retry snapshot %s (attempt %d, constraints %v)\n",
			retry.ID, retry.AttemptNumber, retry.Constraints)
	}
}

func seed(logger *zap.Logger, st *store.Store) {
	mustNot := func(err error) {
		if err != nil {
			logger.Fatal("failed to seed store", zap.Error(err))
		}
	}

	_, err := st.AddCanonicalFact("lore-gilded-fox", "The Gilded Fox inn has stood for two hundred years", "history")
	mustNot(err)
	_, err = st.SetWorldState("Cellar_Door", "locked", "innkeeper")
	mustNot(err)

	_, err = st.AddDialogue("player", "Where can I find work around here?")
	mustNot(err)
	_, err = st.AddEpisodicMemory(domain.EpisodicMemoryEntry{
		Description:  "a stranger asked about the treasure behind the cellar door",
		Type:         domain.EpisodeObservation,
		Significance: 0.8,
	}, "mara")
	mustNot(err)

	_, err = st.SetBelief("belief-stranger", domain.BeliefMemoryEntry{
		Subject:    "the stranger",
		Content:    "is after the treasure",
		Sentiment:  -0.4,
		Confidence: 0.7,
	}, "mara")
	mustNot(err)

	mustNot(st.SetRelationship("mara", domain.RelationshipEntry{
		OwnerNPCID: "mara",
		TargetID:   "player",
		Label:      "cautiously friendly",
	}))

	// One night passes.
	st.ApplyEpisodicDecay()
}

type printWriter struct{}

func (printWriter) WriteSection(name string, lines []string) {
	fmt.Printf("[%s]\n", name)
	for _, line := range lines {
		fmt.Printf("  %s\n", line)
	}
}
