package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/npckit/mindstore/internal/service"
)

// Load reads the .env file specified by MINDSTORE_ENV (or .env by default),
// then the corresponding .secret sidecar if it exists. All config is flat
// env vars read via os.Getenv after loading.
func Load() error {
	envFile := os.Getenv("MINDSTORE_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	// Missing files are fine; env vars may be set directly.
	_ = godotenv.Load(envFile)
	_ = godotenv.Load(envFile + ".secret")

	return nil
}

// LogLevel returns the log level (debug, info, warn, error).
// Defaults to "info" if not set.
func LogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return "info"
	}
	return level
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func envFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return v
}

func envBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

// RetrievalConfig assembles a ContextRetrievalConfig from env vars, falling
// back to the engine defaults for anything unset. Deployments tune limits
// and weights per title without recompiling.
func RetrievalConfig() service.ContextRetrievalConfig {
	cfg := service.DefaultContextRetrievalConfig()

	cfg.MaxCanonicalFacts = envInt("MAX_CANONICAL_FACTS", cfg.MaxCanonicalFacts)
	cfg.MaxWorldState = envInt("MAX_WORLD_STATE", cfg.MaxWorldState)
	cfg.MaxEpisodicMemories = envInt("MAX_EPISODIC_MEMORIES", cfg.MaxEpisodicMemories)
	cfg.MaxBeliefs = envInt("MAX_BELIEFS", cfg.MaxBeliefs)

	cfg.MinEpisodicStrength = envFloat("MIN_EPISODIC_STRENGTH", cfg.MinEpisodicStrength)
	cfg.MinBeliefConfidence = envFloat("MIN_BELIEF_CONFIDENCE", cfg.MinBeliefConfidence)
	cfg.IncludeContradictedBeliefs = envBool("INCLUDE_CONTRADICTED_BELIEFS", cfg.IncludeContradictedBeliefs)

	cfg.RelevanceWeight = envFloat("RELEVANCE_WEIGHT", cfg.RelevanceWeight)
	cfg.RecencyWeight = envFloat("RECENCY_WEIGHT", cfg.RecencyWeight)
	cfg.SignificanceWeight = envFloat("SIGNIFICANCE_WEIGHT", cfg.SignificanceWeight)

	cfg.ContradictionPenalty = envFloat("CONTRADICTION_PENALTY", cfg.ContradictionPenalty)
	cfg.TopicMatchBoost = envFloat("TOPIC_MATCH_BOOST", cfg.TopicMatchBoost)

	return cfg
}

// RetrievalCacheSize returns the LRU size for cached retrievals.
// Defaults to 0, meaning no cache.
func RetrievalCacheSize() int {
	return envInt("RETRIEVAL_CACHE_SIZE", 0)
}
