// Package service turns the authoritative memory store into bounded,
// reproducible context bundles for the prompt layer. Retrieval is a pure
// read: identical store state, query, topics, and config always produce a
// byte-identical RetrievedContext, including ordering. That contract is what
// makes the result cacheable and the dialogue agent reproducible.
package service

import (
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/npckit/mindstore/internal/store"
)

// Defaults for ContextRetrievalConfig. The contradiction penalty and topic
// boost are empirical constants carried over from the original tuning; they
// are configurable but not reinterpreted.
const (
	DefaultMaxCanonicalFacts   = 10
	DefaultMaxWorldState       = 20
	DefaultMaxEpisodicMemories = 10
	DefaultMaxBeliefs          = 10

	DefaultMinEpisodicStrength = 0.2
	DefaultMinBeliefConfidence = 0.5

	DefaultRelevanceWeight    = 0.4
	DefaultRecencyWeight      = 0.4
	DefaultSignificanceWeight = 0.2

	DefaultContradictionPenalty = 0.5
	DefaultTopicMatchBoost      = 0.2

	// Belief scoring blends relevance and effective confidence at a fixed
	// 60/40 split.
	beliefRelevanceWeight  = 0.6
	beliefConfidenceWeight = 0.4
)

// ContextRetrievalConfig bounds and weights one engine's retrieval. Out of
// range values are clamped or used as-is rather than rejected; scoring is
// linear and degrades gracefully to zero.
type ContextRetrievalConfig struct {
	MaxCanonicalFacts   int
	MaxWorldState       int
	MaxEpisodicMemories int
	MaxBeliefs          int

	MinEpisodicStrength float64
	MinBeliefConfidence float64

	// IncludeContradictedBeliefs admits contradicted beliefs into results at
	// their penalized score, even below MinBeliefConfidence. When false they
	// are dropped entirely.
	IncludeContradictedBeliefs bool

	RelevanceWeight    float64
	RecencyWeight      float64
	SignificanceWeight float64

	ContradictionPenalty float64
	TopicMatchBoost      float64
}

func DefaultContextRetrievalConfig() ContextRetrievalConfig {
	return ContextRetrievalConfig{
		MaxCanonicalFacts:    DefaultMaxCanonicalFacts,
		MaxWorldState:        DefaultMaxWorldState,
		MaxEpisodicMemories:  DefaultMaxEpisodicMemories,
		MaxBeliefs:           DefaultMaxBeliefs,
		MinEpisodicStrength:  DefaultMinEpisodicStrength,
		MinBeliefConfidence:  DefaultMinBeliefConfidence,
		RelevanceWeight:      DefaultRelevanceWeight,
		RecencyWeight:        DefaultRecencyWeight,
		SignificanceWeight:   DefaultSignificanceWeight,
		ContradictionPenalty: DefaultContradictionPenalty,
		TopicMatchBoost:      DefaultTopicMatchBoost,
	}
}

// normalized clamps negative limits to zero and zeroes non-finite values so
// no NaN can ever reach the ordering comparators, not even via Inf*0 in a
// score term. Weights are otherwise used as-is; a zero or out-of-range
// weight just collapses that score term.
func (c ContextRetrievalConfig) normalized() ContextRetrievalConfig {
	if c.MaxCanonicalFacts < 0 {
		c.MaxCanonicalFacts = 0
	}
	if c.MaxWorldState < 0 {
		c.MaxWorldState = 0
	}
	if c.MaxEpisodicMemories < 0 {
		c.MaxEpisodicMemories = 0
	}
	if c.MaxBeliefs < 0 {
		c.MaxBeliefs = 0
	}
	c.MinEpisodicStrength = finiteOrZero(c.MinEpisodicStrength)
	c.MinBeliefConfidence = finiteOrZero(c.MinBeliefConfidence)
	c.RelevanceWeight = finiteOrZero(c.RelevanceWeight)
	c.RecencyWeight = finiteOrZero(c.RecencyWeight)
	c.SignificanceWeight = finiteOrZero(c.SignificanceWeight)
	c.ContradictionPenalty = finiteOrZero(c.ContradictionPenalty)
	c.TopicMatchBoost = finiteOrZero(c.TopicMatchBoost)
	return c
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// WorldStatePair is one retrieved key/value world fact.
type WorldStatePair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ContextWriter receives one named section of retrieved context at a time;
// the prompt builder implements it.
type ContextWriter interface {
	WriteSection(name string, lines []string)
}

// RetrievedContext is the bounded, deterministically ordered memory bundle
// handed to the prompt layer. Treat it as immutable.
type RetrievedContext struct {
	CanonicalFacts   []string         `json:"canonical_facts"`
	WorldState       []WorldStatePair `json:"world_state"`
	EpisodicMemories []string         `json:"episodic_memories"`
	Beliefs          []string         `json:"beliefs"`
	TotalCount       int              `json:"total_count"`
	HasContent       bool             `json:"has_content"`
}

// ApplyTo streams the non-empty sections into a prompt builder, in the fixed
// section order facts, world state, episodic memories, beliefs.
func (rc *RetrievedContext) ApplyTo(w ContextWriter) {
	if len(rc.CanonicalFacts) > 0 {
		w.WriteSection("canonical_facts", rc.CanonicalFacts)
	}
	if len(rc.WorldState) > 0 {
		lines := make([]string, 0, len(rc.WorldState))
		for _, p := range rc.WorldState {
			lines = append(lines, p.Key+": "+p.Value)
		}
		w.WriteSection("world_state", lines)
	}
	if len(rc.EpisodicMemories) > 0 {
		w.WriteSection("episodic_memories", rc.EpisodicMemories)
	}
	if len(rc.Beliefs) > 0 {
		w.WriteSection("beliefs", rc.Beliefs)
	}
}

func (rc *RetrievedContext) clone() *RetrievedContext {
	cp := &RetrievedContext{
		CanonicalFacts:   append([]string(nil), rc.CanonicalFacts...),
		WorldState:       append([]WorldStatePair(nil), rc.WorldState...),
		EpisodicMemories: append([]string(nil), rc.EpisodicMemories...),
		Beliefs:          append([]string(nil), rc.Beliefs...),
		TotalCount:       rc.TotalCount,
		HasContent:       rc.HasContent,
	}
	return cp
}

// Engine ranks and filters store state into RetrievedContext bundles.
type Engine struct {
	store  *store.Store
	cfg    ContextRetrievalConfig
	logger *zap.Logger
	cache  *retrievalCache
}

func NewEngine(st *store.Store, cfg ContextRetrievalConfig, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		store:  st,
		cfg:    cfg.normalized(),
		logger: logger,
	}
}

func (e *Engine) Config() ContextRetrievalConfig {
	return e.cfg
}

// SetConfig swaps the retrieval configuration and drops any cached results,
// since cached bundles embed the old weights.
func (e *Engine) SetConfig(cfg ContextRetrievalConfig) {
	e.cfg = cfg.normalized()
	if e.cache != nil {
		e.cache.purge()
	}
}

// RetrieveContext ranks current store state against the query and optional
// topic filters. It never fails: an empty store, empty query, or nil topic
// list all degrade to empty or zero-relevance results.
func (e *Engine) RetrieveContext(query string, topics []string) *RetrievedContext {
	if e.cache != nil {
		if rc, ok := e.cache.get(e.store.Version(), query, topics); ok {
			return rc
		}
	}

	terms := queryTerms(query)
	emptyQuery := strings.TrimSpace(query) == ""

	rc := &RetrievedContext{
		CanonicalFacts:   e.selectFacts(topics),
		WorldState:       e.selectWorldState(topics),
		EpisodicMemories: e.selectEpisodic(terms, emptyQuery, topics),
		Beliefs:          e.selectBeliefs(terms, emptyQuery, topics),
	}
	rc.TotalCount = len(rc.CanonicalFacts) + len(rc.WorldState) + len(rc.EpisodicMemories) + len(rc.Beliefs)
	rc.HasContent = rc.TotalCount > 0

	e.logger.Debug("context retrieved",
		zap.Int("query_terms", len(terms)),
		zap.Int("topics", len(topics)),
		zap.Int("total", rc.TotalCount))

	if e.cache != nil {
		e.cache.put(e.store.Version(), query, topics, rc)
	}
	return rc
}

// selectFacts prioritizes facts whose domain matches a supplied topic, then
// falls back to insertion order. Facts are not weighted-scored.
func (e *Engine) selectFacts(topics []string) []string {
	facts := e.store.CanonicalFacts()
	matched := make([]string, 0, len(facts))
	var rest []string
	for _, f := range facts {
		if topicMatched(topics, f.Domain) {
			matched = append(matched, f.Content)
		} else {
			rest = append(rest, f.Content)
		}
	}
	out := append(matched, rest...)
	if len(out) > e.cfg.MaxCanonicalFacts {
		out = out[:e.cfg.MaxCanonicalFacts]
	}
	return out
}

// selectWorldState prioritizes entries whose key matches a supplied topic
// (case-insensitive), then falls back to insertion order.
func (e *Engine) selectWorldState(topics []string) []WorldStatePair {
	entries := e.store.WorldState()
	matched := make([]WorldStatePair, 0, len(entries))
	var rest []WorldStatePair
	for _, w := range entries {
		pair := WorldStatePair{Key: w.Key, Value: w.Value}
		if topicMatched(topics, w.Key) {
			matched = append(matched, pair)
		} else {
			rest = append(rest, pair)
		}
	}
	out := append(matched, rest...)
	if len(out) > e.cfg.MaxWorldState {
		out = out[:e.cfg.MaxWorldState]
	}
	return out
}

func (e *Engine) selectEpisodic(terms []string, emptyQuery bool, topics []string) []string {
	mems := e.store.GetActiveEpisodicMemories()
	cands := make([]rankedCandidate, 0, len(mems))
	for _, m := range mems {
		if m.Strength < e.cfg.MinEpisodicStrength {
			continue
		}
		rel := relevanceScore(terms, emptyQuery, topics, m.Description, e.cfg.TopicMatchBoost)
		score := e.cfg.RelevanceWeight*rel +
			e.cfg.RecencyWeight*m.Strength +
			e.cfg.SignificanceWeight*m.Significance
		cands = append(cands, rankedCandidate{
			score: score,
			ticks: m.CreatedAtTicks,
			id:    m.ID,
			seq:   m.SequenceNumber,
			line:  m.Description,
		})
	}
	return takeLines(cands, e.cfg.MaxEpisodicMemories)
}

func (e *Engine) selectBeliefs(terms []string, emptyQuery bool, topics []string) []string {
	beliefs := e.store.Beliefs()
	cands := make([]rankedCandidate, 0, len(beliefs))
	for _, b := range beliefs {
		if b.IsContradicted && !e.cfg.IncludeContradictedBeliefs {
			continue
		}
		eff := b.EffectiveConfidence(e.cfg.ContradictionPenalty)
		// The confidence floor is an inclusive lower bound. Contradicted
		// beliefs, once admitted, may score below it.
		if !b.IsContradicted && eff < e.cfg.MinBeliefConfidence {
			continue
		}
		rel := relevanceScore(terms, emptyQuery, topics, b.Content, e.cfg.TopicMatchBoost)
		score := beliefRelevanceWeight*rel + beliefConfidenceWeight*eff
		cands = append(cands, rankedCandidate{
			score: score,
			ticks: b.CreatedAtTicks,
			id:    b.ID,
			seq:   b.SequenceNumber,
			line:  b.Summary(),
		})
	}
	return takeLines(cands, e.cfg.MaxBeliefs)
}
