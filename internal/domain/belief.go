package domain

// BeliefMemoryEntry is a subjective, confidence-weighted claim held by an
// NPC. Confidence is the authoritative stored certainty; contradiction is
// recorded as a flag plus reason and only discounts confidence at scoring
// time, never in place.
type BeliefMemoryEntry struct {
	ID                  string  `json:"id"`
	Subject             string  `json:"subject"`
	Content             string  `json:"content"`
	Sentiment           float64 `json:"sentiment"`
	Confidence          float64 `json:"confidence"`
	IsContradicted      bool    `json:"is_contradicted"`
	ContradictionReason string  `json:"contradiction_reason,omitempty"`
	CreatedAtTicks      int64   `json:"created_at_ticks"`
	SequenceNumber      int64   `json:"sequence_number"`
	MutationSource      string  `json:"mutation_source,omitempty"`
}

// EffectiveConfidence returns the certainty used for ranking and filtering:
// stored confidence multiplied by penalty when the belief is contradicted.
func (b BeliefMemoryEntry) EffectiveConfidence(penalty float64) float64 {
	if b.IsContradicted {
		return b.Confidence * penalty
	}
	return b.Confidence
}

// Summary renders the belief for context output. Contradicted beliefs carry
// a leading [Uncertain] tag so the prompt layer can hedge them.
func (b BeliefMemoryEntry) Summary() string {
	s := b.Subject + ": " + b.Content
	if b.IsContradicted {
		return "[Uncertain] " + s
	}
	return s
}
