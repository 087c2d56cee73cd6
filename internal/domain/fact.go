package domain

// CanonicalFact is an authoritative, rarely-changing piece of world lore.
// Facts never decay and are immutable once added; the only lifecycle
// transition after creation is explicit removal.
type CanonicalFact struct {
	ID             string `json:"id"`
	Content        string `json:"content"`
	Domain         string `json:"domain,omitempty"`
	SequenceNumber int64  `json:"sequence_number"`
}
