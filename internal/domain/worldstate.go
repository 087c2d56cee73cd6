package domain

import "strings"

// NormalizeKey maps an identifier to its case-insensitive identity. Two keys
// name the same entry iff their normalized forms are byte-identical. The
// normalization is explicit and locale-independent; it must never depend on
// host locale settings.
func NormalizeKey(key string) string {
	return strings.ToLower(key)
}

// WorldStateEntry is a current, mutable key/value fact about the simulated
// world. Keys are unique under case-insensitive comparison and the most
// recent Set wins.
type WorldStateEntry struct {
	Key            string `json:"key"`
	Value          string `json:"value"`
	MutationSource string `json:"mutation_source,omitempty"`
	SequenceNumber int64  `json:"sequence_number"`
}
