package service

import (
	"sort"
	"strings"
)

// rankedCandidate carries one scored entry through the sort. Candidates are
// always materialized into a slice before ordering; map iteration order is
// never observable in results.
type rankedCandidate struct {
	score float64
	ticks int64
	id    string
	seq   int64
	line  string
}

// sortCandidates applies the full deterministic ordering: score descending,
// then createdAtTicks descending (newer first), then id ascending by ordinal
// byte-wise comparison, then sequence number ascending. Sequence numbers are
// unique per store, so the chain is a total order and float ties need no
// epsilon handling. The chain applies even when every score collapses to the
// same constant.
func sortCandidates(cands []rankedCandidate) {
	sort.Slice(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if a.ticks != b.ticks {
			return a.ticks > b.ticks
		}
		if c := strings.Compare(a.id, b.id); c != 0 {
			return c < 0
		}
		return a.seq < b.seq
	})
}

// takeLines sorts, truncates to limit, and flattens to output lines.
// Truncation happens strictly after the sort.
func takeLines(cands []rankedCandidate, limit int) []string {
	sortCandidates(cands)
	if limit >= 0 && len(cands) > limit {
		cands = cands[:limit]
	}
	lines := make([]string, 0, len(cands))
	for _, c := range cands {
		lines = append(lines, c.line)
	}
	return lines
}
