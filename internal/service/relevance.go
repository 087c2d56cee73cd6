package service

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// minKeywordRunes is the stop filter: query words this short or shorter
// carry no signal and are dropped before overlap scoring.
const minKeywordRunes = 3

func splitWords(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// queryTerms extracts the scoring keywords from free query text: lowercased
// words longer than minKeywordRunes runes, first occurrence order, no
// duplicates.
func queryTerms(query string) []string {
	var terms []string
	seen := make(map[string]struct{})
	for _, w := range splitWords(query) {
		if utf8.RuneCountInString(w) <= minKeywordRunes {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		terms = append(terms, w)
	}
	return terms
}

// keywordOverlap is the fraction of query terms present as whole words in
// text, in [0,1]. No terms means no signal, scored as zero.
func keywordOverlap(terms []string, text string) float64 {
	if len(terms) == 0 {
		return 0
	}
	words := make(map[string]struct{})
	for _, w := range splitWords(text) {
		words[w] = struct{}{}
	}
	matched := 0
	for _, t := range terms {
		if _, ok := words[t]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(terms))
}

// topicMatched reports whether any caller-supplied topic appears as a
// case-insensitive substring of text.
func topicMatched(topics []string, text string) bool {
	if len(topics) == 0 {
		return false
	}
	lowered := strings.ToLower(text)
	for _, topic := range topics {
		if topic == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(topic)) {
			return true
		}
	}
	return false
}

// relevanceScore combines keyword overlap with the topic-match boost, capped
// so total relevance never exceeds 1.0. Empty query text yields zero for all
// entries regardless of topics; that is a degraded result, not an error.
func relevanceScore(terms []string, emptyQuery bool, topics []string, text string, boost float64) float64 {
	if emptyQuery {
		return 0
	}
	r := keywordOverlap(terms, text)
	if topicMatched(topics, text) {
		r += boost
	}
	if r > 1 {
		r = 1
	}
	return r
}
