package text

import (
	"regexp"
	"sort"
	"strings"
)

const maxKeywords = 10

var nonWordRe = regexp.MustCompile(`[^a-z0-9_]+`)

// Tokens that survive the length filter but carry no signal. Articles,
// pronouns, auxiliaries and the most common connectives.
var stopwords = map[string]struct{}{
	"this": {}, "that": {}, "these": {}, "those": {}, "with": {},
	"from": {}, "your": {}, "yours": {}, "have": {}, "been": {},
	"were": {}, "will": {}, "would": {}, "could": {}, "should": {},
	"they": {}, "them": {}, "their": {}, "theirs": {}, "what": {},
	"when": {}, "where": {}, "which": {}, "while": {}, "about": {},
	"there": {}, "then": {}, "than": {}, "also": {}, "into": {},
	"just": {}, "only": {}, "over": {}, "under": {}, "such": {},
	"some": {}, "very": {}, "each": {}, "other": {}, "because": {},
	"does": {}, "doing": {},
}

// ExtractKeywords returns up to ten distinct keywords from the chunk text,
// ordered by descending frequency. Ties are broken by first occurrence in the
// text, so repeated calls on identical input are deterministic.
func ExtractKeywords(chunkText string) []string {
	lowered := strings.ToLower(chunkText)
	cleaned := nonWordRe.ReplaceAllString(lowered, " ")

	counts := make(map[string]int)
	firstSeen := make(map[string]int)

	for i, tok := range strings.Fields(cleaned) {
		if len(tok) <= 3 {
			continue
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		if _, ok := counts[tok]; !ok {
			firstSeen[tok] = i
		}
		counts[tok]++
	}

	keywords := make([]string, 0, len(counts))
	for tok := range counts {
		keywords = append(keywords, tok)
	}
	sort.Slice(keywords, func(i, j int) bool {
		if counts[keywords[i]] != counts[keywords[j]] {
			return counts[keywords[i]] > counts[keywords[j]]
		}
		return firstSeen[keywords[i]] < firstSeen[keywords[j]]
	})

	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	return keywords
}
