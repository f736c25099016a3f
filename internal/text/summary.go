package text

import "regexp"

// Sentences containing one of these markers are promoted into the summary.
var importanceRe = regexp.MustCompile(`(?i)\b(important|key|main|primary|essential|critical|significant|major)\b`)

// Summarize produces a one or two sentence heuristic summary of the chunk:
// the lead sentence, plus the first sentence among the following three that
// carries an importance marker. The result always ends with a period; empty
// input yields an empty string.
func Summarize(chunkText string) string {
	sentences := SplitSentences(chunkText)
	if len(sentences) == 0 {
		return ""
	}
	if len(sentences) == 1 {
		return sentences[0] + "."
	}

	lead := sentences[0]
	limit := len(sentences)
	if limit > 4 {
		limit = 4
	}
	for _, sentence := range sentences[1:limit] {
		if importanceRe.MatchString(sentence) {
			return lead + ". " + sentence + "."
		}
	}
	return lead + "."
}
