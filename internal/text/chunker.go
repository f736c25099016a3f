package text

import (
	"regexp"
	"strings"
)

var sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

// SplitSentences splits text on terminal punctuation and returns the trimmed,
// non-empty sentences without their terminators.
func SplitSentences(text string) []string {
	parts := sentenceSplitRe.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// Chunk splits text into sentence-respecting segments of roughly maxChars
// characters. Sentences are accumulated greedily; a chunk is closed when the
// next sentence would push it past maxChars. The size is a soft target: a
// single sentence longer than maxChars is still emitted whole rather than
// split mid-sentence. Each chunk ends with a period.
func Chunk(text string, maxChars int) []string {
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	var chunks []string
	var buf strings.Builder

	for _, sentence := range sentences {
		if buf.Len() > 0 && buf.Len()+2+len(sentence) > maxChars {
			chunks = append(chunks, buf.String()+".")
			buf.Reset()
		}
		if buf.Len() > 0 {
			buf.WriteString(". ")
		}
		buf.WriteString(sentence)
	}

	if buf.Len() > 0 {
		chunks = append(chunks, buf.String()+".")
	}
	return chunks
}

// CountWords returns the number of whitespace-separated words in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
