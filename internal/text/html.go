package text

import (
	"html"
	"regexp"
	"strings"
)

// Cap extracted page text so a single huge page cannot dominate storage.
const maxExtractedChars = 50000

var (
	scriptRe     = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)
	styleRe      = regexp.MustCompile(`(?is)<style\b[^>]*>.*?</style>`)
	tagRe        = regexp.MustCompile(`<[^>]+>`)
	whitespaceRe = regexp.MustCompile(`\s+`)

	// Navigation and legal boilerplate that adds nothing to search.
	boilerplateRe = regexp.MustCompile(`(?i)\b(cookie policy|privacy policy|terms of service|terms and conditions|all rights reserved|subscribe to our newsletter|skip to (?:main )?content)\b`)
)

// StripHTML converts raw HTML into searchable plain text: script and style
// blocks are dropped, remaining tags stripped, entities unescaped, whitespace
// collapsed and common boilerplate phrases removed. Output is capped at 50k
// characters.
func StripHTML(raw string) string {
	out := scriptRe.ReplaceAllString(raw, " ")
	out = styleRe.ReplaceAllString(out, " ")
	out = tagRe.ReplaceAllString(out, " ")
	out = html.UnescapeString(out)
	out = boilerplateRe.ReplaceAllString(out, " ")
	out = whitespaceRe.ReplaceAllString(out, " ")
	out = strings.TrimSpace(out)

	if len(out) > maxExtractedChars {
		out = out[:maxExtractedChars]
	}
	return out
}
