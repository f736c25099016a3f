package aggregate

import (
	"regexp"
	"strings"

	"voxintel/backend/features/business"
	"voxintel/backend/features/call"
	"voxintel/backend/features/document"
	"voxintel/backend/internal/scrape"
	"voxintel/backend/internal/text"
)

const (
	maxDigestKeywords  = 30
	maxDigestSummaries = 20
	maxLeadSources     = 15
	maxLeadNotes       = 10
	maxThemes          = 10
	maxPainPoints      = 10
	maxValueProps      = 10
)

type KnowledgeDigest struct {
	StatusCounts map[string]int `json:"status_counts"`
	Keywords     []string       `json:"keywords"`
	Summaries    []string       `json:"summaries"`
}

type LeadDigest struct {
	TotalLeads    int      `json:"total_leads"`
	Sources       []string `json:"sources"`
	Notes         []string `json:"notes"`
	TotalCalls    int      `json:"total_calls"`
	CallSummaries []string `json:"call_summaries"`
}

type CompetitiveDigest struct {
	Keywords          []string `json:"keywords"`
	ValuePropositions []string `json:"value_propositions"`
	MarketPosition    string   `json:"market_position"`
}

type ContentThemes struct {
	Tone       string   `json:"tone"`
	Themes     []string `json:"themes"`
	PainPoints []string `json:"pain_points"`
}

var (
	valuePropRe = regexp.MustCompile(`(?i)\b(we offer|we provide|we help|we specialize|our services|our products|leading|trusted|award.winning)\b`)
	painPointRe = regexp.MustCompile(`(?i)\b(struggle|struggling|challenge|challenging|problem|difficult|frustrat\w*|time.consuming|pain point)\b`)
)

func buildKnowledge(statusCounts map[string]int, chunks []document.KnowledgeChunk) KnowledgeDigest {
	digest := KnowledgeDigest{StatusCounts: statusCounts}
	if digest.StatusCounts == nil {
		digest.StatusCounts = map[string]int{}
	}

	seen := make(map[string]struct{})
	for _, chunk := range chunks {
		for _, kw := range chunk.Keywords {
			if len(digest.Keywords) >= maxDigestKeywords {
				break
			}
			if _, dup := seen[kw]; dup {
				continue
			}
			seen[kw] = struct{}{}
			digest.Keywords = append(digest.Keywords, kw)
		}
		if chunk.Summary != "" && len(digest.Summaries) < maxDigestSummaries {
			digest.Summaries = append(digest.Summaries, chunk.Summary)
		}
	}
	return digest
}

func buildLeadInsights(leads []business.Lead, calls []call.Call, callCount int) LeadDigest {
	digest := LeadDigest{TotalLeads: len(leads), TotalCalls: callCount}

	seen := make(map[string]struct{})
	for _, lead := range leads {
		if lead.Source != "" && len(digest.Sources) < maxLeadSources {
			if _, dup := seen[lead.Source]; !dup {
				seen[lead.Source] = struct{}{}
				digest.Sources = append(digest.Sources, lead.Source)
			}
		}
		if lead.Notes != "" && len(digest.Notes) < maxLeadNotes {
			digest.Notes = append(digest.Notes, lead.Notes)
		}
	}
	for _, c := range calls {
		if c.Summary != "" && len(digest.CallSummaries) < maxLeadNotes {
			digest.CallSummaries = append(digest.CallSummaries, c.Summary)
		}
	}
	return digest
}

func buildCompetitive(profile *business.Profile, sites []scrape.SitePresence) CompetitiveDigest {
	digest := CompetitiveDigest{MarketPosition: classifyMarketPosition(profile.Description)}

	seen := make(map[string]struct{})
	for _, site := range sites {
		for _, kw := range site.Keywords {
			if len(digest.Keywords) >= maxDigestKeywords {
				break
			}
			if _, dup := seen[kw]; dup {
				continue
			}
			seen[kw] = struct{}{}
			digest.Keywords = append(digest.Keywords, kw)
		}
	}

	candidates := text.SplitSentences(profile.Description)
	for _, site := range sites {
		candidates = append(candidates, site.AboutSections...)
		candidates = append(candidates, site.Services...)
	}
	for _, sentence := range candidates {
		if len(digest.ValuePropositions) >= maxValueProps {
			break
		}
		if valuePropRe.MatchString(sentence) {
			digest.ValuePropositions = append(digest.ValuePropositions, sentence)
		}
	}
	return digest
}

// classifyMarketPosition buckets the business by description wording. Crude
// but deterministic; "established" is the catch-all.
func classifyMarketPosition(description string) string {
	lower := strings.ToLower(description)
	switch {
	case containsAny(lower, "premium", "luxury", "high-end", "exclusive"):
		return "premium"
	case containsAny(lower, "affordable", "budget", "low cost", "cheap", "value for money"):
		return "value"
	case containsAny(lower, "innovative", "cutting-edge", "modern", "technology-driven"):
		return "innovator"
	default:
		return "established"
	}
}

func buildContentThemes(profile *business.Profile, chunks []document.KnowledgeChunk) ContentThemes {
	themes := ContentThemes{Tone: classifyTone(profile.Description)}

	for _, svc := range profile.Services {
		if svc != "" && len(themes.Themes) < maxThemes {
			themes.Themes = append(themes.Themes, svc)
		}
	}
	for _, product := range profile.Products {
		if product != "" && len(themes.Themes) < maxThemes {
			themes.Themes = append(themes.Themes, product)
		}
	}

	candidates := text.SplitSentences(profile.Description)
	for _, chunk := range chunks {
		candidates = append(candidates, text.SplitSentences(chunk.Summary)...)
	}
	for _, sentence := range candidates {
		if len(themes.PainPoints) >= maxPainPoints {
			break
		}
		if painPointRe.MatchString(sentence) {
			themes.PainPoints = append(themes.PainPoints, sentence)
		}
	}
	return themes
}

func classifyTone(description string) string {
	lower := strings.ToLower(description)
	switch {
	case containsAny(lower, "professional", "enterprise", "corporate", "industry-leading"):
		return "professional"
	case containsAny(lower, "friendly", "fun", "easy", "simple", "welcoming"):
		return "friendly"
	case containsAny(lower, "technical", "engineering", "software", "data", "platform"):
		return "technical"
	default:
		return "informative"
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
