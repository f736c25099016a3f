package scrape

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"voxintel/backend/internal/text"
)

// Cap fetched bodies so one pathological page cannot exhaust memory.
const maxBodyBytes = 2 << 20

// Fetcher retrieves a URL body.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (int, string, error)
}

// HTTPFetcher is the default Fetcher with a bounded per-request timeout, so
// one slow site cannot stall an entire aggregation.
type HTTPFetcher struct {
	client *http.Client
}

func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPFetcher{client: &http.Client{Timeout: timeout}}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("User-Agent", "VoxIntelBot/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, "", err
	}
	return resp.StatusCode, string(body), nil
}

// NormalizeURL cleans up user-entered links: too-short strings and bare email
// addresses are rejected, a missing scheme defaults to https, and the host
// must look like a real domain.
func NormalizeURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if len(raw) < 4 {
		return "", false
	}
	if strings.Contains(raw, "@") && !strings.Contains(raw, "://") {
		return "", false
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	if !strings.Contains(u.Hostname(), ".") {
		return "", false
	}
	return u.String(), true
}

// SitePresence is the digest of one scraped site consumed by the aggregator.
type SitePresence struct {
	URL           string   `json:"url"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Keywords      []string `json:"keywords"`
	AboutSections []string `json:"about_sections"`
	Services      []string `json:"services"`
	Emails        []string `json:"emails"`
	Phones        []string `json:"phones"`
}

var (
	titleRe    = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	metaDescRe = regexp.MustCompile(`(?is)<meta\s+name=["']description["']\s+content=["']([^"']*)["']`)
	emailRe    = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phoneRe    = regexp.MustCompile(`\+?\d[\d\s().\-]{7,14}\d`)

	aboutTriggerRe   = regexp.MustCompile(`(?i)\b(about us|our story|our mission|who we are|founded)\b`)
	serviceTriggerRe = regexp.MustCompile(`(?i)\b(we offer|we provide|our services|our products|we specialize|speciali[sz]ing in)\b`)
)

type Scraper struct {
	fetcher     Fetcher
	concurrency int
}

func NewScraper(fetcher Fetcher, concurrency int) *Scraper {
	if concurrency <= 0 {
		concurrency = 5
	}
	return &Scraper{fetcher: fetcher, concurrency: concurrency}
}

// ScrapeAll fetches every normalizable link in parallel. A failing link is
// logged and omitted from the results; the scrape as a whole never fails.
func (s *Scraper) ScrapeAll(ctx context.Context, rawURLs []string) []SitePresence {
	seen := make(map[string]struct{})
	var targets []string
	for _, raw := range rawURLs {
		normalized, ok := NormalizeURL(raw)
		if !ok {
			continue
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		targets = append(targets, normalized)
	}

	var (
		mu      sync.Mutex
		results []SitePresence
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, target := range targets {
		g.Go(func() error {
			presence, err := s.scrapeSite(gctx, target)
			if err != nil {
				slog.Warn("web presence scrape failed, skipping site", "url", target, "error", err)
				return nil
			}
			mu.Lock()
			results = append(results, presence)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (s *Scraper) scrapeSite(ctx context.Context, target string) (SitePresence, error) {
	status, body, err := s.fetcher.Fetch(ctx, target)
	if err != nil {
		return SitePresence{}, err
	}
	if status >= 400 {
		return SitePresence{}, fmt.Errorf("status %d", status)
	}

	plain := text.StripHTML(body)
	presence := SitePresence{
		URL:      target,
		Keywords: text.ExtractKeywords(plain),
		Emails:   dedupe(emailRe.FindAllString(plain, 5)),
		Phones:   dedupe(phoneRe.FindAllString(plain, 5)),
	}
	if m := titleRe.FindStringSubmatch(body); m != nil {
		presence.Title = strings.TrimSpace(text.StripHTML(m[1]))
	}
	if m := metaDescRe.FindStringSubmatch(body); m != nil {
		presence.Description = strings.TrimSpace(m[1])
	}

	for _, sentence := range text.SplitSentences(plain) {
		switch {
		case aboutTriggerRe.MatchString(sentence):
			if len(presence.AboutSections) < 5 {
				presence.AboutSections = append(presence.AboutSections, sentence)
			}
		case serviceTriggerRe.MatchString(sentence):
			if len(presence.Services) < 5 {
				presence.Services = append(presence.Services, sentence)
			}
		}
	}
	return presence, nil
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
