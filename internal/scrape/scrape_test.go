package scrape

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"Bare Domain", "example.com", "https://example.com", true},
		{"Keeps Scheme", "http://example.com/about", "http://example.com/about", true},
		{"Too Short", "a.b", "", false},
		{"Email Rejected", "info@example.com", "", false},
		{"Email With Scheme Allowed", "https://example.com/contact@sales", "https://example.com/contact@sales", true},
		{"No Dot In Host", "localhost", "", false},
		{"Whitespace Trimmed", "  example.com  ", "https://example.com", true},
		{"Empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeURL(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

type fakeFetcher struct {
	pages map[string]string
	errs  map[string]error
	calls map[string]int
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (int, string, error) {
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[url]++
	if err, ok := f.errs[url]; ok {
		return 0, "", err
	}
	body, ok := f.pages[url]
	if !ok {
		return 404, "", nil
	}
	return 200, body, nil
}

func TestScrapeAll(t *testing.T) {
	t.Run("Per Link Failures Are Omitted", func(t *testing.T) {
		fetcher := &fakeFetcher{
			pages: map[string]string{
				"https://good.example.com": "<html><title>Good Co</title><body><p>We offer branded merchandise for events.</p></body></html>",
			},
			errs: map[string]error{
				"https://down.example.com": errors.New("connection refused"),
			},
		}
		scraper := NewScraper(fetcher, 2)

		results := scraper.ScrapeAll(context.Background(), []string{
			"good.example.com",
			"down.example.com",
			"https://missing.example.com",
		})

		assert.Len(t, results, 1)
		assert.Equal(t, "https://good.example.com", results[0].URL)
		assert.Equal(t, "Good Co", results[0].Title)
		assert.Len(t, results[0].Services, 1)
	})

	t.Run("Invalid Links Never Fetched", func(t *testing.T) {
		fetcher := &fakeFetcher{pages: map[string]string{}}
		scraper := NewScraper(fetcher, 2)

		results := scraper.ScrapeAll(context.Background(), []string{"info@example.com", "x", "localhost"})
		assert.Empty(t, results)
		assert.Empty(t, fetcher.calls)
	})

	t.Run("Duplicates Fetched Once", func(t *testing.T) {
		fetcher := &fakeFetcher{pages: map[string]string{
			"https://example.com": "<p>Founded in 1999, our story began small.</p>",
		}}
		scraper := NewScraper(fetcher, 2)

		results := scraper.ScrapeAll(context.Background(), []string{"example.com", "https://example.com"})
		assert.Len(t, results, 1)
		assert.Equal(t, 1, fetcher.calls["https://example.com"])
		assert.Len(t, results[0].AboutSections, 1)
	})

	t.Run("Contact Info Extracted", func(t *testing.T) {
		fetcher := &fakeFetcher{pages: map[string]string{
			"https://example.com": "<p>Reach us at sales@example.com or call +1 555 123 4567.</p>",
		}}
		scraper := NewScraper(fetcher, 2)

		results := scraper.ScrapeAll(context.Background(), []string{"example.com"})
		assert.Len(t, results, 1)
		assert.Equal(t, []string{"sales@example.com"}, results[0].Emails)
		assert.NotEmpty(t, results[0].Phones)
	})

	t.Run("All Sites Scraped", func(t *testing.T) {
		fetcher := &fakeFetcher{pages: map[string]string{
			"https://a.example.com": "<p>Alpha content page.</p>",
			"https://b.example.com": "<p>Bravo content page.</p>",
			"https://c.example.com": "<p>Charlie content page.</p>",
		}}
		scraper := NewScraper(fetcher, 2)

		results := scraper.ScrapeAll(context.Background(), []string{"a.example.com", "b.example.com", "c.example.com"})
		assert.Len(t, results, 3)

		var urls []string
		for _, r := range results {
			urls = append(urls, r.URL)
		}
		sort.Strings(urls)
		assert.Equal(t, []string{"https://a.example.com", "https://b.example.com", "https://c.example.com"}, urls)
	})
}
