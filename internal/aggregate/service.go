package aggregate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"voxintel/backend/features/business"
	"voxintel/backend/features/call"
	"voxintel/backend/features/document"
	"voxintel/backend/internal/scrape"
)

const (
	leadFetchLimit = 25
	docFetchLimit  = 100
	callFetchLimit = 10
)

// View is the composite snapshot returned to the dashboard. It is computed
// on demand and cached; it is never persisted.
type View struct {
	UserID      int64                 `json:"user_id"`
	GeneratedAt time.Time             `json:"generated_at"`
	Business    *business.Profile     `json:"business"`
	Knowledge   KnowledgeDigest       `json:"knowledge"`
	Leads       LeadDigest            `json:"leads"`
	Competitive CompetitiveDigest     `json:"competitive"`
	Content     ContentThemes         `json:"content"`
	WebPresence []scrape.SitePresence `json:"web_presence"`
}

type ProfileStore interface {
	GetProfile(ctx context.Context, userID int64) (*business.Profile, error)
	RecentLeads(ctx context.Context, userID int64, limit int) ([]business.Lead, error)
}

type DocumentStore interface {
	KnowledgeChunks(ctx context.Context, userID int64, docLimit int) ([]document.KnowledgeChunk, error)
	CountByStatus(ctx context.Context, userID int64) (map[string]int, error)
}

type CallStore interface {
	RecentByUser(ctx context.Context, userID int64, limit int) ([]call.Call, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
}

type WebScraper interface {
	ScrapeAll(ctx context.Context, urls []string) []scrape.SitePresence
}

type Service struct {
	profiles ProfileStore
	docs     DocumentStore
	calls    CallStore
	scraper  WebScraper
	cache    *Cache
	now      func() time.Time
}

func NewService(profiles ProfileStore, docs DocumentStore, calls CallStore, scraper WebScraper, cache *Cache) *Service {
	return &Service{
		profiles: profiles,
		docs:     docs,
		calls:    calls,
		scraper:  scraper,
		cache:    cache,
		now:      time.Now,
	}
}

// Aggregate returns the composite business view for a user. A live cache
// entry is returned as-is unless forceRefresh is set. A missing business
// profile fails the whole aggregation; every other fetch degrades to an
// empty slice so one unavailable source never blanks the dashboard.
func (s *Service) Aggregate(ctx context.Context, userID int64, forceRefresh bool) (*View, error) {
	if !forceRefresh {
		if view, ok := s.cache.Get(userID); ok {
			slog.Info("aggregate cache hit", "user_id", userID)
			return view, nil
		}
	}

	var (
		wg      sync.WaitGroup
		profile *business.Profile
		sites   []scrape.SitePresence
		leads   []business.Lead
		chunks  []document.KnowledgeChunk
		counts  map[string]int
		calls   []call.Call

		profileErr error
		callCount  int
	)

	wg.Add(3)

	// Profile is fetched first in its own branch; the web-presence scrape
	// fans out from the profile's links, so it rides along here.
	go func() {
		defer wg.Done()
		profile, profileErr = s.profiles.GetProfile(ctx, userID)
		if profileErr != nil {
			return
		}
		links := append([]string{profile.WebsiteURL}, profile.SocialLinks...)
		sites = s.scraper.ScrapeAll(ctx, links)
	}()

	go func() {
		defer wg.Done()
		var err error
		leads, err = s.profiles.RecentLeads(ctx, userID, leadFetchLimit)
		if err != nil {
			slog.Warn("lead fetch failed, continuing without leads", "user_id", userID, "error", err)
			leads = nil
		}
		calls, err = s.calls.RecentByUser(ctx, userID, callFetchLimit)
		if err != nil {
			slog.Warn("call fetch failed, continuing without calls", "user_id", userID, "error", err)
			calls = nil
		}
		callCount, err = s.calls.CountByUser(ctx, userID)
		if err != nil {
			callCount = len(calls)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		counts, err = s.docs.CountByStatus(ctx, userID)
		if err != nil {
			slog.Warn("document status fetch failed", "user_id", userID, "error", err)
			counts = nil
		}
		chunks, err = s.docs.KnowledgeChunks(ctx, userID, docFetchLimit)
		if err != nil {
			slog.Warn("document chunk fetch failed", "user_id", userID, "error", err)
			chunks = nil
		}
	}()

	wg.Wait()

	if profileErr != nil {
		return nil, fmt.Errorf("failed to load business profile: %w", profileErr)
	}

	view := &View{
		UserID:      userID,
		GeneratedAt: s.now(),
		Business:    profile,
		Knowledge:   buildKnowledge(counts, chunks),
		Leads:       buildLeadInsights(leads, calls, callCount),
		Competitive: buildCompetitive(profile, sites),
		Content:     buildContentThemes(profile, chunks),
		WebPresence: sites,
	}

	s.cache.Put(userID, view)
	slog.Info("aggregate view rebuilt", "user_id", userID, "sites", len(sites), "chunks", len(chunks))
	return view, nil
}
