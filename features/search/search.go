package search

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

const defaultLimit = 10

// Result joins a matching chunk with its parent document's metadata.
type Result struct {
	ChunkID       int64    `json:"chunk_id"`
	DocumentID    int64    `json:"document_id"`
	ChunkIndex    int      `json:"chunk_index"`
	Content       string   `json:"content"`
	Summary       string   `json:"summary"`
	Keywords      []string `json:"keywords"`
	DocumentTitle string   `json:"document_title"`
	SourceType    string   `json:"source_type"`
	SourceURL     string   `json:"source_url"`
}

type Repository interface {
	SearchChunks(ctx context.Context, userID int64, tokens []string, limit int) ([]Result, error)
	LogQuery(ctx context.Context, userID int64, query string, resultCount int, latency time.Duration) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Tokenize splits the query on whitespace and discards tokens of length two
// or less. Matching is case-insensitive downstream, so tokens are lowercased
// here.
func Tokenize(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	tokens := fields[:0]
	for _, f := range fields {
		if len(f) > 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// Search scans the user's chunks for rows where every query token appears in
// either the content or the summary. Results come back in storage order, not
// relevance order, capped at limit. One query-log row is appended per call;
// a logging failure never fails the search.
func (s *Service) Search(ctx context.Context, userID int64, query string, limit int) ([]Result, error) {
	start := time.Now()
	if limit <= 0 {
		limit = defaultLimit
	}

	tokens := Tokenize(query)
	var results []Result
	if len(tokens) > 0 {
		var err error
		results, err = s.repo.SearchChunks(ctx, userID, tokens, limit)
		if err != nil {
			return nil, err
		}
	}

	if err := s.repo.LogQuery(ctx, userID, query, len(results), time.Since(start)); err != nil {
		slog.Warn("failed to write search query log", "error", err, "user_id", userID)
	}
	return results, nil
}
