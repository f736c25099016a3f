package document

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"voxintel/backend/internal/config"
	"voxintel/backend/internal/middleware"
	"voxintel/backend/internal/text"
)

const (
	SourceTypeFile = "file"
	SourceTypeLink = "link"

	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

type Document struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"user_id"`
	SourceType    string     `json:"source_type"`
	SourceURL     string     `json:"source_url"`
	Title         string     `json:"title"`
	ContentType   string     `json:"content_type,omitempty"`
	SizeBytes     int64      `json:"size_bytes,omitempty"`
	Status        string     `json:"status"`
	ErrorMessage  string     `json:"error_message,omitempty"`
	ExtractedText string     `json:"-"`
	ProcessedAt   *time.Time `json:"processed_at,omitempty"`
}

// Chunk is immutable once created; reprocessing a document recreates its
// chunks rather than updating them.
type Chunk struct {
	ID         int64    `json:"id"`
	DocumentID int64    `json:"document_id"`
	ChunkIndex int      `json:"chunk_index"`
	Content    string   `json:"content"`
	WordCount  int      `json:"word_count"`
	Summary    string   `json:"summary"`
	Keywords   []string `json:"keywords"`
}

// SourceInfo describes one declared source before ingestion.
type SourceInfo struct {
	Type        string `json:"type"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
}

// KnowledgeChunk is the trimmed chunk view consumed by the aggregator.
type KnowledgeChunk struct {
	DocumentID int64
	Title      string
	Summary    string
	Keywords   []string
}

type Repository interface {
	GetByUserAndURL(ctx context.Context, userID int64, sourceURL string) (*Document, error)
	Create(ctx context.Context, doc *Document) error
	MarkCompleted(ctx context.Context, id int64, extractedText string) error
	MarkFailed(ctx context.Context, id int64, errMsg string) error
	CreateChunks(ctx context.Context, documentID int64, chunks []Chunk) error
	ListByUser(ctx context.Context, userID int64) ([]Document, error)
	KnowledgeChunks(ctx context.Context, userID int64, docLimit int) ([]KnowledgeChunk, error)
	CountByStatus(ctx context.Context, userID int64) (map[string]int, error)
}

// Fetcher retrieves a URL body. Implemented by internal/scrape.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (int, string, error)
}

// FileExtractor turns an uploaded file reference into plain text.
type FileExtractor interface {
	ExtractText(ctx context.Context, fileURL, contentType string) (string, error)
}

// SourceProvider lists the sources a user has declared for ingestion.
type SourceProvider interface {
	DeclaredSources(ctx context.Context, userID int64) ([]SourceInfo, error)
}

type EventPublisher interface {
	Publish(topic string, body []byte) error
}

type Service struct {
	repo     Repository
	fetcher  Fetcher
	files    FileExtractor
	sources  SourceProvider
	pub      EventPublisher
	maxChars int
}

func NewService(repo Repository, fetcher Fetcher, files FileExtractor, sources SourceProvider, pub EventPublisher, maxChunkChars int) *Service {
	if maxChunkChars <= 0 {
		maxChunkChars = 1000
	}
	return &Service{
		repo:     repo,
		fetcher:  fetcher,
		files:    files,
		sources:  sources,
		pub:      pub,
		maxChars: maxChunkChars,
	}
}

// ProcessUserDocuments ingests every declared source for one user. Sources
// are processed sequentially; one failing source does not abort the rest.
func (s *Service) ProcessUserDocuments(ctx context.Context, userID int64) (processed, failed int, err error) {
	sources, err := s.sources.DeclaredSources(ctx, userID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list declared sources: %w", err)
	}

	for _, src := range sources {
		if err := s.ProcessDocument(ctx, userID, src); err != nil {
			slog.Error("document processing failed", "user_id", userID, "url", src.URL, "error", err)
			failed++
			continue
		}
		processed++
	}
	return processed, failed, nil
}

// ProcessDocument runs the extract -> chunk -> annotate -> persist pipeline
// for one source. A source already seen for this user is skipped regardless
// of its status; failed documents are not re-attempted.
func (s *Service) ProcessDocument(ctx context.Context, userID int64, src SourceInfo) error {
	existing, err := s.repo.GetByUserAndURL(ctx, userID, src.URL)
	if err != nil {
		return fmt.Errorf("failed to look up document: %w", err)
	}
	if existing != nil {
		slog.Info("document already ingested, skipping", "user_id", userID, "url", src.URL, "status", existing.Status)
		return nil
	}

	doc := &Document{
		UserID:      userID,
		SourceType:  src.Type,
		SourceURL:   src.URL,
		Title:       sourceTitle(src),
		ContentType: src.ContentType,
		SizeBytes:   src.SizeBytes,
		Status:      StatusProcessing,
	}
	if err := s.repo.Create(ctx, doc); err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	extracted, err := s.extract(ctx, src)
	if err != nil {
		if markErr := s.repo.MarkFailed(ctx, doc.ID, err.Error()); markErr != nil {
			slog.Error("failed to mark document failed", "document_id", doc.ID, "error", markErr)
		}
		return fmt.Errorf("extraction failed: %w", err)
	}
	if strings.TrimSpace(extracted) == "" {
		msg := "no text content could be extracted"
		if markErr := s.repo.MarkFailed(ctx, doc.ID, msg); markErr != nil {
			slog.Error("failed to mark document failed", "document_id", doc.ID, "error", markErr)
		}
		return fmt.Errorf("extraction failed: %s", msg)
	}

	if err := s.repo.MarkCompleted(ctx, doc.ID, extracted); err != nil {
		return fmt.Errorf("failed to mark document completed: %w", err)
	}

	segments := text.Chunk(extracted, s.maxChars)
	chunks := make([]Chunk, 0, len(segments))
	for i, segment := range segments {
		chunks = append(chunks, Chunk{
			DocumentID: doc.ID,
			ChunkIndex: i,
			Content:    segment,
			WordCount:  text.CountWords(segment),
			Summary:    text.Summarize(segment),
			Keywords:   text.ExtractKeywords(segment),
		})
	}
	if err := s.repo.CreateChunks(ctx, doc.ID, chunks); err != nil {
		return fmt.Errorf("failed to persist chunks: %w", err)
	}

	s.publishProcessed(ctx, doc, len(chunks))
	return nil
}

func (s *Service) ListByUser(ctx context.Context, userID int64) ([]Document, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) extract(ctx context.Context, src SourceInfo) (string, error) {
	switch src.Type {
	case SourceTypeLink:
		status, body, err := s.fetcher.Fetch(ctx, src.URL)
		if err != nil {
			return "", fmt.Errorf("failed to fetch %s: %w", src.URL, err)
		}
		if status >= 400 {
			return "", fmt.Errorf("fetch of %s returned status %d", src.URL, status)
		}
		return text.StripHTML(body), nil
	case SourceTypeFile:
		return s.files.ExtractText(ctx, src.URL, src.ContentType)
	default:
		return "", fmt.Errorf("unknown source type %q", src.Type)
	}
}

// publishProcessed emits a post-ingestion event. Best effort: a publish
// failure is logged and never fails the pipeline.
func (s *Service) publishProcessed(ctx context.Context, doc *Document, chunkCount int) {
	if s.pub == nil {
		return
	}
	payload, _ := json.Marshal(map[string]interface{}{
		"document_id":    doc.ID,
		"user_id":        doc.UserID,
		"source_url":     doc.SourceURL,
		"chunk_count":    chunkCount,
		"correlation_id": middleware.GetCorrelationID(ctx),
	})
	if err := s.pub.Publish(config.TopicDocumentProcessed, payload); err != nil {
		slog.Warn("failed to publish document.processed event", "document_id", doc.ID, "error", err)
		return
	}
	slog.Info("published document.processed event", "document_id", doc.ID, "chunks", chunkCount)
}

func sourceTitle(src SourceInfo) string {
	if src.Title != "" {
		return src.Title
	}
	return src.URL
}
