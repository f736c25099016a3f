package call

import (
	"context"
	"log/slog"
	"time"
)

type Call struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	PhoneNumber     string    `json:"phone_number"`
	ContactName     string    `json:"contact_name"`
	DurationSeconds int       `json:"duration_seconds"`
	Status          string    `json:"status"`
	Summary         string    `json:"summary"`
	Notes           string    `json:"notes"`
	Transcript      string    `json:"transcript,omitempty"`
	Direction       string    `json:"direction"`
	TwilioCallSID   string    `json:"twilio_call_sid,omitempty"`
	RecordingURL    string    `json:"recording_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type Repository interface {
	Create(ctx context.Context, c *Call) error
	UpdateSummary(ctx context.Context, id int64, summary string) error
	RecentByUser(ctx context.Context, userID int64, limit int) ([]Call, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
}

// TranscriptAnalyzer produces a short summary from a raw call transcript.
// Implemented by the gemini adapter.
type TranscriptAnalyzer interface {
	AnalyzeTranscript(ctx context.Context, transcript string) (string, error)
}

type Service struct {
	repo     Repository
	analyzer TranscriptAnalyzer
}

func NewService(repo Repository, analyzer TranscriptAnalyzer) *Service {
	return &Service{repo: repo, analyzer: analyzer}
}

// LogCall persists an incoming call record. When a transcript arrived without
// a summary, the analyzer fills it in asynchronously; analysis failures only
// log, the call row stays as stored.
func (s *Service) LogCall(ctx context.Context, c *Call) error {
	if c.Status == "" {
		c.Status = "completed"
	}
	if c.Direction == "" {
		c.Direction = "inbound"
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return err
	}

	if s.analyzer != nil && c.Transcript != "" && c.Summary == "" {
		go s.summarize(c.ID, c.Transcript)
	}
	return nil
}

func (s *Service) summarize(id int64, transcript string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	summary, err := s.analyzer.AnalyzeTranscript(ctx, transcript)
	if err != nil {
		slog.Warn("call transcript analysis failed", "call_id", id, "error", err)
		return
	}
	if err := s.repo.UpdateSummary(ctx, id, summary); err != nil {
		slog.Warn("failed to store call summary", "call_id", id, "error", err)
		return
	}
	slog.Info("call summary generated", "call_id", id)
}

func (s *Service) Recent(ctx context.Context, userID int64, limit int) ([]Call, error) {
	return s.repo.RecentByUser(ctx, userID, limit)
}
