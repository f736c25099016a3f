package business

import (
	"context"
	"errors"
	"time"

	"voxintel/backend/features/document"
)

// ErrProfileNotFound signals that the user has no business profile yet. The
// aggregator treats this as a hard failure, not an empty view.
var ErrProfileNotFound = errors.New("business profile not found")

type Profile struct {
	UserID         int64    `json:"user_id"`
	BusinessName   string   `json:"business_name"`
	Description    string   `json:"description"`
	Industry       string   `json:"industry"`
	Services       []string `json:"services"`
	Products       []string `json:"products"`
	WebsiteURL     string   `json:"website_url"`
	SocialLinks    []string `json:"social_links"`
	TargetAudience string   `json:"target_audience"`
}

type Lead struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Source    string    `json:"source"`
	Notes     string    `json:"notes"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type Repository interface {
	GetProfile(ctx context.Context, userID int64) (*Profile, error)
	UpsertProfile(ctx context.Context, p *Profile) error
	RecentLeads(ctx context.Context, userID int64, limit int) ([]Lead, error)
	CreateLead(ctx context.Context, lead *Lead) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Profile(ctx context.Context, userID int64) (*Profile, error) {
	return s.repo.GetProfile(ctx, userID)
}

func (s *Service) SaveProfile(ctx context.Context, p *Profile) error {
	return s.repo.UpsertProfile(ctx, p)
}

func (s *Service) RecentLeads(ctx context.Context, userID int64, limit int) ([]Lead, error) {
	return s.repo.RecentLeads(ctx, userID, limit)
}

func (s *Service) AddLead(ctx context.Context, lead *Lead) error {
	if lead.Status == "" {
		lead.Status = "new"
	}
	return s.repo.CreateLead(ctx, lead)
}

// DeclaredSources lists the link sources the ingestion pipeline should
// process for a user: the profile's website plus its social links. A user
// without a profile simply has no declared sources.
func (s *Service) DeclaredSources(ctx context.Context, userID int64) ([]document.SourceInfo, error) {
	p, err := s.repo.GetProfile(ctx, userID)
	if errors.Is(err, ErrProfileNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var sources []document.SourceInfo
	if p.WebsiteURL != "" {
		sources = append(sources, document.SourceInfo{
			Type:  document.SourceTypeLink,
			URL:   p.WebsiteURL,
			Title: p.BusinessName,
		})
	}
	for _, link := range p.SocialLinks {
		if link == "" {
			continue
		}
		sources = append(sources, document.SourceInfo{
			Type: document.SourceTypeLink,
			URL:  link,
		})
	}
	return sources, nil
}
