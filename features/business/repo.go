package business

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	p := &Profile{}
	query := `SELECT user_id, business_name, description, industry, services, products, website_url, social_links, target_audience FROM business_profiles WHERE user_id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID, &p.BusinessName, &p.Description, &p.Industry,
		pq.Array(&p.Services), pq.Array(&p.Products),
		&p.WebsiteURL, pq.Array(&p.SocialLinks), &p.TargetAudience)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PostgresRepo) UpsertProfile(ctx context.Context, p *Profile) error {
	query := `INSERT INTO business_profiles (user_id, business_name, description, industry, services, products, website_url, social_links, target_audience)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE SET
			business_name = EXCLUDED.business_name,
			description = EXCLUDED.description,
			industry = EXCLUDED.industry,
			services = EXCLUDED.services,
			products = EXCLUDED.products,
			website_url = EXCLUDED.website_url,
			social_links = EXCLUDED.social_links,
			target_audience = EXCLUDED.target_audience,
			updated_at = NOW()`
	_, err := r.db.ExecContext(ctx, query,
		p.UserID, p.BusinessName, p.Description, p.Industry,
		pq.Array(p.Services), pq.Array(p.Products),
		p.WebsiteURL, pq.Array(p.SocialLinks), p.TargetAudience)
	return err
}

func (r *PostgresRepo) RecentLeads(ctx context.Context, userID int64, limit int) ([]Lead, error) {
	query := `SELECT id, user_id, name, source, notes, status, created_at FROM leads WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []Lead
	for rows.Next() {
		var l Lead
		if err := rows.Scan(&l.ID, &l.UserID, &l.Name, &l.Source, &l.Notes, &l.Status, &l.CreatedAt); err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

func (r *PostgresRepo) CreateLead(ctx context.Context, lead *Lead) error {
	query := `INSERT INTO leads (user_id, name, source, notes, status) VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query, lead.UserID, lead.Name, lead.Source, lead.Notes, lead.Status).
		Scan(&lead.ID, &lead.CreatedAt)
}
