package call

import (
	"context"
	"database/sql"
)

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Create(ctx context.Context, c *Call) error {
	query := `INSERT INTO calls (user_id, phone_number, contact_name, duration_seconds, status, summary, notes, transcript, direction, twilio_call_sid, recording_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query,
		c.UserID, c.PhoneNumber, c.ContactName, c.DurationSeconds, c.Status,
		c.Summary, c.Notes, c.Transcript, c.Direction, c.TwilioCallSID, c.RecordingURL).
		Scan(&c.ID, &c.CreatedAt)
}

func (r *PostgresRepo) UpdateSummary(ctx context.Context, id int64, summary string) error {
	query := `UPDATE calls SET summary = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, summary, id)
	return err
}

func (r *PostgresRepo) RecentByUser(ctx context.Context, userID int64, limit int) ([]Call, error) {
	query := `SELECT id, user_id, phone_number, contact_name, duration_seconds, status, summary, notes, direction, created_at FROM calls WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var calls []Call
	for rows.Next() {
		var c Call
		if err := rows.Scan(&c.ID, &c.UserID, &c.PhoneNumber, &c.ContactName, &c.DurationSeconds,
			&c.Status, &c.Summary, &c.Notes, &c.Direction, &c.CreatedAt); err != nil {
			return nil, err
		}
		calls = append(calls, c)
	}
	return calls, rows.Err()
}

func (r *PostgresRepo) CountByUser(ctx context.Context, userID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM calls WHERE user_id = $1`, userID).Scan(&n)
	return n, err
}
