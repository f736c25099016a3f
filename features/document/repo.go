package document

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

func (r *PostgresRepo) GetByUserAndURL(ctx context.Context, userID int64, sourceURL string) (*Document, error) {
	doc := &Document{}
	query := `SELECT id, user_id, source_type, source_url, title, status FROM documents WHERE user_id = $1 AND source_url = $2`
	err := r.db.QueryRowContext(ctx, query, userID, sourceURL).
		Scan(&doc.ID, &doc.UserID, &doc.SourceType, &doc.SourceURL, &doc.Title, &doc.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *PostgresRepo) Create(ctx context.Context, doc *Document) error {
	query := `INSERT INTO documents (user_id, source_type, source_url, title, content_type, size_bytes, status) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		doc.UserID, doc.SourceType, doc.SourceURL, doc.Title, doc.ContentType, doc.SizeBytes, doc.Status).
		Scan(&doc.ID)
}

func (r *PostgresRepo) MarkCompleted(ctx context.Context, id int64, extractedText string) error {
	query := `UPDATE documents SET status = 'completed', extracted_text = $1, error_message = NULL, processed_at = NOW(), updated_at = NOW() WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, extractedText, id)
	return err
}

func (r *PostgresRepo) MarkFailed(ctx context.Context, id int64, errMsg string) error {
	query := `UPDATE documents SET status = 'failed', error_message = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, errMsg, id)
	return err
}

func (r *PostgresRepo) CreateChunks(ctx context.Context, documentID int64, chunks []Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO document_chunks (document_id, chunk_index, content, word_count, summary, keywords) VALUES ($1, $2, $3, $4, $5, $6)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range chunks {
		if _, err := stmt.ExecContext(ctx, documentID, c.ChunkIndex, c.Content, c.WordCount, c.Summary, pq.Array(c.Keywords)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *PostgresRepo) ListByUser(ctx context.Context, userID int64) ([]Document, error) {
	query := `SELECT id, user_id, source_type, source_url, title, content_type, size_bytes, status, COALESCE(error_message, ''), processed_at FROM documents WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.UserID, &d.SourceType, &d.SourceURL, &d.Title, &d.ContentType, &d.SizeBytes, &d.Status, &d.ErrorMessage, &d.ProcessedAt); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// KnowledgeChunks returns the chunks of the user's most recently processed
// completed documents, bounded by docLimit documents.
func (r *PostgresRepo) KnowledgeChunks(ctx context.Context, userID int64, docLimit int) ([]KnowledgeChunk, error) {
	query := `SELECT c.document_id, d.title, c.summary, c.keywords
		FROM document_chunks c
		JOIN documents d ON d.id = c.document_id
		WHERE d.user_id = $1 AND d.status = 'completed'
		AND c.document_id IN (
			SELECT id FROM documents WHERE user_id = $1 AND status = 'completed' ORDER BY processed_at DESC LIMIT $2
		)
		ORDER BY c.document_id, c.chunk_index`
	rows, err := r.db.QueryContext(ctx, query, userID, docLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chunks []KnowledgeChunk
	for rows.Next() {
		var c KnowledgeChunk
		if err := rows.Scan(&c.DocumentID, &c.Title, &c.Summary, pq.Array(&c.Keywords)); err != nil {
			return nil, err
		}
		chunks = append(chunks, c)
	}
	return chunks, rows.Err()
}

func (r *PostgresRepo) CountByStatus(ctx context.Context, userID int64) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM documents WHERE user_id = $1 GROUP BY status`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
