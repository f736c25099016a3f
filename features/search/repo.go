package search

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
)

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

// SearchChunks builds an AND-of-tokens predicate where each token must appear
// in the chunk content or its summary, scoped to the user's documents.
func (r *PostgresRepo) SearchChunks(ctx context.Context, userID int64, tokens []string, limit int) ([]Result, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT c.id, c.document_id, c.chunk_index, c.content, c.summary, c.keywords, d.title, d.source_type, d.source_url
		FROM document_chunks c
		JOIN documents d ON d.id = c.document_id
		WHERE d.user_id = $1`)

	args := []interface{}{userID}
	for _, tok := range tokens {
		args = append(args, "%"+tok+"%")
		n := len(args)
		fmt.Fprintf(&sb, " AND (c.content ILIKE $%d OR c.summary ILIKE $%d)", n, n)
	}
	args = append(args, limit)
	fmt.Fprintf(&sb, " ORDER BY c.id LIMIT $%d", len(args))

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var res Result
		if err := rows.Scan(&res.ChunkID, &res.DocumentID, &res.ChunkIndex, &res.Content, &res.Summary,
			pq.Array(&res.Keywords), &res.DocumentTitle, &res.SourceType, &res.SourceURL); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

func (r *PostgresRepo) LogQuery(ctx context.Context, userID int64, query string, resultCount int, latency time.Duration) error {
	q := `INSERT INTO search_query_logs (user_id, query, result_count, latency_ms) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, q, userID, query, resultCount, latency.Milliseconds())
	return err
}
