package search_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"voxintel/backend/features/search"
)

func TestPostgresRepo_SearchChunks(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	assert.NoError(t, err)
	defer db.Close()

	repo := search.NewPostgresRepo(db)

	t.Run("Two Tokens ANDed", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "document_id", "chunk_index", "content", "summary", "keywords", "title", "source_type", "source_url"}).
			AddRow(1, 9, 0, "Our pricing options are flexible.", "Our pricing options are flexible.",
				pq.Array([]string{"pricing", "options", "flexible"}), "Example", "link", "https://example.com")

		mock.ExpectQuery(`SELECT c\.id, c\.document_id, c\.chunk_index.*WHERE d\.user_id = \$1 AND \(c\.content ILIKE \$2 OR c\.summary ILIKE \$2\) AND \(c\.content ILIKE \$3 OR c\.summary ILIKE \$3\) ORDER BY c\.id LIMIT \$4`).
			WithArgs(int64(3), "%pricing%", "%options%", 10).
			WillReturnRows(rows)

		results, err := repo.SearchChunks(context.Background(), 3, []string{"pricing", "options"}, 10)
		assert.NoError(t, err)
		assert.Len(t, results, 1)
		assert.Equal(t, "Example", results[0].DocumentTitle)
		assert.Equal(t, []string{"pricing", "options", "flexible"}, results[0].Keywords)
	})

	t.Run("No Match", func(t *testing.T) {
		mock.ExpectQuery(`SELECT c\.id, c\.document_id`).
			WithArgs(int64(3), "%nothing%", 10).
			WillReturnRows(sqlmock.NewRows([]string{"id", "document_id", "chunk_index", "content", "summary", "keywords", "title", "source_type", "source_url"}))

		results, err := repo.SearchChunks(context.Background(), 3, []string{"nothing"}, 10)
		assert.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestPostgresRepo_LogQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := search.NewPostgresRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO search_query_logs (user_id, query, result_count, latency_ms) VALUES ($1, $2, $3, $4)")).
		WithArgs(int64(3), "pricing options", 2, int64(15)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.LogQuery(context.Background(), 3, "pricing options", 2, 15*time.Millisecond)
	assert.NoError(t, err)
}
