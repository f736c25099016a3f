package document_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"voxintel/backend/features/document"
)

func TestPostgresRepo_GetByUserAndURL(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := document.NewPostgresRepo(db)

	t.Run("Found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "user_id", "source_type", "source_url", "title", "status"}).
			AddRow(1, 3, "link", "https://example.com", "Example", "completed")

		mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, source_type, source_url, title, status FROM documents WHERE user_id = $1 AND source_url = $2")).
			WithArgs(int64(3), "https://example.com").
			WillReturnRows(rows)

		doc, err := repo.GetByUserAndURL(context.Background(), 3, "https://example.com")
		assert.NoError(t, err)
		assert.Equal(t, int64(1), doc.ID)
		assert.Equal(t, "completed", doc.Status)
	})

	t.Run("Not Found Returns Nil", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, source_type, source_url, title, status FROM documents")).
			WithArgs(int64(3), "https://missing.example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "source_type", "source_url", "title", "status"}))

		doc, err := repo.GetByUserAndURL(context.Background(), 3, "https://missing.example.com")
		assert.NoError(t, err)
		assert.Nil(t, doc)
	})
}

func TestPostgresRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := document.NewPostgresRepo(db)

	doc := &document.Document{
		UserID:      3,
		SourceType:  "link",
		SourceURL:   "https://example.com",
		Title:       "Example",
		ContentType: "text/html",
		Status:      "processing",
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO documents (user_id, source_type, source_url, title, content_type, size_bytes, status) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id")).
		WithArgs(doc.UserID, doc.SourceType, doc.SourceURL, doc.Title, doc.ContentType, doc.SizeBytes, doc.Status).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))

	assert.NoError(t, repo.Create(context.Background(), doc))
	assert.Equal(t, int64(9), doc.ID)
}

func TestPostgresRepo_MarkCompleted(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := document.NewPostgresRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE documents SET status = 'completed', extracted_text = $1, error_message = NULL, processed_at = NOW(), updated_at = NOW() WHERE id = $2")).
		WithArgs("some text", int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.MarkCompleted(context.Background(), 9, "some text"))
}

func TestPostgresRepo_MarkFailed(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := document.NewPostgresRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE documents SET status = 'failed', error_message = $1, updated_at = NOW() WHERE id = $2")).
		WithArgs("no text content could be extracted", int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.MarkFailed(context.Background(), 9, "no text content could be extracted"))
}

func TestPostgresRepo_CreateChunks(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := document.NewPostgresRepo(db)

	t.Run("Success", func(t *testing.T) {
		chunks := []document.Chunk{
			{ChunkIndex: 0, Content: "First chunk.", WordCount: 2, Summary: "First chunk.", Keywords: []string{"first", "chunk"}},
			{ChunkIndex: 1, Content: "Second chunk.", WordCount: 2, Summary: "Second chunk.", Keywords: []string{"second", "chunk"}},
		}

		mock.ExpectBegin()
		stmt := mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO document_chunks"))
		stmt.ExpectExec().
			WithArgs(int64(9), 0, "First chunk.", 2, "First chunk.", pq.Array(chunks[0].Keywords)).
			WillReturnResult(sqlmock.NewResult(1, 1))
		stmt.ExpectExec().
			WithArgs(int64(9), 1, "Second chunk.", 2, "Second chunk.", pq.Array(chunks[1].Keywords)).
			WillReturnResult(sqlmock.NewResult(2, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.CreateChunks(context.Background(), 9, chunks))
	})

	t.Run("Empty Is Noop", func(t *testing.T) {
		assert.NoError(t, repo.CreateChunks(context.Background(), 9, nil))
	})
}

func TestPostgresRepo_KnowledgeChunks(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := document.NewPostgresRepo(db)

	rows := sqlmock.NewRows([]string{"document_id", "title", "summary", "keywords"}).
		AddRow(1, "Example", "A summary.", pq.Array([]string{"pricing", "budgeting"}))

	mock.ExpectQuery("SELECT c.document_id, d.title, c.summary, c.keywords").
		WithArgs(int64(3), 100).
		WillReturnRows(rows)

	chunks, err := repo.KnowledgeChunks(context.Background(), 3, 100)
	assert.NoError(t, err)
	assert.Len(t, chunks, 1)
	assert.Equal(t, []string{"pricing", "budgeting"}, chunks[0].Keywords)
}

func TestPostgresRepo_CountByStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := document.NewPostgresRepo(db)

	rows := sqlmock.NewRows([]string{"status", "count"}).
		AddRow("completed", 4).
		AddRow("failed", 1)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT status, COUNT(*) FROM documents WHERE user_id = $1 GROUP BY status")).
		WithArgs(int64(3)).
		WillReturnRows(rows)

	counts, err := repo.CountByStatus(context.Background(), 3)
	assert.NoError(t, err)
	assert.Equal(t, map[string]int{"completed": 4, "failed": 1}, counts)
}
