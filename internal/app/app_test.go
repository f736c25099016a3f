package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"voxintel/backend/internal/config"
)

type stubAnalyzer struct{}

func (stubAnalyzer) AnalyzeTranscript(ctx context.Context, transcript string) (string, error) {
	return "", nil
}

func testConfig() *config.Config {
	return &config.Config{
		ChunkMaxChars:        1000,
		CacheTTLMinutes:      30,
		ScrapeTimeoutSeconds: 10,
		ScrapeConcurrency:    5,
		ServerPort:           8080,
	}
}

func TestNew(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	application, err := New(testConfig(), db, nil, stubAnalyzer{})
	assert.NoError(t, err)
	assert.NotNil(t, application)
	assert.NotNil(t, application.Handler)
	assert.NotNil(t, application.DocumentService)
}

func TestNew_Routes(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	application, err := New(testConfig(), db, nil, stubAnalyzer{})
	assert.NoError(t, err)

	t.Run("health", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		application.Handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})

	t.Run("validation error carries correlation id and cors headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/aggregate", nil)
		rec := httptest.NewRecorder()
		application.Handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("unknown route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/nope", nil)
		rec := httptest.NewRecorder()
		application.Handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
