package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"voxintel/backend/features/business"
	"voxintel/backend/features/call"
	"voxintel/backend/features/document"
	"voxintel/backend/features/search"
	"voxintel/backend/internal/aggregate"
	"voxintel/backend/internal/config"
	"voxintel/backend/internal/middleware"
	"voxintel/backend/internal/scrape"
)

type App struct {
	Handler         http.Handler
	DocumentService *document.Service
	port            int
}

func New(
	cfg *config.Config,
	db *sql.DB,
	publisher document.EventPublisher,
	analyzer call.TranscriptAnalyzer,
) (*App, error) {
	fetcher := scrape.NewHTTPFetcher(time.Duration(cfg.ScrapeTimeoutSeconds) * time.Second)

	// Feature: Business
	businessRepo := business.NewPostgresRepo(db)
	businessService := business.NewService(businessRepo)
	businessHandler := business.NewHandler(businessService)

	// Feature: Document
	documentRepo := document.NewPostgresRepo(db)
	files := document.NewHTTPFileExtractor(fetcher)
	documentService := document.NewService(documentRepo, fetcher, files, businessService, publisher, cfg.ChunkMaxChars)
	documentHandler := document.NewHandler(documentService)

	// Feature: Search
	searchRepo := search.NewPostgresRepo(db)
	searchService := search.NewService(searchRepo)
	searchHandler := search.NewHandler(searchService)

	// Feature: Call
	callRepo := call.NewPostgresRepo(db)
	callService := call.NewService(callRepo, analyzer)
	callHandler := call.NewHandler(callService)

	// Aggregation
	scraper := scrape.NewScraper(fetcher, cfg.ScrapeConcurrency)
	cache := aggregate.NewCache(time.Duration(cfg.CacheTTLMinutes)*time.Minute, nil)
	aggregateService := aggregate.NewService(businessRepo, documentRepo, callRepo, scraper, cache)
	aggregateHandler := aggregate.NewHandler(aggregateService)

	// Middleware: CORS
	enableCORS := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			next(w, r)
		}
	}

	// Routes
	mux := http.NewServeMux()

	mux.Handle("POST /documents/process", middleware.CorrelationID(enableCORS(documentHandler.Process)))
	mux.Handle("GET /documents", middleware.CorrelationID(enableCORS(documentHandler.List)))

	mux.Handle("GET /search", middleware.CorrelationID(enableCORS(searchHandler.Search)))

	mux.Handle("GET /business/profile", middleware.CorrelationID(enableCORS(businessHandler.GetProfile)))
	mux.Handle("PUT /business/profile", middleware.CorrelationID(enableCORS(businessHandler.PutProfile)))
	mux.Handle("GET /business/leads", middleware.CorrelationID(enableCORS(businessHandler.ListLeads)))
	mux.Handle("POST /business/leads", middleware.CorrelationID(enableCORS(businessHandler.CreateLead)))

	mux.Handle("POST /calls", middleware.CorrelationID(enableCORS(callHandler.Create)))
	mux.Handle("GET /calls", middleware.CorrelationID(enableCORS(callHandler.List)))

	mux.Handle("GET /aggregate", middleware.CorrelationID(enableCORS(aggregateHandler.Get)))

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	return &App{
		Handler:         mux,
		DocumentService: documentService,
		port:            cfg.ServerPort,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", a.port),
		Handler: a.Handler,
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutting down server...")
		if err := srv.Shutdown(context.Background()); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("server starting", "port", a.port)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}
