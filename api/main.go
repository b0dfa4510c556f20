package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/DeafMist/job-radar/internal/config"
	"github.com/DeafMist/job-radar/internal/elasticsearch"
	"github.com/DeafMist/job-radar/internal/logger"
)

type searcher interface {
	Health(ctx context.Context) error
	SearchJobs(ctx context.Context, params elasticsearch.SearchParams) (*elasticsearch.SearchResult, error)
}

func main() {
	log := logger.New("api")
	defer log.Sync()

	cfg, err := config.LoadAPI()
	if err != nil {
		log.Error("load config", zap.Error(err))
		os.Exit(1)
	}

	esClient, err := elasticsearch.New(cfg.ElasticsearchAddr, cfg.ElasticsearchIndex, log)
	if err != nil {
		log.Error("init elasticsearch", zap.Error(err))
		os.Exit(1)
	}

	srv := &server{log: log, cfg: cfg, es: esClient}

	httpServer := &http.Server{
		Addr:              cfg.BindAddr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	go func() {
		log.Info("api server starting", zap.String("addr", cfg.BindAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", zap.Error(err))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}
}

type server struct {
	log *zap.Logger
	cfg *config.API
	es  searcher
}

type errorResponse struct {
	Error string `json:"error"`
}

type searchResponse struct {
	Total int64               `json:"total"`
	Items []elasticsearch.Hit `json:"items"`
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/jobs", s.handleSearch)
	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.es.Health(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleSearch(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	q := r.URL.Query()
	params := elasticsearch.SearchParams{
		Query:     strings.TrimSpace(q.Get("q")),
		Industry:  strings.TrimSpace(q.Get("industry")),
		City:      strings.TrimSpace(q.Get("city")),
		Seniority: strings.TrimSpace(q.Get("seniority")),
		From:      clampInt(q.Get("from"), 0, 10_000),
		Size:      clampInt(q.Get("size"), s.cfg.DefaultPage, s.cfg.MaxPage),
	}

	result, err := s.es.SearchJobs(ctx, params)
	if err != nil {
		s.log.Error("search jobs", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{Total: result.Total, Items: result.Items})
}

func clampInt(raw string, fallback, max int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	if value <= 0 {
		return fallback
	}
	if value > max {
		return max
	}
	return value
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
