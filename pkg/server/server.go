package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/ja7ad/gwnexus/pkg/dataset"
	"github.com/ja7ad/gwnexus/pkg/estimator"
	"github.com/ja7ad/gwnexus/pkg/report"
	"github.com/rs/cors"
)

// Config configures the dashboard server.
type Config struct {
	Addr           string
	InsightYear    int
	AllowedOrigins []string
	Logger         *slog.Logger
}

// Server serves the interactive dashboard and its JSON API. Every request
// carries its own parameters; the only shared state is the read-only dataset
// and the result cache.
type Server struct {
	cfg   Config
	data  *dataset.Dataset
	log   *slog.Logger
	cache *views
	srv   *http.Server
}

// New validates that the dataset can be estimated with default parameters
// and builds the HTTP handler.
func New(cfg Config, data *dataset.Dataset) (*Server, error) {
	if data == nil {
		return nil, errors.New("server: nil dataset")
	}
	if _, err := data.Estimate(estimator.DefaultParameters()); err != nil {
		return nil, err
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.InsightYear == 0 {
		cfg.InsightYear = estimator.DefaultInsightYear
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}

	s := &Server{cfg: cfg, data: data, log: cfg.Logger, cache: newViews()}
	s.srv = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		WriteTimeout:      15 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
	return s, nil
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(recovery(s.log))
	r.Use(logging(s.log))

	r.HandleFunc("/", s.handleDashboard).Methods(http.MethodGet)
	r.HandleFunc("/charts/{name:[a-z-]+}.png", s.handleChart).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/estimate", s.handleEstimate).Methods(http.MethodGet)
	api.HandleFunc("/volumes", s.handleVolumes).Methods(http.MethodGet)
	api.HandleFunc("/shares", s.handleShares).Methods(http.MethodGet)
	api.HandleFunc("/insight", s.handleInsight).Methods(http.MethodGet)
	api.HandleFunc("/tubewells", s.handleTubewells).Methods(http.MethodGet)

	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Origin"},
		MaxAge:         86400,
	})
	return c.Handler(r)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("dashboard listening", "addr", s.cfg.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.cache.flush()
	return s.srv.Shutdown(shutdownCtx)
}

func (s *Server) view(p estimator.Parameters) (report.View, error) {
	return s.cache.view(p, func() (report.View, error) {
		res, err := s.data.Estimate(p)
		if err != nil {
			return report.View{}, err
		}
		v := report.NewView(res, s.data.Tubewells, s.cfg.InsightYear)
		for _, w := range v.Warnings {
			s.log.Warn("data warning", "params", p.Key(), "year", w.Year, "kind", w.Kind.String(), "msg", w.Message)
		}
		return v, nil
	})
}
