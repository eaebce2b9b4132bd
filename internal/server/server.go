// Package server exposes the tile calculator over HTTP.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Nithilan10/buildai/internal/config"
	"github.com/Nithilan10/buildai/internal/engine"
	"github.com/Nithilan10/buildai/internal/model"
	"github.com/Nithilan10/buildai/internal/narrative"
)

// DefaultMaxBodyBytes limits request bodies when Options leaves it unset.
const DefaultMaxBodyBytes = 1 << 20

// Options configures a Server. Zero values take defaults.
type Options struct {
	Estimator    *narrative.Estimator
	Wastage      *engine.WastageOptions // nil uses DefaultWastageOptions
	Presets      model.Presets
	Logger       *log.Logger
	MaxBodyBytes int64
}

// Server routes API requests to the calculator.
type Server struct {
	router    chi.Router
	estimator *narrative.Estimator
	wastage   engine.WastageOptions
	presets   model.Presets
	logger    *log.Logger
	maxBody   int64
}

// New builds a Server and its routes.
func New(opts Options) *Server {
	s := &Server{
		estimator: opts.Estimator,
		wastage:   engine.DefaultWastageOptions(),
		presets:   opts.Presets,
		logger:    opts.Logger,
		maxBody:   opts.MaxBodyBytes,
	}
	if s.logger == nil {
		s.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if opts.Wastage != nil {
		s.wastage = *opts.Wastage
	}
	if s.estimator == nil {
		s.estimator = narrative.NewEstimator(nil, narrative.WithWastageOptions(s.wastage))
	}
	if s.presets.Tiles == nil {
		s.presets = model.DefaultPresets()
	}
	if s.maxBody <= 0 {
		s.maxBody = DefaultMaxBodyBytes
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/tile-layout", s.handleTileLayout)
		r.Post("/tile-layout/multi", s.handleMultiLayout)
		r.Post("/calculate-wastage", s.handleCalculateWastage)
		r.Post("/report.pdf", s.handleReportPDF)
		r.Post("/report.xlsx", s.handleReportExcel)
		r.Get("/presets", s.handlePresets)
	})
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, cfg config.ServerConfig) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start).Round(time.Microsecond),
			)
		})
	}
}
