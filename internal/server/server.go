// Package server exposes the estimator over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/piwi3910/MachCost/internal/config"
	applog "github.com/piwi3910/MachCost/internal/log"
	"github.com/piwi3910/MachCost/internal/model"
	"github.com/piwi3910/MachCost/internal/project"
	"github.com/piwi3910/MachCost/internal/store"
)

const gracefulShutdownTimeout = 5 * time.Second

// Options configures a Server. Store is required; an empty QuotesPath
// disables quote history.
type Options struct {
	HTTP       config.HTTPServer
	Branding   config.Branding
	Store      store.Store
	Defaults   model.AppConfig
	QuotesPath string
	Logger     *zap.Logger
}

type Server struct {
	http       config.HTTPServer
	branding   config.Branding
	store      store.Store
	defaults   model.AppConfig
	quotesPath string
	validate   *Validator
	logger     *zap.Logger
	now        func() time.Time

	// held across load-modify-save of the material price table
	costsMu sync.Mutex
}

func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(opts.HTTP.AllowedOrigins) == 0 {
		opts.HTTP.AllowedOrigins = []string{"*"}
	}
	return &Server{
		http:       opts.HTTP,
		branding:   opts.Branding,
		store:      opts.Store,
		defaults:   opts.Defaults,
		quotesPath: opts.QuotesPath,
		validate:   NewValidator(),
		logger:     logger,
		now:        time.Now,
	}
}

// Router returns the HTTP handler with all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		applog.Logger(s.logger, "http"),
		middleware.Recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins: s.http.AllowedOrigins,
			AllowedMethods: []string{"GET", "PUT", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			ExposedHeaders: []string{"Content-Disposition"},
			MaxAge:         300,
		}),
	)

	r.Get("/healthz", s.healthz)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/estimate", s.estimate)
		r.Post("/volume", s.volume)
		r.Post("/batches", s.batches)
		r.Post("/units/convert", s.convertUnits)

		r.Get("/materials", s.listMaterials)
		r.Put("/materials/costs", s.updateMaterialCosts)
		r.Delete("/materials/costs", s.resetMaterialCosts)
		r.Post("/materials/compare", s.compareMaterials)

		r.Get("/finishing", s.listFinishing)

		r.Get("/quotes", s.listQuotes)
		r.Post("/quotes/{format}", s.quoteDocument)

		r.Get("/consent", s.getConsent)
		r.Put("/consent", s.putConsent)

		r.Post("/leadtime", s.leadTime)
		r.Get("/branding", s.getBranding)
	})
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.http.Address,
		Handler:      s.Router(),
		ReadTimeout:  s.http.Timeout,
		WriteTimeout: s.http.Timeout,
		IdleTimeout:  s.http.IdleTimeout,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info("shutdown signal received", zap.Error(ctx.Err()))
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		_ = srv.Shutdown(ctxTimeout)
		s.logger.Info("api server terminated")
	}()

	s.logger.Info("listening", zap.String("address", s.http.Address))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// catalog returns the built-in catalog with the stored material prices and
// the configured finishing prices applied.
func (s *Server) catalog(ctx context.Context) model.Catalog {
	costs := project.LoadMaterialCosts(ctx, s.store)
	return s.defaults.ApplyFinishingCosts(model.DefaultCatalog().WithCosts(costs))
}

func (s *Server) units(raw string) model.UnitSystem {
	if u, err := model.ParseUnitSystem(raw); err == nil {
		return u
	}
	if s.defaults.DefaultUnits != "" {
		return s.defaults.DefaultUnits
	}
	return model.UnitsMetric
}
