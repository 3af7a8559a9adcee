// Package api exposes the projection engine over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/rgehrsitz/hpgo/internal/calculation"
)

// DefaultMaxBodyBytes caps request bodies when Options leaves it unset.
const DefaultMaxBodyBytes int64 = 1 << 20

// Options configure a Server.
type Options struct {
	Logger       *logrus.Logger
	Workers      int
	MaxBodyBytes int64
}

// Server routes requests to a projection and a Monte Carlo engine.
type Server struct {
	projection   *calculation.ProjectionEngine
	monteCarlo   *calculation.MonteCarloEngine
	log          *logrus.Logger
	maxBodyBytes int64
}

// NewServer wires engines to the given logger.
func NewServer(opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = logrus.New()
	}
	maxBody := opts.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}

	pe := calculation.NewProjectionEngine()
	pe.SetLogger(log)
	mce := calculation.NewMonteCarloEngine()
	mce.SetLogger(log)
	if opts.Workers > 0 {
		mce.Workers = opts.Workers
	}
	return &Server{projection: pe, monteCarlo: mce, log: log, maxBodyBytes: maxBody}
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(s.limitBody)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/projections", s.handleProjection)
		r.Post("/montecarlo", s.handleMonteCarlo)
		r.Post("/validate", s.handleValidate)
		r.Post("/hash", s.handleHash)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
