// Package server exposes workout generation and interval building over HTTP.
package server

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lowaak/interval-coach/internal/generator"
	"github.com/lowaak/interval-coach/internal/workout"
)

// WorkoutGenerator produces a workout plan for a request
type WorkoutGenerator interface {
	Generate(ctx context.Context, req generator.Request) (*workout.Workout, error)
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	gen    WorkoutGenerator
	logger *log.Logger
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(gen WorkoutGenerator, logger *log.Logger) *Server {
	if gen == nil {
		panic("Server: generator cannot be nil")
	}
	if logger == nil {
		panic("Server: logger cannot be nil")
	}
	s := &Server{
		gen:    gen,
		logger: logger,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestID)
	s.router.Use(RequestLogging(s.logger))
	s.router.Use(CORS)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/generate", s.handleGenerate)
		r.Post("/intervals", s.handleIntervals)
	})
}
