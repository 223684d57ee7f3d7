// Package server exposes the ingestion and retrieval pipeline over HTTP.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/psdocs/docsearch/internal/config"
	"github.com/psdocs/docsearch/internal/generator"
	"github.com/psdocs/docsearch/internal/ingest"
	"github.com/psdocs/docsearch/internal/registry"
	"github.com/psdocs/docsearch/internal/retrieve"
)

// Server is the HTTP front-end for the document library.
type Server struct {
	cfg        *config.Config
	pipeline   *ingest.Pipeline
	retriever  *retrieve.Retriever
	generator  *generator.Generator
	ledger     *registry.Ledger
	router     chi.Router
	httpServer *http.Server
}

// New wires a Server around explicitly constructed collaborators. generator
// and ledger may be nil; the corresponding endpoints then report 503.
func New(cfg *config.Config, pipeline *ingest.Pipeline, retriever *retrieve.Retriever, gen *generator.Generator, ledger *registry.Ledger) *Server {
	s := &Server{
		cfg:       cfg,
		pipeline:  pipeline,
		retriever: retriever,
		generator: gen,
		ledger:    ledger,
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.Server.AllowAllOrigins {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/search", s.handleSearch)
		r.Post("/ask", s.handleAsk)
		r.Post("/upload", s.handleUpload)
		r.Post("/reindex", s.handleReindex)
		r.Get("/runs", s.handleRuns)
	})

	return r
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("docsearch server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
