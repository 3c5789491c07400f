// Package server provides the HTTP API for the code-ingest backend.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/ingestkit/codeingest/internal/config"
	"github.com/ingestkit/codeingest/internal/indexer"
	"github.com/ingestkit/codeingest/internal/llm"
	"github.com/ingestkit/codeingest/internal/searcher"
	"github.com/ingestkit/codeingest/internal/vectorstore"
)

const requestTimeout = 60 * time.Second

// Server is the HTTP server for the code-ingest API
type Server struct {
	indexer  *indexer.Indexer
	searcher *searcher.Searcher
	store    *vectorstore.Store
	llm      *llm.Client
	config   *config.Config
	logger   *zap.Logger

	server   *http.Server
	listener net.Listener
}

// New creates a server with the given dependencies
func New(
	idx *indexer.Indexer,
	srch *searcher.Searcher,
	store *vectorstore.Store,
	llmClient *llm.Client,
	cfg *config.Config,
	logger *zap.Logger,
) *Server {
	return &Server{
		indexer:  idx,
		searcher: srch,
		store:    store,
		llm:      llmClient,
		config:   cfg,
		logger:   logger,
	}
}

// router assembles the chi router with middleware and routes
func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(licenseMiddleware)
		r.Post("/ingest", s.handleIngest)
		r.Post("/query", s.handleQuery)
		r.Post("/answer", s.handleAnswer)
		r.Get("/repos", s.handleRepos)
	})

	return r
}

// Start binds the listener and serves until Stop or a fatal error. A
// configured port of 0 auto-selects a free port; the bound address is
// logged before serving so process supervisors can discover it.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	s.listener = listener

	s.server = &http.Server{
		Handler:           s.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("backend startup",
		zap.String("addr", listener.Addr().String()),
		zap.Int("port", s.Port()))

	if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Port returns the port actually bound, which differs from the configured
// port when auto-selection was requested. Returns 0 before Start.
func (s *Server) Port() int {
	if s.listener == nil {
		return 0
	}
	if tcp, ok := s.listener.Addr().(*net.TCPAddr); ok {
		return tcp.Port
	}
	return 0
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
