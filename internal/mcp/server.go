package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/ingestkit/codeingest/internal/indexer"
	"github.com/ingestkit/codeingest/internal/searcher"
	"github.com/ingestkit/codeingest/internal/vectorstore"
)

const (
	// ServerName is the MCP server name
	ServerName = "codeingest"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp      *server.MCPServer
	indexer  *indexer.Indexer
	searcher *searcher.Searcher
	store    *vectorstore.Store
	logger   *zap.Logger
}

// NewServer creates a new MCP server instance over an already assembled
// pipeline. The indexer and searcher must share the same embedder so that
// vectors written during ingestion are comparable at query time.
func NewServer(idx *indexer.Indexer, srch *searcher.Searcher, store *vectorstore.Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		mcp:      server.NewMCPServer(ServerName, ServerVersion),
		indexer:  idx,
		searcher: srch,
		store:    store,
		logger:   logger,
	}

	s.registerTools()
	return s
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("mcp server starting", zap.String("name", ServerName))
	return server.ServeStdio(s.mcp)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(ingestCodebaseTool(), s.handleIngestCodebase)
	s.mcp.AddTool(searchCodeTool(), s.handleSearchCode)
	s.mcp.AddTool(repoStatusTool(), s.handleRepoStatus)
}
