package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ingestkit/codeingest/internal/chunker"
	"github.com/ingestkit/codeingest/internal/config"
	"github.com/ingestkit/codeingest/internal/embedder"
	"github.com/ingestkit/codeingest/internal/indexer"
	"github.com/ingestkit/codeingest/internal/license"
	"github.com/ingestkit/codeingest/internal/llm"
	"github.com/ingestkit/codeingest/internal/mcp"
	"github.com/ingestkit/codeingest/internal/searcher"
	"github.com/ingestkit/codeingest/internal/server"
	"github.com/ingestkit/codeingest/internal/vectorstore"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var (
		showVersion = flag.Bool("version", false, "print version and exit")
		configPath  = flag.String("config", "", "path to YAML config file")
		mcpMode     = flag.Bool("mcp", false, "serve the MCP protocol on stdio instead of HTTP")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("codeingest\n")
		fmt.Printf("Version: %s\n", version)
		fmt.Printf("Build Time: %s\n", buildTime)
		os.Exit(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Debug, *mcpMode)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	emb, err := embedder.New(embedder.Config{
		Provider:      cfg.Embedding.Provider,
		Dimension:     cfg.Embedding.Dimension,
		CacheSize:     cfg.Embedding.CacheSize,
		OllamaBaseURL: cfg.LLM.BaseURL,
		OllamaModel:   cfg.Embedding.OllamaModel,
	})
	if err != nil {
		logger.Fatal("failed to create embedder", zap.Error(err))
	}
	defer func() { _ = emb.Close() }()

	store := vectorstore.New()
	ch := &chunker.Chunker{
		MaxLines:     cfg.Chunking.MaxLines,
		OverlapLines: cfg.Chunking.OverlapLines,
	}

	// The indexer and searcher share one embedder so vectors written at
	// ingest time are comparable at query time (and share its cache).
	idx := indexer.New(ch, emb, store, logger)
	srch := searcher.New(store, emb, logger)

	logger.Info("starting",
		zap.String("version", version),
		zap.String("embedding_provider", emb.Provider()),
		zap.Int("embedding_dim", emb.Dimension()),
		zap.Bool("license_enforced", license.Required()))

	if *mcpMode {
		runMCP(idx, srch, store, logger)
		return
	}

	runHTTP(cfg, idx, srch, store, logger)
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// newLogger builds the process logger. In MCP mode stdout carries the
// protocol, so logs always go to stderr.
func newLogger(debug, mcpMode bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	if mcpMode {
		cfg.OutputPaths = []string{"stderr"}
		cfg.ErrorOutputPaths = []string{"stderr"}
	}
	return cfg.Build()
}

func runMCP(idx *indexer.Indexer, srch *searcher.Searcher, store *vectorstore.Store, logger *zap.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	srv := mcp.NewServer(idx, srch, store, logger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Serve(ctx)
	}()

	select {
	case sig := <-sigChan:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	case err := <-errChan:
		if err != nil {
			logger.Fatal("mcp server error", zap.Error(err))
		}
	}
}

func runHTTP(cfg *config.Config, idx *indexer.Indexer, srch *searcher.Searcher, store *vectorstore.Store, logger *zap.Logger) {
	llmClient := llm.NewClient(cfg.LLM.BaseURL)
	srv := server.New(idx, srch, store, llmClient, cfg, logger)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case sig := <-sigChan:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Stop(ctx); err != nil {
			logger.Error("shutdown error", zap.Error(err))
		}
		<-errChan
	case err := <-errChan:
		if err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}

	logger.Info("server stopped")
}
