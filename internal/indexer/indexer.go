package indexer

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ingestkit/codeingest/internal/chunker"
	"github.com/ingestkit/codeingest/internal/embedder"
	"github.com/ingestkit/codeingest/internal/vectorstore"
)

// DefaultExtensions lists the source-file extensions picked up by
// directory ingestion
var DefaultExtensions = []string{
	".go", ".py", ".js", ".ts", ".java", ".c", ".h", ".cpp", ".rs", ".rb", ".md",
}

// Indexer coordinates the ingestion pipeline: chunk -> embed -> store
type Indexer struct {
	chunker  *chunker.Chunker
	embedder embedder.Embedder
	store    *vectorstore.Store
	logger   *zap.Logger

	locks sync.Map // repoID -> *IngestLock
}

// Config contains configuration for directory ingestion
type Config struct {
	Workers    int      // Concurrent workers (default: runtime.NumCPU())
	Extensions []string // File extensions to ingest (default: DefaultExtensions)
}

// Stats describes one ingestion run
type Stats struct {
	FilesIngested int
	FilesFailed   int
	ChunksCreated int
	Duration      time.Duration
	Errors        []string
}

// New creates an Indexer. A nil logger disables logging.
func New(ch *chunker.Chunker, emb embedder.Embedder, store *vectorstore.Store, logger *zap.Logger) *Indexer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Indexer{
		chunker:  ch,
		embedder: emb,
		store:    store,
		logger:   logger,
	}
}

// IngestText chunks one file's text, embeds every chunk, and appends the
// resulting (id, vector, metadata) triples to the repository's partition.
// Returns the number of chunks created. The operation is all-or-nothing:
// on error nothing is stored.
func (idx *Indexer) IngestText(ctx context.Context, repoID, name, text string) (int, error) {
	chunks, err := idx.chunker.Chunk(text)
	if err != nil {
		return 0, fmt.Errorf("chunk %s: %w", name, err)
	}
	if len(chunks) == 0 {
		return 0, nil
	}

	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Text
	}

	vectors, err := idx.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed %s: %w", name, err)
	}

	items := make([]vectorstore.Item, len(chunks))
	for i, ch := range chunks {
		items[i] = vectorstore.Item{
			ID:     ch.ID,
			Vector: vectors[i],
			Meta: map[string]interface{}{
				"file":       name,
				"start_line": ch.StartLine,
				"end_line":   ch.EndLine,
			},
		}
	}

	if err := idx.store.Add(repoID, items); err != nil {
		return 0, fmt.Errorf("store %s: %w", name, err)
	}

	idx.logger.Debug("ingested file",
		zap.String("repo_id", repoID),
		zap.String("file", name),
		zap.Int("chunks", len(chunks)))

	return len(chunks), nil
}

// IngestFile reads a file from disk and ingests it under its path relative
// to root (or its base name when rel fails).
func (idx *Indexer) IngestFile(ctx context.Context, repoID, root, path string) (int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}

	name := filepath.Base(path)
	if root != "" {
		if rel, relErr := filepath.Rel(root, path); relErr == nil {
			name = rel
		}
	}

	return idx.IngestText(ctx, repoID, name, string(content))
}

// IngestDir walks root for source files and ingests them concurrently.
// Only one directory ingestion may run per repository at a time; a second
// call returns ErrIngestInProgress. Per-file failures are collected in
// Stats.Errors rather than aborting the run; context cancellation aborts.
func (idx *Indexer) IngestDir(ctx context.Context, repoID, root string, config *Config) (*Stats, error) {
	if config == nil {
		config = &Config{}
	}
	workers := config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	extensions := config.Extensions
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	lock := idx.repoLock(repoID)
	if !lock.TryAcquire() {
		return nil, fmt.Errorf("%w: repo %s", ErrIngestInProgress, repoID)
	}
	defer lock.Release()

	startTime := time.Now()

	files, err := discoverFiles(root, extensions)
	if err != nil {
		return nil, fmt.Errorf("discover files: %w", err)
	}

	stats := &Stats{}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			chunks, err := idx.IngestFile(gctx, repoID, root, path)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				stats.FilesFailed++
				stats.Errors = append(stats.Errors, err.Error())
				return nil
			}
			stats.FilesIngested++
			stats.ChunksCreated += chunks
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats.Duration = time.Since(startTime)
	idx.logger.Info("directory ingested",
		zap.String("repo_id", repoID),
		zap.String("root", root),
		zap.Int("files", stats.FilesIngested),
		zap.Int("failed", stats.FilesFailed),
		zap.Int("chunks", stats.ChunksCreated),
		zap.Duration("duration", stats.Duration))

	return stats, nil
}

// repoLock returns the per-repository ingest lock, creating it on first use
func (idx *Indexer) repoLock(repoID string) *IngestLock {
	actual, _ := idx.locks.LoadOrStore(repoID, &IngestLock{})
	return actual.(*IngestLock)
}

// discoverFiles walks root and returns the matching file paths in sorted
// order so ingestion output is deterministic for a given tree.
func discoverFiles(root string, extensions []string) ([]string, error) {
	allowed := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(ext)] = true
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Hidden directories (.git and friends) are skipped
			if name := d.Name(); name != "." && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if allowed[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
