package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ingestkit/codeingest/internal/chunker"
	"github.com/ingestkit/codeingest/internal/embedder"
	"github.com/ingestkit/codeingest/internal/indexer"
	"github.com/ingestkit/codeingest/internal/searcher"
	"github.com/ingestkit/codeingest/internal/vectorstore"
)

func newTestMCPServer(t *testing.T) (*Server, *vectorstore.Store) {
	t.Helper()

	emb, err := embedder.NewHashProvider(16, nil)
	require.NoError(t, err)

	store := vectorstore.New()
	idx := indexer.New(chunker.New(), emb, store, nil)
	srch := searcher.New(store, emb, nil)

	return NewServer(idx, srch, store, nil), store
}

func callRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) map[string]interface{} {
	t.Helper()
	require.Len(t, result.Content, 1)
	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text.Text), &payload))
	return payload
}

func TestNewServer_Components(t *testing.T) {
	srv, _ := newTestMCPServer(t)

	assert.NotNil(t, srv.mcp)
	assert.NotNil(t, srv.indexer)
	assert.NotNil(t, srv.searcher)
	assert.NotNil(t, srv.store)
}

func TestIngestCodebase(t *testing.T) {
	srv, store := newTestMCPServer(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"),
		[]byte("package main\n\nfunc main() {}\n"), 0600))

	result, err := srv.handleIngestCodebase(context.Background(),
		callRequest("ingest_codebase", map[string]interface{}{
			"repo_id": "repo-A",
			"path":    dir,
		}))
	require.NoError(t, err)

	payload := resultText(t, result)
	assert.Equal(t, "repo-A", payload["repo_id"])
	assert.Equal(t, float64(1), payload["files_ingested"])
	assert.Equal(t, 1, store.Count("repo-A"))
}

func TestIngestCodebase_Validation(t *testing.T) {
	srv, _ := newTestMCPServer(t)
	ctx := context.Background()

	tests := []struct {
		name string
		args map[string]interface{}
		code int
	}{
		{
			name: "missing repo_id",
			args: map[string]interface{}{"path": "/tmp"},
			code: ErrorCodeInvalidParams,
		},
		{
			name: "missing path",
			args: map[string]interface{}{"repo_id": "r"},
			code: ErrorCodeInvalidParams,
		},
		{
			name: "relative path",
			args: map[string]interface{}{"repo_id": "r", "path": "relative/dir"},
			code: ErrorCodeInvalidParams,
		},
		{
			name: "nonexistent path",
			args: map[string]interface{}{"repo_id": "r", "path": "/does/not/exist"},
			code: ErrorCodeInvalidParams,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := srv.handleIngestCodebase(ctx, callRequest("ingest_codebase", tt.args))
			require.Error(t, err)

			var mcpErr *MCPError
			require.ErrorAs(t, err, &mcpErr)
			assert.Equal(t, tt.code, mcpErr.Code)
		})
	}
}

func TestSearchCode(t *testing.T) {
	srv, _ := newTestMCPServer(t)
	ctx := context.Background()

	_, err := srv.indexer.IngestText(ctx, "repo-A", "util.go", "func add(a, b int) int {\n\treturn a + b\n}")
	require.NoError(t, err)

	result, err := srv.handleSearchCode(ctx, callRequest("search_code", map[string]interface{}{
		"repo_id": "repo-A",
		"query":   "func add(a, b int) int {\n\treturn a + b\n}",
		"limit":   float64(5),
	}))
	require.NoError(t, err)

	payload := resultText(t, result)
	assert.Equal(t, float64(1), payload["total"])

	results := payload["results"].([]interface{})
	require.Len(t, results, 1)
	first := results[0].(map[string]interface{})
	assert.Equal(t, "chunk-1-3", first["id"])
	assert.InDelta(t, 1.0, first["score"].(float64), 1e-9)
}

func TestSearchCode_UnknownRepoIsEmpty(t *testing.T) {
	srv, _ := newTestMCPServer(t)

	result, err := srv.handleSearchCode(context.Background(),
		callRequest("search_code", map[string]interface{}{
			"repo_id": "missing",
			"query":   "anything",
		}))
	require.NoError(t, err)

	payload := resultText(t, result)
	assert.Equal(t, float64(0), payload["total"])
}

func TestSearchCode_Validation(t *testing.T) {
	srv, _ := newTestMCPServer(t)
	ctx := context.Background()

	_, err := srv.handleSearchCode(ctx, callRequest("search_code", map[string]interface{}{
		"repo_id": "r",
	}))
	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrorCodeEmptyQuery, mcpErr.Code)

	_, err = srv.handleSearchCode(ctx, callRequest("search_code", map[string]interface{}{
		"repo_id": "r",
		"query":   "q",
		"limit":   float64(500),
	}))
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrorCodeInvalidParams, mcpErr.Code)
}

func TestRepoStatus(t *testing.T) {
	srv, store := newTestMCPServer(t)
	ctx := context.Background()

	require.NoError(t, store.Add("repo-B", []vectorstore.Item{
		{ID: "c1", Vector: []float64{1, 0}},
		{ID: "c2", Vector: []float64{0, 1}},
	}))

	result, err := srv.handleRepoStatus(ctx, callRequest("repo_status", nil))
	require.NoError(t, err)

	payload := resultText(t, result)
	counts := payload["counts"].(map[string]interface{})
	assert.Equal(t, float64(2), counts["repo-B"])

	result, err = srv.handleRepoStatus(ctx, callRequest("repo_status", map[string]interface{}{
		"repo_id": "repo-B",
	}))
	require.NoError(t, err)

	payload = resultText(t, result)
	assert.Equal(t, true, payload["ingested"])
	assert.Equal(t, float64(2), payload["chunks"])

	result, err = srv.handleRepoStatus(ctx, callRequest("repo_status", map[string]interface{}{
		"repo_id": "never-seen",
	}))
	require.NoError(t, err)

	payload = resultText(t, result)
	assert.Equal(t, false, payload["ingested"])
	assert.Equal(t, float64(0), payload["chunks"])
}
