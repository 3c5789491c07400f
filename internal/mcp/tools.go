package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ingestkit/codeingest/internal/indexer"
	"github.com/ingestkit/codeingest/internal/searcher"
)

// MCP error codes
const (
	ErrorCodeInvalidParams    = -32602 // Invalid method parameters
	ErrorCodeInternalError    = -32603 // Internal JSON-RPC error
	ErrorCodeIngestInProgress = -32002 // Another ingestion is already running for the repo
	ErrorCodeEmptyQuery       = -32004 // Query parameter is empty
)

// handleIngestCodebase handles the ingest_codebase tool invocation
func (s *Server) handleIngestCodebase(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	repoID, ok := args["repo_id"].(string)
	if !ok || repoID == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "repo_id parameter is required", map[string]interface{}{
			"param":  "repo_id",
			"reason": "missing or empty",
		})
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "path parameter is required", map[string]interface{}{
			"param":  "path",
			"reason": "missing or empty",
		})
	}

	if err := validatePath(path); err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid path", map[string]interface{}{
			"param":  "path",
			"reason": err.Error(),
		})
	}

	stats, err := s.indexer.IngestDir(ctx, repoID, path, nil)
	if err != nil {
		if errors.Is(err, indexer.ErrIngestInProgress) {
			return nil, newMCPError(ErrorCodeIngestInProgress, "ingestion already in progress", map[string]interface{}{
				"repo_id": repoID,
			})
		}
		return nil, newMCPError(ErrorCodeInternalError, "ingestion failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"repo_id":        repoID,
		"files_ingested": stats.FilesIngested,
		"files_failed":   stats.FilesFailed,
		"chunks_created": stats.ChunksCreated,
		"duration_ms":    stats.Duration.Milliseconds(),
	}
	if len(stats.Errors) > 0 {
		if len(stats.Errors) > 5 {
			response["errors"] = stats.Errors[:5]
			response["error_count"] = len(stats.Errors)
		} else {
			response["errors"] = stats.Errors
		}
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleSearchCode handles the search_code tool invocation
func (s *Server) handleSearchCode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	repoID, ok := args["repo_id"].(string)
	if !ok || repoID == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "repo_id parameter is required", map[string]interface{}{
			"param":  "repo_id",
			"reason": "missing or empty",
		})
	}

	query, ok := args["query"].(string)
	if !ok || query == "" {
		return nil, newMCPError(ErrorCodeEmptyQuery, "query parameter is required and cannot be empty", map[string]interface{}{
			"param":  "query",
			"reason": "missing or empty",
		})
	}

	limit := getIntDefault(args, "limit", searcher.DefaultLimit)
	if limit < 1 || limit > 100 {
		return nil, newMCPError(ErrorCodeInvalidParams, "limit must be between 1 and 100", map[string]interface{}{
			"param": "limit",
			"value": limit,
		})
	}

	resp, err := s.searcher.Search(ctx, searcher.Request{
		RepoID: repoID,
		Query:  query,
		Limit:  limit,
	})
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "search failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	results := make([]map[string]interface{}, len(resp.Results))
	for i, r := range resp.Results {
		results[i] = map[string]interface{}{
			"id":       r.ID,
			"score":    r.Score,
			"metadata": r.Meta,
		}
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"repo_id":     repoID,
		"results":     results,
		"total":       resp.TotalResults,
		"duration_ms": resp.Duration.Milliseconds(),
		"cache_hit":   resp.CacheHit,
	})), nil
}

// handleRepoStatus handles the repo_status tool invocation
func (s *Server) handleRepoStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	if repoID, ok := args["repo_id"].(string); ok && repoID != "" {
		count := s.store.Count(repoID)
		return mcp.NewToolResultText(formatJSON(map[string]interface{}{
			"repo_id":  repoID,
			"ingested": count > 0,
			"chunks":   count,
		})), nil
	}

	repos := s.store.Repos()
	counts := make(map[string]int, len(repos))
	for _, id := range repos {
		counts[id] = s.store.Count(id)
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"repos":  repos,
		"counts": counts,
	})), nil
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// validatePath checks if a path exists and is a readable directory
func validatePath(path string) error {
	if !filepath.IsAbs(path) {
		return ErrPathNotAbsolute
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return ErrPathNotFound
	}
	if err != nil {
		return ErrPathNotReadable
	}
	if !info.IsDir() {
		return ErrNotDirectory
	}

	f, err := os.Open(path)
	if err != nil {
		return ErrPathNotReadable
	}
	_ = f.Close()

	return nil
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// Validation helpers

var (
	ErrPathNotAbsolute = errors.New("path must be absolute")
	ErrPathNotFound    = errors.New("path does not exist")
	ErrPathNotReadable = errors.New("path is not readable")
	ErrNotDirectory    = errors.New("path is not a directory")
)
