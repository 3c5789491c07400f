package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// ingestCodebaseTool returns the tool definition for ingest_codebase
func ingestCodebaseTool() mcp.Tool {
	return mcp.Tool{
		Name:        "ingest_codebase",
		Description: "Ingest a source tree into a repository partition to make it searchable",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"repo_id": map[string]interface{}{
					"type":        "string",
					"description": "Repository partition to ingest into",
				},
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the source tree root",
				},
			},
			Required: []string{"repo_id", "path"},
		},
	}
}

// searchCodeTool returns the tool definition for search_code
func searchCodeTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_code",
		Description: "Search an ingested repository with a natural language or keyword query",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"repo_id": map[string]interface{}{
					"type":        "string",
					"description": "Repository partition to search",
				},
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query (natural language or keywords)",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return (1-100)",
					"default":     10,
					"minimum":     1,
					"maximum":     100,
				},
			},
			Required: []string{"repo_id", "query"},
		},
	}
}

// repoStatusTool returns the tool definition for repo_status
func repoStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "repo_status",
		Description: "List ingested repository partitions and their chunk counts",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"repo_id": map[string]interface{}{
					"type":        "string",
					"description": "Restrict the report to a single repository partition",
				},
			},
		},
	}
}
