package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ingestkit/codeingest/internal/indexer"
	"github.com/ingestkit/codeingest/internal/llm"
	"github.com/ingestkit/codeingest/internal/searcher"
	"github.com/ingestkit/codeingest/internal/vectorstore"
	"github.com/ingestkit/codeingest/pkg/types"
)

// ingestRequest is the body of POST /api/v1/ingest. Either text or path
// must be set; path ingests a directory from the server's filesystem.
type ingestRequest struct {
	RepoID string `json:"repo_id"`
	Name   string `json:"name"`
	Text   string `json:"text"`
	Path   string `json:"path"`
}

type ingestResponse struct {
	RepoID        string   `json:"repo_id"`
	FilesIngested int      `json:"files_ingested"`
	ChunksCreated int      `json:"chunks_created"`
	Errors        []string `json:"errors,omitempty"`
}

type queryRequest struct {
	RepoID string `json:"repo_id"`
	Query  string `json:"query"`
	K      int    `json:"k"`
}

type queryResult struct {
	ID    string                 `json:"id"`
	Score float64                `json:"score"`
	Meta  map[string]interface{} `json:"metadata"`
}

type queryResponse struct {
	RepoID  string        `json:"repo_id"`
	Results []queryResult `json:"results"`
	Total   int           `json:"total"`
}

type answerResponse struct {
	RepoID  string        `json:"repo_id"`
	Answer  string        `json:"answer"`
	Model   string        `json:"model,omitempty"`
	Results []queryResult `json:"results"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.RepoID == "" {
		writeError(w, http.StatusBadRequest, "repo_id is required")
		return
	}

	switch {
	case req.Path != "":
		stats, err := s.indexer.IngestDir(r.Context(), req.RepoID, req.Path, nil)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ingestResponse{
			RepoID:        req.RepoID,
			FilesIngested: stats.FilesIngested,
			ChunksCreated: stats.ChunksCreated,
			Errors:        stats.Errors,
		})

	case req.Text != "":
		name := req.Name
		if name == "" {
			name = "untitled"
		}
		chunks, err := s.indexer.IngestText(r.Context(), req.RepoID, name, req.Text)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ingestResponse{
			RepoID:        req.RepoID,
			FilesIngested: 1,
			ChunksCreated: chunks,
		})

	default:
		writeError(w, http.StatusBadRequest, "either text or path is required")
	}
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	resp, err := s.search(r, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	resp, err := s.search(r, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	result, err := s.llm.Generate(r.Context(), answerPrompt(req.Query, resp.Results), nil)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, answerResponse{
		RepoID:  req.RepoID,
		Answer:  result.Text,
		Model:   result.Model,
		Results: resp.Results,
	})
}

func (s *Server) handleRepos(w http.ResponseWriter, _ *http.Request) {
	repos := s.store.Repos()
	counts := make(map[string]int, len(repos))
	for _, repoID := range repos {
		counts[repoID] = s.store.Count(repoID)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"repos":  repos,
		"counts": counts,
	})
}

// search runs the shared retrieval step for query and answer
func (s *Server) search(r *http.Request, req queryRequest) (*queryResponse, error) {
	limit := req.K
	if limit <= 0 {
		limit = s.config.Search.DefaultLimit
	}
	if limit > s.config.Search.MaxLimit {
		limit = s.config.Search.MaxLimit
	}

	resp, err := s.searcher.Search(r.Context(), searcher.Request{
		RepoID:   req.RepoID,
		Query:    req.Query,
		Limit:    limit,
		UseCache: s.config.Search.CacheEnabled,
		CacheTTL: time.Duration(s.config.Search.CacheTTLSeconds) * time.Second,
	})
	if err != nil {
		return nil, err
	}

	return &queryResponse{
		RepoID:  req.RepoID,
		Results: toQueryResults(resp.Results),
		Total:   resp.TotalResults,
	}, nil
}

// answerPrompt builds the generation prompt from the retrieved locations
func answerPrompt(query string, results []queryResult) string {
	var b strings.Builder
	b.WriteString("Answer the following question about a code repository.\n")
	b.WriteString("Question: ")
	b.WriteString(query)
	b.WriteString("\nMost relevant locations:\n")
	for _, r := range results {
		fmt.Fprintf(&b, "- %s (file %v, lines %v-%v, score %.3f)\n",
			r.ID, r.Meta["file"], r.Meta["start_line"], r.Meta["end_line"], r.Score)
	}
	return b.String()
}

func toQueryResults(results []vectorstore.Result) []queryResult {
	out := make([]queryResult, len(results))
	for i, r := range results {
		out[i] = queryResult{ID: r.ID, Score: r.Score, Meta: r.Meta}
	}
	return out
}

// writeDomainError maps core errors onto HTTP status codes
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, types.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, types.ErrDimensionMismatch):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, indexer.ErrIngestInProgress):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, llm.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
