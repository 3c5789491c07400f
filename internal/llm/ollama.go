package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrUnavailable indicates that the Ollama server did not answer the
// health probe
var ErrUnavailable = errors.New("ollama not available")

const (
	// DefaultBaseURL is the standard local Ollama address
	DefaultBaseURL = "http://127.0.0.1:11434"

	// DefaultTimeout bounds every request to the local server
	DefaultTimeout = 1 * time.Second
)

// Client is a lightweight HTTP client for a local Ollama server
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Result is the distilled response of one generate call
type Result struct {
	Text      string `json:"text"`
	Model     string `json:"model"`
	CreatedAt string `json:"created_at"`
	Done      bool   `json:"done"`
}

// NewClient creates a client for the given base URL (DefaultBaseURL when
// empty)
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// Health reports whether the Ollama server responds with HTTP 200
func (c *Client) Health(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	return resp.StatusCode == http.StatusOK
}

// Generate sends prompt through Ollama's /api/generate endpoint. Extra
// options (model, temperature, ...) are merged into the request payload.
// Returns ErrUnavailable without issuing the request when the health
// probe fails.
func (c *Client) Generate(ctx context.Context, prompt string, options map[string]interface{}) (*Result, error) {
	if !c.Health(ctx) {
		return nil, ErrUnavailable
	}

	payload := map[string]interface{}{
		"prompt": prompt,
	}
	for k, v := range options {
		payload[k] = v
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ollama error %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var apiResp struct {
		Response  string `json:"response"`
		Text      string `json:"text"`
		Model     string `json:"model"`
		CreatedAt string `json:"created_at"`
		Done      bool   `json:"done"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("parse ollama response: %w", err)
	}

	text := apiResp.Response
	if text == "" {
		text = apiResp.Text
	}

	return &Result{
		Text:      text,
		Model:     apiResp.Model,
		CreatedAt: apiResp.CreatedAt,
		Done:      apiResp.Done,
	}, nil
}
