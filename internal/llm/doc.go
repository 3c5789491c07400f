// Package llm provides a lightweight HTTP client for a local Ollama
// server, used by the answer endpoint to turn ranked retrieval results
// into a natural-language response.
//
// The client probes the server before every generate call and returns
// ErrUnavailable when it is offline, so callers can degrade to plain
// retrieval results.
package llm
