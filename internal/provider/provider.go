// Package provider holds the fallible upstream capabilities the reply
// pipeline orchestrates: web-search services for evidence and LLM services
// for synthesis. Every client converts non-2xx statuses, timeouts and
// malformed payloads into plain errors; the pipeline owns the fallback order.
package provider

import "context"

type SearchResult struct {
	Title   string
	Snippet string
	URL     string
}

type SearchProvider interface {
	Name() string
	Search(ctx context.Context, query string) ([]SearchResult, error)
}

type SynthesisProvider interface {
	Name() string
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
