package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	bravesearch "github.com/cnosuke/go-brave-search"
)

var (
	htmlBlockRe = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)>`)
	htmlTagRe   = regexp.MustCompile(`<[^>]*>`)
)

// The model only needs a handful of results to expand an unfamiliar term
// in a requirement, so the search window stays small.
const (
	defaultWebResults = 5
	maxWebResults     = 10
	maxFetchBytes     = 64 * 1024
)

// Web expands unfamiliar requirement terms: a Brave-backed search plus a
// bounded page fetch for following up on a result.
type Web struct {
	brave      *bravesearch.Client
	httpClient *http.Client
}

func NewWeb(braveAPIKey string) *Web {
	client, _ := bravesearch.NewClient(braveAPIKey)
	return &Web{
		brave:      client,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (w *Web) Name() string { return "web" }
func (w *Web) Description() string {
	return "Search the web or fetch a page to clarify terms in the requirement"
}

func (w *Web) InputSchema() any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"action": map[string]any{
				"type":        "string",
				"enum":        []string{"search", "fetch"},
				"description": "Operation: search the web or fetch a URL",
			},
			"query": map[string]any{
				"type":        "string",
				"description": "Search query (required for search action)",
			},
			"url": map[string]any{
				"type":        "string",
				"description": "URL to fetch (required for fetch action)",
			},
			"count": map[string]any{
				"type":        "number",
				"description": "Number of search results to return (default 5, max 10)",
			},
		},
		"required":             []string{"action", "query", "url", "count"},
		"additionalProperties": false,
	}
}

func (w *Web) Execute(ctx context.Context, input string) (string, error) {
	var args struct {
		Action string `json:"action"`
		Query  string `json:"query"`
		URL    string `json:"url"`
		Count  int    `json:"count"`
	}
	if err := json.Unmarshal([]byte(input), &args); err != nil {
		return "", fmt.Errorf("parsing web input: %w", err)
	}

	switch args.Action {
	case "search":
		return w.search(ctx, args.Query, args.Count)
	case "fetch":
		return w.fetch(ctx, args.URL)
	default:
		return "", fmt.Errorf("unknown action: %s", args.Action)
	}
}

func (w *Web) search(ctx context.Context, query string, count int) (string, error) {
	if query == "" {
		return "", fmt.Errorf("query is required for search action")
	}
	if w.brave == nil {
		return "", fmt.Errorf("web search unavailable: brave_api_key is not configured")
	}
	if count <= 0 {
		count = defaultWebResults
	}
	if count > maxWebResults {
		count = maxWebResults
	}

	slog.Debug("web: searching", "query", query, "count", count)

	resp, err := w.brave.WebSearch(ctx, query, &bravesearch.WebSearchParams{
		Count: count,
	})
	if err != nil {
		return "", fmt.Errorf("brave search: %w", err)
	}

	results := resp.GetWebResults()
	if len(results) == 0 {
		return "No results found.", nil
	}

	var b strings.Builder
	for i, r := range results {
		fmt.Fprintf(&b, "[%d] %s\n    %s\n    %s\n", i+1, r.Title, r.URL, r.Description)
	}

	slog.Debug("web: search done", "query", query, "results", len(results))
	return truncate([]byte(b.String())), nil
}

func (w *Web) fetch(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", fmt.Errorf("url is required for fetch action")
	}

	slog.Debug("web: fetching", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "generate-agent/1.0")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching url: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("HTTP %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	return truncate([]byte(stripHTML(string(body)))), nil
}

// stripHTML reduces a page to readable text: script and style blocks go
// first so their contents don't leak through the tag strip, then tags,
// then whitespace runs.
func stripHTML(s string) string {
	s = htmlBlockRe.ReplaceAllString(s, " ")
	s = htmlTagRe.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}
