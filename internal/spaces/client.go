package spaces

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/saify-technologies/generate-agent/internal/branding"
)

// ErrNotFound is returned when a space id does not exist on the Hub.
var ErrNotFound = errors.New("space not found")

// Space is the subset of the Hub's space metadata the generator cares about.
type Space struct {
	ID           string    `json:"id"`
	SDK          string    `json:"sdk"`
	Likes        int       `json:"likes"`
	Private      bool      `json:"private"`
	LastModified time.Time `json:"lastModified"`
}

// IsGradio reports whether the space exposes a Gradio interface, which is
// what Tool.from_space requires.
func (s *Space) IsGradio() bool {
	return s.SDK == "gradio"
}

// URL returns the browsable space URL.
func (s *Space) URL() string {
	return branding.HubBaseURL() + "/spaces/" + s.ID
}

// Client talks to the Hugging Face Hub API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a Hub client. An empty baseURL uses the public Hub;
// the token is optional and only raises rate limits for public spaces.
func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = branding.HubBaseURL()
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Search queries the Hub for spaces matching the free-text query. Results
// are sorted by likes, most-liked first. limit is clamped to [1, 50].
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Space, error) {
	if query == "" {
		return nil, fmt.Errorf("search query is required")
	}
	if limit <= 0 {
		limit = 5
	}
	if limit > 50 {
		limit = 50
	}

	u := fmt.Sprintf("%s/api/spaces?search=%s&limit=%s",
		c.baseURL, url.QueryEscape(query), strconv.Itoa(limit))

	var results []Space
	if err := c.getJSON(ctx, u, &results); err != nil {
		return nil, fmt.Errorf("searching spaces: %w", err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Likes > results[j].Likes
	})

	return results, nil
}

// Get fetches metadata for a single space id ("owner/name"). Returns
// ErrNotFound when the space does not exist.
func (c *Client) Get(ctx context.Context, id string) (*Space, error) {
	if id == "" {
		return nil, fmt.Errorf("space id is required")
	}

	u := fmt.Sprintf("%s/api/spaces/%s", c.baseURL, id)

	var space Space
	if err := c.getJSON(ctx, u, &space); err != nil {
		return nil, fmt.Errorf("fetching space %s: %w", id, err)
	}
	return &space, nil
}

// Validate checks that a space exists, is public, and runs Gradio.
// It reports the findings rather than erroring on a non-Gradio space, so
// the caller can relay them to the model.
func (c *Client) Validate(ctx context.Context, id string) (exists, isGradio bool, err error) {
	space, err := c.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return !space.Private, space.IsGradio(), nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", branding.CLIName()+"/1.0")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling Hub API: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("hub API rate limit exceeded; set HF_TOKEN for higher limits")
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("hub API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parsing Hub response: %w", err)
	}
	return nil
}
