// Package search wraps the Tavily web search API and condenses its results
// into the short summaries fed to recommendation prompts.
package search

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"dinner_planner/src/logger"
	"dinner_planner/src/model"

	"github.com/bytedance/sonic"
)

const searchPath = "/search"

type tavilyRequest struct {
	APIKey        string `json:"api_key"`
	Query         string `json:"query"`
	SearchDepth   string `json:"search_depth"`
	MaxResults    int    `json:"max_results"`
	IncludeAnswer bool   `json:"include_answer"`
	IncludeImages bool   `json:"include_images"`
}

// Client calls the Tavily search endpoint.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient builds a client. A missing API key is reported once here;
// Search then fails fast with model.ErrSearchNotConfigured.
func NewClient(cfg model.SearchConfig) *Client {
	if cfg.APIKey == "" {
		logger.Warn().Msg("Tavily API key not found, web search is disabled. Set TAVILY_API_KEY to enable it")
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// Search runs one basic-depth query with a synthesized answer.
func (c *Client) Search(ctx context.Context, query string, maxResults int) (*model.SearchResponse, error) {
	if !c.Enabled() {
		return nil, model.ErrSearchNotConfigured
	}

	body, err := sonic.Marshal(tavilyRequest{
		APIKey:        c.apiKey,
		Query:         query,
		SearchDepth:   "basic",
		MaxResults:    maxResults,
		IncludeAnswer: true,
		IncludeImages: false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+searchPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrSearchFailed, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", model.ErrSearchFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: tavily returned %d", model.ErrSearchFailed, resp.StatusCode)
	}

	var out model.SearchResponse
	if err := sonic.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", model.ErrSearchFailed, err)
	}
	return &out, nil
}
