package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mercadito-store/storefront-api/internal/config"
)

// MaxPageSize is the largest page the document database serves per query.
// The service reads a single page; catalogs beyond this size are a stated
// limitation (the diagnostic path reports has_more).
const MaxPageSize = 100

const apiVersion = "2022-06-28"

// Client reads the external document database over HTTP.
type Client struct {
	baseURL    string
	token      string
	databaseID string
	httpClient *http.Client
}

// NewClient creates a catalog client. With an empty token the client is
// unconfigured and callers are expected to fall back to sample data.
func NewClient(cfg config.CatalogConfig) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		token:      cfg.Token,
		databaseID: cfg.DatabaseID,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Configured reports whether a source credential is present.
func (c *Client) Configured() bool {
	return c.token != ""
}

type queryRequest struct {
	PageSize int `json:"page_size"`
}

type queryResponse struct {
	Results    []Record `json:"results"`
	HasMore    bool     `json:"has_more"`
	NextCursor string   `json:"next_cursor,omitempty"`
}

// QueryPage fetches one page of raw records, up to pageSize entries.
// The second return value reports whether the collection has more pages.
func (c *Client) QueryPage(ctx context.Context, pageSize int) ([]Record, bool, error) {
	if pageSize <= 0 || pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	body, err := json.Marshal(queryRequest{PageSize: pageSize})
	if err != nil {
		return nil, false, fmt.Errorf("failed to encode query: %w", err)
	}

	url := fmt.Sprintf("%s/databases/%s/query", c.baseURL, c.databaseID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var page queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, false, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	return page.Results, page.HasMore, nil
}

// Schema retrieves the collection description (property names and types).
// Used by the diagnostic path to help operators match their database
// columns against the alias chains the normalizer knows.
func (c *Client) Schema(ctx context.Context) (*Database, error) {
	url := fmt.Sprintf("%s/databases/%s", c.baseURL, c.databaseID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var db Database
	if err := json.NewDecoder(resp.Body).Decode(&db); err != nil {
		return nil, fmt.Errorf("failed to decode database description: %w", err)
	}

	return &db, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", apiVersion)
}
