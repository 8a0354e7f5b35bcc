// Package retrieval queries the external similarity index for reference
// documents near a seed question's text.
package retrieval

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrCollectionNotFound is returned when the named collection does not
// exist in the similarity index.
var ErrCollectionNotFound = errors.New("similarity collection not found")

// Retriever queries a named similarity collection for the documents
// most similar to a seed text.
type Retriever interface {
	Query(ctx context.Context, collection, seedText string, n int) ([]string, error)
}

// Client talks to a Chroma-compatible similarity index over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a retrieval client for the index at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type queryRequest struct {
	QueryTexts []string `json:"query_texts"`
	NResults   int      `json:"n_results"`
	Include    []string `json:"include"`
}

type queryResponse struct {
	Documents [][]string `json:"documents"`
}

// Query returns the n most similar documents to seedText from the named
// collection, ranked by similarity.
func (c *Client) Query(ctx context.Context, collection, seedText string, n int) ([]string, error) {
	body, err := json.Marshal(queryRequest{
		QueryTexts: []string{seedText},
		NResults:   n,
		Include:    []string{"documents"},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	endpoint := fmt.Sprintf("%s/api/v1/collections/%s/query", c.baseURL, url.PathEscape(collection))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create query request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query collection %q: %w", collection, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %q", ErrCollectionNotFound, collection)
	}
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("query collection %q: status %d: %s", collection, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var qr queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&qr); err != nil {
		return nil, fmt.Errorf("decode query response: %w", err)
	}
	if len(qr.Documents) == 0 {
		return nil, nil
	}
	return qr.Documents[0], nil
}
