// Package search wraps the external search index used to discover candidate
// listings. Queries are scoped to the retail-domain allow-list and rate
// limited; recent responses are memoized so repeated scans of the same
// product do not re-hit the index.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/shelfscan/backend/internal/domain"
	"golang.org/x/time/rate"
)

const (
	memoSize = 256
	memoTTL  = 2 * time.Minute
)

// Client handles communication with the search index API
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	memo        *expirable.LRU[string, []domain.SearchHit]
	debug       bool
}

// NewClient creates a new search index client. requestsPerHour bounds the
// outbound call rate the same way the index's own quota does.
func NewClient(apiKey, baseURL string, requestsPerHour int) *Client {
	if requestsPerHour <= 0 {
		requestsPerHour = 1000
	}
	limiter := rate.NewLimiter(rate.Limit(float64(requestsPerHour)/3600.0), 10)

	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
		memo:        expirable.NewLRU[string, []domain.SearchHit](memoSize, nil, memoTTL),
	}
}

// SetDebug enables request/response logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// searchResponse mirrors the index's wire format
type searchResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content_snippet"`
	} `json:"results"`
}

// Search queries the index for listings on the allow-listed domains.
// A single attempt is made; index failures surface as ErrSearchUnavailable
// and the caller degrades to an empty result set rather than retrying.
func (c *Client) Search(ctx context.Context, query string, domains []string, limit int) ([]domain.SearchHit, error) {
	memoKey := query + "|" + strings.Join(domains, ",") + "|" + strconv.Itoa(limit)
	if hits, ok := c.memo.Get(memoKey); ok {
		if c.debug {
			log.Printf("[SEARCH] memo hit for query %q (%d results)", query, len(hits))
		}
		return hits, nil
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/search", c.baseURL)
	params := url.Values{}
	params.Add("q", query)
	params.Add("include_domains", strings.Join(domains, ","))
	params.Add("max_results", strconv.Itoa(limit))
	params.Add("api_key", c.apiKey)

	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "ShelfScan/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSearchUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %v", domain.ErrSearchUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		if c.debug {
			log.Printf("[SEARCH] index error - status: %d, body: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("%w: status %d", domain.ErrSearchUnavailable, resp.StatusCode)
	}

	var searchResp searchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	hits := make([]domain.SearchHit, 0, len(searchResp.Results))
	for _, r := range searchResp.Results {
		hits = append(hits, domain.SearchHit{Title: r.Title, URL: r.URL, Snippet: r.Content})
	}

	if c.debug {
		log.Printf("[SEARCH] %d hits for query %q", len(hits), query)
	}

	c.memo.Add(memoKey, hits)
	return hits, nil
}

// BuildQuery wraps the wanted product title in quotes and appends a
// purchase-intent phrase, the shape the index ranks shopping results best
// under.
func BuildQuery(productTitle string) string {
	return fmt.Sprintf("%q buy online price", strings.TrimSpace(productTitle))
}
