package domain

import "context"

// DealCache defines the interface for the TTL-bounded deal store.
// Reads return only unexpired rows, cheapest first. Writes are upserts
// keyed on (product_id, retailer, deal_url); last write wins.
type DealCache interface {
	Get(ctx context.Context, productID string) ([]CachedDeal, error)
	Put(ctx context.Context, deals []CachedDeal) error
	Close() error
}

// SearchClient defines the interface for the external search index.
// The query is scoped to the given domain allow-list and capped at limit
// results.
type SearchClient interface {
	Search(ctx context.Context, query string, domains []string, limit int) ([]SearchHit, error)
}

// PageFetcher retrieves raw markup for a single candidate URL.
// Implementations carry their own per-fetch timeout.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}
