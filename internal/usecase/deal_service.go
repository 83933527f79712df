// Package usecase coordinates the deal pipeline: cache fast-path, candidate
// query, filtering, bounded concurrent price extraction, per-unit
// normalization, dedup, and ranking.
package usecase

import (
	"context"
	"log"
	"time"

	"github.com/shelfscan/backend/internal/candidate"
	"github.com/shelfscan/backend/internal/domain"
	"github.com/shelfscan/backend/internal/identity"
	"github.com/shelfscan/backend/internal/metrics"
	"github.com/shelfscan/backend/internal/normalize"
	"github.com/shelfscan/backend/internal/search"
	"golang.org/x/sync/errgroup"
)

// PriceResolver resolves a price for one candidate, tolerating failure.
type PriceResolver interface {
	Price(ctx context.Context, c domain.Candidate) *float64
}

// DealServiceConfig holds configuration for the deal service.
type DealServiceConfig struct {
	CacheTTL           time.Duration
	PassThreshold      float64
	MaxSearchResults   int
	FetchConcurrency   int
	PipelineDeadline   time.Duration
	AllowedDomains     []string
	EnableDebugLogging bool
}

// DealRequest is a validated deal/alternative lookup.
type DealRequest struct {
	ProductID    string
	ProductTitle string
	ProductURL   string
	NumericGrade *float64
	Grade        string
	Ingredients  string
}

// DealResult is the pipeline outcome. Zero deals with a message is a
// successful response, not an error.
type DealResult struct {
	Deals   []domain.Candidate
	Cached  bool
	Message string
}

// DealService runs the deal pipeline over its collaborators.
type DealService struct {
	cache        domain.DealCache
	searchClient domain.SearchClient
	resolver     PriceResolver
	filter       *candidate.Filter
	scorer       *identity.Scorer
	metrics      *metrics.Metrics

	cacheTTL         time.Duration
	maxSearchResults int
	fetchConcurrency int
	pipelineDeadline time.Duration
	allowedDomains   []string
	debug            bool
}

// NewDealService creates a deal service with dependencies.
func NewDealService(
	cache domain.DealCache,
	searchClient domain.SearchClient,
	resolver PriceResolver,
	m *metrics.Metrics,
	config DealServiceConfig,
) *DealService {
	cacheTTL := config.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = 6 * time.Hour
	}
	maxResults := config.MaxSearchResults
	if maxResults <= 0 {
		maxResults = 10
	}
	concurrency := config.FetchConcurrency
	if concurrency <= 0 {
		concurrency = 8
	}
	deadline := config.PipelineDeadline
	if deadline <= 0 {
		deadline = 25 * time.Second
	}

	return &DealService{
		cache:        cache,
		searchClient: searchClient,
		resolver:     resolver,
		filter:       candidate.NewFilter(config.AllowedDomains, config.EnableDebugLogging),
		scorer: identity.NewScorer(identity.Config{
			PassThreshold:      config.PassThreshold,
			EnableDebugLogging: config.EnableDebugLogging,
		}),
		metrics:          m,
		cacheTTL:         cacheTTL,
		maxSearchResults: maxResults,
		fetchConcurrency: concurrency,
		pipelineDeadline: deadline,
		allowedDomains:   config.AllowedDomains,
		debug:            config.EnableDebugLogging,
	}
}

// FindDeals resolves purchase options for a product.
// Flow: check cache -> search -> filter -> concurrent extraction -> rank ->
// cache write. Search failure degrades to an empty successful result.
func (s *DealService) FindDeals(ctx context.Context, request *DealRequest) (*DealResult, error) {
	if request == nil || request.ProductTitle == "" {
		return nil, domain.ErrInvalidRequest
	}

	if cached := s.fromCache(ctx, request.ProductID); cached != nil {
		s.metrics.IncCacheHit()
		return cached, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.pipelineDeadline)
	defer cancel()

	query := search.BuildQuery(request.ProductTitle)
	hits, err := s.searchClient.Search(ctx, query, s.allowedDomains, s.maxSearchResults)
	if err != nil {
		// Non-fatal: an index outage is zero candidates, not a failure.
		log.Printf("[DEALS] search failed for %q: %v", query, err)
		s.metrics.IncSearch("error")
		return &DealResult{Deals: []domain.Candidate{}, Message: "Search is temporarily unavailable; try again shortly."}, nil
	}
	s.metrics.IncSearch("ok")

	candidates := s.filter.Apply(request.ProductTitle, hits)
	if len(candidates) == 0 {
		return &DealResult{Deals: []domain.Candidate{}, Message: "No matching listings found at known retailers."}, nil
	}

	s.extractPrices(ctx, candidates)

	deduped := dedupCandidates(candidates, s.debug)
	rankCandidates(deduped)
	s.metrics.AddDealsRanked(len(deduped))

	anyPriced := false
	for _, c := range deduped {
		if c.Price != nil {
			anyPriced = true
			break
		}
	}
	if !anyPriced {
		// Partial information beats none: surface the listings as
		// check-website entries instead of an empty result.
		for i := range deduped {
			deduped[i].Availability = "check website"
		}
		return &DealResult{
			Deals:   deduped,
			Message: "Found listings but could not extract prices; check the retailer pages.",
		}, nil
	}

	s.writeCache(ctx, request.ProductID, query, deduped)

	return &DealResult{Deals: deduped}, nil
}

// extractPrices fans out over the candidates with a bounded worker group.
// Each worker writes only its own index, so no locking is needed on the
// shared slice; a failed or timed-out fetch leaves its candidate unpriced
// without disturbing siblings.
func (s *DealService) extractPrices(ctx context.Context, candidates []domain.Candidate) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fetchConcurrency)

	for i := range candidates {
		g.Go(func() error {
			c := &candidates[i]
			price := s.resolver.Price(gctx, *c)
			if price == nil {
				return nil
			}
			c.Price = price
			c.Currency = "USD"
			c.PricePerUnit = normalize.PricePerUnit(price, c.Size)
			return nil
		})
	}

	// Workers never return errors; Wait is purely a join.
	_ = g.Wait()
}

// ValidateAlternative scores a candidate alternative product against the
// wanted identity. Used on its own, outside price lookups.
func (s *DealService) ValidateAlternative(signals domain.PageSignals, extracted, wanted domain.ProductIdentity) domain.GateResult {
	return s.scorer.Score(signals, extracted, wanted)
}

// fromCache returns a cached result when unexpired deals exist.
func (s *DealService) fromCache(ctx context.Context, productID string) *DealResult {
	if productID == "" || s.cache == nil {
		return nil
	}
	deals, err := s.cache.Get(ctx, productID)
	if err != nil || len(deals) == 0 {
		return nil
	}

	candidates := make([]domain.Candidate, 0, len(deals))
	for _, d := range deals {
		price := d.Price
		c := domain.Candidate{
			Retailer:     d.Retailer,
			URL:          d.DealURL,
			RawTitle:     d.Title,
			DisplayName:  d.Title,
			Price:        &price,
			Currency:     d.Currency,
			Availability: d.Availability,
			Size:         normalize.ParseSize(d.Title),
		}
		c.PricePerUnit = normalize.PricePerUnit(c.Price, c.Size)
		candidates = append(candidates, c)
	}
	rankCandidates(candidates)

	if s.debug {
		log.Printf("[DEALS] cache hit for product %s (%d deals)", productID, len(candidates))
	}
	return &DealResult{Deals: candidates, Cached: true}
}

// writeCache upserts the priced candidates. Concurrent writers may race on
// the same key; last write wins, which is fine for price snapshots.
func (s *DealService) writeCache(ctx context.Context, productID, query string, candidates []domain.Candidate) {
	if productID == "" || s.cache == nil {
		return
	}

	// The pipeline deadline can expire between extraction and this point;
	// the write gets its own short budget so a completed resolution is not
	// silently lost.
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	now := time.Now()
	var deals []domain.CachedDeal
	for _, c := range candidates {
		if c.Price == nil {
			continue
		}
		availability := c.Availability
		if availability == "" {
			availability = "in_stock"
		}
		deals = append(deals, domain.CachedDeal{
			ProductID:    productID,
			Retailer:     c.Retailer,
			DealURL:      c.URL,
			Title:        c.RawTitle,
			Price:        *c.Price,
			Currency:     c.Currency,
			Availability: availability,
			SearchQuery:  query,
			ExpiresAt:    now.Add(s.cacheTTL),
		})
	}
	if len(deals) == 0 {
		return
	}
	if err := s.cache.Put(wctx, deals); err != nil {
		log.Printf("[DEALS] cache write failed for product %s: %v", productID, err)
	}
}
