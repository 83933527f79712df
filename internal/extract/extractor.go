// Package extract fetches candidate pages and pulls prices out of
// heterogeneous, sometimes adversarial markup. Extraction is tolerant of
// total failure: a candidate that cannot be fetched or parsed simply yields
// no price and never aborts its siblings.
package extract

import (
	"bytes"
	"context"
	"log"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/shelfscan/backend/internal/domain"
	"github.com/shelfscan/backend/internal/metrics"
)

// Extractor resolves a price for one candidate listing.
type Extractor struct {
	fetcher domain.PageFetcher
	metrics *metrics.Metrics
	debug   bool
}

// NewExtractor creates an extractor over the given fetcher. metrics may be
// nil.
func NewExtractor(fetcher domain.PageFetcher, m *metrics.Metrics, debug bool) *Extractor {
	return &Extractor{fetcher: fetcher, metrics: m, debug: debug}
}

// Price fetches the candidate's page and attempts extraction: retailer-
// specific adapters in priority order first, then the generic fallbacks.
// Returns nil on any failure rather than an error.
func (e *Extractor) Price(ctx context.Context, c domain.Candidate) *float64 {
	start := time.Now()
	body, err := e.fetcher.Fetch(ctx, c.URL)
	e.metrics.ObserveFetch(time.Since(start))
	if err != nil {
		e.metrics.IncFetch("error")
		if e.debug {
			log.Printf("[EXTRACT] fetch failed for %s: %v", c.URL, err)
		}
		return nil
	}
	e.metrics.IncFetch("ok")

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		if e.debug {
			log.Printf("[EXTRACT] parse failed for %s: %v", c.URL, err)
		}
		return nil
	}

	for _, adapter := range append(retailerAdapters[c.Retailer], genericAdapters...) {
		if price, ok := adapter.TryExtract(doc); ok {
			if e.debug {
				log.Printf("[EXTRACT] %s adapter found $%.2f on %s", adapter.Name(), price, c.URL)
			}
			e.metrics.IncPriceExtracted()
			return &price
		}
	}

	e.metrics.IncFetch("no_price")
	if e.debug {
		log.Printf("[EXTRACT] no price found on %s", c.URL)
	}
	return nil
}
