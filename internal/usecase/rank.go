package usecase

import (
	"log"
	"math"
	"sort"

	"github.com/shelfscan/backend/internal/domain"
)

type dedupKey struct {
	retailer string
	url      string
}

// dedupCandidates merges candidates keyed by (retailer, URL) exactly.
// First occurrence wins; later duplicates are dropped. The map is request
// scoped, never shared across requests.
func dedupCandidates(candidates []domain.Candidate, debug bool) []domain.Candidate {
	seen := make(map[dedupKey]bool, len(candidates))
	out := make([]domain.Candidate, 0, len(candidates))
	for _, c := range candidates {
		key := dedupKey{retailer: c.Retailer, url: c.URL}
		if seen[key] {
			if debug {
				log.Printf("[RANK] dropping duplicate %s %s", c.Retailer, c.URL)
			}
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}

// rankCandidates orders candidates best-value first, as a total order:
// per-unit-priced items ascending by that value, then any item with a
// per-unit price before any without, then raw price ascending with a
// missing raw price sorting last.
func rankCandidates(candidates []domain.Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]

		switch {
		case a.PricePerUnit != nil && b.PricePerUnit != nil:
			return *a.PricePerUnit < *b.PricePerUnit
		case a.PricePerUnit != nil:
			return true
		case b.PricePerUnit != nil:
			return false
		}

		return rawPrice(a) < rawPrice(b)
	})
}

func rawPrice(c domain.Candidate) float64 {
	if c.Price == nil {
		return math.Inf(1)
	}
	return *c.Price
}
