package domain

import "time"

// UnitChannel classifies a physical quantity as volume or weight.
// Sizes are only ever compared within the same channel.
type UnitChannel string

const (
	UnitVolume UnitChannel = "volume" // canonical unit: milliliters
	UnitWeight UnitChannel = "weight" // canonical unit: grams
)

// Size is a normalized quantity: milliliters for volume, grams for weight.
type Size struct {
	Value   float64     `json:"value"`
	Channel UnitChannel `json:"channel"`
}

// ProductIdentity describes the product the user actually wants, as resolved
// from a scan or an upstream lookup.
type ProductIdentity struct {
	Brand      string `json:"brand"`
	Name       string `json:"name"`
	Size       *Size  `json:"size,omitempty"`
	Form       string `json:"form,omitempty"`       // e.g. "serum", "cleanser"
	ScentShade string `json:"scentShade,omitempty"` // normalized scent or shade
	GTIN       string `json:"gtin,omitempty"`
	SKU        string `json:"sku,omitempty"`
	Region     string `json:"region,omitempty"`
}

// PageSignals is read-only evidence captured from an external product page.
// Never mutated after capture.
type PageSignals struct {
	Title       string   `json:"title"`
	Heading     string   `json:"heading"`
	Breadcrumbs []string `json:"breadcrumbs,omitempty"`
	Host        string   `json:"host"`
}

// GateReason explains why the identity gate failed.
type GateReason string

const (
	ReasonNone          GateReason = "none"
	ReasonBrandMismatch GateReason = "brand_mismatch"
	ReasonLowScore      GateReason = "low_score"
	ReasonGTINConflict  GateReason = "gtin_conflict"
	ReasonSizeMismatch  GateReason = "size_mismatch"
	ReasonScentMismatch GateReason = "scent_mismatch"
)

// SignalBreakdown records each sub-signal's contribution to a gate score.
type SignalBreakdown struct {
	Base          float64  `json:"base"`
	DomainBoost   float64  `json:"domainBoost"`
	NameOverlap   float64  `json:"nameOverlap"`
	SizeMatch     bool     `json:"sizeMatch"`
	FormMatch     bool     `json:"formMatch"`
	ScentMatch    bool     `json:"scentMatch"`
	GTINMatch     bool     `json:"gtinMatch"`
	MatchedTokens []string `json:"matchedTokens,omitempty"`
}

// GateResult is the outcome of scoring a candidate page against a wanted
// identity. Reason is populated only when Passed is false.
type GateResult struct {
	Score     float64         `json:"score"`
	Passed    bool            `json:"passed"`
	Reason    GateReason      `json:"reason,omitempty"`
	Breakdown SignalBreakdown `json:"breakdown"`
}

// SearchHit is a raw result from the external search index.
type SearchHit struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"content_snippet,omitempty"`
}

// Candidate is one potential purchase option, produced per request.
// Transient: not persisted unless written to the deal cache.
type Candidate struct {
	Retailer     string   `json:"retailer"`
	URL          string   `json:"url"`
	RawTitle     string   `json:"rawTitle"`
	Price        *float64 `json:"price,omitempty"`
	Currency     string   `json:"currency,omitempty"`
	Size         *Size    `json:"size,omitempty"`
	ProductName  string   `json:"productName,omitempty"`
	DisplayName  string   `json:"displayName,omitempty"`
	PricePerUnit *float64 `json:"pricePerUnit,omitempty"`
	Availability string   `json:"availability,omitempty"`
}

// CachedDeal is a persisted price snapshot for a resolved product.
// Identity key is (ProductID, Retailer, DealURL); writes are upserts.
type CachedDeal struct {
	ProductID    string    `json:"product_id"`
	Retailer     string    `json:"retailer"`
	DealURL      string    `json:"deal_url"`
	Title        string    `json:"title"`
	Price        float64   `json:"price"`
	Currency     string    `json:"currency"`
	Availability string    `json:"availability"`
	SearchQuery  string    `json:"search_query,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Expired reports whether the cached row is past its TTL at the given time.
func (d CachedDeal) Expired(now time.Time) bool {
	return !d.ExpiresAt.After(now)
}
