package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"
)

// Adapter tries to pull a price out of parsed page markup. Adapters are
// tried in a fixed retailer-specific-then-generic order, which keeps adding
// a new retailer additive rather than invasive.
type Adapter interface {
	Name() string
	TryExtract(doc *goquery.Document) (float64, bool)
}

// selectorAdapter walks a CSS selector chain in priority order and parses
// the first text or content attribute that yields a price.
type selectorAdapter struct {
	name      string
	selectors []string
}

func (a selectorAdapter) Name() string { return a.name }

func (a selectorAdapter) TryExtract(doc *goquery.Document) (float64, bool) {
	for _, sel := range a.selectors {
		var price float64
		var found bool
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := s.Text()
			if strings.TrimSpace(text) == "" {
				if content, ok := s.Attr("content"); ok {
					text = content
				} else if dp, ok := s.Attr("data-price"); ok {
					text = dp
				}
			}
			if v, ok := ParsePrice(text); ok {
				price, found = v, true
				return false
			}
			return true
		})
		if found {
			return price, true
		}
	}
	return 0, false
}

// jsonldAdapter reads structured Product data from application/ld+json
// script blocks; many retailers keep the canonical price there even when
// the visible markup is obfuscated.
type jsonldAdapter struct{}

func (jsonldAdapter) Name() string { return "jsonld" }

// offerPricePaths are the JSON-LD locations a price shows up at.
var offerPricePaths = []string{
	"offers.price",
	"offers.lowPrice",
	"offers.0.price",
	`\@graph.#(\@type=="Product").offers.price`,
}

func (jsonldAdapter) TryExtract(doc *goquery.Document) (float64, bool) {
	var price float64
	var found bool
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		raw := s.Text()
		if !gjson.Valid(raw) {
			return true
		}
		for _, path := range offerPricePaths {
			if v := gjson.Get(raw, path); v.Exists() {
				if p, ok := ParsePrice(v.String()); ok {
					price, found = p, true
					return false
				}
			}
		}
		return true
	})
	return price, found
}

// retailerAdapters are known markup shapes per canonical retailer name.
var retailerAdapters = map[string][]Adapter{
	"target": {
		selectorAdapter{"target", []string{
			`[data-test="product-price"]`,
			`span[data-test="current-price"]`,
		}},
	},
	"walmart": {
		selectorAdapter{"walmart", []string{
			`span[itemprop="price"]`,
			`[data-automation-id="product-price"] .inline-flex span`,
		}},
	},
	"amazon": {
		selectorAdapter{"amazon", []string{
			`#corePrice_feature_div span.a-offscreen`,
			`span.a-price span.a-offscreen`,
			`#priceblock_ourprice`,
		}},
	},
	"ulta": {
		selectorAdapter{"ulta", []string{
			`.ProductPricing span`,
			`span.Text-ds--title-6`,
		}},
	},
	"cvs": {
		selectorAdapter{"cvs", []string{
			`[data-testid="product-price"]`,
			`.css-1d3w5wq`,
		}},
	},
}

// genericAdapters are the fallback chain for unrecognized sources.
var genericAdapters = []Adapter{
	jsonldAdapter{},
	selectorAdapter{"generic", []string{
		`meta[itemprop="price"]`,
		`meta[property="product:price:amount"]`,
		`[itemprop="price"]`,
		`.product-price`,
		`.price-current`,
		`.sale-price`,
		`.price`,
		`[data-price]`,
	}},
}
