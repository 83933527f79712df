// Package candidate turns raw search hits into vetted purchase candidates:
// it classifies URLs as direct product pages vs category/search pages and
// matches extracted title identifiers against the originating product.
package candidate

import (
	"log"
	"net/url"
	"regexp"
	"strings"

	"github.com/shelfscan/backend/internal/domain"
	"github.com/shelfscan/backend/internal/normalize"
	"github.com/weppos/publicsuffix-go/publicsuffix"
)

// Classification is the URL triage outcome.
type Classification int

const (
	// Direct is a known item-detail URL shape.
	Direct Classification = iota
	// Rejected is a category, search, or browse page.
	Rejected
	// Provisional is anything else: accepted under uncertainty, since
	// downstream price extraction still gates on having a price.
	Provisional
)

// retailerProductPaths are known item-detail path shapes per registrable
// domain.
var retailerProductPaths = map[string][]*regexp.Regexp{
	"target.com":   {regexp.MustCompile(`/p/`)},
	"walmart.com":  {regexp.MustCompile(`/ip/`)},
	"amazon.com":   {regexp.MustCompile(`/dp/`), regexp.MustCompile(`/gp/product/`)},
	"ulta.com":     {regexp.MustCompile(`/p/`)},
	"cvs.com":      {regexp.MustCompile(`/shop/.+-prodid-`), regexp.MustCompile(`-p\d+$`)},
	"walgreens.com": {regexp.MustCompile(`/store/c/.+/ID=`)},
	"sephora.com":  {regexp.MustCompile(`/product/`)},
	"costco.com":   {regexp.MustCompile(`\.product\.`)},
}

// genericProductPath recognizes item-detail shapes on unlisted retailers.
var genericProductPath = regexp.MustCompile(`/(?:product|products|item|items|p|dp)/`)

// categoryPaths mark category/search/browse pages, rejected outright.
var categoryPaths = []*regexp.Regexp{
	regexp.MustCompile(`/(?:search|browse|category|categories|catalog)(?:/|$|\?)`),
	regexp.MustCompile(`^/(?:c|b|s)(?:/|\?)`),
	regexp.MustCompile(`[?&](?:searchTerm|keyword|query|q)=`),
	regexp.MustCompile(`/collections/[^/]+/?$`),
	regexp.MustCompile(`/shop/all\b`),
}

// Filter vets search hits for one request.
type Filter struct {
	allowedDomains map[string]bool
	debug          bool
}

// NewFilter creates a filter scoped to the retail-domain allow-list.
func NewFilter(allowedDomains []string, debug bool) *Filter {
	allowed := make(map[string]bool, len(allowedDomains))
	for _, d := range allowedDomains {
		allowed[strings.ToLower(d)] = true
	}
	return &Filter{allowedDomains: allowed, debug: debug}
}

// Classify triages a URL by path shape. Unknown shapes are provisionally
// accepted: rejecting too aggressively loses real matches more often than a
// bad accept costs.
func (f *Filter) Classify(rawURL string) Classification {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Rejected
	}
	pathAndQuery := u.Path
	if u.RawQuery != "" {
		pathAndQuery += "?" + u.RawQuery
	}

	for _, re := range categoryPaths {
		if re.MatchString(pathAndQuery) {
			return Rejected
		}
	}

	regDomain := registrableDomain(u.Hostname())
	for _, re := range retailerProductPaths[regDomain] {
		if re.MatchString(u.Path) {
			return Direct
		}
	}
	if genericProductPath.MatchString(u.Path) {
		return Direct
	}

	return Provisional
}

// Apply filters raw hits against the originating product title and converts
// survivors into candidates with derived fields populated.
func (f *Filter) Apply(originTitle string, hits []domain.SearchHit) []domain.Candidate {
	origin := ExtractIdentifiers(originTitle)

	var out []domain.Candidate
	for _, hit := range hits {
		u, err := url.Parse(hit.URL)
		if err != nil || u.Hostname() == "" {
			continue
		}

		regDomain := registrableDomain(u.Hostname())
		if len(f.allowedDomains) > 0 && !f.allowedDomains[regDomain] {
			if f.debug {
				log.Printf("[FILTER] dropping %s: domain %q not allow-listed", hit.URL, regDomain)
			}
			continue
		}

		if f.Classify(hit.URL) == Rejected {
			if f.debug {
				log.Printf("[FILTER] dropping %s: category/search page", hit.URL)
			}
			continue
		}

		if !f.matchesOrigin(origin, hit.Title) {
			if f.debug {
				log.Printf("[FILTER] dropping %q: identifiers do not match origin %q", hit.Title, originTitle)
			}
			continue
		}

		ids := ExtractIdentifiers(hit.Title)
		productName := strings.TrimSpace(ids.Brand + " " + ids.Line)

		out = append(out, domain.Candidate{
			Retailer:    retailerName(regDomain),
			URL:         hit.URL,
			RawTitle:    hit.Title,
			DisplayName: hit.Title,
			ProductName: productName,
			Size:        normalize.ParseSize(hit.Title),
		})
	}
	return out
}

// matchesOrigin requires the origin brand substring plus at least half of
// the origin product-line tokens (length >= 3) in the candidate title. A
// shade mismatch is logged as a soft warning only; retailers format shade
// strings too inconsistently to gate on.
func (f *Filter) matchesOrigin(origin TitleIdentifiers, candidateTitle string) bool {
	titleNorm := normalize.Brand(candidateTitle)

	if origin.Brand != "" && !strings.Contains(titleNorm, normalize.Brand(origin.Brand)) {
		return false
	}

	lineTokens := identifierTokens(origin.Line)
	if len(lineTokens) > 0 {
		matched := 0
		for _, tok := range lineTokens {
			if strings.Contains(titleNorm, tok) {
				matched++
			}
		}
		if float64(matched) < float64(len(lineTokens))*0.5 {
			return false
		}
	}

	if origin.Shade != "" {
		cand := ExtractIdentifiers(candidateTitle)
		if cand.Shade != "" && normalize.Scent(cand.Shade) != normalize.Scent(origin.Shade) {
			log.Printf("[FILTER] shade differs (%q vs %q) for %q - keeping candidate", cand.Shade, origin.Shade, candidateTitle)
		}
	}

	return true
}

// identifierTokens splits a product-line string into comparison tokens,
// dropping anything shorter than 3 characters.
func identifierTokens(line string) []string {
	var tokens []string
	for _, tok := range strings.Fields(normalize.Brand(line)) {
		if len(tok) >= 3 {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// registrableDomain reduces a hostname to its registrable domain
// (www.target.com -> target.com). Falls back to the raw host when the
// public-suffix lookup fails.
func registrableDomain(host string) string {
	host = strings.ToLower(host)
	d, err := publicsuffix.Domain(host)
	if err != nil || d == "" {
		return host
	}
	return d
}

// retailerName canonicalizes a registrable domain into a retailer name
// (target.com -> target).
func retailerName(regDomain string) string {
	if i := strings.Index(regDomain, "."); i > 0 {
		return regDomain[:i]
	}
	return regDomain
}
