// Package identity decides whether a candidate page actually shows the
// wanted product. The brand gate is a hard precondition: no other signal is
// even evaluated until the wanted brand is visible on the page, and a GTIN
// match can never rescue a brand mismatch.
package identity

import (
	"log"
	"strings"

	"github.com/shelfscan/backend/internal/domain"
	"github.com/shelfscan/backend/internal/gtin"
	"github.com/shelfscan/backend/internal/normalize"
)

// Signal weights and bonuses
const (
	baseScore            = 3.0  // awarded once the brand gate passes
	domainBoost          = 0.5  // page hosted on the manufacturer's own storefront
	sizeBonus            = 1.0  // sizes agree within tolerance, same channel
	formBonus            = 0.5  // wanted form appears in visible text
	scentBonus           = 0.75 // wanted scent/shade matches
	gtinBonus            = 5.0  // both sides carry the same valid code; decisive
	defaultThreshold     = 4.0
	defaultSizeTolerance = 0.10
)

// stopWords are dropped from the wanted name before token overlap.
var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "from": true,
	"all": true, "new": true, "per": true, "pack": true, "count": true,
}

// Config holds tunables for the identity gate.
type Config struct {
	PassThreshold      float64
	SizeTolerance      float64
	EnableDebugLogging bool
}

// Scorer combines page signals, extracted identity, and the wanted identity
// into a pass/fail decision with a numeric confidence score.
type Scorer struct {
	passThreshold float64
	sizeTolerance float64
	debug         bool
}

// NewScorer creates a scorer with the given configuration, applying the
// default threshold (4.0) and size tolerance (10%) where unset.
func NewScorer(config Config) *Scorer {
	threshold := config.PassThreshold
	if threshold <= 0 {
		threshold = defaultThreshold
	}
	tolerance := config.SizeTolerance
	if tolerance <= 0 {
		tolerance = defaultSizeTolerance
	}
	return &Scorer{
		passThreshold: threshold,
		sizeTolerance: tolerance,
		debug:         config.EnableDebugLogging,
	}
}

// Score evaluates a candidate page against the wanted identity. Pure
// function over its inputs plus the static manufacturer-domain and
// scent-alias tables.
func (s *Scorer) Score(signals domain.PageSignals, extracted, wanted domain.ProductIdentity) domain.GateResult {
	visible := normalize.Brand(signals.Title + " " + signals.Heading)
	wantedBrand := normalize.Brand(wanted.Brand)
	extractedBrand := normalize.Brand(extracted.Brand)

	// Hard brand gate: evaluated before everything else. A failure here
	// zeroes the score regardless of any other signal, including GTIN.
	if wantedBrand == "" ||
		(!strings.Contains(extractedBrand, wantedBrand) && !strings.Contains(visible, wantedBrand)) {
		if s.debug {
			log.Printf("[SCORE] brand gate failed: wanted %q not in %q / %q", wantedBrand, extractedBrand, visible)
		}
		return domain.GateResult{Score: 0, Passed: false, Reason: domain.ReasonBrandMismatch}
	}

	breakdown := domain.SignalBreakdown{Base: baseScore}
	score := baseScore

	if isManufacturerHost(wantedBrand, signals.Host) {
		breakdown.DomainBoost = domainBoost
		score += domainBoost
	}

	overlap, matched := nameOverlap(wanted.Name, visible)
	breakdown.NameOverlap = overlap
	breakdown.MatchedTokens = matched
	score += overlap

	sizeMatched := false
	if wanted.Size != nil && extracted.Size != nil {
		sizeMatched = normalize.SizesMatch(wanted.Size, extracted.Size, s.sizeTolerance)
		if sizeMatched {
			breakdown.SizeMatch = true
			score += sizeBonus
		}
	}

	if wanted.Form != "" && strings.Contains(visible, strings.ToLower(wanted.Form)) {
		breakdown.FormMatch = true
		score += formBonus
	}

	scentMatched := false
	if wanted.ScentShade != "" {
		wantedScent := normalize.Scent(wanted.ScentShade)
		// Titles write canonical hyphenated scents with spaces as often
		// as not ("Fragrance Free"), so check both shapes.
		spaced := strings.ReplaceAll(wantedScent, "-", " ")
		if strings.Contains(visible, wantedScent) || strings.Contains(visible, spaced) ||
			(extracted.ScentShade != "" && normalize.Scent(extracted.ScentShade) == wantedScent) {
			scentMatched = true
			breakdown.ScentMatch = true
			score += scentBonus
		}
	}

	if wanted.GTIN != "" && extracted.GTIN != "" && gtin.Equal(wanted.GTIN, extracted.GTIN) {
		if gtin.Valid(wanted.GTIN) {
			breakdown.GTINMatch = true
			score += gtinBonus
		} else {
			// Same code on both sides with a bad checksum is corrupted
			// data, a hard conflict: all accumulated score is discarded.
			if s.debug {
				log.Printf("[SCORE] gtin conflict: %q equal on both sides but checksum invalid", wanted.GTIN)
			}
			return domain.GateResult{Score: 0, Passed: false, Reason: domain.ReasonGTINConflict, Breakdown: domain.SignalBreakdown{}}
		}
	}

	result := domain.GateResult{Score: score, Breakdown: breakdown}
	if score >= s.passThreshold {
		result.Passed = true
		result.Reason = domain.ReasonNone
	} else {
		result.Passed = false
		switch {
		case wanted.Size != nil && !sizeMatched:
			result.Reason = domain.ReasonSizeMismatch
		case wanted.ScentShade != "" && !scentMatched:
			result.Reason = domain.ReasonScentMismatch
		default:
			result.Reason = domain.ReasonLowScore
		}
	}

	if s.debug {
		log.Printf("[SCORE] %q vs %q: score=%.2f passed=%v reason=%s matched=%v",
			wanted.Name, signals.Title, result.Score, result.Passed, result.Reason, matched)
	}
	return result
}

// nameOverlap tokenizes the wanted name, drops short tokens and stop words,
// and returns the fraction of remaining tokens present in the visible text
// along with the matched tokens.
func nameOverlap(name, visible string) (float64, []string) {
	// Same normalization as the visible text so apostrophes and diacritics
	// in the wanted name cannot break token containment.
	words := strings.Fields(normalize.Brand(name))

	var tokens []string
	for _, w := range words {
		if len(w) < 3 || stopWords[w] {
			continue
		}
		tokens = append(tokens, w)
	}
	if len(tokens) == 0 {
		return 0, nil
	}

	var matched []string
	for _, tok := range tokens {
		if strings.Contains(visible, tok) {
			matched = append(matched, tok)
		}
	}
	return float64(len(matched)) / float64(len(tokens)), matched
}
