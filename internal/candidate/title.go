package candidate

import (
	"regexp"
	"strings"
)

// TitleIdentifiers are the signals derived from a listing title.
type TitleIdentifiers struct {
	Brand string // leading capitalized word run
	Shade string // shade/color token, if any
	Line  string // residual product-line string
}

// leadingBrandPattern captures the run of capitalized words a title opens
// with ("CeraVe", "La Roche-Posay", "Burt's Bees").
var leadingBrandPattern = regexp.MustCompile(`^((?:[A-Z][A-Za-z'&.\-]*\s+)*[A-Z][A-Za-z'&.\-]*)`)

// shadePatterns pull a shade/color token from comma clauses and quoted
// phrases, tried in order.
var shadePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bshade[:\s]+"?([a-z][a-z ]{2,30})"?`),
	regexp.MustCompile(`"([A-Za-z][A-Za-z ]{2,30})"`),
	regexp.MustCompile(`,\s*([A-Z][a-z]+(?:\s[A-Z][a-z]+)?)\s*(?:,|$)`),
}

// namedShades is a fixed vocabulary of shade words that identify a comma
// clause as a shade rather than a size or marketing phrase.
var namedShades = map[string]bool{
	"ivory": true, "beige": true, "nude": true, "rose": true, "coral": true,
	"crimson": true, "scarlet": true, "taupe": true, "sand": true,
	"honey": true, "caramel": true, "espresso": true, "porcelain": true,
	"alabaster": true, "mahogany": true, "onyx": true, "pearl": true,
	"blush": true, "mauve": true, "plum": true, "sienna": true, "cocoa": true,
	"fair": true, "tan": true, "deep": true, "natural": true,
}

// productTypeNouns are stripped from the residual product line.
var productTypeNouns = map[string]bool{
	"cleanser": true, "moisturizer": true, "lotion": true, "cream": true,
	"serum": true, "shampoo": true, "conditioner": true, "wash": true,
	"soap": true, "gel": true, "spray": true, "oil": true, "balm": true,
	"toner": true, "mask": true, "scrub": true, "deodorant": true,
	"sunscreen": true, "foundation": true, "concealer": true, "lipstick": true,
}

// marketingAdjectives are stripped from the residual product line.
var marketingAdjectives = map[string]bool{
	"new": true, "original": true, "premium": true, "advanced": true,
	"ultra": true, "daily": true, "gentle": true, "intensive": true,
	"professional": true, "classic": true, "extra": true, "improved": true,
	"bonus": true, "value": true,
}

var sizeClausePattern = regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*(?:fl\.?\s*oz|oz|ml|l|liters?|litres?|lbs?|pounds?|kg|g|grams?|ct|count|pack|pk)\b`)

// ExtractIdentifiers derives brand, shade, and residual product line from a
// listing title.
func ExtractIdentifiers(title string) TitleIdentifiers {
	title = strings.TrimSpace(title)
	var id TitleIdentifiers

	if m := leadingBrandPattern.FindStringSubmatch(title); m != nil {
		id.Brand = strings.TrimSpace(m[1])
	}

	id.Shade = extractShade(title)

	// Residual line: title minus brand, shade, sizes, type nouns, and
	// marketing adjectives.
	line := title
	if id.Brand != "" {
		line = strings.TrimSpace(strings.TrimPrefix(line, id.Brand))
	}
	if id.Shade != "" {
		line = strings.ReplaceAll(line, id.Shade, " ")
	}
	line = sizeClausePattern.ReplaceAllString(line, " ")

	var kept []string
	for _, w := range strings.Fields(line) {
		clean := strings.ToLower(strings.Trim(w, ",.;:()\"'"))
		if clean == "" || productTypeNouns[clean] || marketingAdjectives[clean] {
			continue
		}
		kept = append(kept, strings.Trim(w, ",.;:()\"'"))
	}
	id.Line = strings.Join(kept, " ")

	return id
}

// extractShade tries the shade patterns in order, accepting a comma-clause
// match only when it contains a word from the shade vocabulary.
func extractShade(title string) string {
	for i, re := range shadePatterns {
		m := re.FindStringSubmatch(title)
		if m == nil {
			continue
		}
		shade := strings.TrimSpace(m[1])
		// The bare comma-clause pattern is too loose on its own; require
		// vocabulary confirmation for it.
		if i == len(shadePatterns)-1 && !containsShadeWord(shade) {
			continue
		}
		return shade
	}
	return ""
}

func containsShadeWord(s string) bool {
	for _, w := range strings.Fields(strings.ToLower(s)) {
		if namedShades[w] {
			return true
		}
	}
	return false
}
