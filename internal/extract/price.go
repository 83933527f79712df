package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// pricePatterns are tried in priority order; first match wins. Earlier
// patterns intentionally shadow later, looser ones.
var pricePatterns = []*regexp.Regexp{
	// $1,234.56 - dollar sign, thousands separators, cents
	regexp.MustCompile(`\$\s*(\d{1,3}(?:,\d{3})*\.\d{2})`),
	// 1234.56 - bare decimal amount
	regexp.MustCompile(`(\d+\.\d{1,2})`),
	// 1,234 - thousands-separated integer
	regexp.MustCompile(`(\d{1,3}(?:,\d{3})+)`),
	// bare integer, bounded to a plausible price range as a last resort
	regexp.MustCompile(`(\d+)`),
}

const (
	minPlausiblePrice = 1
	maxPlausiblePrice = 10000
)

// ParsePrice pulls a price value out of arbitrary text using the ordered
// pattern set. The bare-integer fallback only accepts values in a plausible
// price range.
func ParsePrice(text string) (float64, bool) {
	for i, re := range pricePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		raw := strings.ReplaceAll(m[1], ",", "")
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		if i == len(pricePatterns)-1 && (value < minPlausiblePrice || value > maxPlausiblePrice) {
			continue
		}
		if value <= 0 {
			continue
		}
		return value, true
	}
	return 0, false
}
