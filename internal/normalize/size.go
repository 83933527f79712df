// Package normalize canonicalizes the noisy strings that appear in product
// titles and listings: brand names, free-form size strings, and scent/shade
// variants. Sizes resolve into a value plus unit channel (volume in
// milliliters, weight in grams) so listings can be compared across unit
// systems.
package normalize

import (
	"regexp"
	"strconv"

	"github.com/shelfscan/backend/internal/domain"
)

// Conversion constants to the canonical channel units.
const (
	MlPerFlOz  = 29.5735 // fluid ounce -> milliliters
	GPerOz     = 28.3495 // net-weight ounce -> grams
	GPerLb     = 453.592 // pound -> grams
	GPerKg     = 1000.0
	MlPerLiter = 1000.0
)

// sizePattern maps one unit spelling to its channel and conversion factor.
type sizePattern struct {
	re      *regexp.Regexp
	channel domain.UnitChannel
	factor  float64
}

// sizePatterns is tried in order; first match wins. Fluid-volume forms come
// before bare-weight forms so "fl oz" is never misread as "oz".
var sizePatterns = []sizePattern{
	{regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(?:fl\.?\s*oz|fluid\s*ounces?)\b`), domain.UnitVolume, MlPerFlOz},
	{regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(?:ml|milliliters?|millilitres?)\b`), domain.UnitVolume, 1},
	{regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(?:l|liters?|litres?)\b`), domain.UnitVolume, MlPerLiter},
	{regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(?:kg|kilograms?|kilos?)\b`), domain.UnitWeight, GPerKg},
	{regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(?:lbs?|pounds?)\b`), domain.UnitWeight, GPerLb},
	{regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(?:oz|ounces?)\b`), domain.UnitWeight, GPerOz},
	{regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(?:g|grams?)\b`), domain.UnitWeight, 1},
}

// ParseSize parses a free-form size string ("3 fl oz", "88.72ml", "1.2 lb")
// into a canonical Size. Returns nil if no unit pattern matches.
func ParseSize(s string) *domain.Size {
	if s == "" {
		return nil
	}
	for _, p := range sizePatterns {
		m := p.re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		return &domain.Size{Value: value * p.factor, Channel: p.channel}
	}
	return nil
}

// SizesMatch reports whether two sizes agree within tolerance (a fraction of
// the wanted value, e.g. 0.10 for 10%). Sizes from different unit channels
// never match, regardless of numeric proximity.
func SizesMatch(wanted, got *domain.Size, tolerance float64) bool {
	if wanted == nil || got == nil {
		return false
	}
	if wanted.Channel != got.Channel {
		return false
	}
	diff := wanted.Value - got.Value
	if diff < 0 {
		diff = -diff
	}
	return diff <= wanted.Value*tolerance
}
