package normalize

import "strings"

// scentAliases maps variant spellings and common misspellings to one
// canonical scent/shade string. Unmapped input passes through unchanged.
var scentAliases = map[string]string{
	"fragrance free":  "fragrance-free",
	"fragrance-free":  "fragrance-free",
	"fragrancefree":   "fragrance-free",
	"frangrance free": "fragrance-free", // common listing typo
	"fragance free":   "fragrance-free",
	"unscented":       "fragrance-free",
	"no fragrance":    "fragrance-free",
	"scent free":      "fragrance-free",
	"scent-free":      "fragrance-free",
	"fresh scent":     "fresh",
	"original scent":  "original",
	"lavendar":        "lavender",
	"eucalyptis":      "eucalyptus",
	"citrus scent":    "citrus",
	"cocount":         "coconut",
	"vanila":          "vanilla",
}

// Scent lowercases and trims a scent/shade string and maps it through the
// alias table before it is used in equality comparisons.
func Scent(s string) string {
	key := strings.ToLower(strings.TrimSpace(s))
	if canonical, ok := scentAliases[key]; ok {
		return canonical
	}
	return key
}
