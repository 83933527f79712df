package identity

import "strings"

// manufacturerDomains maps a normalized brand to the hosts the manufacturer
// itself sells on. A candidate page on one of these hosts earns the domain
// boost for that brand.
var manufacturerDomains = map[string][]string{
	"cerave":             {"cerave.com"},
	"cetaphil":           {"cetaphil.com"},
	"neutrogena":         {"neutrogena.com"},
	"aveeno":             {"aveeno.com"},
	"olay":               {"olay.com"},
	"dove":               {"dove.com"},
	"eucerin":            {"eucerin.com", "eucerinus.com"},
	"vanicream":          {"vanicream.com"},
	"la roche-posay":     {"laroche-posay.us", "laroche-posay.com"},
	"the ordinary":       {"theordinary.com", "deciem.com"},
	"paulas choice":      {"paulaschoice.com"},
	"first aid beauty":   {"firstaidbeauty.com"},
	"burts bees":         {"burtsbees.com"},
	"dr teals":           {"drteals.com"},
	"loreal":             {"lorealparisusa.com", "loreal.com"},
	"garnier":            {"garnierusa.com"},
	"native":             {"nativecos.com"},
	"tide":               {"tide.com"},
	"seventh generation": {"seventhgeneration.com"},
}

// isManufacturerHost reports whether host belongs to the given normalized
// brand's own storefront, including subdomains (www.cerave.com).
func isManufacturerHost(normalizedBrand, host string) bool {
	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" {
		return false
	}
	for _, d := range manufacturerDomains[normalizedBrand] {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}
