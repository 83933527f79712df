package normalize

import (
	"regexp"
	"strings"
)

var multiSpaceRegex = regexp.MustCompile(`\s+`)

// diacriticReplacer folds the accented characters that show up in brand
// names (L'Oréal, Clé de Peau, Lancôme) to their ASCII forms.
var diacriticReplacer = strings.NewReplacer(
	"á", "a", "à", "a", "â", "a", "ä", "a", "ã", "a", "å", "a",
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"í", "i", "ì", "i", "î", "i", "ï", "i",
	"ó", "o", "ò", "o", "ô", "o", "ö", "o", "õ", "o",
	"ú", "u", "ù", "u", "û", "u", "ü", "u",
	"ñ", "n", "ç", "c",
)

// brandVariants collapses known spelling variants, mostly honorific
// prefixes, so "Doctor Teals" and "Dr. Teal's" normalize identically.
var brandVariants = []struct{ from, to string }{
	{"doctor ", "dr "},
	{"dr. ", "dr "},
	{"saint ", "st "},
	{"st. ", "st "},
	{"mount ", "mt "},
	{"mt. ", "mt "},
	{" & ", " and "},
	{"&", " and "},
}

// Brand canonicalizes a brand string: lowercases, strips apostrophes and
// diacritics, collapses known variants and whitespace.
func Brand(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = diacriticReplacer.Replace(result)
	result = strings.ReplaceAll(result, "'", "")
	result = strings.ReplaceAll(result, "’", "")
	for _, v := range brandVariants {
		result = strings.ReplaceAll(result, v.from, v.to)
	}
	result = multiSpaceRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}
