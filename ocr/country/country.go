package country

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// KeyKind selects which attribute of a country Lookup matches against.
type KeyKind int

const (
	Alpha3 KeyKind = iota
	Alpha2
	Name
)

// String returns the key kind name.
func (k KeyKind) String() string {
	switch k {
	case Alpha3:
		return "alpha3"
	case Alpha2:
		return "alpha2"
	case Name:
		return "name"
	default:
		return "unknown"
	}
}

// Record is the canonical country structure of the identity schema.
type Record struct {
	Name       string   `json:"name"`
	Alpha2     string   `json:"alpha2"`
	Alpha3     string   `json:"alpha3"`
	Confidence *float64 `json:"confidence"`
}

// Default returns the empty placeholder used when a country cannot be resolved.
func Default() Record {
	return Record{}
}

// IsDefault reports whether r is the empty placeholder.
func (r Record) IsDefault() bool {
	return r.Name == "" && r.Alpha2 == "" && r.Alpha3 == ""
}

// WithConfidence returns a copy of r carrying c.
func (r Record) WithConfidence(c *float64) Record {
	if c != nil {
		v := *c
		r.Confidence = &v
	} else {
		r.Confidence = nil
	}
	return r
}

// nameAliases maps common spellings to the ISO short name.
var nameAliases = map[string]string{
	"united states of america": "United States",
	"usa":                      "United States",
	"uk":                       "United Kingdom",
	"great britain":            "United Kingdom",
	"russia":                   "Russian Federation",
	"south korea":              "Korea, Republic of",
	"north korea":              "Korea, Democratic People's Republic of",
	"vietnam":                  "Viet Nam",
	"turkey":                   "Türkiye",
	"czech republic":           "Czechia",
	"ivory coast":              "Côte d'Ivoire",
	"cape verde":               "Cabo Verde",
	"swaziland":                "Eswatini",
	"laos":                     "Lao People's Democratic Republic",
	"syria":                    "Syrian Arab Republic",
	"tanzania":                 "Tanzania, United Republic of",
	"palestine":                "Palestine, State of",
	"vatican":                  "Holy See",
	"macedonia":                "North Macedonia",
}

type index struct {
	byAlpha2 map[string]int
	byAlpha3 map[string]int
	byName   map[string]int
}

var idx = buildIndex()

func buildIndex() index {
	ix := index{
		byAlpha2: make(map[string]int, len(isoTable)),
		byAlpha3: make(map[string]int, len(isoTable)+len(extraAlpha3)),
		byName:   make(map[string]int, len(isoTable)+len(nameAliases)),
	}
	for i, r := range isoTable {
		ix.byAlpha2[r.Alpha2] = i
		ix.byAlpha3[r.Alpha3] = i
		ix.byName[normalizeName(r.Name)] = i
	}
	for code, target := range extraAlpha3 {
		if i, ok := ix.byAlpha3[target]; ok {
			ix.byAlpha3[code] = i
		}
	}
	for alias, target := range nameAliases {
		if i, ok := ix.byName[normalizeName(target)]; ok {
			ix.byName[normalizeName(alias)] = i
		}
	}
	return ix
}

// Lookup resolves value against the reference table. Codes are matched
// case-insensitively, names also ignore diacritics and surrounding space.
// A miss returns (nil, false); it is never an error.
func Lookup(kind KeyKind, value string) (*Record, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, false
	}

	var (
		i  int
		ok bool
	)
	switch kind {
	case Alpha3:
		i, ok = idx.byAlpha3[strings.ToUpper(strings.TrimRight(value, "<"))]
	case Alpha2:
		i, ok = idx.byAlpha2[strings.ToUpper(value)]
	case Name:
		i, ok = idx.byName[normalizeName(value)]
	}
	if !ok {
		return nil, false
	}

	r := isoTable[i]
	return &r, true
}

// All returns a copy of the reference table.
func All() []Record {
	out := make([]Record, len(isoTable))
	copy(out, isoTable)
	return out
}

func normalizeName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = cases.Fold().String(folded)
	return strings.Join(strings.Fields(folded), " ")
}
