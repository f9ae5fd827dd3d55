// Package names holds the name handling shared by clearance mapping and photo
// lookup: a best-effort splitter for free-text applicant names, casing helpers,
// and diacritic stripping for file name matching.
package names

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Parts is a structured person name. Fields may be empty; they are never the
// literal "undefined" or "null".
type Parts struct {
	First  string
	Middle string
	Last   string
	Suffix string
}

// Generational suffixes recognized at the end of a full name.
var suffixes = map[string]struct{}{
	"JR": {}, "SR": {}, "II": {}, "III": {}, "IV": {}, "V": {},
}

// Filipino/Spanish surname particles that bind to the token after them, so
// "Dela Cruz" counts as one surname unit rather than a middle name plus a
// surname.
var particles = map[string]struct{}{
	"DE": {}, "DEL": {}, "DELA": {}, "DELAS": {}, "DELOS": {},
	"SAN": {}, "SANTA": {}, "STA": {}, "STO": {},
}

// Split applies the whitespace heuristic to a free-text name: two units map to
// first/last, three to first/middle/last, four or more to first/middle and the
// rest joined as the last name, peeling a trailing generational suffix first.
// Surname particles merge with the following token before counting.
//
// The heuristic is inherently ambiguous for multiple middle names and compound
// surnames outside the particle set; callers that have a canonical resident
// record should prefer it over this.
func Split(full string) Parts {
	tokens := strings.Fields(strings.TrimSpace(full))
	if len(tokens) == 0 {
		return Parts{}
	}

	var p Parts
	if len(tokens) >= 4 {
		if _, ok := suffixes[canonSuffix(tokens[len(tokens)-1])]; ok {
			p.Suffix = tokens[len(tokens)-1]
			tokens = tokens[:len(tokens)-1]
		}
	}

	units := mergeParticles(tokens)
	switch len(units) {
	case 1:
		p.First = units[0]
	case 2:
		p.First, p.Last = units[0], units[1]
	case 3:
		p.First, p.Middle, p.Last = units[0], units[1], units[2]
	default:
		p.First = units[0]
		p.Middle = units[1]
		p.Last = strings.Join(units[2:], " ")
	}
	return p
}

func canonSuffix(tok string) string {
	return strings.ToUpper(strings.TrimRight(tok, "."))
}

func mergeParticles(tokens []string) []string {
	var units []string
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		for i+1 < len(tokens) {
			if _, ok := particles[strings.ToUpper(strings.TrimRight(tok, "."))]; !ok {
				break
			}
			i++
			tok = tok + " " + tokens[i]
		}
		units = append(units, tok)
	}
	return units
}

var titleCaser = cases.Title(language.English)

// Title word-cases a value pulled from an all-caps or all-lower source field,
// e.g. "DELA CRUZ" -> "Dela Cruz".
func Title(s string) string {
	return titleCaser.String(strings.ToLower(strings.TrimSpace(s)))
}

// Sentence upper-cases only the first letter, e.g. "single" -> "Single".
func Sentence(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// Upper is strings.ToUpper after trimming; kept here so mapping code reads
// uniformly.
func Upper(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

var stripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StripDiacritics removes combining marks so "Peña" matches a photo named
// "PENA". Falls back to the input when transformation fails.
func StripDiacritics(s string) string {
	out, _, err := transform.String(stripper, s)
	if err != nil {
		return s
	}
	return out
}
