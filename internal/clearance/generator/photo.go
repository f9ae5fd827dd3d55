package generator

import (
	"strings"

	"barangay/internal/docs"
	"barangay/pkg/names"
)

// Photo files are stored under a normalized stem: LAST-FIRST-MIDDLE[-SUFFIX],
// upper-cased, diacritics stripped, whitespace collapsed to hyphens. Uploads
// do not always follow the convention exactly, so matching falls back from an
// exact stem through prefixes and substrings, over a few alternate token
// orders, before giving up.

func normalizeToken(s string) string {
	s = names.StripDiacritics(strings.TrimSpace(s))
	s = strings.ToUpper(s)
	s = strings.TrimRight(s, ".")
	return strings.Join(strings.Fields(s), "-")
}

func joinStem(tokens ...string) string {
	var parts []string
	for _, tok := range tokens {
		if tok = normalizeToken(tok); tok != "" {
			parts = append(parts, tok)
		}
	}
	return strings.Join(parts, "-")
}

// candidateStems lists the stem orderings to try, most specific first.
func candidateStems(p names.Parts) []string {
	ordered := []string{
		joinStem(p.Last, p.First, p.Middle, p.Suffix),
		joinStem(p.Last, p.First, p.Middle),
		joinStem(p.Last, p.First),
		joinStem(p.First, p.Middle, p.Last),
		joinStem(p.First, p.Last),
	}
	var stems []string
	seen := make(map[string]struct{})
	for _, s := range ordered {
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		stems = append(stems, s)
	}
	return stems
}

func normalizeFileName(name string) string {
	if i := strings.LastIndex(name, "."); i > 0 {
		name = name[:i]
	}
	return normalizeToken(name)
}

// matchPhoto finds the applicant's photo in a flat file listing. Exact stem
// matches win over prefix matches, which win over substring matches; each pass
// runs over all candidate orderings before the next pass starts.
func matchPhoto(files []docs.File, p names.Parts) (docs.File, bool) {
	if len(files) == 0 {
		return docs.File{}, false
	}
	stems := candidateStems(p)
	if len(stems) == 0 {
		return docs.File{}, false
	}

	normalized := make([]string, len(files))
	for i, f := range files {
		normalized[i] = normalizeFileName(f.Name)
	}

	match := func(fn func(fileName, stem string) bool) (docs.File, bool) {
		for _, stem := range stems {
			for i, f := range files {
				if fn(normalized[i], stem) {
					return f, true
				}
			}
		}
		return docs.File{}, false
	}

	if f, ok := match(func(n, s string) bool { return n == s }); ok {
		return f, true
	}
	if f, ok := match(strings.HasPrefix); ok {
		return f, true
	}
	return match(strings.Contains)
}
