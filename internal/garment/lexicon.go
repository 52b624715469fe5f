package garment

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// term maps one surface form onto a canonical value.
type term struct {
	key   string
	value string
}

// lexicon is an ordered keyword table. Lookups walk the entries in order and
// return the first key found in the text, so table order decides which of
// two overlapping keys wins.
type lexicon struct {
	terms []term
}

// newOrderedLexicon keeps the declaration order.
func newOrderedLexicon(terms []term) *lexicon {
	out := make([]term, len(terms))
	for i, t := range terms {
		out[i] = term{key: strings.ToLower(t.key), value: t.value}
	}
	return &lexicon{terms: out}
}

// newLongestFirstLexicon orders keys by length so that compound names are
// tried before their substrings. Keys of equal length keep declaration order.
func newLongestFirstLexicon(terms []term) *lexicon {
	l := newOrderedLexicon(terms)
	sort.SliceStable(l.terms, func(i, j int) bool {
		return utf8.RuneCountInString(l.terms[i].key) > utf8.RuneCountInString(l.terms[j].key)
	})
	return l
}

// lookup returns the value of the first key contained in text.
func (l *lexicon) lookup(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, t := range l.terms {
		if containsTerm(lower, t.key) {
			return t.value, true
		}
	}
	return "", false
}

// pattern compiles the table into one case-insensitive alternation in table
// order. Go's leftmost-first semantics make earlier alternatives win at the
// same position.
func (l *lexicon) pattern() *regexp.Regexp {
	alts := make([]string, 0, len(l.terms))
	for _, t := range l.terms {
		alt := regexp.QuoteMeta(t.key)
		if isWordByte(t.key[0]) {
			alt = `\b` + alt
		}
		if isWordByte(t.key[len(t.key)-1]) {
			alt += `\b`
		}
		alts = append(alts, alt)
	}
	return regexp.MustCompile(`(?i)(?:` + strings.Join(alts, "|") + `)`)
}

// family groups keywords that resolve to a single canonical value.
type family struct {
	value string
	keys  []string
}

// firstFamily returns the value of the first family with a key in text.
func firstFamily(text string, families []family) (string, bool) {
	lower := strings.ToLower(text)
	for _, f := range families {
		for _, k := range f.keys {
			if containsTerm(lower, strings.ToLower(k)) {
				return f.value, true
			}
		}
	}
	return "", false
}

// allFamilies returns the value of every family with a key in text, in
// family order and without repeats.
func allFamilies(text string, families []family) []string {
	lower := strings.ToLower(text)
	var out []string
	seen := make(map[string]bool)
	for _, f := range families {
		if seen[f.value] {
			continue
		}
		for _, k := range f.keys {
			if containsTerm(lower, strings.ToLower(k)) {
				out = append(out, f.value)
				seen[f.value] = true
				break
			}
		}
	}
	return out
}

// containsTerm reports whether key occurs in text. Keys that start or end
// with an ASCII letter or digit only match on a word boundary on that side,
// so "red" does not fire inside "tired". CJK keys match as plain substrings.
func containsTerm(text, key string) bool {
	if key == "" {
		return false
	}
	from := 0
	for from <= len(text)-len(key) {
		i := strings.Index(text[from:], key)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(key)
		leftOK := !isWordByte(key[0]) || start == 0 || !isWordByte(text[start-1])
		rightOK := !isWordByte(key[len(key)-1]) || end == len(text) || !isWordByte(text[end])
		if leftOK && rightOK {
			return true
		}
		from = start + 1
	}
	return false
}

func isWordByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}
