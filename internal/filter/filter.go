package filter

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// DefaultMaxLength is the longest token, in characters, that is classified
const DefaultMaxLength = 6

// pattern: Russian letters only, first and last uppercase.
var pattern = regexp.MustCompile(`^[А-ЯЁ][А-ЯЁа-яё]*[А-ЯЁ]$`)

// Options controls cleaning and length limits
type Options struct {
	// MaxLength drops longer tokens before classification; <= 0 disables the limit
	MaxLength int
	// Normalize applies Unicode NFC before cleaning so decomposed letters survive
	Normalize bool
}

// DefaultOptions returns the standard filter settings
func DefaultOptions() Options {
	return Options{
		MaxLength: DefaultMaxLength,
		Normalize: true,
	}
}

// Stats summarises one filter run
type Stats struct {
	Values      int // raw values read
	Tokens      int // tokens after splitting
	TooLong     int // tokens dropped for length
	Accepted    int // token occurrences classified as matching
	Rejected    int // token occurrences classified as non-matching
	Matching    int // distinct matching tokens
	NonMatching int // distinct non-matching tokens
}

// Result holds the deduplicated, sorted token sets
type Result struct {
	Matching    []string
	NonMatching []string
	Stats       Stats
}

// Clean removes every character that is not a Latin or Cyrillic letter,
// a digit or whitespace
func Clean(s string, normalize bool) string {
	if normalize {
		s = norm.NFC.String(s)
	}
	return strings.Map(func(r rune) rune {
		if keep(r) {
			return r
		}
		return -1
	}, s)
}

func keep(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		return true
	case r >= 'А' && r <= 'Я', r >= 'а' && r <= 'я', r == 'Ё', r == 'ё':
		return true
	case r >= '0' && r <= '9':
		return true
	}
	return unicode.IsSpace(r)
}

// Tokenize splits cleaned text on whitespace
func Tokenize(s string) []string {
	return strings.Fields(s)
}

// Matches reports whether a token satisfies the abbreviation pattern:
// Russian letters only, uppercase first and last letter, and at least two
// uppercase letters overall.
func Matches(token string) bool {
	if !pattern.MatchString(token) {
		return false
	}
	upper := 0
	for _, r := range token {
		if unicode.IsUpper(r) {
			upper++
		}
	}
	return upper >= 2
}

// Run cleans, tokenizes and classifies every raw value
func Run(values []string, opts Options) Result {
	matching := make(map[string]struct{})
	nonMatching := make(map[string]struct{})
	var stats Stats

	for _, value := range values {
		stats.Values++
		for _, token := range Tokenize(Clean(value, opts.Normalize)) {
			stats.Tokens++
			if opts.MaxLength > 0 && utf8.RuneCountInString(token) > opts.MaxLength {
				stats.TooLong++
				continue
			}
			if Matches(token) {
				stats.Accepted++
				matching[token] = struct{}{}
			} else {
				stats.Rejected++
				nonMatching[token] = struct{}{}
			}
		}
	}

	res := Result{
		Matching:    sortedKeys(matching),
		NonMatching: sortedKeys(nonMatching),
	}
	stats.Matching = len(res.Matching)
	stats.NonMatching = len(res.NonMatching)
	res.Stats = stats
	return res
}

// sortedKeys orders tokens by code point, which is byte order for UTF-8
func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
