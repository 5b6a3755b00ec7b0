// Package classify implements keyword scoring shared by emotion and scene
// detection. A Table is an ordered list of categories, each with its own
// keywords. Scoring counts whole-word, case-insensitive occurrences.
package classify

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Category is a named keyword list.
type Category struct {
	Name     string   `yaml:"name" validate:"required"`
	Keywords []string `yaml:"keywords" validate:"min=1,dive,required"`
}

// Scores maps category name to number of keyword hits. Categories without
// hits are absent.
type Scores map[string]int

// Table is compiled, immutable and safe for concurrent use.
type Table struct {
	names    []string
	patterns [][]*regexp.Regexp
}

// NewTable compiles categories preserving declaration order. Categories with
// the same name are merged.
func NewTable(categories []Category) *Table {
	t := &Table{}
	index := make(map[string]int, len(categories))
	for _, c := range categories {
		i, ok := index[c.Name]
		if !ok {
			i = len(t.names)
			index[c.Name] = i
			t.names = append(t.names, c.Name)
			t.patterns = append(t.patterns, nil)
		}
		for _, kw := range c.Keywords {
			if re := WordPattern(kw); re != nil {
				t.patterns[i] = append(t.patterns[i], re)
			}
		}
	}
	return t
}

// Categories returns category names in declaration order.
func (t *Table) Categories() []string {
	return append([]string(nil), t.names...)
}

// Score counts keyword hits per category. Position of a hit does not matter,
// only counts do.
func (t *Table) Score(text string) Scores {
	scores := make(Scores)
	for i, name := range t.names {
		n := 0
		for _, re := range t.patterns[i] {
			n += len(re.FindAllStringIndex(text, -1))
		}
		if n > 0 {
			scores[name] = n
		}
	}
	return scores
}

// Best returns the highest scoring category accepted by filter (nil filter
// accepts everything). Equal scores resolve to the category declared first.
func (t *Table) Best(scores Scores, filter func(string) bool) (string, int, bool) {
	var (
		best  string
		score int
	)
	for _, name := range t.names {
		n := scores[name]
		if n == 0 || (filter != nil && !filter(name)) {
			continue
		}
		if n > score {
			best, score = name, n
		}
	}
	return best, score, score > 0
}

// WordPattern builds case-insensitive matcher for keyword which only matches
// on word boundaries. Phrases are matched literally between the boundaries.
// Returns nil for empty keyword.
func WordPattern(keyword string) *regexp.Regexp {
	keyword = strings.TrimSpace(keyword)
	if len(keyword) == 0 {
		return nil
	}
	expr := regexp.QuoteMeta(strings.ToLower(keyword))
	if first, _ := utf8.DecodeRuneInString(keyword); isWordRune(first) {
		expr = `\b` + expr
	}
	if last, _ := utf8.DecodeLastRuneInString(keyword); isWordRune(last) {
		expr += `\b`
	}
	return regexp.MustCompile(`(?i)` + expr)
}

// ContainsAny reports whether lower-cased text contains any of the fragments
// as plain substrings.
func ContainsAny(text string, fragments []string) bool {
	text = strings.ToLower(text)
	for _, f := range fragments {
		if len(f) > 0 && strings.Contains(text, strings.ToLower(f)) {
			return true
		}
	}
	return false
}

func isWordRune(r rune) bool {
	// matches RE2 \b definition which is ASCII only
	return r < utf8.RuneSelf && (r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r))
}
