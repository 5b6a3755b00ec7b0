package emotion

import (
	"strings"

	"twc/classify"
)

// Context holds coarse narrative flags of a passage.
type Context struct {
	Beginning      bool
	Ending         bool
	Conflict       bool
	Resolution     bool
	Transformation bool
	Magic          bool
	Dialogue       bool
}

var (
	conflictWords       = []string{"battle", "war", "fight", "attack", "conflict", "danger"}
	resolutionWords     = []string{"victory", "win", "peace", "together", "end", "solved"}
	transformationWords = []string{"transform", "change", "becomes", "turns into", "prince", "awaken"}
	magicWords          = []string{"magic", "spell", "enchant", "fairy", "wizard", "curse"}
)

// Analyze derives flags for passage at index out of total passages. Keyword
// lists match as plain substrings.
func Analyze(index, total int, text string) Context {
	return Context{
		Beginning:      index == 0,
		Ending:         index == total-1,
		Conflict:       classify.ContainsAny(text, conflictWords),
		Resolution:     classify.ContainsAny(text, resolutionWords),
		Transformation: classify.ContainsAny(text, transformationWords),
		Magic:          classify.ContainsAny(text, magicWords),
		Dialogue:       strings.ContainsAny(text, `"“”`),
	}
}

// Flags lists names of flags which are set.
func (c Context) Flags() []string {
	var out []string
	for _, f := range []struct {
		name string
		set  bool
	}{
		{"beginning", c.Beginning},
		{"ending", c.Ending},
		{"conflict", c.Conflict},
		{"resolution", c.Resolution},
		{"transformation", c.Transformation},
		{"magic", c.Magic},
		{"dialogue", c.Dialogue},
	} {
		if f.set {
			out = append(out, f.name)
		}
	}
	return out
}
