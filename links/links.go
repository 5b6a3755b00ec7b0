// Package links turns Twine link markers (text enclosed in double square
// brackets) into directed edges of the story graph.
//
// Exported stories mix several link dialects, so resolution is layered: an
// ordered list of strategies is tried for every marker and the first one
// which produces a target wins. Markers no strategy can resolve are dropped
// from the graph and reported.
package links

import (
	"regexp"
	"strings"

	"twc/diag"
)

// Link is a player facing choice leading to another passage.
type Link struct {
	Text      string `json:"linkText"`
	PassageID int    `json:"passageId"`
}

// Names maps passage names to passage ids. It has to be complete before any
// link is resolved since links may point forward.
type Names map[string]int

var (
	markerRe   = regexp.MustCompile(`\[\[([^\]]+)\]\]`)
	delimiters = strings.NewReplacer("[[", "", "]]", "")
)

// Resolver resolves link markers within passage content.
type Resolver struct {
	names      Names
	strategies []Strategy
	diag       *diag.Collector
}

// NewResolver creates resolver using default strategies. Passing no
// strategies selects DefaultStrategies.
func NewResolver(names Names, dc *diag.Collector, strategies ...Strategy) *Resolver {
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	return &Resolver{names: names, strategies: strategies, diag: dc}
}

// Resolve returns links in document order and text with every marker
// removed. passageID is used for diagnostics only.
func (r *Resolver) Resolve(passageID int, content string) ([]Link, string) {
	links := []Link{}
	for _, m := range markerRe.FindAllStringSubmatch(content, -1) {
		if l, ok := r.resolveMarker(passageID, m[1]); ok {
			links = append(links, l)
		}
	}
	return links, CleanText(content)
}

func (r *Resolver) resolveMarker(passageID int, marker string) (Link, bool) {
	for _, s := range r.strategies {
		l, ok := s.Resolve(marker, r.names)
		if !ok {
			continue
		}
		if a, isArrow := s.(ArrowForm); isArrow {
			if target, ok := a.target(marker); ok {
				if id, named := r.names[target]; named && id != l.PassageID {
					r.diag.Add(diag.AmbiguousTarget, passageID,
						"marker %q resolved to id %d but passage named %q has id %d", marker, l.PassageID, target, id)
				}
			}
		}
		return l, true
	}
	r.diag.Add(diag.UnresolvedLink, passageID, "marker %q does not resolve to any passage, dropped", marker)
	return Link{}, false
}

// CleanText removes link markup from text. Result never contains marker
// delimiters, unbalanced ones are removed as well.
func CleanText(content string) string {
	text := markerRe.ReplaceAllString(content, "")
	// removing one stray pair may join brackets around it into a new one
	for {
		next := delimiters.Replace(text)
		if next == text {
			break
		}
		text = next
	}
	return strings.TrimSpace(text)
}
