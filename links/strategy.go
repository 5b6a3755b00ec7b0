package links

import (
	"regexp"
	"strconv"
	"strings"
)

// Strategy is a single link dialect.
type Strategy interface {
	Name() string
	Resolve(marker string, names Names) (Link, bool)
}

// DefaultStrategies returns dialects in priority order. Twine native forms
// come last so they only pick up markers the other forms would drop.
func DefaultStrategies() []Strategy {
	return []Strategy{ArrowForm{}, NameLookupForm{}, FallbackNumericForm{}, TwineForm{}}
}

// ArrowForm handles "label -> 7" and "label -> 6.2" (with plain or HTML
// encoded arrow), decimal suffix is ignored.
type ArrowForm struct{}

var arrowRe = regexp.MustCompile(`^(.*?)\s*(?:->|-&gt;)\s*(\d+(?:\.\d+)?)$`)

func (ArrowForm) Name() string { return "arrow" }

func (ArrowForm) Resolve(marker string, _ Names) (Link, bool) {
	m := arrowRe.FindStringSubmatch(marker)
	if m == nil {
		return Link{}, false
	}
	major, _, _ := strings.Cut(m[2], ".")
	id, err := strconv.Atoi(major)
	if err != nil {
		return Link{}, false
	}
	return Link{Text: strings.TrimSpace(m[1]), PassageID: id}, true
}

// target returns original target text of arrow marker.
func (ArrowForm) target(marker string) (string, bool) {
	m := arrowRe.FindStringSubmatch(marker)
	if m == nil {
		return "", false
	}
	return m[2], true
}

// NameLookupForm handles markers which are passage names.
type NameLookupForm struct{}

func (NameLookupForm) Name() string { return "name" }

func (NameLookupForm) Resolve(marker string, names Names) (Link, bool) {
	id, ok := names[marker]
	if !ok {
		return Link{}, false
	}
	return Link{Text: marker, PassageID: id}, true
}

// FallbackNumericForm takes the first number found anywhere in the marker
// as the target, the number is removed from the label.
type FallbackNumericForm struct{}

var numberRe = regexp.MustCompile(`\d+`)

func (FallbackNumericForm) Name() string { return "numeric" }

func (FallbackNumericForm) Resolve(marker string, _ Names) (Link, bool) {
	loc := numberRe.FindStringIndex(marker)
	if loc == nil {
		return Link{}, false
	}
	id, err := strconv.Atoi(marker[loc[0]:loc[1]])
	if err != nil {
		return Link{}, false
	}
	return Link{Text: strings.TrimSpace(marker[:loc[0]] + marker[loc[1]:]), PassageID: id}, true
}

// TwineForm handles standard Twine links pointing to passage names:
// "label->Name", "Name<-label" and "label|Name".
type TwineForm struct{}

func (TwineForm) Name() string { return "twine" }

func (TwineForm) Resolve(marker string, names Names) (Link, bool) {
	var label, target string
	switch {
	case strings.Contains(marker, "|"):
		i := strings.LastIndex(marker, "|")
		label, target = marker[:i], marker[i+1:]
	case strings.Contains(marker, "->"):
		i := strings.LastIndex(marker, "->")
		label, target = marker[:i], marker[i+2:]
	case strings.Contains(marker, "<-"):
		i := strings.Index(marker, "<-")
		target, label = marker[:i], marker[i+2:]
	default:
		return Link{}, false
	}
	id, ok := names[strings.TrimSpace(target)]
	if !ok {
		return Link{}, false
	}
	return Link{Text: strings.TrimSpace(label), PassageID: id}, true
}
