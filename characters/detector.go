package characters

import (
	"regexp"
	"slices"
	"strings"
	"unicode"

	"twc/classify"
)

type roleKeywords struct {
	role     Role
	keywords []string
}

// Generic role keywords used when no character configuration is available.
var defaultRoleKeywords = []roleKeywords{
	{Protagonist, []string{"nutcracker", "clara", "prince", "doll"}},
	// antagonists
	{NPC3, []string{"mouse king", "mouse", "enemy", "villain", "giant", "monster"}},
	// magical helpers and mentors
	{NPC2, []string{"wizard", "sugar fairy", "fairy", "magician", "sage", "mentor"}},
	// authority figures and family
	{NPC1, []string{"king", "queen", "mother", "mom", "father", "dad", "parent", "guardian"}},
}

var (
	// someone fighting means protagonist and antagonist are around
	combatKeywords = []string{"attacks", "fights", "battles", "defeats"}
	// someone helping means protagonist and mentor are around
	rescueKeywords = []string{"helps", "saves", "rescues", "guides"}
)

var pronouns = []string{
	"i", "me", "my", "we", "us", "our",
	"you", "your",
	"he", "she", "his", "her", "him", "they", "them", "their",
}

var dialogueRe = regexp.MustCompile(`[` + quotes + `]([^` + quotes + `]+)[` + quotes + `]`)

// DefaultProtagonistAliases are generic nouns which always refer to the
// protagonist when character names are configured.
var DefaultProtagonistAliases = []string{"prince", "doll"}

// DefaultIgnoredNames are capitalized words which are never character names.
var DefaultIgnoredNames = []string{
	"the", "and", "but", "then", "there", "this", "that", "what", "when", "where",
	"with", "you", "she", "her", "his", "they", "their", "your", "not", "for",
}

// Options tune detection.
type Options struct {
	// Character names, nil when not configured.
	Names *Names
	// Generic nouns referring to protagonist, used together with Names.
	ProtagonistAliases []string
	// Capitalized words never treated as names.
	IgnoredNames []string
}

// Detector finds roles present in passage text. It is immutable and safe for
// concurrent use.
type Detector struct {
	roles    []roleKeywords
	names    bool
	ignored  []string
	pronouns []*regexp.Regexp
}

func NewDetector(opts Options) *Detector {
	d := &Detector{ignored: lowerAll(IgnoredOrDefault(opts.IgnoredNames))}
	for _, p := range pronouns {
		d.pronouns = append(d.pronouns, classify.WordPattern(p))
	}
	if opts.Names != nil {
		d.names = true
		aliases := opts.ProtagonistAliases
		if aliases == nil {
			aliases = DefaultProtagonistAliases
		}
		d.roles = append(d.roles, roleKeywords{Protagonist, lowerAll(aliases)})
		d.roles = append(d.roles, opts.Names.byRole()...)
	} else {
		d.roles = defaultRoleKeywords
	}
	return d
}

// IgnoredOrDefault returns names or DefaultIgnoredNames when names is nil.
func IgnoredOrDefault(names []string) []string {
	if names == nil {
		return DefaultIgnoredNames
	}
	return names
}

type candidate struct {
	role Role
	name string
}

// Detect returns roles present in text, at most MaxOnScreen of them in first
// seen order. Roles beyond that are dropped because there is no room for them
// on screen, not because they were not found.
func (d *Detector) Detect(text string) Cast {
	candidates := d.candidates(text)

	claimed := make(map[Role]bool)
	for _, c := range candidates {
		if len(c.role) > 0 {
			claimed[c.role] = true
		}
	}

	var cast Cast
	for _, c := range candidates {
		r := c.role
		if len(r) == 0 {
			// free form name takes first slot nobody claimed
			i := slices.IndexFunc(Slots, func(s Role) bool { return !claimed[s] })
			if i < 0 {
				continue
			}
			r = Slots[i]
			claimed[r] = true
		}
		cast.Add(r)
	}
	return cast
}

func (d *Detector) candidates(text string) []candidate {
	var (
		lower = strings.ToLower(text)
		out   []candidate
		seen  = make(map[candidate]bool)
	)
	add := func(c candidate) {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}

	// dialogue is assumed to be voiced by protagonist
	for _, m := range dialogueRe.FindAllStringSubmatch(text, -1) {
		if slices.ContainsFunc(d.pronouns, func(re *regexp.Regexp) bool { return re.MatchString(m[1]) }) {
			add(candidate{role: Protagonist})
			break
		}
	}

	for _, name := range d.properNouns(text) {
		add(candidate{role: d.roleOf(name), name: name})
	}

	for _, rk := range d.roles {
		if classify.ContainsAny(lower, rk.keywords) {
			add(candidate{role: rk.role})
		}
	}

	if classify.ContainsAny(lower, combatKeywords) {
		add(candidate{role: Protagonist})
		add(candidate{role: NPC3})
	}
	if classify.ContainsAny(lower, rescueKeywords) {
		add(candidate{role: Protagonist})
		add(candidate{role: NPC2})
	}
	return out
}

// properNouns returns lower-cased capitalized words longer than two letters
// which occur more than once, in order of first occurrence.
func (d *Detector) properNouns(text string) []string {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	counts := make(map[string]int, len(words))
	for _, w := range words {
		counts[strings.ToLower(w)]++
	}

	var out []string
	for _, word := range words {
		runes := []rune(word)
		if len(runes) <= 2 || !unicode.IsUpper(runes[0]) {
			continue
		}
		name := strings.ToLower(word)
		if counts[name] < 2 || slices.Contains(out, name) || slices.Contains(d.ignored, name) {
			continue
		}
		out = append(out, name)
	}
	return out
}

// roleOf maps free form name to role when name is one of role keywords.
func (d *Detector) roleOf(name string) Role {
	for _, rk := range d.roles {
		if slices.Contains(rk.keywords, name) {
			return rk.role
		}
	}
	return ""
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); len(s) > 0 {
			out = append(out, s)
		}
	}
	return out
}
