package characters

import (
	"regexp"
	"strings"
	"sync"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

const quotes = `"“”`

// Attribution spans may run over several sentences, they are cut to the one
// adjacent to the dialogue afterwards.
var (
	// "Dialogue": speaker
	trailingSpeakerRe = regexp.MustCompile(`[` + quotes + `][^` + quotes + `]+[` + quotes + `]\s*[:\-]\s*([^\n` + quotes + `]+)`)
	// speaker: "Dialogue"
	leadingSpeakerRe = regexp.MustCompile(`([^\n` + quotes + `]+?)\s*[:\-]\s*[` + quotes + `][^` + quotes + `]+[` + quotes + `]`)
)

var tokenizer = sync.OnceValues(func() (*sentences.DefaultSentenceTokenizer, error) {
	return english.NewSentenceTokenizer(nil)
})

// splitSentences knows abbreviations, so "Mr. Drosselmeyer" stays whole.
func splitSentences(text string) []string {
	tok, err := tokenizer()
	if err != nil {
		return []string{text}
	}
	var out []string
	for _, s := range tok.Tokenize(text) {
		if t := strings.TrimSpace(s.Text); len(t) > 0 {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return []string{text}
	}
	return out
}

func cleanSpeaker(s string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimRight(strings.TrimSpace(s), ".,;!?")))
}

// Speaker returns attribution of the earliest dialogue line in text
// lower-cased, or empty string. Later attributions are ignored.
func Speaker(text string) string {
	var (
		speaker string
		pos     = -1
	)
	consider := func(re *regexp.Regexp, pick func([]string) string) {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			s := cleanSpeaker(pick(splitSentences(text[m[2]:m[3]])))
			if len(s) == 0 {
				continue
			}
			if pos < 0 || m[0] < pos {
				speaker, pos = s, m[0]
			}
			break
		}
	}
	// speaker follows dialogue: first sentence after it
	consider(trailingSpeakerRe, func(s []string) string { return s[0] })
	// speaker precedes dialogue: last sentence before it
	consider(leadingSpeakerRe, func(s []string) string { return s[len(s)-1] })
	return speaker
}
