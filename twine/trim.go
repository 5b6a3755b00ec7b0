package twine

import (
	"regexp"
)

var (
	bodyStartRe     = regexp.MustCompile(`(?i)<body[^>]*>`)
	storyDataOpenRe = regexp.MustCompile(`(?i)<tw-storydata[\s>]`)
	storyDataEndRe  = regexp.MustCompile(`(?i)</tw-storydata>`)
)

// Trim cuts published Twine HTML down to the part which carries the story:
// from opening body tag up to and including closing tw-storydata tag.
func Trim(data []byte) ([]byte, error) {
	start := bodyStartRe.FindIndex(data)
	if start == nil {
		return nil, malformed("no <body> element")
	}
	end := storyDataEndRe.FindIndex(data)
	if end == nil {
		return nil, malformed("no </tw-storydata> closing tag")
	}
	if end[0] < start[0] {
		return nil, malformed("</tw-storydata> precedes <body>")
	}
	return data[start[0]:end[1]], nil
}

// storyFragment returns tw-storydata element with its content or fails if
// either boundary is absent.
func storyFragment(data []byte) ([]byte, error) {
	start := storyDataOpenRe.FindIndex(data)
	if start == nil {
		return nil, malformed("no <tw-storydata> element")
	}
	end := storyDataEndRe.FindIndex(data[start[0]:])
	if end == nil {
		return nil, malformed("no </tw-storydata> closing tag")
	}
	return data[start[0] : start[0]+end[1]], nil
}
