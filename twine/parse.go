// Package twine reads stories exported (published) by Twine 2 as HTML.
//
// Export consists of single tw-storydata element holding story attributes and
// a sequence of tw-passagedata elements, each with numeric pid, name and
// passage source as escaped text.
package twine

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"

	"twc/diag"
	"twc/links"
)

// Header holds story level attributes.
type Header struct {
	Name           string
	IFID           string
	Creator        string
	CreatorVersion string
	Format         string
	FormatVersion  string
	StartNode      int
}

// RawPassage is passage as found in markup.
type RawPassage struct {
	ID      int
	Name    string
	Tags    []string
	Content string
}

// Document is parsed story markup.
type Document struct {
	Header   Header
	Passages map[int]*RawPassage
	Names    links.Names
}

// Sorted returns passages ordered by id.
func (d *Document) Sorted() []*RawPassage {
	ids := make([]int, 0, len(d.Passages))
	for id := range d.Passages {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]*RawPassage, 0, len(ids))
	for _, id := range ids {
		out = append(out, d.Passages[id])
	}
	return out
}

// Parse reads story markup, either full export or trimmed fragment. Input
// which is not valid UTF-8 is decoded according to its BOM or meta tags.
// Name lookup table is complete when Parse returns.
func Parse(r io.Reader, dc *diag.Collector) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read markup: %w", err)
	}
	if !utf8.Valid(data) {
		// trimmed fragments have no meta tags, so only non UTF-8 input goes to detection
		cr, err := charset.NewReader(bytes.NewReader(data), "text/html")
		if err != nil {
			return nil, fmt.Errorf("unable to detect markup encoding: %w", err)
		}
		if data, err = io.ReadAll(cr); err != nil {
			return nil, fmt.Errorf("unable to decode markup: %w", err)
		}
	}
	fragment, err := storyFragment(data)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Passages: make(map[int]*RawPassage),
		Names:    make(links.Names),
	}

	var (
		current *RawPassage
		text    strings.Builder
		depth   int
	)

	z := html.NewTokenizer(bytes.NewReader(fragment))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, fmt.Errorf("unable to tokenize markup: %w", err)
			}
			if current != nil {
				return nil, malformed("passage %d is not closed", current.ID)
			}
			doc.Header.IFID = checkIFID(doc.Header.IFID, dc)
			return doc, nil

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			switch tok.Data {
			case "tw-storydata":
				doc.Header = parseHeader(tok.Attr)
			case "tw-passagedata":
				if current != nil {
					return nil, malformed("passage nested in passage %d", current.ID)
				}
				p, ok := newPassage(tok.Attr, dc)
				if tt == html.SelfClosingTagToken {
					if ok {
						doc.add(p, dc)
					}
					continue
				}
				if ok {
					current = p
				} else {
					// content of unusable passage is skipped
					depth++
				}
				text.Reset()
			}

		case html.TextToken:
			if current != nil {
				text.Write(z.Text())
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) != "tw-passagedata" {
				continue
			}
			if depth > 0 {
				depth--
				continue
			}
			if current == nil {
				continue
			}
			current.Content = strings.TrimSpace(text.String())
			doc.add(current, dc)
			current = nil
		}
	}
}

func (d *Document) add(p *RawPassage, dc *diag.Collector) {
	if prev, exists := d.Passages[p.ID]; exists {
		dc.Add(diag.BadPassageID, p.ID, "duplicate pid, passage %q replaces %q", p.Name, prev.Name)
	}
	if id, exists := d.Names[p.Name]; exists && id != p.ID {
		dc.Add(diag.DuplicateName, p.ID, "name %q already used by passage %d, name lookup now points here", p.Name, id)
	}
	d.Passages[p.ID] = p
	d.Names[p.Name] = p.ID
}

func attr(attrs []html.Attribute, key string) (string, bool) {
	for _, a := range attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func parseHeader(attrs []html.Attribute) Header {
	var h Header
	h.Name, _ = attr(attrs, "name")
	h.IFID, _ = attr(attrs, "ifid")
	h.Creator, _ = attr(attrs, "creator")
	h.CreatorVersion, _ = attr(attrs, "creator-version")
	h.Format, _ = attr(attrs, "format")
	h.FormatVersion, _ = attr(attrs, "format-version")
	if v, ok := attr(attrs, "startnode"); ok {
		h.StartNode, _ = strconv.Atoi(strings.TrimSpace(v))
	}
	return h
}

func newPassage(attrs []html.Attribute, dc *diag.Collector) (*RawPassage, bool) {
	pid, _ := attr(attrs, "pid")
	id, err := strconv.Atoi(strings.TrimSpace(pid))
	if err != nil {
		name, _ := attr(attrs, "name")
		dc.Add(diag.BadPassageID, diag.NoPassage, "passage %q has non numeric pid %q, skipped", name, pid)
		return nil, false
	}
	p := &RawPassage{ID: id}
	if name, ok := attr(attrs, "name"); ok && len(name) > 0 {
		p.Name = name
	} else {
		p.Name = fmt.Sprintf("Passage %d", id)
	}
	if tags, ok := attr(attrs, "tags"); ok {
		p.Tags = strings.Fields(tags)
	}
	return p, true
}

func checkIFID(ifid string, dc *diag.Collector) string {
	if id, err := uuid.Parse(ifid); err == nil {
		return strings.ToUpper(id.String())
	}
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	dc.Add(diag.InvalidIFID, diag.NoPassage, "story IFID %q is not valid UUID, replaced with %s", ifid, id)
	return strings.ToUpper(id.String())
}
