package twine

import (
	"errors"
	"strings"
	"testing"

	"twc/diag"
)

const sampleStory = `<html><head><title>Test</title></head>
<body>
<tw-story></tw-story>
<tw-storydata name="Door Story" startnode="1" creator="Twine" creator-version="2.6.2" ifid="0f6b2a5c-3a8e-4d52-9c1e-2c1f0c4b7e11" format="Harlowe" format-version="3.3.7" options="" hidden>
<style role="stylesheet" id="twine-user-stylesheet" type="text/twine-css">tw-passage { color: red; }</style>
<script role="script" id="twine-user-script" type="text/twine-javascript">if (a < b && c > d) { x(); }</script>
<tw-passagedata pid="1" name="Start" tags="intro first" position="100,100" size="100,100">You see a door. [[Open it-&gt;2]]</tw-passagedata>
<tw-passagedata pid="2" name="Inside" tags="" position="250,100" size="100,100">&quot;I&#39;m scared,&quot; she whispers.</tw-passagedata>
</tw-storydata>
<script>window.story = 1;</script>
</body></html>`

func TestParse_Story(t *testing.T) {
	dc := diag.New()
	doc, err := Parse(strings.NewReader(sampleStory), dc)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	h := doc.Header
	if h.Name != "Door Story" || h.StartNode != 1 || h.Creator != "Twine" || h.CreatorVersion != "2.6.2" {
		t.Errorf("unexpected header %+v", h)
	}
	if h.Format != "Harlowe" || h.FormatVersion != "3.3.7" {
		t.Errorf("unexpected format %+v", h)
	}
	if h.IFID != "0F6B2A5C-3A8E-4D52-9C1E-2C1F0C4B7E11" {
		t.Errorf("IFID = %q", h.IFID)
	}
	if dc.Count(diag.InvalidIFID) != 0 {
		t.Errorf("unexpected diagnostics %v", dc.Entries())
	}

	if len(doc.Passages) != 2 {
		t.Fatalf("passages = %d, want 2", len(doc.Passages))
	}
	p1 := doc.Passages[1]
	if p1.Name != "Start" || p1.Content != "You see a door. [[Open it->2]]" {
		t.Errorf("passage 1 = %+v", p1)
	}
	if len(p1.Tags) != 2 || p1.Tags[0] != "intro" || p1.Tags[1] != "first" {
		t.Errorf("passage 1 tags = %v", p1.Tags)
	}
	p2 := doc.Passages[2]
	if p2.Content != `"I'm scared," she whispers.` {
		t.Errorf("passage 2 content = %q", p2.Content)
	}
	if len(p2.Tags) != 0 {
		t.Errorf("passage 2 tags = %v", p2.Tags)
	}

	if doc.Names["Start"] != 1 || doc.Names["Inside"] != 2 {
		t.Errorf("names = %v", doc.Names)
	}
}

func TestParse_Fragment(t *testing.T) {
	fragment := `<tw-storydata name="x" ifid="bad"><tw-passagedata pid="5" name="Later">B</tw-passagedata><tw-passagedata pid="3">A</tw-passagedata></tw-storydata>`
	dc := diag.New()
	doc, err := Parse(strings.NewReader(fragment), dc)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	sorted := doc.Sorted()
	if len(sorted) != 2 || sorted[0].ID != 3 || sorted[1].ID != 5 {
		t.Fatalf("Sorted() = %+v", sorted)
	}
	if sorted[0].Name != "Passage 3" {
		t.Errorf("default name = %q", sorted[0].Name)
	}
	if dc.Count(diag.InvalidIFID) != 1 {
		t.Errorf("expected invalid IFID diagnostic")
	}
	if len(doc.Header.IFID) != 36 {
		t.Errorf("replacement IFID = %q", doc.Header.IFID)
	}
}

func TestParse_Tolerated(t *testing.T) {
	fragment := `<tw-storydata ifid="0f6b2a5c-3a8e-4d52-9c1e-2c1f0c4b7e11">
<tw-passagedata pid="x" name="Broken">skip me</tw-passagedata>
<tw-passagedata pid="1" name="Same">one</tw-passagedata>
<tw-passagedata pid="2" name="Same">two</tw-passagedata>
</tw-storydata>`
	dc := diag.New()
	doc, err := Parse(strings.NewReader(fragment), dc)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(doc.Passages) != 2 {
		t.Fatalf("passages = %d, want 2", len(doc.Passages))
	}
	if doc.Names["Same"] != 2 {
		t.Errorf("last declaration must win name lookup, got %d", doc.Names["Same"])
	}
	if dc.Count(diag.BadPassageID) != 1 || dc.Count(diag.DuplicateName) != 1 {
		t.Errorf("unexpected diagnostics %v", dc.Entries())
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no container", `<body><tw-passagedata pid="1" name="A">x</tw-passagedata></body>`},
		{"no closing", `<body><tw-storydata name="x"><tw-passagedata pid="1" name="A">x</tw-passagedata>`},
		{"unclosed passage", `<tw-storydata><tw-passagedata pid="1" name="A">x</tw-storydata>`},
		{"empty", ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input), nil)
			var merr *MalformedInputError
			if !errors.As(err, &merr) {
				t.Fatalf("Parse() error = %v, want MalformedInputError", err)
			}
		})
	}
}

func TestTrim(t *testing.T) {
	out, err := Trim([]byte(sampleStory))
	if err != nil {
		t.Fatalf("Trim() error = %v", err)
	}
	s := string(out)
	if !strings.HasPrefix(s, "<body>") || !strings.HasSuffix(s, "</tw-storydata>") {
		t.Errorf("unexpected trim result: %q", s)
	}
	if strings.Contains(s, "window.story") {
		t.Error("trailing script must be cut")
	}

	for _, bad := range []string{
		`<html><tw-storydata></tw-storydata></html>`,
		`<body><tw-storydata>`,
		`</tw-storydata><body>`,
	} {
		var merr *MalformedInputError
		if _, err := Trim([]byte(bad)); !errors.As(err, &merr) {
			t.Errorf("Trim(%q) error = %v, want MalformedInputError", bad, err)
		}
	}

	// trimmed output must parse to the same story
	doc, err := Parse(strings.NewReader(s), nil)
	if err != nil || len(doc.Passages) != 2 {
		t.Errorf("Parse(Trim()) = %v, %v", doc, err)
	}
}

func TestParse_Encodings(t *testing.T) {
	t.Run("utf8 past detection window", func(t *testing.T) {
		in := `<tw-storydata ifid="0f6b2a5c-3a8e-4d52-9c1e-2c1f0c4b7e11">` + strings.Repeat(" ", 2048) +
			`<tw-passagedata pid="1" name="A">“Hello,” he says.</tw-passagedata></tw-storydata>`
		doc, err := Parse(strings.NewReader(in), nil)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if got := doc.Passages[1].Content; got != "“Hello,” he says." {
			t.Errorf("content = %q", got)
		}
	})
	t.Run("windows-1252 with meta", func(t *testing.T) {
		in := []byte(`<meta charset="windows-1252"><tw-storydata ifid="0f6b2a5c-3a8e-4d52-9c1e-2c1f0c4b7e11"><tw-passagedata pid="1" name="A">caf` + "\xe9" + `</tw-passagedata></tw-storydata>`)
		doc, err := Parse(strings.NewReader(string(in)), nil)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if got := doc.Passages[1].Content; got != "café" {
			t.Errorf("content = %q", got)
		}
	})
}
