package story

import (
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"twc/diag"
	"twc/links"
	"twc/twine"
)

const twoPassages = `<tw-storydata name="Door" startnode="1" ifid="0F6B2A5C-3A8E-4D52-9C1E-2C1F0C4B7E11">
<tw-passagedata pid="1" name="Start" tags="intro">You see a door. [[Open it->2]]</tw-passagedata>
<tw-passagedata pid="2" name="Inside">"I'm scared," she whispers.</tw-passagedata>
</tw-storydata>`

func build(t *testing.T, markup string, dc *diag.Collector) *Story {
	t.Helper()
	doc, err := twine.Parse(strings.NewReader(markup), dc)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	now := func() time.Time { return time.UnixMilli(1700000000000) }
	return Build(doc, Options{Now: now}, dc)
}

func TestBuild(t *testing.T) {
	dc := diag.New()
	s := build(t, twoPassages, dc)

	if s.Name != "Door" || s.StartPassage != 1 || s.SchemaName != SchemaName || s.CreatedAtMs != 1700000000000 {
		t.Errorf("header = %+v", s)
	}
	if len(s.Passages) != 2 {
		t.Fatalf("passages = %d", len(s.Passages))
	}

	start := s.Passages[0]
	if start.CleanText != "You see a door." {
		t.Errorf("cleanText = %q", start.CleanText)
	}
	if len(start.Links) != 1 || start.Links[0] != (links.Link{Text: "Open it", PassageID: 2}) {
		t.Errorf("links = %+v", start.Links)
	}
	if start.Text != "You see a door. [[Open it->2]]" {
		t.Errorf("text = %q", start.Text)
	}
	if len(start.Tags) != 1 || start.Tags[0] != "intro" {
		t.Errorf("tags = %v", start.Tags)
	}

	inside := s.Passages[1]
	if inside.CleanText != `"I'm scared," she whispers.` {
		t.Errorf("cleanText = %q", inside.CleanText)
	}
	if inside.Links == nil || len(inside.Links) != 0 {
		t.Errorf("links = %#v, want empty", inside.Links)
	}
	if inside.Background != DefaultBackground || inside.Speaker != "" {
		t.Errorf("background = %q speaker = %q", inside.Background, inside.Speaker)
	}

	s.Validate(dc)
	if dc.Len() != 0 {
		t.Errorf("unexpected diagnostics %v", dc.Entries())
	}
}

func TestBuild_ForwardReference(t *testing.T) {
	const markup = `<tw-storydata name="Forward" startnode="1">
<tw-passagedata pid="1" name="Start">Go on. [[Later]] or [[Middle]]</tw-passagedata>
<tw-passagedata pid="2" name="Middle">Halfway. [[Start]]</tw-passagedata>
<tw-passagedata pid="7" name="Later">The end.</tw-passagedata>
</tw-storydata>`

	dc := diag.New()
	s := build(t, markup, dc)
	start, ok := s.Passage(1)
	if !ok {
		t.Fatal("passage 1 missing")
	}
	want := []links.Link{{Text: "Later", PassageID: 7}, {Text: "Middle", PassageID: 2}}
	if !slices.Equal(start.Links, want) {
		t.Errorf("links = %+v, want %+v", start.Links, want)
	}
	if start.CleanText != "Go on.  or" {
		t.Errorf("cleanText = %q", start.CleanText)
	}
	if n := dc.Count(diag.UnresolvedLink); n != 0 {
		t.Errorf("unresolved links = %d", n)
	}
}

func TestSceneTagger(t *testing.T) {
	st := NewSceneTagger(nil, "")
	tests := []struct {
		text, want string
	}{
		{"The battle rages on.", "scenery_4"},
		{"Nothing to see.", DefaultBackground},
		{"A warm room at night, dark and quiet.", "scenery_6"},
		{"The castle garden.", "scenery_2"},
		{"Warning signs.", DefaultBackground},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := st.Tag(tt.text); got != tt.want {
				t.Errorf("Tag(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}

	custom := NewSceneTagger(DefaultScenes[:1], "void")
	if got := custom.Tag("The battle rages on."); got != "void" {
		t.Errorf("custom fallback = %q", got)
	}
}

func TestValidate(t *testing.T) {
	s := &Story{
		StartPassage: 99,
		Passages: []*Passage{
			{ID: 2, Name: "Hub", Links: []links.Link{{Text: "loop", PassageID: 3}}},
			{ID: 3, Name: "Room", Links: []links.Link{{Text: "back", PassageID: 2}, {Text: "gone", PassageID: 7}}},
			{ID: 5, Name: "Island", Links: []links.Link{}},
		},
	}
	dc := diag.New()
	s.Validate(dc)

	if dc.Count(diag.DanglingLink) != 1 {
		t.Errorf("dangling = %d", dc.Count(diag.DanglingLink))
	}
	entries := dc.Entries()
	var unreachable []int
	for _, e := range entries {
		if e.Kind == diag.Unreachable {
			unreachable = append(unreachable, e.PassageID)
		}
	}
	if len(unreachable) != 1 || unreachable[0] != 5 {
		t.Errorf("unreachable = %v, want [5]", unreachable)
	}
}

func TestSaveLoad(t *testing.T) {
	dc := diag.New()
	s := build(t, twoPassages, dc)
	s.Passages[1].Emotions = []CharacterEmotion{{Character: "protagonist", Emotion: "Stressed"}}

	path := filepath.Join(t.TempDir(), "story.json")
	if err := s.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.String() != s.String() {
		t.Errorf("loaded story differs:\n%s\nwant:\n%s", loaded, s)
	}

	data, _ := s.Marshal()
	for _, want := range []string{`"linkText": "Open it"`, `"passageId": 2`, `"cleanText"`, `"character": "protagonist"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("output does not contain %s", want)
		}
	}
	if strings.Contains(string(data), `"speaker"`) {
		t.Error("empty speaker must be omitted")
	}

	if _, err := Unmarshal([]byte(`{"passages": [`)); err == nil {
		t.Error("expected error for truncated story")
	}
	for _, in := range []string{`{"passages": [null]}`, `{"passages": [{"id": 1}, null]}`} {
		if _, err := Unmarshal([]byte(in)); err == nil {
			t.Errorf("Unmarshal(%s) expected error for empty passage", in)
		}
	}
	s, err = Unmarshal([]byte(`{"passages": [{"id": 3, "name": "Bare"}]}`))
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if s.Passages[0].Links == nil {
		t.Error("missing links must decode as empty list")
	}
}

func TestString(t *testing.T) {
	s := build(t, twoPassages, diag.New())
	out := s.String()
	for _, want := range []string{`Story "Door"`, `Passage 1 "Start"`, `-> 2 "Open it"`, "tags: [intro]"} {
		if !strings.Contains(out, want) {
			t.Errorf("dump does not contain %q:\n%s", want, out)
		}
	}
}
