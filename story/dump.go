package story

import (
	"twc/utils/debug"
)

// String dumps story graph for debug reports.
func (s *Story) String() string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "Story %q uuid=%s start=%d passages=%d", s.Name, s.UUID, s.StartPassage, len(s.Passages))
	for _, p := range s.Passages {
		tw.Line(1, "Passage %d %q background=%s", p.ID, p.Name, p.Background)
		tw.List(2, "tags", p.Tags)
		tw.Field(2, "text", p.CleanText)
		tw.Field(2, "speaker", p.Speaker)
		for _, l := range p.Links {
			tw.Line(2, "-> %d %q", l.PassageID, l.Text)
		}
		for _, e := range p.Emotions {
			tw.Line(2, "%s: %s", e.Character, e.Emotion)
		}
	}
	return tw.String()
}
