package story

import (
	"slices"

	"twc/diag"
)

// Validate records links pointing to missing passages and passages which
// cannot be reached from the start passage. Start is StartPassage when it
// exists, lowest id otherwise.
func (s *Story) Validate(dc *diag.Collector) {
	if len(s.Passages) == 0 {
		return
	}

	ids := make(map[int]*Passage, len(s.Passages))
	for _, p := range s.Passages {
		ids[p.ID] = p
	}
	for _, p := range s.Passages {
		for _, l := range p.Links {
			if _, ok := ids[l.PassageID]; !ok {
				dc.Add(diag.DanglingLink, p.ID, "link %q points to missing passage %d", l.Text, l.PassageID)
			}
		}
	}

	start, ok := ids[s.StartPassage]
	if !ok {
		start = slices.MinFunc(s.Passages, func(a, b *Passage) int { return a.ID - b.ID })
	}

	seen := map[int]bool{start.ID: true}
	queue := []*Passage{start}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, l := range p.Links {
			next, ok := ids[l.PassageID]
			if !ok || seen[next.ID] {
				continue
			}
			seen[next.ID] = true
			queue = append(queue, next)
		}
	}
	for _, p := range s.Passages {
		if !seen[p.ID] {
			dc.Add(diag.Unreachable, p.ID, "passage %q is not reachable from passage %d", p.Name, start.ID)
		}
	}
}
