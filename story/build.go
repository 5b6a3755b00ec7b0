package story

import (
	"time"

	"twc/characters"
	"twc/diag"
	"twc/links"
	"twc/twine"
)

// Options controls graph construction.
type Options struct {
	Scenes     *SceneTagger
	Strategies []links.Strategy
	// Now is used for creation time stamp, time.Now when nil.
	Now func() time.Time
}

// Build converts parsed document into story graph. Every passage gets its
// links, clean text, background and speaker. Passages are ordered by id.
func Build(doc *twine.Document, opts Options, dc *diag.Collector) *Story {
	if opts.Scenes == nil {
		opts.Scenes = NewSceneTagger(nil, "")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Story{
		UUID:           doc.Header.IFID,
		Name:           doc.Header.Name,
		Creator:        doc.Header.Creator,
		CreatorVersion: doc.Header.CreatorVersion,
		Format:         doc.Header.Format,
		FormatVersion:  doc.Header.FormatVersion,
		StartPassage:   doc.Header.StartNode,
		SchemaName:     SchemaName,
		SchemaVersion:  SchemaVersion,
		CreatedAtMs:    opts.Now().UnixMilli(),
	}

	// name table is complete at this point, links may point forward
	resolver := links.NewResolver(doc.Names, dc, opts.Strategies...)
	for _, raw := range doc.Sorted() {
		lnks, clean := resolver.Resolve(raw.ID, raw.Content)
		s.Passages = append(s.Passages, &Passage{
			ID:         raw.ID,
			Name:       raw.Name,
			Tags:       raw.Tags,
			Text:       raw.Content,
			CleanText:  clean,
			Links:      lnks,
			Background: opts.Scenes.Tag(clean),
			Speaker:    characters.Speaker(clean),
		})
	}
	if s.Passages == nil {
		s.Passages = []*Passage{}
	}
	return s
}
