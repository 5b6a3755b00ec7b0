// Package emotion attaches character expressions to story passages.
//
// For every character present in a passage the emotion best supported by
// passage text wins. When text gives no usable evidence the narrative context
// of the passage suggests one. Either way only emotions for which the manifest
// has an asset are ever emitted.
package emotion

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"twc/characters"
	"twc/classify"
	"twc/diag"
	"twc/manifest"
	"twc/story"
)

// Options tune assignment.
type Options struct {
	// Emotion keyword table, DefaultEmotions when empty.
	Emotions []classify.Category
	// Character detector, default one when nil.
	Detector *characters.Detector
	// Number of passages processed in parallel, number of CPUs when not positive.
	Workers int
}

// Assigner is immutable and safe for concurrent use.
type Assigner struct {
	manifest *manifest.Manifest
	table    *classify.Table
	detector *characters.Detector
	workers  int
}

func NewAssigner(m *manifest.Manifest, opts Options) *Assigner {
	if len(opts.Emotions) == 0 {
		opts.Emotions = DefaultEmotions
	}
	if opts.Detector == nil {
		opts.Detector = characters.NewDetector(characters.Options{})
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	return &Assigner{
		manifest: m,
		table:    classify.NewTable(opts.Emotions),
		detector: opts.Detector,
		workers:  opts.Workers,
	}
}

// AssignStory enriches every passage. Passages do not depend on each other
// and are processed in parallel. Previous speaker and emotions are replaced.
func (a *Assigner) AssignStory(ctx context.Context, s *story.Story, dc *diag.Collector) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)

	total := len(s.Passages)
	for i, p := range s.Passages {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("passage entry %d is empty", i)
			}
			a.Assign(p, Analyze(i, total, p.CleanText), dc)
			if !a.manifest.HasBackground(p.Background) {
				dc.Add(diag.MissingBackground, p.ID, "background %q has no asset", p.Background)
			}
			return nil
		})
	}
	return g.Wait()
}

// Assign sets speaker and emotions of a single passage.
func (a *Assigner) Assign(p *story.Passage, pc Context, dc *diag.Collector) {
	p.Speaker = characters.Speaker(p.CleanText)
	p.Emotions = nil

	cast := a.detector.Detect(p.CleanText)
	if cast.Len() == 0 {
		dc.Add(diag.NoCharacters, p.ID, "no characters detected")
		return
	}

	title := cases.Title(language.English)
	scores := a.table.Score(p.CleanText)
	for _, role := range cast.Roles() {
		assets, ok := a.manifest.Lookup(append([]string{string(role)}, role.Aliases()...)...)
		if !ok {
			dc.Add(diag.RoleNotInManifest, p.ID, "character %s has no assets", role)
			continue
		}
		emotion, ok := a.pick(role, assets, scores, pc)
		if !ok {
			dc.Add(diag.NoEmotion, p.ID, "no suitable emotion for %s among %v", role, assets.Tags)
			continue
		}
		p.Emotions = append(p.Emotions, story.CharacterEmotion{
			Character: assets.Key,
			Emotion:   title.String(emotion),
		})
	}
}

func (a *Assigner) pick(role characters.Role, assets *manifest.Assets, scores classify.Scores, pc Context) (string, bool) {
	if name, _, ok := a.table.Best(scores, assets.Has); ok {
		return name, true
	}
	for _, s := range Suggest(pc, role) {
		if assets.Has(s) {
			return s, true
		}
	}
	return "", false
}
