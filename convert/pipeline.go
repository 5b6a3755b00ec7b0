package convert

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"twc/characters"
	"twc/diag"
	"twc/emotion"
	"twc/manifest"
	"twc/state"
	"twc/story"
	"twc/twine"
)

// parseStory builds story graph from export markup. Structural problems are
// fatal, everything else ends up in dc.
func parseStory(ctx context.Context, src *source, dc *diag.Collector) (*story.Story, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	env := state.EnvFromContext(ctx)

	doc, err := twine.Parse(bytes.NewReader(src.data), dc)
	if err != nil {
		return nil, fmt.Errorf("unable to parse story export (%s): %w", src.name, err)
	}

	scfg := env.Cfg.Story
	s := story.Build(doc, story.Options{
		Scenes: story.NewSceneTagger(scfg.Scenes, scfg.DefaultBackground),
	}, dc)
	s.Validate(dc)
	return s, nil
}

// newAssigner prepares emotion assigner for manifest at path.
func newAssigner(ctx context.Context, manifestPath string) (*emotion.Assigner, error) {
	env := state.EnvFromContext(ctx)

	m, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, err
	}
	names, err := characters.LoadNames(env.CharacterConfig())
	if err != nil {
		return nil, err
	}
	if names == nil {
		env.Log.Debug("No character configuration, using generic role keywords")
	}

	scfg := env.Cfg.Story
	detector := characters.NewDetector(characters.Options{
		Names:              names,
		ProtagonistAliases: scfg.ProtagonistAliases,
		IgnoredNames:       scfg.IgnoredNames,
	})
	return emotion.NewAssigner(m, emotion.Options{
		Emotions: scfg.Emotions,
		Detector: detector,
		Workers:  scfg.Workers,
	}), nil
}

// enrich attaches speakers and emotions to every passage.
func enrich(ctx context.Context, s *story.Story, manifestPath string, dc *diag.Collector) error {
	a, err := newAssigner(ctx, manifestPath)
	if err != nil {
		return err
	}
	return a.AssignStory(ctx, s, dc)
}

// prepareOutput makes sure file can be written, allowing to replace
// existing file only when overwrite is requested or inPlace is set.
func prepareOutput(name string, inPlace bool, env *state.LocalEnv, log *zap.Logger) error {
	if _, err := os.Stat(name); err == nil {
		if !env.Overwrite && !inPlace {
			return fmt.Errorf("output file already exists: %s", name)
		}
		log.Debug("Overwriting existing file", zap.String("file", name))
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	return nil
}

func writeStory(ctx context.Context, s *story.Story, name string, inPlace bool, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)
	if err := prepareOutput(name, inPlace, env, log); err != nil {
		return err
	}
	if err := s.Save(name); err != nil {
		return err
	}

	env.Rpt.Store("result-"+filepath.Base(name), name)
	env.Rpt.StoreData("story.txt", []byte(s.String()))
	return nil
}

// flush moves collected diagnostics into log and report.
func flush(ctx context.Context, dc *diag.Collector, log *zap.Logger) {
	dc.Report(log)

	env := state.EnvFromContext(ctx)
	if env.Rpt != nil && dc.Len() > 0 {
		var b strings.Builder
		for _, e := range dc.Entries() {
			b.WriteString(e.String())
			b.WriteByte('\n')
		}
		env.Rpt.StoreData("diagnostics.txt", []byte(b.String()))
	}
}

func countEmotions(s *story.Story) int {
	n := 0
	for _, p := range s.Passages {
		n += len(p.Emotions)
	}
	return n
}
