package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"twc/diag"
	"twc/state"
	"twc/story"
	"twc/twine"
)

// prepareEnv copies command flags into environment.
func prepareEnv(ctx context.Context, cmd *cli.Command, log *zap.Logger) {
	env := state.EnvFromContext(ctx)
	env.Overwrite = cmd.Bool("overwrite")
	env.Characters = cmd.String("characters")

	// zip does not define file name encoding, old archives may need archaic code page
	if cp := cmd.String("force-zip-cp"); len(cp) > 0 {
		enc, err := ianaindex.IANA.Encoding(cp)
		if err != nil || enc == nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
			env.CodePage = nil
			return
		}
		env.CodePage = enc
		n, _ := ianaindex.IANA.Name(enc)
		log.Debug("Forcefully converting all non UTF-8 file names in archives", zap.String("charset", n))
	}
}

func absArg(cmd *cli.Command, i int, what string) (string, error) {
	arg := cmd.Args().Get(i)
	if len(arg) == 0 {
		return "", fmt.Errorf("no %s has been specified", what)
	}
	return filepath.Abs(arg)
}

func optionalArg(cmd *cli.Command, i int, def string) (string, error) {
	arg := cmd.Args().Get(i)
	if len(arg) == 0 {
		return def, nil
	}
	return filepath.Abs(arg)
}

func tooMany(cmd *cli.Command, n int, log *zap.Logger) {
	if cmd.Args().Len() > n {
		log.Warn("Malformed command line, too many arguments", zap.Strings("ignoring", cmd.Args().Slice()[n:]))
	}
}

func timed(log *zap.Logger, msg string) func() {
	start := time.Now()
	return func() {
		log.Info(msg, zap.Duration("elapsed", time.Since(start)))
	}
}

// Convert runs parse stage: story export to story graph.
func Convert(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	src, err := absArg(cmd, 0, "input source")
	if err != nil {
		return err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("unable to get working directory: %w", err)
	}
	dst, err := optionalArg(cmd, 1, cwd)
	if err != nil {
		return err
	}
	tooMany(cmd, 2, log)
	prepareEnv(ctx, cmd, log)

	log.Info("Conversion starting", zap.String("source", src), zap.String("destination", dst))
	defer timed(log, "Conversion completed")()

	return convertStory(ctx, src, dst, log)
}

func convertStory(ctx context.Context, src, dst string, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	in, err := readSource(ctx, src, log)
	if err != nil {
		return err
	}
	storeInput(env, in, log)

	dc := diag.New()
	defer flush(ctx, dc, log)

	s, err := parseStory(ctx, in, dc)
	if err != nil {
		return err
	}

	out := buildOutputPath(s, in.name, dst, env)
	if err := writeStory(ctx, s, out, false, log); err != nil {
		return err
	}
	log.Info("Story written", zap.String("file", out), zap.Int("passages", len(s.Passages)))
	return nil
}

// Emotions runs enrichment stage on previously converted story.
func Emotions(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("emotions")

	storyPath, err := absArg(cmd, 0, "story")
	if err != nil {
		return err
	}
	manifestPath, err := absArg(cmd, 1, "manifest")
	if err != nil {
		return err
	}
	dst, err := optionalArg(cmd, 2, storyPath)
	if err != nil {
		return err
	}
	tooMany(cmd, 3, log)
	prepareEnv(ctx, cmd, log)

	log.Info("Enrichment starting", zap.String("story", storyPath), zap.String("manifest", manifestPath), zap.String("destination", dst))
	defer timed(log, "Enrichment completed")()

	return enrichStory(ctx, storyPath, manifestPath, dst, log)
}

func enrichStory(ctx context.Context, storyPath, manifestPath, dst string, log *zap.Logger) error {
	s, err := story.Load(storyPath)
	if err != nil {
		return err
	}

	dc := diag.New()
	defer flush(ctx, dc, log)

	if err := enrich(ctx, s, manifestPath, dc); err != nil {
		return err
	}

	out := buildOutputPath(s, filepath.Base(storyPath), dst, state.EnvFromContext(ctx))
	if err := writeStory(ctx, s, out, out == storyPath, log); err != nil {
		return err
	}
	log.Info("Enhanced story written", zap.String("file", out),
		zap.Int("emotions", countEmotions(s)), zap.Int("passages", len(s.Passages)))
	return nil
}

// Process runs complete pipeline: export to enriched story graph.
func Process(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("process")

	src, manifestPath, dst, err := processArgs(cmd, log)
	if err != nil {
		return err
	}
	prepareEnv(ctx, cmd, log)

	log.Info("Processing starting", zap.String("source", src), zap.String("manifest", manifestPath), zap.String("destination", dst))
	defer timed(log, "Processing completed")()

	return processStory(ctx, src, manifestPath, dst, false, log)
}

func processArgs(cmd *cli.Command, log *zap.Logger) (src, manifestPath, dst string, err error) {
	if src, err = absArg(cmd, 0, "input source"); err != nil {
		return
	}
	if manifestPath, err = absArg(cmd, 1, "manifest"); err != nil {
		return
	}
	var cwd string
	if cwd, err = os.Getwd(); err != nil {
		err = fmt.Errorf("unable to get working directory: %w", err)
		return
	}
	if dst, err = optionalArg(cmd, 2, cwd); err != nil {
		return
	}
	tooMany(cmd, 3, log)
	return
}

func processStory(ctx context.Context, src, manifestPath, dst string, replace bool, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	in, err := readSource(ctx, src, log)
	if err != nil {
		return err
	}
	storeInput(env, in, log)

	dc := diag.New()
	defer flush(ctx, dc, log)

	s, err := parseStory(ctx, in, dc)
	if err != nil {
		return err
	}
	if err := enrich(ctx, s, manifestPath, dc); err != nil {
		return err
	}

	out := buildOutputPath(s, in.name, dst, env)
	if err := writeStory(ctx, s, out, replace, log); err != nil {
		return err
	}
	log.Info("Story written", zap.String("file", out),
		zap.Int("passages", len(s.Passages)), zap.Int("emotions", countEmotions(s)))
	return nil
}

// Trim cuts story data out of published export.
func Trim(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("trim")

	src, err := absArg(cmd, 0, "input source")
	if err != nil {
		return err
	}
	dst, err := absArg(cmd, 1, "destination")
	if err != nil {
		return err
	}
	tooMany(cmd, 2, log)
	prepareEnv(ctx, cmd, log)

	return trimStory(ctx, src, dst, log)
}

func trimStory(ctx context.Context, src, dst string, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	in, err := readSource(ctx, src, log)
	if err != nil {
		return err
	}
	data, err := twine.Trim(in.data)
	if err != nil {
		return fmt.Errorf("unable to trim story export (%s): %w", in.name, err)
	}
	if isDirTarget(dst) {
		dst = filepath.Join(dst, in.name)
	}
	if err := prepareOutput(dst, false, env, log); err != nil {
		return err
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("unable to write trimmed story: %w", err)
	}
	env.Rpt.Store("result-"+filepath.Base(dst), dst)
	log.Info("Trimmed story written", zap.String("file", dst), zap.Int("bytes", len(data)))
	return nil
}

// Watch keeps re-running complete pipeline whenever source, manifest or
// character configuration changes.
func Watch(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("watch")

	src, manifestPath, dst, err := processArgs(cmd, log)
	if err != nil {
		return err
	}
	prepareEnv(ctx, cmd, log)

	delay := time.Duration(env.Cfg.Watch.DebounceMs) * time.Millisecond
	paths := []string{src, manifestPath, env.CharacterConfig()}
	return watch(ctx, paths, delay, func(ctx context.Context) error {
		return processStory(ctx, src, manifestPath, dst, true, log)
	}, log)
}

func storeInput(env *state.LocalEnv, in *source, log *zap.Logger) {
	if env.Rpt == nil {
		return
	}
	if err := env.Rpt.StoreCopy("input", in.path); err != nil {
		log.Warn("Unable to store input in debug report", zap.Error(err))
	}
}

// IsMalformed reports whether err was caused by broken story markup.
func IsMalformed(err error) bool {
	var me *twine.MalformedInputError
	return errors.As(err, &me)
}
