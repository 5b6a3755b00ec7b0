package convert

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"

	"twc/config"
	"twc/state"
	"twc/story"
)

const storyExt = ".json"

// buildOutputPath returns output file name. When dst is an existing
// directory (or ends with path separator) file name is derived from story
// name or, failing that, from source file name.
func buildOutputPath(s *story.Story, srcName, dst string, env *state.LocalEnv) string {
	if !isDirTarget(dst) {
		return dst
	}
	return filepath.Join(dst, outputFileName(s, srcName, env))
}

func isDirTarget(dst string) bool {
	if strings.HasSuffix(dst, string(os.PathSeparator)) || strings.HasSuffix(dst, "/") {
		return true
	}
	fi, err := os.Stat(dst)
	return err == nil && fi.IsDir()
}

func outputFileName(s *story.Story, srcName string, env *state.LocalEnv) string {
	base := strings.TrimSuffix(filepath.Base(srcName), filepath.Ext(srcName))
	if env.Cfg != nil && env.Cfg.Story.SlugNames {
		if name := slug.Make(s.Name); len(name) > 0 {
			base = name
		} else {
			base = slug.Make(base)
		}
	}
	return config.CleanFileName(base) + storyExt
}
