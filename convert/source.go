package convert

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"twc/archive"
	"twc/state"
)

// source is story export read into memory.
type source struct {
	// path to file on disk, inside archive it is path to archive
	path string
	// name of the story file, inside archive it is entry name
	name string
	data []byte
}

// readSource loads story export. src may be html file, directory (first
// html file in natural order is used) or zip archive with html file in it.
func readSource(ctx context.Context, src string, log *zap.Logger) (*source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fi, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("input source was not found: %w", err)
	}

	if fi.IsDir() {
		name, err := firstStoryInDir(src)
		if err != nil {
			return nil, err
		}
		log.Debug("Using story file from directory", zap.String("dir", src), zap.String("file", name))
		src = filepath.Join(src, name)
	} else if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("unexpected path mode for %s", src)
	}

	arc, err := isArchiveFile(src)
	if err != nil {
		return nil, fmt.Errorf("unable to check archive type: %w", err)
	}
	if arc {
		return readArchive(ctx, src, log)
	}

	story, err := isStoryFile(src)
	if err != nil {
		return nil, fmt.Errorf("unable to check file type: %w", err)
	}
	if !story {
		return nil, fmt.Errorf("input was not recognized as story export (%s)", src)
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("unable to read story: %w", err)
	}
	return &source{path: src, name: filepath.Base(src), data: data}, nil
}

func firstStoryInDir(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("unable to read directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && (hasStoryExt(e.Name()) || strings.EqualFold(filepath.Ext(e.Name()), ".zip")) {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no story export found in %s", dir)
	}
	sort.Sort(natural.StringSlice(names))
	for _, n := range names {
		if hasStoryExt(n) {
			return n, nil
		}
	}
	return names[0], nil
}

func readArchive(ctx context.Context, path string, log *zap.Logger) (*source, error) {
	data, hdr, err := archive.ReadFirst(path, isStoryInArchive)
	if errors.Is(err, archive.ErrNotFound) {
		return nil, fmt.Errorf("no story export found in archive %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read archive: %w", err)
	}
	name := entryName(ctx, hdr, log)
	log.Debug("Using story file from archive", zap.String("archive", path), zap.String("file", name))
	return &source{path: path, name: filepath.Base(filepath.FromSlash(name)), data: data}, nil
}

// entryName decodes entry name using forced code page when archive does not
// mark it as UTF-8.
func entryName(ctx context.Context, hdr *zip.FileHeader, log *zap.Logger) string {
	cp := state.EnvFromContext(ctx).CodePage
	if cp == nil || !hdr.NonUTF8 {
		return hdr.Name
	}
	n, err := cp.NewDecoder().String(hdr.Name)
	if err != nil {
		cs, _ := ianaindex.IANA.Name(cp)
		log.Warn("Unable to convert archive name from specified encoding",
			zap.String("charset", cs), zap.String("path", hdr.Name), zap.Error(err))
		return hdr.Name
	}
	return n
}
