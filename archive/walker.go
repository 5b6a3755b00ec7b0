// Package archive gives access to story exports packed into zip files.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

// SkipAll returned by WalkFunc stops the walk without error.
var SkipAll = errors.New("skip remaining archive entries")

// ErrNotFound is returned by ReadFirst when nothing matches.
var ErrNotFound = errors.New("no matching entry in archive")

// WalkFunc is called for each file in archive visited by Walk. Returning
// error other than SkipAll stops processing and the error is returned by Walk.
type WalkFunc func(archive string, file *zip.File) error

// Walk visits files in archive whose names start with prefix in archive
// order. Directory entries are skipped. Archive containing absolute names or
// names with ".." components is rejected.
func Walk(archive, prefix string, walkFn WalkFunc) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() || !strings.HasPrefix(name, prefix) {
			continue
		}
		if err := walkFn(archive, f); err != nil {
			if errors.Is(err, SkipAll) {
				return nil
			}
			return err
		}
	}
	return nil
}

// ReadFirst returns content and header of the first file accepted by match.
func ReadFirst(archive string, match func(*zip.File) bool) ([]byte, *zip.FileHeader, error) {
	var (
		data   []byte
		header *zip.FileHeader
	)
	err := Walk(archive, "", func(_ string, f *zip.File) error {
		if !match(f) {
			return nil
		}
		r, err := f.Open()
		if err != nil {
			return err
		}
		defer r.Close()
		if data, err = io.ReadAll(r); err != nil {
			return err
		}
		header = &f.FileHeader
		return SkipAll
	})
	if err != nil {
		return nil, nil, err
	}
	if header == nil {
		return nil, nil, ErrNotFound
	}
	return data, header, nil
}

func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	for part := range strings.SplitSeq(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
