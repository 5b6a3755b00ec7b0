package config

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/maruel/natural"
	"go.uber.org/multierr"

	"twc/misc"
)

type ReporterConfig struct {
	Destination string `yaml:"destination" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required,filepath"`
}

// Prepare creates empty report. When destination cannot be created report
// goes to temporary directory.
func (conf *ReporterConfig) Prepare() (*Report, error) {
	r := &Report{entries: make(map[string]entry)}

	f, err := os.Create(conf.Destination)
	if err != nil {
		if f, err = os.CreateTemp("", misc.GetAppName()+"-report.*.zip"); err != nil {
			return nil, fmt.Errorf("unable to create report: %w", err)
		}
	}
	r.file = f
	return r, nil
}

type entry struct {
	original string
	actual   string
	stamp    time.Time
	data     []byte
}

// Report accumulates everything needed for debug archive. It is safe for
// concurrent use, nil report ignores all calls.
type Report struct {
	mu      sync.Mutex
	entries map[string]entry
	file    *os.File
}

// Close writes the archive and removes stored directories.
func (r *Report) Close() error {
	if r == nil || r.file == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.finalize()
	err = multierr.Append(err, r.file.Close())
	for _, e := range r.entries {
		if len(e.actual) == 0 {
			continue
		}
		if info, serr := os.Stat(e.actual); serr == nil && info.IsDir() {
			err = multierr.Append(err, os.RemoveAll(e.actual))
		}
	}
	return err
}

// Name returns absolute name of the archive.
func (r *Report) Name() string {
	if r == nil || r.file == nil {
		return ""
	}
	if n, err := filepath.Abs(r.file.Name()); err == nil {
		return n
	}
	return r.file.Name()
}

// Store remembers file or directory to be put into archive when report is
// closed. Directories are removed afterwards.
func (r *Report) Store(name, path string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, exists := r.entries[name]; exists && old.original != path {
		panic(fmt.Sprintf("attempt to overwrite report entry [%s]: was %s, now %s", name, old.original, path))
	}
	e := entry{original: path, actual: path}
	if p, err := filepath.Abs(path); err == nil {
		e.actual = p
	}
	r.entries[name] = e
}

// StoreData puts data into archive under name. Repeated names get time stamp
// suffix.
func (r *Report) StoreData(name string, data []byte) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	e := entry{data: data, stamp: time.Now()}
	r.entries[r.unique(name, e.stamp)] = e
}

// StoreCopy copies file at path into temporary location right away, so
// later changes to the file do not affect the report.
func (r *Report) StoreCopy(name, path string) error {
	if r == nil {
		return nil
	}

	src, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("not a regular file: %s", path)
	}

	dir, err := os.MkdirTemp("", misc.GetAppName()+"-r-")
	if err != nil {
		return err
	}
	if err := copyFile(filepath.Join(dir, filepath.Base(src)), src, info.ModTime()); err != nil {
		return multierr.Append(err, os.RemoveAll(dir))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e := entry{original: path, actual: dir, stamp: time.Now()}
	r.entries[r.unique(name, e.stamp)] = e
	return nil
}

func (r *Report) unique(name string, stamp time.Time) string {
	if _, exists := r.entries[name]; exists {
		return fmt.Sprintf("%s-%d", name, stamp.UnixNano())
	}
	return name
}

func copyFile(dst, src string, modTime time.Time) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dst, modTime, modTime)
}

func (r *Report) finalize() error {
	arc := zip.NewWriter(r.file)

	names := make([]string, 0, len(r.entries))
	for k := range r.entries {
		names = append(names, k)
	}
	sort.Sort(natural.StringSlice(names))

	now := time.Now()
	manifest := new(bytes.Buffer)
	for _, k := range names {
		e := r.entries[k]
		if e.stamp.IsZero() {
			e.stamp = now
		}
		fmt.Fprintf(manifest, "%s\t%s\t%s : %s\n", e.stamp.UTC().Format(time.UnixDate), k, e.original, e.actual)
	}
	if err := saveFile(arc, "MANIFEST", now, manifest); err != nil {
		return multierr.Append(err, arc.Close())
	}

	for _, name := range names {
		if err := r.save(arc, name, r.entries[name]); err != nil {
			return multierr.Append(err, arc.Close())
		}
	}
	return arc.Close()
}

func (r *Report) save(arc *zip.Writer, name string, e entry) error {
	if len(e.data) > 0 {
		return saveFile(arc, name, e.stamp, bytes.NewReader(e.data))
	}
	info, err := os.Stat(e.actual)
	if err != nil {
		// absent files are ignored
		return nil
	}
	switch {
	case info.Mode().IsRegular():
		f, err := os.Open(e.actual)
		if err != nil {
			return err
		}
		defer f.Close()
		return saveFile(arc, name, info.ModTime(), f)
	case info.IsDir():
		return saveDir(arc, name, e.actual)
	}
	return nil
}

func saveFile(dst *zip.Writer, name string, t time.Time, src io.Reader) error {
	w, err := dst.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: t})
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}

func saveDir(dst *zip.Writer, name, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return saveFile(dst, filepath.ToSlash(filepath.Join(name, rel)), info.ModTime(), f)
	})
}
