package convert

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

func TestReadSource(t *testing.T) {
	ctx, env := setupTestEnv(t)
	dir := t.TempDir()

	t.Run("file", func(t *testing.T) {
		path := writeFile(t, filepath.Join(dir, "file", "door.html"), []byte(sampleExport))
		src, err := readSource(ctx, path, env.Log)
		if err != nil {
			t.Fatalf("readSource() error = %v", err)
		}
		if src.path != path || src.name != "door.html" || string(src.data) != sampleExport {
			t.Errorf("unexpected source %q %q", src.path, src.name)
		}
	})

	t.Run("directory in natural order", func(t *testing.T) {
		sub := filepath.Join(dir, "dir")
		writeFile(t, filepath.Join(sub, "story10.html"), []byte("ten"))
		writeFile(t, filepath.Join(sub, "story2.html"), []byte("two"))
		writeFile(t, filepath.Join(sub, "notes.txt"), []byte("skip"))
		src, err := readSource(ctx, sub, env.Log)
		if err != nil {
			t.Fatalf("readSource() error = %v", err)
		}
		if src.name != "story2.html" || string(src.data) != "two" {
			t.Errorf("picked %q", src.name)
		}
	})

	t.Run("directory prefers html over archive", func(t *testing.T) {
		sub := filepath.Join(dir, "mixed")
		if err := os.MkdirAll(sub, 0755); err != nil {
			t.Fatal(err)
		}
		writeZip(t, filepath.Join(sub, "a.zip"), map[string]string{"inner.html": "zipped"})
		writeFile(t, filepath.Join(sub, "b.html"), []byte("plain"))
		src, err := readSource(ctx, sub, env.Log)
		if err != nil {
			t.Fatalf("readSource() error = %v", err)
		}
		if src.name != "b.html" {
			t.Errorf("picked %q", src.name)
		}
	})

	t.Run("archive", func(t *testing.T) {
		path := writeZip(t, filepath.Join(dir, "export.zip"), map[string]string{
			"readme.txt":          "skip",
			"published/door.html": sampleExport,
		})
		src, err := readSource(ctx, path, env.Log)
		if err != nil {
			t.Fatalf("readSource() error = %v", err)
		}
		if src.path != path || src.name != "door.html" || string(src.data) != sampleExport {
			t.Errorf("unexpected source %q %q", src.path, src.name)
		}
	})

	t.Run("archive without story", func(t *testing.T) {
		path := writeZip(t, filepath.Join(dir, "empty.zip"), map[string]string{"readme.txt": "skip"})
		if _, err := readSource(ctx, path, env.Log); err == nil || !strings.Contains(err.Error(), "no story export") {
			t.Errorf("readSource() error = %v", err)
		}
	})

	t.Run("empty directory", func(t *testing.T) {
		sub := filepath.Join(dir, "nothing")
		if err := os.MkdirAll(sub, 0755); err != nil {
			t.Fatal(err)
		}
		if _, err := readSource(ctx, sub, env.Log); err == nil {
			t.Error("expected error for empty directory")
		}
	})

	t.Run("missing", func(t *testing.T) {
		if _, err := readSource(ctx, filepath.Join(dir, "missing.html"), env.Log); err == nil {
			t.Error("expected error for missing source")
		}
	})

	t.Run("not a story", func(t *testing.T) {
		path := writeFile(t, filepath.Join(dir, "notes.txt"), []byte("text"))
		if _, err := readSource(ctx, path, env.Log); err == nil {
			t.Error("expected error for unsupported file")
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		if _, err := readSource(cctx, dir, env.Log); err == nil {
			t.Error("expected error for cancelled context")
		}
	})
}

func TestReadSource_CodePage(t *testing.T) {
	ctx, env := setupTestEnv(t)

	name, err := charmap.CodePage866.NewEncoder().String("история.html")
	if err != nil {
		t.Fatalf("encode name: %v", err)
	}
	path := filepath.Join(t.TempDir(), "legacy.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w := zip.NewWriter(f)
	e, err := w.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, NonUTF8: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.Write([]byte(sampleExport)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	env.CodePage = charmap.CodePage866
	src, err := readSource(ctx, path, env.Log)
	if err != nil {
		t.Fatalf("readSource() error = %v", err)
	}
	if src.name != "история.html" {
		t.Errorf("name = %q", src.name)
	}

	env.CodePage = nil
	src, err = readSource(ctx, path, env.Log)
	if err != nil {
		t.Fatalf("readSource() error = %v", err)
	}
	if src.name != name {
		t.Errorf("raw name = %q", src.name)
	}
}
