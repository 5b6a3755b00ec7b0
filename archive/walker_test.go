package archive

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func makeZip(t *testing.T, files [][2]string) string {
	t.Helper()
	zipPath := filepath.Join(t.TempDir(), "test.zip")
	zf, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	w := zip.NewWriter(zf)
	for _, f := range files {
		fw, err := w.Create(f[0])
		if err != nil {
			t.Fatalf("Failed to create file %s in zip: %v", f[0], err)
		}
		if _, err := fw.Write([]byte(f[1])); err != nil {
			t.Fatalf("Failed to write content for %s: %v", f[0], err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	zf.Close()
	return zipPath
}

func TestWalk(t *testing.T) {
	zipPath := makeZip(t, [][2]string{
		{"story/", ""},
		{"story/Story.html", "<html/>"},
		{"story/notes.txt", "notes"},
		{"readme.txt", "readme"},
	})

	tests := []struct {
		prefix string
		want   []string
	}{
		{"story/", []string{"story/Story.html", "story/notes.txt"}},
		{"", []string{"story/Story.html", "story/notes.txt", "readme.txt"}},
		{"Story/", nil},
		{"nothing/", nil},
	}
	for _, tt := range tests {
		t.Run("prefix "+tt.prefix, func(t *testing.T) {
			var visited []string
			err := Walk(zipPath, tt.prefix, func(archive string, file *zip.File) error {
				if archive != zipPath {
					t.Errorf("archive = %s, want %s", archive, zipPath)
				}
				visited = append(visited, file.Name)
				return nil
			})
			if err != nil {
				t.Fatalf("Walk() error = %v", err)
			}
			if strings.Join(visited, ",") != strings.Join(tt.want, ",") {
				t.Errorf("visited %v, want %v", visited, tt.want)
			}
		})
	}
}

func TestWalk_Stop(t *testing.T) {
	zipPath := makeZip(t, [][2]string{{"a.txt", "a"}, {"b.txt", "b"}})

	count := 0
	err := Walk(zipPath, "", func(string, *zip.File) error {
		count++
		return SkipAll
	})
	if err != nil || count != 1 {
		t.Errorf("SkipAll: err = %v, count = %d", err, count)
	}

	boom := errors.New("boom")
	if err := Walk(zipPath, "", func(string, *zip.File) error { return boom }); !errors.Is(err, boom) {
		t.Errorf("Walk() error = %v, want %v", err, boom)
	}
}

func TestWalk_Invalid(t *testing.T) {
	if err := Walk(filepath.Join(t.TempDir(), "missing.zip"), "", func(string, *zip.File) error { return nil }); err == nil {
		t.Error("expected error for nonexistent archive")
	}

	bad := filepath.Join(t.TempDir(), "bad.zip")
	if err := os.WriteFile(bad, []byte("not a zip"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Walk(bad, "", func(string, *zip.File) error { return nil }); err == nil {
		t.Error("expected error for invalid archive")
	}

	unsafe := makeZip(t, [][2]string{{"../evil.html", "x"}})
	if err := Walk(unsafe, "", func(string, *zip.File) error { return nil }); err == nil {
		t.Error("expected error for path traversal")
	}
}

func TestReadFirst(t *testing.T) {
	zipPath := makeZip(t, [][2]string{
		{"readme.txt", "readme"},
		{"export/First.HTML", "first"},
		{"export/second.html", "second"},
	})
	isHTML := func(f *zip.File) bool {
		return strings.EqualFold(filepath.Ext(f.Name), ".html")
	}

	data, hdr, err := ReadFirst(zipPath, isHTML)
	if err != nil {
		t.Fatalf("ReadFirst() error = %v", err)
	}
	if string(data) != "first" || hdr.Name != "export/First.HTML" {
		t.Errorf("ReadFirst() = %q, %q", data, hdr.Name)
	}

	if _, _, err := ReadFirst(zipPath, func(*zip.File) bool { return false }); !errors.Is(err, ErrNotFound) {
		t.Errorf("ReadFirst() error = %v, want ErrNotFound", err)
	}
}
