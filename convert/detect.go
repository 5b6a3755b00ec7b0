package convert

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

// enough to recognize any supported binary signature
const sniffLen = 262

func sniff(r io.Reader) ([]byte, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return head[:n], nil
}

func isArchiveFile(path string) (bool, error) {
	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		return false, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	head, err := sniff(f)
	if err != nil {
		return false, err
	}
	return filetype.Is(head, "zip"), nil
}

func hasStoryExt(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".html" || ext == ".htm"
}

// isStoryFile accepts text files with html extension. Markup itself is
// checked by the parser.
func isStoryFile(path string) (bool, error) {
	if !hasStoryExt(path) {
		return false, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	head, err := sniff(f)
	if err != nil {
		return false, err
	}
	kind, _ := filetype.Match(head)
	return kind == filetype.Unknown, nil
}

func isStoryInArchive(f *zip.File) bool {
	return hasStoryExt(f.Name)
}
