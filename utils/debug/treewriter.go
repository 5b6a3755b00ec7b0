// Package debug has helpers producing human readable dumps for debug reports.
package debug

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/maruel/natural"
)

const indent = "  "

// TreeWriter accumulates indented lines.
type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) pad(depth int) {
	for range depth {
		tw.w.WriteString(indent)
	}
}

// Line writes formatted line at depth.
func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.pad(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// Field writes "label: value" with value quoted. Empty values are skipped.
func (tw TreeWriter) Field(depth int, label, value string) {
	if len(value) == 0 {
		return
	}
	tw.pad(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(strconv.Quote(value))
	tw.w.WriteByte('\n')
}

// List writes "label: [a b c]" with items in natural order. Empty lists are
// skipped.
func (tw TreeWriter) List(depth int, label string, items []string) {
	if len(items) == 0 {
		return
	}
	sorted := append([]string(nil), items...)
	sort.Sort(natural.StringSlice(sorted))
	tw.Line(depth, "%s: [%s]", label, strings.Join(sorted, " "))
}
