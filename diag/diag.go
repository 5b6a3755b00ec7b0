// Package diag collects non-fatal data quality findings produced while
// compiling a story. Components record findings here instead of logging, the
// pipeline driver decides how and when to report them.
package diag

import (
	"fmt"
	"slices"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Kind classifies a finding.
type Kind string

const (
	UnresolvedLink    Kind = "unresolved-link"
	AmbiguousTarget   Kind = "ambiguous-target"
	DanglingLink      Kind = "dangling-link"
	Unreachable       Kind = "unreachable-passage"
	BadPassageID      Kind = "bad-passage-id"
	DuplicateName     Kind = "duplicate-name"
	InvalidIFID       Kind = "invalid-ifid"
	NoCharacters      Kind = "no-characters"
	RoleNotInManifest Kind = "role-not-in-manifest"
	NoEmotion         Kind = "no-emotion"
	MissingBackground Kind = "missing-background"
)

// NoPassage is used for findings which are not attached to any passage.
const NoPassage = -1

// Entry is a single finding.
type Entry struct {
	Kind      Kind
	PassageID int
	Message   string
}

func (e Entry) String() string {
	if e.PassageID == NoPassage {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: passage %d: %s", e.Kind, e.PassageID, e.Message)
}

// Collector accumulates findings. It is safe for concurrent use, nil
// collector silently drops everything.
type Collector struct {
	mu      sync.Mutex
	entries []Entry
}

func New() *Collector {
	return &Collector{}
}

// Add records a finding.
func (c *Collector) Add(kind Kind, passageID int, format string, args ...any) {
	if c == nil {
		return
	}
	e := Entry{Kind: kind, PassageID: passageID, Message: fmt.Sprintf(format, args...)}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, e)
}

// Entries returns a copy of all findings ordered by passage id, findings
// for the same passage keep recording order.
func (c *Collector) Entries() []Entry {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	out := slices.Clone(c.entries)
	c.mu.Unlock()

	slices.SortStableFunc(out, func(a, b Entry) int {
		return a.PassageID - b.PassageID
	})
	return out
}

// Count returns number of findings of requested kind.
func (c *Collector) Count(kind Kind) int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, e := range c.entries {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Len returns total number of findings.
func (c *Collector) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Reset drops all findings.
func (c *Collector) Reset() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.entries = nil
	c.mu.Unlock()
}

// Err combines findings of requested kinds into a single error, nil if there
// are none. Useful when caller wants to treat some of the gaps as failures.
func (c *Collector) Err(kinds ...Kind) error {
	var err error
	for _, e := range c.Entries() {
		if slices.Contains(kinds, e.Kind) {
			err = multierr.Append(err, fmt.Errorf("%s", e))
		}
	}
	return err
}

// Report writes collected findings to the log: summary per kind at info
// level and every finding at debug level.
func (c *Collector) Report(log *zap.Logger) {
	if c == nil || log == nil {
		return
	}
	entries := c.Entries()

	counts := make(map[Kind]int)
	var kinds []Kind
	for _, e := range entries {
		if _, ok := counts[e.Kind]; !ok {
			kinds = append(kinds, e.Kind)
		}
		counts[e.Kind]++
		log.Debug("Diagnostic", zap.String("kind", string(e.Kind)), zap.Int("passage", e.PassageID), zap.String("message", e.Message))
	}
	slices.Sort(kinds)
	for _, k := range kinds {
		log.Info("Diagnostics summary", zap.String("kind", string(k)), zap.Int("count", counts[k]))
	}
}
