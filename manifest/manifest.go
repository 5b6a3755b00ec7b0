// Package manifest reads asset manifest produced for the rendering front end.
// Only character and background sections are of interest here: character
// assets declare which emotions can be shown for each role.
package manifest

import (
	"fmt"
	"os"
	"path"
	"slices"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/maruel/natural"
)

// Manifest is read-only view of the asset manifest.
type Manifest struct {
	Backgrounds []string            `json:"backgrounds"`
	Characters  map[string][]string `json:"characters"`

	roles       map[string]*Assets
	backgrounds map[string]bool
}

// Assets lists emotion tags available for a single manifest key.
type Assets struct {
	Key  string
	Tags []string
}

// Has reports whether emotion tag is available.
func (a *Assets) Has(tag string) bool {
	return a != nil && slices.Contains(a.Tags, strings.ToLower(tag))
}

// Load reads and indexes manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("unable to parse manifest %q: %w", path, err)
	}
	return m, nil
}

// Parse decodes and indexes manifest JSON.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	m.index()
	return &m, nil
}

// New builds manifest from character asset lists.
func New(characters map[string][]string, backgrounds ...string) *Manifest {
	m := &Manifest{Characters: characters, Backgrounds: backgrounds}
	m.index()
	return m
}

func (m *Manifest) index() {
	m.roles = make(map[string]*Assets, len(m.Characters))
	for key, files := range m.Characters {
		a := &Assets{Key: key}
		for _, f := range files {
			if tag := EmotionTag(key, f); len(tag) > 0 && !slices.Contains(a.Tags, tag) {
				a.Tags = append(a.Tags, tag)
			}
		}
		sort.Sort(natural.StringSlice(a.Tags))
		m.roles[strings.ToLower(key)] = a
	}
	m.backgrounds = make(map[string]bool, len(m.Backgrounds))
	for _, b := range m.Backgrounds {
		m.backgrounds[stem(b)] = true
	}
}

// Lookup returns assets for the first of the keys present in manifest.
func (m *Manifest) Lookup(keys ...string) (*Assets, bool) {
	for _, k := range keys {
		if a, ok := m.roles[strings.ToLower(k)]; ok {
			return a, true
		}
	}
	return nil, false
}

// Keys returns character keys in natural order.
func (m *Manifest) Keys() []string {
	keys := make([]string, 0, len(m.roles))
	for _, a := range m.roles {
		keys = append(keys, a.Key)
	}
	sort.Sort(natural.StringSlice(keys))
	return keys
}

// HasBackground reports whether background asset with given name (without
// directory and extension) is declared. Manifest without backgrounds accepts
// anything.
func (m *Manifest) HasBackground(name string) bool {
	if len(m.backgrounds) == 0 {
		return true
	}
	return m.backgrounds[strings.ToLower(name)]
}

func stem(file string) string {
	base := path.Base(strings.ReplaceAll(file, `\`, "/"))
	return strings.ToLower(strings.TrimSuffix(base, path.Ext(base)))
}
