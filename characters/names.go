package characters

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	json "github.com/goccy/go-json"
)

// Names binds roles to in-story character names. Produced by a setup step
// outside of this program and stored as JSON.
type Names struct {
	Protagonist string `json:"main_character"`
	NPC1        string `json:"npc_1"`
	NPC2        string `json:"npc_2"`
	NPC3        string `json:"npc_3"`
}

// LoadNames reads character configuration. Absent file is not an error,
// nil is returned and detection falls back to generic keywords.
func LoadNames(path string) (*Names, error) {
	if len(path) == 0 {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read character configuration: %w", err)
	}
	var n Names
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("unable to parse character configuration %q: %w", path, err)
	}
	n.normalize()
	return &n, nil
}

func (n *Names) normalize() {
	for _, s := range []*string{&n.Protagonist, &n.NPC1, &n.NPC2, &n.NPC3} {
		*s = strings.ToLower(strings.TrimSpace(*s))
	}
}

// byRole returns configured names in slot order, empty names are skipped.
func (n *Names) byRole() []roleKeywords {
	var out []roleKeywords
	for _, rk := range []roleKeywords{
		{Protagonist, []string{n.Protagonist}},
		{NPC1, []string{n.NPC1}},
		{NPC2, []string{n.NPC2}},
		{NPC3, []string{n.NPC3}},
	} {
		if len(rk.keywords[0]) > 0 {
			out = append(out, rk)
		}
	}
	return out
}
