// Package story is the scene graph consumed by the rendering front end.
package story

import (
	"bytes"
	"fmt"
	"os"

	json "github.com/goccy/go-json"

	"twc/links"
)

const (
	SchemaName    = "twc-story"
	SchemaVersion = 1
)

// CharacterEmotion is expression a character shows in a passage.
type CharacterEmotion struct {
	Character string `json:"character"`
	Emotion   string `json:"emotion"`
}

// Passage is single node of the story graph.
type Passage struct {
	ID         int                `json:"id"`
	Name       string             `json:"name"`
	Tags       []string           `json:"tags,omitempty"`
	Text       string             `json:"text"`
	CleanText  string             `json:"cleanText"`
	Links      []links.Link       `json:"links"`
	Background string             `json:"background"`
	Speaker    string             `json:"speaker,omitempty"`
	Emotions   []CharacterEmotion `json:"emotions,omitempty"`
}

// Story is the complete graph with header fields taken from the export.
type Story struct {
	UUID           string     `json:"uuid,omitempty"`
	Name           string     `json:"name,omitempty"`
	Creator        string     `json:"creator,omitempty"`
	CreatorVersion string     `json:"creatorVersion,omitempty"`
	Format         string     `json:"format,omitempty"`
	FormatVersion  string     `json:"formatVersion,omitempty"`
	StartPassage   int        `json:"startPassage,omitempty"`
	SchemaName     string     `json:"schemaName,omitempty"`
	SchemaVersion  int        `json:"schemaVersion,omitempty"`
	CreatedAtMs    int64      `json:"createdAtMs,omitempty"`
	Passages       []*Passage `json:"passages"`
}

// Passage returns passage with given id.
func (s *Story) Passage(id int) (*Passage, bool) {
	for _, p := range s.Passages {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// Marshal produces indented JSON the front end expects.
func (s *Story) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Save writes story to file.
func (s *Story) Save(path string) error {
	data, err := s.Marshal()
	if err != nil {
		return fmt.Errorf("unable to encode story: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("unable to write story: %w", err)
	}
	return nil
}

// Unmarshal decodes story JSON.
func Unmarshal(data []byte) (*Story, error) {
	var s Story
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&s); err != nil {
		return nil, err
	}
	for i, p := range s.Passages {
		if p == nil {
			return nil, fmt.Errorf("passage entry %d is empty", i)
		}
		if p.Links == nil {
			p.Links = []links.Link{}
		}
	}
	return &s, nil
}

// Load reads story from file.
func Load(path string) (*Story, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read story: %w", err)
	}
	s, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("unable to parse story %q: %w", path, err)
	}
	return s, nil
}
