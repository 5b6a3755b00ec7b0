package manifest

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

const sample = `{
    "backgrounds": ["bg/scenery_0.png", "bg/scenery_4.jpg"],
    "characters": {
        "main_char": ["happy.png", "Stressed.PNG", "hero_smiling.png", "surprised.jpg"],
        "npc_3": ["npc_3_angry.png", "angry2.png", "angry10.png"],
        "npc_2": []
    },
    "audio": {"bgm": ["bg.mp3"], "choices": [], "voices": []},
    "ui": ["UI/box.png"],
    "fonts": {"bitmap": {"texture": "fonts/f.png", "data": "fonts/f.xml"}}
}`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	a, ok := m.Lookup("protagonist", "main_char")
	if !ok {
		t.Fatal("main_char must be found")
	}
	if a.Key != "main_char" {
		t.Errorf("Key = %q", a.Key)
	}
	if want := []string{"happy", "stressed", "surprised"}; !slices.Equal(a.Tags, want) {
		t.Errorf("Tags = %v, want %v", a.Tags, want)
	}
	if !a.Has("Stressed") || a.Has("angry") {
		t.Error("Has() mismatch")
	}

	npc3, ok := m.Lookup("npc_3")
	if !ok {
		t.Fatal("npc_3 must be found")
	}
	if want := []string{"angry", "angry2", "angry10"}; !slices.Equal(npc3.Tags, want) {
		t.Errorf("Tags = %v, want %v", npc3.Tags, want)
	}

	if npc2, ok := m.Lookup("npc_2"); !ok || len(npc2.Tags) != 0 {
		t.Errorf("npc_2 = %+v, %v", npc2, ok)
	}
	if _, ok := m.Lookup("npc_1"); ok {
		t.Error("npc_1 must not be found")
	}

	if !m.HasBackground("scenery_4") || m.HasBackground("scenery_5") {
		t.Error("HasBackground() mismatch")
	}
	if got := m.Keys(); !slices.Equal(got, []string{"main_char", "npc_2", "npc_3"}) {
		t.Errorf("Keys() = %v", got)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte(`{"characters": [}`)); err == nil {
		t.Error("expected error")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")
	if err := os.WriteFile(path, []byte(sample), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err != nil {
		t.Errorf("Load() error = %v", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing manifest")
	}
}

func TestEmotionTag(t *testing.T) {
	tests := []struct {
		key, file, want string
	}{
		{"main_char", "happy.png", "happy"},
		{"main_char", "characters/main_char/Sad.png", "sad"},
		{"main_char", "main_char_crying.png", "crying"},
		{"main_char", "HeroAngry.png", "angry"},
		{"main_char", "hero_smiling.png", "happy"},
		{"npc_1", "scared.jpeg", "stressed"},
		{"npc_1", "proud.png", "proud"},
		{"npc_1", "hero.png", "hero"},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			if got := EmotionTag(tt.key, tt.file); got != tt.want {
				t.Errorf("EmotionTag(%q, %q) = %q, want %q", tt.key, tt.file, got, tt.want)
			}
		})
	}
}

func TestHasBackground_Empty(t *testing.T) {
	m := New(map[string][]string{"protagonist": {"happy.png"}})
	if !m.HasBackground("anything") {
		t.Error("manifest without backgrounds must accept any background")
	}
}
