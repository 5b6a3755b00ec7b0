package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"twc/classify"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	// StoryConfig tunes conversion and enrichment.
	StoryConfig struct {
		DefaultBackground  string              `yaml:"default_background" validate:"required"`
		Workers            int                 `yaml:"workers" validate:"gte=0"`
		SlugNames          bool                `yaml:"slug_names"`
		CharacterConfig    string              `yaml:"character_config,omitempty" validate:"omitempty,filepath"`
		ProtagonistAliases []string            `yaml:"protagonist_aliases" validate:"dive,required"`
		IgnoredNames       []string            `yaml:"ignored_names" validate:"dive,required"`
		Scenes             []classify.Category `yaml:"scenes,omitempty" validate:"dive"`
		Emotions           []classify.Category `yaml:"emotions,omitempty" validate:"dive"`
	}

	// WatchConfig tunes watch command.
	WatchConfig struct {
		DebounceMs int `yaml:"debounce_ms" validate:"min=0,max=60000"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Story     StoryConfig    `yaml:"story"`
		Watch     WatchConfig    `yaml:"watch"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// only fields we defined are allowed
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration expands embedded template to get defaults and
// superimposes configuration file at path (if any) on top of it. Result is
// sanitized and validated.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare returns expanded configuration template.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
