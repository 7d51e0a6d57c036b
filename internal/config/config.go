// ABOUTME: Settings loading: global + project YAML files, .env, environment, CLI overrides
// ABOUTME: Later layers override earlier ones field by field when non-zero

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults applied after all layers are merged.
const (
	DefaultBaseURL          = "http://localhost:8089"
	DefaultAPIKey           = "demo"
	DefaultModel            = "meta/llama-3.1-8b-instruct"
	DefaultMaxTokens        = 1024
	DefaultAnthropicVersion = "2023-06-01"
	DefaultLocale           = "en"
)

// Settings holds the merged configuration.
type Settings struct {
	BaseURL          string `yaml:"base_url,omitempty"`
	APIKey           string `yaml:"api_key,omitempty"`
	DefaultModel     string `yaml:"default_model,omitempty"`
	MaxTokens        int    `yaml:"max_tokens,omitempty"`
	AnthropicVersion string `yaml:"anthropic_version,omitempty"`
	Locale           string `yaml:"locale,omitempty"`
	Sort             string `yaml:"sort,omitempty"`
	SpeedFilter      string `yaml:"speed_filter,omitempty"`
}

// Overrides carries command-line values; empty fields are ignored.
type Overrides struct {
	BaseURL string
	APIKey  string
	Model   string
}

// Load resolves settings for projectRoot. Precedence, lowest first:
// global file, project file, .env in projectRoot, NIMDECK_* environment,
// CLI overrides, built-in defaults for anything still unset.
func Load(projectRoot string, cli Overrides) (*Settings, error) {
	global, err := loadFile(GlobalSettingsFile())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading global settings: %w", err)
	}

	project, err := loadFile(ProjectSettingsFile(projectRoot))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading project settings: %w", err)
	}

	if err := LoadDotEnv(projectRoot); err != nil {
		return nil, err
	}

	s := merge(global, project)
	s = merge(s, fromEnv())
	s = merge(s, &Settings{BaseURL: cli.BaseURL, APIKey: cli.APIKey, DefaultModel: cli.Model})
	expandSettings(s)
	applyDefaults(s)
	return s, nil
}

// loadFile reads Settings from a YAML file. A missing file yields an empty
// Settings and an fs.ErrNotExist error.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// merge overlays non-zero fields of top onto base.
func merge(base, top *Settings) *Settings {
	if base == nil {
		base = &Settings{}
	}
	if top == nil {
		return base
	}

	result := *base
	if top.BaseURL != "" {
		result.BaseURL = top.BaseURL
	}
	if top.APIKey != "" {
		result.APIKey = top.APIKey
	}
	if top.DefaultModel != "" {
		result.DefaultModel = top.DefaultModel
	}
	if top.MaxTokens != 0 {
		result.MaxTokens = top.MaxTokens
	}
	if top.AnthropicVersion != "" {
		result.AnthropicVersion = top.AnthropicVersion
	}
	if top.Locale != "" {
		result.Locale = top.Locale
	}
	if top.Sort != "" {
		result.Sort = top.Sort
	}
	if top.SpeedFilter != "" {
		result.SpeedFilter = top.SpeedFilter
	}
	return &result
}

func applyDefaults(s *Settings) {
	if s.BaseURL == "" {
		s.BaseURL = DefaultBaseURL
	}
	if s.APIKey == "" {
		s.APIKey = DefaultAPIKey
	}
	if s.DefaultModel == "" {
		s.DefaultModel = DefaultModel
	}
	if s.MaxTokens <= 0 {
		s.MaxTokens = DefaultMaxTokens
	}
	if s.AnthropicVersion == "" {
		s.AnthropicVersion = DefaultAnthropicVersion
	}
	if s.Locale == "" {
		s.Locale = DefaultLocale
	}
}
