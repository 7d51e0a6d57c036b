// ABOUTME: Tests for settings loading, layering, .env support, and defaults
// ABOUTME: Uses temp directories and t.Setenv for isolated, deterministic runs

package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

// isolate points HOME at an empty dir and clears NIMDECK_* variables.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{EnvBaseURL, EnvAPIKey, EnvModel, EnvMaxTokens} {
		// Setenv registers the restore; Unsetenv makes the key truly absent
		// so godotenv is allowed to populate it.
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return home
}

func TestMerge(t *testing.T) {
	t.Parallel()

	base := &Settings{BaseURL: "http://a", MaxTokens: 512, Locale: "de"}
	top := &Settings{BaseURL: "http://b"}

	got := merge(base, top)
	if got.BaseURL != "http://b" || got.MaxTokens != 512 || got.Locale != "de" {
		t.Errorf("merge = %+v", got)
	}
	if base.BaseURL != "http://a" {
		t.Error("merge mutated base")
	}
	if merge(nil, nil) == nil {
		t.Fatal("merge(nil, nil) returned nil")
	}
}

func TestLoadFileNotExist(t *testing.T) {
	t.Parallel()

	s, err := loadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v; want not-exist", err)
	}
	if s == nil {
		t.Error("loadFile returned nil settings for missing file")
	}
}

func TestLoadFileInvalidYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, path, "base_url: [unterminated")
	if _, err := loadFile(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	s, err := Load(t.TempDir(), Overrides{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.BaseURL != DefaultBaseURL || s.APIKey != DefaultAPIKey || s.DefaultModel != DefaultModel ||
		s.MaxTokens != DefaultMaxTokens || s.AnthropicVersion != DefaultAnthropicVersion || s.Locale != DefaultLocale {
		t.Errorf("defaults = %+v", s)
	}
}

func TestLoadLayering(t *testing.T) {
	home := isolate(t)
	project := t.TempDir()

	writeFile(t, filepath.Join(home, ".nimdeck", "settings.yaml"),
		"base_url: http://global:1\nmax_tokens: 256\nlocale: fr\n")
	writeFile(t, ProjectSettingsFile(project),
		"base_url: http://project:2\nsort: speed\n")

	s, err := Load(project, Overrides{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.BaseURL != "http://project:2" || s.MaxTokens != 256 || s.Locale != "fr" || s.Sort != "speed" {
		t.Errorf("layered = %+v", s)
	}

	t.Setenv(EnvBaseURL, "http://env:3")
	if s, _ = Load(project, Overrides{}); s.BaseURL != "http://env:3" {
		t.Errorf("env BaseURL = %q", s.BaseURL)
	}

	if s, _ = Load(project, Overrides{BaseURL: "http://cli:4", Model: "m"}); s.BaseURL != "http://cli:4" || s.DefaultModel != "m" {
		t.Errorf("cli = %+v", s)
	}
}

func TestLoadDotEnv(t *testing.T) {
	isolate(t)
	project := t.TempDir()
	writeFile(t, filepath.Join(project, ".env"), "NIMDECK_API_KEY=from-dotenv\nNIMDECK_MAX_TOKENS=2048\n")

	s, err := Load(project, Overrides{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.APIKey != "from-dotenv" || s.MaxTokens != 2048 {
		t.Errorf("settings = %+v", s)
	}
}

func TestLoadDotEnvMissingIsFine(t *testing.T) {
	t.Parallel()

	if err := LoadDotEnv(t.TempDir()); err != nil {
		t.Errorf("LoadDotEnv: %v", err)
	}
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("NIMDECK_TEST_HOST", "gpu-box")

	s := &Settings{BaseURL: "http://${NIMDECK_TEST_HOST}:8089", APIKey: "${NIMDECK_UNSET_VAR}"}
	expandSettings(s)
	if s.BaseURL != "http://gpu-box:8089" || s.APIKey != "" {
		t.Errorf("expanded = %+v", s)
	}
}
