// ABOUTME: Environment layer: optional .env file via godotenv, NIMDECK_* variables,
// ABOUTME: and ${VAR} expansion inside string settings

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvBaseURL   = "NIMDECK_BASE_URL"
	EnvAPIKey    = "NIMDECK_API_KEY"
	EnvModel     = "NIMDECK_MODEL"
	EnvMaxTokens = "NIMDECK_MAX_TOKENS"
)

// LoadDotEnv loads projectRoot/.env into the process environment. Variables
// already set are left alone. A missing file is not an error.
func LoadDotEnv(projectRoot string) error {
	path := filepath.Join(projectRoot, ".env")
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func fromEnv() *Settings {
	s := &Settings{
		BaseURL:      os.Getenv(EnvBaseURL),
		APIKey:       os.Getenv(EnvAPIKey),
		DefaultModel: os.Getenv(EnvModel),
	}
	if v := os.Getenv(EnvMaxTokens); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			s.MaxTokens = n
		}
	}
	return s
}

var envVarPattern = regexp.MustCompile(`\$\{(\w+)\}`)

// expandSettings replaces ${VAR} in string fields with os.Getenv(VAR).
func expandSettings(s *Settings) {
	s.BaseURL = expandEnv(s.BaseURL)
	s.APIKey = expandEnv(s.APIKey)
	s.DefaultModel = expandEnv(s.DefaultModel)
}

// expandEnv replaces ${VAR} with os.Getenv(VAR). Unset vars become "".
func expandEnv(s string) string {
	if s == "" {
		return s
	}
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(envVarPattern.FindStringSubmatch(match)[1])
	})
}
