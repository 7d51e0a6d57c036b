// ABOUTME: Filesystem locations of nimdeck settings
// ABOUTME: ~/.nimdeck/settings.yaml globally, .nimdeck/settings.yaml per project

package config

import (
	"os"
	"path/filepath"
)

const dirName = ".nimdeck"

// GlobalDir returns the user-global config directory (~/.nimdeck/).
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", dirName)
	}
	return filepath.Join(home, dirName)
}

// GlobalSettingsFile returns the path to the global settings file.
func GlobalSettingsFile() string {
	return filepath.Join(GlobalDir(), "settings.yaml")
}

// ProjectSettingsFile returns the path to the project-local settings file.
func ProjectSettingsFile(projectRoot string) string {
	return filepath.Join(projectRoot, dirName, "settings.yaml")
}
