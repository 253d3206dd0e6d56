// Package manifest reads and validates the on-disk identity of a plugin
// scaffold: its manifest, marketplace listing and generator-version marker.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// Path is the manifest location relative to the plugin root. Its
	// absence is the one fatal, user-facing precondition error.
	Path = ".claude-plugin/plugin.json"

	// MarketplacePath is the marketplace listing location.
	MarketplacePath = ".claude-plugin/marketplace.json"

	// MetadataPath records the version of the generator that produced or
	// last updated the scaffold.
	MetadataPath = ".aida/generator.json"

	// BackupDirName is where pre-patch copies of files are kept.
	BackupDirName = ".aida-backup"
)

// Author identifies the plugin author.
type Author struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Manifest is the plugin manifest stored at .claude-plugin/plugin.json.
type Manifest struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description,omitempty"`
	Author      Author   `json:"author"`
	License     string   `json:"license,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}

// Load reads the manifest of the plugin at pluginPath.
// A missing manifest means the directory is not a plugin scaffold.
func Load(pluginPath string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(pluginPath, Path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("not a plugin scaffold (missing %s): %w", Path, err)
		}
		return nil, fmt.Errorf("failed to read %s: %w", Path, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", Path, err)
	}

	return &m, nil
}

// Exists reports whether pluginPath contains a manifest.
func Exists(pluginPath string) bool {
	_, err := os.Stat(filepath.Join(pluginPath, Path))
	return err == nil
}
