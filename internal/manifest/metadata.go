package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// UnknownVersion is assumed when a scaffold carries no generator marker.
const UnknownVersion = "0.0.0"

// GeneratorVersion returns the generator version recorded on a scaffold.
// Absence or corruption of the marker is never fatal and yields
// UnknownVersion.
func GeneratorVersion(pluginPath string) string {
	raw := ReadMetadata(pluginPath)
	if v, ok := raw["generatorVersion"].(string); ok && v != "" {
		return v
	}
	return UnknownVersion
}

// ReadMetadata reads the version-marker file as a generic object so that
// hand-added fields survive a version bump. Absence or corruption yields
// an empty object, never an error.
func ReadMetadata(pluginPath string) map[string]any {
	data, err := os.ReadFile(filepath.Join(pluginPath, MetadataPath))
	if err != nil {
		return map[string]any{}
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return map[string]any{}
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return raw
}

// EncodeMetadata marshals a metadata object the way the generator writes it.
func EncodeMetadata(raw map[string]any) ([]byte, error) {
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
