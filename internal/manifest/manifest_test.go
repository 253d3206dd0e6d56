package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePlugin(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

func TestLoadMissingManifest(t *testing.T) {
	_, err := Load(t.TempDir())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a plugin scaffold")
	assert.Contains(t, err.Error(), Path)
}

func TestLoadValidManifest(t *testing.T) {
	dir := writePlugin(t, map[string]string{
		Path: `{"name":"demo","version":"1.2.3","author":{"name":"Sam","email":"sam@example.com"},"license":"MIT","keywords":["a","b"]}`,
	})

	m, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "demo", m.Name)
	assert.Equal(t, "1.2.3", m.Version)
	assert.Equal(t, "Sam", m.Author.Name)
	assert.Equal(t, "sam@example.com", m.Author.Email)
	assert.Equal(t, "MIT", m.License)
	assert.Equal(t, []string{"a", "b"}, m.Keywords)
	assert.True(t, Exists(dir))
}

func TestLoadInvalidJSON(t *testing.T) {
	dir := writePlugin(t, map[string]string{Path: "{not json"})

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid")
}

func TestGeneratorVersionDefaults(t *testing.T) {
	assert.Equal(t, UnknownVersion, GeneratorVersion(t.TempDir()))

	dir := writePlugin(t, map[string]string{MetadataPath: "{corrupted"})
	assert.Equal(t, UnknownVersion, GeneratorVersion(dir))

	dir = writePlugin(t, map[string]string{MetadataPath: `{"generatorVersion":""}`})
	assert.Equal(t, UnknownVersion, GeneratorVersion(dir))
}

func TestGeneratorVersionReadsMarker(t *testing.T) {
	dir := writePlugin(t, map[string]string{MetadataPath: `{"generatorVersion":"0.3.1"}`})

	assert.Equal(t, "0.3.1", GeneratorVersion(dir))
}

func TestMetadataPreservesExtraKeys(t *testing.T) {
	dir := writePlugin(t, map[string]string{
		MetadataPath: `{"generatorVersion":"0.3.1","customField":"kept"}`,
	})

	raw := ReadMetadata(dir)
	raw["generatorVersion"] = "0.4.0"

	data, err := EncodeMetadata(raw)
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"generatorVersion": "0.4.0"`)
	assert.Contains(t, s, `"customField": "kept"`)
	assert.True(t, s[len(s)-1] == '\n')
}

func TestDetectLanguage(t *testing.T) {
	dir := writePlugin(t, map[string]string{"pyproject.toml": ""})
	assert.Equal(t, "python", string(DetectLanguage(dir)))

	dir = writePlugin(t, map[string]string{"package.json": "{}"})
	assert.Equal(t, "node", string(DetectLanguage(dir)))

	// Both markers present: python wins
	dir = writePlugin(t, map[string]string{"pyproject.toml": "", "package.json": "{}"})
	assert.Equal(t, "python", string(DetectLanguage(dir)))

	assert.Equal(t, "shell", string(DetectLanguage(t.TempDir())))
}

func TestResolveLicenseSubstitutesPlaceholders(t *testing.T) {
	text, known := ResolveLicense("MIT", 2026, "Sam Roe")

	assert.True(t, known)
	assert.Contains(t, text, "2026")
	assert.Contains(t, text, "Sam Roe")
	assert.NotContains(t, text, "[year]")
	assert.NotContains(t, text, "[fullname]")
}

func TestResolveLicenseAliases(t *testing.T) {
	for _, alias := range []string{"mit", "apache", "apache2", "bsd", "BSD-3-Clause"} {
		_, known := ResolveLicense(alias, 2026, "x")
		assert.True(t, known, "alias %s", alias)
	}
}

func TestResolveLicenseUnknownFallsBack(t *testing.T) {
	text, known := ResolveLicense("WTFPL", 2026, "x")

	assert.False(t, known)
	assert.NotEmpty(t, text)
}

func TestValidateBytes(t *testing.T) {
	issues, err := ValidateBytes([]byte(`{"name":"demo","version":"0.1.0","author":{"name":"Sam"}}`))
	require.NoError(t, err)
	assert.Empty(t, issues)

	issues, err = ValidateBytes([]byte(`{"version":"0.1.0"}`))
	require.NoError(t, err)
	assert.NotEmpty(t, issues)

	issues, err = ValidateBytes([]byte(`{"name":"Bad Name!","version":"x","author":{"name":"Sam"}}`))
	require.NoError(t, err)
	assert.NotEmpty(t, issues)
}

func TestBuildContextFillsDefaults(t *testing.T) {
	m := &Manifest{
		Name:    "demo",
		Author:  Author{Name: "Sam", Email: "sam@example.com"},
		License: "",
	}

	rc := BuildContext(t.Context(), m, "shell", nil, "0.4.0")

	assert.Equal(t, "0.1.0", rc.Version)
	assert.Equal(t, DefaultLicense, rc.License)
	assert.Equal(t, "0.4.0", rc.GeneratorVersion)
	assert.Equal(t, "Sam", rc.AuthorName)
	assert.NotZero(t, rc.Year)
}
