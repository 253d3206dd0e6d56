package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	s := Load(t.TempDir())

	require.NotNil(t, s)
	assert.Empty(t, s.AuthorName)
	assert.Empty(t, s.DefaultLicense)
}

func TestLoadReadsSettingsFile(t *testing.T) {
	dir := t.TempDir()
	content := `author:
  name: Sam Roe
  email: sam@example.com
defaults:
  license: Apache-2.0
  templates_dir: /opt/templates
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "aida.yml"), []byte(content), 0644))

	s := Load(dir)

	assert.Equal(t, "Sam Roe", s.AuthorName)
	assert.Equal(t, "sam@example.com", s.AuthorEmail)
	assert.Equal(t, "Apache-2.0", s.DefaultLicense)
	assert.Equal(t, "/opt/templates", s.TemplatesDir)
}

func TestLoadCorruptedFileGivesDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "aida.yml"), []byte(":\tnot yaml"), 0644))

	s := Load(dir)

	require.NotNil(t, s)
	assert.Empty(t, s.AuthorName)
}
