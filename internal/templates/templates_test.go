package templates

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oakensoul/aida/internal/manifest"
	"github.com/oakensoul/aida/internal/registry"
	"github.com/oakensoul/aida/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() *manifest.RenderContext {
	return &manifest.RenderContext{
		Name:             "demo",
		Description:      "A demo plugin",
		Version:          "0.1.0",
		AuthorName:       "Sam Roe",
		AuthorEmail:      "sam@example.com",
		License:          "MIT",
		Language:         "python",
		Year:             2026,
		GeneratorVersion: "0.4.0",
	}
}

// Every template the registry references must exist in the embedded tree
// and render cleanly.
func TestEveryRegisteredTemplateRenders(t *testing.T) {
	r := render.New()
	rc := testContext()

	for _, lang := range registry.Languages() {
		for _, spec := range registry.Specs(lang) {
			if spec.Template == "" {
				continue
			}
			out, err := Render(r, "", spec.Template, rc)
			require.NoError(t, err, "template %s", spec.Template)
			assert.NotEmpty(t, out, "template %s rendered empty", spec.Template)
		}
	}
}

func TestMakefileTemplateUsesTabs(t *testing.T) {
	out, err := Render(render.New(), "", "shared/makefile.tmpl", testContext())
	require.NoError(t, err)

	sawRecipe := false
	for _, line := range strings.Split(string(out), "\n") {
		if strings.HasPrefix(line, "\t") {
			sawRecipe = true
		}
		assert.False(t, strings.HasPrefix(line, "    "), "recipe lines must use tabs: %q", line)
	}
	assert.True(t, sawRecipe, "Makefile template has no recipe lines")
}

func TestTemplatesDirOverride(t *testing.T) {
	dir := t.TempDir()
	writeOverride(t, dir, "shared/gitignore.tmpl", "override-{{.Name}}\n")

	out, err := Render(render.New(), dir, "shared/gitignore.tmpl", testContext())
	require.NoError(t, err)
	assert.Equal(t, "override-demo\n", string(out))
}

func writeOverride(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestPluginManifestTemplateIsValid(t *testing.T) {
	out, err := Render(render.New(), "", "shared/plugin.json.tmpl", testContext())
	require.NoError(t, err)

	issues, err := manifest.ValidateBytes(out)
	require.NoError(t, err)
	assert.Empty(t, issues)
}
