// Package templates holds the default template tree for plugin scaffolds.
//
// Templates are keyed by their path relative to the tree root (e.g.
// "shared/gitignore.tmpl"). An external templates directory with the same
// layout can override the embedded tree.
package templates

import (
	"embed"
	"path"
	"path/filepath"

	"github.com/oakensoul/aida/internal/render"
)

//go:embed all:templates
var FS embed.FS

// Render renders the template at relPath, preferring dir when non-empty.
func Render(r *render.Renderer, dir, relPath string, data any) ([]byte, error) {
	if dir != "" {
		return r.RenderFile(filepath.Join(dir, filepath.FromSlash(relPath)), data)
	}
	return r.RenderFS(FS, path.Join("templates", relPath), data)
}
