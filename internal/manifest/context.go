package manifest

import (
	"context"
	"time"

	"github.com/oakensoul/aida/internal/gitutil"
	"github.com/oakensoul/aida/internal/registry"
	"github.com/oakensoul/aida/internal/settings"
)

// RenderContext is the data handed to every template. It is reconstructed
// from the manifest's own fields on each scan, with gaps filled from
// operator settings and version-control identity. Building it never fails;
// missing fields simply get defaults.
type RenderContext struct {
	Name        string
	Description string
	Version     string
	AuthorName  string
	AuthorEmail string
	License     string
	Keywords    []string
	Language    string
	Year        int

	// GeneratorVersion is the engine's own version, not the one recorded
	// on the target.
	GeneratorVersion string
}

// BuildContext assembles the render context for a plugin.
// generatorVersion is the engine's current version constant.
func BuildContext(ctx context.Context, m *Manifest, lang registry.Language, s *settings.Settings, generatorVersion string) *RenderContext {
	rc := &RenderContext{
		Name:             m.Name,
		Description:      m.Description,
		Version:          m.Version,
		AuthorName:       m.Author.Name,
		AuthorEmail:      m.Author.Email,
		License:          m.License,
		Keywords:         m.Keywords,
		Language:         string(lang),
		Year:             time.Now().Year(),
		GeneratorVersion: generatorVersion,
	}

	if s != nil {
		if rc.AuthorName == "" {
			rc.AuthorName = s.AuthorName
		}
		if rc.AuthorEmail == "" {
			rc.AuthorEmail = s.AuthorEmail
		}
		if rc.License == "" {
			rc.License = s.DefaultLicense
		}
	}

	// Version-control identity is the last resort for author fields
	if rc.AuthorName == "" || rc.AuthorEmail == "" {
		name, email := gitutil.Identity(ctx)
		if rc.AuthorName == "" {
			rc.AuthorName = name
		}
		if rc.AuthorEmail == "" {
			rc.AuthorEmail = email
		}
	}

	if rc.Version == "" {
		rc.Version = "0.1.0"
	}
	if rc.License == "" {
		rc.License = DefaultLicense
	}

	return rc
}
