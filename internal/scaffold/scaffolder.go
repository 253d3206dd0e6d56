// Package scaffold generates a new plugin directory from the file
// registry and template tree.
package scaffold

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/oakensoul/aida"
	"github.com/oakensoul/aida/internal/gen"
	"github.com/oakensoul/aida/internal/manifest"
	"github.com/oakensoul/aida/internal/output"
	"github.com/oakensoul/aida/internal/registry"
	"github.com/oakensoul/aida/internal/render"
	"github.com/oakensoul/aida/internal/settings"
	"github.com/oakensoul/aida/internal/templates"
)

// Options configures a scaffold generation.
type Options struct {
	Name        string
	Description string
	Language    registry.Language
	License     string
	AuthorName  string
	AuthorEmail string

	// TargetDir is the plugin root to create; defaults to ./<name>.
	TargetDir string
	// TemplatesDir overrides the embedded template tree when non-empty.
	TemplatesDir string

	DryRun bool
	Force  bool
}

// stagedFile is one rendered file ready to be written.
type stagedFile struct {
	path    string
	content []byte
	mode    fs.FileMode
}

// Generate creates a complete plugin scaffold. On dry runs it prints what
// would be written; otherwise all files land in one transaction so a
// half-written scaffold is rolled back. It returns the relative paths of
// the files written (or that would be written).
func Generate(ctx context.Context, opts Options) ([]string, error) {
	if opts.Name == "" {
		return nil, fmt.Errorf("plugin name is required")
	}
	name := render.KebabCase(strings.ReplaceAll(strings.TrimSpace(opts.Name), " ", "-"))

	lang := opts.Language
	if lang == "" {
		lang = registry.DefaultLanguage
	}
	supported := false
	for _, l := range registry.Languages() {
		if l == lang {
			supported = true
			break
		}
	}
	if !supported {
		return nil, fmt.Errorf("unsupported language %q (expected python, node or shell)", lang)
	}

	target := opts.TargetDir
	if target == "" {
		target = name
	}

	st := settings.Load(".")
	if opts.TemplatesDir == "" {
		opts.TemplatesDir = st.TemplatesDir
	}

	rc := manifest.BuildContext(ctx, &manifest.Manifest{
		Name:        name,
		Description: opts.Description,
		License:     opts.License,
		Author:      manifest.Author{Name: opts.AuthorName, Email: opts.AuthorEmail},
	}, lang, st, aida.Version)

	licenseText, known := manifest.ResolveLicense(rc.License, rc.Year, rc.AuthorName)
	if !known {
		output.Warn(fmt.Sprintf("Unknown license %q, using %s", rc.License, manifest.DefaultLicense))
		rc.License = manifest.DefaultLicense
		licenseText, _ = manifest.ResolveLicense(rc.License, rc.Year, rc.AuthorName)
	}

	staged, err := stageFiles(target, lang, opts.TemplatesDir, rc, licenseText)
	if err != nil {
		return nil, err
	}

	if opts.DryRun {
		ops := make([]gen.Operation, 0, len(staged))
		for _, f := range staged {
			ops = append(ops, &gen.WriteFileOp{Path: f.path, Content: f.content, Mode: f.mode})
		}
		if err := gen.Execute(ctx, ops, gen.ExecuteOptions{DryRun: true, Force: opts.Force}); err != nil {
			return nil, err
		}
		return relPaths(target, staged), nil
	}

	tx := gen.NewTransaction()
	defer tx.Rollback()
	for _, f := range staged {
		op := &gen.WriteFileOp{Path: f.path, Content: f.content, Mode: f.mode}
		if err := op.Validate(ctx, opts.Force); err != nil {
			return nil, err
		}
		tx.AddFile(f.path, f.content, f.mode)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	for _, f := range staged {
		output.Step(fmt.Sprintf("Created %s", f.path))
	}
	output.Success(fmt.Sprintf("Generated %s plugin %q in %s", lang, name, target))
	return relPaths(target, staged), nil
}

// stageFiles renders every registry spec into memory before anything is
// written.
func stageFiles(target string, lang registry.Language, templatesDir string, rc *manifest.RenderContext, licenseText string) ([]stagedFile, error) {
	r := render.New()

	var staged []stagedFile
	for _, spec := range registry.Specs(lang) {
		var content []byte
		switch {
		case spec.Path == "LICENSE":
			content = []byte(licenseText)
		case spec.Path == manifest.MetadataPath:
			data, err := manifest.EncodeMetadata(map[string]any{"generatorVersion": aida.Version})
			if err != nil {
				return nil, fmt.Errorf("failed to encode version marker: %w", err)
			}
			content = data
		default:
			data, err := templates.Render(r, templatesDir, spec.Template, rc)
			if err != nil {
				return nil, fmt.Errorf("failed to render %s: %w", spec.Path, err)
			}
			content = data
		}

		mode := fs.FileMode(0644)
		if strings.HasSuffix(spec.Path, ".sh") {
			mode = 0755
		}
		staged = append(staged, stagedFile{
			path:    filepath.Join(target, filepath.FromSlash(spec.Path)),
			content: content,
			mode:    mode,
		})
	}
	return staged, nil
}

func relPaths(target string, staged []stagedFile) []string {
	paths := make([]string, 0, len(staged))
	for _, f := range staged {
		if rel, err := filepath.Rel(target, f.path); err == nil {
			paths = append(paths, filepath.ToSlash(rel))
		}
	}
	return paths
}
