// Package scan implements the read-only comparator of the reconciliation
// engine: it renders each registered file's expected content and diffs it
// against disk, producing a DiffReport.
package scan

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oakensoul/aida"
	"github.com/oakensoul/aida/internal/manifest"
	"github.com/oakensoul/aida/internal/output"
	"github.com/oakensoul/aida/internal/registry"
	"github.com/oakensoul/aida/internal/render"
	"github.com/oakensoul/aida/internal/settings"
	"github.com/oakensoul/aida/internal/templates"
)

// summaryEntryCap limits how many missing composite entries a diff summary names.
const summaryEntryCap = 10

// Scanner compares a plugin scaffold against the current template set.
// It performs no writes.
type Scanner struct {
	renderer *render.Renderer
}

// New creates a scanner with a fresh template cache.
func New() *Scanner {
	return &Scanner{renderer: render.New()}
}

// Scan produces a DiffReport for the plugin at pluginPath. templatesDir
// optionally overrides the embedded template tree.
//
// The only fatal error is a missing manifest (or a cancelled context);
// every per-file problem is absorbed into the report.
func (s *Scanner) Scan(ctx context.Context, pluginPath, templatesDir string) (*DiffReport, error) {
	m, err := manifest.Load(pluginPath)
	if err != nil {
		return nil, err
	}

	recorded := manifest.GeneratorVersion(pluginPath)
	lang := manifest.DetectLanguage(pluginPath)
	output.Verbose(fmt.Sprintf("Detected language: %s (generator %s)", lang, recorded))

	st := settings.Load(pluginPath)
	rc := manifest.BuildContext(ctx, m, lang, st, aida.Version)

	if templatesDir == "" {
		templatesDir = st.TemplatesDir
	}

	// License resolution never fails; an unknown id is substituted with
	// the default plus a warning.
	if _, known := manifest.ResolveLicense(rc.License, rc.Year, rc.AuthorName); !known {
		output.Warn(fmt.Sprintf("Unknown license %q, assuming %s", rc.License, manifest.DefaultLicense))
		rc.License = manifest.DefaultLicense
	}

	report := &DiffReport{
		PluginPath:       pluginPath,
		PluginName:       m.Name,
		Language:         lang,
		GeneratorVersion: recorded,
		CurrentVersion:   aida.Version,
	}

	for _, spec := range registry.Specs(lang) {
		// Long scans stay interruptible at file boundaries
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report.Files = append(report.Files, s.scanFile(pluginPath, templatesDir, spec, rc))
	}

	return report, nil
}

// scanFile classifies a single file. Any unexpected failure is downgraded
// to an outdated marker so one bad file never aborts the scan.
func (s *Scanner) scanFile(pluginPath, templatesDir string, spec registry.FileSpec, rc *manifest.RenderContext) (diff FileDiff) {
	defer func() {
		if r := recover(); r != nil {
			diff = comparisonFailed(spec, fmt.Errorf("panic: %v", r))
		}
	}()

	diff = FileDiff{
		Path:     spec.Path,
		Category: spec.Category,
		Strategy: spec.Default,
	}

	// User-managed files are never rendered or compared
	if spec.Default == registry.StrategySkip {
		diff.Status = StatusCustomSkip
		diff.DiffSummary = "user-managed; not compared"
		return diff
	}

	actual, readErr := os.ReadFile(filepath.Join(pluginPath, filepath.FromSlash(spec.Path)))
	exists := readErr == nil
	if readErr != nil && !os.IsNotExist(readErr) {
		return comparisonFailed(spec, readErr)
	}

	// Dependency manifests get an existence-only check: auto-merging them
	// is unsafe, so their content is never rendered or compared.
	if spec.Category == registry.CategoryDependencyConfig {
		diff.Strategy = registry.StrategyManualReview
		if exists {
			diff.Status = StatusUpToDate
			diff.DiffSummary = "exists; content not compared"
		} else {
			diff.Status = StatusMissing
			diff.DiffSummary = "file missing; review before adding"
		}
		return diff
	}

	expected, err := templates.Render(s.renderer, templatesDir, spec.Template, rc)
	if err != nil {
		return comparisonFailed(spec, err)
	}
	diff.ExpectedContent = string(expected)

	if spec.Category == registry.CategoryComposite {
		diff.Strategy = registry.StrategyMerge
	}

	if !exists {
		diff.Status = StatusMissing
		diff.DiffSummary = "file missing"
		return diff
	}
	diff.ActualContent = string(actual)

	switch spec.Category {
	case registry.CategoryComposite:
		if spec.Composite == nil {
			return comparisonFailed(spec, fmt.Errorf("no composite handler registered for %s", spec.Path))
		}
		upToDate, missing := spec.Composite.Compare(expected, actual)
		if upToDate {
			diff.Status = StatusUpToDate
		} else {
			diff.Status = StatusOutdated
			diff.DiffSummary = summarizeMissingEntries(missing)
		}

	default:
		if bytes.Equal(expected, actual) {
			diff.Status = StatusUpToDate
		} else {
			diff.Status = StatusOutdated
			diff.DiffSummary = "content differs from current template"
		}
	}

	return diff
}

// comparisonFailed records a per-file failure without aborting the scan.
// The file is routed to manual review: with no trustworthy expected
// content, an automatic overwrite could destroy data.
func comparisonFailed(spec registry.FileSpec, err error) FileDiff {
	return FileDiff{
		Path:        spec.Path,
		Category:    spec.Category,
		Status:      StatusOutdated,
		Strategy:    registry.StrategyManualReview,
		DiffSummary: fmt.Sprintf("comparison failed: %v", err),
	}
}

// summarizeMissingEntries names up to summaryEntryCap missing entries.
func summarizeMissingEntries(missing []string) string {
	shown := missing
	if len(shown) > summaryEntryCap {
		shown = shown[:summaryEntryCap]
	}
	summary := fmt.Sprintf("missing %d entries: %s", len(missing), strings.Join(shown, ", "))
	if len(missing) > summaryEntryCap {
		summary += fmt.Sprintf(" (+%d more)", len(missing)-summaryEntryCap)
	}
	return summary
}
