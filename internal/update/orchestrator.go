// Package update orchestrates the two-phase update protocol: a plan
// phase that scans and surfaces questions, and an execute phase that
// re-scans and applies patches with the answers folded in as strategy
// overrides.
package update

import (
	"context"
	"fmt"

	"github.com/oakensoul/aida/internal/patch"
	"github.com/oakensoul/aida/internal/registry"
	"github.com/oakensoul/aida/internal/scan"
)

// QuestionBoilerplate asks what to do with drifted boilerplate files.
const QuestionBoilerplate = "boilerplateStrategy"

// Question is a decision the caller must make before execution.
type Question struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	Default string   `json:"default"`
}

// PlanResponse is the result of the plan phase.
type PlanResponse struct {
	Phase       string     `json:"phase"`
	NeedsUpdate bool       `json:"needsUpdate"`
	Questions   []Question `json:"questions,omitempty"`

	// Inferred carries the serialized DiffReport across the protocol
	// boundary; Report is the in-process view and stays off the wire.
	Inferred string           `json:"inferred"`
	Report   *scan.DiffReport `json:"-"`
}

// ExecuteResponse is the result of the execute phase.
type ExecuteResponse struct {
	Success          bool           `json:"success"`
	Message          string         `json:"message"`
	FilesCreated     []string       `json:"filesCreated,omitempty"`
	FilesUpdated     []string       `json:"filesUpdated,omitempty"`
	FilesSkipped     []string       `json:"filesSkipped,omitempty"`
	FilesFailed      []string       `json:"filesFailed,omitempty"`
	ManualSteps      []string       `json:"manualSteps,omitempty"`
	BackupPath       string         `json:"backupPath,omitempty"`
	GeneratorVersion string         `json:"generatorVersion"`
	Results          []patch.Result `json:"results"`
}

// Plan scans the plugin and reports what an update would do, together
// with any questions whose answers change how it is applied. No file is
// modified.
func Plan(ctx context.Context, pluginPath, templatesDir string) (*PlanResponse, error) {
	report, err := scan.New().Scan(ctx, pluginPath, templatesDir)
	if err != nil {
		return nil, err
	}

	inferred, err := report.Serialize()
	if err != nil {
		return nil, err
	}

	resp := &PlanResponse{
		Phase:       "plan",
		NeedsUpdate: report.NeedsUpdate(),
		Inferred:    inferred,
		Report:      report,
	}
	if resp.NeedsUpdate {
		resp.Questions = questionsFor(report)
	}
	return resp, nil
}

// Execute applies the update. The plugin is scanned again from scratch
// so the patches are based on the disk state at apply time, not on a
// possibly stale plan.
func Execute(ctx context.Context, pluginPath, templatesDir string, responses map[string]string) (*ExecuteResponse, error) {
	report, err := scan.New().Scan(ctx, pluginPath, templatesDir)
	if err != nil {
		return nil, err
	}

	if !report.NeedsUpdate() {
		return &ExecuteResponse{
			Success:          true,
			Message:          "Already up to date",
			GeneratorVersion: report.CurrentVersion,
		}, nil
	}

	results, backupDir, err := patch.Apply(ctx, pluginPath, report, overridesFrom(report, responses))
	if err != nil {
		return nil, err
	}

	return buildResponse(report, results, backupDir), nil
}

// buildResponse tallies patch results into the execute-phase response.
// Per-file failures do not fail the update itself; the only fatal outcome
// is the missing-manifest precondition, surfaced before patching starts.
func buildResponse(report *scan.DiffReport, results []patch.Result, backupDir string) *ExecuteResponse {
	resp := &ExecuteResponse{
		Success:          true,
		BackupPath:       backupDir,
		GeneratorVersion: report.CurrentVersion,
		Results:          results,
		ManualSteps:      manualSteps(report),
	}
	for _, r := range results {
		switch r.Action {
		case patch.ActionCreated:
			resp.FilesCreated = append(resp.FilesCreated, r.Path)
		case patch.ActionUpdated:
			resp.FilesUpdated = append(resp.FilesUpdated, r.Path)
		case patch.ActionSkipped:
			resp.FilesSkipped = append(resp.FilesSkipped, r.Path)
		case patch.ActionFailed:
			resp.FilesFailed = append(resp.FilesFailed, r.Path)
		}
	}

	if len(resp.FilesFailed) == 0 {
		resp.Message = fmt.Sprintf("Updated %s to generator %s (%d created, %d updated, %d skipped)",
			report.PluginName, report.CurrentVersion,
			len(resp.FilesCreated), len(resp.FilesUpdated), len(resp.FilesSkipped))
	} else {
		resp.Message = fmt.Sprintf("Updated %s to generator %s with %d failures (%d created, %d updated, %d skipped)",
			report.PluginName, report.CurrentVersion, len(resp.FilesFailed),
			len(resp.FilesCreated), len(resp.FilesUpdated), len(resp.FilesSkipped))
	}

	return resp
}

// questionsFor derives the plan-phase questions from a report.
func questionsFor(report *scan.DiffReport) []Question {
	var qs []Question

	for _, f := range report.Outdated() {
		if f.Category == registry.CategoryBoilerplate {
			qs = append(qs, Question{
				ID:      QuestionBoilerplate,
				Prompt:  "Boilerplate files have local changes. Overwrite them with the current templates?",
				Options: []string{string(registry.StrategyOverwrite), string(registry.StrategySkip)},
				Default: string(registry.StrategyOverwrite),
			})
			break
		}
	}

	return qs
}

// overridesFrom translates question answers into per-file strategy
// overrides against the execute-phase report.
func overridesFrom(report *scan.DiffReport, responses map[string]string) map[string]registry.Strategy {
	overrides := make(map[string]registry.Strategy)

	if responses[QuestionBoilerplate] == string(registry.StrategySkip) {
		for _, f := range report.Outdated() {
			if f.Category == registry.CategoryBoilerplate {
				overrides[f.Path] = registry.StrategySkip
			}
		}
	}

	return overrides
}

// manualSteps lists the follow-up work the update cannot do for the user.
func manualSteps(report *scan.DiffReport) []string {
	var steps []string

	for _, f := range report.Files {
		if f.Strategy != registry.StrategyManualReview {
			continue
		}
		switch f.Status {
		case scan.StatusMissing:
			steps = append(steps, fmt.Sprintf("Add %s by hand; it is not generated automatically (%s)", f.Path, f.DiffSummary))
		case scan.StatusOutdated:
			steps = append(steps, fmt.Sprintf("Review %s manually (%s)", f.Path, f.DiffSummary))
		case scan.StatusUpToDate:
			// Dependency manifests pass an existence-only check, so a
			// present one may still have drifted.
			if f.Category == registry.CategoryDependencyConfig {
				steps = append(steps, fmt.Sprintf("Check %s by hand; dependency manifests are never compared automatically", f.Path))
			}
		}
	}

	steps = append(steps,
		"Run the linter to confirm updated configs still pass",
		"Run the test suite before committing",
		"Review the diff of updated files before committing",
	)
	return steps
}
