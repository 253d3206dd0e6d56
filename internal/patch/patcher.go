// Package patch applies per-file update strategies to a plugin scaffold.
// It consumes a scan report, backs up every file it is about to touch,
// and writes each change atomically. One file failing never stops the
// remaining patches.
package patch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oakensoul/aida/internal/manifest"
	"github.com/oakensoul/aida/internal/output"
	"github.com/oakensoul/aida/internal/registry"
	"github.com/oakensoul/aida/internal/scan"
)

// addedEntryCap limits how many merged entries a patch message names.
const addedEntryCap = 5

// Action is the outcome of one patch.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionSkipped Action = "skipped"
	ActionFailed  Action = "failed"
)

// Result records the outcome of patching a single file.
type Result struct {
	Path       string `json:"path"`
	Action     Action `json:"action"`
	Message    string `json:"message,omitempty"`
	BackupPath string `json:"backupPath,omitempty"`
}

// Apply patches every missing or outdated file in the report, honoring
// per-file strategy overrides, then bumps the recorded generator version.
// It returns one Result per attempted patch and the backup directory
// ("" when nothing needed backing up).
//
// The only hard error is a cancelled context. A file that cannot be
// backed up fails individually and is never patched; the rest proceed.
func Apply(ctx context.Context, pluginPath string, report *scan.DiffReport, overrides map[string]registry.Strategy) ([]Result, string, error) {
	var actionable []scan.FileDiff
	strategies := make(map[string]registry.Strategy)
	for _, f := range report.Files {
		if f.Status != scan.StatusMissing && f.Status != scan.StatusOutdated {
			continue
		}
		actionable = append(actionable, f)

		strategy := f.Strategy
		if override, ok := overrides[f.Path]; ok {
			strategy = override
		}
		strategies[f.Path] = strategy
	}

	// Only files a strategy will mutate need a pre-patch copy; files the
	// engine will not touch must never be able to block the update.
	relPaths := make([]string, 0, len(actionable)+1)
	for _, f := range actionable {
		switch strategies[f.Path] {
		case registry.StrategySkip, registry.StrategyManualReview:
		default:
			relPaths = append(relPaths, f.Path)
		}
	}
	relPaths = append(relPaths, manifest.MetadataPath)

	backupDir, backedUp, backupErrs := backupFiles(pluginPath, relPaths)

	specs := make(map[string]registry.FileSpec)
	for _, spec := range registry.Specs(report.Language) {
		specs[spec.Path] = spec
	}

	var results []Result
	for _, f := range actionable {
		if err := ctx.Err(); err != nil {
			return results, backupDir, err
		}

		if berr, ok := backupErrs[f.Path]; ok {
			results = append(results, Result{Path: f.Path, Action: ActionFailed, Message: berr.Error()})
			continue
		}

		res := applyOne(pluginPath, f, strategies[f.Path], specs[f.Path])
		res.BackupPath = backedUp[f.Path]
		results = append(results, res)
	}

	// The version bump is always last: it only lands after every patch
	// above has had its chance, so a crash mid-update leaves the stale
	// version in place and the next scan still reports drift.
	var res Result
	if berr, ok := backupErrs[manifest.MetadataPath]; ok {
		res = Result{Path: manifest.MetadataPath, Action: ActionFailed, Message: berr.Error()}
	} else {
		res = bumpGeneratorVersion(pluginPath, report.CurrentVersion)
		res.BackupPath = backedUp[manifest.MetadataPath]
	}
	results = append(results, res)

	return results, backupDir, nil
}

// applyOne dispatches a single file to its strategy. Failures are folded
// into the Result rather than returned.
func applyOne(pluginPath string, f scan.FileDiff, strategy registry.Strategy, spec registry.FileSpec) Result {
	res := Result{Path: f.Path}
	target := filepath.Join(pluginPath, filepath.FromSlash(f.Path))

	switch strategy {
	case registry.StrategySkip:
		res.Action = ActionSkipped
		res.Message = "skipped by strategy"

	case registry.StrategyManualReview:
		res.Action = ActionSkipped
		res.Message = "manual review required; not modified"

	case registry.StrategyOverwrite:
		if f.ExpectedContent == "" {
			res.Action = ActionFailed
			res.Message = "no rendered content to write; see scan details"
			return res
		}
		if err := writeFileAtomic(target, []byte(f.ExpectedContent), 0644); err != nil {
			res.Action = ActionFailed
			res.Message = err.Error()
			return res
		}
		if f.Status == scan.StatusMissing {
			res.Action = ActionCreated
			res.Message = "created from template"
		} else {
			res.Action = ActionUpdated
			res.Message = "overwritten with current template"
		}

	case registry.StrategyAdd:
		// Existence is re-checked at patch time; a file created between
		// scan and apply is left alone.
		if _, err := os.Stat(target); err == nil {
			res.Action = ActionSkipped
			res.Message = "already exists; add never overwrites"
			return res
		}
		if f.ExpectedContent == "" {
			res.Action = ActionFailed
			res.Message = "no rendered content to write; see scan details"
			return res
		}
		if err := writeFileAtomic(target, []byte(f.ExpectedContent), 0644); err != nil {
			res.Action = ActionFailed
			res.Message = err.Error()
			return res
		}
		res.Action = ActionCreated
		res.Message = "created from template"

	case registry.StrategyMerge:
		return mergeOne(pluginPath, f, spec)

	default:
		output.Warn(fmt.Sprintf("Unknown strategy %q for %s", strategy, f.Path))
		res.Action = ActionSkipped
		res.Message = fmt.Sprintf("unknown strategy %q; skipped", strategy)
	}

	return res
}

// mergeOne applies the merge strategy via the file's composite handler.
// The file is re-read from disk so edits made between scan and apply are
// preserved in the merge.
func mergeOne(pluginPath string, f scan.FileDiff, spec registry.FileSpec) Result {
	res := Result{Path: f.Path}
	target := filepath.Join(pluginPath, filepath.FromSlash(f.Path))

	if f.ExpectedContent == "" {
		res.Action = ActionFailed
		res.Message = "no rendered content to merge; see scan details"
		return res
	}

	if spec.Composite == nil {
		// Merge without a composite handler degrades to overwrite.
		output.Warn(fmt.Sprintf("No merge handler for %s, overwriting instead", f.Path))
		if err := writeFileAtomic(target, []byte(f.ExpectedContent), 0644); err != nil {
			res.Action = ActionFailed
			res.Message = err.Error()
			return res
		}
		res.Action = ActionUpdated
		res.Message = "no merge handler; overwritten with current template"
		return res
	}

	actual, err := os.ReadFile(target)
	if os.IsNotExist(err) {
		if werr := writeFileAtomic(target, []byte(f.ExpectedContent), 0644); werr != nil {
			res.Action = ActionFailed
			res.Message = werr.Error()
			return res
		}
		res.Action = ActionCreated
		res.Message = "created from template"
		return res
	}
	if err != nil {
		res.Action = ActionFailed
		res.Message = err.Error()
		return res
	}

	merged, added := spec.Composite.Merge([]byte(f.ExpectedContent), actual)
	if len(added) == 0 {
		res.Action = ActionSkipped
		res.Message = "all expected entries already present"
		return res
	}
	if err := writeFileAtomic(target, merged, 0644); err != nil {
		res.Action = ActionFailed
		res.Message = err.Error()
		return res
	}
	res.Action = ActionUpdated
	res.Message = "added " + summarizeAdded(added)
	return res
}

// bumpGeneratorVersion rewrites the version marker, preserving any extra
// keys other tools may have stored alongside it.
func bumpGeneratorVersion(pluginPath, version string) Result {
	res := Result{Path: manifest.MetadataPath}
	target := filepath.Join(pluginPath, filepath.FromSlash(manifest.MetadataPath))

	_, statErr := os.Stat(target)
	existed := statErr == nil

	raw := manifest.ReadMetadata(pluginPath)
	raw["generatorVersion"] = version

	data, err := manifest.EncodeMetadata(raw)
	if err != nil {
		res.Action = ActionFailed
		res.Message = err.Error()
		return res
	}
	if err := writeFileAtomic(target, data, 0644); err != nil {
		res.Action = ActionFailed
		res.Message = err.Error()
		return res
	}

	if existed {
		res.Action = ActionUpdated
	} else {
		res.Action = ActionCreated
	}
	res.Message = fmt.Sprintf("generator version set to %s", version)
	return res
}

// summarizeAdded names up to addedEntryCap merged entries.
func summarizeAdded(added []string) string {
	shown := added
	if len(shown) > addedEntryCap {
		shown = shown[:addedEntryCap]
	}
	s := strings.Join(shown, ", ")
	if len(added) > addedEntryCap {
		s += fmt.Sprintf(" (+%d more)", len(added)-addedEntryCap)
	}
	return s
}
