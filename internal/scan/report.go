package scan

import (
	"encoding/json"

	"github.com/oakensoul/aida/internal/registry"
)

// FileStatus is the scan-time state of one scaffold file.
type FileStatus string

const (
	// StatusMissing means the file does not exist on disk.
	StatusMissing FileStatus = "missing"
	// StatusOutdated means the file exists but drifted from the template.
	StatusOutdated FileStatus = "outdated"
	// StatusUpToDate means the file matches the current template.
	StatusUpToDate FileStatus = "up_to_date"
	// StatusCustomSkip means the file is user-managed and never compared.
	StatusCustomSkip FileStatus = "custom_skip"
)

// FileDiff is the scan result for a single file. Created fresh every scan,
// never persisted.
type FileDiff struct {
	Path     string                `json:"path"`
	Category registry.FileCategory `json:"category"`
	Status   FileStatus            `json:"status"`

	// Strategy is the effective recommended strategy; it may differ from
	// the registry default (composite files always resolve to merge).
	Strategy registry.Strategy `json:"strategy"`

	ExpectedContent string `json:"expectedContent,omitempty"`
	ActualContent   string `json:"actualContent,omitempty"`
	DiffSummary     string `json:"diffSummary,omitempty"`
}

// DiffReport aggregates one scan of a plugin scaffold.
type DiffReport struct {
	PluginPath string            `json:"pluginPath"`
	PluginName string            `json:"pluginName"`
	Language   registry.Language `json:"language"`

	// GeneratorVersion is the version recorded on the target;
	// CurrentVersion is the engine's own version.
	GeneratorVersion string `json:"generatorVersion"`
	CurrentVersion   string `json:"currentVersion"`

	Files []FileDiff `json:"files"`
}

// Missing returns the files absent from disk.
func (r *DiffReport) Missing() []FileDiff { return r.withStatus(StatusMissing) }

// Outdated returns the files that drifted from their templates.
func (r *DiffReport) Outdated() []FileDiff { return r.withStatus(StatusOutdated) }

// UpToDate returns the files matching their templates.
func (r *DiffReport) UpToDate() []FileDiff { return r.withStatus(StatusUpToDate) }

// CustomSkips returns the user-managed files that were not compared.
func (r *DiffReport) CustomSkips() []FileDiff { return r.withStatus(StatusCustomSkip) }

func (r *DiffReport) withStatus(status FileStatus) []FileDiff {
	var files []FileDiff
	for _, f := range r.Files {
		if f.Status == status {
			files = append(files, f)
		}
	}
	return files
}

// Summary holds the per-status counts of a report.
type Summary struct {
	Missing    int `json:"missing"`
	Outdated   int `json:"outdated"`
	UpToDate   int `json:"upToDate"`
	CustomSkip int `json:"customSkip"`
}

// Summarize counts files by status.
func (r *DiffReport) Summarize() Summary {
	var s Summary
	for _, f := range r.Files {
		switch f.Status {
		case StatusMissing:
			s.Missing++
		case StatusOutdated:
			s.Outdated++
		case StatusUpToDate:
			s.UpToDate++
		case StatusCustomSkip:
			s.CustomSkip++
		}
	}
	return s
}

// NeedsUpdate reports whether applying patches would change anything.
// A stale generator version alone counts: the version bump is itself an
// update, and clearing it is what makes the next scan quiet.
func (r *DiffReport) NeedsUpdate() bool {
	s := r.Summarize()
	return s.Missing > 0 || s.Outdated > 0 || r.GeneratorVersion != r.CurrentVersion
}

// Serialize renders the report as JSON for the two-phase update protocol.
func (r *DiffReport) Serialize() (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
