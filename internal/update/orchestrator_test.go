package update

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oakensoul/aida/internal/manifest"
	"github.com/oakensoul/aida/internal/patch"
	"github.com/oakensoul/aida/internal/registry"
	"github.com/oakensoul/aida/internal/scaffold"
	"github.com/oakensoul/aida/internal/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// generatePlugin scaffolds a complete shell plugin for round-trip tests.
func generatePlugin(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "demo")

	_, err := scaffold.Generate(context.Background(), scaffold.Options{
		Name:        "demo",
		Description: "A demo plugin",
		Language:    registry.LangShell,
		License:     "MIT",
		AuthorName:  "Sam Roe",
		AuthorEmail: "sam@example.com",
		TargetDir:   dir,
	})
	require.NoError(t, err)
	return dir
}

func TestPlanOnFreshScaffoldIsQuiet(t *testing.T) {
	dir := generatePlugin(t)

	plan, err := Plan(context.Background(), dir, "")
	require.NoError(t, err)

	assert.Equal(t, "plan", plan.Phase)
	assert.False(t, plan.NeedsUpdate)
	assert.Empty(t, plan.Questions)

	s := plan.Report.Summarize()
	assert.Zero(t, s.Missing)
	assert.Zero(t, s.Outdated)
}

func TestPlanAsksAboutDriftedBoilerplate(t *testing.T) {
	dir := generatePlugin(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".editorconfig"), []byte("drifted"), 0644))

	plan, err := Plan(context.Background(), dir, "")
	require.NoError(t, err)

	assert.True(t, plan.NeedsUpdate)
	require.Len(t, plan.Questions, 1)
	q := plan.Questions[0]
	assert.Equal(t, QuestionBoilerplate, q.ID)
	assert.Equal(t, string(registry.StrategyOverwrite), q.Default)
	assert.Contains(t, q.Options, string(registry.StrategySkip))
}

func TestExecuteRestoresDriftedBoilerplate(t *testing.T) {
	dir := generatePlugin(t)
	original, err := os.ReadFile(filepath.Join(dir, ".editorconfig"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".editorconfig"), []byte("drifted"), 0644))

	resp, err := Execute(context.Background(), dir, "", nil)
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Contains(t, resp.FilesUpdated, ".editorconfig")
	assert.NotEmpty(t, resp.BackupPath)

	restored, err := os.ReadFile(filepath.Join(dir, ".editorconfig"))
	require.NoError(t, err)
	assert.Equal(t, original, restored)

	// The next plan is quiet again
	plan, err := Plan(context.Background(), dir, "")
	require.NoError(t, err)
	assert.False(t, plan.NeedsUpdate)
}

func TestExecuteHonorsSkipAnswer(t *testing.T) {
	dir := generatePlugin(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".editorconfig"), []byte("drifted"), 0644))

	resp, err := Execute(context.Background(), dir, "", map[string]string{
		QuestionBoilerplate: string(registry.StrategySkip),
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Contains(t, resp.FilesSkipped, ".editorconfig")

	content, err := os.ReadFile(filepath.Join(dir, ".editorconfig"))
	require.NoError(t, err)
	assert.Equal(t, "drifted", string(content))
}

func TestExecuteBumpsStaleGeneratorVersion(t *testing.T) {
	dir := generatePlugin(t)
	marker := filepath.Join(dir, filepath.FromSlash(manifest.MetadataPath))
	require.NoError(t, os.WriteFile(marker, []byte(`{"generatorVersion":"0.1.0"}`), 0644))

	plan, err := Plan(context.Background(), dir, "")
	require.NoError(t, err)
	assert.True(t, plan.NeedsUpdate)
	assert.Empty(t, plan.Questions)

	resp, err := Execute(context.Background(), dir, "", nil)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, resp.GeneratorVersion, manifest.GeneratorVersion(dir))

	plan, err = Plan(context.Background(), dir, "")
	require.NoError(t, err)
	assert.False(t, plan.NeedsUpdate)
}

func TestExecuteOnCleanScaffoldIsNoop(t *testing.T) {
	dir := generatePlugin(t)

	resp, err := Execute(context.Background(), dir, "", nil)
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "Already up to date", resp.Message)
	assert.Empty(t, resp.Results)
	assert.Empty(t, resp.BackupPath)
}

func TestExecuteMergesEditedGitignore(t *testing.T) {
	dir := generatePlugin(t)
	gitignore := filepath.Join(dir, ".gitignore")
	require.NoError(t, os.WriteFile(gitignore, []byte("only-mine.txt\n"), 0644))

	resp, err := Execute(context.Background(), dir, "", nil)
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Contains(t, resp.FilesUpdated, ".gitignore")

	content, err := os.ReadFile(gitignore)
	require.NoError(t, err)
	assert.Contains(t, string(content), "only-mine.txt")
}

func TestPlanSerializesReportForTheWire(t *testing.T) {
	dir := generatePlugin(t)

	plan, err := Plan(context.Background(), dir, "")
	require.NoError(t, err)

	require.NotEmpty(t, plan.Inferred)
	var report scan.DiffReport
	require.NoError(t, json.Unmarshal([]byte(plan.Inferred), &report))
	assert.Equal(t, "demo", report.PluginName)
	assert.Equal(t, plan.Report.CurrentVersion, report.CurrentVersion)
	assert.Len(t, report.Files, len(plan.Report.Files))
}

func TestPartialFailureKeepsOverallSuccess(t *testing.T) {
	rep := &scan.DiffReport{PluginName: "demo", CurrentVersion: "0.4.0"}

	resp := buildResponse(rep, []patch.Result{
		{Path: ".editorconfig", Action: patch.ActionUpdated},
		{Path: ".gitignore", Action: patch.ActionFailed, Message: "backup failed reading .gitignore: is a directory"},
	}, "")

	assert.True(t, resp.Success)
	assert.Equal(t, []string{".gitignore"}, resp.FilesFailed)
	assert.Equal(t, []string{".editorconfig"}, resp.FilesUpdated)
	assert.Contains(t, resp.Message, "1 failures")
}

func TestExecuteSurvivesUnreadableFile(t *testing.T) {
	dir := generatePlugin(t)

	// A directory where a boilerplate file should be makes its content
	// unreadable; the scan routes it to manual review and the update
	// must finish without touching it.
	editorconfig := filepath.Join(dir, ".editorconfig")
	require.NoError(t, os.Remove(editorconfig))
	require.NoError(t, os.Mkdir(editorconfig, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(editorconfig, "keep.txt"), []byte("prior"), 0644))

	resp, err := Execute(context.Background(), dir, "", nil)
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Results)
	assert.Contains(t, resp.FilesSkipped, ".editorconfig")

	data, err := os.ReadFile(filepath.Join(editorconfig, "keep.txt"))
	require.NoError(t, err)
	assert.Equal(t, "prior", string(data))
}

func TestManualStepsAdviseDependencyManifest(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "demo-node")
	_, err := scaffold.Generate(context.Background(), scaffold.Options{
		Name:        "demo-node",
		Description: "A demo plugin",
		Language:    registry.LangNode,
		License:     "MIT",
		AuthorName:  "Sam Roe",
		AuthorEmail: "sam@example.com",
		TargetDir:   dir,
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".editorconfig"), []byte("drifted"), 0644))

	resp, err := Execute(context.Background(), dir, "", nil)
	require.NoError(t, err)

	// package.json exists and passed the existence-only check, yet it
	// still gets an advisory line
	joined := strings.Join(resp.ManualSteps, "\n")
	assert.Contains(t, joined, "package.json")
	assert.Contains(t, joined, "never compared")
}

func TestManualStepsListReviewFiles(t *testing.T) {
	dir := generatePlugin(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".editorconfig"), []byte("x"), 0644))

	resp, err := Execute(context.Background(), dir, "", nil)
	require.NoError(t, err)

	require.NotEmpty(t, resp.ManualSteps)
	joined := ""
	for _, s := range resp.ManualSteps {
		joined += s + "\n"
	}
	assert.Contains(t, joined, "test suite")
	assert.Contains(t, joined, "linter")
}
