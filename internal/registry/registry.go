// Package registry is the static table of every file a freshly generated
// plugin scaffold contains, with its category and default reconciliation
// strategy.
//
// The registry is hand-maintained in lockstep with the template tree in
// internal/templates; it is the sole source of truth the scan and patch
// engines consult.
package registry

import (
	"github.com/oakensoul/aida/internal/composite"
)

// FileCategory classifies how a generated file relates to user content.
type FileCategory string

const (
	// CategoryCustom marks user-authored files (README, license, top-level docs).
	CategoryCustom FileCategory = "custom"
	// CategoryMetadata marks manifest and version-marker files.
	CategoryMetadata FileCategory = "metadata"
	// CategoryBoilerplate marks lint/format/tool configs with low customization risk.
	CategoryBoilerplate FileCategory = "boilerplate"
	// CategoryTestScaffold marks generated test fixtures.
	CategoryTestScaffold FileCategory = "test_scaffold"
	// CategoryCIWorkflow marks CI pipeline definitions.
	CategoryCIWorkflow FileCategory = "ci_workflow"
	// CategoryDependencyConfig marks package/dependency manifests.
	CategoryDependencyConfig FileCategory = "dependency_config"
	// CategoryComposite marks files compared by entry set (.gitignore, Makefile).
	CategoryComposite FileCategory = "composite"
)

// Strategy is a reconciliation strategy for bringing one file up to date.
type Strategy string

const (
	StrategySkip         Strategy = "skip"
	StrategyOverwrite    Strategy = "overwrite"
	StrategyMerge        Strategy = "merge"
	StrategyAdd          Strategy = "add"
	StrategyManualReview Strategy = "manual_review"
)

// Language identifies a language-specific template set.
type Language string

const (
	LangPython Language = "python"
	LangNode   Language = "node"
	LangShell  Language = "shell"
)

// DefaultLanguage is assumed when no filesystem signature matches.
const DefaultLanguage = LangShell

// Languages returns the supported languages, most specific detection first.
func Languages() []Language {
	return []Language{LangPython, LangNode, LangShell}
}

// DefaultStrategy returns the reconciliation strategy a category carries
// unless a FileSpec overrides it.
//
// Custom and metadata files are never touched: the former are user-authored,
// the latter would need a deep merge that is not implemented. Boilerplate is
// safe to overwrite. Test scaffolds and CI workflows are created when absent
// but an existing (possibly customized) copy is left alone. Dependency
// manifests are unsafe to auto-merge. Composite files get append-only merges.
func DefaultStrategy(c FileCategory) Strategy {
	switch c {
	case CategoryCustom, CategoryMetadata:
		return StrategySkip
	case CategoryBoilerplate:
		return StrategyOverwrite
	case CategoryTestScaffold, CategoryCIWorkflow:
		return StrategyAdd
	case CategoryDependencyConfig:
		return StrategyManualReview
	case CategoryComposite:
		return StrategyMerge
	default:
		return StrategySkip
	}
}

// FileSpec describes one file the generator produces.
type FileSpec struct {
	// Path is the file's location relative to the plugin root.
	Path string
	// Template is the expected-content template, relative to the template
	// tree root. Empty for files whose content the engine never renders
	// (the license file and the version marker).
	Template string
	// Category drives the default reconciliation strategy.
	Category FileCategory
	// Default is the strategy applied unless an override is given.
	Default Strategy
	// Language restricts the spec to one language; empty means shared.
	Language Language
	// UserOverridable marks files users are expected to edit after generation.
	UserOverridable bool
	// Composite is the comparator/merger for composite files, nil otherwise.
	Composite composite.File
}

// sharedSpecs are generated for every language.
var sharedSpecs = []FileSpec{
	{Path: "README.md", Template: "shared/readme.md.tmpl", Category: CategoryCustom, Default: StrategySkip, UserOverridable: true},
	{Path: "CLAUDE.md", Template: "shared/claude.md.tmpl", Category: CategoryCustom, Default: StrategySkip, UserOverridable: true},
	{Path: "LICENSE", Category: CategoryCustom, Default: StrategySkip, UserOverridable: true},
	{Path: ".claude-plugin/plugin.json", Template: "shared/plugin.json.tmpl", Category: CategoryMetadata, Default: StrategySkip, UserOverridable: true},
	{Path: ".claude-plugin/marketplace.json", Template: "shared/marketplace.json.tmpl", Category: CategoryMetadata, Default: StrategySkip, UserOverridable: true},
	{Path: ".aida/generator.json", Category: CategoryMetadata, Default: StrategySkip},
	{Path: ".gitignore", Template: "shared/gitignore.tmpl", Category: CategoryComposite, Default: StrategyMerge, UserOverridable: true, Composite: composite.Gitignore{}},
	{Path: "Makefile", Template: "shared/makefile.tmpl", Category: CategoryComposite, Default: StrategyMerge, UserOverridable: true, Composite: composite.Makefile{}},
	{Path: ".editorconfig", Template: "shared/editorconfig.tmpl", Category: CategoryBoilerplate, Default: StrategyOverwrite},
	{Path: ".github/workflows/validate.yml", Template: "shared/ci.yml.tmpl", Category: CategoryCIWorkflow, Default: StrategyAdd, UserOverridable: true},
}

// languageSpecs are generated only for their language.
var languageSpecs = map[Language][]FileSpec{
	LangPython: {
		{Path: "pyproject.toml", Template: "python/pyproject.toml.tmpl", Category: CategoryDependencyConfig, Default: StrategyManualReview, Language: LangPython, UserOverridable: true},
		{Path: "ruff.toml", Template: "python/ruff.toml.tmpl", Category: CategoryBoilerplate, Default: StrategyOverwrite, Language: LangPython},
		{Path: "tests/test_plugin.py", Template: "python/test_plugin.py.tmpl", Category: CategoryTestScaffold, Default: StrategyAdd, Language: LangPython, UserOverridable: true},
		{Path: ".github/workflows/python-tests.yml", Template: "python/python-tests.yml.tmpl", Category: CategoryCIWorkflow, Default: StrategyAdd, Language: LangPython, UserOverridable: true},
	},
	LangNode: {
		{Path: "package.json", Template: "node/package.json.tmpl", Category: CategoryDependencyConfig, Default: StrategyManualReview, Language: LangNode, UserOverridable: true},
		{Path: ".prettierrc.json", Template: "node/prettierrc.json.tmpl", Category: CategoryBoilerplate, Default: StrategyOverwrite, Language: LangNode},
		{Path: "tests/plugin.test.js", Template: "node/plugin.test.js.tmpl", Category: CategoryTestScaffold, Default: StrategyAdd, Language: LangNode, UserOverridable: true},
		{Path: ".github/workflows/node-tests.yml", Template: "node/node-tests.yml.tmpl", Category: CategoryCIWorkflow, Default: StrategyAdd, Language: LangNode, UserOverridable: true},
	},
	LangShell: {
		{Path: ".shellcheckrc", Template: "shell/shellcheckrc.tmpl", Category: CategoryBoilerplate, Default: StrategyOverwrite, Language: LangShell},
		{Path: "tests/run_tests.sh", Template: "shell/run_tests.sh.tmpl", Category: CategoryTestScaffold, Default: StrategyAdd, Language: LangShell, UserOverridable: true},
		{Path: ".github/workflows/shell-tests.yml", Template: "shell/shell-tests.yml.tmpl", Category: CategoryCIWorkflow, Default: StrategyAdd, Language: LangShell, UserOverridable: true},
	},
}

// Specs returns the shared plus language-specific specs for a language,
// in a deterministic order, performing no I/O. The returned slice is a
// fresh copy the caller may modify.
func Specs(lang Language) []FileSpec {
	specs := make([]FileSpec, 0, len(sharedSpecs)+len(languageSpecs[lang]))
	specs = append(specs, sharedSpecs...)
	specs = append(specs, languageSpecs[lang]...)
	return specs
}

// Find returns the spec for a path within a language's spec set.
func Find(lang Language, path string) (FileSpec, bool) {
	for _, spec := range Specs(lang) {
		if spec.Path == path {
			return spec, true
		}
	}
	return FileSpec{}, false
}
