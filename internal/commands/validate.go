package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/oakensoul/aida/internal/manifest"
	"github.com/oakensoul/aida/internal/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// ValidateCmd creates and returns the 'validate' command for checking a
// plugin scaffold's metadata
func ValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [plugin-path]",
		Short: "Validate a plugin's manifest and workflow files",
		Long: `Checks that the plugin manifest conforms to its schema, that the
license is a known identifier, and that CI workflow files parse as YAML.

Example:
  aida validate ./my-plugin`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			pluginPath := "."
			if len(args) > 0 {
				pluginPath = args[0]
			}

			if !validatePlugin(pluginPath) {
				os.Exit(1)
			}
			output.Success("Plugin is valid")
		},
	}

	return cmd
}

func validatePlugin(pluginPath string) bool {
	valid := true

	data, err := os.ReadFile(filepath.Join(pluginPath, manifest.Path))
	if err != nil {
		output.Error(fmt.Sprintf("Cannot read %s: %v", manifest.Path, err))
		return false
	}

	issues, err := manifest.ValidateBytes(data)
	if err != nil {
		output.Error(fmt.Sprintf("Schema validation failed: %v", err))
		return false
	}
	for _, issue := range issues {
		output.Error(fmt.Sprintf("%s: %s: %s", manifest.Path, issue.Field, issue.Message))
		valid = false
	}

	m, err := manifest.Load(pluginPath)
	if err != nil {
		output.Error(err.Error())
		return false
	}
	if m.License != "" {
		if _, known := manifest.ResolveLicense(m.License, 0, ""); !known {
			output.Warn(fmt.Sprintf("Unknown license %q (known: %v)", m.License, manifest.KnownLicenses()))
		}
	}

	workflows, _ := filepath.Glob(filepath.Join(pluginPath, ".github", "workflows", "*.yml"))
	for _, wf := range workflows {
		data, err := os.ReadFile(wf)
		if err != nil {
			output.Error(fmt.Sprintf("Cannot read %s: %v", wf, err))
			valid = false
			continue
		}
		var parsed any
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			output.Error(fmt.Sprintf("%s is not valid YAML: %v", wf, err))
			valid = false
		}
	}
	output.Verbose(fmt.Sprintf("Checked %d workflow files", len(workflows)))

	return valid
}
