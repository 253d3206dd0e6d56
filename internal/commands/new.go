package commands

import (
	"fmt"
	"os"

	"github.com/oakensoul/aida/internal/input"
	"github.com/oakensoul/aida/internal/manifest"
	"github.com/oakensoul/aida/internal/output"
	"github.com/oakensoul/aida/internal/registry"
	"github.com/oakensoul/aida/internal/scaffold"
	"github.com/spf13/cobra"
)

// NewCmd creates and returns the 'new' command for scaffolding plugins
func NewCmd() *cobra.Command {
	var (
		language    string
		license     string
		author      string
		email       string
		description string
		dir         string
		templates   string
		dryRun      bool
		force       bool
	)

	cmd := &cobra.Command{
		Use:   "new [plugin-name]",
		Short: "Create a new plugin scaffold",
		Long: `Creates a complete plugin scaffold:
• Manifest and marketplace listing
• README, CLAUDE.md, LICENSE
• Language-specific lint, test and CI files
• .gitignore and Makefile

Example:
  aida new my-plugin --language python`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			var name string
			if len(args) > 0 {
				name = args[0]
			} else {
				name = input.Prompt("Plugin name", "")
			}
			if name == "" {
				output.Error("A plugin name is required")
				os.Exit(1)
			}

			if language == "" && len(args) == 0 {
				langs := registry.Languages()
				choices := make([]string, len(langs))
				defaultIdx := 0
				for i, l := range langs {
					choices[i] = string(l)
					if l == registry.DefaultLanguage {
						defaultIdx = i
					}
				}
				language = choices[input.Select("Plugin language", choices, defaultIdx)]
			}
			if language == "" {
				language = string(registry.DefaultLanguage)
			}
			if license == "" {
				license = manifest.DefaultLicense
			}

			output.Verbose(fmt.Sprintf("Creating %s plugin: %s", language, name))

			_, err := scaffold.Generate(cmd.Context(), scaffold.Options{
				Name:         name,
				Description:  description,
				Language:     registry.Language(language),
				License:      license,
				AuthorName:   author,
				AuthorEmail:  email,
				TargetDir:    dir,
				TemplatesDir: templates,
				DryRun:       dryRun,
				Force:        force,
			})
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			if !dryRun {
				output.Info("Next steps:")
				output.Step(fmt.Sprintf("cd %s", name))
				output.Step("make test")
				output.Step("git init && git add -A")
			}
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "Plugin language: python, node or shell")
	cmd.Flags().StringVar(&license, "license", "", "License identifier (MIT, Apache-2.0, BSD-3-Clause)")
	cmd.Flags().StringVar(&author, "author", "", "Author name (defaults to git identity)")
	cmd.Flags().StringVar(&email, "email", "", "Author email (defaults to git identity)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Short plugin description")
	cmd.Flags().StringVar(&dir, "dir", "", "Target directory (defaults to ./<plugin-name>)")
	cmd.Flags().StringVar(&templates, "templates", "", "Directory overriding the built-in templates")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be created without writing")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")

	return cmd
}
