package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/oakensoul/aida/internal/diffview"
	"github.com/oakensoul/aida/internal/input"
	"github.com/oakensoul/aida/internal/output"
	"github.com/oakensoul/aida/internal/scan"
	"github.com/oakensoul/aida/internal/update"
	"github.com/spf13/cobra"
)

// UpdateCmd creates and returns the 'update' command for reconciling an
// existing plugin with the current templates
func UpdateCmd() *cobra.Command {
	var (
		templates string
		showDiff  bool
		yes       bool
		dryRun    bool
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "update [plugin-path]",
		Short: "Update a plugin scaffold to the current templates",
		Long: `Scans a plugin for drift against the current templates and applies
per-file update strategies. Every file about to change is backed up
first, and the recorded generator version is bumped last.

Example:
  aida update ./my-plugin --diff`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			pluginPath := "."
			if len(args) > 0 {
				pluginPath = args[0]
			}

			plan, err := update.Plan(cmd.Context(), pluginPath, templates)
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			if asJSON {
				data, err := json.MarshalIndent(plan, "", "  ")
				if err != nil {
					output.Error(err.Error())
					os.Exit(1)
				}
				fmt.Println(string(data))
				return
			}

			fmt.Println(scan.FormatTable(plan.Report))

			if showDiff {
				showDiffs(plan.Report)
			}

			if !plan.NeedsUpdate {
				output.Success("Already up to date")
				return
			}
			if dryRun {
				output.Info("Dry run; no changes applied")
				return
			}

			responses := answerQuestions(plan.Questions, yes)

			if !yes && !input.Confirm("Apply these updates?", true) {
				output.Info("Aborted; nothing changed")
				return
			}

			resp, err := update.Execute(cmd.Context(), pluginPath, templates, responses)
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			printResults(resp)
		},
	}

	cmd.Flags().StringVar(&templates, "templates", "", "Directory overriding the built-in templates")
	cmd.Flags().BoolVar(&showDiff, "diff", false, "Show per-file diffs for outdated files")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Apply without prompting, using default answers")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Scan and report without applying")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the plan as JSON and exit")

	return cmd
}

// showDiffs pages through the diff of every outdated file whose contents
// were compared.
func showDiffs(report *scan.DiffReport) {
	for _, f := range report.Outdated() {
		if f.ExpectedContent == "" || f.ActualContent == "" {
			continue
		}
		diff := diffview.Generate(f.Path, []byte(f.ActualContent), []byte(f.ExpectedContent), nil)
		if err := diffview.Show(f.Path, diff); err != nil {
			output.Warn(fmt.Sprintf("Cannot show diff for %s: %v", f.Path, err))
		}
	}
}

// answerQuestions collects answers interactively, or takes every default
// when yes is set.
func answerQuestions(questions []update.Question, yes bool) map[string]string {
	responses := make(map[string]string)
	for _, q := range questions {
		if yes {
			responses[q.ID] = q.Default
			continue
		}
		defaultIdx := 0
		for i, opt := range q.Options {
			if opt == q.Default {
				defaultIdx = i
			}
		}
		responses[q.ID] = q.Options[input.Select(q.Prompt, q.Options, defaultIdx)]
	}
	return responses
}

func printResults(resp *update.ExecuteResponse) {
	for _, r := range resp.Results {
		switch r.Action {
		case "failed":
			output.Error(fmt.Sprintf("%s: %s", r.Path, r.Message))
		default:
			output.Step(fmt.Sprintf("%s %s (%s)", r.Action, r.Path, r.Message))
		}
	}

	if resp.BackupPath != "" {
		output.Info(fmt.Sprintf("Backups saved to %s", resp.BackupPath))
	}
	if len(resp.ManualSteps) > 0 {
		output.Info("Manual steps:")
		for _, step := range resp.ManualSteps {
			output.Step(step)
		}
	}

	if len(resp.FilesFailed) > 0 {
		output.Warn(resp.Message)
	} else {
		output.Success(resp.Message)
	}
}
