// Package output provides styled terminal output for the aida CLI.
//
// All commands use this package for consistent UX. Functions use lipgloss
// for styling but abstract away the details from callers.
package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	verboseMode bool
)

// SetVerbose enables or disables verbose output for debugging.
// This should be called by the CLI when the --verbose flag is set.
func SetVerbose(v bool) {
	verboseMode = v
}

// Success prints a success message in green.
// Use this for completed operations.
//
// Example:
//
//	output.Success("Created plugin: my-plugin")
func Success(msg string) {
	fmt.Println(successStyle.Render("✅ " + msg))
}

// Error prints an error message in red.
// Use this for failures that need user attention.
func Error(msg string) {
	fmt.Println(errorStyle.Render("❌ " + msg))
}

// Warn prints a warning message in yellow.
// Use this for recoverable problems the user should know about, like an
// unrecognized license id that was substituted with a default.
func Warn(msg string) {
	fmt.Println(warnStyle.Render("⚠️  " + msg))
}

// Info prints an informational message in cyan.
// Use this for status updates or explanations.
func Info(msg string) {
	fmt.Println(infoStyle.Render("ℹ️  " + msg))
}

// Step prints an indented step message in gray.
// Use this for actionable next steps or sub-items.
//
// Example:
//
//	output.Step("cd my-plugin")
//	output.Step("make test")
func Step(msg string) {
	fmt.Println(stepStyle.Render("   " + msg))
}

// Verbose prints a debug message only if verbose mode is enabled.
func Verbose(msg string) {
	if verboseMode {
		fmt.Println(stepStyle.Render("🔍 " + msg))
	}
}
