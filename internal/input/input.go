// Package input collects interactive answers on the terminal: free-text
// prompts, yes/no confirmations, and an arrow-key select menu for the
// update questions.
package input

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Prompt asks for a line of text. An empty answer, or a read error on a
// closed stdin, yields defaultValue.
//
// Example:
//
//	author := input.Prompt("Author name", "Jane Developer")
//	// Displays: Author name (Jane Developer): _
func Prompt(message, defaultValue string) string {
	reader := bufio.NewReader(os.Stdin)

	if defaultValue != "" {
		fmt.Print(promptStyle.Render(message) + " " +
			hintStyle.Render(fmt.Sprintf("(%s)", defaultValue)) + ": ")
	} else {
		fmt.Print(promptStyle.Render(message) + ": ")
	}

	answer, err := reader.ReadString('\n')
	if err != nil {
		return defaultValue
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return defaultValue
	}
	return answer
}

// Confirm asks a yes/no question and accepts y/yes in any case. Enter
// takes the default, which the [Y/n] hint reflects.
//
// Example:
//
//	if input.Confirm("Apply these updates?", true) {
//	    // proceed
//	}
func Confirm(message string, defaultYes bool) bool {
	reader := bufio.NewReader(os.Stdin)

	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	fmt.Print(promptStyle.Render(message) + " " + hintStyle.Render(hint) + ": ")

	answer, err := reader.ReadString('\n')
	if err != nil {
		return defaultYes
	}

	answer = strings.TrimSpace(strings.ToLower(answer))
	if answer == "" {
		return defaultYes
	}
	return answer == "y" || answer == "yes"
}
