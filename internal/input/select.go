package input

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("white")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Select shows an interactive menu and returns the index of the chosen entry.
// Returns defaultIdx if the user cancels (q/esc/ctrl+c) or if the menu
// cannot be displayed (e.g. stdin is not a terminal).
//
// Example:
//
//	idx := input.Select("Drifted boilerplate files", []string{
//	    "Overwrite with current templates",
//	    "Keep my versions",
//	}, 0)
func Select(message string, choices []string, defaultIdx int) int {
	if len(choices) == 0 {
		return defaultIdx
	}
	if defaultIdx < 0 || defaultIdx >= len(choices) {
		defaultIdx = 0
	}

	model := selectModel{
		message: message,
		choices: choices,
		cursor:  defaultIdx,
	}

	p := tea.NewProgram(model)
	finalModel, err := p.Run()
	if err != nil {
		return defaultIdx
	}

	result := finalModel.(selectModel)
	if result.selected == nil {
		return defaultIdx
	}

	return *result.selected
}

// selectModel is the BubbleTea model for the selection menu
type selectModel struct {
	message  string
	choices  []string
	cursor   int
	selected *int
}

// Init initializes the menu model
func (m selectModel) Init() tea.Cmd {
	return nil
}

// Update handles keyboard input
func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			}

		case "enter":
			choice := m.cursor
			m.selected = &choice
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the menu
func (m selectModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.message) + "\n\n")
	b.WriteString(mutedStyle.Render("    [↑/↓] Navigate    [Enter] Select    [q] Keep default") + "\n\n")

	for i, choice := range m.choices {
		cursor := "  "
		if m.cursor == i {
			cursor = "> "
			b.WriteString("    " + selectedStyle.Render(cursor+choice) + "\n")
		} else {
			b.WriteString("    " + cursor + choice + "\n")
		}
	}

	return b.String()
}
