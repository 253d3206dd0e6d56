package diffview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var borderStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))

// Show displays a diff, paging through a full-screen viewport when it is
// longer than 20 lines and printing inline otherwise.
func Show(path, diff string) error {
	if diff == "" {
		return nil
	}

	lineCount := strings.Count(diff, "\n")
	if lineCount <= 20 {
		fmt.Println(diff)
		return nil
	}

	model := newPagerModel(path, diff)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to show diff: %w", err)
	}
	return nil
}

// pagerModel is the BubbleTea model for scrolling through diffs
type pagerModel struct {
	path     string
	diff     string
	viewport viewport.Model
	ready    bool
}

func newPagerModel(path, diff string) pagerModel {
	return pagerModel{
		path: path,
		diff: diff,
	}
}

// Init initializes the pager
func (m pagerModel) Init() tea.Cmd {
	return nil
}

// Update handles keyboard input and window sizing
func (m pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit

		case "up", "k":
			m.viewport.ScrollUp(1)

		case "down", "j":
			m.viewport.ScrollDown(1)

		case "pgup", "b":
			m.viewport.PageUp()

		case "pgdown", "f", "space":
			m.viewport.PageDown()
		}

	case tea.WindowSizeMsg:
		headerHeight := 3
		footerHeight := 2
		verticalMargin := headerHeight + footerHeight

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, msg.Height-verticalMargin)
			m.viewport.SetContent(m.diff)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = msg.Height - verticalMargin
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the pager
func (m pagerModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder

	// Header
	title := fmt.Sprintf("─ Diff: %s ", m.path)
	padding := strings.Repeat("─", maxInt(0, m.viewport.Width-len(title)+4))
	b.WriteString(borderStyle.Render(fmt.Sprintf("┌%s%s┐\n", title, padding)))

	// Viewport content
	lines := strings.Split(m.viewport.View(), "\n")
	for _, line := range lines {
		b.WriteString(borderStyle.Render("│") + " " + line)
		// Pad to viewport width
		padding := strings.Repeat(" ", maxInt(0, m.viewport.Width-len(line)-1))
		b.WriteString(padding + borderStyle.Render("│") + "\n")
	}

	// Footer
	footer := " [↑/↓] Scroll    [q] Close "
	padding = strings.Repeat("─", maxInt(0, m.viewport.Width-len(footer)+4))
	b.WriteString(borderStyle.Render(fmt.Sprintf("└%s%s┘\n", padding, footer)))

	return b.String()
}

// maxInt returns the maximum of two integers
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
