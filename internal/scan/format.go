package scan

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// FormatTable renders a report as a terminal table for the update command.
func FormatTable(r *DiffReport) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"File", "Category", "Status", "Strategy", "Size", "Details"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Details", WidthMax: 48},
		{Name: "Status", Transformer: statusColor},
	})

	for _, f := range r.Files {
		size := "-"
		if f.ActualContent != "" {
			size = humanize.Bytes(uint64(len(f.ActualContent)))
		}
		t.AppendRow(table.Row{f.Path, f.Category, f.Status, f.Strategy, size, f.DiffSummary})
	}

	s := r.Summarize()
	t.AppendFooter(table.Row{
		fmt.Sprintf("%s (%s)", r.PluginName, r.Language), "",
		fmt.Sprintf("%d drift", s.Missing+s.Outdated), "",
		"", fmt.Sprintf("generator %s → %s", r.GeneratorVersion, r.CurrentVersion),
	})

	return t.Render()
}

// statusColor highlights actionable statuses.
func statusColor(val any) string {
	status, ok := val.(FileStatus)
	if !ok {
		return fmt.Sprint(val)
	}
	switch status {
	case StatusMissing:
		return text.FgRed.Sprint(string(status))
	case StatusOutdated:
		return text.FgYellow.Sprint(string(status))
	case StatusUpToDate:
		return text.FgGreen.Sprint(string(status))
	default:
		return string(status)
	}
}
