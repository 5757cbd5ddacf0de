package output

import (
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/maxrange/maxrange/internal/core"
)

// TableFormatter renders results as an ASCII table.
type TableFormatter struct{}

// FormatBatch renders a batch result as a table.
func (f *TableFormatter) FormatBatch(result *core.BatchResult) (string, error) {
	if result == nil {
		return "", nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetTitle(result.Name)
	t.AppendHeader(table.Row{"Query", "Values", "Bounds", "Count", "Expected", "Status", "Notes"})

	for _, e := range result.Evaluations {
		if e == nil {
			continue
		}
		t.AppendRow(table.Row{
			e.Query.Name,
			formatValues(e.Query.Values),
			formatBounds(e.Query),
			formatCount(e),
			formatExpected(e.Query),
			statusLabel(e),
			formatNotes(e),
		})
	}

	if result.Total > 0 {
		t.AppendFooter(table.Row{"", "", "", "", "", summaryLine(result), ""})
	}

	rendered := t.Render()
	rendered += renderFailureSection(failureSection(result), false)
	return rendered, nil
}
