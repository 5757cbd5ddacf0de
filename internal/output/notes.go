package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/maxrange/maxrange/internal/core"
)

// maxShownValues caps how many elements of a sequence are printed in a cell.
const maxShownValues = 12

func formatValues(values []int64) string {
	if len(values) == 0 {
		return "[]"
	}

	shown := values
	if len(shown) > maxShownValues {
		shown = shown[:maxShownValues]
	}

	parts := make([]string, 0, len(shown))
	for _, v := range shown {
		parts = append(parts, strconv.FormatInt(v, 10))
	}

	rendered := "[" + strings.Join(parts, " ")
	if len(values) > len(shown) {
		rendered += fmt.Sprintf(" … +%d", len(values)-len(shown))
	}
	return rendered + "]"
}

func formatBounds(query core.Query) string {
	return fmt.Sprintf("[%d, %d]", query.Left, query.Right)
}

func formatCount(e *core.Evaluation) string {
	if e == nil || e.Status == core.StatusError {
		return "-"
	}
	return strconv.FormatInt(e.Count, 10)
}

func formatExpected(query core.Query) string {
	if query.Expected == nil {
		return ""
	}
	return strconv.FormatInt(*query.Expected, 10)
}

func statusLabel(e *core.Evaluation) string {
	if e == nil || e.Status == "" {
		return "unknown"
	}
	return string(e.Status)
}

func formatNotes(e *core.Evaluation) string {
	if e == nil {
		return ""
	}

	notes := make([]string, 0, 2)
	if e.OracleCount != nil && *e.OracleCount == e.Count {
		notes = append(notes, "oracle agrees")
	}
	if msg := strings.TrimSpace(e.Message); msg != "" {
		notes = append(notes, msg)
	}
	return strings.Join(notes, "; ")
}

func summaryLine(result *core.BatchResult) string {
	summary := fmt.Sprintf("%d/%d passed", result.Passed, result.Total)
	if result.Mismatched > 0 {
		summary += fmt.Sprintf(", %d mismatched", result.Mismatched)
	}
	if result.Errored > 0 {
		summary += fmt.Sprintf(", %d errors", result.Errored)
	}
	return summary
}
