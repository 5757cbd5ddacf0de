package output

import (
	"fmt"
	"strings"

	"github.com/maxrange/maxrange/internal/core"
)

// MarkdownFormatter renders results as a markdown table.
type MarkdownFormatter struct{}

// FormatBatch renders a batch result as Markdown.
func (f *MarkdownFormatter) FormatBatch(result *core.BatchResult) (string, error) {
	if result == nil {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## %s\n\n", escapeMarkdownCell(result.Name)))
	sb.WriteString("| Query | Values | Bounds | Count | Expected | Status | Notes |\n")
	sb.WriteString("|-------|--------|--------|-------|----------|--------|-------|\n")

	for _, e := range result.Evaluations {
		if e == nil {
			continue
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s | %s |\n",
			escapeMarkdownCell(e.Query.Name),
			escapeMarkdownCell(formatValues(e.Query.Values)),
			escapeMarkdownCell(formatBounds(e.Query)),
			escapeMarkdownCell(formatCount(e)),
			escapeMarkdownCell(formatExpected(e.Query)),
			escapeMarkdownCell(statusLabel(e)),
			escapeMarkdownCell(formatNotes(e)),
		))
	}

	if result.Total > 0 {
		sb.WriteString(fmt.Sprintf("\n**Summary**: %s\n", summaryLine(result)))
	}

	sb.WriteString(renderFailureSection(failureSection(result), true))
	return sb.String(), nil
}

func escapeMarkdownCell(value string) string {
	return strings.ReplaceAll(value, "|", "\\|")
}
