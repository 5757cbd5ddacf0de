package output

import (
	"fmt"
	"strings"

	"github.com/maxrange/maxrange/internal/core"
)

type failureEntry struct {
	Name   string
	Source string
	Detail string
}

// failureSection lists the evaluations that failed, in input order.
func failureSection(result *core.BatchResult) []failureEntry {
	if result == nil || !result.Failed() {
		return nil
	}

	entries := make([]failureEntry, 0, result.Mismatched+result.Errored)
	for _, e := range result.Evaluations {
		if !e.Failed() {
			continue
		}
		detail := strings.TrimSpace(e.Message)
		if e.ErrorCode != "" {
			detail = e.ErrorCode + ": " + detail
		}
		if e.Status == core.StatusMismatch {
			detail = fmt.Sprintf("counted %d, %s", e.Count, detail)
		}
		entries = append(entries, failureEntry{
			Name:   e.Query.Name,
			Source: e.Query.Source,
			Detail: detail,
		})
	}
	return entries
}

func renderFailureSection(entries []failureEntry, markdown bool) string {
	if len(entries) == 0 {
		return ""
	}

	var sb strings.Builder
	if markdown {
		sb.WriteString("\n### Failures\n\n")
	} else {
		sb.WriteString("\n\nFailures\n")
	}

	for _, entry := range entries {
		name := entry.Name
		if entry.Source != "" && !strings.Contains(name, entry.Source) {
			name = fmt.Sprintf("%s (%s)", name, entry.Source)
		}
		if markdown {
			sb.WriteString(fmt.Sprintf("- **%s**: %s\n", escapeMarkdownCell(name), escapeMarkdownCell(entry.Detail)))
		} else {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", name, entry.Detail))
		}
	}

	return sb.String()
}
