package output

import (
	"strconv"
	"strings"

	"github.com/maxrange/maxrange/internal/core"
)

// PlainFormatter prints one count per line, or the error message for queries
// that failed, so the output can be pasted into a judge transcript.
type PlainFormatter struct{}

// FormatBatch renders a batch result as bare counts.
func (f *PlainFormatter) FormatBatch(result *core.BatchResult) (string, error) {
	if result == nil {
		return "", nil
	}

	lines := make([]string, 0, len(result.Evaluations))
	for _, e := range result.Evaluations {
		if e == nil {
			continue
		}
		if e.Status == core.StatusError {
			lines = append(lines, "error: "+e.Message)
			continue
		}
		lines = append(lines, strconv.FormatInt(e.Count, 10))
	}
	return strings.Join(lines, "\n"), nil
}
