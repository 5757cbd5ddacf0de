package output

import (
	"strconv"
	"strings"

	"github.com/maxrange/maxrange/internal/core"
	"github.com/maxrange/maxrange/internal/core/fixture"
)

// JudgeFormatter writes each query back in judge format with the computed
// count as its expected line, producing files the batch command can replay.
// Queries that failed evaluation are written without an expected line.
type JudgeFormatter struct{}

// FormatBatch renders a batch result as judge transcripts separated by blank
// lines.
func (f *JudgeFormatter) FormatBatch(result *core.BatchResult) (string, error) {
	if result == nil {
		return "", nil
	}

	blocks := make([]string, 0, len(result.Evaluations))
	for _, e := range result.Evaluations {
		if e == nil {
			continue
		}
		block := fixture.FormatJudge(e.Query)
		if e.Status != core.StatusError {
			block += "\n" + strconv.FormatInt(e.Count, 10)
		}
		blocks = append(blocks, block)
	}
	return strings.Join(blocks, "\n\n"), nil
}
