package core

import "time"

// BatchResult captures the evaluations of a group of queries.
type BatchResult struct {
	Name        string        `json:"name"`
	Evaluations []*Evaluation `json:"evaluations"`
	Total       int           `json:"total"`
	Passed      int           `json:"passed"`
	Mismatched  int           `json:"mismatched"`
	Errored     int           `json:"errored"`
	CompletedAt time.Time     `json:"completed_at"`
}

// Summarize builds a BatchResult from evaluations, skipping nil entries.
func Summarize(name string, evaluations []*Evaluation, completedAt time.Time) *BatchResult {
	result := &BatchResult{
		Name:        name,
		Evaluations: make([]*Evaluation, 0, len(evaluations)),
		CompletedAt: completedAt,
	}

	for _, e := range evaluations {
		if e == nil {
			continue
		}
		result.Evaluations = append(result.Evaluations, e)
		result.Total++
		switch e.Status {
		case StatusPass, StatusOK:
			result.Passed++
		case StatusMismatch:
			result.Mismatched++
		case StatusError:
			result.Errored++
		}
	}

	return result
}

// Failed reports whether any evaluation in the batch failed.
func (b *BatchResult) Failed() bool {
	if b == nil {
		return false
	}
	return b.Mismatched > 0 || b.Errored > 0
}
