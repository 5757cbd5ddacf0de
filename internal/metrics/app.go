package metrics

import (
	"time"

	"github.com/maxrange/maxrange/internal/observability"
)

// Application-level metrics following Prometheus conventions
var (
	EvaluationsTotal   = "evaluations_total"
	EvaluationDuration = "evaluation_duration_ms"
	SubarraysCounted   = "subarrays_counted_total"
	BatchesTotal       = "batches_total"
	ErrorsTotal        = "errors_total"
)

// RecordEvaluation records a single query evaluation with its status.
func RecordEvaluation(status string, values int, duration time.Duration) {
	if observability.TelemetrySystem == nil {
		return
	}

	_ = observability.TelemetrySystem.Counter(
		EvaluationsTotal,
		1,
		map[string]string{
			"status": status,
		},
	)

	_ = observability.TelemetrySystem.Histogram(
		EvaluationDuration,
		duration,
		map[string]string{
			"size_class": sizeClass(values),
		},
	)
}

// RecordCount records the number of qualifying subarrays found.
func RecordCount(count int64) {
	if observability.TelemetrySystem == nil || count <= 0 {
		return
	}
	_ = observability.TelemetrySystem.Counter(SubarraysCounted, float64(count), nil)
}

// RecordBatch records a finished batch run.
func RecordBatch(name string, failed bool) {
	status := "success"
	if failed {
		status = "failure"
	}

	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			BatchesTotal,
			1,
			map[string]string{
				"batch":  name,
				"status": status,
			},
		)
	}
}

// RecordError records an error by envelope code.
func RecordError(errorCode string) {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			ErrorsTotal,
			1,
			map[string]string{
				"error_code": errorCode,
			},
		)
	}
}

func sizeClass(n int) string {
	switch {
	case n == 0:
		return "empty"
	case n <= 16:
		return "small"
	case n <= 4096:
		return "medium"
	default:
		return "large"
	}
}
