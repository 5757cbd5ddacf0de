package core

import "time"

// Status represents the outcome of evaluating a query.
type Status string

const (
	// StatusOK means a count was computed and nothing was available to compare it with.
	StatusOK Status = "ok"
	// StatusPass means the count agreed with every expectation and the oracle.
	StatusPass Status = "pass"
	// StatusMismatch means the expected value or the oracle disagreed with the count.
	StatusMismatch Status = "mismatch"
	// StatusError means the query could not be evaluated.
	StatusError Status = "error"
)

// Query is a single "count subarrays whose max lies in [Left, Right]" request.
type Query struct {
	Name     string  `json:"name" yaml:"name"`
	Values   []int64 `json:"values" yaml:"values"`
	Left     int64   `json:"left" yaml:"left"`
	Right    int64   `json:"right" yaml:"right"`
	Expected *int64  `json:"expected,omitempty" yaml:"expected,omitempty"`
	Source   string  `json:"source,omitempty" yaml:"-"`
}

// Provenance captures how an evaluation was produced.
type Provenance struct {
	EvaluationID string    `json:"evaluation_id"`
	CheckedAt    time.Time `json:"checked_at"`
	Elapsed      string    `json:"elapsed"`
	OracleRun    bool      `json:"oracle_run"`
	ToolVersion  string    `json:"tool_version,omitempty"`
}

// Evaluation reports the computed count and supporting context for a query.
type Evaluation struct {
	Query       Query      `json:"query"`
	Count       int64      `json:"count"`
	OracleCount *int64     `json:"oracle_count,omitempty"`
	Status      Status     `json:"status"`
	Message     string     `json:"message,omitempty"`
	ErrorCode   string     `json:"error_code,omitempty"`
	Provenance  Provenance `json:"provenance"`
}

// Failed reports whether the evaluation should fail a verification run.
func (e *Evaluation) Failed() bool {
	if e == nil {
		return false
	}
	return e.Status == StatusMismatch || e.Status == StatusError
}
