package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/fulmenhq/gofulmen/logging"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/maxrange/maxrange/internal/core"
	"github.com/maxrange/maxrange/internal/core/counter"
	apperrors "github.com/maxrange/maxrange/internal/errors"
	"github.com/maxrange/maxrange/internal/metrics"
)

// Evaluator computes range counts for queries and checks them against the
// brute-force oracle and any expected value carried by the query.
type Evaluator struct {
	// Oracle enables the O(n^2) cross-check.
	Oracle bool
	// OracleMaxLength skips the oracle for longer sequences. Zero means no limit.
	OracleMaxLength int
	Logger          *logging.Logger
	ToolVersion     string
	Clock           func() time.Time
}

// Evaluate runs a single query. It never returns nil; failures are reported
// through the evaluation status.
func (e *Evaluator) Evaluate(ctx context.Context, query core.Query) *core.Evaluation {
	if ctx == nil {
		ctx = context.Background()
	}

	startedAt := time.Now()
	eval := &core.Evaluation{
		Query:  query,
		Status: core.StatusOK,
		Provenance: core.Provenance{
			EvaluationID: uuid.New().String(),
			CheckedAt:    e.now(),
			ToolVersion:  e.toolVersion(),
		},
	}

	if err := ctx.Err(); err != nil {
		eval.Status = core.StatusError
		eval.ErrorCode = apperrors.CodeInternal
		eval.Message = err.Error()
		return e.finish(eval, startedAt)
	}

	count, err := counter.CountInRange(query.Values, query.Left, query.Right)
	if err != nil {
		envelope := apperrors.FromCountError(query.Name, query.Left, query.Right, err)
		eval.Status = core.StatusError
		eval.ErrorCode = envelope.Code
		eval.Message = fmt.Sprintf("%s (left=%d, right=%d)", envelope.Message, query.Left, query.Right)
		return e.finish(eval, startedAt)
	}
	eval.Count = count

	checked := false
	if e.oracleApplies(query) {
		oracle, err := counter.BruteForceInRange(query.Values, query.Left, query.Right)
		if err == nil {
			eval.OracleCount = &oracle
			eval.Provenance.OracleRun = true
			checked = true
			if oracle != count {
				eval.Status = core.StatusMismatch
				eval.Message = fmt.Sprintf("oracle counted %d", oracle)
			}
		}
	}

	if query.Expected != nil {
		checked = true
		if *query.Expected != count {
			eval.Status = core.StatusMismatch
			eval.Message = joinMessage(eval.Message, fmt.Sprintf("expected %d", *query.Expected))
		}
	}

	if checked && eval.Status == core.StatusOK {
		eval.Status = core.StatusPass
	}

	return e.finish(eval, startedAt)
}

func (e *Evaluator) finish(eval *core.Evaluation, startedAt time.Time) *core.Evaluation {
	elapsed := time.Since(startedAt)
	eval.Provenance.Elapsed = elapsed.String()

	metrics.RecordEvaluation(string(eval.Status), len(eval.Query.Values), elapsed)
	metrics.RecordCount(eval.Count)

	if e != nil && e.Logger != nil {
		e.Logger.Debug("Evaluated query",
			zap.String("query", eval.Query.Name),
			zap.Int("values", len(eval.Query.Values)),
			zap.Int64("left", eval.Query.Left),
			zap.Int64("right", eval.Query.Right),
			zap.Int64("count", eval.Count),
			zap.String("status", string(eval.Status)),
			zap.Duration("elapsed", elapsed),
		)
	}

	return eval
}

func (e *Evaluator) oracleApplies(query core.Query) bool {
	if e == nil || !e.Oracle {
		return false
	}
	return e.OracleMaxLength <= 0 || len(query.Values) <= e.OracleMaxLength
}

func (e *Evaluator) now() time.Time {
	if e != nil && e.Clock != nil {
		return e.Clock()
	}
	return time.Now().UTC()
}

func (e *Evaluator) toolVersion() string {
	if e == nil {
		return ""
	}
	return e.ToolVersion
}

func joinMessage(existing, next string) string {
	if existing == "" {
		return next
	}
	return existing + "; " + next
}
