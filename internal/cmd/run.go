package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/maxrange/maxrange/internal/config"
	"github.com/maxrange/maxrange/internal/core"
	"github.com/maxrange/maxrange/internal/core/engine"
	"github.com/maxrange/maxrange/internal/core/fixture"
	apperrors "github.com/maxrange/maxrange/internal/errors"
	"github.com/maxrange/maxrange/internal/metrics"
	"github.com/maxrange/maxrange/internal/observability"
	"github.com/maxrange/maxrange/internal/output"
)

func loadedConfig() (*config.Config, error) {
	cfg := config.GetConfig()
	if cfg == nil {
		return nil, errors.New("config not loaded")
	}
	return cfg, nil
}

func buildEvaluator(cfg *config.Config, oracle bool) *engine.Evaluator {
	return &engine.Evaluator{
		Oracle:          oracle,
		OracleMaxLength: cfg.Verify.OracleMaxLength,
		Logger:          observability.CLILogger,
		ToolVersion:     versionInfo.Version,
	}
}

// resolveFormat prefers an explicit flag value over the configured format.
func resolveFormat(flagValue string, cfg *config.Config) (output.Format, error) {
	if strings.TrimSpace(flagValue) != "" {
		return output.ParseFormat(flagValue)
	}
	return output.ParseFormat(cfg.Output.Format)
}

// runSuite evaluates every case of suite and summarizes the outcome.
func runSuite(ctx context.Context, evaluator *engine.Evaluator, suite *fixture.Suite, workers int, timeout time.Duration) (*core.BatchResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	startedAt := time.Now()
	evaluations, err := engine.RunBatch(ctx, evaluator, suite.Cases, workers)
	if err != nil {
		return nil, err
	}

	result := core.Summarize(suite.Name, evaluations, time.Now().UTC())
	metrics.RecordBatch(suite.Name, result.Failed())
	logThroughput(result.Total, startedAt)
	return result, nil
}

// loadQueries loads every path into one suite. Load failures and files without
// queries are reported as DATA_PROCESSING_ERROR envelopes.
func loadQueries(paths []string) (*fixture.Suite, error) {
	suite, err := fixture.LoadFiles(paths)
	if err != nil {
		return nil, apperrors.Report(apperrors.WrapDataProcessing(err, "failed to load queries"))
	}
	if len(suite.Cases) == 0 {
		return nil, apperrors.Report(apperrors.NewDataProcessingError(
			fmt.Sprintf("no queries found in %s", strings.Join(paths, ", "))))
	}
	return suite, nil
}

func render(w io.Writer, format output.Format, result *core.BatchResult) error {
	rendered, err := output.NewFormatter(format).FormatBatch(result)
	if err != nil {
		return err
	}
	if rendered != "" {
		fmt.Fprintln(w, rendered)
	}
	return nil
}

func logThroughput(count int, startedAt time.Time) {
	if count <= 0 || observability.CLILogger == nil {
		return
	}
	elapsed := time.Since(startedAt)
	if elapsed <= 0 {
		return
	}
	rate := float64(count) / elapsed.Seconds()
	observability.CLILogger.Info(
		"Evaluation throughput",
		zap.Int("queries", count),
		zap.Duration("elapsed", elapsed),
		zap.Float64("rate_per_sec", rate),
	)
}
