package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/maxrange/maxrange/internal/config"
	"github.com/maxrange/maxrange/internal/core"
	apperrors "github.com/maxrange/maxrange/internal/errors"
	"github.com/maxrange/maxrange/internal/output"
)

var batchCmd = &cobra.Command{
	Use:   "batch <file>...",
	Short: "Evaluate queries from YAML suites or judge files",
	Long: `Evaluate every query found in the given files. Files ending in .yaml or
.yml are suites; any other file holds a single query in judge format.
Queries are spread over a pool of workers and reported in input order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().String("output", "", "Output format: plain, table, json, markdown, judge (default from config)")
	batchCmd.Flags().Int("workers", 4, "Concurrent evaluations")
	batchCmd.Flags().Bool("oracle", true, "Cross-check against the brute-force oracle")
	batchCmd.Flags().Bool("strict", false, "Exit non-zero when any query mismatches or fails")
	batchCmd.Flags().Bool("split", false, "Evaluate and report each file separately")

	_ = viper.BindPFlag("workers", batchCmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("verify.oracle", batchCmd.Flags().Lookup("oracle"))
}

func runBatch(cmd *cobra.Command, args []string) error {
	formatValue, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	strict, err := cmd.Flags().GetBool("strict")
	if err != nil {
		return err
	}

	split, err := cmd.Flags().GetBool("split")
	if err != nil {
		return err
	}

	cfg, err := loadedConfig()
	if err != nil {
		return err
	}

	format, err := resolveFormat(formatValue, cfg)
	if err != nil {
		return apperrors.WrapInvalidInput(err, "invalid --output")
	}

	if split {
		return runSplitBatch(cmd, args, cfg, format, strict)
	}

	suite, err := loadQueries(args)
	if err != nil {
		return err
	}

	evaluator := buildEvaluator(cfg, cfg.Verify.Oracle)
	result, err := runSuite(cmd.Context(), evaluator, suite, cfg.Workers, cfg.Batch.Timeout)
	if err != nil {
		return apperrors.WrapDataProcessing(err, "batch evaluation aborted")
	}

	if err := render(cmd.OutOrStdout(), format, result); err != nil {
		return err
	}

	if strict && result.Failed() {
		return apperrors.NewVerifyFailedError("batch contains mismatched or failed queries")
	}
	return nil
}

// runSplitBatch evaluates each file as its own suite and renders one report
// per file.
func runSplitBatch(cmd *cobra.Command, paths []string, cfg *config.Config, format output.Format, strict bool) error {
	evaluator := buildEvaluator(cfg, cfg.Verify.Oracle)

	results := make([]*core.BatchResult, 0, len(paths))
	failed := 0
	for _, path := range paths {
		suite, err := loadQueries([]string{path})
		if err != nil {
			return err
		}

		result, err := runSuite(cmd.Context(), evaluator, suite, cfg.Workers, cfg.Batch.Timeout)
		if err != nil {
			return apperrors.WrapDataProcessing(err, "batch evaluation aborted")
		}
		if result.Failed() {
			failed++
		}
		results = append(results, result)
	}

	rendered, err := output.FormatBatchList(format, results)
	if err != nil {
		return err
	}
	if rendered != "" {
		fmt.Fprintln(cmd.OutOrStdout(), rendered)
	}

	if strict && failed > 0 {
		return apperrors.NewVerifyFailedError(fmt.Sprintf("%d of %d files contain mismatched or failed queries", failed, len(paths)))
	}
	return nil
}
