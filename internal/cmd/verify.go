package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maxrange/maxrange/internal/core/fixture"
	apperrors "github.com/maxrange/maxrange/internal/errors"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [file...]",
	Short: "Verify the counter against the brute-force oracle",
	Long: `Evaluate the built-in reference suite (or the given files) with the
brute-force oracle enabled and compare each count with its expected value.
Exits non-zero when any query mismatches.`,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().String("output", "", "Output format: plain, table, json, markdown, judge (default from config)")
}

func runVerify(cmd *cobra.Command, args []string) error {
	formatValue, err := cmd.Flags().GetString("output")
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

	var suite *fixture.Suite
	if len(args) == 0 {
		suite, err = fixture.Builtin()
	} else {
		suite, err = loadQueries(args)
	}
	if err != nil {
		return err
	}

	evaluator := buildEvaluator(cfg, true)
	result, err := runSuite(cmd.Context(), evaluator, suite, cfg.Workers, cfg.Batch.Timeout)
	if err != nil {
		return apperrors.WrapDataProcessing(err, "verification aborted")
	}

	if err := render(cmd.OutOrStdout(), format, result); err != nil {
		return err
	}

	if result.Failed() {
		return apperrors.NewVerifyFailedError(fmt.Sprintf("%d of %d queries failed verification",
			result.Mismatched+result.Errored, result.Total))
	}
	return nil
}
