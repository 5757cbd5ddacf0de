package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maxrange/maxrange/internal/core"
	apperrors "github.com/maxrange/maxrange/internal/errors"
	"github.com/maxrange/maxrange/internal/output"
)

var countCmd = &cobra.Command{
	Use:   "count [values...]",
	Short: "Count subarrays whose maximum lies in [left, right]",
	Long: `Count the contiguous subarrays whose maximum element lies in [left, right].

Values are given as arguments (separate or comma-separated), with --values, or
read in judge format (n, then "left right", then the n values) with --input.
Use -- before negative values given as arguments.`,
	Example: `  maxrange count --left 2 --right 3 2 1 4 3
  maxrange count --left -3 --right 3 -- -5 0 7 -2 3
  printf '4\n2 3\n2 1 4 3\n' | maxrange count --input -`,
	RunE: runCount,
}

func init() {
	rootCmd.AddCommand(countCmd)

	countCmd.Flags().Int64("left", 0, "Lower bound (inclusive)")
	countCmd.Flags().Int64("right", 0, "Upper bound (inclusive)")
	countCmd.Flags().Int64Slice("values", nil, "Sequence values (comma-separated)")
	countCmd.Flags().String("input", "", "Read one query in judge format from file (- for stdin)")
	countCmd.Flags().String("output", "", "Output format: plain, table, json, markdown, judge (default plain)")
	countCmd.Flags().Bool("oracle", false, "Cross-check against the brute-force oracle")
}

func runCount(cmd *cobra.Command, args []string) error {
	left, err := cmd.Flags().GetInt64("left")
	if err != nil {
		return err
	}
	right, err := cmd.Flags().GetInt64("right")
	if err != nil {
		return err
	}
	values, err := cmd.Flags().GetInt64Slice("values")
	if err != nil {
		return err
	}
	inputPath, err := cmd.Flags().GetString("input")
	if err != nil {
		return err
	}
	formatValue, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	oracle, err := cmd.Flags().GetBool("oracle")
	if err != nil {
		return err
	}

	format := output.FormatPlain
	if formatValue != "" {
		format, err = output.ParseFormat(formatValue)
		if err != nil {
			return apperrors.WrapInvalidInput(err, "invalid --output")
		}
	}

	cfg, err := loadedConfig()
	if err != nil {
		return err
	}

	query, err := resolveQuery(queryInput{
		Positional: args,
		Values:     values,
		InputPath:  inputPath,
		Left:       left,
		Right:      right,
		LeftSet:    cmd.Flags().Changed("left"),
		RightSet:   cmd.Flags().Changed("right"),
	})
	if err != nil {
		return apperrors.Report(apperrors.WrapInvalidInput(err, err.Error()))
	}

	if query.Left > query.Right {
		return apperrors.Report(apperrors.NewInvalidBoundsError(query.Name, query.Left, query.Right))
	}

	evaluator := buildEvaluator(cfg, oracle)
	eval := evaluator.Evaluate(cmd.Context(), query)
	result := core.Summarize(query.Name, []*core.Evaluation{eval}, eval.Provenance.CheckedAt)

	if err := render(cmd.OutOrStdout(), format, result); err != nil {
		return err
	}

	if eval.Failed() {
		return apperrors.NewVerifyFailedError(fmt.Sprintf("%s: %s", query.Name, eval.Message))
	}
	return nil
}
