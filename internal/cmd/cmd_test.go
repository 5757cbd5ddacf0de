package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	gferrors "github.com/fulmenhq/gofulmen/errors"
	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/stretchr/testify/require"

	"github.com/maxrange/maxrange/internal/config"
	"github.com/maxrange/maxrange/internal/core"
	"github.com/maxrange/maxrange/internal/core/fixture"
	apperrors "github.com/maxrange/maxrange/internal/errors"
	"github.com/maxrange/maxrange/internal/output"
)

func testConfig() *config.Config {
	return &config.Config{
		Logging: config.LoggingConfig{Level: "info", Profile: "simple"},
		Output:  config.OutputConfig{Format: "json"},
		Verify:  config.VerifyConfig{Oracle: true, OracleMaxLength: 2000},
		Workers: 2,
	}
}

func TestParseValues(t *testing.T) {
	cases := []struct {
		args    []string
		want    []int64
		wantErr bool
	}{
		{[]string{"2", "1", "4", "3"}, []int64{2, 1, 4, 3}, false},
		{[]string{"2,1", "4, 3"}, []int64{2, 1, 4, 3}, false},
		{[]string{"-5", "0,,7"}, []int64{-5, 0, 7}, false},
		{nil, []int64{}, false},
		{[]string{"1.5"}, nil, true},
		{[]string{"x"}, nil, true},
	}

	for _, tc := range cases {
		got, err := parseValues(tc.args)
		if tc.wantErr {
			require.Error(t, err, "args %v", tc.args)
			continue
		}
		require.NoError(t, err, "args %v", tc.args)
		require.Equal(t, tc.want, got)
	}
}

func TestResolveQueryFromArgs(t *testing.T) {
	query, err := resolveQuery(queryInput{
		Positional: []string{"2", "1"},
		Values:     []int64{4, 3},
		Left:       2,
		Right:      3,
		LeftSet:    true,
		RightSet:   true,
	})
	require.NoError(t, err)
	require.Equal(t, []int64{2, 1, 4, 3}, query.Values)
	require.Equal(t, int64(2), query.Left)
	require.Equal(t, int64(3), query.Right)
	require.Nil(t, query.Expected)
}

func TestResolveQueryRequiresBounds(t *testing.T) {
	_, err := resolveQuery(queryInput{Positional: []string{"1"}, Left: 1, LeftSet: true})
	require.Error(t, err)
}

func TestResolveQueryFromJudgeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "case1.in")
	require.NoError(t, os.WriteFile(path, []byte("4\n2 3\n2 1 4 3\n3\n"), 0o600))

	query, err := resolveQuery(queryInput{InputPath: path})
	require.NoError(t, err)
	require.Equal(t, []int64{2, 1, 4, 3}, query.Values)
	require.NotNil(t, query.Expected)
	require.Equal(t, int64(3), *query.Expected)

	query, err = resolveQuery(queryInput{InputPath: path, Right: 4, RightSet: true})
	require.NoError(t, err)
	require.Equal(t, int64(4), query.Right)

	_, err = resolveQuery(queryInput{InputPath: path, Positional: []string{"1"}})
	require.Error(t, err)

	_, err = resolveQuery(queryInput{InputPath: filepath.Join(dir, "missing.in")})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestResolveFormat(t *testing.T) {
	cfg := testConfig()

	format, err := resolveFormat("", cfg)
	require.NoError(t, err)
	require.Equal(t, output.FormatJSON, format)

	format, err = resolveFormat("markdown", cfg)
	require.NoError(t, err)
	require.Equal(t, output.FormatMarkdown, format)

	_, err = resolveFormat("xml", cfg)
	require.Error(t, err)
}

func TestExitCodeFor(t *testing.T) {
	require.Equal(t, foundry.ExitCode(0), ExitCodeFor(nil))
	require.Equal(t, foundry.ExitFileNotFound, ExitCodeFor(fmt.Errorf("open: %w", os.ErrNotExist)))
	require.Equal(t, foundry.ExitConfigInvalid, ExitCodeFor(apperrors.NewConfigInvalidError("bad workers")))
	require.Equal(t, foundry.ExitFailure, ExitCodeFor(apperrors.NewVerifyFailedError("mismatch")))
	require.Equal(t, foundry.ExitFailure, ExitCodeFor(apperrors.NewInvalidBoundsError("q", 3, 1)))

	missing := fmt.Errorf("open q.in: %w", os.ErrNotExist)
	require.Equal(t, foundry.ExitFileNotFound, ExitCodeFor(apperrors.WrapInvalidInput(missing, "could not read query")))
	require.Equal(t, foundry.ExitFailure, ExitCodeFor(apperrors.WrapDataProcessing(context.Canceled, "aborted")))
}

func TestLoadQueries(t *testing.T) {
	dir := t.TempDir()

	suitePath := filepath.Join(dir, "suite.yaml")
	require.NoError(t, os.WriteFile(suitePath, []byte("cases:\n  - values: [2, 1, 4, 3]\n    left: 2\n    right: 3\n"), 0o600))
	suite, err := loadQueries([]string{suitePath})
	require.NoError(t, err)
	require.Len(t, suite.Cases, 1)

	_, err = loadQueries([]string{filepath.Join(dir, "missing.in")})
	require.Error(t, err)
	require.Equal(t, foundry.ExitFileNotFound, ExitCodeFor(err))

	emptyPath := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(emptyPath, []byte("name: empty\ncases: []\n"), 0o600))
	_, err = loadQueries([]string{emptyPath})
	var envelope *gferrors.ErrorEnvelope
	require.ErrorAs(t, err, &envelope)
	require.Equal(t, apperrors.CodeDataProcessing, envelope.Code)
	require.NotEmpty(t, envelope.CorrelationID)
}

func TestRenderJudgeTranscript(t *testing.T) {
	cfg := testConfig()
	suite := &fixture.Suite{
		Name:  "single",
		Cases: []core.Query{{Name: "mixed", Values: []int64{2, 1, 4, 3}, Left: 2, Right: 3}},
	}

	result, err := runSuite(context.Background(), buildEvaluator(cfg, true), suite, 1, 0)
	require.NoError(t, err)

	var b strings.Builder
	require.NoError(t, render(&b, output.FormatJudge, result))
	require.Equal(t, "4\n2 3\n2 1 4 3\n3\n", b.String())
}

func TestRunSuiteBuiltin(t *testing.T) {
	cfg := testConfig()
	suite, err := fixture.Builtin()
	require.NoError(t, err)

	result, err := runSuite(context.Background(), buildEvaluator(cfg, true), suite, cfg.Workers, 0)
	require.NoError(t, err)
	require.Equal(t, len(suite.Cases), result.Total)
	require.Equal(t, result.Total, result.Passed)
	require.False(t, result.Failed())

	for i, eval := range result.Evaluations {
		require.Equal(t, suite.Cases[i].Name, eval.Query.Name)
		require.Equal(t, core.StatusPass, eval.Status)
	}
}

func TestRunSuiteReportsMismatch(t *testing.T) {
	cfg := testConfig()
	wrong := int64(20)
	suite := &fixture.Suite{
		Name: "legacy",
		Cases: []core.Query{
			{Name: "mountain", Values: []int64{1, 2, 3, 4, 5, 4, 3, 2}, Left: 1, Right: 5, Expected: &wrong},
		},
	}

	result, err := runSuite(context.Background(), buildEvaluator(cfg, false), suite, 1, 0)
	require.NoError(t, err)
	require.True(t, result.Failed())
	require.Equal(t, 1, result.Mismatched)
	require.Equal(t, int64(36), result.Evaluations[0].Count)
}

func TestRunSuiteCancelled(t *testing.T) {
	cfg := testConfig()
	suite, err := fixture.Builtin()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = runSuite(ctx, buildEvaluator(cfg, true), suite, cfg.Workers, 0)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRender(t *testing.T) {
	cfg := testConfig()
	suite, err := fixture.Builtin()
	require.NoError(t, err)

	result, err := runSuite(context.Background(), buildEvaluator(cfg, true), suite, cfg.Workers, 0)
	require.NoError(t, err)

	var b strings.Builder
	require.NoError(t, render(&b, output.FormatPlain, result))
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	require.Len(t, lines, len(suite.Cases))
	require.Equal(t, "3", lines[0])
}
