package fixture

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/maxrange/maxrange/internal/core"
	"github.com/maxrange/maxrange/internal/core/counter"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func TestParseJudge(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  core.Query
	}{
		{
			name:  "harness layout",
			input: "4\n2 3\n2 1 4 3\n",
			want:  core.Query{Name: "q", Values: []int64{2, 1, 4, 3}, Left: 2, Right: 3},
		},
		{
			name:  "with expected",
			input: "3\n2 4\n2 5 3\n2\n",
			want:  core.Query{Name: "q", Values: []int64{2, 5, 3}, Left: 2, Right: 4, Expected: int64Ptr(2)},
		},
		{
			name:  "empty sequence",
			input: "0\n0 10\n",
			want:  core.Query{Name: "q", Values: []int64{}, Left: 0, Right: 10},
		},
		{
			name:  "loose whitespace and negatives",
			input: "  3 -3\t3\n\n-5 0   7 ",
			want:  core.Query{Name: "q", Values: []int64{-5, 0, 7}, Left: -3, Right: 3},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseJudge(strings.NewReader(tc.input), "q")
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("ParseJudge mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseJudgeErrors(t *testing.T) {
	cases := map[string]string{
		"too short":        "3\n1",
		"not an integer":   "2\n1 2\n1 x\n",
		"negative length":  "-1\n1 2\n",
		"missing values":   "4\n1 2\n1 2 3\n",
		"trailing garbage": "2\n1 2\n1 2\n3 4\n",
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseJudge(strings.NewReader(input), "q")
			require.Error(t, err)
		})
	}
}

func TestFormatJudgeRoundTrip(t *testing.T) {
	query := core.Query{Name: "q", Values: []int64{1, -2, 3}, Left: -1, Right: 9}
	rendered := FormatJudge(query)
	require.Equal(t, "3\n-1 9\n1 -2 3", rendered)

	parsed, err := ParseJudge(strings.NewReader(rendered), "q")
	require.NoError(t, err)
	require.Equal(t, query, parsed)
}

func TestBuiltinSuite(t *testing.T) {
	suite, err := Builtin()
	require.NoError(t, err)
	require.Equal(t, "builtin", suite.Name)
	require.NotEmpty(t, suite.Cases)

	for _, c := range suite.Cases {
		require.NotNil(t, c.Expected, c.Name)
		require.Equal(t, "builtin", c.Source)

		got, err := counter.CountInRange(c.Values, c.Left, c.Right)
		require.NoError(t, err, c.Name)
		require.Equal(t, *c.Expected, got, c.Name)

		oracle, err := counter.BruteForceInRange(c.Values, c.Left, c.Right)
		require.NoError(t, err, c.Name)
		require.Equal(t, *c.Expected, oracle, c.Name)
	}
}

func TestParseSuite(t *testing.T) {
	input := `
cases:
  - values: [1, 2]
    left: 1
    right: 2
  - name: named
    values: [3]
    left: 0
    right: 1
    expected: 0
`
	suite, err := ParseSuite(strings.NewReader(input), "dir/my-suite.yaml")
	require.NoError(t, err)

	want := &Suite{
		Name: "my-suite",
		Cases: []core.Query{
			{Name: "case-1", Values: []int64{1, 2}, Left: 1, Right: 2, Source: "dir/my-suite.yaml"},
			{Name: "named", Values: []int64{3}, Left: 0, Right: 1, Expected: int64Ptr(0), Source: "dir/my-suite.yaml"},
		},
	}
	if diff := cmp.Diff(want, suite); diff != "" {
		t.Fatalf("ParseSuite mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSuiteErrors(t *testing.T) {
	_, err := ParseSuite(strings.NewReader(""), "empty.yaml")
	require.Error(t, err)

	_, err = ParseSuite(strings.NewReader("cases:\n  - values: [1]\n    lft: 1\n"), "typo.yaml")
	require.Error(t, err)

	dup := "cases:\n  - name: a\n    values: [1]\n  - name: a\n    values: [2]\n"
	_, err = ParseSuite(strings.NewReader(dup), "dup.yaml")
	require.ErrorContains(t, err, "duplicate case name")
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()

	judgePath := filepath.Join(dir, "single.txt")
	require.NoError(t, os.WriteFile(judgePath, []byte("3\n2 4\n2 5 3\n"), 0o644))

	suitePath := filepath.Join(dir, "suite.yml")
	require.NoError(t, os.WriteFile(suitePath, []byte("name: extra\ncases:\n  - name: one\n    values: [1]\n    left: 1\n    right: 1\n"), 0o644))

	single, err := LoadFiles([]string{judgePath})
	require.NoError(t, err)
	require.Equal(t, "single", single.Name)
	require.Len(t, single.Cases, 1)
	require.Equal(t, judgePath, single.Cases[0].Source)

	merged, err := LoadFiles([]string{judgePath, suitePath})
	require.NoError(t, err)
	require.Len(t, merged.Cases, 2)
	require.Equal(t, "single/single", merged.Cases[0].Name)
	require.Equal(t, "extra/one", merged.Cases[1].Name)

	_, err = LoadFiles([]string{filepath.Join(dir, "missing.txt")})
	require.Error(t, err)
}
