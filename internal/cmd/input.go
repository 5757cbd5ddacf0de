package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/maxrange/maxrange/internal/core"
	"github.com/maxrange/maxrange/internal/core/fixture"
)

// queryInput collects the ways a single query can be given on the command line.
type queryInput struct {
	Positional []string
	Values     []int64
	InputPath  string
	Left       int64
	Right      int64
	LeftSet    bool
	RightSet   bool
}

func resolveQuery(in queryInput) (core.Query, error) {
	trimmed := strings.TrimSpace(in.InputPath)
	if trimmed != "" {
		if len(in.Positional) > 0 || len(in.Values) > 0 {
			return core.Query{}, fmt.Errorf("cannot combine values with --input")
		}
		query, err := readSingleQuery(trimmed)
		if err != nil {
			return core.Query{}, err
		}
		if in.LeftSet {
			query.Left = in.Left
		}
		if in.RightSet {
			query.Right = in.Right
		}
		return query, nil
	}

	if !in.LeftSet || !in.RightSet {
		return core.Query{}, fmt.Errorf("--left and --right are required unless --input is given")
	}

	values, err := parseValues(in.Positional)
	if err != nil {
		return core.Query{}, err
	}
	values = append(values, in.Values...)

	return core.Query{
		Name:   "query",
		Values: values,
		Left:   in.Left,
		Right:  in.Right,
		Source: "args",
	}, nil
}

func readSingleQuery(path string) (core.Query, error) {
	suite, err := fixture.LoadFile(path)
	if err != nil {
		return core.Query{}, err
	}
	if len(suite.Cases) != 1 {
		return core.Query{}, fmt.Errorf("%s holds %d queries; use the batch command", path, len(suite.Cases))
	}
	return suite.Cases[0], nil
}

// parseValues accepts integers as separate arguments or comma-separated
// within one argument.
func parseValues(args []string) ([]int64, error) {
	values := make([]int64, 0, len(args))
	for _, arg := range args {
		for _, raw := range strings.Split(arg, ",") {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			v, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid value %q: not an integer", raw)
			}
			values = append(values, v)
		}
	}
	return values, nil
}
