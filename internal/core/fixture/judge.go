// Package fixture reads queries from the formats the CLI accepts: the judge
// text format used by online-judge harnesses and YAML suites.
package fixture

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/maxrange/maxrange/internal/core"
)

// ParseJudge reads a single query in judge format:
//
//	n
//	left right
//	v1 v2 ... vn
//	[expected]
//
// Tokens may be split across lines arbitrarily. A trailing token after the n
// values is taken as the expected answer.
func ParseJudge(r io.Reader, name string) (core.Query, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	scanner.Split(bufio.ScanWords)

	var (
		tokens []int64
		pos    int
	)
	for scanner.Scan() {
		pos++
		value, err := strconv.ParseInt(scanner.Text(), 10, 64)
		if err != nil {
			return core.Query{}, fmt.Errorf("token %d: %q is not an integer", pos, scanner.Text())
		}
		tokens = append(tokens, value)
	}
	if err := scanner.Err(); err != nil {
		return core.Query{}, err
	}

	if len(tokens) < 3 {
		return core.Query{}, fmt.Errorf("expected at least 3 integers (n, left, right), got %d", len(tokens))
	}

	n := tokens[0]
	if n < 0 {
		return core.Query{}, fmt.Errorf("length must not be negative, got %d", n)
	}
	rest := tokens[3:]
	if int64(len(rest)) < n {
		return core.Query{}, fmt.Errorf("declared %d values, found %d", n, len(rest))
	}

	values := make([]int64, n)
	copy(values, rest[:n])

	query := core.Query{
		Name:   name,
		Left:   tokens[1],
		Right:  tokens[2],
		Values: values,
	}

	switch extra := rest[n:]; len(extra) {
	case 0:
	case 1:
		expected := extra[0]
		query.Expected = &expected
	default:
		return core.Query{}, fmt.Errorf("unexpected %d trailing integers after %d values", len(extra), n)
	}

	return query, nil
}

// FormatJudge renders a query in judge format without the expected line.
func FormatJudge(query core.Query) string {
	buf := make([]byte, 0, 16+len(query.Values)*4)
	buf = strconv.AppendInt(buf, int64(len(query.Values)), 10)
	buf = append(buf, '\n')
	buf = strconv.AppendInt(buf, query.Left, 10)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, query.Right, 10)
	buf = append(buf, '\n')
	for i, v := range query.Values {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = strconv.AppendInt(buf, v, 10)
	}
	return string(buf)
}
