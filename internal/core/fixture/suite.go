package fixture

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/maxrange/maxrange/internal/core"
)

//go:embed builtin.yaml
var builtinYAML []byte

// Suite is a named collection of queries loaded from YAML.
type Suite struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description,omitempty"`
	Cases       []core.Query `yaml:"cases"`
}

// Builtin returns the suite shipped with the binary.
func Builtin() (*Suite, error) {
	return decodeSuite(strings.NewReader(string(builtinYAML)), "builtin")
}

// ParseSuite decodes a YAML suite. Cases without a name are named after their
// position.
func ParseSuite(r io.Reader, source string) (*Suite, error) {
	return decodeSuite(r, source)
}

func decodeSuite(r io.Reader, source string) (*Suite, error) {
	var suite Suite
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&suite); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%s: suite is empty", source)
		}
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	if strings.TrimSpace(suite.Name) == "" {
		suite.Name = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	}

	seen := make(map[string]int, len(suite.Cases))
	for i := range suite.Cases {
		c := &suite.Cases[i]
		if strings.TrimSpace(c.Name) == "" {
			c.Name = fmt.Sprintf("case-%d", i+1)
		}
		if prev, ok := seen[c.Name]; ok {
			return nil, fmt.Errorf("%s: duplicate case name %q (cases %d and %d)", source, c.Name, prev+1, i+1)
		}
		seen[c.Name] = i
		c.Source = source
	}

	return &suite, nil
}

// LoadFile reads queries from path. YAML files (.yaml, .yml) are suites;
// anything else is a single judge-format query. "-" reads judge format from
// stdin.
func LoadFile(path string) (*Suite, error) {
	if path == "-" {
		query, err := ParseJudge(os.Stdin, "stdin")
		if err != nil {
			return nil, fmt.Errorf("stdin: %w", err)
		}
		query.Source = "stdin"
		return &Suite{Name: "stdin", Cases: []core.Query{query}}, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close() // nolint:errcheck // best-effort cleanup on read-only file

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseSuite(file, path)
	default:
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		query, err := ParseJudge(file, name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		query.Source = path
		return &Suite{Name: name, Cases: []core.Query{query}}, nil
	}
}

// LoadFiles loads and concatenates queries from every path, prefixing case
// names with the suite name when more than one file is given.
func LoadFiles(paths []string) (*Suite, error) {
	if len(paths) == 1 {
		return LoadFile(paths[0])
	}

	merged := &Suite{Name: "batch"}
	for _, path := range paths {
		suite, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		for _, c := range suite.Cases {
			c.Name = suite.Name + "/" + c.Name
			merged.Cases = append(merged.Cases, c)
		}
	}
	return merged, nil
}
