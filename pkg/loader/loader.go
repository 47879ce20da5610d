// Package loader parses raw input into tree-shaped data. It auto-detects
// JSON, NDJSON, YAML (single and multi-document), TOML, and JWT tokens,
// and normalizes arbitrary Go values into plain maps and slices.
package loader

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/ohler55/ojg/oj"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// LoadData parses input into one document per element, auto-detecting the
// format. Single-document inputs yield a one-element slice.
//
// Detection order: JWT, multi-document YAML, NDJSON, TOML, JSON, YAML.
// JWT and multi-document YAML have unambiguous shapes so they go first;
// TOML is checked before JSON because a "[section]" header would otherwise
// be mistaken for a JSON array.
func LoadData(input string) ([]any, error) {
	// Bare carriage returns show up in captured CLI output where progress
	// lines were overwritten; treat them as line breaks.
	input = strings.ReplaceAll(input, "\r\n", "\n")
	input = strings.ReplaceAll(input, "\r", "\n")
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("empty input")
	}

	switch {
	case IsJWT(input):
		return loadJWT(input)
	case strings.HasPrefix(input, "---") || strings.Contains(input, "\n---"):
		return loadMultiDocYAML(input)
	case isLikelyNDJSON(input):
		return loadNDJSON(input)
	case isLikelyTOML(input):
		return loadTOML(input)
	case strings.HasPrefix(input, "{") || strings.HasPrefix(input, "["):
		docs, err := loadJSON(input)
		if err != nil {
			// YAML flow syntax overlaps with malformed JSON, so give the
			// YAML parser a chance before failing.
			if yamlDocs, yamlErr := loadYAML(input); yamlErr == nil {
				return yamlDocs, nil
			}
			return nil, err
		}
		return docs, nil
	default:
		return loadYAML(input)
	}
}

// LoadRoot parses input into a single root node. Multi-document inputs
// come back as a slice so the whole set stays navigable.
func LoadRoot(input string) (any, error) {
	docs, err := LoadData(input)
	if err != nil {
		return nil, err
	}
	if len(docs) == 1 {
		return docs[0], nil
	}
	return docs, nil
}

// LoadFile reads and parses a file into a single root node.
func LoadFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadRoot(string(data))
}

// LoadObject accepts an already parsed value. Strings and byte slices run
// through format detection; everything else is normalized to plain maps
// and slices so expression evaluation works on it.
func LoadObject(value any) (any, error) {
	if value == nil {
		return nil, fmt.Errorf("object input is nil")
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() { //nolint:exhaustive // only nilable kinds need the check
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return nil, fmt.Errorf("object input is nil")
		}
	}

	switch v := value.(type) {
	case string:
		return LoadRoot(v)
	case []byte:
		return LoadRoot(string(v))
	default:
		return normalizeValue(value)
	}
}

func loadJSON(input string) ([]any, error) {
	data, err := oj.ParseString(input)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return []any{data}, nil
}

func loadYAML(input string) ([]any, error) {
	var data any
	if err := yaml.Unmarshal([]byte(input), &data); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return []any{data}, nil
}

func loadMultiDocYAML(input string) ([]any, error) {
	var docs []any
	dec := yaml.NewDecoder(strings.NewReader(input))
	for {
		var doc any
		if err := dec.Decode(&doc); err != nil {
			if err.Error() == "EOF" {
				break
			}
			return nil, fmt.Errorf("invalid multi-document YAML: %w", err)
		}
		if doc != nil {
			docs = append(docs, doc)
		}
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no documents found in multi-document YAML")
	}
	return docs, nil
}

// loadNDJSON parses one JSON document per line. Lines that fail to parse
// are kept as plain strings, which keeps mixed log streams loadable.
func loadNDJSON(input string) ([]any, error) {
	var docs []any
	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		doc, err := oj.ParseString(line)
		if err != nil {
			docs = append(docs, line)
			continue
		}
		docs = append(docs, doc)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no data found in input")
	}
	return docs, nil
}

func loadTOML(input string) ([]any, error) {
	var data any
	if err := toml.Unmarshal([]byte(input), &data); err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}
	return []any{data}, nil
}
