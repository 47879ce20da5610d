package formatter

import (
	"bytes"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultYAMLIndent = 2

// YAMLFormatOptions control YAML rendering.
type YAMLFormatOptions struct {
	Indent                int
	LiteralBlockStrings   bool
	ExpandEscapedNewlines bool
}

// FormatYAML renders a value as YAML. The value is first encoded into a
// yaml.Node tree so string scalars can be rewritten before serialization:
// ExpandEscapedNewlines turns literal "\n" sequences into real newlines, and
// LiteralBlockStrings emits multi-line strings as "|" blocks. Expansion runs
// before styling so strings it unfolds also pick up the block style.
func FormatYAML(v interface{}, opts YAMLFormatOptions) (string, error) {
	var root yaml.Node
	if err := root.Encode(v); err != nil {
		return "", err
	}

	if opts.ExpandEscapedNewlines {
		eachStringScalar(&root, func(n *yaml.Node) {
			if strings.Contains(n.Value, `\n`) {
				n.Value = strings.ReplaceAll(n.Value, `\n`, "\n")
			}
		})
	}
	if opts.LiteralBlockStrings {
		eachStringScalar(&root, func(n *yaml.Node) {
			if strings.Contains(n.Value, "\n") {
				n.Style = yaml.LiteralStyle
			}
		})
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	if opts.Indent > 0 {
		enc.SetIndent(opts.Indent)
	} else {
		enc.SetIndent(defaultYAMLIndent)
	}
	if err := enc.Encode(&root); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// eachStringScalar applies fn to every !!str scalar in the node tree.
func eachStringScalar(n *yaml.Node, fn func(*yaml.Node)) {
	if n == nil {
		return
	}
	if n.Kind == yaml.ScalarNode && n.Tag == "!!str" {
		fn(n)
	}
	for _, child := range n.Content {
		eachStringScalar(child, fn)
	}
}
