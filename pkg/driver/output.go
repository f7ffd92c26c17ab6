package driver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/amazingcoderpro/simple-interpreter/pkg/runtime"
)

// Output formats accepted by WriteScope.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ParseFormat normalises an output format name. Empty selects text.
func ParseFormat(name string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(name)); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", name)
	}
}

// WriteScope renders scope to w in definition order.
func WriteScope(w io.Writer, scope *runtime.Scope, format string) error {
	f, err := ParseFormat(format)
	if err != nil {
		return err
	}
	if scope == nil {
		scope = runtime.NewScope()
	}
	switch f {
	case FormatJSON:
		return writeJSON(w, scope)
	case FormatYAML:
		return writeYAML(w, scope)
	default:
		return writeText(w, scope)
	}
}

func writeText(w io.Writer, scope *runtime.Scope) error {
	var buf bytes.Buffer
	scope.Each(func(name string, value runtime.Value) {
		fmt.Fprintf(&buf, "%s = %s\n", name, runtime.Format(value))
	})
	_, err := w.Write(buf.Bytes())
	return err
}

func writeJSON(w io.Writer, scope *runtime.Scope) error {
	raw, err := scope.MarshalJSON()
	if err != nil {
		return fmt.Errorf("output: marshal json: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return fmt.Errorf("output: indent json: %w", err)
	}
	buf.WriteByte('\n')
	_, err = w.Write(buf.Bytes())
	return err
}

func writeYAML(w io.Writer, scope *runtime.Scope) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	scope.Each(func(name string, value runtime.Value) {
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
			yamlScalar(value),
		)
	})
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("output: marshal yaml: %w", err)
	}
	return enc.Close()
}

func yamlScalar(v runtime.Value) *yaml.Node {
	node := &yaml.Node{Kind: yaml.ScalarNode}
	switch n := v.(type) {
	case runtime.IntegerValue:
		node.Tag = "!!int"
		node.Value = runtime.Format(n)
	case runtime.FloatValue:
		node.Tag = "!!float"
		switch {
		case math.IsNaN(n.Val):
			node.Value = ".nan"
		case math.IsInf(n.Val, 1):
			node.Value = ".inf"
		case math.IsInf(n.Val, -1):
			node.Value = "-.inf"
		default:
			node.Value = runtime.Format(n)
		}
	default:
		node.Tag = "!!null"
		node.Value = "null"
	}
	return node
}
