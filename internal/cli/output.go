package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/solrdex/internal/domain/coerce"
	"github.com/kailas-cloud/solrdex/internal/domain/record"
)

// printer writes command results in the configured format.
type printer struct {
	format string
	w      io.Writer
}

func newPrinter(opts *RootOptions, w io.Writer) printer {
	return printer{format: opts.Format, w: w}
}

func (p printer) print(v any) error {
	if p.format == "json" {
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return enc.Close()
}

// status is the output of commands that return no documents.
type status struct {
	Status string `yaml:"status" json:"status"`
	Count  int    `yaml:"count,omitempty" json:"count,omitempty"`
}

// results is the output of the query command.
type results struct {
	NumFound int64     `yaml:"numFound" json:"numFound"`
	Start    int64     `yaml:"start" json:"start"`
	Docs     []docView `yaml:"docs" json:"docs"`
}

// docView renders a raw record with tag-typed values.
// YAML keeps field order; JSON objects are keyed by name.
type docView record.Record

func (d docView) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range d.Fields {
		var val yaml.Node
		if err := val.Encode(fieldValue(f)); err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Name},
			&val,
		)
	}
	return node, nil
}

func (d docView) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(d.Fields))
	for _, f := range d.Fields {
		m[f.Name] = fieldValue(f)
	}
	return json.Marshal(m)
}

// fieldValue converts a wire field to a Go value by its tag.
// Text that does not fit its tag is kept as text.
func fieldValue(f record.Field) any {
	if f.IsArray() {
		out := make([]any, len(f.Children))
		for i, c := range f.Children {
			out[i] = fieldValue(c)
		}
		return out
	}
	v, err := coerce.Tagged(f.Text, f.Tag)
	if err != nil {
		return f.Text
	}
	return v.Interface()
}
