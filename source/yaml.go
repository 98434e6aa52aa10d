package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a YAML source. Unknown keys are rejected.
func ParseYAML(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var doc Document
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return &doc, nil
}

// UnmarshalYAML accepts a bare string as a text span.
func (s *Span) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.ShortTag() != "!!null" {
		text := node.Value
		*s = Span{Text: &text}
		return nil
	}
	type plain Span
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*s = Span(p)
	return nil
}
