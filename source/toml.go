package source

import (
	"bytes"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// ParseTOML decodes a TOML source. Unknown keys are rejected. Spans are
// inline tables such as { literal = "--help" }.
func ParseTOML(data []byte) (*Document, error) {
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}
	return &doc, nil
}
