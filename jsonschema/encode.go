package jsonschema

import (
	"bytes"

	json "github.com/goccy/go-json"
)

// MarshalIndent encodes s with indentation. The schema is encoded compactly
// first and indented afterwards: s nests through AdditionalProperties, which
// is typed any, and the direct indenting encoder does not terminate on it.
func MarshalIndent(s *Schema, prefix, indent string) ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, b, prefix, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
