package state

import (
	"bytes"
	"context"
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"github.com/reoring/statecanon"
	yamlsrc "github.com/reoring/statecanon/source/yaml"
)

// Format names an input encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json" and "yaml" (or "yml").
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown input format %q", s)
}

// Source wraps b as a token source in the given format.
func Source(b []byte, f Format) statecanon.Source {
	if f == FormatYAML {
		return yamlsrc.NewBytes(b)
	}
	return statecanon.JSONBytes(b)
}

// Marshal encodes d in canonical form: compact, fields in declared order and
// collections in insertion order.
func Marshal(d Document) ([]byte, error) { return json.Marshal(d) }

// MarshalIndent is Marshal with indentation.
func MarshalIndent(d Document, prefix, indent string) ([]byte, error) {
	return json.MarshalIndent(d, prefix, indent)
}

// Unmarshal decodes JSON and normalizes it with the default schema.
func Unmarshal(b []byte, opts ...statecanon.ParseOpt) (Document, error) {
	return statecanon.ParseFrom(context.Background(), Default, statecanon.JSONBytes(b), opts...)
}

// Decode reads and normalizes one document from r.
func (s *Schema) Decode(ctx context.Context, r io.Reader, f Format, opts ...statecanon.ParseOpt) (statecanon.Decoded[Document], error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return statecanon.Decoded[Document]{}, fmt.Errorf("read document: %w", err)
	}
	return statecanon.ParseFromWithMeta(ctx, s, Source(b, f), opts...)
}

// Canonicalize normalizes raw JSON bytes and returns the canonical encoding.
func (s *Schema) Canonicalize(ctx context.Context, raw []byte, opts ...statecanon.ParseOpt) ([]byte, error) {
	d, err := statecanon.ParseFrom(ctx, s, statecanon.JSONBytes(raw), opts...)
	if err != nil {
		return nil, err
	}
	return Marshal(d)
}

// IsCanonical reports whether raw is byte-for-byte the canonical encoding of
// itself, ignoring surrounding whitespace.
func (s *Schema) IsCanonical(ctx context.Context, raw []byte) (bool, error) {
	out, err := s.Canonicalize(ctx, raw)
	if err != nil {
		return false, err
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, bytes.TrimSpace(raw)); err != nil {
		return false, fmt.Errorf("compact input: %w", err)
	}
	return bytes.Equal(compact.Bytes(), out), nil
}
