// Package yaml is a token source over YAML documents, for state files kept by
// hand. Mapping order is preserved; anchors and aliases are expanded.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	yamlv3 "gopkg.in/yaml.v3"

	eng "github.com/reoring/statecanon/internal/engine"
)

// maxAliasDepth bounds alias expansion so self-referencing documents fail
// instead of recursing forever.
const maxAliasDepth = 64

// NewReader reads the first YAML document from r.
func NewReader(r io.Reader) eng.TokenSource {
	b, err := io.ReadAll(r)
	if err != nil {
		return &source{err: err}
	}
	return NewBytes(b)
}

// NewBytes tokenizes the first YAML document in b. An empty document reads
// as null.
func NewBytes(b []byte) eng.TokenSource {
	var doc yamlv3.Node
	dec := yamlv3.NewDecoder(bytes.NewReader(b))
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return &source{err: err}
	}
	s := &source{}
	if doc.Kind == 0 {
		s.toks = []eng.Token{{Kind: eng.KindNull, Offset: -1}}
		return s
	}
	if err := s.walk(&doc, 0); err != nil {
		return &source{err: err}
	}
	return s
}

type source struct {
	toks []eng.Token
	pos  int
	err  error
}

func (s *source) NextToken() (eng.Token, error) {
	if s.err != nil {
		return eng.Token{}, s.err
	}
	if s.pos >= len(s.toks) {
		return eng.Token{}, io.EOF
	}
	t := s.toks[s.pos]
	s.pos++
	return t, nil
}

func (s *source) Location() int64 { return -1 }

func (s *source) emit(t eng.Token) {
	t.Offset = -1
	s.toks = append(s.toks, t)
}

func (s *source) walk(n *yamlv3.Node, aliasDepth int) error {
	switch n.Kind {
	case yamlv3.DocumentNode:
		if len(n.Content) == 0 {
			s.emit(eng.Token{Kind: eng.KindNull})
			return nil
		}
		return s.walk(n.Content[0], aliasDepth)
	case yamlv3.AliasNode:
		if aliasDepth >= maxAliasDepth || n.Alias == nil {
			return fmt.Errorf("yaml: alias %q nests too deeply", n.Value)
		}
		return s.walk(n.Alias, aliasDepth+1)
	case yamlv3.MappingNode:
		s.emit(eng.Token{Kind: eng.KindBeginObject})
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind == yamlv3.AliasNode && k.Alias != nil {
				k = k.Alias
			}
			if k.Kind != yamlv3.ScalarNode {
				return fmt.Errorf("yaml: line %d: mapping keys must be scalars", k.Line)
			}
			s.emit(eng.Token{Kind: eng.KindKey, String: k.Value})
			if err := s.walk(n.Content[i+1], aliasDepth); err != nil {
				return err
			}
		}
		s.emit(eng.Token{Kind: eng.KindEndObject})
		return nil
	case yamlv3.SequenceNode:
		s.emit(eng.Token{Kind: eng.KindBeginArray})
		for _, c := range n.Content {
			if err := s.walk(c, aliasDepth); err != nil {
				return err
			}
		}
		s.emit(eng.Token{Kind: eng.KindEndArray})
		return nil
	case yamlv3.ScalarNode:
		return s.scalar(n)
	}
	return fmt.Errorf("yaml: line %d: unsupported node kind %d", n.Line, n.Kind)
}

func (s *source) scalar(n *yamlv3.Node) error {
	switch n.ShortTag() {
	case "!!null":
		s.emit(eng.Token{Kind: eng.KindNull})
		return nil
	case "!!bool", "!!int", "!!float":
		var v any
		if err := n.Decode(&v); err != nil {
			return err
		}
		switch t := v.(type) {
		case bool:
			s.emit(eng.Token{Kind: eng.KindBool, Bool: t})
		case int:
			s.emit(eng.Token{Kind: eng.KindNumber, Number: strconv.Itoa(t)})
		case int64:
			s.emit(eng.Token{Kind: eng.KindNumber, Number: strconv.FormatInt(t, 10)})
		case uint64:
			s.emit(eng.Token{Kind: eng.KindNumber, Number: strconv.FormatUint(t, 10)})
		case float64:
			if math.IsNaN(t) || math.IsInf(t, 0) {
				s.emit(eng.Token{Kind: eng.KindNull})
			} else {
				s.emit(eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(t, 'g', -1, 64)})
			}
		default:
			s.emit(eng.Token{Kind: eng.KindString, String: n.Value})
		}
		return nil
	}
	s.emit(eng.Token{Kind: eng.KindString, String: n.Value})
	return nil
}
