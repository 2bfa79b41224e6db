package statecanon

import (
	"strconv"
	"strings"
)

// Ref gives refinement hooks access to presence and path building.
type Ref interface {
	Presence() PresenceMap
	Root() PathRef
	At(pointer string) PathRef
}

// PathRef builds JSON Pointer paths in a chain-safe way and creates Issues.
type PathRef interface {
	Field(name string) PathRef
	Index(i int) PathRef
	Pointer() string
	Issue(code string, params map[string]any) Issue
}

type refImpl struct {
	presence PresenceMap
}

// NewRef returns a Ref over pm. pm may be nil.
func NewRef(pm PresenceMap) Ref { return &refImpl{presence: pm} }

func (r *refImpl) Presence() PresenceMap { return r.presence }
func (r *refImpl) Root() PathRef         { return &pathRef{} }
func (r *refImpl) At(pointer string) PathRef {
	return &pathRef{parts: SplitPointer(pointer)}
}

type pathRef struct {
	parts []string // unescaped tokens
}

func (p *pathRef) Field(name string) PathRef {
	return &pathRef{parts: append(append([]string{}, p.parts...), name)}
}

func (p *pathRef) Index(i int) PathRef { return p.Field(strconv.Itoa(i)) }

func (p *pathRef) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, part := range p.parts {
		b.WriteByte('/')
		b.WriteString(pointerEscaper.Replace(part))
	}
	return b.String()
}

func (p *pathRef) Issue(code string, params map[string]any) Issue {
	return NewIssue(p.Pointer(), code, params)
}

var (
	pointerEscaper   = strings.NewReplacer("~", "~0", "/", "~1")
	pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")
)

// JoinPointer appends one unescaped token to a JSON Pointer. base may be ""
// or "/" for the root.
func JoinPointer(base, token string) string {
	if base == "/" {
		base = ""
	}
	return base + "/" + pointerEscaper.Replace(token)
}

// SplitPointer returns the unescaped tokens of a JSON Pointer.
func SplitPointer(pointer string) []string {
	if pointer == "" || pointer == "/" {
		return nil
	}
	raw := strings.Split(strings.TrimPrefix(pointer, "/"), "/")
	out := make([]string, len(raw))
	for i, s := range raw {
		out[i] = pointerUnescaper.Replace(s)
	}
	return out
}
