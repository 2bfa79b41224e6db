package engine

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/reoring/statecanon/record"
)

type sliceSource struct {
	toks []Token
	pos  int
}

func (s *sliceSource) NextToken() (Token, error) {
	if s.pos >= len(s.toks) {
		return Token{}, io.EOF
	}
	t := s.toks[s.pos]
	s.pos++
	return t, nil
}

func (s *sliceSource) Location() int64 { return int64(s.pos) }

func tokens(ts ...Token) *sliceSource { return &sliceSource{toks: ts} }

var (
	bo = Token{Kind: KindBeginObject}
	eo = Token{Kind: KindEndObject}
	ba = Token{Kind: KindBeginArray}
	ea = Token{Kind: KindEndArray}
)

func key(k string) Token   { return Token{Kind: KindKey, String: k} }
func str(s string) Token   { return Token{Kind: KindString, String: s} }
func num(n string) Token   { return Token{Kind: KindNumber, Number: n} }
func boolean(b bool) Token { return Token{Kind: KindBool, Bool: b} }

func TestDecodeAnyFromSource_OrderedObjects(t *testing.T) {
	src := tokens(bo, key("b"), num("2"), key("a"), ba, str("x"), boolean(true), Token{Kind: KindNull}, ea, key("b"), num("3"), eo)
	v, err := DecodeAnyFromSource(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, ok := v.(record.Map[any])
	if !ok {
		t.Fatalf("want record.Map, got %T", v)
	}
	if got := strings.Join(m.Keys(), ","); got != "b,a" {
		t.Fatalf("want b,a got %s", got)
	}
	if b, _ := m.Get("b"); b.(interface{ String() string }).String() != "3" {
		t.Fatalf("later duplicate should win, got %v", b)
	}
	a, _ := m.Get("a")
	if arr := a.([]any); len(arr) != 3 || arr[0] != "x" || arr[1] != true || arr[2] != nil {
		t.Fatalf("unexpected array %v", arr)
	}
}

func TestDecodeAnyFromSource_Errors(t *testing.T) {
	if _, err := DecodeAnyFromSource(tokens()); !errors.Is(err, io.EOF) {
		t.Fatalf("empty source should be io.EOF, got %v", err)
	}
	if _, err := DecodeAnyFromSource(tokens(bo, key("a"))); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("open object should be unexpected EOF, got %v", err)
	}
	_, err := DecodeAnyFromSource(tokens(eo))
	var ie IssueError
	if !errors.As(err, &ie) || ie.Code != "parse_error" {
		t.Fatalf("stray end should be a parse_error, got %v", err)
	}
	if _, err := DecodeAnyFromSource(tokens(bo, str("v"), eo)); err == nil {
		t.Fatalf("value in key position should fail")
	}
}

func TestKind_String(t *testing.T) {
	if KindBeginObject.String() != "{" || KindNull.String() != "null" || Kind(42).String() != "Kind(42)" {
		t.Fatalf("unexpected kind names")
	}
}

func drain(src TokenSource) error {
	for {
		if _, err := src.NextToken(); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

func TestEnforcement_DuplicateKeys(t *testing.T) {
	stream := func() *sliceSource {
		return tokens(bo, key("list"), ba, bo, key("a"), num("1"), key("a"), num("2"), eo, ea, eo)
	}
	if err := drain(WrapWithEnforcement(stream(), EnforceOptions{})); err != nil {
		t.Fatalf("ignore should pass, got %v", err)
	}

	var warned []SimpleIssue
	err := drain(WrapWithEnforcement(stream(), EnforceOptions{OnDuplicate: DupWarn, IssueSink: func(si SimpleIssue) { warned = append(warned, si) }}))
	if err != nil || len(warned) != 1 || warned[0].Path != "/list/0/a" {
		t.Fatalf("warn: err=%v warned=%v", err, warned)
	}

	err = drain(WrapWithEnforcement(stream(), EnforceOptions{OnDuplicate: DupError}))
	var ie IssueError
	if !errors.As(err, &ie) || ie.Code != "duplicate_key" || ie.Path != "/list/0/a" {
		t.Fatalf("error: got %v", err)
	}
}

func TestEnforcement_SiblingObjectsDoNotShareKeys(t *testing.T) {
	src := tokens(bo, key("x"), bo, key("a"), num("1"), eo, key("y"), bo, key("a"), num("2"), eo, eo)
	if err := drain(WrapWithEnforcement(src, EnforceOptions{OnDuplicate: DupError})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEnforcement_MaxDepth(t *testing.T) {
	src := tokens(bo, key("a"), ba, bo, eo, ea, eo)
	err := drain(WrapWithEnforcement(src, EnforceOptions{MaxDepth: 2}))
	var ie IssueError
	if !errors.As(err, &ie) || ie.Path != "/a/0" {
		t.Fatalf("want depth error at /a/0, got %v", err)
	}
}

func TestEnforcement_MaxBytes(t *testing.T) {
	src := tokens(ba, num("1"), num("2"), num("3"), ea)
	err := drain(WrapWithEnforcement(src, EnforceOptions{MaxBytes: 2}))
	var ie IssueError
	if !errors.As(err, &ie) || ie.Code != "truncated" {
		t.Fatalf("want truncated, got %v", err)
	}
}
