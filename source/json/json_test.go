package json

import (
	"io"
	"strings"
	"testing"

	eng "github.com/reoring/statecanon/internal/engine"
)

func dump(t *testing.T, src eng.TokenSource) string {
	t.Helper()
	var parts []string
	for {
		tok, err := src.NextToken()
		if err == io.EOF {
			return strings.Join(parts, " ")
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		switch tok.Kind {
		case eng.KindKey:
			parts = append(parts, "key:"+tok.String)
		case eng.KindString:
			parts = append(parts, "str:"+tok.String)
		case eng.KindNumber:
			parts = append(parts, "num:"+tok.Number)
		case eng.KindBool:
			if tok.Bool {
				parts = append(parts, "true")
			} else {
				parts = append(parts, "false")
			}
		default:
			parts = append(parts, tok.Kind.String())
		}
	}
}

func TestTokens_KeysAndValues(t *testing.T) {
	got := dump(t, NewBytes([]byte(`{"a":"b","c":[1.50,"d",true,null],"e":{"f":"g"},"h":false}`)))
	want := `{ key:a str:b key:c [ num:1.50 str:d true null ] key:e { key:f str:g } key:h false }`
	if got != want {
		t.Fatalf("\n got %s\nwant %s", got, want)
	}
}

func TestTokens_StringValueAfterNestedObject(t *testing.T) {
	got := dump(t, NewReader(strings.NewReader(`[{"k":"v"},"s",{"x":{}}]`)))
	want := `[ { key:k str:v } str:s { key:x { } } ]`
	if got != want {
		t.Fatalf("\n got %s\nwant %s", got, want)
	}
}

func TestLocation_TracksOffsets(t *testing.T) {
	src := NewBytes([]byte(`{"a": 1}`))
	if src.Location() != -1 {
		t.Fatalf("offset before the first token should be unknown")
	}
	var last int64
	for {
		tok, err := src.NextToken()
		if err != nil {
			break
		}
		if tok.Offset < last {
			t.Fatalf("offsets must not go backwards")
		}
		last = tok.Offset
	}
	if last != 8 {
		t.Fatalf("want final offset 8, got %d", last)
	}
}

func TestTokens_SyntaxError(t *testing.T) {
	src := NewBytes([]byte(`{"a" 1}`))
	for {
		_, err := src.NextToken()
		if err == io.EOF {
			t.Fatalf("expected a syntax error")
		}
		if err != nil {
			return
		}
	}
}
