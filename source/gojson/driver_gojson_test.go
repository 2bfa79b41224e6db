package gojson_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/reoring/statecanon"
	"github.com/reoring/statecanon/record"
	"github.com/reoring/statecanon/source/gojson"
)

func TestDriver_DecodesLikeDefault(t *testing.T) {
	doc := []byte(`{"b":{"y":[1,"two",false,null]},"a":2}`)
	want, err := statecanon.Decode(statecanon.JSONBytes(doc), statecanon.ParseOpt{})
	if err != nil {
		t.Fatal(err)
	}
	got, err := statecanon.Decode(gojson.Driver().NewBytes(doc), statecanon.ParseOpt{})
	if err != nil {
		t.Fatal(err)
	}
	wm, gm := want.(record.Map[any]), got.(record.Map[any])
	if strings.Join(wm.Keys(), ",") != strings.Join(gm.Keys(), ",") {
		t.Fatalf("key order differs: %v vs %v", wm.Keys(), gm.Keys())
	}
	wa, _ := wm.Get("a")
	ga, _ := gm.Get("a")
	if wa != ga {
		t.Fatalf("numbers differ: %v vs %v", wa, ga)
	}
}

func TestDriver_DuplicateKeyEnforced(t *testing.T) {
	opt := statecanon.ParseOpt{Strictness: statecanon.Strictness{OnDuplicateKey: statecanon.Error}}
	_, err := statecanon.Decode(gojson.NewBytes([]byte(`{"o":{"k":1,"k":2}}`)), opt)
	iss, ok := statecanon.AsIssues(err)
	if !ok || iss[0].Code != statecanon.CodeDuplicateKey || iss[0].Path != "/o/k" {
		t.Fatalf("expected duplicate_key at /o/k, got %v", err)
	}
}

func TestDriver_SwapGlobal(t *testing.T) {
	statecanon.SetJSONDriver(gojson.Driver())
	defer statecanon.UseDefaultJSONDriver()
	if statecanon.CurrentJSONDriver().Name() != "go-json" {
		t.Fatalf("driver not installed")
	}
	statecanon.SetJSONDriver(nil)
	if statecanon.CurrentJSONDriver().Name() != "go-json" {
		t.Fatalf("nil driver should be ignored")
	}
	schema := statecanon.ObjectFunc(func(s statecanon.Scope) string { return s.String("k", "") }, nil)
	v, err := statecanon.ParseFrom(context.Background(), schema, statecanon.JSONReader(strings.NewReader(`{"k":"v"}`)))
	if err != nil || v != "v" {
		t.Fatalf("got %q, %v", v, err)
	}
}

func TestNewReader_UnknownLocation(t *testing.T) {
	src := gojson.NewReader(strings.NewReader(`[]`))
	for {
		tok, err := src.NextToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		if tok.Offset != -1 {
			t.Fatalf("offsets are not tracked, got %d", tok.Offset)
		}
	}
	if src.Location() != -1 {
		t.Fatalf("location is not tracked")
	}
}
