package yaml_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/reoring/statecanon"
	"github.com/reoring/statecanon/record"
	"github.com/reoring/statecanon/source/yaml"
)

func decode(t *testing.T, doc string) any {
	t.Helper()
	v, err := statecanon.Decode(yaml.NewBytes([]byte(doc)), statecanon.ParseOpt{})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return v
}

func encode(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestYAML_ScalarsAndOrder(t *testing.T) {
	v := decode(t, `
z: 1
a: 2.5
flag: true
none: ~
text: "3"
word: 是
list: [x, 0x10, .inf]
`)
	want := `{"z":1,"a":2.5,"flag":true,"none":null,"text":"3","word":"是","list":["x",16,null]}`
	if got := encode(t, v); got != want {
		t.Fatalf("\n got %s\nwant %s", got, want)
	}
}

func TestYAML_AliasesExpand(t *testing.T) {
	v := decode(t, `
base: &b {hp: 10}
copy: *b
`)
	m := v.(record.Map[any])
	c, _ := m.Get("copy")
	if encode(t, c) != `{"hp":10}` {
		t.Fatalf("alias not expanded: %s", encode(t, c))
	}
}

func TestYAML_EmptyDocumentIsNull(t *testing.T) {
	if v := decode(t, ""); v != nil {
		t.Fatalf("want nil, got %v", v)
	}
}

func TestYAML_Errors(t *testing.T) {
	for _, doc := range []string{"a: [1, 2", "? [a, b]\n: c\n"} {
		if _, err := statecanon.Decode(yaml.NewBytes([]byte(doc)), statecanon.ParseOpt{}); err == nil {
			t.Fatalf("%q: expected an error", doc)
		}
	}
}

func TestYAML_NewReader(t *testing.T) {
	v, err := statecanon.Decode(yaml.NewReader(strings.NewReader("k: v\n")), statecanon.ParseOpt{})
	if err != nil {
		t.Fatal(err)
	}
	if encode(t, v) != `{"k":"v"}` {
		t.Fatalf("unexpected %s", encode(t, v))
	}
}
