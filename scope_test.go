package statecanon_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/reoring/statecanon"
	"github.com/reoring/statecanon/record"
)

func scopeOf(t *testing.T, doc string) (statecanon.Scope, statecanon.PresenceMap) {
	t.Helper()
	v, err := statecanon.Decode(statecanon.JSONBytes([]byte(doc)), statecanon.ParseOpt{})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	pm := statecanon.PresenceMap{}
	return statecanon.OpenScope(v, pm), pm
}

func TestScope_ScalarReaders(t *testing.T) {
	s, pm := scopeOf(t, `{"b1":"是","b2":"否","b3":"maybe","n":"3.5","f":-2.4,"tags":"火","list":["a",1,"b"]}`)
	if !s.Bool("b1", false) || s.Bool("b2", true) || !s.Bool("b3", true) {
		t.Fatalf("unexpected boolean coercion")
	}
	if pm["/b3"]&statecanon.PresenceDefaultApplied == 0 {
		t.Fatalf("/b3 should be defaulted, got %v", pm["/b3"])
	}
	if got := s.Number("n", 0); got != 3.5 {
		t.Fatalf("want 3.5 got %v", got)
	}
	if got := s.Floored("f", 0, 0); got != 0 {
		t.Fatalf("want 0 got %v", got)
	}
	if got := s.Rounded("f", 0); got != -2 {
		t.Fatalf("want -2 got %v", got)
	}
	if got := s.Rounded("n", 0); got != 4 {
		t.Fatalf("want 4 got %v", got)
	}
	if !reflect.DeepEqual(s.Strings("tags"), []string{"火"}) {
		t.Fatalf("lone string should become a list")
	}
	if !reflect.DeepEqual(s.Strings("list"), []string{"a", "b"}) {
		t.Fatalf("non-strings should be dropped, got %v", s.Strings("list"))
	}
	if got := s.Strings("missing"); got == nil || len(got) != 0 {
		t.Fatalf("missing list should be empty and non-nil, got %#v", got)
	}
}

func TestScope_ObjectPaths(t *testing.T) {
	s, pm := scopeOf(t, `{"a/b":{"c~d":{"x":1}},"n":5}`)
	inner := s.Object("a/b").Object("c~d")
	if inner.Path() != "/a~1b/c~0d" {
		t.Fatalf("unexpected path %s", inner.Path())
	}
	if inner.Number("x", 0) != 1 {
		t.Fatalf("want x=1")
	}
	if pm["/a~1b/c~0d/x"]&statecanon.PresenceSeen == 0 {
		t.Fatalf("x should be seen: %v", pm)
	}
	_ = s.Object("n")
	if pm["/n"]&statecanon.PresenceDefaultApplied == 0 {
		t.Fatalf("non-object should be defaulted")
	}
	if s.Object("n").Len() != 0 {
		t.Fatalf("non-object should read as empty")
	}
}

func TestCollect_CanonicalKeys(t *testing.T) {
	s, pm := scopeOf(t, `{"m":{"b":1," a ":2,"a":3,"":4,"$meta":5,"c":6}}`)
	got := statecanon.Collect(s, "m", func(e statecanon.Entry) any { return e.Raw })
	if k := strings.Join(got.Keys(), ","); k != "b,a,c" {
		t.Fatalf("want b,a,c got %s", k)
	}
	if a, _ := got.Get("a"); a.(interface{ String() string }).String() != "2" {
		t.Fatalf("first occurrence wins, got %v", a)
	}
	for _, p := range []string{"/m/a", "/m/", "/m/$meta"} {
		if pm[p]&statecanon.PresencePruned == 0 {
			t.Fatalf("%s should be pruned: %v", p, pm)
		}
	}
}

func TestPassthrough_DropsMetaKeys(t *testing.T) {
	s, _ := scopeOf(t, `{"ev":{"k":{"$__META_EXTENSIBLE__$":true,"v":[1,{"w":2}]}}}`)
	got := s.Passthrough("ev")
	k, _ := got.Get("k")
	inner, ok := k.(record.Map[any])
	if !ok {
		t.Fatalf("nested objects stay ordered maps, got %T", k)
	}
	if strings.Join(inner.Keys(), ",") != "v" {
		t.Fatalf("meta keys should be dropped, got %v", inner.Keys())
	}
}

func TestPointers(t *testing.T) {
	cases := []struct {
		base, token, want string
	}{
		{"", "a", "/a"},
		{"/", "a", "/a"},
		{"/a", "b/c", "/a/b~1c"},
		{"/a", "~", "/a/~0"},
	}
	for _, tc := range cases {
		if got := statecanon.JoinPointer(tc.base, tc.token); got != tc.want {
			t.Fatalf("JoinPointer(%q,%q)=%q want %q", tc.base, tc.token, got, tc.want)
		}
	}
	if got := statecanon.SplitPointer("/a/b~1c/~0"); !reflect.DeepEqual(got, []string{"a", "b/c", "~"}) {
		t.Fatalf("unexpected split %v", got)
	}
	if statecanon.SplitPointer("/") != nil {
		t.Fatalf("root splits to nil")
	}
	ref := statecanon.NewRef(nil).Root().Field("主角").Index(2)
	if ref.Pointer() != "/主角/2" {
		t.Fatalf("unexpected pointer %s", ref.Pointer())
	}
	if statecanon.NewRef(nil).At("/x/y").Pointer() != "/x/y" {
		t.Fatalf("At should round-trip")
	}
}

func TestPresence_String(t *testing.T) {
	if statecanon.Presence(0).String() != "none" {
		t.Fatalf("zero presence")
	}
	p := statecanon.PresenceSeen | statecanon.PresenceClamped
	if p.String() != "seen|clamped" {
		t.Fatalf("got %s", p.String())
	}
	if !p.Corrected() || statecanon.PresenceSeen.Corrected() {
		t.Fatalf("unexpected Corrected")
	}
}

func TestMarkPath_UsesContextMap(t *testing.T) {
	pm := statecanon.PresenceMap{}
	ctx := statecanon.WithPresence(context.Background(), pm)
	statecanon.MarkPath(ctx, "/x", statecanon.PresenceTruncated)
	if pm["/x"] != statecanon.PresenceTruncated {
		t.Fatalf("mark missing: %v", pm)
	}
	// Without a map attached marking is a no-op.
	statecanon.MarkPath(context.Background(), "/x", statecanon.PresencePruned)
	if statecanon.PresenceFrom(statecanon.WithPresence(context.Background(), nil)) != nil {
		t.Fatalf("nil map should not be attached")
	}
}

func TestIssues_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("boom")
	var iss statecanon.Issues
	for i := 0; i < 4; i++ {
		iss = statecanon.AppendIssues(iss, statecanon.Issue{Path: "/p", Code: statecanon.CodeParseError})
	}
	iss[0].Cause = cause
	msg := iss.Error()
	if !strings.HasPrefix(msg, "parse_error at /p; parse_error at /p") || !strings.HasSuffix(msg, "(total 4)") {
		t.Fatalf("unexpected message %q", msg)
	}
	if !errors.Is(iss, cause) {
		t.Fatalf("cause should unwrap")
	}
	var err error = iss
	if !statecanon.HasCode(err, statecanon.CodeParseError) || statecanon.HasCode(err, statecanon.CodeTruncated) {
		t.Fatalf("HasCode mismatch")
	}
}

func TestKindOf(t *testing.T) {
	v, _ := statecanon.Decode(statecanon.JSONBytes([]byte(`{"n":1}`)), statecanon.ParseOpt{})
	m := v.(record.Map[any])
	n, _ := m.Get("n")
	for want, in := range map[string]any{"null": nil, "boolean": true, "string": "s", "array": []any{}, "object": m, "number": n} {
		if got := statecanon.KindOf(in); got != want {
			t.Fatalf("KindOf(%v)=%s want %s", in, got, want)
		}
	}
}

func TestParseSeverity(t *testing.T) {
	for _, s := range []statecanon.Severity{statecanon.Ignore, statecanon.Warn, statecanon.Error} {
		got, ok := statecanon.ParseSeverity(s.String())
		if !ok || got != s {
			t.Fatalf("round trip %v", s)
		}
	}
	if _, ok := statecanon.ParseSeverity("fatal"); ok {
		t.Fatalf("unknown severity accepted")
	}
}

func TestExplain(t *testing.T) {
	pm := statecanon.PresenceMap{
		"/":        statecanon.PresenceSeen,
		"/gone":    statecanon.PresenceDefaultApplied,
		"/bad":     statecanon.PresenceSeen | statecanon.PresenceDefaultApplied,
		"/nil":     statecanon.PresenceSeen | statecanon.PresenceWasNull | statecanon.PresenceDefaultApplied,
		"/hp":      statecanon.PresenceSeen | statecanon.PresenceClamped,
		"/bag/x":   statecanon.PresenceSeen | statecanon.PresencePruned,
		"/ladder":  statecanon.PresenceSeen | statecanon.PresenceTruncated,
		"/quiet/a": statecanon.PresenceSeen,
	}
	var got []string
	for _, c := range statecanon.Explain(pm, false) {
		got = append(got, c.Path+"="+c.Reason())
	}
	want := []string{"/bad=malformed", "/bag/x=pruned", "/hp=clamped", "/ladder=truncated", "/nil=null"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
	if n := len(statecanon.Explain(pm, true)); n != 6 {
		t.Fatalf("want 6 corrections with missing fields, got %d", n)
	}
}
