package lambda_test

import (
	"io"
	"log/slog"
	"reflect"
	"testing"

	json "github.com/goccy/go-json"

	pactdsl "github.com/reoring/pactdsl"
	"github.com/reoring/pactdsl/dsl"
	"github.com/reoring/pactdsl/dsl/lambda"
)

func quiet() dsl.Option {
	return dsl.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func rendered(t *testing.T, doc *pactdsl.Document) string {
	t.Helper()
	b, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}

func TestObject_MatchesChainedBuilder(t *testing.T) {
	got := lambda.Object(func(o *lambda.Obj) {
		o.StringType("name", "harry")
		o.EachLike("tags", func(e *lambda.Obj) {
			e.StringType("tag", "x")
		}, 2)
		o.Object("meta", func(m *lambda.Obj) {
			m.IntegerType("version", 3)
		})
	}, quiet()).MustBuild()

	want := dsl.NewObject(quiet()).
		StringType("name", "harry").
		EachLike("tags", 2).StringType("tag", "x").CloseArray().AsObject().
		Object("meta").IntegerType("version", 3).CloseObject().AsObject().
		MustBuild()

	if g, w := rendered(t, got), rendered(t, want); g != w {
		t.Fatalf("lambda and chained documents differ\n got=%s\nwant=%s", g, w)
	}
}

func TestObject_AllCallbacksClose(t *testing.T) {
	root := lambda.Object(func(o *lambda.Obj) {
		o.Array("plain", func(a *lambda.Arr) {
			a.StringType("a")
			a.Object(func(e *lambda.Obj) { e.BooleanType("ok", true) })
			a.Array(func(in *lambda.Arr) { in.IntegerType(1) })
		})
		o.MinArrayLike("min", 1, func(e *lambda.Obj) { e.StringType("v", "m") })
		o.MaxArrayLike("max", 3, func(e *lambda.Obj) { e.StringType("v", "M") })
		o.MinMaxArrayLike("mm", 1, 2, func(e *lambda.Obj) { e.StringType("v", "r") }, 2)
		o.EachArrayLike("grid", func(row *lambda.Arr) { row.IntegerType(0) })
		o.UnorderedArray("set", func(a *lambda.Arr) { a.StringType("b").StringType("a") })
		o.EachKeyLike("k1", func(v *lambda.Obj) { v.StringType("label", "l") })
	}, quiet())

	if !root.IsClosed() {
		t.Fatalf("root left open")
	}
	doc, err := root.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	var body map[string]any
	b, _ := doc.BodyJSON()
	if err := json.Unmarshal(b, &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := map[string]any{
		"plain": []any{"a", map[string]any{"ok": true}, []any{float64(1)}},
		"min":   []any{map[string]any{"v": "m"}},
		"max":   []any{map[string]any{"v": "M"}},
		"mm":    []any{map[string]any{"v": "r"}, map[string]any{"v": "r"}},
		"grid":  []any{[]any{float64(0)}},
		"set":   []any{"b", "a"},
		"k1":    map[string]any{"label": "l"},
	}
	if !reflect.DeepEqual(body, want) {
		t.Fatalf("body = %#v", body)
	}
	paths := doc.MatchingRules.Paths()
	for _, p := range []string{"$.min", "$.max", "$.mm", "$.grid", "$.grid[*][0]", "$.set", "$.*.label"} {
		if _, ok := doc.MatchingRules.Get(p); !ok {
			t.Errorf("missing rule at %s (have %v)", p, paths)
		}
	}
}

func TestArray_Callbacks(t *testing.T) {
	doc, err := lambda.Array(func(a *lambda.Arr) {
		a.EachLike(func(e *lambda.Obj) { e.IntegerType("id", 1) })
		a.MinArrayLike(2, func(e *lambda.Obj) { e.IntegerType("id", 2) })
		a.MaxArrayLike(2, func(e *lambda.Obj) { e.IntegerType("id", 3) })
		a.MinMaxArrayLike(1, 3, func(e *lambda.Obj) { e.IntegerType("id", 4) })
		a.EachArrayLike(func(in *lambda.Arr) { in.StringType("s") })
		a.UnorderedArray(func(in *lambda.Arr) { in.StringType("u") })
	}, quiet()).Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	arr := doc.Body.([]any)
	if len(arr) != 6 {
		t.Fatalf("len = %d, want 6", len(arr))
	}
	if got := arr[1].([]any); len(got) != 2 {
		t.Fatalf("min-like element count = %d, want 2", len(got))
	}
	for _, p := range []string{"$[0]", "$[0][*].id", "$[1]", "$[4][*][0]", "$[5]"} {
		if _, ok := doc.MatchingRules.Get(p); !ok {
			t.Errorf("missing rule at %s (have %v)", p, doc.MatchingRules.Paths())
		}
	}
}

func TestArrayEachLike_Root(t *testing.T) {
	doc := lambda.ArrayEachLike(3, func(o *lambda.Obj) {
		o.UUID("id")
	}, quiet()).MustBuild()
	if n := len(doc.Body.([]any)); n != 3 {
		t.Fatalf("copies = %d, want 3", n)
	}
	if _, ok := doc.MatchingRules.Get("$"); !ok {
		t.Fatalf("root rule missing: %v", doc.MatchingRules.Paths())
	}
	if _, ok := doc.Generators.Get("body", "$[*].id"); !ok {
		t.Fatalf("uuid generator missing: %v", doc.Generators.Paths("body"))
	}
}

func TestCallbacks_IssuesSurfaceOnBuild(t *testing.T) {
	_, err := lambda.Object(func(o *lambda.Obj) {
		o.MinArrayLike("xs", 3, func(e *lambda.Obj) { e.StringType("v") }, 1)
		o.Object("", nil)
	}, quiet()).Build()
	iss, ok := pactdsl.AsIssues(err)
	if !ok || len(iss) != 2 {
		t.Fatalf("issues = %v", err)
	}
	if iss[0].Code != pactdsl.CodeInvalidSizeBound || iss[1].Code != pactdsl.CodeUnsupportedOperation {
		t.Fatalf("codes = %s, %s", iss[0].Code, iss[1].Code)
	}
}
