package shapefile_test

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	pactdsl "github.com/reoring/pactdsl"
	"github.com/reoring/pactdsl/dsl"
	"github.com/reoring/pactdsl/internal/shapefile"
	"github.com/reoring/pactdsl/matchers"
)

func opts() []dsl.Option {
	clock := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)
	return []dsl.Option{
		dsl.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		dsl.WithClock(func() time.Time { return clock }),
	}
}

func build(t *testing.T, src string) (*pactdsl.Document, error) {
	t.Helper()
	s, err := shapefile.Decode(strings.NewReader(src))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return shapefile.Build(s, opts()...)
}

func rules(c *matchers.Category) []string {
	var out []string
	for _, e := range c.Entries() {
		for _, r := range e.Group.Rules {
			out = append(out, e.Path+"="+matchers.Describe(r))
		}
	}
	return out
}

func body(t *testing.T, doc *pactdsl.Document) string {
	t.Helper()
	b, err := doc.BodyJSON()
	if err != nil {
		t.Fatalf("body: %v", err)
	}
	return string(b)
}

const orders = `
root: object
fields:
  - {name: id, kind: integer, example: 42}
  - name: tags
    kind: eachLike
    min: 1
    element: {kind: string, example: red}
  - name: items
    kind: eachLike
    examples: 2
    fields:
      - {name: sku, kind: regex, regex: "[A-Z]{3}", example: ABC}
`

func TestBuild_ObjectShape(t *testing.T) {
	doc, err := build(t, orders)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got, want := body(t, doc), `{"id":42,"tags":["red"],"items":[{"sku":"ABC"},{"sku":"ABC"}]}`; got != want {
		t.Fatalf("body = %s\nwant  %s", got, want)
	}
	want := []string{
		"$.id=integer",
		"$.tags=type(min=1)",
		"$.tags[*]=type",
		"$.items=type(min=0)",
		`$.items[*].sku=regex(regex="[A-Z]{3}")`,
	}
	if got := rules(doc.MatchingRules); !reflect.DeepEqual(got, want) {
		t.Fatalf("rules = %q\nwant    %q", got, want)
	}
}

func TestBuild_RootEachLike(t *testing.T) {
	doc, err := build(t, `
root: eachLike
min: 2
fields:
  - {name: id, kind: uuid}
  - {name: active, kind: booleanValue, example: false}
`)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	arr, ok := doc.Body.([]any)
	if !ok || len(arr) != 2 {
		t.Fatalf("body = %#v", doc.Body)
	}
	if _, ok := doc.Generators.Get("body", "$[*].id"); !ok {
		t.Fatalf("uuid generator missing: %v", doc.Generators.Paths("body"))
	}
	if got := rules(doc.MatchingRules); got[0] != "$=type(min=2)" {
		t.Fatalf("root rule = %q", got)
	}
}

func TestBuild_ArrayAndTemporal(t *testing.T) {
	doc, err := build(t, `
root: array
fields:
  - {kind: date, example: "2024-01-02"}
  - {kind: time}
  - {kind: datetime, expression: "+1 day"}
  - kind: unordered
    max: 2
    fields:
      - {kind: string, example: b}
      - {kind: string, example: a}
`)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got, want := body(t, doc), `["2024-01-02","14:07:09","2024-03-05T14:07:09",["b","a"]]`; got != want {
		t.Fatalf("body = %s\nwant  %s", got, want)
	}
	if _, ok := doc.Generators.Get("body", "$[0]"); ok {
		t.Fatalf("explicit date example should not record a generator")
	}
	if _, ok := doc.Generators.Get("body", "$[1]"); !ok {
		t.Fatalf("time generator missing")
	}
	if _, ok := doc.MatchingRules.Get("$[3]"); !ok {
		t.Fatalf("ignore-order rule missing: %v", doc.MatchingRules.Paths())
	}
}

func TestBuild_EachKeyLike(t *testing.T) {
	doc, err := build(t, `
fields:
  - name: byId
    kind: object
    fields:
      - name: k1
        kind: eachKeyLike
        element: {kind: integer, example: 1}
`)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := body(t, doc); got != `{"byId":{"k1":1}}` {
		t.Fatalf("body = %s", got)
	}
	if got := rules(doc.MatchingRules); !reflect.DeepEqual(got, []string{"$.byId=values", "$.byId.*=integer"}) {
		t.Fatalf("rules = %q", got)
	}
}

func TestBuild_ShapeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"unknown kind", "fields:\n  - {name: a, kind: bogus}\n", shapefile.ErrUnknownKind},
		{"bad example", "fields:\n  - {name: a, kind: integer, example: nope}\n", shapefile.ErrBadExample},
		{"bad date", "fields:\n  - {name: a, kind: date, example: yesterday}\n", shapefile.ErrBadExample},
		{"bad root", "root: tree\n", shapefile.ErrBadRoot},
		{"integer overflow", "fields:\n  - {name: a, kind: integer, example: 9223372036854775808}\n", shapefile.ErrBadExample},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := build(t, tt.src)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestBuild_ErrorPathQuotesNames(t *testing.T) {
	_, err := build(t, "fields:\n  - name: a b\n    kind: object\n    fields: [{name: c, kind: bogus}]\n")
	if !errors.Is(err, shapefile.ErrUnknownKind) {
		t.Fatalf("err = %v", err)
	}
	if !strings.HasPrefix(err.Error(), "$['a b'].c:") {
		t.Fatalf("err = %q, want it to start with the quoted path", err)
	}
}

func TestBuild_BuilderIssues(t *testing.T) {
	_, err := build(t, `
fields:
  - {name: code, kind: regex, regex: "\\d+", example: abc}
  - name: xs
    kind: eachLike
    max: 1
    examples: 3
    fields: [{name: v, kind: string}]
`)
	iss, ok := pactdsl.AsIssues(err)
	if !ok {
		t.Fatalf("err = %v, want Issues", err)
	}
	if !iss.HasCode(pactdsl.CodeInvalidExample) || !iss.HasCode(pactdsl.CodeInvalidSizeBound) {
		t.Fatalf("issues = %v", iss)
	}
}

func TestDecode_UnknownKey(t *testing.T) {
	if _, err := shapefile.Decode(strings.NewReader("fields:\n  - {name: a, kind: string, sample: x}\n")); err == nil {
		t.Fatalf("unknown key accepted")
	}
}

func TestLoad_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shape.json")
	src := `{"root":"object","fields":[{"name":"ok","kind":"boolean","example":true}]}`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := shapefile.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	doc, err := shapefile.Build(s, opts()...)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := body(t, doc); got != `{"ok":true}` {
		t.Fatalf("body = %s", got)
	}
}
