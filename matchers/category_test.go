package matchers_test

import (
	"reflect"
	"testing"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	m "github.com/reoring/pactdsl/matchers"
)

func TestCategory_AddAccumulatesAndSetReplaces(t *testing.T) {
	c := m.NewCategory("body")
	c.AddRule(".a", m.TypeRule{})
	c.AddRule(".a", m.RegexRule{Regex: `\d+`})
	g, ok := c.Get(".a")
	if !ok || len(g.Rules) != 2 || g.Logic != m.And {
		t.Fatalf("expected two AND rules at .a, got %#v", g)
	}

	c.SetRules(".a", m.NewGroup(m.Or, m.IncludeRule{Value: "x"}))
	g, _ = c.Get(".a")
	if len(g.Rules) != 1 || g.Logic != m.Or {
		t.Fatalf("SetRules should replace the group, got %#v", g)
	}
}

func TestCategory_MergeFromAndRootPrefix(t *testing.T) {
	child := m.NewCategory("body")
	child.AddRule("", m.MinTypeRule{Min: 1})
	child.AddRule("[*].id", m.NumberRule{Kind: m.NumberInteger})

	parent := m.NewCategory("body")
	parent.AddRule(".name", m.TypeRule{})
	parent.MergeFrom(child, ".items")
	parent.ApplyRootPrefix("$")

	want := []string{"$.name", "$.items", "$.items[*].id"}
	if got := parent.Paths(); !reflect.DeepEqual(got, want) {
		t.Fatalf("paths = %v, want %v", got, want)
	}
	// merging copies groups; the child table is untouched
	if got := child.Paths(); !reflect.DeepEqual(got, []string{"", "[*].id"}) {
		t.Fatalf("child mutated: %v", got)
	}
}

func TestCategory_CopyIsIndependent(t *testing.T) {
	c := m.NewCategory("body")
	c.AddRule(".a", m.TypeRule{})
	cp := c.Copy()
	cp.AddRule(".a", m.NullRule{})
	cp.AddRule(".b", m.TypeRule{})
	if g, _ := c.Get(".a"); len(g.Rules) != 1 {
		t.Fatalf("copy shares groups with source")
	}
	if c.Len() != 1 || cp.Len() != 2 {
		t.Fatalf("unexpected lengths %d %d", c.Len(), cp.Len())
	}
}

func TestCategory_JSONLayout(t *testing.T) {
	c := m.NewCategory("body")
	c.AddRule("$.z", m.TypeRule{})
	c.AddRule("$.a", m.MinMaxTypeRule{Min: 1, Max: 3})
	c.SetRules("$.d", m.NewGroup(m.Or, m.DateRule{Format: "yyyy-MM-dd"}, m.NullRule{}))

	b, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"$.z":{"matchers":[{"match":"type"}],"combine":"AND"},` +
		`"$.a":{"matchers":[{"match":"type","max":3,"min":1}],"combine":"AND"},` +
		`"$.d":{"matchers":[{"match":"date","date":"yyyy-MM-dd"},{"match":"null"}],"combine":"OR"}}`
	if string(b) != want {
		t.Fatalf("json mismatch\n got=%s\nwant=%s", b, want)
	}
}

func TestCategory_YAMLLayout(t *testing.T) {
	c := m.NewCategory("body")
	c.AddRule("$.tags", m.MinTypeRule{Min: 0})
	out, err := yaml.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := "$.tags:\n    matchers:\n        - match: type\n          min: 0\n    combine: AND\n"
	if string(out) != want {
		t.Fatalf("yaml mismatch\n got=%q\nwant=%q", out, want)
	}
}

func TestRules_Rendering(t *testing.T) {
	tests := []struct {
		rule m.Rule
		want string
	}{
		{m.TypeRule{}, "type"},
		{m.NumberRule{Kind: m.NumberDecimal}, "decimal"},
		{m.NumberRule{Kind: m.NumberAny}, "number"},
		{m.MinTypeRule{Min: 2}, "type(min=2)"},
		{m.IgnoreOrder(), "ignore-order"},
		{m.IgnoreOrderRule{Min: 1, Max: -1}, "ignore-order(min=1)"},
		{m.RegexRule{Regex: "a+"}, `regex(regex="a+")`},
	}
	for _, tt := range tests {
		if got := m.Describe(tt.rule); got != tt.want {
			t.Errorf("Describe(%#v) = %q, want %q", tt.rule, got, tt.want)
		}
	}
}
