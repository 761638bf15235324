package pactdsl_test

import (
	"encoding/json"
	"testing"

	gojson "github.com/goccy/go-json"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"

	pactdsl "github.com/reoring/pactdsl"
	"github.com/reoring/pactdsl/generators"
	"github.com/reoring/pactdsl/matchers"
)

func sampleDocument() *pactdsl.Document {
	body := orderedmap.New[string, any]()
	body.Set("id", json.Number("1"))
	body.Set("name", "n")
	rules := matchers.NewCategory("body")
	rules.AddRule("$.id", matchers.NumberRule{Kind: matchers.NumberInteger})
	gens := generators.New()
	gens.AddBody("$.id", generators.RandomInt{Min: 0, Max: 10})
	return &pactdsl.Document{Body: body, MatchingRules: rules, Generators: gens}
}

func TestDocument_JSONLayout(t *testing.T) {
	b, err := gojson.Marshal(sampleDocument())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"body":{"id":1,"name":"n"},` +
		`"matchingRules":{"body":{"$.id":{"matchers":[{"match":"integer"}],"combine":"AND"}}},` +
		`"generators":{"body":{"$.id":{"type":"RandomInt","min":0,"max":10}}}}`
	if string(b) != want {
		t.Fatalf("json mismatch\n got=%s\nwant=%s", b, want)
	}
}

func TestDocument_BodyJSONKeepsOrder(t *testing.T) {
	b, err := sampleDocument().BodyJSON()
	if err != nil {
		t.Fatalf("body: %v", err)
	}
	if string(b) != `{"id":1,"name":"n"}` {
		t.Fatalf("body = %s", b)
	}
}

func TestDocument_EmptyTablesOmitted(t *testing.T) {
	doc := &pactdsl.Document{Body: []any{}, MatchingRules: matchers.NewCategory("body"), Generators: generators.New()}
	b, err := gojson.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"body":[]}` {
		t.Fatalf("json = %s", b)
	}
}

func TestDocument_YAMLLayout(t *testing.T) {
	body := orderedmap.New[string, any]()
	body.Set("ok", true)
	rules := matchers.NewCategory("body")
	rules.AddRule("$.ok", matchers.TypeRule{})
	doc := &pactdsl.Document{Body: body, MatchingRules: rules, Generators: generators.New()}

	out, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := "body:\n    ok: true\nmatchingRules:\n    body:\n        $.ok:\n            matchers:\n                - match: type\n            combine: AND\n"
	if string(out) != want {
		t.Fatalf("yaml mismatch\n got=%q\nwant=%q", out, want)
	}
}
