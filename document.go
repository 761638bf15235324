package pactdsl

import (
	json "github.com/goccy/go-json"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/reoring/pactdsl/generators"
	"github.com/reoring/pactdsl/internal/yamlnode"
	"github.com/reoring/pactdsl/matchers"
)

// Document is the product of a closed build: the example body plus the
// matching rules and generators, all keyed from the document root "$".
//
// Body holds *orderedmap.OrderedMap[string, any] for objects, []any for
// arrays, and string, json.Number, bool or nil for scalars.
type Document struct {
	Body          any
	MatchingRules *matchers.Category
	Generators    *generators.Generators
}

// BodyJSON encodes the example body. Object fields keep insertion order.
func (d *Document) BodyJSON() ([]byte, error) { return json.Marshal(d.Body) }

// ToValue renders the pact layout:
//
//	{"body": ..., "matchingRules": {"body": {...}}, "generators": {"body": {...}}}
//
// Empty tables are omitted.
func (d *Document) ToValue() *orderedmap.OrderedMap[string, any] {
	out := orderedmap.New[string, any]()
	out.Set("body", d.Body)
	if d.MatchingRules != nil && !d.MatchingRules.IsEmpty() {
		rules := orderedmap.New[string, any]()
		rules.Set(d.MatchingRules.Name(), d.MatchingRules.ToValue())
		out.Set("matchingRules", rules)
	}
	if d.Generators != nil && !d.Generators.IsEmpty() {
		out.Set("generators", d.Generators.ToValue())
	}
	return out
}

// MarshalJSON encodes the document in the pact layout.
func (d *Document) MarshalJSON() ([]byte, error) { return json.Marshal(d.ToValue()) }

// MarshalYAML encodes the document in the pact layout.
func (d *Document) MarshalYAML() (any, error) { return yamlnode.FromValue(d.ToValue()) }
