// Package generators holds example-value generator variants and the
// per-category, insertion-ordered table that keys them by path.
package generators

import (
	json "github.com/goccy/go-json"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/reoring/pactdsl/internal/yamlnode"
)

// Category names an independent generator namespace.
type Category string

const (
	Body   Category = "body"
	Header Category = "header"
	Query  Category = "query"
	Path   Category = "path"
)

// Generator is a recipe for producing an example value.
type Generator interface {
	// Type is the discriminator written as "type" in pact files.
	Type() string
	// Attributes returns the generator parameters besides "type". May be nil.
	Attributes() map[string]any
}

// Generators maps category -> path -> generator, preserving insertion order
// at both levels.
type Generators struct {
	categories *orderedmap.OrderedMap[Category, *orderedmap.OrderedMap[string, Generator]]
}

// New returns an empty table.
func New() *Generators {
	return &Generators{categories: orderedmap.New[Category, *orderedmap.OrderedMap[string, Generator]]()}
}

// Add records g at path in category, replacing any previous generator there.
func (g *Generators) Add(category Category, path string, gen Generator) {
	g.category(category).Set(path, gen)
}

// AddBody is Add for the body category.
func (g *Generators) AddBody(path string, gen Generator) { g.Add(Body, path, gen) }

// Get returns the generator at path in category.
func (g *Generators) Get(category Category, path string) (Generator, bool) {
	c, ok := g.categories.Get(category)
	if !ok {
		return nil, false
	}
	return c.Get(path)
}

// Categories lists the non-empty categories in insertion order.
func (g *Generators) Categories() []Category {
	out := make([]Category, 0, g.categories.Len())
	for p := g.categories.Oldest(); p != nil; p = p.Next() {
		if p.Value.Len() > 0 {
			out = append(out, p.Key)
		}
	}
	return out
}

// Paths lists the paths recorded in category in insertion order.
func (g *Generators) Paths(category Category) []string {
	c, ok := g.categories.Get(category)
	if !ok {
		return nil
	}
	out := make([]string, 0, c.Len())
	for p := c.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Key)
	}
	return out
}

// Entry is one row of the flattened table.
type Entry struct {
	Category  Category
	Path      string
	Generator Generator
}

// Entries flattens the table in insertion order, category by category.
func (g *Generators) Entries() []Entry {
	var out []Entry
	for c := g.categories.Oldest(); c != nil; c = c.Next() {
		for e := c.Value.Oldest(); e != nil; e = e.Next() {
			out = append(out, Entry{Category: c.Key, Path: e.Key, Generator: e.Value})
		}
	}
	return out
}

// Len counts generators across all categories.
func (g *Generators) Len() int {
	n := 0
	for p := g.categories.Oldest(); p != nil; p = p.Next() {
		n += p.Value.Len()
	}
	return n
}

// IsEmpty reports whether no generator is recorded.
func (g *Generators) IsEmpty() bool { return g.Len() == 0 }

// MergeFrom copies every generator of other into g. Body paths are rebased
// under prefix; other categories are keyed by name, not path, and are copied
// unchanged.
func (g *Generators) MergeFrom(other *Generators, prefix string) {
	if other == nil {
		return
	}
	for c := other.categories.Oldest(); c != nil; c = c.Next() {
		p := ""
		if c.Key == Body {
			p = prefix
		}
		dst := g.category(c.Key)
		for e := c.Value.Oldest(); e != nil; e = e.Next() {
			dst.Set(p+e.Key, e.Value)
		}
	}
}

// ApplyRootPrefix rewrites every body path as root+path.
func (g *Generators) ApplyRootPrefix(root string) {
	body, ok := g.categories.Get(Body)
	if !ok {
		return
	}
	next := orderedmap.New[string, Generator]()
	for e := body.Oldest(); e != nil; e = e.Next() {
		next.Set(root+e.Key, e.Value)
	}
	g.categories.Set(Body, next)
}

// Copy returns an independent table.
func (g *Generators) Copy() *Generators {
	out := New()
	out.MergeFrom(g, "")
	return out
}

// ToValue renders the pact layout:
//
//	{"body": {"$.id": {"type": "RandomInt", "min": 0, "max": 10}}}
func (g *Generators) ToValue() *orderedmap.OrderedMap[string, any] {
	out := orderedmap.New[string, any]()
	for c := g.categories.Oldest(); c != nil; c = c.Next() {
		if c.Value.Len() == 0 {
			continue
		}
		cat := orderedmap.New[string, any]()
		for e := c.Value.Oldest(); e != nil; e = e.Next() {
			cat.Set(e.Key, GeneratorValue(e.Value))
		}
		out.Set(string(c.Key), cat)
	}
	return out
}

// GeneratorValue renders a generator with "type" first and the remaining
// attributes in a fixed order.
func GeneratorValue(gen Generator) *orderedmap.OrderedMap[string, any] {
	m := orderedmap.New[string, any]()
	m.Set("type", gen.Type())
	attrs := gen.Attributes()
	for _, k := range attributeOrder {
		if v, ok := attrs[k]; ok {
			m.Set(k, v)
		}
	}
	return m
}

// MarshalJSON encodes the table in insertion order.
func (g *Generators) MarshalJSON() ([]byte, error) { return json.Marshal(g.ToValue()) }

// MarshalYAML encodes the table in insertion order.
func (g *Generators) MarshalYAML() (any, error) { return yamlnode.FromValue(g.ToValue()) }

func (g *Generators) category(c Category) *orderedmap.OrderedMap[string, Generator] {
	m, ok := g.categories.Get(c)
	if !ok {
		m = orderedmap.New[string, Generator]()
		g.categories.Set(c, m)
	}
	return m
}
