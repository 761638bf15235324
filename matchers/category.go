// Package matchers holds matching-rule variants and the insertion-ordered
// table that keys them by document path.
package matchers

import (
	"sort"

	json "github.com/goccy/go-json"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/reoring/pactdsl/internal/yamlnode"
)

// Logic combines the rules of a group.
type Logic int

const (
	And Logic = iota
	Or
)

func (l Logic) String() string {
	if l == Or {
		return "OR"
	}
	return "AND"
}

// RuleGroup is the set of rules recorded at one path.
type RuleGroup struct {
	Rules []Rule
	Logic Logic
}

// NewGroup builds a group with the given logic.
func NewGroup(logic Logic, rules ...Rule) *RuleGroup {
	return &RuleGroup{Rules: append([]Rule(nil), rules...), Logic: logic}
}

// Copy returns a shallow copy; rules are immutable values.
func (g *RuleGroup) Copy() *RuleGroup {
	return &RuleGroup{Rules: append([]Rule(nil), g.Rules...), Logic: g.Logic}
}

// Entry is one row of a Category.
type Entry struct {
	Path  string
	Group *RuleGroup
}

// Category is an insertion-ordered multimap from path to rule group.
type Category struct {
	name  string
	rules *orderedmap.OrderedMap[string, *RuleGroup]
}

// NewCategory returns an empty table. The name is informational ("body",
// "header", ...).
func NewCategory(name string) *Category {
	return &Category{name: name, rules: orderedmap.New[string, *RuleGroup]()}
}

// Name returns the category name.
func (c *Category) Name() string { return c.name }

// Len returns the number of distinct paths.
func (c *Category) Len() int { return c.rules.Len() }

// IsEmpty reports whether no rules are recorded.
func (c *Category) IsEmpty() bool { return c.rules.Len() == 0 }

// AddRule appends r to the group at path, creating an AND group when absent.
func (c *Category) AddRule(path string, r Rule) { c.AddRules(path, r) }

// AddRules appends rules to the group at path.
func (c *Category) AddRules(path string, rs ...Rule) {
	if g, ok := c.rules.Get(path); ok {
		g.Rules = append(g.Rules, rs...)
		return
	}
	c.rules.Set(path, NewGroup(And, rs...))
}

// SetRules replaces whatever is recorded at path with g. Rules previously
// added at path are discarded.
func (c *Category) SetRules(path string, g *RuleGroup) { c.rules.Set(path, g.Copy()) }

// Get returns the group at path.
func (c *Category) Get(path string) (*RuleGroup, bool) { return c.rules.Get(path) }

// Paths returns the recorded paths in insertion order.
func (c *Category) Paths() []string {
	out := make([]string, 0, c.rules.Len())
	for p := c.rules.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Key)
	}
	return out
}

// Entries returns the rows in insertion order.
func (c *Category) Entries() []Entry {
	out := make([]Entry, 0, c.rules.Len())
	for p := c.rules.Oldest(); p != nil; p = p.Next() {
		out = append(out, Entry{Path: p.Key, Group: p.Value})
	}
	return out
}

// MergeFrom inserts every row of other under prefix+path. A row already
// present at the rebased path is replaced by a copy of the incoming group.
func (c *Category) MergeFrom(other *Category, prefix string) {
	if other == nil {
		return
	}
	for p := other.rules.Oldest(); p != nil; p = p.Next() {
		c.rules.Set(prefix+p.Key, p.Value.Copy())
	}
}

// ApplyRootPrefix rewrites every key as root+key, keeping order.
func (c *Category) ApplyRootPrefix(root string) {
	next := orderedmap.New[string, *RuleGroup]()
	for p := c.rules.Oldest(); p != nil; p = p.Next() {
		next.Set(root+p.Key, p.Value)
	}
	c.rules = next
}

// Copy returns an independent table with the same rows.
func (c *Category) Copy() *Category {
	out := NewCategory(c.name)
	out.MergeFrom(c, "")
	return out
}

// ToValue renders the table in the pact layout:
//
//	{"$.a": {"matchers": [{"match": "type"}], "combine": "AND"}}
func (c *Category) ToValue() *orderedmap.OrderedMap[string, any] {
	out := orderedmap.New[string, any]()
	for p := c.rules.Oldest(); p != nil; p = p.Next() {
		ms := make([]any, 0, len(p.Value.Rules))
		for _, r := range p.Value.Rules {
			ms = append(ms, RuleValue(r))
		}
		entry := orderedmap.New[string, any]()
		entry.Set("matchers", ms)
		entry.Set("combine", p.Value.Logic.String())
		out.Set(p.Key, entry)
	}
	return out
}

// RuleValue renders a rule with "match" first and the remaining attributes
// in key order.
func RuleValue(r Rule) *orderedmap.OrderedMap[string, any] {
	m := orderedmap.New[string, any]()
	m.Set("match", r.Match())
	attrs := r.Attributes()
	for _, k := range sortedKeys(attrs) {
		m.Set(k, attrs[k])
	}
	return m
}

// MarshalJSON encodes the table in insertion order.
func (c *Category) MarshalJSON() ([]byte, error) { return json.Marshal(c.ToValue()) }

// MarshalYAML encodes the table in insertion order.
func (c *Category) MarshalYAML() (any, error) { return yamlnode.FromValue(c.ToValue()) }

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
