package matchers

import "strconv"

// Rule is a single matching rule recorded against a document path. Rules are
// not evaluated here; a verifier interprets them.
type Rule interface {
	// Match is the rule discriminator written as "match" in pact files.
	Match() string
	// Attributes returns the rule parameters besides "match". May be nil.
	Attributes() map[string]any
}

// NumberKind selects the numeric subtype a Number rule requires.
type NumberKind int

const (
	NumberAny NumberKind = iota
	NumberInteger
	NumberDecimal
)

func (k NumberKind) String() string {
	switch k {
	case NumberInteger:
		return "integer"
	case NumberDecimal:
		return "decimal"
	default:
		return "number"
	}
}

// TypeRule matches any value of the same JSON type as the example.
type TypeRule struct{}

func (TypeRule) Match() string              { return "type" }
func (TypeRule) Attributes() map[string]any { return nil }

// RegexRule matches string values against a regular expression.
type RegexRule struct {
	Regex string
}

func (RegexRule) Match() string                { return "regex" }
func (r RegexRule) Attributes() map[string]any { return map[string]any{"regex": r.Regex} }

// DateRule matches dates in the given pattern.
type DateRule struct{ Format string }

func (DateRule) Match() string                { return "date" }
func (r DateRule) Attributes() map[string]any { return map[string]any{"date": r.Format} }

// TimeRule matches times in the given pattern.
type TimeRule struct{ Format string }

func (TimeRule) Match() string                { return "time" }
func (r TimeRule) Attributes() map[string]any { return map[string]any{"time": r.Format} }

// TimestampRule matches date-times in the given pattern.
type TimestampRule struct{ Format string }

func (TimestampRule) Match() string                { return "timestamp" }
func (r TimestampRule) Attributes() map[string]any { return map[string]any{"timestamp": r.Format} }

// NumberRule matches numbers of a given subtype.
type NumberRule struct{ Kind NumberKind }

func (r NumberRule) Match() string            { return r.Kind.String() }
func (NumberRule) Attributes() map[string]any { return nil }

// MinTypeRule matches by type and requires an array of at least Min items.
type MinTypeRule struct{ Min int }

func (MinTypeRule) Match() string                { return "type" }
func (r MinTypeRule) Attributes() map[string]any { return map[string]any{"min": r.Min} }

// MaxTypeRule matches by type and allows at most Max items.
type MaxTypeRule struct{ Max int }

func (MaxTypeRule) Match() string                { return "type" }
func (r MaxTypeRule) Attributes() map[string]any { return map[string]any{"max": r.Max} }

// MinMaxTypeRule combines MinTypeRule and MaxTypeRule.
type MinMaxTypeRule struct{ Min, Max int }

func (MinMaxTypeRule) Match() string { return "type" }
func (r MinMaxTypeRule) Attributes() map[string]any {
	return map[string]any{"min": r.Min, "max": r.Max}
}

// EqualityRule requires the value to equal the example.
type EqualityRule struct{}

func (EqualityRule) Match() string              { return "equality" }
func (EqualityRule) Attributes() map[string]any { return nil }

// IgnoreOrderRule requires array equality regardless of element order. Min
// and Max are optional bounds; negative means unset.
type IgnoreOrderRule struct{ Min, Max int }

// IgnoreOrder returns an unbounded IgnoreOrderRule.
func IgnoreOrder() IgnoreOrderRule { return IgnoreOrderRule{Min: -1, Max: -1} }

func (IgnoreOrderRule) Match() string { return "ignore-order" }
func (r IgnoreOrderRule) Attributes() map[string]any {
	if r.Min < 0 && r.Max < 0 {
		return nil
	}
	m := map[string]any{}
	if r.Min >= 0 {
		m["min"] = r.Min
	}
	if r.Max >= 0 {
		m["max"] = r.Max
	}
	return m
}

// IncludeRule requires a string value to contain Value.
type IncludeRule struct{ Value string }

func (IncludeRule) Match() string                { return "include" }
func (r IncludeRule) Attributes() map[string]any { return map[string]any{"value": r.Value} }

// ValuesRule matches map values regardless of their keys.
type ValuesRule struct{}

func (ValuesRule) Match() string              { return "values" }
func (ValuesRule) Attributes() map[string]any { return nil }

// NullRule requires a null value.
type NullRule struct{}

func (NullRule) Match() string              { return "null" }
func (NullRule) Attributes() map[string]any { return nil }

// Describe renders a rule for logs and error messages, e.g. "type(min=1)".
func Describe(r Rule) string {
	attrs := r.Attributes()
	if len(attrs) == 0 {
		return r.Match()
	}
	out := r.Match() + "("
	for i, k := range sortedKeys(attrs) {
		if i > 0 {
			out += ","
		}
		out += k + "=" + describeValue(attrs[k])
	}
	return out + ")"
}

func describeValue(v any) string {
	switch t := v.(type) {
	case string:
		return strconv.Quote(t)
	case int:
		return strconv.Itoa(t)
	default:
		return "?"
	}
}
