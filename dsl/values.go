package dsl

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	pactdsl "github.com/reoring/pactdsl"
	"github.com/reoring/pactdsl/codec"
	"github.com/reoring/pactdsl/generators"
	"github.com/reoring/pactdsl/matchers"
)

// Regexes recorded by the typed constructors.
const (
	UUIDRegex      = `[0-9a-fA-F]{8}(-[0-9a-fA-F]{4}){3}-[0-9a-fA-F]{12}`
	HexRegex       = `[0-9a-fA-F]+`
	IPAddressRegex = `(\d{1,3}\.)+\d{1,3}`
)

// Examples used when a constructor is called without one.
const (
	DefaultString    = "string"
	DefaultInteger   = 100
	DefaultUUID      = "e2490de5-5bd3-43d5-b7c4-526e33f71304"
	DefaultHex       = "1234a"
	DefaultIPAddress = "127.0.0.13"
	DefaultID        = 1234567890
)

// fault is an issue found while preparing a value, before any mutation.
type fault struct {
	code   string
	detail string
	params map[string]any
	cause  error
}

// valueSpec is the single path behind every typed value constructor: the
// example plus the rule and generator to record at its address.
type valueSpec struct {
	value any
	rules []matchers.Rule
	// group replaces whatever is recorded at the address (And/Or).
	group *matchers.RuleGroup
	gen   generators.Generator
	fault *fault
}

// record writes the rule and generator at key.
func (s valueSpec) record(rules *matchers.Category, gens *generators.Generators, key string) {
	switch {
	case s.group != nil:
		rules.SetRules(key, s.group)
	case len(s.rules) > 0:
		rules.AddRules(key, s.rules...)
	}
	if s.gen != nil {
		gens.AddBody(key, s.gen)
	}
}

func invalidExample(format string, args ...any) valueSpec {
	return valueSpec{fault: &fault{code: pactdsl.CodeInvalidExample, detail: fmt.Sprintf(format, args...)}}
}

// invalidCause is invalidExample for an underlying error.
func invalidCause(err error) valueSpec {
	return valueSpec{fault: &fault{code: pactdsl.CodeInvalidExample, detail: err.Error(), cause: err}}
}

// notFinite rejects NaN and infinities, which have no JSON form.
func notFinite(v float64) valueSpec {
	return invalidExample("%v is not a finite number", v)
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// finiteExample reports whether every float in v is finite.
func finiteExample(v any) bool {
	switch t := v.(type) {
	case float32:
		return isFinite(float64(t))
	case float64:
		return isFinite(t)
	case []any:
		for _, e := range t {
			if !finiteExample(e) {
				return false
			}
		}
	case map[string]any:
		for _, e := range t {
			if !finiteExample(e) {
				return false
			}
		}
	}
	return true
}

func stringType(example []string) valueSpec {
	if len(example) > 0 {
		return valueSpec{value: example[0], rules: []matchers.Rule{matchers.TypeRule{}}}
	}
	return valueSpec{value: DefaultString, rules: []matchers.Rule{matchers.TypeRule{}}, gen: generators.RandomString{Size: 20}}
}

func stringValue(v string) valueSpec { return valueSpec{value: v} }

func stringMatcher(regex, example string) valueSpec {
	if err := fullMatch(regex, example); err != nil {
		return invalidCause(err)
	}
	return valueSpec{value: example, rules: []matchers.Rule{matchers.RegexRule{Regex: regex}}}
}

// numberType records a plain type rule; integerType and decimalType narrow
// the subtype.
func numberType(example []float64) valueSpec {
	rule := []matchers.Rule{matchers.TypeRule{}}
	if len(example) > 0 {
		if !isFinite(example[0]) {
			return notFinite(example[0])
		}
		return valueSpec{value: floatNumber(example[0]), rules: rule}
	}
	return valueSpec{value: intNumber(DefaultInteger), rules: rule, gen: generators.DefaultRandomInt()}
}

func integerType(example []int64) valueSpec {
	rule := []matchers.Rule{matchers.NumberRule{Kind: matchers.NumberInteger}}
	if len(example) > 0 {
		return valueSpec{value: intNumber(example[0]), rules: rule}
	}
	return valueSpec{value: intNumber(DefaultInteger), rules: rule, gen: generators.DefaultRandomInt()}
}

func decimalType(example []float64) valueSpec {
	rule := []matchers.Rule{matchers.NumberRule{Kind: matchers.NumberDecimal}}
	if len(example) > 0 {
		if !isFinite(example[0]) {
			return notFinite(example[0])
		}
		return valueSpec{value: decimalNumber(example[0]), rules: rule}
	}
	return valueSpec{value: decimalNumber(DefaultInteger), rules: rule, gen: generators.RandomDecimal{Digits: 10}}
}

func numberValue(v float64) valueSpec {
	if !isFinite(v) {
		return notFinite(v)
	}
	return valueSpec{value: floatNumber(v)}
}

func booleanType(example []bool) valueSpec {
	if len(example) > 0 {
		return valueSpec{value: example[0], rules: []matchers.Rule{matchers.TypeRule{}}}
	}
	return valueSpec{value: true, rules: []matchers.Rule{matchers.TypeRule{}}, gen: generators.RandomBoolean{}}
}

func booleanValue(v bool) valueSpec { return valueSpec{value: v} }

func nullValue() valueSpec { return valueSpec{value: nil} }

// temporalKind selects the rule and generator of the date/time family.
type temporalKind int

const (
	kindDate temporalKind = iota
	kindTime
	kindDatetime
)

func (k temporalKind) defaultPattern() string {
	switch k {
	case kindTime:
		return codec.TimePattern
	case kindDatetime:
		return codec.DatetimePattern
	default:
		return codec.DatePattern
	}
}

func (k temporalKind) rule(format string) matchers.Rule {
	switch k {
	case kindTime:
		return matchers.TimeRule{Format: format}
	case kindDatetime:
		return matchers.TimestampRule{Format: format}
	default:
		return matchers.DateRule{Format: format}
	}
}

func (k temporalKind) generator(format, expression string) generators.Generator {
	switch k {
	case kindTime:
		return generators.Time{Format: format, Expression: expression}
	case kindDatetime:
		return generators.DateTime{Format: format, Expression: expression}
	default:
		return generators.Date{Format: format, Expression: expression}
	}
}

// temporal formats the example with the pattern. A generator is recorded
// unless the example was given explicitly.
func temporal(k temporalKind, format []string, expression string, example time.Time, generate bool) valueSpec {
	pattern := k.defaultPattern()
	if len(format) > 0 && format[0] != "" {
		pattern = format[0]
	}
	p, err := codec.Compile(pattern)
	if err != nil {
		return valueSpec{fault: &fault{code: pactdsl.CodeInvalidPattern, detail: err.Error(), params: map[string]any{"format": pattern}, cause: err}}
	}
	s := valueSpec{value: p.Format(example), rules: []matchers.Rule{k.rule(pattern)}}
	if generate {
		s.gen = k.generator(pattern, expression)
	}
	return s
}

func uuidValue(example []string) valueSpec {
	rule := []matchers.Rule{matchers.RegexRule{Regex: UUIDRegex}}
	if len(example) == 0 {
		return valueSpec{value: uuid.MustParse(DefaultUUID).String(), rules: rule, gen: generators.UUID{}}
	}
	if _, err := uuid.Parse(example[0]); err != nil {
		return valueSpec{fault: &fault{code: pactdsl.CodeInvalidExample, detail: fmt.Sprintf("%q is not a UUID: %v", example[0], err), cause: err}}
	}
	if err := fullMatch(UUIDRegex, example[0]); err != nil {
		return invalidCause(err)
	}
	return valueSpec{value: example[0], rules: rule}
}

func hexValue(example []string) valueSpec {
	rule := []matchers.Rule{matchers.RegexRule{Regex: HexRegex}}
	if len(example) == 0 {
		return valueSpec{value: DefaultHex, rules: rule, gen: generators.RandomHexadecimal{Digits: 10}}
	}
	if err := fullMatch(HexRegex, example[0]); err != nil {
		return invalidCause(err)
	}
	return valueSpec{value: example[0], rules: rule}
}

func ipAddress() valueSpec {
	return valueSpec{value: DefaultIPAddress, rules: []matchers.Rule{matchers.RegexRule{Regex: IPAddressRegex}}}
}

func idValue(example []int64) valueSpec {
	rule := []matchers.Rule{matchers.TypeRule{}}
	if len(example) > 0 {
		return valueSpec{value: intNumber(example[0]), rules: rule}
	}
	return valueSpec{value: intNumber(DefaultID), rules: rule, gen: generators.RandomInt{Min: 0, Max: math.MaxInt64}}
}

func includesStr(v string) valueSpec {
	return valueSpec{value: v, rules: []matchers.Rule{matchers.IncludeRule{Value: v}}}
}

func equalTo(v any) valueSpec {
	if !finiteExample(v) {
		return invalidExample("%v is not a finite number", v)
	}
	return valueSpec{value: normalizeExample(v), rules: []matchers.Rule{matchers.EqualityRule{}}}
}

func logical(logic matchers.Logic, v any, rules []matchers.Rule) valueSpec {
	if !finiteExample(v) {
		return invalidExample("%v is not a finite number", v)
	}
	s := valueSpec{value: normalizeExample(v)}
	if len(rules) > 0 {
		s.group = matchers.NewGroup(logic, rules...)
	}
	return s
}

// PathRegex is a MatchURL path fragment matched by a regex rather than
// literally.
type PathRegex struct {
	Regex   string
	Example string
}

func matchURL(basePath string, fragments []any) valueSpec {
	examples := make([]string, 0, len(fragments))
	parts := make([]string, 0, len(fragments))
	for _, f := range fragments {
		switch t := f.(type) {
		case PathRegex:
			if err := fullMatch(t.Regex, t.Example); err != nil {
				return invalidCause(err)
			}
			examples = append(examples, t.Example)
			parts = append(parts, t.Regex)
		default:
			lit := fmt.Sprint(f)
			examples = append(examples, lit)
			parts = append(parts, regexp.QuoteMeta(lit))
		}
	}
	example := basePath + "/" + strings.Join(examples, "/")
	regex := `.*\/` + strings.Join(parts, `\/`) + "$"
	return valueSpec{
		value: example,
		rules: []matchers.Rule{matchers.RegexRule{Regex: regex}},
		gen:   generators.MockServerURL{Example: example, Regex: regex},
	}
}

func fromProviderState(expression string, example any) valueSpec {
	if !finiteExample(example) {
		return invalidExample("%v is not a finite number", example)
	}
	return valueSpec{
		value: normalizeExample(example),
		rules: []matchers.Rule{matchers.TypeRule{}},
		gen:   generators.ProviderState{Expression: expression, DataType: generators.DataTypeOf(example)},
	}
}

// fullMatch reports an error unless regex matches all of s.
func fullMatch(regex, s string) error {
	re, err := regexp.Compile(`^(?:` + regex + `)$`)
	if err != nil {
		return fmt.Errorf("invalid regex %q: %w", regex, err)
	}
	if !re.MatchString(s) {
		return fmt.Errorf("example %q does not match %q", s, regex)
	}
	return nil
}

func intNumber(v int64) json.Number { return json.Number(strconv.FormatInt(v, 10)) }

func floatNumber(v float64) json.Number { return json.Number(strconv.FormatFloat(v, 'f', -1, 64)) }

// decimalNumber always carries a fraction so verifiers read it as decimal.
func decimalNumber(v float64) json.Number {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return json.Number(s)
}

// normalizeExample maps Go values onto body values: integers and floats
// become json.Number, plain maps become ordered maps with sorted keys.
func normalizeExample(v any) any {
	switch t := v.(type) {
	case int:
		return intNumber(int64(t))
	case int8:
		return intNumber(int64(t))
	case int16:
		return intNumber(int64(t))
	case int32:
		return intNumber(int64(t))
	case int64:
		return intNumber(t)
	case uint:
		return json.Number(strconv.FormatUint(uint64(t), 10))
	case uint8:
		return intNumber(int64(t))
	case uint16:
		return intNumber(int64(t))
	case uint32:
		return intNumber(int64(t))
	case uint64:
		return json.Number(strconv.FormatUint(t, 10))
	case float32:
		return floatNumber(float64(t))
	case float64:
		return floatNumber(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeExample(e)
		}
		return out
	case map[string]any:
		out := orderedmap.New[string, any]()
		for _, k := range sortedKeys(t) {
			out.Set(k, normalizeExample(t[k]))
		}
		return out
	default:
		return cloneValue(v)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
