package dsl

import (
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	pactdsl "github.com/reoring/pactdsl"
	"github.com/reoring/pactdsl/internal/pathexp"
	"github.com/reoring/pactdsl/matchers"
)

// ObjectBuilder builds a JSON object. Fields keep insertion order.
type ObjectBuilder struct {
	node
	body *orderedmap.OrderedMap[string, any]
}

// NewObject starts a document whose root is an object.
func NewObject(opts ...Option) *ObjectBuilder {
	return newObject(newBuild(opts), nil, "", pathexp.Root, "")
}

func newObject(b *build, parent container, name, path, segment string) *ObjectBuilder {
	return &ObjectBuilder{node: newNode(b, parent, name, path, segment), body: orderedmap.New[string, any]()}
}

func detachedObject(b *build, parent container, path string) *ObjectBuilder {
	o := newObject(b, parent, "", path, "")
	o.detached = true
	return o
}

// Body returns the object body built so far.
func (o *ObjectBuilder) Body() *orderedmap.OrderedMap[string, any] { return o.body }

func (o *ObjectBuilder) value() any { return o.body }

// named rejects the empty name: only arrays take unnamed elements.
func (o *ObjectBuilder) named(op, name string) bool {
	if name == "" {
		unsupported(&o.node, op, "object fields need a name")
		return false
	}
	return true
}

func (o *ObjectBuilder) field(op, name string, s valueSpec) *ObjectBuilder {
	if !o.writable(op) || !o.named(op, name) {
		return o
	}
	if s.fault != nil {
		o.failFault(op, s.fault)
		return o
	}
	o.body.Set(name, s.value)
	s.record(o.rules, o.gens, pathexp.FieldSegment(name))
	return o
}

// StringType adds a string field matched by type. Without an example a
// random string generator is recorded.
func (o *ObjectBuilder) StringType(name string, example ...string) *ObjectBuilder {
	return o.field("StringType", name, stringType(example))
}

// StringValue adds a string field without a matcher.
func (o *ObjectBuilder) StringValue(name, value string) *ObjectBuilder {
	return o.field("StringValue", name, stringValue(value))
}

// StringMatcher adds a string field that must match regex. The example must
// match it too.
func (o *ObjectBuilder) StringMatcher(name, regex, example string) *ObjectBuilder {
	return o.field("StringMatcher", name, stringMatcher(regex, example))
}

// NumberType adds a numeric field matched as any number.
func (o *ObjectBuilder) NumberType(name string, example ...float64) *ObjectBuilder {
	return o.field("NumberType", name, numberType(example))
}

// IntegerType adds a field that must be an integer.
func (o *ObjectBuilder) IntegerType(name string, example ...int64) *ObjectBuilder {
	return o.field("IntegerType", name, integerType(example))
}

// DecimalType adds a field that must be a decimal.
func (o *ObjectBuilder) DecimalType(name string, example ...float64) *ObjectBuilder {
	return o.field("DecimalType", name, decimalType(example))
}

// NumberValue adds a numeric field without a matcher.
func (o *ObjectBuilder) NumberValue(name string, value float64) *ObjectBuilder {
	return o.field("NumberValue", name, numberValue(value))
}

// BooleanType adds a boolean field matched by type.
func (o *ObjectBuilder) BooleanType(name string, example ...bool) *ObjectBuilder {
	return o.field("BooleanType", name, booleanType(example))
}

// BooleanValue adds a boolean field without a matcher.
func (o *ObjectBuilder) BooleanValue(name string, value bool) *ObjectBuilder {
	return o.field("BooleanValue", name, booleanValue(value))
}

// NullValue adds a null field.
func (o *ObjectBuilder) NullValue(name string) *ObjectBuilder {
	return o.field("NullValue", name, nullValue())
}

// Date adds a date field formatted with format (default yyyy-MM-dd). The
// example is the build clock's current date.
func (o *ObjectBuilder) Date(name string, format ...string) *ObjectBuilder {
	return o.field("Date", name, temporal(kindDate, format, "", o.b.now(), true))
}

// Time adds a time field (default HH:mm:ss).
func (o *ObjectBuilder) Time(name string, format ...string) *ObjectBuilder {
	return o.field("Time", name, temporal(kindTime, format, "", o.b.now(), true))
}

// Datetime adds a timestamp field (default yyyy-MM-dd'T'HH:mm:ss).
func (o *ObjectBuilder) Datetime(name string, format ...string) *ObjectBuilder {
	return o.field("Datetime", name, temporal(kindDatetime, format, "", o.b.now(), true))
}

// DateAt adds a date field with an explicit example and no generator.
func (o *ObjectBuilder) DateAt(name, format string, example time.Time) *ObjectBuilder {
	return o.field("DateAt", name, temporal(kindDate, []string{format}, "", example, false))
}

// TimeAt adds a time field with an explicit example and no generator.
func (o *ObjectBuilder) TimeAt(name, format string, example time.Time) *ObjectBuilder {
	return o.field("TimeAt", name, temporal(kindTime, []string{format}, "", example, false))
}

// DatetimeAt adds a timestamp field with an explicit example and no
// generator.
func (o *ObjectBuilder) DatetimeAt(name, format string, example time.Time) *ObjectBuilder {
	return o.field("DatetimeAt", name, temporal(kindDatetime, []string{format}, "", example, false))
}

// DateExpression adds a date field generated from a relative expression such
// as "today + 1 day".
func (o *ObjectBuilder) DateExpression(name, expression string, format ...string) *ObjectBuilder {
	return o.field("DateExpression", name, temporal(kindDate, format, expression, o.b.now(), true))
}

// TimeExpression is DateExpression for times.
func (o *ObjectBuilder) TimeExpression(name, expression string, format ...string) *ObjectBuilder {
	return o.field("TimeExpression", name, temporal(kindTime, format, expression, o.b.now(), true))
}

// DatetimeExpression is DateExpression for timestamps.
func (o *ObjectBuilder) DatetimeExpression(name, expression string, format ...string) *ObjectBuilder {
	return o.field("DatetimeExpression", name, temporal(kindDatetime, format, expression, o.b.now(), true))
}

// UUID adds a field matching the UUID format.
func (o *ObjectBuilder) UUID(name string, example ...string) *ObjectBuilder {
	return o.field("UUID", name, uuidValue(example))
}

// HexValue adds a field matching hexadecimal digits.
func (o *ObjectBuilder) HexValue(name string, example ...string) *ObjectBuilder {
	return o.field("HexValue", name, hexValue(example))
}

// IPAddress adds a dotted IP address field.
func (o *ObjectBuilder) IPAddress(name string) *ObjectBuilder {
	return o.field("IPAddress", name, ipAddress())
}

// ID adds a numeric identifier matched by type.
func (o *ObjectBuilder) ID(name string, example ...int64) *ObjectBuilder {
	return o.field("ID", name, idValue(example))
}

// IncludesStr adds a string field that must contain value.
func (o *ObjectBuilder) IncludesStr(name, value string) *ObjectBuilder {
	return o.field("IncludesStr", name, includesStr(value))
}

// EqualTo adds a field that must equal value.
func (o *ObjectBuilder) EqualTo(name string, value any) *ObjectBuilder {
	return o.field("EqualTo", name, equalTo(value))
}

// And adds a field whose rules must all match. It replaces any rule already
// recorded for the field.
func (o *ObjectBuilder) And(name string, value any, rules ...matchers.Rule) *ObjectBuilder {
	return o.field("And", name, logical(matchers.And, value, rules))
}

// Or adds a field of which at least one rule must match. It replaces any rule
// already recorded for the field.
func (o *ObjectBuilder) Or(name string, value any, rules ...matchers.Rule) *ObjectBuilder {
	return o.field("Or", name, logical(matchers.Or, value, rules))
}

// MatchURL adds a URL field whose path must end in fragments. String
// fragments match literally, PathRegex fragments by regex. The mock server
// rewrites the example to its own base URL.
func (o *ObjectBuilder) MatchURL(name, basePath string, fragments ...any) *ObjectBuilder {
	return o.field("MatchURL", name, matchURL(basePath, fragments))
}

// ValueFromProviderState adds a field the provider fills in from its state
// via expression, e.g. "${userId}".
func (o *ObjectBuilder) ValueFromProviderState(name, expression string, example any) *ObjectBuilder {
	return o.field("ValueFromProviderState", name, fromProviderState(expression, example))
}

// Object opens a nested object field.
func (o *ObjectBuilder) Object(name string) *ObjectBuilder {
	const op = "Object"
	path := pathexp.Field(o.path, name)
	if !o.writable(op) || !o.named(op, name) {
		return detachedObject(o.b, o, path)
	}
	return newObject(o.b, o, name, path, pathexp.FieldSegment(name))
}

// Array opens a nested array field.
func (o *ObjectBuilder) Array(name string) *ArrayBuilder {
	const op = "Array"
	path := pathexp.Field(o.path, name)
	if !o.writable(op) || !o.named(op, name) {
		return detachedArray(o.b, o, path)
	}
	return newArray(o.b, o, name, path, pathexp.FieldSegment(name))
}

// Embed adds a closed node as the field name, with its rules and generators.
func (o *ObjectBuilder) Embed(name string, n Node) *ObjectBuilder {
	const op = "Embed"
	if n == nil {
		unsupported(&o.node, op, "node is nil")
		return o
	}
	c := n.base()
	if !o.named(op, name) || !o.accept(op, pathexp.Field(o.path, name), c) {
		return o
	}
	o.receive(c, pathexp.FieldSegment(name))
	o.body.Set(name, cloneValue(exampleFor(n, o.b.now())))
	return o
}

// repeated records r's rule at name and opens the wildcard array that
// replicates the element example.
func (o *ObjectBuilder) repeated(op, name string, r repeat) *ArrayBuilder {
	path := pathexp.Field(o.path, name)
	if !o.writable(op) || !o.named(op, name) {
		return detachedWildcard(o.b, o, path)
	}
	if r.fault != nil {
		o.failFault(op, r.fault)
		return detachedWildcard(o.b, o, path)
	}
	segment := pathexp.FieldSegment(name)
	o.rules.AddRule(segment, r.rule)
	a := newArray(o.b, o, name, path, segment)
	a.wildcard = true
	a.numberExamples = r.n
	return a
}

// repeatedValue fills the array with copies of value and closes it.
func (o *ObjectBuilder) repeatedValue(op, name string, r repeat, value *RootValue) *ObjectBuilder {
	if !o.spliceable(op, pathexp.Field(o.path, name)+pathexp.Wildcard, value) {
		return o
	}
	a := o.repeated(op, name, r.forValue())
	if a.detached {
		return o
	}
	a.putChild(&value.node, value.example(o.b.now()))
	a.CloseArray()
	return o
}

// spliceable checks a RootValue before it is copied into o at the address at.
func (o *ObjectBuilder) spliceable(op, at string, value *RootValue) bool {
	if value == nil {
		o.fail(pactdsl.CodeInvalidExample, op, "nil value", nil)
		return false
	}
	if value.Err() != nil {
		o.b.adopt(value.b, at)
		return false
	}
	return true
}

// EachLike adds an array field of at least zero elements like the returned
// template. numberExamples (default 1) copies are emitted.
func (o *ObjectBuilder) EachLike(name string, numberExamples ...int) *ObjectBuilder {
	return o.repeated("EachLike", name, eachLike(numberExamples)).Object()
}

// MinArrayLike is EachLike with at least size elements. numberExamples
// defaults to size and may not be smaller.
func (o *ObjectBuilder) MinArrayLike(name string, size int, numberExamples ...int) *ObjectBuilder {
	return o.repeated("MinArrayLike", name, minLike(size, numberExamples)).Object()
}

// MaxArrayLike is EachLike with at most size elements. numberExamples
// defaults to 1 and may not be larger than size.
func (o *ObjectBuilder) MaxArrayLike(name string, size int, numberExamples ...int) *ObjectBuilder {
	return o.repeated("MaxArrayLike", name, maxLike(size, numberExamples)).Object()
}

// MinMaxArrayLike bounds both sides. numberExamples defaults to minSize.
func (o *ObjectBuilder) MinMaxArrayLike(name string, minSize, maxSize int, numberExamples ...int) *ObjectBuilder {
	return o.repeated("MinMaxArrayLike", name, minMaxLike(minSize, maxSize, numberExamples)).Object()
}

// EachLikeValue adds an array field whose elements are like value.
func (o *ObjectBuilder) EachLikeValue(name string, value *RootValue, numberExamples ...int) *ObjectBuilder {
	return o.repeatedValue("EachLikeValue", name, eachLike(numberExamples), value)
}

// MinArrayLikeValue is MinArrayLike for a value element.
func (o *ObjectBuilder) MinArrayLikeValue(name string, size int, value *RootValue, numberExamples ...int) *ObjectBuilder {
	return o.repeatedValue("MinArrayLikeValue", name, minLike(size, numberExamples), value)
}

// MaxArrayLikeValue is MaxArrayLike for a value element.
func (o *ObjectBuilder) MaxArrayLikeValue(name string, size int, value *RootValue, numberExamples ...int) *ObjectBuilder {
	return o.repeatedValue("MaxArrayLikeValue", name, maxLike(size, numberExamples), value)
}

// MinMaxArrayLikeValue is MinMaxArrayLike for a value element.
func (o *ObjectBuilder) MinMaxArrayLikeValue(name string, minSize, maxSize int, value *RootValue, numberExamples ...int) *ObjectBuilder {
	return o.repeatedValue("MinMaxArrayLikeValue", name, minMaxLike(minSize, maxSize, numberExamples), value)
}

// EachArrayLike adds an array of arrays. The returned inner array is the
// element template; close it and then the outer array (two CloseArray calls).
func (o *ObjectBuilder) EachArrayLike(name string, numberExamples ...int) *ArrayBuilder {
	return o.repeated("EachArrayLike", name, eachLike(numberExamples)).Array()
}

// EachArrayWithMinLike is EachArrayLike with at least size inner arrays.
func (o *ObjectBuilder) EachArrayWithMinLike(name string, size int, numberExamples ...int) *ArrayBuilder {
	return o.repeated("EachArrayWithMinLike", name, minLike(size, numberExamples)).Array()
}

// EachArrayWithMaxLike is EachArrayLike with at most size inner arrays.
func (o *ObjectBuilder) EachArrayWithMaxLike(name string, size int, numberExamples ...int) *ArrayBuilder {
	return o.repeated("EachArrayWithMaxLike", name, maxLike(size, numberExamples)).Array()
}

// EachArrayWithMinMaxLike bounds both sides.
func (o *ObjectBuilder) EachArrayWithMinMaxLike(name string, minSize, maxSize int, numberExamples ...int) *ArrayBuilder {
	return o.repeated("EachArrayWithMinMaxLike", name, minMaxLike(minSize, maxSize, numberExamples)).Array()
}

func (o *ObjectBuilder) unorderedArray(op, name string, r repeat) *ArrayBuilder {
	path := pathexp.Field(o.path, name)
	if !o.writable(op) || !o.named(op, name) {
		return detachedArray(o.b, o, path)
	}
	if r.fault != nil {
		o.failFault(op, r.fault)
		return detachedArray(o.b, o, path)
	}
	segment := pathexp.FieldSegment(name)
	o.rules.AddRule(segment, r.rule)
	return newArray(o.b, o, name, path, segment)
}

// UnorderedArray adds an array field compared regardless of element order.
func (o *ObjectBuilder) UnorderedArray(name string) *ArrayBuilder {
	return o.unorderedArray("UnorderedArray", name, unordered(-1, -1))
}

// UnorderedMinArray is UnorderedArray with at least minSize elements.
func (o *ObjectBuilder) UnorderedMinArray(name string, minSize int) *ArrayBuilder {
	return o.unorderedArray("UnorderedMinArray", name, unorderedMin(minSize))
}

// UnorderedMaxArray is UnorderedArray with at most maxSize elements.
func (o *ObjectBuilder) UnorderedMaxArray(name string, maxSize int) *ArrayBuilder {
	return o.unorderedArray("UnorderedMaxArray", name, unorderedMax(maxSize))
}

// UnorderedMinMaxArray bounds both sides.
func (o *ObjectBuilder) UnorderedMinMaxArray(name string, minSize, maxSize int) *ArrayBuilder {
	return o.unorderedArray("UnorderedMinMaxArray", name, unorderedMinMax(minSize, maxSize))
}

// EachKeyLike declares that every key of this object maps to a value like
// the returned template, which is filled in under exampleKey.
func (o *ObjectBuilder) EachKeyLike(exampleKey string) *ObjectBuilder {
	const op = "EachKeyLike"
	path := pathexp.AnyKey(o.path)
	if !o.writable(op) || !o.named(op, exampleKey) {
		return detachedObject(o.b, o, path)
	}
	o.rules.AddRule("", matchers.ValuesRule{})
	return newObject(o.b, o, exampleKey, path, pathexp.AnyKeySegment)
}

// EachKeyLikeValue sets exampleKey to value and applies value's rules and
// generator to every key.
func (o *ObjectBuilder) EachKeyLikeValue(exampleKey string, value *RootValue) *ObjectBuilder {
	const op = "EachKeyLikeValue"
	if !o.writable(op) || !o.named(op, exampleKey) || !o.spliceable(op, pathexp.AnyKey(o.path), value) {
		return o
	}
	o.body.Set(exampleKey, cloneValue(value.example(o.b.now())))
	o.rules.AddRule("", matchers.ValuesRule{})
	for _, e := range value.rules.Entries() {
		o.rules.AddRules(pathexp.AnyKeySegment+e.Path, e.Group.Rules...)
	}
	o.gens.MergeFrom(value.gens, pathexp.AnyKeySegment)
	return o
}

func (o *ObjectBuilder) putChild(c *node, v any) {
	if !o.writable("CloseObject") {
		return
	}
	o.receive(c, c.segment)
	o.body.Set(c.name, v)
}

func (o *ObjectBuilder) closeSelf() { o.finish("object", o.body) }

// CloseObject closes the object and returns its parent (the object itself at
// the root).
func (o *ObjectBuilder) CloseObject() Node {
	if !o.closed {
		o.closeSelf()
	}
	return o.up(o)
}

// CloseArray closes this array element and then its array, returning the
// array's parent. It is unsupported when the parent is not an array.
func (o *ObjectBuilder) CloseArray() Node {
	a, ok := o.parent.(*ArrayBuilder)
	if !ok {
		unsupported(&o.node, "CloseArray", "parent is not an array")
		return o
	}
	o.CloseObject()
	return a.CloseArray()
}

// Close closes the object and all its ancestors and returns the root.
func (o *ObjectBuilder) Close() Node { return closeAll(o) }

// AsObject returns o.
func (o *ObjectBuilder) AsObject() *ObjectBuilder { return o }

// AsArray records unsupported_operation.
func (o *ObjectBuilder) AsArray() *ArrayBuilder {
	unsupported(&o.node, "AsArray", "node is an object")
	return detachedArray(o.b, o, o.path)
}

// Build closes the tree and returns its Document.
func (o *ObjectBuilder) Build() (*pactdsl.Document, error) { return buildDocument(o) }

// MustBuild is like Build but panics on error.
func (o *ObjectBuilder) MustBuild() *pactdsl.Document { return mustBuild(o) }
