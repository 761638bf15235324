package dsl

import (
	"time"

	pactdsl "github.com/reoring/pactdsl"
	"github.com/reoring/pactdsl/internal/pathexp"
	"github.com/reoring/pactdsl/matchers"
)

// ArrayBuilder builds a JSON array.
//
// In wildcard mode every element is addressed as [*] and each closed
// element is emitted numberExamples times; otherwise elements get concrete
// indexes [0], [1], ...
type ArrayBuilder struct {
	node
	body           []any
	wildcard       bool
	numberExamples int
}

// NewArray starts a document whose root is a plain array.
func NewArray(opts ...Option) *ArrayBuilder {
	return newArray(newBuild(opts), nil, "", pathexp.Root, "")
}

func newArray(b *build, parent container, name, path, segment string) *ArrayBuilder {
	return &ArrayBuilder{node: newNode(b, parent, name, path, segment), body: []any{}, numberExamples: 1}
}

func detachedArray(b *build, parent container, path string) *ArrayBuilder {
	a := newArray(b, parent, "", path, "")
	a.detached = true
	return a
}

func detachedWildcard(b *build, parent container, path string) *ArrayBuilder {
	a := detachedArray(b, parent, path)
	a.wildcard = true
	return a
}

// rootRepeated starts a wildcard root array with r's rule at "$".
func rootRepeated(op string, r repeat, opts []Option) *ArrayBuilder {
	a := NewArray(opts...)
	a.wildcard = true
	if r.fault != nil {
		a.failFault(op, r.fault)
		return a
	}
	a.numberExamples = r.n
	a.rules.AddRule("", r.rule)
	return a
}

func rootRepeatedValue(op string, r repeat, value *RootValue, opts []Option) *ArrayBuilder {
	a := rootRepeated(op, r.forValue(), opts)
	if len(a.b.issues) > 0 || !a.spliceable(op, pathexp.Root+pathexp.Wildcard, value) {
		return a
	}
	a.putChild(&value.node, value.example(a.b.now()))
	return a
}

// ArrayEachLike starts a root array of elements like the returned template.
func ArrayEachLike(numberExamples int, opts ...Option) *ObjectBuilder {
	return rootRepeated("ArrayEachLike", eachLike([]int{numberExamples}), opts).Object()
}

// ArrayMinLike starts a root array of at least minSize elements.
func ArrayMinLike(minSize, numberExamples int, opts ...Option) *ObjectBuilder {
	return rootRepeated("ArrayMinLike", minLike(minSize, []int{numberExamples}), opts).Object()
}

// ArrayMaxLike starts a root array of at most maxSize elements.
func ArrayMaxLike(maxSize, numberExamples int, opts ...Option) *ObjectBuilder {
	return rootRepeated("ArrayMaxLike", maxLike(maxSize, []int{numberExamples}), opts).Object()
}

// ArrayMinMaxLike starts a root array bounded on both sides.
func ArrayMinMaxLike(minSize, maxSize, numberExamples int, opts ...Option) *ObjectBuilder {
	return rootRepeated("ArrayMinMaxLike", minMaxLike(minSize, maxSize, []int{numberExamples}), opts).Object()
}

// ArrayEachLikeValue starts a root array of numberExamples copies of value.
func ArrayEachLikeValue(value *RootValue, numberExamples int, opts ...Option) *ArrayBuilder {
	return rootRepeatedValue("ArrayEachLikeValue", eachLike([]int{numberExamples}), value, opts)
}

// ArrayMinLikeValue is ArrayMinLike for a value element.
func ArrayMinLikeValue(minSize int, value *RootValue, numberExamples int, opts ...Option) *ArrayBuilder {
	return rootRepeatedValue("ArrayMinLikeValue", minLike(minSize, []int{numberExamples}), value, opts)
}

// ArrayMaxLikeValue is ArrayMaxLike for a value element.
func ArrayMaxLikeValue(maxSize int, value *RootValue, numberExamples int, opts ...Option) *ArrayBuilder {
	return rootRepeatedValue("ArrayMaxLikeValue", maxLike(maxSize, []int{numberExamples}), value, opts)
}

// ArrayMinMaxLikeValue is ArrayMinMaxLike for a value element.
func ArrayMinMaxLikeValue(minSize, maxSize int, value *RootValue, numberExamples int, opts ...Option) *ArrayBuilder {
	return rootRepeatedValue("ArrayMinMaxLikeValue", minMaxLike(minSize, maxSize, []int{numberExamples}), value, opts)
}

func rootUnordered(op string, r repeat, opts []Option) *ArrayBuilder {
	a := NewArray(opts...)
	if r.fault != nil {
		a.failFault(op, r.fault)
		return a
	}
	a.rules.AddRule("", r.rule)
	return a
}

// NewUnorderedArray starts a root array compared regardless of order.
func NewUnorderedArray(opts ...Option) *ArrayBuilder {
	return rootUnordered("NewUnorderedArray", unordered(-1, -1), opts)
}

// NewUnorderedMinArray is NewUnorderedArray with at least minSize elements.
func NewUnorderedMinArray(minSize int, opts ...Option) *ArrayBuilder {
	return rootUnordered("NewUnorderedMinArray", unorderedMin(minSize), opts)
}

// NewUnorderedMaxArray is NewUnorderedArray with at most maxSize elements.
func NewUnorderedMaxArray(maxSize int, opts ...Option) *ArrayBuilder {
	return rootUnordered("NewUnorderedMaxArray", unorderedMax(maxSize), opts)
}

// NewUnorderedMinMaxArray bounds both sides.
func NewUnorderedMinMaxArray(minSize, maxSize int, opts ...Option) *ArrayBuilder {
	return rootUnordered("NewUnorderedMinMaxArray", unorderedMinMax(minSize, maxSize), opts)
}

// Body returns the elements appended so far.
func (a *ArrayBuilder) Body() []any { return a.body }

// Wildcard reports whether elements are addressed as [*].
func (a *ArrayBuilder) Wildcard() bool { return a.wildcard }

// NumberExamples is how many copies of each closed element are emitted.
func (a *ArrayBuilder) NumberExamples() int { return a.numberExamples }

func (a *ArrayBuilder) value() any { return a.body }

// elementPath is the address of the element about to be appended.
func (a *ArrayBuilder) elementPath() string {
	return pathexp.Index(a.path, a.wildcard, len(a.body), 1)
}

func (a *ArrayBuilder) elem(op string, s valueSpec) *ArrayBuilder {
	if !a.writable(op) {
		return a
	}
	if s.fault != nil {
		a.failFault(op, s.fault)
		return a
	}
	a.body = append(a.body, s.value)
	s.record(a.rules, a.gens, pathexp.IndexSegment(a.wildcard, len(a.body), 0))
	return a
}

// StringType appends a string matched by type.
func (a *ArrayBuilder) StringType(example ...string) *ArrayBuilder {
	return a.elem("StringType", stringType(example))
}

// StringValue appends a string without a matcher.
func (a *ArrayBuilder) StringValue(value string) *ArrayBuilder {
	return a.elem("StringValue", stringValue(value))
}

// StringMatcher appends a string that must match regex.
func (a *ArrayBuilder) StringMatcher(regex, example string) *ArrayBuilder {
	return a.elem("StringMatcher", stringMatcher(regex, example))
}

func (a *ArrayBuilder) NumberType(example ...float64) *ArrayBuilder {
	return a.elem("NumberType", numberType(example))
}

func (a *ArrayBuilder) IntegerType(example ...int64) *ArrayBuilder {
	return a.elem("IntegerType", integerType(example))
}

func (a *ArrayBuilder) DecimalType(example ...float64) *ArrayBuilder {
	return a.elem("DecimalType", decimalType(example))
}

func (a *ArrayBuilder) NumberValue(value float64) *ArrayBuilder {
	return a.elem("NumberValue", numberValue(value))
}

func (a *ArrayBuilder) BooleanType(example ...bool) *ArrayBuilder {
	return a.elem("BooleanType", booleanType(example))
}

func (a *ArrayBuilder) BooleanValue(value bool) *ArrayBuilder {
	return a.elem("BooleanValue", booleanValue(value))
}

func (a *ArrayBuilder) NullValue() *ArrayBuilder { return a.elem("NullValue", nullValue()) }

func (a *ArrayBuilder) Date(format ...string) *ArrayBuilder {
	return a.elem("Date", temporal(kindDate, format, "", a.b.now(), true))
}

func (a *ArrayBuilder) Time(format ...string) *ArrayBuilder {
	return a.elem("Time", temporal(kindTime, format, "", a.b.now(), true))
}

func (a *ArrayBuilder) Datetime(format ...string) *ArrayBuilder {
	return a.elem("Datetime", temporal(kindDatetime, format, "", a.b.now(), true))
}

func (a *ArrayBuilder) DateAt(format string, example time.Time) *ArrayBuilder {
	return a.elem("DateAt", temporal(kindDate, []string{format}, "", example, false))
}

func (a *ArrayBuilder) TimeAt(format string, example time.Time) *ArrayBuilder {
	return a.elem("TimeAt", temporal(kindTime, []string{format}, "", example, false))
}

func (a *ArrayBuilder) DatetimeAt(format string, example time.Time) *ArrayBuilder {
	return a.elem("DatetimeAt", temporal(kindDatetime, []string{format}, "", example, false))
}

func (a *ArrayBuilder) DateExpression(expression string, format ...string) *ArrayBuilder {
	return a.elem("DateExpression", temporal(kindDate, format, expression, a.b.now(), true))
}

func (a *ArrayBuilder) TimeExpression(expression string, format ...string) *ArrayBuilder {
	return a.elem("TimeExpression", temporal(kindTime, format, expression, a.b.now(), true))
}

func (a *ArrayBuilder) DatetimeExpression(expression string, format ...string) *ArrayBuilder {
	return a.elem("DatetimeExpression", temporal(kindDatetime, format, expression, a.b.now(), true))
}

func (a *ArrayBuilder) UUID(example ...string) *ArrayBuilder {
	return a.elem("UUID", uuidValue(example))
}

func (a *ArrayBuilder) HexValue(example ...string) *ArrayBuilder {
	return a.elem("HexValue", hexValue(example))
}

func (a *ArrayBuilder) IPAddress() *ArrayBuilder { return a.elem("IPAddress", ipAddress()) }

func (a *ArrayBuilder) ID(example ...int64) *ArrayBuilder { return a.elem("ID", idValue(example)) }

func (a *ArrayBuilder) IncludesStr(value string) *ArrayBuilder {
	return a.elem("IncludesStr", includesStr(value))
}

func (a *ArrayBuilder) EqualTo(value any) *ArrayBuilder {
	return a.elem("EqualTo", equalTo(value))
}

// And appends value with rules that must all match.
func (a *ArrayBuilder) And(value any, rules ...matchers.Rule) *ArrayBuilder {
	return a.elem("And", logical(matchers.And, value, rules))
}

// Or appends value with rules of which one must match.
func (a *ArrayBuilder) Or(value any, rules ...matchers.Rule) *ArrayBuilder {
	return a.elem("Or", logical(matchers.Or, value, rules))
}

func (a *ArrayBuilder) MatchURL(basePath string, fragments ...any) *ArrayBuilder {
	return a.elem("MatchURL", matchURL(basePath, fragments))
}

func (a *ArrayBuilder) ValueFromProviderState(expression string, example any) *ArrayBuilder {
	return a.elem("ValueFromProviderState", fromProviderState(expression, example))
}

// Object opens an object element.
func (a *ArrayBuilder) Object() *ObjectBuilder {
	if !a.writable("Object") {
		return detachedObject(a.b, a, a.elementPath())
	}
	return newObject(a.b, a, "", a.elementPath(), "")
}

// Array opens an array element.
func (a *ArrayBuilder) Array() *ArrayBuilder {
	if !a.writable("Array") {
		return detachedArray(a.b, a, a.elementPath())
	}
	return newArray(a.b, a, "", a.elementPath(), "")
}

// repeated records r's rule at the next element and opens it as a wildcard
// array.
func (a *ArrayBuilder) repeated(op string, r repeat) *ArrayBuilder {
	path := a.elementPath()
	if !a.writable(op) {
		return detachedWildcard(a.b, a, path)
	}
	if r.fault != nil {
		a.failFault(op, r.fault)
		return detachedWildcard(a.b, a, path)
	}
	a.rules.AddRule(pathexp.IndexSegment(a.wildcard, len(a.body), 1), r.rule)
	inner := newArray(a.b, a, "", path, "")
	inner.wildcard = true
	inner.numberExamples = r.n
	return inner
}

func (a *ArrayBuilder) repeatedValue(op string, r repeat, value *RootValue) *ArrayBuilder {
	if !a.spliceable(op, a.elementPath()+pathexp.Wildcard, value) {
		return a
	}
	inner := a.repeated(op, r.forValue())
	if inner.detached {
		return a
	}
	inner.putChild(&value.node, value.example(a.b.now()))
	inner.CloseArray()
	return a
}

func (a *ArrayBuilder) spliceable(op, at string, value *RootValue) bool {
	if value == nil {
		a.fail(pactdsl.CodeInvalidExample, op, "nil value", nil)
		return false
	}
	if value.Err() != nil {
		a.b.adopt(value.b, at)
		return false
	}
	return true
}

// EachLike appends an array element whose items are like the returned
// template.
func (a *ArrayBuilder) EachLike(numberExamples ...int) *ObjectBuilder {
	return a.repeated("EachLike", eachLike(numberExamples)).Object()
}

func (a *ArrayBuilder) MinArrayLike(size int, numberExamples ...int) *ObjectBuilder {
	return a.repeated("MinArrayLike", minLike(size, numberExamples)).Object()
}

func (a *ArrayBuilder) MaxArrayLike(size int, numberExamples ...int) *ObjectBuilder {
	return a.repeated("MaxArrayLike", maxLike(size, numberExamples)).Object()
}

func (a *ArrayBuilder) MinMaxArrayLike(minSize, maxSize int, numberExamples ...int) *ObjectBuilder {
	return a.repeated("MinMaxArrayLike", minMaxLike(minSize, maxSize, numberExamples)).Object()
}

// EachLikeValue appends an array element of copies of value.
func (a *ArrayBuilder) EachLikeValue(value *RootValue, numberExamples ...int) *ArrayBuilder {
	return a.repeatedValue("EachLikeValue", eachLike(numberExamples), value)
}

func (a *ArrayBuilder) MinArrayLikeValue(size int, value *RootValue, numberExamples ...int) *ArrayBuilder {
	return a.repeatedValue("MinArrayLikeValue", minLike(size, numberExamples), value)
}

func (a *ArrayBuilder) MaxArrayLikeValue(size int, value *RootValue, numberExamples ...int) *ArrayBuilder {
	return a.repeatedValue("MaxArrayLikeValue", maxLike(size, numberExamples), value)
}

func (a *ArrayBuilder) MinMaxArrayLikeValue(minSize, maxSize int, value *RootValue, numberExamples ...int) *ArrayBuilder {
	return a.repeatedValue("MinMaxArrayLikeValue", minMaxLike(minSize, maxSize, numberExamples), value)
}

// EachArrayLike appends an array of arrays; the returned inner array is the
// template. Two CloseArray calls return to a.
func (a *ArrayBuilder) EachArrayLike(numberExamples ...int) *ArrayBuilder {
	return a.repeated("EachArrayLike", eachLike(numberExamples)).Array()
}

func (a *ArrayBuilder) EachArrayWithMinLike(size int, numberExamples ...int) *ArrayBuilder {
	return a.repeated("EachArrayWithMinLike", minLike(size, numberExamples)).Array()
}

func (a *ArrayBuilder) EachArrayWithMaxLike(size int, numberExamples ...int) *ArrayBuilder {
	return a.repeated("EachArrayWithMaxLike", maxLike(size, numberExamples)).Array()
}

func (a *ArrayBuilder) EachArrayWithMinMaxLike(minSize, maxSize int, numberExamples ...int) *ArrayBuilder {
	return a.repeated("EachArrayWithMinMaxLike", minMaxLike(minSize, maxSize, numberExamples)).Array()
}

func (a *ArrayBuilder) unorderedArray(op string, r repeat) *ArrayBuilder {
	path := a.elementPath()
	if !a.writable(op) {
		return detachedArray(a.b, a, path)
	}
	if r.fault != nil {
		a.failFault(op, r.fault)
		return detachedArray(a.b, a, path)
	}
	a.rules.AddRule(pathexp.IndexSegment(a.wildcard, len(a.body), 1), r.rule)
	return newArray(a.b, a, "", path, "")
}

// UnorderedArray appends an array element compared regardless of order.
func (a *ArrayBuilder) UnorderedArray() *ArrayBuilder {
	return a.unorderedArray("UnorderedArray", unordered(-1, -1))
}

func (a *ArrayBuilder) UnorderedMinArray(minSize int) *ArrayBuilder {
	return a.unorderedArray("UnorderedMinArray", unorderedMin(minSize))
}

func (a *ArrayBuilder) UnorderedMaxArray(maxSize int) *ArrayBuilder {
	return a.unorderedArray("UnorderedMaxArray", unorderedMax(maxSize))
}

func (a *ArrayBuilder) UnorderedMinMaxArray(minSize, maxSize int) *ArrayBuilder {
	return a.unorderedArray("UnorderedMinMaxArray", unorderedMinMax(minSize, maxSize))
}

// Template appends a closed node occurrences times (default 1), each time
// emitting numberExamples copies and merging its rules at the element
// address.
func (a *ArrayBuilder) Template(n Node, occurrences ...int) *ArrayBuilder {
	const op = "Template"
	if n == nil {
		unsupported(&a.node, op, "node is nil")
		return a
	}
	times := count(occurrences, 1)
	if f := checkCount(times); f != nil {
		a.failFault(op, f)
		return a
	}
	c := n.base()
	if !a.accept(op, a.elementPath(), c) {
		return a
	}
	v := exampleFor(n, a.b.now())
	for i := 0; i < times; i++ {
		a.putChild(c, v)
	}
	return a
}

func (a *ArrayBuilder) putChild(c *node, v any) {
	if !a.writable("CloseArray") {
		return
	}
	a.receive(c, pathexp.IndexSegment(a.wildcard, len(a.body), 1))
	for i := 0; i < a.numberExamples; i++ {
		a.body = append(a.body, cloneValue(v))
	}
}

func (a *ArrayBuilder) closeSelf() { a.finish("array", a.body) }

// CloseArray closes the array and returns its parent (the array itself at
// the root).
func (a *ArrayBuilder) CloseArray() Node {
	if !a.closed {
		a.closeSelf()
	}
	return a.up(a)
}

// CloseObject records unsupported_operation.
func (a *ArrayBuilder) CloseObject() Node {
	unsupported(&a.node, "CloseObject", "node is an array")
	return a
}

// Close closes the array and all its ancestors and returns the root.
func (a *ArrayBuilder) Close() Node { return closeAll(a) }

// AsObject records unsupported_operation.
func (a *ArrayBuilder) AsObject() *ObjectBuilder {
	unsupported(&a.node, "AsObject", "node is an array")
	return detachedObject(a.b, a, a.path)
}

// AsArray returns a.
func (a *ArrayBuilder) AsArray() *ArrayBuilder { return a }

// Build closes the tree and returns its Document.
func (a *ArrayBuilder) Build() (*pactdsl.Document, error) { return buildDocument(a) }

// MustBuild is like Build but panics on error.
func (a *ArrayBuilder) MustBuild() *pactdsl.Document { return mustBuild(a) }
