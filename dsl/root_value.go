package dsl

import (
	"log/slog"
	"time"

	pactdsl "github.com/reoring/pactdsl"
	"github.com/reoring/pactdsl/internal/pathexp"
	"github.com/reoring/pactdsl/matchers"
)

// RootValue is a single example value with its rule and generator keyed at
// the value itself. It is spliced into arrays by the ...Value combinators
// and EachKeyLikeValue, or closed on its own as a document root.
//
// A RootValue has no options of its own until With is called. Its issues are
// logged by the build that adopts it, and a date or time example read from
// the clock is re-read from the adopting build's clock.
type RootValue struct {
	node
	val any
	// retime rebuilds a clock-driven example for another clock; nil when the
	// example was given explicitly.
	retime func(now time.Time) valueSpec
}

// valueBuild holds a RootValue's issues without logging them.
func valueBuild() *build {
	return &build{log: slog.New(slog.DiscardHandler), now: time.Now}
}

func newRootValue(b *build, op string, s valueSpec) *RootValue {
	r := &RootValue{node: newNode(b, nil, "", pathexp.Root, "")}
	if s.fault != nil {
		r.failFault(op, s.fault)
		return r
	}
	r.val = s.value
	s.record(r.rules, r.gens, "")
	return r
}

func rootValue(op string, s valueSpec) *RootValue { return newRootValue(valueBuild(), op, s) }

func rootTemporal(op string, k temporalKind, format []string, expression string) *RootValue {
	retime := func(now time.Time) valueSpec { return temporal(k, format, expression, now, true) }
	b := valueBuild()
	r := newRootValue(b, op, retime(b.now()))
	if r.b.err() == nil {
		r.retime = retime
	}
	return r
}

// With applies opts to a value used on its own as a document root. Issues
// recorded so far are logged to the new logger and a clock-driven example is
// re-read from the new clock.
func (r *RootValue) With(opts ...Option) *RootValue {
	if !r.writable("With") {
		return r
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r.b)
		}
	}
	for _, iss := range r.b.issues {
		r.b.logIssue(iss)
	}
	r.val = r.example(r.b.now())
	return r
}

// example is the value as a build with clock now sees it.
func (r *RootValue) example(now time.Time) any {
	if r.retime == nil {
		return r.val
	}
	return r.retime(now).value
}

// exampleFor is n's body as a build with clock now sees it.
func exampleFor(n Node, now time.Time) any {
	if r, ok := n.(*RootValue); ok {
		return r.example(now)
	}
	return n.value()
}

// Value returns the example value.
func (r *RootValue) Value() any { return r.val }

func (r *RootValue) value() any { return r.val }

func StringType(example ...string) *RootValue { return rootValue("StringType", stringType(example)) }

func StringValue(value string) *RootValue { return rootValue("StringValue", stringValue(value)) }

func StringMatcher(regex, example string) *RootValue {
	return rootValue("StringMatcher", stringMatcher(regex, example))
}

func NumberType(example ...float64) *RootValue { return rootValue("NumberType", numberType(example)) }

func IntegerType(example ...int64) *RootValue { return rootValue("IntegerType", integerType(example)) }

func DecimalType(example ...float64) *RootValue {
	return rootValue("DecimalType", decimalType(example))
}

func NumberValue(value float64) *RootValue { return rootValue("NumberValue", numberValue(value)) }

func BooleanType(example ...bool) *RootValue { return rootValue("BooleanType", booleanType(example)) }

func BooleanValue(value bool) *RootValue { return rootValue("BooleanValue", booleanValue(value)) }

func NullValue() *RootValue { return rootValue("NullValue", nullValue()) }

// Date is a date value formatted with format (default yyyy-MM-dd) from the
// current time.
func Date(format ...string) *RootValue { return rootTemporal("Date", kindDate, format, "") }

func Time(format ...string) *RootValue { return rootTemporal("Time", kindTime, format, "") }

func Datetime(format ...string) *RootValue {
	return rootTemporal("Datetime", kindDatetime, format, "")
}

// DateAt is a date value with an explicit example and no generator.
func DateAt(format string, example time.Time) *RootValue {
	return rootValue("DateAt", temporal(kindDate, []string{format}, "", example, false))
}

func TimeAt(format string, example time.Time) *RootValue {
	return rootValue("TimeAt", temporal(kindTime, []string{format}, "", example, false))
}

func DatetimeAt(format string, example time.Time) *RootValue {
	return rootValue("DatetimeAt", temporal(kindDatetime, []string{format}, "", example, false))
}

func DateExpression(expression string, format ...string) *RootValue {
	return rootTemporal("DateExpression", kindDate, format, expression)
}

func TimeExpression(expression string, format ...string) *RootValue {
	return rootTemporal("TimeExpression", kindTime, format, expression)
}

func DatetimeExpression(expression string, format ...string) *RootValue {
	return rootTemporal("DatetimeExpression", kindDatetime, format, expression)
}

func UUID(example ...string) *RootValue { return rootValue("UUID", uuidValue(example)) }

func HexValue(example ...string) *RootValue { return rootValue("HexValue", hexValue(example)) }

func IPAddress() *RootValue { return rootValue("IPAddress", ipAddress()) }

func ID(example ...int64) *RootValue { return rootValue("ID", idValue(example)) }

func IncludesStr(value string) *RootValue { return rootValue("IncludesStr", includesStr(value)) }

func EqualTo(value any) *RootValue { return rootValue("EqualTo", equalTo(value)) }

// And is a value whose rules must all match.
func And(value any, rules ...matchers.Rule) *RootValue {
	return rootValue("And", logical(matchers.And, value, rules))
}

// Or is a value of which one rule must match.
func Or(value any, rules ...matchers.Rule) *RootValue {
	return rootValue("Or", logical(matchers.Or, value, rules))
}

func MatchURL(basePath string, fragments ...any) *RootValue {
	return rootValue("MatchURL", matchURL(basePath, fragments))
}

func ValueFromProviderState(expression string, example any) *RootValue {
	return rootValue("ValueFromProviderState", fromProviderState(expression, example))
}

func (r *RootValue) closeSelf() { r.finish("value", r.val) }

// CloseObject records unsupported_operation.
func (r *RootValue) CloseObject() Node {
	unsupported(&r.node, "CloseObject", "node is a root value")
	return r
}

// CloseArray records unsupported_operation.
func (r *RootValue) CloseArray() Node {
	unsupported(&r.node, "CloseArray", "node is a root value")
	return r
}

// Close freezes the value as a document and returns it.
func (r *RootValue) Close() Node { return closeAll(r) }

// AsObject records unsupported_operation.
func (r *RootValue) AsObject() *ObjectBuilder {
	unsupported(&r.node, "AsObject", "node is a root value")
	return detachedObject(r.b, nil, r.path)
}

// AsArray records unsupported_operation.
func (r *RootValue) AsArray() *ArrayBuilder {
	unsupported(&r.node, "AsArray", "node is a root value")
	return detachedArray(r.b, nil, r.path)
}

// Build closes the value and returns it as a Document.
func (r *RootValue) Build() (*pactdsl.Document, error) { return buildDocument(r) }

// MustBuild is like Build but panics on error.
func (r *RootValue) MustBuild() *pactdsl.Document { return mustBuild(r) }
