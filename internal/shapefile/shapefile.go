// Package shapefile reads declarative body shapes from YAML (or JSON) and
// replays them onto the dsl builders.
//
//	root: object
//	fields:
//	  - {name: id, kind: integer, example: 42}
//	  - name: tags
//	    kind: eachLike
//	    min: 1
//	    element: {kind: string, example: red}
//	  - name: items
//	    kind: eachLike
//	    examples: 2
//	    fields:
//	      - {name: sku, kind: regex, regex: "[A-Z]{3}", example: ABC}
package shapefile

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	pactdsl "github.com/reoring/pactdsl"
	"github.com/reoring/pactdsl/codec"
	"github.com/reoring/pactdsl/dsl"
	"github.com/reoring/pactdsl/internal/pathexp"
)

var (
	ErrUnknownKind = errors.New("shapefile: unknown kind")
	ErrBadExample  = errors.New("shapefile: example does not fit kind")
	ErrBadRoot     = errors.New("shapefile: unknown root")
)

// Root kinds.
const (
	RootObject   = "object"
	RootArray    = "array"
	RootEachLike = "eachLike"
)

// Shape is a whole file.
type Shape struct {
	Root string `yaml:"root"`
	// Min, Max and Examples apply to an eachLike root.
	Min      *int    `yaml:"min,omitempty"`
	Max      *int    `yaml:"max,omitempty"`
	Examples int     `yaml:"examples,omitempty"`
	Fields   []Field `yaml:"fields"`
	// Element makes an eachLike root an array of values instead of objects.
	Element *Field `yaml:"element,omitempty"`
}

// Field is one object field or array element. Name is ignored for array
// elements; for eachKeyLike it is the example key.
type Field struct {
	Name       string  `yaml:"name,omitempty"`
	Kind       string  `yaml:"kind"`
	Example    any     `yaml:"example,omitempty"`
	Format     string  `yaml:"format,omitempty"`
	Regex      string  `yaml:"regex,omitempty"`
	Expression string  `yaml:"expression,omitempty"`
	Min        *int    `yaml:"min,omitempty"`
	Max        *int    `yaml:"max,omitempty"`
	Examples   int     `yaml:"examples,omitempty"`
	Fields     []Field `yaml:"fields,omitempty"`
	Element    *Field  `yaml:"element,omitempty"`
}

// Decode reads a shape. Unknown keys are errors.
func Decode(r io.Reader) (*Shape, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var s Shape
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("shapefile: decode: %w", err)
	}
	if s.Root == "" {
		s.Root = RootObject
	}
	return &s, nil
}

// Load reads the shape file at path.
func Load(path string) (*Shape, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Build replays s and returns the finished Document. Shape errors are
// returned as is; builder errors come back as pactdsl.Issues.
func Build(s *Shape, opts ...dsl.Option) (*pactdsl.Document, error) {
	root, err := Replay(s, opts...)
	if err != nil {
		return nil, err
	}
	return root.Build()
}

// Replay applies s to a fresh root and returns the root node closed.
func Replay(s *Shape, opts ...dsl.Option) (dsl.Node, error) {
	switch s.Root {
	case RootObject, "":
		o := dsl.NewObject(opts...)
		if err := objectFields(o, s.Fields, pathexp.Root); err != nil {
			return nil, err
		}
		return o.Close(), nil
	case RootArray:
		a := dsl.NewArray(opts...)
		if err := arrayElements(a, s.Fields, pathexp.Root); err != nil {
			return nil, err
		}
		return a.Close(), nil
	case RootEachLike:
		return eachLikeRoot(s, opts)
	default:
		return nil, fmt.Errorf("%w %q", ErrBadRoot, s.Root)
	}
}

func eachLikeRoot(s *Shape, opts []dsl.Option) (dsl.Node, error) {
	n := s.Examples
	if s.Element != nil {
		v, err := value(*s.Element, pathexp.Root+pathexp.Wildcard)
		if err != nil {
			return nil, err
		}
		switch {
		case s.Min != nil && s.Max != nil:
			return dsl.ArrayMinMaxLikeValue(*s.Min, *s.Max, v, count(n, *s.Min), opts...).Close(), nil
		case s.Min != nil:
			return dsl.ArrayMinLikeValue(*s.Min, v, count(n, *s.Min), opts...).Close(), nil
		case s.Max != nil:
			return dsl.ArrayMaxLikeValue(*s.Max, v, count(n, 1), opts...).Close(), nil
		default:
			return dsl.ArrayEachLikeValue(v, count(n, 1), opts...).Close(), nil
		}
	}
	var elem *dsl.ObjectBuilder
	switch {
	case s.Min != nil && s.Max != nil:
		elem = dsl.ArrayMinMaxLike(*s.Min, *s.Max, count(n, *s.Min), opts...)
	case s.Min != nil:
		elem = dsl.ArrayMinLike(*s.Min, count(n, *s.Min), opts...)
	case s.Max != nil:
		elem = dsl.ArrayMaxLike(*s.Max, count(n, 1), opts...)
	default:
		elem = dsl.ArrayEachLike(count(n, 1), opts...)
	}
	if err := objectFields(elem, s.Fields, pathexp.Root+pathexp.Wildcard); err != nil {
		return nil, err
	}
	return elem.Close(), nil
}

func count(n, def int) int {
	if n == 0 {
		return def
	}
	return n
}

func examples(n int) []int {
	if n == 0 {
		return nil
	}
	return []int{n}
}

func objectFields(o *dsl.ObjectBuilder, fields []Field, at string) error {
	for _, f := range fields {
		if err := objectField(o, f, pathexp.Field(at, f.Name)); err != nil {
			return err
		}
	}
	return nil
}

func objectField(o *dsl.ObjectBuilder, f Field, at string) error {
	switch f.Kind {
	case "object":
		child := o.Object(f.Name)
		if err := objectFields(child, f.Fields, at); err != nil {
			return err
		}
		child.CloseObject()
	case "array":
		child := o.Array(f.Name)
		if err := arrayElements(child, f.Fields, at); err != nil {
			return err
		}
		child.CloseArray()
	case "eachLike":
		n := examples(f.Examples)
		if f.Element != nil {
			v, err := value(*f.Element, at+pathexp.Wildcard)
			if err != nil {
				return err
			}
			switch {
			case f.Min != nil && f.Max != nil:
				o.MinMaxArrayLikeValue(f.Name, *f.Min, *f.Max, v, n...)
			case f.Min != nil:
				o.MinArrayLikeValue(f.Name, *f.Min, v, n...)
			case f.Max != nil:
				o.MaxArrayLikeValue(f.Name, *f.Max, v, n...)
			default:
				o.EachLikeValue(f.Name, v, n...)
			}
			return nil
		}
		var elem *dsl.ObjectBuilder
		switch {
		case f.Min != nil && f.Max != nil:
			elem = o.MinMaxArrayLike(f.Name, *f.Min, *f.Max, n...)
		case f.Min != nil:
			elem = o.MinArrayLike(f.Name, *f.Min, n...)
		case f.Max != nil:
			elem = o.MaxArrayLike(f.Name, *f.Max, n...)
		default:
			elem = o.EachLike(f.Name, n...)
		}
		if err := objectFields(elem, f.Fields, at+pathexp.Wildcard); err != nil {
			return err
		}
		elem.CloseArray()
	case "unordered":
		var child *dsl.ArrayBuilder
		switch {
		case f.Min != nil && f.Max != nil:
			child = o.UnorderedMinMaxArray(f.Name, *f.Min, *f.Max)
		case f.Min != nil:
			child = o.UnorderedMinArray(f.Name, *f.Min)
		case f.Max != nil:
			child = o.UnorderedMaxArray(f.Name, *f.Max)
		default:
			child = o.UnorderedArray(f.Name)
		}
		if err := arrayElements(child, f.Fields, at); err != nil {
			return err
		}
		child.CloseArray()
	case "eachKeyLike":
		if f.Element != nil {
			v, err := value(*f.Element, at)
			if err != nil {
				return err
			}
			o.EachKeyLikeValue(f.Name, v)
			return nil
		}
		child := o.EachKeyLike(f.Name)
		if err := objectFields(child, f.Fields, at); err != nil {
			return err
		}
		child.CloseObject()
	case "date", "time", "datetime":
		return temporalField(o, f, at)
	default:
		v, err := value(f, at)
		if err != nil {
			return err
		}
		o.Embed(f.Name, v.Close())
	}
	return nil
}

func arrayElements(a *dsl.ArrayBuilder, fields []Field, at string) error {
	for i, f := range fields {
		if err := arrayElement(a, f, pathexp.Index(at, false, i+1, 0)); err != nil {
			return err
		}
	}
	return nil
}

func arrayElement(a *dsl.ArrayBuilder, f Field, at string) error {
	switch f.Kind {
	case "object":
		child := a.Object()
		if err := objectFields(child, f.Fields, at); err != nil {
			return err
		}
		child.CloseObject()
	case "array":
		child := a.Array()
		if err := arrayElements(child, f.Fields, at); err != nil {
			return err
		}
		child.CloseArray()
	case "eachLike":
		n := examples(f.Examples)
		if f.Element != nil {
			v, err := value(*f.Element, at+pathexp.Wildcard)
			if err != nil {
				return err
			}
			switch {
			case f.Min != nil && f.Max != nil:
				a.MinMaxArrayLikeValue(*f.Min, *f.Max, v, n...)
			case f.Min != nil:
				a.MinArrayLikeValue(*f.Min, v, n...)
			case f.Max != nil:
				a.MaxArrayLikeValue(*f.Max, v, n...)
			default:
				a.EachLikeValue(v, n...)
			}
			return nil
		}
		var elem *dsl.ObjectBuilder
		switch {
		case f.Min != nil && f.Max != nil:
			elem = a.MinMaxArrayLike(*f.Min, *f.Max, n...)
		case f.Min != nil:
			elem = a.MinArrayLike(*f.Min, n...)
		case f.Max != nil:
			elem = a.MaxArrayLike(*f.Max, n...)
		default:
			elem = a.EachLike(n...)
		}
		if err := objectFields(elem, f.Fields, at+pathexp.Wildcard); err != nil {
			return err
		}
		elem.CloseArray()
	case "unordered":
		var child *dsl.ArrayBuilder
		switch {
		case f.Min != nil && f.Max != nil:
			child = a.UnorderedMinMaxArray(*f.Min, *f.Max)
		case f.Min != nil:
			child = a.UnorderedMinArray(*f.Min)
		case f.Max != nil:
			child = a.UnorderedMaxArray(*f.Max)
		default:
			child = a.UnorderedArray()
		}
		if err := arrayElements(child, f.Fields, at); err != nil {
			return err
		}
		child.CloseArray()
	case "date", "time", "datetime":
		return temporalElement(a, f, at)
	default:
		v, err := value(f, at)
		if err != nil {
			return err
		}
		a.Template(v.Close())
	}
	return nil
}

// value builds a scalar kind as a RootValue.
func value(f Field, at string) (*dsl.RootValue, error) {
	bad := func() error { return fmt.Errorf("%s: %w: %s %v", at, ErrBadExample, f.Kind, f.Example) }
	switch f.Kind {
	case "string":
		if f.Example == nil {
			return dsl.StringType(), nil
		}
		s, ok := f.Example.(string)
		if !ok {
			return nil, bad()
		}
		return dsl.StringType(s), nil
	case "stringValue":
		s, ok := f.Example.(string)
		if !ok {
			return nil, bad()
		}
		return dsl.StringValue(s), nil
	case "regex":
		s, ok := f.Example.(string)
		if !ok {
			return nil, bad()
		}
		return dsl.StringMatcher(f.Regex, s), nil
	case "number", "decimal", "numberValue":
		var ex []float64
		if f.Example != nil {
			x, ok := toFloat(f.Example)
			if !ok {
				return nil, bad()
			}
			ex = append(ex, x)
		}
		switch f.Kind {
		case "number":
			return dsl.NumberType(ex...), nil
		case "decimal":
			return dsl.DecimalType(ex...), nil
		}
		if len(ex) == 0 {
			return nil, bad()
		}
		return dsl.NumberValue(ex[0]), nil
	case "integer", "id":
		var ex []int64
		if f.Example != nil {
			x, ok := toInt(f.Example)
			if !ok {
				return nil, bad()
			}
			ex = append(ex, x)
		}
		if f.Kind == "id" {
			return dsl.ID(ex...), nil
		}
		return dsl.IntegerType(ex...), nil
	case "boolean":
		if f.Example == nil {
			return dsl.BooleanType(), nil
		}
		b, ok := f.Example.(bool)
		if !ok {
			return nil, bad()
		}
		return dsl.BooleanType(b), nil
	case "booleanValue":
		b, ok := f.Example.(bool)
		if !ok {
			return nil, bad()
		}
		return dsl.BooleanValue(b), nil
	case "null":
		return dsl.NullValue(), nil
	case "uuid", "hex":
		var ex []string
		if f.Example != nil {
			s, ok := f.Example.(string)
			if !ok {
				return nil, bad()
			}
			ex = append(ex, s)
		}
		if f.Kind == "uuid" {
			return dsl.UUID(ex...), nil
		}
		return dsl.HexValue(ex...), nil
	case "ip":
		return dsl.IPAddress(), nil
	case "includes":
		s, ok := f.Example.(string)
		if !ok {
			return nil, bad()
		}
		return dsl.IncludesStr(s), nil
	case "equalTo":
		return dsl.EqualTo(f.Example), nil
	case "providerState":
		if f.Example == nil {
			return nil, bad()
		}
		return dsl.ValueFromProviderState(f.Expression, f.Example), nil
	default:
		return nil, fmt.Errorf("%s: %w %q", at, ErrUnknownKind, f.Kind)
	}
}

// temporal resolves a date, time or datetime field. ok is false when the
// field has no explicit example; err reports an example that does not parse.
func temporal(f Field, at string) (format string, t time.Time, ok bool, err error) {
	format = f.Format
	if format == "" {
		switch f.Kind {
		case "date":
			format = codec.DatePattern
		case "time":
			format = codec.TimePattern
		default:
			format = codec.DatetimePattern
		}
	}
	if f.Example == nil {
		return format, time.Time{}, false, nil
	}
	s, isString := f.Example.(string)
	if !isString {
		return format, time.Time{}, false, fmt.Errorf("%s: %w: %v", at, ErrBadExample, f.Example)
	}
	p, cerr := codec.Compile(format)
	if cerr != nil {
		// the builder reports the bad pattern
		return format, time.Time{}, false, nil
	}
	t, perr := p.Parse(s)
	if perr != nil {
		return format, time.Time{}, false, fmt.Errorf("%s: %w: %v", at, ErrBadExample, perr)
	}
	return format, t, true, nil
}

func temporalField(o *dsl.ObjectBuilder, f Field, at string) error {
	format, t, ok, err := temporal(f, at)
	if err != nil {
		return err
	}
	switch {
	case ok && f.Kind == "date":
		o.DateAt(f.Name, format, t)
	case ok && f.Kind == "time":
		o.TimeAt(f.Name, format, t)
	case ok:
		o.DatetimeAt(f.Name, format, t)
	case f.Expression != "" && f.Kind == "date":
		o.DateExpression(f.Name, f.Expression, format)
	case f.Expression != "" && f.Kind == "time":
		o.TimeExpression(f.Name, f.Expression, format)
	case f.Expression != "":
		o.DatetimeExpression(f.Name, f.Expression, format)
	case f.Kind == "date":
		o.Date(f.Name, format)
	case f.Kind == "time":
		o.Time(f.Name, format)
	default:
		o.Datetime(f.Name, format)
	}
	return nil
}

func temporalElement(a *dsl.ArrayBuilder, f Field, at string) error {
	format, t, ok, err := temporal(f, at)
	if err != nil {
		return err
	}
	switch {
	case ok && f.Kind == "date":
		a.DateAt(format, t)
	case ok && f.Kind == "time":
		a.TimeAt(format, t)
	case ok:
		a.DatetimeAt(format, t)
	case f.Expression != "" && f.Kind == "date":
		a.DateExpression(f.Expression, format)
	case f.Expression != "" && f.Kind == "time":
		a.TimeExpression(f.Expression, format)
	case f.Expression != "":
		a.DatetimeExpression(f.Expression, format)
	case f.Kind == "date":
		a.Date(format)
	case f.Kind == "time":
		a.Time(format)
	default:
		a.Datetime(format)
	}
	return nil
}

func toInt(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int64:
		return t, true
	case uint64:
		if t <= math.MaxInt64 {
			return int64(t), true
		}
	case float64:
		if t >= math.MinInt64 && t < math.MaxInt64 && t == math.Trunc(t) {
			return int64(t), true
		}
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint64:
		return float64(t), true
	case float64:
		return t, true
	}
	return 0, false
}
