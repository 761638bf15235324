// Package lambda is a callback-style facade over the dsl builders. Each
// nested node is filled in by a function and closed when the function
// returns, so callers never write CloseObject or CloseArray.
//
//	root := lambda.Object(func(o *lambda.Obj) {
//		o.StringType("name", "harry")
//		o.EachLike("tags", func(t *lambda.Obj) {
//			t.StringType("tag", "x")
//		})
//	})
//	doc, err := root.Build()
//
// Obj and Arr embed the dsl builders, so every typed field method is
// available as is. Only the methods that open a nested node take a callback.
package lambda

import "github.com/reoring/pactdsl/dsl"

// Obj wraps an object builder.
type Obj struct {
	*dsl.ObjectBuilder
}

// Arr wraps an array builder.
type Arr struct {
	*dsl.ArrayBuilder
}

// Object builds a root object and returns it closed.
func Object(fn func(o *Obj), opts ...dsl.Option) *dsl.ObjectBuilder {
	root := dsl.NewObject(opts...)
	fill(fn, root)
	root.CloseObject()
	return root
}

// Array builds a root array and returns it closed.
func Array(fn func(a *Arr), opts ...dsl.Option) *dsl.ArrayBuilder {
	root := dsl.NewArray(opts...)
	fillArr(fn, root)
	root.CloseArray()
	return root
}

// ArrayEachLike builds a root array of numberExamples copies of the object
// fn describes and returns it closed.
func ArrayEachLike(numberExamples int, fn func(o *Obj), opts ...dsl.Option) *dsl.ArrayBuilder {
	elem := dsl.ArrayEachLike(numberExamples, opts...)
	fill(fn, elem)
	return elem.CloseArray().AsArray()
}

func fill(fn func(*Obj), b *dsl.ObjectBuilder) {
	if fn != nil {
		fn(&Obj{b})
	}
}

func fillArr(fn func(*Arr), b *dsl.ArrayBuilder) {
	if fn != nil {
		fn(&Arr{b})
	}
}

// Object adds a nested object field.
func (o *Obj) Object(name string, fn func(o *Obj)) *Obj {
	child := o.ObjectBuilder.Object(name)
	fill(fn, child)
	child.CloseObject()
	return o
}

// Array adds a nested array field.
func (o *Obj) Array(name string, fn func(a *Arr)) *Obj {
	child := o.ObjectBuilder.Array(name)
	fillArr(fn, child)
	child.CloseArray()
	return o
}

// element closes an array element and the array holding it.
func element(elem *dsl.ObjectBuilder, fn func(*Obj)) {
	fill(fn, elem)
	elem.CloseArray()
}

// nested closes an inner array and the repeated array holding it.
func nested(inner *dsl.ArrayBuilder, fn func(*Arr)) {
	fillArr(fn, inner)
	inner.CloseArray().CloseArray()
}

func (o *Obj) EachLike(name string, fn func(o *Obj), numberExamples ...int) *Obj {
	element(o.ObjectBuilder.EachLike(name, numberExamples...), fn)
	return o
}

func (o *Obj) MinArrayLike(name string, size int, fn func(o *Obj), numberExamples ...int) *Obj {
	element(o.ObjectBuilder.MinArrayLike(name, size, numberExamples...), fn)
	return o
}

func (o *Obj) MaxArrayLike(name string, size int, fn func(o *Obj), numberExamples ...int) *Obj {
	element(o.ObjectBuilder.MaxArrayLike(name, size, numberExamples...), fn)
	return o
}

func (o *Obj) MinMaxArrayLike(name string, minSize, maxSize int, fn func(o *Obj), numberExamples ...int) *Obj {
	element(o.ObjectBuilder.MinMaxArrayLike(name, minSize, maxSize, numberExamples...), fn)
	return o
}

// EachArrayLike adds an array field whose elements are all arrays like the
// one fn describes.
func (o *Obj) EachArrayLike(name string, fn func(a *Arr), numberExamples ...int) *Obj {
	nested(o.ObjectBuilder.EachArrayLike(name, numberExamples...), fn)
	return o
}

// UnorderedArray adds an array field matched in any order.
func (o *Obj) UnorderedArray(name string, fn func(a *Arr)) *Obj {
	child := o.ObjectBuilder.UnorderedArray(name)
	fillArr(fn, child)
	child.CloseArray()
	return o
}

// EachKeyLike declares that every key maps to a value like the object fn
// describes, filled in under exampleKey.
func (o *Obj) EachKeyLike(exampleKey string, fn func(o *Obj)) *Obj {
	child := o.ObjectBuilder.EachKeyLike(exampleKey)
	fill(fn, child)
	child.CloseObject()
	return o
}

// Object appends an object element.
func (a *Arr) Object(fn func(o *Obj)) *Arr {
	child := a.ArrayBuilder.Object()
	fill(fn, child)
	child.CloseObject()
	return a
}

// Array appends an array element.
func (a *Arr) Array(fn func(a *Arr)) *Arr {
	child := a.ArrayBuilder.Array()
	fillArr(fn, child)
	child.CloseArray()
	return a
}

func (a *Arr) EachLike(fn func(o *Obj), numberExamples ...int) *Arr {
	element(a.ArrayBuilder.EachLike(numberExamples...), fn)
	return a
}

func (a *Arr) MinArrayLike(size int, fn func(o *Obj), numberExamples ...int) *Arr {
	element(a.ArrayBuilder.MinArrayLike(size, numberExamples...), fn)
	return a
}

func (a *Arr) MaxArrayLike(size int, fn func(o *Obj), numberExamples ...int) *Arr {
	element(a.ArrayBuilder.MaxArrayLike(size, numberExamples...), fn)
	return a
}

func (a *Arr) MinMaxArrayLike(minSize, maxSize int, fn func(o *Obj), numberExamples ...int) *Arr {
	element(a.ArrayBuilder.MinMaxArrayLike(minSize, maxSize, numberExamples...), fn)
	return a
}

func (a *Arr) EachArrayLike(fn func(a *Arr), numberExamples ...int) *Arr {
	nested(a.ArrayBuilder.EachArrayLike(numberExamples...), fn)
	return a
}

func (a *Arr) UnorderedArray(fn func(a *Arr)) *Arr {
	child := a.ArrayBuilder.UnorderedArray()
	fillArr(fn, child)
	child.CloseArray()
	return a
}
