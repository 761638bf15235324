// Package dsl builds pact body shapes: an example JSON body plus matching
// rules and generators keyed by address.
//
// Overview
//   - Builders: NewObject()/NewArray() start a tree; typed constructors
//     (StringType, IntegerType, Date, UUID, ...) add an example and record a
//     rule and/or generator at the field or element address.
//   - Open/close: Object(name)/Array(name) return unattached children that
//     already know their address. CloseObject()/CloseArray() merge the child
//     into its parent and return the parent; Close() closes up to the root.
//   - Repetition: EachLike/MinArrayLike/MaxArrayLike/MinMaxArrayLike record a
//     size rule on the field and return the element template, which is
//     emitted numberExamples times. Bounds are checked at the call.
//   - Root values: package-level StringType()/IntegerType()/... return a
//     RootValue used as the element of the ...Value combinators.
//
// Entry points
//   - NewObject(opts...), NewArray(opts...): plain roots.
//   - ArrayEachLike/ArrayMinLike/ArrayMaxLike/ArrayMinMaxLike: wildcard root
//     arrays returning the element template; ...Value variants take a RootValue.
//   - NewUnorderedArray and its Min/Max/MinMax forms: ignore-order roots.
//   - Build()/MustBuild() on any node: close the tree and return the Document.
//
// File layout (roles)
//   - node.go: Node interface, shared close protocol and Document freezing.
//   - options.go: build state shared by a tree (issues, logger, clock).
//   - values.go: the single value-constructor path behind every typed method.
//   - repeat.go: size-bound validation for repetition combinators.
//   - object.go / array.go / root_value.go: the three node kinds.
//
// Errors
//
// Usage errors never panic. The offending call records an Issue (see the
// pactdsl package for codes), makes no change to the tree and returns a
// builder that keeps the chain working. Build returns the accumulated Issues.
//
// Quickstart
//
//	doc, err := dsl.NewObject().
//		StringType("name", "harry").
//		EachLike("tags").
//		StringType("tag", "x").
//		CloseArray().
//		Build()
//	// body:  {"name":"harry","tags":[{"tag":"x"}]}
//	// rules: $.name type, $.tags type(min=0), $.tags[*].tag type
package dsl
