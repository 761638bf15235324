// Package pactdsl describes the shape of JSON request/response bodies for
// contract tests: an example body plus matching rules and example generators
// keyed by JSONPath-like addresses ($.items[*].id).
//
// The package provides:
//
// - Document, the closed product (body, matching rules, generators) with JSON
// and YAML projections in the pact v3 layout
// - A stable error model via Issues (address, code, message)
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Place builders under dsl/, rule and generator variants under matchers/ and
// generators/, and the CLI under cmd/pactdsl.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	doc, err := dsl.NewObject().
//		StringType("name", "harry").
//		EachLike("tags").
//		StringType("tag", "x").
//		CloseArray().
//		Build()
//
//	body, err := doc.BodyJSON()
//	rules := doc.MatchingRules.Paths() // [$.name $.tags $.tags[*].tag]
package pactdsl
