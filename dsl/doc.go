// Package dsl provides the validator combinators the jsonschema compiler
// targets: base-kind primitives, literal and enum matchers, object/array/tuple
// builders, and the union/intersection/refine/default/describe wrappers.
//
// Validators here operate on untyped JSON-shaped values (map[string]any,
// []any, json.Number, string, bool, nil) because compiled schemas admit
// cross-kind unions that cannot be expressed as a single typed schema.
package dsl
