// Package jsonschema compiles a declarative constraint schema (a JSON-Schema
// style document) into a katachi.Validator.
//
// Compilation runs in two phases over each schema node. The primitive phase
// resolves type admissibility: an ordered handler chain reads keyword groups
// (const, enum, type, string/number/array/object shape) and records, per
// runtime kind, whether that kind is allowed and which base validator applies.
// The assembled base is then wrapped by the refinement phase: another ordered
// chain layering combinators (allOf/anyOf/oneOf/not), positional prefix
// items, containment counting, pattern-keyed additional properties,
// uniqueness, defaults, and description metadata.
//
// Unsatisfiable keyword combinations compile to a validator that rejects
// everything rather than failing compilation; the only compile-time error a
// well-formed document can produce is a malformed top-level pattern regexp.
package jsonschema
