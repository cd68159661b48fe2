package katachi

// Package katachi provides:
//
// - A composable runtime Validator contract (Validate(ctx, v) -> value or Issues)
// - A stable error model via Issues (JSON Pointer, code, message)
// - The Absent sentinel distinguishing a missing value from JSON null
// - Numeric coercion helpers shared by the combinators and the compiler
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Place validator combinators under dsl/ and the schema compiler under jsonschema/.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	v, err := jsonschema.Compile(doc)
//	out, err := v.Validate(ctx, input)
//	iss, ok := katachi.AsIssues(err)
