package dsl

import (
	"context"

	katachi "github.com/kadomatsu/katachi"
	"github.com/kadomatsu/katachi/i18n"
)

// Union returns a validator accepting values accepted by any branch. Branches
// are tried in declaration order and the first success wins.
func Union(vs ...katachi.Validator) katachi.Validator {
	if len(vs) == 1 {
		return vs[0]
	}
	return unionValidator{branches: vs}
}

type unionValidator struct{ branches []katachi.Validator }

func (u unionValidator) Validate(ctx context.Context, v any) (any, error) {
	for _, b := range u.branches {
		if r, err := b.Validate(ctx, v); err == nil {
			return r, nil
		}
	}
	return nil, katachi.Issues{{Path: "/", Code: katachi.CodeInvalidUnion, Message: i18n.T(katachi.CodeInvalidUnion, nil), Params: map[string]any{"branches": len(u.branches)}}}
}

// Intersect returns a validator requiring both a and b to accept the value.
// b receives a's output so default substitution and object rebuilding chain.
func Intersect(a, b katachi.Validator) katachi.Validator {
	return intersectValidator{a: a, b: b}
}

type intersectValidator struct{ a, b katachi.Validator }

func (x intersectValidator) Validate(ctx context.Context, v any) (any, error) {
	r, err := x.a.Validate(ctx, v)
	if err != nil {
		return nil, err
	}
	return x.b.Validate(ctx, r)
}

// Refine wraps inner with a named predicate that runs on inner's output.
// The predicate is skipped for Absent values so defaults keep flowing.
func Refine(inner katachi.Validator, name string, fn func(ctx context.Context, v any) error) katachi.Validator {
	return refineValidator{inner: inner, name: name, fn: fn}
}

type refineValidator struct {
	inner katachi.Validator
	name  string
	fn    func(ctx context.Context, v any) error
}

func (r refineValidator) Validate(ctx context.Context, v any) (any, error) {
	out, err := r.inner.Validate(ctx, v)
	if err != nil {
		return nil, err
	}
	if katachi.IsAbsent(out) {
		return out, nil
	}
	if err := r.fn(ctx, out); err != nil {
		iss, ok := katachi.AsIssues(err)
		if !ok {
			iss = katachi.Issues{{Path: "/", Code: katachi.CodeParseError, Message: err.Error(), Cause: err}}
		}
		for i := range iss {
			if iss[i].Rule == "" {
				iss[i].Rule = r.name
			}
		}
		return nil, iss
	}
	return out, nil
}

// Optional wraps inner so the Absent sentinel passes through untouched.
func Optional(inner katachi.Validator) katachi.Validator {
	return optionalValidator{inner: inner}
}

type optionalValidator struct{ inner katachi.Validator }

func (o optionalValidator) Validate(ctx context.Context, v any) (any, error) {
	if katachi.IsAbsent(v) {
		return v, nil
	}
	return o.inner.Validate(ctx, v)
}

// Default wraps inner so the Absent sentinel is replaced with def. Present
// values, including explicit null, validate through inner unchanged.
func Default(inner katachi.Validator, def any) katachi.Validator {
	return defaultValidator{inner: inner, def: def}
}

type defaultValidator struct {
	inner katachi.Validator
	def   any
}

func (d defaultValidator) Validate(ctx context.Context, v any) (any, error) {
	if katachi.IsAbsent(v) {
		return d.def, nil
	}
	return d.inner.Validate(ctx, v)
}

// Describe attaches description metadata without changing validation
// semantics. Read it back with katachi.DescriptionOf.
func Describe(inner katachi.Validator, desc string) katachi.Validator {
	return describedValidator{inner: inner, desc: desc}
}

type describedValidator struct {
	inner katachi.Validator
	desc  string
}

func (d describedValidator) Validate(ctx context.Context, v any) (any, error) {
	return d.inner.Validate(ctx, v)
}

func (d describedValidator) Description() string { return d.desc }
