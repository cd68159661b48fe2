package dsl

import (
	"context"
	"sort"

	katachi "github.com/kadomatsu/katachi"
	"github.com/kadomatsu/katachi/i18n"
)

// unknownPolicy selects how keys outside the declared fields are handled.
type unknownPolicy int

const (
	unknownPassthrough unknownPolicy = iota
	unknownStrict
	unknownCatchAll
)

// ObjectBuilder assembles a structural object validator.
type ObjectBuilder struct {
	fields   map[string]katachi.Validator
	required map[string]struct{}
	policy   unknownPolicy
	catchAll katachi.Validator
	minProps int
	maxProps int
}

// Object creates a new object builder. Unknown keys pass through by default.
func Object() *ObjectBuilder {
	return &ObjectBuilder{
		fields:   map[string]katachi.Validator{},
		required: map[string]struct{}{},
		policy:   unknownPassthrough,
		minProps: -1,
		maxProps: -1,
	}
}

// Field registers a declared property with its validator. Fields are optional
// unless also listed via Require.
func (b *ObjectBuilder) Field(name string, v katachi.Validator) *ObjectBuilder {
	b.fields[name] = v
	return b
}

// Require marks one or more property names as required. Names do not have to
// be declared fields; undeclared required names only assert key presence.
func (b *ObjectBuilder) Require(names ...string) *ObjectBuilder {
	for _, n := range names {
		b.required[n] = struct{}{}
	}
	return b
}

// UnknownStrict rejects keys outside the declared fields.
func (b *ObjectBuilder) UnknownStrict() *ObjectBuilder {
	b.policy = unknownStrict
	b.catchAll = nil
	return b
}

// UnknownPassthrough copies keys outside the declared fields unchanged.
func (b *ObjectBuilder) UnknownPassthrough() *ObjectBuilder {
	b.policy = unknownPassthrough
	b.catchAll = nil
	return b
}

// UnknownWith validates keys outside the declared fields against v.
func (b *ObjectBuilder) UnknownWith(v katachi.Validator) *ObjectBuilder {
	b.policy = unknownCatchAll
	b.catchAll = v
	return b
}

// MinProps sets the minimum own-key count.
func (b *ObjectBuilder) MinProps(n int) *ObjectBuilder { b.minProps = n; return b }

// MaxProps sets the maximum own-key count.
func (b *ObjectBuilder) MaxProps(n int) *ObjectBuilder { b.maxProps = n; return b }

// Build finalizes the builder into a validator.
func (b *ObjectBuilder) Build() katachi.Validator {
	ov := &objectValidator{
		fields:   make(map[string]katachi.Validator, len(b.fields)),
		required: make(map[string]struct{}, len(b.required)),
		policy:   b.policy,
		catchAll: b.catchAll,
		minProps: b.minProps,
		maxProps: b.maxProps,
	}
	for k, v := range b.fields {
		ov.fields[k] = v
	}
	for k := range b.required {
		ov.required[k] = struct{}{}
	}
	return ov
}

type objectValidator struct {
	fields   map[string]katachi.Validator
	required map[string]struct{}
	policy   unknownPolicy
	catchAll katachi.Validator
	minProps int
	maxProps int
}

func (o *objectValidator) Validate(ctx context.Context, v any) (any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, katachi.Issues{{Path: "/", Code: katachi.CodeInvalidType, Message: i18n.T(katachi.CodeInvalidType, nil), Hint: "expected object"}}
	}
	var iss katachi.Issues
	if o.minProps >= 0 && len(m) < o.minProps {
		iss = katachi.AppendIssues(iss, katachi.Issue{Path: "/", Code: katachi.CodeTooSmall, Message: i18n.T(katachi.CodeTooSmall, nil), Hint: "fewer properties than minProperties", Params: map[string]any{"min": o.minProps, "got": len(m)}})
	}
	if o.maxProps >= 0 && len(m) > o.maxProps {
		iss = katachi.AppendIssues(iss, katachi.Issue{Path: "/", Code: katachi.CodeTooBig, Message: i18n.T(katachi.CodeTooBig, nil), Hint: "more properties than maxProperties", Params: map[string]any{"max": o.maxProps, "got": len(m)}})
	}
	for _, name := range sortedKeys(o.required) {
		if _, present := m[name]; !present {
			iss = katachi.AppendIssues(iss, katachi.Issue{Path: "/" + name, Code: katachi.CodeRequired, Message: i18n.T(katachi.CodeRequired, nil)})
		}
	}
	out := make(map[string]any, len(m))
	for _, name := range sortedKeys(o.fields) {
		fv := o.fields[name]
		val, present := m[name]
		if !present {
			// Probe with Absent so Default wrappers can materialize values;
			// optional fields whose validator rejects Absent are omitted.
			if _, req := o.required[name]; req {
				continue
			}
			dv, err := fv.Validate(ctx, katachi.Absent)
			if err == nil && !katachi.IsAbsent(dv) {
				out[name] = dv
			}
			continue
		}
		r, err := fv.Validate(ctx, val)
		if err != nil {
			iss = katachi.AppendIssues(iss, katachi.PrefixIssues(err, "/"+name)...)
			continue
		}
		out[name] = r
	}
	for _, k := range sortedKeys(m) {
		if _, declared := o.fields[k]; declared {
			continue
		}
		switch o.policy {
		case unknownStrict:
			iss = katachi.AppendIssues(iss, katachi.Issue{Path: "/" + k, Code: katachi.CodeUnknownKey, Message: i18n.T(katachi.CodeUnknownKey, nil)})
		case unknownCatchAll:
			r, err := o.catchAll.Validate(ctx, m[k])
			if err != nil {
				iss = katachi.AppendIssues(iss, katachi.PrefixIssues(err, "/"+k)...)
				continue
			}
			out[k] = r
		default:
			out[k] = m[k]
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
