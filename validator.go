package katachi

import "context"

// Validator checks a runtime value against a compiled constraint and returns
// the accepted (possibly default-substituted, object-rebuilt) value, or Issues
// describing every failure it found.
type Validator interface {
	Validate(ctx context.Context, v any) (any, error)
}

// describer is implemented by validators carrying description metadata.
type describer interface {
	Description() string
}

// DescriptionOf returns the description attached to v and whether one is set.
func DescriptionOf(v Validator) (string, bool) {
	if d, ok := v.(describer); ok {
		return d.Description(), true
	}
	return "", false
}
