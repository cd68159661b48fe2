package dsl

import (
	"context"

	katachi "github.com/kadomatsu/katachi"
	"github.com/kadomatsu/katachi/i18n"
	"github.com/kadomatsu/katachi/internal/deepeq"
)

// String returns a validator accepting string values.
func String() katachi.Validator { return stringValidator{} }

// Number returns a validator accepting numeric values (json.Number, floats,
// and integer representations).
func Number() katachi.Validator { return numberValidator{} }

// Integer returns a validator accepting numeric values with no fractional
// part.
func Integer() katachi.Validator { return integerValidator{} }

// Bool returns a validator accepting boolean values.
func Bool() katachi.Validator { return boolValidator{} }

// Null returns a validator accepting only JSON null.
func Null() katachi.Validator { return nullValidator{} }

// Binary returns a validator accepting raw binary content ([]byte).
func Binary() katachi.Validator { return binaryValidator{} }

// Any returns the unconstrained validator: every value, including Absent,
// passes through unchanged.
func Any() katachi.Validator { return anyValidator{} }

// Never returns the validator that rejects every value.
func Never() katachi.Validator { return neverValidator{} }

// Literal returns a validator accepting exactly the given scalar value.
func Literal(want any) katachi.Validator { return literalValidator{want: want} }

// Enum returns a validator accepting any one of the given scalar values.
func Enum(vals ...any) katachi.Validator { return enumValidator{vals: vals} }

type stringValidator struct{}

func (stringValidator) Validate(ctx context.Context, v any) (any, error) {
	if _, ok := v.(string); !ok {
		return nil, katachi.Issues{{Path: "/", Code: katachi.CodeInvalidType, Message: i18n.T(katachi.CodeInvalidType, nil), Hint: "expected string"}}
	}
	return v, nil
}

type numberValidator struct{}

func (numberValidator) Validate(ctx context.Context, v any) (any, error) {
	if _, ok := katachi.AsNumber(v); !ok {
		return nil, katachi.Issues{{Path: "/", Code: katachi.CodeInvalidType, Message: i18n.T(katachi.CodeInvalidType, nil), Hint: "expected number"}}
	}
	return v, nil
}

type integerValidator struct{}

func (integerValidator) Validate(ctx context.Context, v any) (any, error) {
	if _, ok := katachi.AsNumber(v); !ok {
		return nil, katachi.Issues{{Path: "/", Code: katachi.CodeInvalidType, Message: i18n.T(katachi.CodeInvalidType, nil), Hint: "expected integer"}}
	}
	if !katachi.IsIntegral(v) {
		return nil, katachi.Issues{{Path: "/", Code: katachi.CodeInvalidType, Message: i18n.T(katachi.CodeInvalidType, nil), Hint: "expected integer, got fractional number"}}
	}
	return v, nil
}

type boolValidator struct{}

func (boolValidator) Validate(ctx context.Context, v any) (any, error) {
	if _, ok := v.(bool); !ok {
		return nil, katachi.Issues{{Path: "/", Code: katachi.CodeInvalidType, Message: i18n.T(katachi.CodeInvalidType, nil), Hint: "expected boolean"}}
	}
	return v, nil
}

type nullValidator struct{}

func (nullValidator) Validate(ctx context.Context, v any) (any, error) {
	if v != nil {
		return nil, katachi.Issues{{Path: "/", Code: katachi.CodeInvalidType, Message: i18n.T(katachi.CodeInvalidType, nil), Hint: "expected null"}}
	}
	return nil, nil
}

type binaryValidator struct{}

func (binaryValidator) Validate(ctx context.Context, v any) (any, error) {
	if _, ok := v.([]byte); !ok {
		return nil, katachi.Issues{{Path: "/", Code: katachi.CodeInvalidType, Message: i18n.T(katachi.CodeInvalidType, nil), Hint: "expected binary content"}}
	}
	return v, nil
}

type anyValidator struct{}

func (anyValidator) Validate(ctx context.Context, v any) (any, error) { return v, nil }

type neverValidator struct{}

func (neverValidator) Validate(ctx context.Context, v any) (any, error) {
	return nil, katachi.Issues{{Path: "/", Code: katachi.CodeNever, Message: i18n.T(katachi.CodeNever, nil)}}
}

type literalValidator struct{ want any }

func (l literalValidator) Validate(ctx context.Context, v any) (any, error) {
	if !deepeq.Equal(v, l.want) {
		return nil, katachi.Issues{{Path: "/", Code: katachi.CodeInvalidLiteral, Message: i18n.T(katachi.CodeInvalidLiteral, nil), Params: map[string]any{"expected": l.want}}}
	}
	return v, nil
}

type enumValidator struct{ vals []any }

func (e enumValidator) Validate(ctx context.Context, v any) (any, error) {
	if !deepeq.In(v, e.vals) {
		return nil, katachi.Issues{{Path: "/", Code: katachi.CodeInvalidEnum, Message: i18n.T(katachi.CodeInvalidEnum, nil), Params: map[string]any{"allowed": e.vals}}}
	}
	return v, nil
}
