package dsl

import (
	"context"
	"strconv"

	katachi "github.com/kadomatsu/katachi"
	"github.com/kadomatsu/katachi/i18n"
)

// Array returns an array validator with the given element validator and no
// length bounds.
func Array(elem katachi.Validator) *ArrayValidator {
	return &ArrayValidator{elem: elem, minLen: -1, maxLen: -1}
}

// ArrayValidator exposes chaining options for homogeneous arrays while
// implementing katachi.Validator.
type ArrayValidator struct {
	elem   katachi.Validator
	minLen int
	maxLen int
}

// Min sets the minimum length.
func (a *ArrayValidator) Min(n int) *ArrayValidator { a.minLen = n; return a }

// Max sets the maximum length.
func (a *ArrayValidator) Max(n int) *ArrayValidator { a.maxLen = n; return a }

func (a *ArrayValidator) Validate(ctx context.Context, v any) (any, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, katachi.Issues{{Path: "/", Code: katachi.CodeInvalidType, Message: i18n.T(katachi.CodeInvalidType, nil), Hint: "expected array"}}
	}
	var iss katachi.Issues
	if a.minLen >= 0 && len(arr) < a.minLen {
		iss = katachi.AppendIssues(iss, katachi.Issue{Path: "/", Code: katachi.CodeTooShort, Message: i18n.T(katachi.CodeTooShort, nil), Params: map[string]any{"min": a.minLen, "got": len(arr)}})
	}
	if a.maxLen >= 0 && len(arr) > a.maxLen {
		iss = katachi.AppendIssues(iss, katachi.Issue{Path: "/", Code: katachi.CodeTooLong, Message: i18n.T(katachi.CodeTooLong, nil), Params: map[string]any{"max": a.maxLen, "got": len(arr)}})
	}
	out := make([]any, 0, len(arr))
	for i, el := range arr {
		ev, err := a.elem.Validate(ctx, el)
		if err != nil {
			iss = katachi.AppendIssues(iss, katachi.PrefixIssues(err, "/"+strconv.Itoa(i))...)
			continue
		}
		out = append(out, ev)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

// Tuple returns a fixed-length positional validator: the input must be an
// array of exactly len(elems) items, each accepted by its positional
// validator.
func Tuple(elems ...katachi.Validator) katachi.Validator {
	return tupleValidator{elems: elems}
}

type tupleValidator struct{ elems []katachi.Validator }

func (t tupleValidator) Validate(ctx context.Context, v any) (any, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, katachi.Issues{{Path: "/", Code: katachi.CodeInvalidType, Message: i18n.T(katachi.CodeInvalidType, nil), Hint: "expected array"}}
	}
	if len(arr) != len(t.elems) {
		code := katachi.CodeTooShort
		if len(arr) > len(t.elems) {
			code = katachi.CodeTooLong
		}
		return nil, katachi.Issues{{Path: "/", Code: code, Message: i18n.T(code, nil), Params: map[string]any{"want": len(t.elems), "got": len(arr)}}}
	}
	var iss katachi.Issues
	out := make([]any, 0, len(arr))
	for i, el := range arr {
		ev, err := t.elems[i].Validate(ctx, el)
		if err != nil {
			iss = katachi.AppendIssues(iss, katachi.PrefixIssues(err, "/"+strconv.Itoa(i))...)
			continue
		}
		out = append(out, ev)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}
