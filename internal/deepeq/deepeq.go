// Package deepeq implements deep structural equality over JSON-shaped values.
//
// Arrays compare order-sensitively, objects by key set and per-key value, and
// numbers by numeric value so that 1, 1.0 and json.Number("1") are equal.
package deepeq

import (
	katachi "github.com/kadomatsu/katachi"
)

// Equal reports whether a and b are deeply equal under JSON value semantics.
func Equal(a, b any) bool {
	if fa, ok := katachi.AsNumber(a); ok {
		fb, ok := katachi.AsNumber(b)
		return ok && fa == fb
	}
	switch ta := a.(type) {
	case nil:
		return b == nil
	case bool:
		tb, ok := b.(bool)
		return ok && ta == tb
	case string:
		tb, ok := b.(string)
		return ok && ta == tb
	case []any:
		tb, ok := b.([]any)
		if !ok || len(ta) != len(tb) {
			return false
		}
		for i := range ta {
			if !Equal(ta[i], tb[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		tb, ok := b.(map[string]any)
		if !ok || len(ta) != len(tb) {
			return false
		}
		for k, av := range ta {
			bv, ok := tb[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// In reports whether v deeply equals any member of set.
func In(v any, set []any) bool {
	for _, m := range set {
		if Equal(v, m) {
			return true
		}
	}
	return false
}
