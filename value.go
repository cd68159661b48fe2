package katachi

import (
	"bytes"
	"encoding/json"
	"math"

	gojson "github.com/goccy/go-json"
)

// absent is the unexported type behind the Absent sentinel.
type absent struct{}

func (absent) String() string { return "<absent>" }

// Absent marks a value that was not present in the input at all, as opposed to
// an explicit JSON null. Object validation probes optional fields with Absent
// so Default wrappers can materialize values for missing keys.
var Absent any = absent{}

// IsAbsent reports whether v is the Absent sentinel.
func IsAbsent(v any) bool {
	_, ok := v.(absent)
	return ok
}

// AsNumber coerces JSON-shaped numeric representations to float64.
// It accepts json.Number, floats, and the Go integer types that decoded or
// hand-built documents commonly carry.
func AsNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	default:
		return 0, false
	}
}

// IsIntegral reports whether v is a numeric value with no fractional part.
func IsIntegral(v any) bool {
	f, ok := AsNumber(v)
	return ok && math.Trunc(f) == f
}

// JSONBytes decodes raw JSON into the value shape validators consume
// (map[string]any, []any, json.Number, string, bool, nil), preserving numeric
// precision via UseNumber.
func JSONBytes(data []byte) (any, error) {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, Issues{{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err}}
	}
	return v, nil
}
