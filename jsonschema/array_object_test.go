package jsonschema_test

import (
	"context"
	"testing"

	katachi "github.com/kadomatsu/katachi"
)

func TestArray_ElementSchema(t *testing.T) {
	v := mustCompile(t, map[string]any{"type": "array", "items": map[string]any{"type": "string"}})
	wantAccept(t, v, []any{"a", "b"})
	wantAccept(t, v, []any{})
	wantReject(t, v, []any{"a", 1}, katachi.CodeInvalidType)
	wantReject(t, v, "not an array", katachi.CodeInvalidType)
}

func TestArray_ElementIssue_PathPointsAtIndex(t *testing.T) {
	v := mustCompile(t, map[string]any{"type": "array", "items": map[string]any{"type": "string"}})
	_, err := v.Validate(context.Background(), []any{"ok", 7})
	iss, ok := katachi.AsIssues(err)
	if !ok {
		t.Fatalf("want issues, got %v", err)
	}
	if iss[0].Path != "/1" {
		t.Fatalf("want path /1, got %q", iss[0].Path)
	}
}

func TestArray_LengthBounds(t *testing.T) {
	v := mustCompile(t, map[string]any{"type": "array", "minItems": 1, "maxItems": 2})
	wantAccept(t, v, []any{1})
	wantAccept(t, v, []any{1, 2})
	wantReject(t, v, []any{}, katachi.CodeTooShort)
	wantReject(t, v, []any{1, 2, 3}, katachi.CodeTooLong)
}

func TestArray_ItemsFalse_OnlyEmptyArray(t *testing.T) {
	v := mustCompile(t, map[string]any{"type": "array", "items": false})
	wantAccept(t, v, []any{})
	wantReject(t, v, []any{1}, katachi.CodeTooLong)
}

func TestArray_ItemsTrue_Unrestricted(t *testing.T) {
	v := mustCompile(t, map[string]any{"type": "array", "items": true})
	wantAccept(t, v, []any{1, "a", nil, map[string]any{}})
}

func TestTuple_PositionalItems(t *testing.T) {
	v := mustCompile(t, map[string]any{
		"type":  "array",
		"items": []any{map[string]any{"type": "string"}, map[string]any{"type": "number"}},
	})
	wantAccept(t, v, []any{"a", 1})
	wantReject(t, v, []any{"a"}, katachi.CodeTooShort)
	wantReject(t, v, []any{"a", 1, 2}, katachi.CodeTooLong)
	wantReject(t, v, []any{1, 1}, katachi.CodeInvalidType)
}

func TestTuple_ImpossibleBounds_ExcludeOnlyTheTupleBranch(t *testing.T) {
	// minItems demands more elements than the tuple has positions, so the
	// tuple interpretation is impossible; the string interpretation survives.
	v := mustCompile(t, map[string]any{
		"type":     []any{"array", "string"},
		"items":    []any{map[string]any{"type": "number"}},
		"minItems": 2,
	})
	wantAccept(t, v, "still fine")
	wantReject(t, v, []any{1}, "")
	wantReject(t, v, []any{1, 2}, "")
}

func TestTuple_ImpossibleBounds_AloneMeansNever(t *testing.T) {
	v := mustCompile(t, map[string]any{
		"type":     "array",
		"items":    []any{map[string]any{"type": "number"}},
		"maxItems": 0,
	})
	wantReject(t, v, []any{}, katachi.CodeNever)
	wantReject(t, v, []any{1}, katachi.CodeNever)
}

func TestObject_PropertiesAndRequired(t *testing.T) {
	v := mustCompile(t, map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{"type": "string"},
			"age":  map[string]any{"type": "integer"},
		},
		"required": []any{"name"},
	})
	wantAccept(t, v, map[string]any{"name": "ok"})
	wantAccept(t, v, map[string]any{"name": "ok", "age": 3})
	wantReject(t, v, map[string]any{"age": 3}, katachi.CodeRequired)
	wantReject(t, v, map[string]any{"name": 1}, katachi.CodeInvalidType)
	wantReject(t, v, []any{}, katachi.CodeInvalidType)
}

func TestObject_RequiredNameNeedNotBeDeclared(t *testing.T) {
	v := mustCompile(t, map[string]any{"type": "object", "required": []any{"token"}})
	wantAccept(t, v, map[string]any{"token": nil})
	wantReject(t, v, map[string]any{}, katachi.CodeRequired)
}

func TestObject_RequiredIssue_PathPointsAtName(t *testing.T) {
	v := mustCompile(t, map[string]any{"type": "object", "required": []any{"name"}})
	_, err := v.Validate(context.Background(), map[string]any{})
	iss, ok := katachi.AsIssues(err)
	if !ok || iss[0].Path != "/name" {
		t.Fatalf("want issue at /name, got %v", err)
	}
}

func TestObject_AdditionalPropertiesFalse(t *testing.T) {
	v := mustCompile(t, map[string]any{
		"type":                 "object",
		"properties":           map[string]any{"a": map[string]any{"type": "number"}},
		"additionalProperties": false,
	})
	wantAccept(t, v, map[string]any{"a": 1})
	wantReject(t, v, map[string]any{"a": 1, "b": 2}, katachi.CodeUnknownKey)
}

func TestObject_AdditionalPropertiesSchema(t *testing.T) {
	v := mustCompile(t, map[string]any{
		"type":                 "object",
		"properties":           map[string]any{"a": map[string]any{"type": "number"}},
		"additionalProperties": map[string]any{"type": "string"},
	})
	wantAccept(t, v, map[string]any{"a": 1, "b": "ok"})
	wantReject(t, v, map[string]any{"a": 1, "b": 2}, katachi.CodeInvalidType)
}

func TestObject_PassthroughByDefault(t *testing.T) {
	v := mustCompile(t, map[string]any{"type": "object"})
	out, err := v.Validate(context.Background(), map[string]any{"extra": 1})
	if err != nil {
		t.Fatalf("rejected: %v", err)
	}
	m := out.(map[string]any)
	if m["extra"] != 1 {
		t.Fatalf("passthrough lost key: %#v", m)
	}
}

func TestObject_PropertyCountBounds(t *testing.T) {
	v := mustCompile(t, map[string]any{"type": "object", "minProperties": 1, "maxProperties": 2})
	wantAccept(t, v, map[string]any{"a": 1})
	wantAccept(t, v, map[string]any{"a": 1, "b": 2})
	wantReject(t, v, map[string]any{}, katachi.CodeTooSmall)
	wantReject(t, v, map[string]any{"a": 1, "b": 2, "c": 3}, katachi.CodeTooBig)
}

func TestObject_NestedIssue_PathIsJSONPointer(t *testing.T) {
	v := mustCompile(t, map[string]any{
		"type": "object",
		"properties": map[string]any{
			"items": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "object", "properties": map[string]any{"price": map[string]any{"type": "number"}}},
			},
		},
	})
	in := map[string]any{"items": []any{
		map[string]any{"price": 1},
		map[string]any{"price": "oops"},
	}}
	_, err := v.Validate(context.Background(), in)
	iss, ok := katachi.AsIssues(err)
	if !ok || iss[0].Path != "/items/1/price" {
		t.Fatalf("want issue at /items/1/price, got %v", err)
	}
}

func TestObject_KeywordsImplyObjectKind(t *testing.T) {
	v := mustCompile(t, map[string]any{"minProperties": 1})
	wantAccept(t, v, map[string]any{"a": 1})
	wantReject(t, v, 42, katachi.CodeInvalidType)
}
