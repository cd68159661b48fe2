package jsonschema_test

import (
	"context"
	"testing"

	katachi "github.com/kadomatsu/katachi"
	"github.com/kadomatsu/katachi/internal/deepeq"
	"github.com/kadomatsu/katachi/jsonschema"
)

func TestCompile_TrueSchema_AcceptsEverything(t *testing.T) {
	ctx := context.Background()
	v, err := jsonschema.Compile(true)
	if err != nil {
		t.Fatalf("compile err: %v", err)
	}
	for _, in := range []any{"a", 1, true, nil, []any{1}, map[string]any{"k": 1}} {
		if _, err := v.Validate(ctx, in); err != nil {
			t.Fatalf("true schema rejected %#v: %v", in, err)
		}
	}
}

func TestCompile_FalseSchema_RejectsEverything(t *testing.T) {
	ctx := context.Background()
	v, err := jsonschema.Compile(false)
	if err != nil {
		t.Fatalf("compile err: %v", err)
	}
	for _, in := range []any{"a", 1, nil, map[string]any{}} {
		_, err := v.Validate(ctx, in)
		if err == nil {
			t.Fatalf("false schema accepted %#v", in)
		}
		iss, ok := katachi.AsIssues(err)
		if !ok || iss[0].Code != katachi.CodeNever {
			t.Fatalf("want never issue, got %v", err)
		}
	}
}

func TestCompile_EmptySchema_AcceptsEverything(t *testing.T) {
	ctx := context.Background()
	v, err := jsonschema.Compile(map[string]any{})
	if err != nil {
		t.Fatalf("compile err: %v", err)
	}
	if _, err := v.Validate(ctx, map[string]any{"free": "form"}); err != nil {
		t.Fatalf("empty schema rejected: %v", err)
	}
}

func TestCompile_AnnotationOnlySchema_AcceptsEverything(t *testing.T) {
	ctx := context.Background()
	v, err := jsonschema.Compile(map[string]any{
		"title":       "anything",
		"description": "free-form",
		"$comment":    "no constraints here",
		"examples":    []any{1, "a"},
	})
	if err != nil {
		t.Fatalf("compile err: %v", err)
	}
	for _, in := range []any{42, "x", nil, []any{}} {
		if _, err := v.Validate(ctx, in); err != nil {
			t.Fatalf("annotation-only schema rejected %#v: %v", in, err)
		}
	}
}

func TestCompile_RawJSONBytes(t *testing.T) {
	ctx := context.Background()
	v, err := jsonschema.Compile([]byte(`{"type":"string","minLength":2}`))
	if err != nil {
		t.Fatalf("compile err: %v", err)
	}
	if _, err := v.Validate(ctx, "ok"); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
	if _, err := v.Validate(ctx, "x"); err == nil {
		t.Fatalf("expected too_short")
	}
}

func TestCompile_RawJSONBytes_InvalidJSON(t *testing.T) {
	if _, err := jsonschema.Compile([]byte(`{`)); err == nil {
		t.Fatalf("expected compile error on invalid JSON")
	}
}

func TestCompile_RawJSONBytes_NonSchemaRoot(t *testing.T) {
	if _, err := jsonschema.Compile([]byte(`[1,2]`)); err == nil {
		t.Fatalf("expected compile error on array root")
	}
}

func TestCompile_NilSchema_Error(t *testing.T) {
	if _, err := jsonschema.Compile(nil); err == nil {
		t.Fatalf("expected compile error on nil schema")
	}
}

func TestCompile_EmptyEnum_RejectsEverything(t *testing.T) {
	ctx := context.Background()
	v, err := jsonschema.Compile(map[string]any{"enum": []any{}})
	if err != nil {
		t.Fatalf("compile err: %v", err)
	}
	for _, in := range []any{"a", 1, nil} {
		if _, err := v.Validate(ctx, in); err == nil {
			t.Fatalf("empty enum accepted %#v", in)
		}
	}
}

func TestCompile_EmptyEnumWithType_DefersToType(t *testing.T) {
	ctx := context.Background()
	v, err := jsonschema.Compile(map[string]any{"enum": []any{}, "type": "string"})
	if err != nil {
		t.Fatalf("compile err: %v", err)
	}
	if _, err := v.Validate(ctx, "hello"); err != nil {
		t.Fatalf("string rejected: %v", err)
	}
	if _, err := v.Validate(ctx, 5); err == nil {
		t.Fatalf("number accepted despite type string")
	}
}

// Compiling the same document twice must yield behaviorally identical
// validators: same accept/reject decision and same output for a shared corpus.
func TestCompile_Deterministic_AcrossCompilations(t *testing.T) {
	ctx := context.Background()
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{"type": "string", "minLength": 1},
			"age":  map[string]any{"type": "integer", "minimum": 0, "default": 0},
			"tags": map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "uniqueItems": true},
		},
		"required":             []any{"name"},
		"additionalProperties": false,
	}
	v1, err := jsonschema.Compile(schema)
	if err != nil {
		t.Fatalf("compile 1 err: %v", err)
	}
	v2, err := jsonschema.Compile(schema)
	if err != nil {
		t.Fatalf("compile 2 err: %v", err)
	}
	corpus := []any{
		map[string]any{"name": "a"},
		map[string]any{"name": "a", "age": 3},
		map[string]any{"name": "a", "tags": []any{"x", "x"}},
		map[string]any{"age": 3},
		map[string]any{"name": "a", "zzz": 1},
		"not an object",
	}
	for _, in := range corpus {
		o1, e1 := v1.Validate(ctx, in)
		o2, e2 := v2.Validate(ctx, in)
		if (e1 == nil) != (e2 == nil) {
			t.Fatalf("divergent verdicts for %#v: %v vs %v", in, e1, e2)
		}
		if e1 == nil && !deepeq.Equal(o1, o2) {
			t.Fatalf("divergent outputs for %#v: %#v vs %#v", in, o1, o2)
		}
	}
}

func TestCompileWithDiag_NoWarningsOnCleanSchema(t *testing.T) {
	_, diag, err := jsonschema.CompileWithDiag(map[string]any{"type": "string"})
	if err != nil {
		t.Fatalf("compile err: %v", err)
	}
	if diag.HasWarnings() {
		t.Fatalf("unexpected warnings: %v", diag.Warnings())
	}
}
