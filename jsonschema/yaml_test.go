package jsonschema_test

import (
	"testing"

	katachi "github.com/kadomatsu/katachi"
	"github.com/kadomatsu/katachi/jsonschema"
)

func TestCompileYAML_MappingSchema(t *testing.T) {
	src := []byte(`
type: object
properties:
  name:
    type: string
required:
  - name
additionalProperties: false
`)
	v, err := jsonschema.CompileYAML(src)
	if err != nil {
		t.Fatalf("compile err: %v", err)
	}
	wantAccept(t, v, map[string]any{"name": "ok"})
	wantReject(t, v, map[string]any{"name": "ok", "zzz": 1}, katachi.CodeUnknownKey)
	wantReject(t, v, map[string]any{}, katachi.CodeRequired)
}

func TestCompileYAML_BooleanSchema(t *testing.T) {
	v, err := jsonschema.CompileYAML([]byte(`false`))
	if err != nil {
		t.Fatalf("compile err: %v", err)
	}
	wantReject(t, v, "anything", katachi.CodeNever)
}

func TestCompileYAML_MultiDocument_UsesFirstSchema(t *testing.T) {
	src := []byte(`---
type: string
minLength: 2
---
type: number
`)
	v, err := jsonschema.CompileYAML(src)
	if err != nil {
		t.Fatalf("compile err: %v", err)
	}
	wantAccept(t, v, "ok")
	wantReject(t, v, 3, katachi.CodeInvalidType)
}

func TestCompileYAML_SkipsNonSchemaDocuments(t *testing.T) {
	src := []byte(`---
- just
- a
- list
---
type: integer
`)
	v, err := jsonschema.CompileYAML(src)
	if err != nil {
		t.Fatalf("compile err: %v", err)
	}
	wantAccept(t, v, 7)
	wantReject(t, v, 1.5, katachi.CodeInvalidType)
}

func TestCompileYAML_NoSchemaDocument_Error(t *testing.T) {
	if _, err := jsonschema.CompileYAML([]byte(`[1, 2, 3]`)); err == nil {
		t.Fatalf("expected error when no schema document exists")
	}
}

func TestCompileYAML_NestedSchemas(t *testing.T) {
	src := []byte(`
type: object
properties:
  tags:
    type: array
    items:
      type: string
    uniqueItems: true
`)
	v, err := jsonschema.CompileYAML(src)
	if err != nil {
		t.Fatalf("compile err: %v", err)
	}
	wantAccept(t, v, map[string]any{"tags": []any{"a", "b"}})
	wantReject(t, v, map[string]any{"tags": []any{"a", "a"}}, katachi.CodeNotUnique)
}
