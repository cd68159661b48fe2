package jsonschema

import (
	"bytes"
	"errors"
	"fmt"

	gojson "github.com/goccy/go-json"

	katachi "github.com/kadomatsu/katachi"
	"github.com/kadomatsu/katachi/dsl"
)

// Compile builds a validator from a constraint schema. The input can be a
// decoded document (bool or map[string]any) or raw JSON bytes. A `true`
// schema accepts anything; `false` accepts nothing.
func Compile(schema any) (katachi.Validator, error) {
	v, _, err := CompileWithDiag(schema)
	return v, err
}

// CompileWithDiag is Compile plus the non-fatal warnings gathered while
// compiling (skipped patternProperties entries, defaults that failed their
// own schema).
func CompileWithDiag(schema any) (katachi.Validator, Diag, error) {
	d := &simpleDiag{}
	node, err := normalizeInput(schema)
	if err != nil {
		return nil, d, err
	}
	c := &converter{diag: d}
	v, err := c.convert(node)
	if err != nil {
		return nil, d, err
	}
	return v, d, nil
}

// normalizeInput accepts bool, map[string]any, or raw JSON bytes and returns
// a schema node ready for conversion.
func normalizeInput(schema any) (any, error) {
	switch t := schema.(type) {
	case nil:
		return nil, errors.New("jsonschema: nil schema")
	case bool:
		return t, nil
	case map[string]any:
		return t, nil
	case []byte:
		dec := gojson.NewDecoder(bytes.NewReader(t))
		dec.UseNumber()
		var doc any
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("jsonschema: invalid JSON: %w", err)
		}
		switch doc.(type) {
		case bool, map[string]any:
			return doc, nil
		default:
			return nil, fmt.Errorf("jsonschema: schema document must be a boolean or an object, got %T", doc)
		}
	default:
		return nil, fmt.Errorf("jsonschema: unsupported schema input %T", schema)
	}
}

// converter drives one compilation. Handlers call back into convert for every
// nested sub-schema; each recursive call builds its own admissibility state.
type converter struct {
	diag *simpleDiag
}

func (c *converter) convert(schema any) (katachi.Validator, error) {
	switch t := schema.(type) {
	case bool:
		if t {
			return dsl.Any(), nil
		}
		return dsl.Never(), nil
	case map[string]any:
		return c.convertNode(t)
	default:
		return nil, fmt.Errorf("jsonschema: unsupported schema node %T", schema)
	}
}

func (c *converter) convertNode(node map[string]any) (katachi.Validator, error) {
	st := newAdmissibility()
	for _, h := range primitiveChain {
		if err := h.apply(c, st, node); err != nil {
			return nil, err
		}
	}
	v := c.assemble(st, node)
	for _, h := range refineChain {
		nv, err := h.apply(c, v, node)
		if err != nil {
			return nil, err
		}
		v = nv
	}
	return v, nil
}

// assemble folds the finished admissibility state into one composite
// validator: the sole admitted kind directly, a union for several, the
// reject-all validator when constraints excluded every kind, and the
// unconstrained validator when the node carried no shape keywords at all.
func (c *converter) assemble(st *admissibility, node map[string]any) katachi.Validator {
	admitted := st.admitted()
	if len(admitted) == 0 {
		if hasShapeKeywords(node) {
			return dsl.Never()
		}
		return dsl.Any()
	}
	if len(admitted) == 1 {
		return admitted[0]
	}
	return dsl.Union(admitted...)
}
