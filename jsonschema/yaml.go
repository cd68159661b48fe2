package jsonschema

import (
	"bytes"
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	katachi "github.com/kadomatsu/katachi"
)

// CompileYAML compiles the first schema document found in a (possibly
// multi-document) YAML stream. A document is a schema when it is a boolean or
// a mapping; other roots are skipped.
func CompileYAML(data []byte) (katachi.Validator, error) {
	v, _, err := CompileYAMLWithDiag(data)
	return v, err
}

// CompileYAMLWithDiag is CompileYAML plus compilation warnings.
func CompileYAMLWithDiag(data []byte) (katachi.Validator, Diag, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var node any
		if err := dec.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &simpleDiag{}, err
		}
		switch t := node.(type) {
		case bool:
			return CompileWithDiag(t)
		case map[string]any, map[any]any:
			m := yamlToStringMap(t)
			if m == nil {
				continue
			}
			return CompileWithDiag(m)
		}
	}
	return nil, &simpleDiag{}, errors.New("jsonschema: no schema document found in YAML input")
}

// yamlToStringMap converts YAML-decoded values (which may contain map[any]any)
// into JSON-like map[string]any recursively. Non-string keys are dropped;
// non-map roots return nil.
func yamlToStringMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = yamlNormalize(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = yamlNormalize(vv)
		}
		return out
	default:
		return nil
	}
}

func yamlNormalize(v any) any {
	switch t := v.(type) {
	case map[string]any, map[any]any:
		return yamlToStringMap(t)
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = yamlNormalize(t[i])
		}
		return arr
	default:
		return v
	}
}
