package jsonschema

import (
	katachi "github.com/kadomatsu/katachi"
)

// Keyword groups that imply a kind when no explicit type is present, and that
// count as admissibility-affecting when deciding between "never" and "any".
var (
	stringShapeKeywords = []string{"minLength", "maxLength", "pattern"}
	numberShapeKeywords = []string{"minimum", "maximum", "exclusiveMinimum", "exclusiveMaximum", "multipleOf"}
	arrayShapeKeywords  = []string{"items", "prefixItems", "minItems", "maxItems"}
	objectShapeKeywords = []string{"properties", "required", "additionalProperties", "patternProperties", "minProperties", "maxProperties"}
)

// hasAnyKeyword reports whether node carries any of the given keywords.
func hasAnyKeyword(node map[string]any, keys []string) bool {
	for _, k := range keys {
		if _, ok := node[k]; ok {
			return true
		}
	}
	return false
}

// hasShapeKeywords reports whether node carries any keyword that participates
// in kind admissibility. Refinement-only keywords (uniqueItems, contains,
// not, combinators) and benign annotations deliberately do not count: a node
// with none of these compiles to the unconstrained validator.
func hasShapeKeywords(node map[string]any) bool {
	if hasAnyKeyword(node, []string{"const", "enum", "type"}) {
		return true
	}
	if hasAnyKeyword(node, stringShapeKeywords) ||
		hasAnyKeyword(node, numberShapeKeywords) ||
		hasAnyKeyword(node, arrayShapeKeywords) ||
		hasAnyKeyword(node, objectShapeKeywords) {
		return true
	}
	if f, _ := node["format"].(string); f == formatBinary {
		return true
	}
	return false
}

const formatBinary = "binary"

// intKeyword reads an integer-valued keyword, tolerating json.Number, floats
// and Go ints in hand-built documents.
func intKeyword(node map[string]any, key string) (int, bool) {
	raw, ok := node[key]
	if !ok {
		return 0, false
	}
	f, ok := katachi.AsNumber(raw)
	if !ok || !katachi.IsIntegral(raw) {
		return 0, false
	}
	return int(f), true
}

// floatKeyword reads a numeric keyword.
func floatKeyword(node map[string]any, key string) (float64, bool) {
	raw, ok := node[key]
	if !ok {
		return 0, false
	}
	return katachi.AsNumber(raw)
}

// stringList extracts the string members of a list-valued keyword.
func stringList(raw any) []string {
	switch t := raw.(type) {
	case []string:
		return append([]string(nil), t...)
	case []any:
		var names []string
		for _, m := range t {
			if s, ok := m.(string); ok {
				names = append(names, s)
			}
		}
		return names
	default:
		return nil
	}
}
