package jsonschema

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"

	"github.com/rivo/uniseg"

	katachi "github.com/kadomatsu/katachi"
	"github.com/kadomatsu/katachi/dsl"
	"github.com/kadomatsu/katachi/i18n"
)

// primitiveHandler is one step of the type-admissibility phase. Handlers run
// in the fixed chain order below and communicate only through the
// admissibility state.
type primitiveHandler interface {
	apply(c *converter, st *admissibility, node map[string]any) error
}

// Order is load-bearing: const narrows first, enum next, explicit type wins
// over both for disabling, binary-format detection must beat the generic
// string handler, and implicit enabling must precede every shape handler.
var primitiveChain = []primitiveHandler{
	constHandler{},
	enumHandler{},
	typeHandler{},
	binaryFormatHandler{},
	implicitKindHandler{},
	stringHandler{},
	numberHandler{},
	tupleHandler{},
	arrayHandler{},
	objectHandler{},
}

// constHandler restricts admissibility to the literal's own kind. Scalar
// literals become exact-equality validators; composite literals stay pending
// because the refinement phase performs a single deep-equality check instead
// of building a structural validator.
type constHandler struct{}

func (constHandler) apply(c *converter, st *admissibility, node map[string]any) error {
	lit, ok := node["const"]
	if !ok {
		return nil
	}
	k, composite, ok := kindOfValue(lit)
	if !ok {
		st.disableAll()
		return nil
	}
	st.disableExcept(k)
	if composite {
		st.pend(k)
		return nil
	}
	st.set(k, dsl.Literal(lit))
	return nil
}

// enumHandler groups the listed values by runtime kind. An empty list with no
// explicit type rejects everything; an empty list next to a type keyword
// defers to it. Kinds without members are disabled, scalar groups become
// exact-match validators, composite groups stay pending for the
// refinement-phase set check.
type enumHandler struct{}

func (enumHandler) apply(c *converter, st *admissibility, node map[string]any) error {
	raw, ok := node["enum"]
	if !ok {
		return nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	if len(list) == 0 {
		if _, hasType := node["type"]; !hasType {
			st.disableAll()
		}
		return nil
	}
	var byKind [kindCount][]any
	var composite [kindCount]bool
	for _, m := range list {
		k, comp, ok := kindOfValue(m)
		if !ok {
			continue
		}
		byKind[k] = append(byKind[k], m)
		if comp {
			composite[k] = true
		}
	}
	for k := kind(0); k < kindCount; k++ {
		switch k {
		case kindTuple:
			// The tuple interpretation only arises from a positional items
			// list over admitted arrays.
			if len(byKind[kindArray]) == 0 {
				st.disable(k)
			}
			continue
		case kindFile:
			if len(byKind[kindString]) == 0 {
				st.disable(k)
			}
			continue
		}
		members := byKind[k]
		if len(members) == 0 {
			st.disable(k)
			continue
		}
		if st.mode(k) != modeUnset {
			continue
		}
		if composite[k] {
			st.pend(k)
			continue
		}
		if len(members) == 1 {
			st.set(k, dsl.Literal(members[0]))
			continue
		}
		st.set(k, dsl.Enum(members...))
	}
	return nil
}

// typeHandler disables every kind the type keyword does not list and enables
// listed kinds with default bases when nothing narrower set them yet.
// "integer" is the number kind plus an integral constraint.
type typeHandler struct{}

func (typeHandler) apply(c *converter, st *admissibility, node map[string]any) error {
	raw, ok := node["type"]
	if !ok {
		return nil
	}
	var names []string
	switch t := raw.(type) {
	case string:
		names = []string{t}
	case []any:
		names = stringList(t)
	default:
		return nil
	}
	var listed [kindCount]bool
	integerOnly := false
	numberListed := false
	for _, name := range names {
		switch name {
		case "string":
			listed[kindString] = true
		case "number":
			listed[kindNumber] = true
			numberListed = true
		case "integer":
			listed[kindNumber] = true
			integerOnly = true
		case "boolean":
			listed[kindBool] = true
		case "null":
			listed[kindNull] = true
		case "array":
			listed[kindArray] = true
		case "object":
			listed[kindObject] = true
		}
	}
	// Derived kinds survive with their parents: tuple with array, file with
	// string. Unknown type names list nothing and degrade toward never.
	listed[kindTuple] = listed[kindArray]
	listed[kindFile] = listed[kindString]
	for k := kind(0); k < kindCount; k++ {
		if !listed[k] {
			st.disable(k)
		}
	}
	integral := integerOnly && !numberListed
	for k := kind(0); k < kindCount; k++ {
		if !listed[k] || k == kindTuple || k == kindFile {
			continue
		}
		if st.mode(k) == modeUnset {
			st.set(k, defaultBase(k, integral))
			continue
		}
		if k == kindNumber && integral && st.mode(k) == modeSet {
			st.set(k, dsl.Refine(st.validator(k), "integer", integralPredicate))
		}
	}
	return nil
}

func defaultBase(k kind, integral bool) katachi.Validator {
	switch k {
	case kindString:
		return dsl.String()
	case kindNumber:
		if integral {
			return dsl.Integer()
		}
		return dsl.Number()
	case kindBool:
		return dsl.Bool()
	case kindNull:
		return dsl.Null()
	case kindArray:
		return dsl.Array(dsl.Any())
	case kindObject:
		return dsl.Object().UnknownPassthrough().Build()
	default:
		return dsl.Any()
	}
}

func integralPredicate(ctx context.Context, v any) error {
	if !katachi.IsIntegral(v) {
		return katachi.Issues{{Path: "/", Code: katachi.CodeInvalidType, Message: i18n.T(katachi.CodeInvalidType, nil), Hint: "expected integer, got fractional number"}}
	}
	return nil
}

// binaryFormatHandler recognizes the binary-content marker before the generic
// string handler runs: it is a more specific interpretation of "string" that
// produces the file kind and retires the generic string kind.
type binaryFormatHandler struct{}

func (binaryFormatHandler) apply(c *converter, st *admissibility, node map[string]any) error {
	if f, _ := node["format"].(string); f != formatBinary {
		return nil
	}
	if st.mode(kindFile) == modeDisabled || st.mode(kindString) == modeDisabled {
		return nil
	}
	st.set(kindFile, dsl.Binary())
	st.disable(kindString)
	return nil
}

// implicitKindHandler enables kinds implied by shape keywords when no
// explicit type keyword is present. It must run before the shape handlers,
// which assume their kind is already enabled.
type implicitKindHandler struct{}

func (implicitKindHandler) apply(c *converter, st *admissibility, node map[string]any) error {
	if _, ok := node["type"]; ok {
		return nil
	}
	if hasAnyKeyword(node, stringShapeKeywords) && st.mode(kindString) == modeUnset {
		st.set(kindString, dsl.String())
	}
	if hasAnyKeyword(node, numberShapeKeywords) && st.mode(kindNumber) == modeUnset {
		st.set(kindNumber, dsl.Number())
	}
	if hasAnyKeyword(node, arrayShapeKeywords) && st.mode(kindArray) == modeUnset {
		st.set(kindArray, dsl.Array(dsl.Any()))
	}
	if hasAnyKeyword(node, objectShapeKeywords) && st.mode(kindObject) == modeUnset {
		st.set(kindObject, dsl.Object().UnknownPassthrough().Build())
	}
	return nil
}

// stringHandler layers length and pattern constraints onto an admitted string
// kind. Lengths count grapheme clusters, not code units: a multi-codepoint
// emoji is one unit. A malformed pattern is the one construction-time error.
type stringHandler struct{}

func (stringHandler) apply(c *converter, st *admissibility, node map[string]any) error {
	if st.mode(kindString) != modeSet {
		return nil
	}
	v := st.validator(kindString)
	if n, ok := intKeyword(node, "minLength"); ok {
		min := n
		v = dsl.Refine(v, "minLength", func(ctx context.Context, val any) error {
			s, ok := val.(string)
			if !ok {
				return nil
			}
			if g := uniseg.GraphemeClusterCount(s); g < min {
				return katachi.Issues{{Path: "/", Code: katachi.CodeTooShort, Message: i18n.T(katachi.CodeTooShort, nil), Params: map[string]any{"min": min, "got": g}}}
			}
			return nil
		})
	}
	if n, ok := intKeyword(node, "maxLength"); ok {
		max := n
		v = dsl.Refine(v, "maxLength", func(ctx context.Context, val any) error {
			s, ok := val.(string)
			if !ok {
				return nil
			}
			if g := uniseg.GraphemeClusterCount(s); g > max {
				return katachi.Issues{{Path: "/", Code: katachi.CodeTooLong, Message: i18n.T(katachi.CodeTooLong, nil), Params: map[string]any{"max": max, "got": g}}}
			}
			return nil
		})
	}
	if p, ok := node["pattern"].(string); ok {
		re, err := regexp.Compile(p)
		if err != nil {
			return fmt.Errorf("jsonschema: invalid pattern %q: %w", p, err)
		}
		v = dsl.Refine(v, "pattern", func(ctx context.Context, val any) error {
			s, ok := val.(string)
			if !ok {
				return nil
			}
			if !re.MatchString(s) {
				return katachi.Issues{{Path: "/", Code: katachi.CodePattern, Message: i18n.T(katachi.CodePattern, nil), Params: map[string]any{"pattern": p}}}
			}
			return nil
		})
	}
	st.set(kindString, v)
	return nil
}

// numberHandler layers range and divisibility constraints onto an admitted
// number kind. A zero divisor makes multipleOf unsatisfiable for every value.
type numberHandler struct{}

func (numberHandler) apply(c *converter, st *admissibility, node map[string]any) error {
	if st.mode(kindNumber) != modeSet {
		return nil
	}
	v := st.validator(kindNumber)
	type bound struct {
		key       string
		code      string
		violates  func(got, limit float64) bool
		exclusive bool
	}
	bounds := []bound{
		{key: "minimum", code: katachi.CodeTooSmall, violates: func(got, limit float64) bool { return got < limit }},
		{key: "maximum", code: katachi.CodeTooBig, violates: func(got, limit float64) bool { return got > limit }},
		{key: "exclusiveMinimum", code: katachi.CodeTooSmall, violates: func(got, limit float64) bool { return got <= limit }, exclusive: true},
		{key: "exclusiveMaximum", code: katachi.CodeTooBig, violates: func(got, limit float64) bool { return got >= limit }, exclusive: true},
	}
	for _, b := range bounds {
		limit, ok := floatKeyword(node, b.key)
		if !ok {
			continue
		}
		b := b
		v = dsl.Refine(v, b.key, func(ctx context.Context, val any) error {
			f, ok := katachi.AsNumber(val)
			if !ok {
				return nil
			}
			if b.violates(f, limit) {
				return katachi.Issues{{Path: "/", Code: b.code, Message: i18n.T(b.code, nil), Params: map[string]any{b.key: limit, "got": f}}}
			}
			return nil
		})
	}
	if divisor, ok := floatKeyword(node, "multipleOf"); ok {
		v = dsl.Refine(v, "multipleOf", func(ctx context.Context, val any) error {
			f, ok := katachi.AsNumber(val)
			if !ok {
				return nil
			}
			if divisor == 0 || math.Mod(f, divisor) != 0 {
				return katachi.Issues{{Path: "/", Code: katachi.CodeNotMultipleOf, Message: i18n.T(katachi.CodeNotMultipleOf, nil), Params: map[string]any{"multipleOf": divisor, "got": f}}}
			}
			return nil
		})
	}
	st.set(kindNumber, v)
	return nil
}

// tupleHandler resolves a positional items list before the generic array
// handler: the fixed-length tuple interpretation supersedes the homogeneous
// array one. Length bounds that cannot fit the tuple collapse the tuple
// branch to impossible while leaving other admitted kinds intact.
type tupleHandler struct{}

func (tupleHandler) apply(c *converter, st *admissibility, node map[string]any) error {
	raw, ok := node["items"].([]any)
	if !ok {
		return nil
	}
	if st.mode(kindArray) != modeSet {
		return nil
	}
	st.disable(kindArray)
	if st.mode(kindTuple) == modeDisabled {
		return nil
	}
	n := len(raw)
	if min, ok := intKeyword(node, "minItems"); ok && min > n {
		st.disable(kindTuple)
		return nil
	}
	if max, ok := intKeyword(node, "maxItems"); ok && max < n {
		st.disable(kindTuple)
		return nil
	}
	elems := make([]katachi.Validator, 0, n)
	for _, sub := range raw {
		ev, err := c.convert(sub)
		if err != nil {
			return err
		}
		elems = append(elems, ev)
	}
	st.set(kindTuple, dsl.Tuple(elems...))
	return nil
}

// arrayHandler builds the homogeneous-array base: element schema from a
// single-schema items, length bounds, and the items:false special case where
// only the empty array remains valid. When prefixItems is present the element
// slot stays unconstrained; the refinement phase routes positions below the
// prefix to their positional schema and the rest through items.
type arrayHandler struct{}

func (arrayHandler) apply(c *converter, st *admissibility, node map[string]any) error {
	if st.mode(kindArray) != modeSet {
		return nil
	}
	_, hasPrefix := node["prefixItems"]
	elem := dsl.Any()
	emptyOnly := false
	switch it := node["items"].(type) {
	case map[string]any:
		if !hasPrefix {
			ev, err := c.convert(it)
			if err != nil {
				return err
			}
			elem = ev
		}
	case bool:
		if !it && !hasPrefix {
			emptyOnly = true
		}
	}
	b := dsl.Array(elem)
	if min, ok := intKeyword(node, "minItems"); ok {
		b = b.Min(min)
	}
	if max, ok := intKeyword(node, "maxItems"); ok {
		b = b.Max(max)
	}
	if emptyOnly {
		b = b.Max(0)
	}
	st.set(kindArray, b)
	return nil
}

// objectHandler builds the structural object base: one sub-validator per
// declared property, required names (which need not be declared), the
// additional-key policy, and own-key count bounds. When patternProperties is
// present the base stays passthrough so the refinement phase can route
// undeclared keys through the patterns first.
type objectHandler struct{}

func (objectHandler) apply(c *converter, st *admissibility, node map[string]any) error {
	if st.mode(kindObject) != modeSet {
		return nil
	}
	b := dsl.Object()
	if props, ok := node["properties"].(map[string]any); ok {
		names := make([]string, 0, len(props))
		for name := range props {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			sub, err := c.convert(props[name])
			if err != nil {
				return err
			}
			b.Field(name, sub)
		}
	}
	if req := stringList(node["required"]); len(req) > 0 {
		b.Require(req...)
	}
	if _, hasPatterns := node["patternProperties"].(map[string]any); hasPatterns {
		b.UnknownPassthrough()
	} else {
		switch ap := node["additionalProperties"].(type) {
		case bool:
			if ap {
				b.UnknownPassthrough()
			} else {
				b.UnknownStrict()
			}
		case map[string]any:
			sub, err := c.convert(ap)
			if err != nil {
				return err
			}
			b.UnknownWith(sub)
		default:
			b.UnknownPassthrough()
		}
	}
	if n, ok := intKeyword(node, "minProperties"); ok {
		b.MinProps(n)
	}
	if n, ok := intKeyword(node, "maxProperties"); ok {
		b.MaxProps(n)
	}
	st.set(kindObject, b.Build())
	return nil
}
