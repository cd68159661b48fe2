package jsonschema

import (
	"context"
	"regexp"
	"sort"
	"strconv"

	katachi "github.com/kadomatsu/katachi"
	"github.com/kadomatsu/katachi/dsl"
	"github.com/kadomatsu/katachi/i18n"
	"github.com/kadomatsu/katachi/internal/deepeq"
)

// refineHandler is one step of the refinement phase: it receives the
// composite validator built so far plus the original node and returns the
// (possibly rewrapped) validator.
type refineHandler interface {
	apply(c *converter, v katachi.Validator, node map[string]any) (katachi.Validator, error)
}

var refineChain = []refineHandler{
	protoGuardHandler{},
	compositeLiteralHandler{},
	combinatorHandler{},
	prefixItemsHandler{},
	containsHandler{},
	patternPropsHandler{},
	uniqueItemsHandler{},
	notHandler{},
	defaultHandler{},
	descriptionHandler{},
}

// protoGuardHandler handles required lists naming __proto__ on schemas with
// no explicit type: structural object construction can silently drop or
// reinterpret that key, so the composite is replaced by a pass-through whose
// predicate checks own-key presence directly on the raw input map.
type protoGuardHandler struct{}

func (protoGuardHandler) apply(c *converter, v katachi.Validator, node map[string]any) (katachi.Validator, error) {
	req := stringList(node["required"])
	guarded := false
	for _, name := range req {
		if name == "__proto__" {
			guarded = true
			break
		}
	}
	if !guarded {
		return v, nil
	}
	if _, hasType := node["type"]; hasType {
		return v, nil
	}
	names := req
	return dsl.Refine(dsl.Any(), "required-own-keys", func(ctx context.Context, val any) error {
		m, ok := val.(map[string]any)
		if !ok {
			return katachi.Issues{{Path: "/", Code: katachi.CodeInvalidType, Message: i18n.T(katachi.CodeInvalidType, nil), Hint: "expected object"}}
		}
		var iss katachi.Issues
		for _, name := range names {
			if _, present := m[name]; !present {
				iss = katachi.AppendIssues(iss, katachi.Issue{Path: "/" + name, Code: katachi.CodeRequired, Message: i18n.T(katachi.CodeRequired, nil)})
			}
		}
		if len(iss) > 0 {
			return iss
		}
		return nil
	}), nil
}

// compositeLiteralHandler attaches the deferred deep-equality check for
// composite const literals and for enums carrying composite members: arrays
// compare order-sensitively, objects by key set and value.
type compositeLiteralHandler struct{}

func (compositeLiteralHandler) apply(c *converter, v katachi.Validator, node map[string]any) (katachi.Validator, error) {
	if lit, ok := node["const"]; ok {
		if _, composite, valid := kindOfValue(lit); valid && composite {
			want := lit
			return dsl.Refine(v, "const", func(ctx context.Context, val any) error {
				if !deepeq.Equal(val, want) {
					return katachi.Issues{{Path: "/", Code: katachi.CodeInvalidLiteral, Message: i18n.T(katachi.CodeInvalidLiteral, nil)}}
				}
				return nil
			}), nil
		}
		return v, nil
	}
	list, ok := node["enum"].([]any)
	if !ok || len(list) == 0 {
		return v, nil
	}
	anyComposite := false
	for _, m := range list {
		if _, composite, valid := kindOfValue(m); valid && composite {
			anyComposite = true
			break
		}
	}
	if !anyComposite {
		return v, nil
	}
	allowed := list
	return dsl.Refine(v, "enum", func(ctx context.Context, val any) error {
		if !deepeq.In(val, allowed) {
			return katachi.Issues{{Path: "/", Code: katachi.CodeInvalidEnum, Message: i18n.T(katachi.CodeInvalidEnum, nil)}}
		}
		return nil
	}), nil
}

// combinatorHandler layers allOf/anyOf/oneOf. allOf intersects every branch
// with the base; anyOf intersects the base with the branch union so base-kind
// constraints stay enforced next to branch constraints. oneOf builds the same
// union as anyOf: branch exclusivity is not checked.
type combinatorHandler struct{}

func (combinatorHandler) apply(c *converter, v katachi.Validator, node map[string]any) (katachi.Validator, error) {
	if list, ok := node["allOf"].([]any); ok {
		for _, sub := range list {
			cv, err := c.convert(sub)
			if err != nil {
				return nil, err
			}
			v = dsl.Intersect(v, cv)
		}
	}
	for _, key := range []string{"anyOf", "oneOf"} {
		list, ok := node[key].([]any)
		if !ok || len(list) == 0 {
			continue
		}
		branches := make([]katachi.Validator, 0, len(list))
		for _, sub := range list {
			cv, err := c.convert(sub)
			if err != nil {
				return nil, err
			}
			branches = append(branches, cv)
		}
		v = dsl.Intersect(v, dsl.Union(branches...))
	}
	return v, nil
}

// prefixItemsHandler checks positions below the prefix length against their
// positional schema and later positions against the items schema, rejecting
// them outright when items is false. Non-array values pass vacuously.
type prefixItemsHandler struct{}

func (prefixItemsHandler) apply(c *converter, v katachi.Validator, node map[string]any) (katachi.Validator, error) {
	raw, ok := node["prefixItems"].([]any)
	if !ok {
		return v, nil
	}
	prefix := make([]katachi.Validator, 0, len(raw))
	for _, sub := range raw {
		cv, err := c.convert(sub)
		if err != nil {
			return nil, err
		}
		prefix = append(prefix, cv)
	}
	rejectExtras := false
	var extras katachi.Validator
	switch it := node["items"].(type) {
	case bool:
		rejectExtras = !it
	case map[string]any:
		cv, err := c.convert(it)
		if err != nil {
			return nil, err
		}
		extras = cv
	}
	return dsl.Refine(v, "prefixItems", func(ctx context.Context, val any) error {
		arr, ok := val.([]any)
		if !ok {
			return nil
		}
		var iss katachi.Issues
		for i, el := range arr {
			if i < len(prefix) {
				if _, err := prefix[i].Validate(ctx, el); err != nil {
					iss = katachi.AppendIssues(iss, katachi.PrefixIssues(err, "/"+strconv.Itoa(i))...)
				}
				continue
			}
			if rejectExtras {
				iss = katachi.AppendIssues(iss, katachi.Issue{Path: "/" + strconv.Itoa(i), Code: katachi.CodeTooLong, Message: i18n.T(katachi.CodeTooLong, nil), Hint: "no items allowed beyond prefix"})
				continue
			}
			if extras != nil {
				if _, err := extras.Validate(ctx, el); err != nil {
					iss = katachi.AppendIssues(iss, katachi.PrefixIssues(err, "/"+strconv.Itoa(i))...)
				}
			}
		}
		if len(iss) > 0 {
			return iss
		}
		return nil
	}), nil
}

// containsHandler counts elements matching the contains schema. minContains
// defaults to 1; an explicit 0 keeps the constraint vacuously satisfiable;
// maxContains caps the match count. Non-array values pass vacuously.
type containsHandler struct{}

func (containsHandler) apply(c *converter, v katachi.Validator, node map[string]any) (katachi.Validator, error) {
	sub, ok := node["contains"]
	if !ok {
		return v, nil
	}
	cv, err := c.convert(sub)
	if err != nil {
		return nil, err
	}
	min := 1
	if n, ok := intKeyword(node, "minContains"); ok {
		min = n
	}
	max := -1
	if n, ok := intKeyword(node, "maxContains"); ok {
		max = n
	}
	return dsl.Refine(v, "contains", func(ctx context.Context, val any) error {
		arr, ok := val.([]any)
		if !ok {
			return nil
		}
		count := 0
		for _, el := range arr {
			if _, err := cv.Validate(ctx, el); err == nil {
				count++
			}
		}
		if count < min {
			return katachi.Issues{{Path: "/", Code: katachi.CodeTooShort, Message: i18n.T(katachi.CodeTooShort, nil), Hint: "fewer matching elements than minContains", Params: map[string]any{"minContains": min, "got": count}}}
		}
		if max >= 0 && count > max {
			return katachi.Issues{{Path: "/", Code: katachi.CodeTooLong, Message: i18n.T(katachi.CodeTooLong, nil), Hint: "more matching elements than maxContains", Params: map[string]any{"maxContains": max, "got": count}}}
		}
		return nil
	}), nil
}

// patternPropsHandler routes keys outside the declared properties through the
// compiled patterns, first match wins; keys matching no pattern fall through
// to the additionalProperties policy. Patterns are tried in sorted order for
// determinism, and an unparsable pattern entry is skipped with a warning
// rather than failing compilation.
type patternPropsHandler struct{}

func (patternPropsHandler) apply(c *converter, v katachi.Validator, node map[string]any) (katachi.Validator, error) {
	pp, ok := node["patternProperties"].(map[string]any)
	if !ok || len(pp) == 0 {
		return v, nil
	}
	type compiledPattern struct {
		source string
		re     *regexp.Regexp
		sub    katachi.Validator
	}
	sources := make([]string, 0, len(pp))
	for p := range pp {
		sources = append(sources, p)
	}
	sort.Strings(sources)
	pats := make([]compiledPattern, 0, len(sources))
	for _, p := range sources {
		re, err := regexp.Compile(p)
		if err != nil {
			c.diag.warnf("jsonschema: skipping unparsable patternProperties pattern %q: %v", p, err)
			continue
		}
		sub, err := c.convert(pp[p])
		if err != nil {
			return nil, err
		}
		pats = append(pats, compiledPattern{source: p, re: re, sub: sub})
	}
	declared := map[string]struct{}{}
	if props, ok := node["properties"].(map[string]any); ok {
		for name := range props {
			declared[name] = struct{}{}
		}
	}
	rejectUnmatched := false
	var unmatched katachi.Validator
	switch ap := node["additionalProperties"].(type) {
	case bool:
		rejectUnmatched = !ap
	case map[string]any:
		cv, err := c.convert(ap)
		if err != nil {
			return nil, err
		}
		unmatched = cv
	}
	return dsl.Refine(v, "patternProperties", func(ctx context.Context, val any) error {
		m, ok := val.(map[string]any)
		if !ok {
			return nil
		}
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var iss katachi.Issues
		for _, k := range keys {
			if _, isDeclared := declared[k]; isDeclared {
				continue
			}
			matched := false
			for _, cp := range pats {
				if cp.re.MatchString(k) {
					matched = true
					if _, err := cp.sub.Validate(ctx, m[k]); err != nil {
						iss = katachi.AppendIssues(iss, katachi.PrefixIssues(err, "/"+k)...)
					}
					break
				}
			}
			if matched {
				continue
			}
			if rejectUnmatched {
				iss = katachi.AppendIssues(iss, katachi.Issue{Path: "/" + k, Code: katachi.CodeUnknownKey, Message: i18n.T(katachi.CodeUnknownKey, nil)})
				continue
			}
			if unmatched != nil {
				if _, err := unmatched.Validate(ctx, m[k]); err != nil {
					iss = katachi.AppendIssues(iss, katachi.PrefixIssues(err, "/"+k)...)
				}
			}
		}
		if len(iss) > 0 {
			return iss
		}
		return nil
	}), nil
}

// uniqueItemsHandler rejects arrays with two deeply equal elements.
// Non-array values pass vacuously.
type uniqueItemsHandler struct{}

func (uniqueItemsHandler) apply(c *converter, v katachi.Validator, node map[string]any) (katachi.Validator, error) {
	u, ok := node["uniqueItems"].(bool)
	if !ok || !u {
		return v, nil
	}
	return dsl.Refine(v, "uniqueItems", func(ctx context.Context, val any) error {
		arr, ok := val.([]any)
		if !ok {
			return nil
		}
		for i := 0; i < len(arr); i++ {
			for j := i + 1; j < len(arr); j++ {
				if deepeq.Equal(arr[i], arr[j]) {
					return katachi.Issues{{Path: "/" + strconv.Itoa(j), Code: katachi.CodeNotUnique, Message: i18n.T(katachi.CodeNotUnique, nil), Params: map[string]any{"firstIndex": i}}}
				}
			}
		}
		return nil
	}), nil
}

// notHandler requires the value to fail the compiled sub-schema.
type notHandler struct{}

func (notHandler) apply(c *converter, v katachi.Validator, node map[string]any) (katachi.Validator, error) {
	sub, ok := node["not"]
	if !ok {
		return v, nil
	}
	cv, err := c.convert(sub)
	if err != nil {
		return nil, err
	}
	return dsl.Refine(v, "not", func(ctx context.Context, val any) error {
		if _, err := cv.Validate(ctx, val); err == nil {
			return katachi.Issues{{Path: "/", Code: katachi.CodeNotAllowed, Message: i18n.T(katachi.CodeNotAllowed, nil)}}
		}
		return nil
	}), nil
}

// defaultHandler attaches the default value only when it satisfies the
// validator built so far; a failing default is dropped with a warning.
type defaultHandler struct{}

func (defaultHandler) apply(c *converter, v katachi.Validator, node map[string]any) (katachi.Validator, error) {
	def, ok := node["default"]
	if !ok {
		return v, nil
	}
	if _, err := v.Validate(context.Background(), def); err != nil {
		c.diag.warnf("jsonschema: default value does not satisfy the schema; not applied")
		return v, nil
	}
	return dsl.Default(v, def), nil
}

// descriptionHandler attaches description metadata last, after every
// constraint layer, so it never changes validation semantics.
type descriptionHandler struct{}

func (descriptionHandler) apply(c *converter, v katachi.Validator, node map[string]any) (katachi.Validator, error) {
	if desc, ok := node["description"].(string); ok && desc != "" {
		return dsl.Describe(v, desc), nil
	}
	return v, nil
}
