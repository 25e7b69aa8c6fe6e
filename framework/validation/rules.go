package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/km-arc/go-jsvalidation/framework/validation/rule"
)

// ErrInvalidRules is returned when a rule declaration is not a mapping of
// field → rules.
var ErrInvalidRules = errors.New("validation: rules must map fields to rule lists")

// Rules is a map of field → pipe-separated rule string.
// e.g. Rules{"email": "required|email", "age": "required|numeric|min:18"}
//
// Fields are visited in lexical order. Use RuleSet when order matters.
type Rules map[string]string

// FieldRules is the parsed, ordered rule list of a single field.
type FieldRules struct {
	Field string
	Rules []rule.Rule
}

// RuleSet is an ordered field → rules declaration. Order determines the
// order rules and messages are emitted in.
type RuleSet []FieldRules

// Field builds a FieldRules entry from raw declarations (strings, or
// []string / []any array forms).
//
//	validation.RuleSet{
//	    validation.Field("email", "required", "email"),
//	    validation.Field("age", "numeric", []any{"min", 18}),
//	}
func Field(name string, raw ...any) FieldRules {
	fr := FieldRules{Field: name, Rules: make([]rule.Rule, 0, len(raw))}
	for _, r := range raw {
		if s, ok := r.(string); ok && strings.Contains(s, "|") {
			fr.Rules = append(fr.Rules, parsePiped(s)...)
			continue
		}
		fr.Rules = append(fr.Rules, rule.Parse(r))
	}
	return fr
}

// NewRuleSet normalises a rule declaration into a RuleSet.
//
// Supported inputs: RuleSet, []FieldRules, Rules, map[string]string,
// map[string][]string, map[string][]any and map[string]any. Map inputs are
// ordered by field name.
func NewRuleSet(decl any) (RuleSet, error) {
	switch d := decl.(type) {
	case RuleSet:
		return d.clone(), nil
	case []FieldRules:
		return RuleSet(d).clone(), nil
	case Rules:
		return fromMap(map[string]string(d), func(v string) ([]any, error) { return []any{v}, nil })
	case map[string]string:
		return fromMap(d, func(v string) ([]any, error) { return []any{v}, nil })
	case map[string][]string:
		return fromMap(d, func(v []string) ([]any, error) {
			out := make([]any, len(v))
			for i, s := range v {
				out[i] = s
			}
			return out, nil
		})
	case map[string][]any:
		return fromMap(d, func(v []any) ([]any, error) { return v, nil })
	case map[string]any:
		return fromMap(d, func(v any) ([]any, error) {
			switch rv := v.(type) {
			case string:
				return []any{rv}, nil
			case []string:
				out := make([]any, len(rv))
				for i, s := range rv {
					out[i] = s
				}
				return out, nil
			case []any:
				return rv, nil
			}
			return nil, fmt.Errorf("%w: unsupported rule list %T", ErrInvalidRules, v)
		})
	}
	return nil, fmt.Errorf("%w: got %T", ErrInvalidRules, decl)
}

func fromMap[V any](m map[string]V, list func(V) ([]any, error)) (RuleSet, error) {
	fields := make([]string, 0, len(m))
	for f := range m {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	set := make(RuleSet, 0, len(fields))
	for _, f := range fields {
		raw, err := list(m[f])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f, err)
		}
		set = append(set, Field(f, raw...))
	}
	return set, nil
}

func parsePiped(s string) []rule.Rule {
	parts := strings.Split(s, "|")
	out := make([]rule.Rule, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		out = append(out, rule.Parse(p))
	}
	return out
}

// Fields returns the field names in declaration order.
func (s RuleSet) Fields() []string {
	out := make([]string, len(s))
	for i, fr := range s {
		out[i] = fr.Field
	}
	return out
}

// Get returns the rules declared for field.
func (s RuleSet) Get(field string) ([]rule.Rule, bool) {
	for _, fr := range s {
		if fr.Field == field {
			return fr.Rules, true
		}
	}
	return nil, false
}

// Find returns the first rule of field whose name is one of names.
func (s RuleSet) Find(field string, names ...string) (rule.Rule, bool) {
	rules, _ := s.Get(field)
	for _, r := range rules {
		if r.Is(names...) {
			return r, true
		}
	}
	return rule.Rule{}, false
}

// Has reports whether field declares any of the named rules.
func (s RuleSet) Has(field string, names ...string) bool {
	_, ok := s.Find(field, names...)
	return ok
}

// Only returns the subset of s declared for fields, in declaration order.
func (s RuleSet) Only(fields ...string) RuleSet {
	out := make(RuleSet, 0, len(fields))
	for _, fr := range s {
		for _, f := range fields {
			if fr.Field == f {
				out = append(out, fr)
				break
			}
		}
	}
	return out.clone()
}

func (s RuleSet) clone() RuleSet {
	out := make(RuleSet, len(s))
	for i, fr := range s {
		rules := make([]rule.Rule, len(fr.Rules))
		for j, r := range fr.Rules {
			rules[j] = rule.Rule{Name: r.Name, Parameters: append([]string(nil), r.Parameters...)}
		}
		out[i] = FieldRules{Field: fr.Field, Rules: rules}
	}
	return out
}
