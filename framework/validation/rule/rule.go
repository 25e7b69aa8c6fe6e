package rule

import (
	"encoding/csv"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Rule is a parsed rule declaration: a studly-cased name plus its ordered
// parameters. "between:3,10" and []string{"between", "3", "10"} both
// parse to Rule{Name: "Between", Parameters: ["3", "10"]}.
type Rule struct {
	Name       string
	Parameters []string
}

// Parse extracts the rule name and parameters from a raw declaration.
//
// Accepted forms:
//   - string:   "max:3", "in:a,b,\"c,d\"", "regex:/^a,b$/"
//   - []string: {"max", "3"}
//   - []any:    {"max", 3}
//
// Parse never fails. Anything else degrades to its trimmed text with no
// parameters.
func Parse(raw any) Rule {
	switch r := raw.(type) {
	case Rule:
		return r
	case string:
		return parseString(r)
	case []string:
		return parseArray(r)
	case []any:
		parts := make([]string, len(r))
		for i, p := range r {
			parts[i] = fmt.Sprint(p)
		}
		return parseArray(parts)
	case nil:
		return Rule{}
	default:
		return Rule{Name: Studly(strings.TrimSpace(fmt.Sprint(r)))}
	}
}

func parseArray(parts []string) Rule {
	if len(parts) == 0 {
		return Rule{}
	}
	params := make([]string, len(parts)-1)
	copy(params, parts[1:])
	return Rule{Name: Studly(strings.TrimSpace(parts[0])), Parameters: params}
}

// The format follows {rule}:{parameters}. "max:3" means the value may
// only be three characters.
func parseString(s string) Rule {
	name, param, found := strings.Cut(s, ":")
	if !found {
		return Rule{Name: Studly(strings.TrimSpace(s))}
	}
	return Rule{
		Name:       Studly(strings.TrimSpace(name)),
		Parameters: parseParameters(name, param),
	}
}

// parseParameters keeps a regex pattern whole since it may contain commas.
// Every other list is read as CSV; records on later lines are appended.
func parseParameters(name, param string) []string {
	if strings.EqualFold(strings.TrimSpace(name), "regex") {
		return []string{param}
	}
	if param == "" {
		return []string{}
	}

	r := csv.NewReader(strings.NewReader(param))
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return strings.Split(param, ",")
	}
	out := []string{}
	for _, record := range records {
		out = append(out, record...)
	}
	return out
}

// Studly converts "alpha_num", "alpha-num", "ALPHA_NUM" and "alpha num" to
// "AlphaNum". Already studly names are left untouched.
func Studly(s string) string {
	if s == "" {
		return s
	}
	if strings.ContainsAny(s, "_- ") || s == strings.ToUpper(s) {
		s = strings.ToLower(s)
	}
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	s = cases.Title(language.Und, cases.NoLower).String(s)
	return strings.ReplaceAll(s, " ", "")
}

// Snake converts "AlphaNum" to "alpha_num". Catalog keys and inline
// overrides are keyed by the snake form.
func Snake(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Is reports whether r's name is one of names (studly form).
func (r Rule) Is(names ...string) bool {
	for _, n := range names {
		if r.Name == n {
			return true
		}
	}
	return false
}

// Key returns the snake-cased name used for catalog lookups.
func (r Rule) Key() string { return Snake(r.Name) }

// String renders the rule back to its "name:p1,p2" declaration.
func (r Rule) String() string {
	if len(r.Parameters) == 0 {
		return r.Key()
	}
	return r.Key() + ":" + strings.Join(r.Parameters, ",")
}

// InputName converts a dotted field to form-input notation:
// "user.address.city" → "user[address][city]".
func InputName(field string) string {
	head, rest, found := strings.Cut(field, ".")
	if !found {
		return field
	}
	return head + "[" + strings.ReplaceAll(rest, ".", "][") + "]"
}
