package jsvalidation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/km-arc/go-jsvalidation/framework/validation"
	"github.com/km-arc/go-jsvalidation/framework/validation/rule"
)

// Client bucket names, dispatched by the browser-side plugin.
const (
	BucketDefault = "laravelValidation"
	BucketRemote  = "laravelValidationRemote"
)

// ErrMissingParameters is returned when a rule lacks the parameters its
// client form needs.
var ErrMissingParameters = errors.New("jsvalidation: missing rule parameters")

// Mapping is the client form of a server rule.
type Mapping struct {
	// Field the rule is registered under; may differ from the declaring field.
	Field      string
	Bucket     string
	Parameters []string
}

// mapFunc reshapes parameters for the client and may redirect the rule to
// another field.
type mapFunc func(field string, params []string) (string, []string, error)

var ruleMappers = map[string]mapFunc{
	"Confirmed":          mapConfirmed,
	"Same":               mapFieldRefs(1),
	"Different":          mapFieldRefs(1),
	"RequiredWith":       mapFieldRefs(1),
	"RequiredWithAll":    mapFieldRefs(1),
	"RequiredWithout":    mapFieldRefs(1),
	"RequiredWithoutAll": mapFieldRefs(1),
	"RequiredIf":         mapConditional(2),
	"RequiredUnless":     mapConditional(1),
	"Gt":                 mapComparison,
	"Gte":                mapComparison,
	"Lt":                 mapComparison,
	"Lte":                mapComparison,
	"Regex":              mapRegex,
}

// remoteRules can only be answered by the server.
var remoteRules = map[string]bool{
	"ActiveUrl": true,
	"Exists":    true,
	"Unique":    true,
}

// Mapper decides whether a server rule has a client-side equivalent.
// It is a pure function of its input and its static configuration.
type Mapper struct {
	// Native reports whether the server can evaluate a rule by name.
	Native func(name string) bool
	// Remote routes server-only rules to BucketRemote.
	Remote bool
}

// Map returns the client mapping of r declared on field. ok is false when
// the rule has no client form and must be dropped.
func (m Mapper) Map(field string, r rule.Rule) (mapping Mapping, ok bool, err error) {
	if m.Remote && remoteRules[r.Name] {
		return Mapping{Field: field, Bucket: BucketRemote, Parameters: []string{rule.InputName(field)}}, true, nil
	}

	if fn, found := ruleMappers[r.Name]; found {
		target, params, err := fn(field, r.Parameters)
		if err != nil {
			return Mapping{}, false, fmt.Errorf("%s on %q: %w", r.Key(), field, err)
		}
		return Mapping{Field: target, Bucket: BucketDefault, Parameters: params}, true, nil
	}

	if m.Native != nil && m.Native(r.Name) {
		return Mapping{Field: field, Bucket: BucketDefault, Parameters: clone(r.Parameters)}, true, nil
	}
	return Mapping{}, false, nil
}

// mapConfirmed registers the rule on the confirmation input, pointing back
// at the original field.
func mapConfirmed(field string, _ []string) (string, []string, error) {
	return field + "_confirmation", []string{rule.InputName(field)}, nil
}

// mapFieldRefs treats every parameter as a field reference.
func mapFieldRefs(least int) mapFunc {
	return func(field string, params []string) (string, []string, error) {
		if len(params) < least {
			return "", nil, ErrMissingParameters
		}
		out := make([]string, len(params))
		for i, p := range params {
			out[i] = rule.InputName(p)
		}
		return field, out, nil
	}
}

// mapConditional treats the first parameter as a field reference and the
// rest as values.
func mapConditional(least int) mapFunc {
	return func(field string, params []string) (string, []string, error) {
		if len(params) < least {
			return "", nil, ErrMissingParameters
		}
		out := clone(params)
		out[0] = rule.InputName(params[0])
		return field, out, nil
	}
}

func mapComparison(field string, params []string) (string, []string, error) {
	if len(params) < 1 {
		return "", nil, ErrMissingParameters
	}
	ref := strings.TrimSpace(params[0])
	if _, err := strconv.ParseFloat(ref, 64); err != nil {
		ref = rule.InputName(ref)
	}
	return field, []string{ref}, nil
}

// mapRegex splits "/pattern/flags" so the client can build a RegExp.
func mapRegex(field string, params []string) (string, []string, error) {
	if len(params) < 1 || params[0] == "" {
		return "", nil, ErrMissingParameters
	}
	pattern, flags := validation.SplitPattern(params[0])
	return field, []string{pattern, flags}, nil
}

func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
