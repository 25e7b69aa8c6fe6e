package validation

import "github.com/km-arc/go-jsvalidation/framework/validation/rule"

// AttributeType is the inferred data type of a field, used to pick the
// size-rule message variant ("validation.min.numeric" vs ".string").
type AttributeType string

const (
	TypeNumeric AttributeType = "numeric"
	TypeArray   AttributeType = "array"
	TypeFile    AttributeType = "file"
	TypeString  AttributeType = "string"
)

var numericRules = []string{"Numeric", "Integer"}

// Classify infers a field's type from its rules: numeric rules win, then
// the array rule, then file-ness, else string.
func Classify(rules []rule.Rule, isFile bool) AttributeType {
	has := func(names ...string) bool {
		for _, r := range rules {
			if r.Is(names...) {
				return true
			}
		}
		return false
	}
	switch {
	case has(numericRules...):
		return TypeNumeric
	case has("Array"):
		return TypeArray
	case isFile:
		return TypeFile
	}
	return TypeString
}

// AttributeType classifies field against the validator's rules and files.
func (v *Validator) AttributeType(field string) AttributeType {
	rules, _ := v.rules.Get(field)
	return Classify(rules, v.IsFile(field))
}
