package validation

import (
	"strings"

	"github.com/km-arc/go-jsvalidation/framework/validation/rule"
)

// sizeRules have one catalog line per attribute type.
var sizeRules = map[string]bool{
	"Size": true, "Between": true, "Min": true, "Max": true,
	"Gt": true, "Gte": true, "Lt": true, "Lte": true,
}

// IsSizeRule reports whether name (studly) is a size-class rule.
func IsSizeRule(name string) bool { return sizeRules[name] }

// ResolveMessage returns the unreplaced message for field and rule. The
// first match wins:
//
//  1. inline override "field.rule"
//  2. inline override "rule"
//  3. catalog "validation.custom.field.rule"
//  4. catalog "validation.rule.{type}" for size rules
//  5. catalog "validation.rule"
//  6. fallback override "field.rule" / "rule"
//  7. the key "validation.rule" itself
func (v *Validator) ResolveMessage(field, name string, _ []string) string {
	key := rule.Snake(name)

	if msg, ok := inlineMessage(v.customMessages, field, key); ok {
		return msg
	}
	if msg, ok := v.trans("validation.custom." + field + "." + key); ok {
		return msg
	}
	if sizeRules[name] {
		if msg, ok := v.trans("validation." + key + "." + string(v.AttributeType(field))); ok {
			return msg
		}
	}
	if msg, ok := v.trans("validation." + key); ok {
		return msg
	}
	if msg, ok := inlineMessage(v.fallbackMessages, field, key); ok {
		return msg
	}
	return "validation." + key
}

// inlineMessage checks for an attribute specific line first, then a
// general line for the rule.
func inlineMessage(source map[string]string, field, key string) (string, bool) {
	for _, k := range []string{field + "." + key, key} {
		if msg, ok := source[k]; ok {
			return msg, true
		}
	}
	return "", false
}

func (v *Validator) trans(key string) (string, bool) {
	line := v.translator.Trans(key)
	return line, line != key
}

// DisplayAttribute returns the label shown for field: a custom attribute,
// then the catalog "validation.attributes.field", then the field name
// with underscores as spaces.
func (v *Validator) DisplayAttribute(field string) string {
	if label, ok := v.customAttributes[field]; ok {
		return label
	}
	if label, ok := v.trans("validation.attributes." + field); ok {
		return label
	}
	return strings.ReplaceAll(rule.Snake(field), "_", " ")
}

// DisplayValue returns the label for a value of field, from the catalog
// "validation.values.field.value" when present.
func (v *Validator) DisplayValue(field, value string) string {
	if label, ok := v.trans("validation.values." + field + "." + value); ok {
		return label
	}
	return value
}
