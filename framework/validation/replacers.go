package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// replacer fills rule-specific placeholders in message.
type replacer func(v *Validator, message, field string, params []string) string

var replacers = map[string]replacer{
	"Between":            replaceMinMax,
	"DigitsBetween":      replaceMinMax,
	"Min":                replaceOne(":min"),
	"Max":                replaceOne(":max"),
	"Size":               replaceOne(":size"),
	"Digits":             replaceOne(":digits"),
	"In":                 replaceValues,
	"NotIn":              replaceValues,
	"Mimes":              replaceList,
	"Mimetypes":          replaceList,
	"Same":               replaceOther,
	"Different":          replaceOther,
	"RequiredWith":       replaceFields,
	"RequiredWithAll":    replaceFields,
	"RequiredWithout":    replaceFields,
	"RequiredWithoutAll": replaceFields,
	"RequiredIf":         replaceRequiredIf,
	"RequiredUnless":     replaceRequiredUnless,
	"Gt":                 replaceComparison,
	"Gte":                replaceComparison,
	"Lt":                 replaceComparison,
	"Lte":                replaceComparison,
}

// ApplyReplacements substitutes :attribute (and its :Attribute / :ATTRIBUTE
// variants) and then runs the rule's replacer, if one is registered.
func (v *Validator) ApplyReplacements(message, field, name string, params []string) string {
	label := v.DisplayAttribute(field)
	message = strings.NewReplacer(
		":attribute", label,
		":Attribute", upperFirst(label),
		":ATTRIBUTE", strings.ToUpper(label),
	).Replace(message)

	if r, ok := replacers[name]; ok {
		message = r(v, message, field, params)
	}
	return message
}

func replaceOne(placeholder string) replacer {
	return func(_ *Validator, message, _ string, p []string) string {
		return strings.ReplaceAll(message, placeholder, param(p, 0))
	}
}

func replaceMinMax(_ *Validator, message, _ string, p []string) string {
	return strings.NewReplacer(":min", param(p, 0), ":max", param(p, 1)).Replace(message)
}

func replaceValues(v *Validator, message, field string, p []string) string {
	values := make([]string, len(p))
	for i, value := range p {
		values[i] = v.DisplayValue(field, value)
	}
	return strings.ReplaceAll(message, ":values", strings.Join(values, ", "))
}

func replaceList(_ *Validator, message, _ string, p []string) string {
	return strings.ReplaceAll(message, ":values", strings.Join(p, ", "))
}

func replaceOther(v *Validator, message, _ string, p []string) string {
	return strings.ReplaceAll(message, ":other", v.DisplayAttribute(param(p, 0)))
}

func replaceFields(v *Validator, message, _ string, p []string) string {
	labels := make([]string, len(p))
	for i, f := range p {
		labels[i] = v.DisplayAttribute(f)
	}
	return strings.ReplaceAll(message, ":values", strings.Join(labels, " / "))
}

// replaceRequiredIf reads the other field's current value, so callers
// rendering a message ahead of input install it through WithOverlay.
func replaceRequiredIf(v *Validator, message, _ string, p []string) string {
	other := param(p, 0)
	return strings.NewReplacer(
		":other", v.DisplayAttribute(other),
		":value", v.DisplayValue(other, v.data[other]),
	).Replace(message)
}

func replaceRequiredUnless(v *Validator, message, _ string, p []string) string {
	other := param(p, 0)
	values := make([]string, 0, len(p))
	for _, value := range p[min(1, len(p)):] {
		values = append(values, v.DisplayValue(other, value))
	}
	return strings.NewReplacer(
		":other", v.DisplayAttribute(other),
		":values", strings.Join(values, ", "),
	).Replace(message)
}

func replaceComparison(v *Validator, message, _ string, p []string) string {
	value := param(p, 0)
	if !isNumeric(value) && value != "" {
		value = v.DisplayAttribute(value)
	}
	return strings.ReplaceAll(message, ":value", value)
}

func upperFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}
