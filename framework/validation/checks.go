package validation

import (
	"mime"
	"net/mail"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// check returns true if value satisfies the rule.
type check func(v *Validator, field, value string, params []string) bool

// checks is the native rule registry, keyed by studly rule name.
var checks map[string]check

// implicitRules run even when the field is empty.
var implicitRules = map[string]bool{
	"Required":           true,
	"RequiredWith":       true,
	"RequiredWithAll":    true,
	"RequiredWithout":    true,
	"RequiredWithoutAll": true,
	"RequiredIf":         true,
	"RequiredUnless":     true,
	"Accepted":           true,
	"Filled":             true,
	"Present":            true,
}

var (
	alphaRe     = regexp.MustCompile(`^[a-zA-Z]+$`)
	alphaNumRe  = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	alphaDashRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	urlRe       = regexp.MustCompile(`^https?://`)
	digitsRe    = regexp.MustCompile(`^[0-9]+$`)
)

func init() {
	checks = map[string]check{
		"Required":           checkRequired,
		"Present":            func(v *Validator, f, _ string, _ []string) bool { return v.present(f) },
		"Filled":             func(v *Validator, f, val string, _ []string) bool { return !v.present(f) || v.filled(f, val) },
		"RequiredIf":         checkRequiredIf,
		"RequiredUnless":     checkRequiredUnless,
		"RequiredWith":       requiredWhen(func(n, total int) bool { return n > 0 }),
		"RequiredWithAll":    requiredWhen(func(n, total int) bool { return n == total }),
		"RequiredWithout":    requiredWhen(func(n, total int) bool { return n < total }),
		"RequiredWithoutAll": requiredWhen(func(n, _ int) bool { return n == 0 }),
		"Accepted":           checkAccepted,
		"String":             func(*Validator, string, string, []string) bool { return true },
		"Numeric":            func(_ *Validator, _, val string, _ []string) bool { return isNumeric(val) },
		"Integer":            checkInteger,
		"Boolean":            checkBoolean,
		"Email":              checkEmail,
		"Url":                func(_ *Validator, _, val string, _ []string) bool { return urlRe.MatchString(val) },
		"Min":                sizeCheck(func(size float64, p []string) bool { return size >= num(p, 0) }),
		"Max":                sizeCheck(func(size float64, p []string) bool { return size <= num(p, 0) }),
		"Size":               sizeCheck(func(size float64, p []string) bool { return size == num(p, 0) }),
		"Between":            sizeCheck(func(size float64, p []string) bool { return size >= num(p, 0) && size <= num(p, 1) }),
		"Gt":                 compareCheck(func(a, b float64) bool { return a > b }),
		"Gte":                compareCheck(func(a, b float64) bool { return a >= b }),
		"Lt":                 compareCheck(func(a, b float64) bool { return a < b }),
		"Lte":                compareCheck(func(a, b float64) bool { return a <= b }),
		"Digits":             checkDigits,
		"DigitsBetween":      checkDigitsBetween,
		"In":                 func(_ *Validator, _, val string, p []string) bool { return contains(p, val) },
		"NotIn":              func(_ *Validator, _, val string, p []string) bool { return !contains(p, val) },
		"Confirmed":          func(v *Validator, f, val string, _ []string) bool { return v.data[f+"_confirmation"] == val },
		"Same":               func(v *Validator, _, val string, p []string) bool { return v.data[param(p, 0)] == val },
		"Different":          func(v *Validator, _, val string, p []string) bool { return v.data[param(p, 0)] != val },
		"Alpha":              func(_ *Validator, _, val string, _ []string) bool { return alphaRe.MatchString(val) },
		"AlphaNum":           func(_ *Validator, _, val string, _ []string) bool { return alphaNumRe.MatchString(val) },
		"AlphaDash":          func(_ *Validator, _, val string, _ []string) bool { return alphaDashRe.MatchString(val) },
		"Regex":              checkRegex,
		"File":               func(v *Validator, f, _ string, _ []string) bool { return v.files[f] != nil },
		"Image":              checkImage,
		"Mimes":              checkMimes,
		"Mimetypes":          checkMimetypes,
		"Array":              func(v *Validator, f, _ string, _ []string) bool { return !v.IsFile(f) },
	}
}

// HasNativeCheck reports whether rule (studly) can be evaluated server-side.
func (v *Validator) HasNativeCheck(name string) bool {
	_, ok := checks[name]
	return ok
}

// IsImplicit reports whether rule (studly) applies to empty input.
func IsImplicit(name string) bool { return implicitRules[name] }

func checkRequired(v *Validator, field, value string, _ []string) bool {
	return v.filled(field, value)
}

func checkRequiredIf(v *Validator, field, value string, p []string) bool {
	if len(p) < 2 || !contains(p[1:], v.data[p[0]]) {
		return true
	}
	return v.filled(field, value)
}

func checkRequiredUnless(v *Validator, field, value string, p []string) bool {
	if len(p) < 1 || contains(p[1:], v.data[p[0]]) {
		return true
	}
	return v.filled(field, value)
}

// requiredWhen builds the required_with* family: need reports whether the
// field is required given how many of the referenced fields are filled.
func requiredWhen(need func(n, total int) bool) check {
	return func(v *Validator, field, value string, p []string) bool {
		n := 0
		for _, other := range p {
			if v.filled(other, v.data[other]) {
				n++
			}
		}
		if !need(n, len(p)) {
			return true
		}
		return v.filled(field, value)
	}
}

func checkAccepted(_ *Validator, _, value string, _ []string) bool {
	return contains([]string{"yes", "on", "1", "true"}, strings.ToLower(value))
}

func checkInteger(_ *Validator, _, value string, _ []string) bool {
	_, err := strconv.Atoi(value)
	return err == nil
}

func checkBoolean(_ *Validator, _, value string, _ []string) bool {
	return contains([]string{"true", "false", "1", "0", "yes", "no"}, strings.ToLower(value))
}

func checkEmail(_ *Validator, _, value string, _ []string) bool {
	_, err := mail.ParseAddress(value)
	return err == nil
}

func checkDigits(_ *Validator, _, value string, p []string) bool {
	return digitsRe.MatchString(value) && float64(len(value)) == num(p, 0)
}

func checkDigitsBetween(_ *Validator, _, value string, p []string) bool {
	l := float64(len(value))
	return digitsRe.MatchString(value) && l >= num(p, 0) && l <= num(p, 1)
}

func checkRegex(_ *Validator, _, value string, p []string) bool {
	pattern, flags := SplitPattern(param(p, 0))
	if strings.Contains(flags, "i") {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	return err == nil && re.MatchString(value)
}

func checkImage(v *Validator, field, value string, _ []string) bool {
	return checkMimes(v, field, value, []string{"jpeg", "jpg", "png", "gif", "bmp", "svg", "webp"})
}

func checkMimes(v *Validator, field, _ string, p []string) bool {
	fh := v.files[field]
	if fh == nil {
		return false
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fh.Filename)), ".")
	return contains(p, ext)
}

// checkMimetypes matches the upload's Content-Type; "image/*" matches any
// image subtype.
func checkMimetypes(v *Validator, field, _ string, p []string) bool {
	fh := v.files[field]
	if fh == nil {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(fh.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	for _, want := range p {
		want = strings.ToLower(strings.TrimSpace(want))
		if want == mediaType {
			return true
		}
		if prefix, ok := strings.CutSuffix(want, "/*"); ok && strings.HasPrefix(mediaType, prefix+"/") {
			return true
		}
	}
	return false
}

func sizeCheck(ok func(size float64, params []string) bool) check {
	return func(v *Validator, field, value string, p []string) bool {
		return ok(v.size(field, value), p)
	}
}

// compareCheck compares against a literal or another field's size.
func compareCheck(cmp func(a, b float64) bool) check {
	return func(v *Validator, field, value string, p []string) bool {
		other := param(p, 0)
		if otherValue, ok := v.data[other]; ok {
			return cmp(v.size(field, value), v.size(other, otherValue))
		}
		return cmp(v.size(field, value), num(p, 0))
	}
}

// size measures value according to the field's attribute type: numeric
// value, kilobytes, item count or character count.
func (v *Validator) size(field, value string) float64 {
	switch v.AttributeType(field) {
	case TypeNumeric:
		f, _ := strconv.ParseFloat(strings.TrimSpace(value), 64)
		return f
	case TypeFile:
		if fh := v.files[field]; fh != nil {
			return float64(fh.Size) / 1024
		}
		return 0
	case TypeArray:
		if value == "" {
			return 0
		}
		return float64(len(strings.Split(value, ",")))
	}
	return float64(utf8.RuneCountInString(value))
}

// SplitPattern separates a delimited pattern ("/^a+$/i") into the
// expression and its flags. Undelimited input is returned as is.
func SplitPattern(p string) (pattern, flags string) {
	if len(p) < 2 || p[0] != '/' {
		return p, ""
	}
	end := strings.LastIndexByte(p, '/')
	if end == 0 {
		return p, ""
	}
	return p[1:end], p[end+1:]
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if strings.TrimSpace(item) == s {
			return true
		}
	}
	return false
}

func param(p []string, i int) string {
	if i < len(p) {
		return p[i]
	}
	return ""
}

func num(p []string, i int) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(param(p, i)), 64)
	return f
}
