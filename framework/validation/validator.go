package validation

import (
	"mime/multipart"
	"strings"

	"github.com/km-arc/go-jsvalidation/framework/translation"
	"github.com/km-arc/go-jsvalidation/framework/validation/rule"
)

// ── Types ────────────────────────────────────────────────────────────────────

// Errors holds validation errors, mirrors Laravel's MessageBag.
// JSON output: {"errors": {"field": ["msg1", "msg2"]}}
type Errors struct {
	Bag map[string][]string `json:"errors"`
}

func (e *Errors) add(field, msg string) {
	if e.Bag == nil {
		e.Bag = make(map[string][]string)
	}
	e.Bag[field] = append(e.Bag[field], msg)
}

// Has returns true if there are any errors.
func (e *Errors) Has() bool { return len(e.Bag) > 0 }

// First returns the first error for a field.
func (e *Errors) First(field string) string {
	if msgs, ok := e.Bag[field]; ok && len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Translator resolves catalog keys. A missing key must come back unchanged.
type Translator interface {
	Trans(key string) string
}

// ── Validator ────────────────────────────────────────────────────────────────

// Validator validates a flat map of input values and owns the message
// catalog logic shared with client-side rule generation.
type Validator struct {
	data       map[string]string
	files      map[string]*multipart.FileHeader
	rules      RuleSet
	translator Translator

	customMessages   map[string]string
	fallbackMessages map[string]string
	customAttributes map[string]string
	extensions       map[string]Extension

	errors *Errors
}

// Extension is a custom server-side rule, mirrors Validator::extend.
// It sees the whole input so it can compare against other fields.
type Extension func(field, value string, params []string, data map[string]string) bool

// Option configures a Validator.
type Option func(*Validator)

// WithMessages sets inline message overrides keyed "field.rule" or "rule".
func WithMessages(m map[string]string) Option {
	return func(v *Validator) { v.customMessages = m }
}

// WithFallbackMessages sets overrides consulted after the catalog.
func WithFallbackMessages(m map[string]string) Option {
	return func(v *Validator) { v.fallbackMessages = m }
}

// WithAttributes sets display labels per field.
func WithAttributes(m map[string]string) Option {
	return func(v *Validator) { v.customAttributes = m }
}

// WithFiles attaches uploaded files; their fields are classified as files.
func WithFiles(files map[string]*multipart.FileHeader) Option {
	return func(v *Validator) { v.files = files }
}

// WithExtension registers a custom rule under name ("phone" or "Phone").
// Extensions are checked on the server only; the client never sees them
// unless they are remote rules.
func WithExtension(name string, fn Extension) Option {
	return func(v *Validator) {
		if v.extensions == nil {
			v.extensions = make(map[string]Extension)
		}
		v.extensions[rule.Studly(name)] = fn
	}
}

// WithTranslator replaces the bundled English catalog.
func WithTranslator(t Translator) Option {
	return func(v *Validator) { v.translator = t }
}

// Make creates a new Validator, mirrors Validator::make($data, $rules).
func Make(data map[string]string, rules Rules, opts ...Option) *Validator {
	v, _ := New(data, rules, opts...)
	return v
}

// New creates a Validator from any rule declaration NewRuleSet accepts.
func New(data map[string]string, decl any, opts ...Option) (*Validator, error) {
	set, err := NewRuleSet(decl)
	if err != nil {
		return nil, err
	}
	v := &Validator{
		data:   data,
		rules:  set,
		errors: &Errors{},
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.data == nil {
		v.data = map[string]string{}
	}
	if v.files == nil {
		v.files = map[string]*multipart.FileHeader{}
	}
	if v.translator == nil {
		v.translator = translation.Default()
	}
	return v, nil
}

// Fails runs validation and returns true if any rule fails.
func (v *Validator) Fails() bool {
	v.validate()
	return v.errors.Has()
}

// Passes runs validation and returns true if all rules pass.
func (v *Validator) Passes() bool { return !v.Fails() }

// Errors returns the validation error bag.
func (v *Validator) Errors() *Errors { return v.errors }

// RuleSet returns the parsed rule declaration.
func (v *Validator) RuleSet() RuleSet { return v.rules }

// HasRule reports whether field declares any of the named (studly) rules.
func (v *Validator) HasRule(field string, names ...string) bool {
	return v.rules.Has(field, names...)
}

// IsFile reports whether field is a known upload (or a file marker).
func (v *Validator) IsFile(field string) bool {
	_, ok := v.files[field]
	return ok
}

// Translator returns the catalog in use.
func (v *Validator) Translator() Translator { return v.translator }

// ── Core validation loop ─────────────────────────────────────────────────────

func (v *Validator) validate() {
	v.errors = &Errors{}
	for _, fr := range v.rules {
		value := v.data[fr.Field]

		for _, r := range fr.Rules {
			if r.Is("Sometimes") && !v.present(fr.Field) {
				break
			}
			if r.Is("Nullable") && value == "" && !v.IsFile(fr.Field) {
				break
			}
			if !v.applyRule(fr.Field, value, r) {
				break // stop on first failure (like Laravel's bail behaviour)
			}
		}
	}
}

// applyRule returns true if the rule passes or cannot be checked here.
func (v *Validator) applyRule(field, value string, r rule.Rule) bool {
	c, ok := checks[r.Name]
	if !ok {
		ext, found := v.extensions[r.Name]
		if !found {
			return true
		}
		c = func(v *Validator, field, value string, p []string) bool { return ext(field, value, p, v.data) }
	}
	// Only implicit rules run against empty input.
	if !IsImplicit(r.Name) && !v.filled(field, value) {
		return true
	}
	if c(v, field, value, r.Parameters) {
		return true
	}

	msg := v.ResolveMessage(field, r.Name, r.Parameters)
	v.errors.add(field, v.ApplyReplacements(msg, field, r.Name, r.Parameters))
	return false
}

func (v *Validator) present(field string) bool {
	if _, ok := v.data[field]; ok {
		return true
	}
	return v.IsFile(field)
}

func (v *Validator) filled(field, value string) bool {
	if fh := v.files[field]; fh != nil {
		return true
	}
	return strings.TrimSpace(value) != ""
}
