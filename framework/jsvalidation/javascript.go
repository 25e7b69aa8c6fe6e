package jsvalidation

import (
	"fmt"
	"log/slog"

	"github.com/km-arc/go-jsvalidation/framework/validation"
	"github.com/km-arc/go-jsvalidation/framework/validation/rule"
)

// DisableMarker excludes a field from client-side validation:
// "email" => "no_js_validation|required|email".
const DisableMarker = "NoJsValidation"

// fileRules make a field classify as a file even without an upload.
var fileRules = []string{"File", "Image", "Mimes", "Mimetypes"}

// conditionalRules read the other field's value while phrasing the message.
var conditionalRules = []string{"RequiredIf"}

// Validator is the server-side engine the translation sits in front of.
// *validation.Validator implements it.
type Validator interface {
	RuleSet() validation.RuleSet
	HasRule(field string, names ...string) bool
	IsFile(field string) bool
	HasNativeCheck(name string) bool
	ResolveMessage(field, name string, params []string) string
	ApplyReplacements(message, field, name string, params []string) string
	WithOverlay(o validation.Overlay, fn func() error) error
}

var _ Validator = (*validation.Validator)(nil)

// JavascriptValidation converts a validator's rules into client rules with
// fully resolved messages.
type JavascriptValidation struct {
	validator Validator
	mapper    Mapper
	logger    *slog.Logger
}

// Option configures a JavascriptValidation.
type Option func(*JavascriptValidation)

// WithLogger sets the logger used to report skipped rules.
func WithLogger(l *slog.Logger) Option {
	return func(j *JavascriptValidation) { j.logger = l }
}

// WithRemote routes server-only rules (unique, exists, active_url) to the
// remote bucket.
func WithRemote(enabled bool) Option {
	return func(j *JavascriptValidation) { j.mapper.Remote = enabled }
}

// New wraps v.
func New(v Validator, opts ...Option) *JavascriptValidation {
	j := &JavascriptValidation{
		validator: v,
		mapper:    Mapper{Native: v.HasNativeCheck},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Enabled reports whether field takes part in client-side validation.
func (j *JavascriptValidation) Enabled(field string) bool {
	return !j.validator.HasRule(field, DisableMarker)
}

// Rules translates every enabled field. A rule that cannot be translated
// is logged and skipped; the remaining rules are still translated. Rules
// routed to a disabled field (password → password_confirmation) are dropped.
func (j *JavascriptValidation) Rules() *Result {
	result := newResult()
	for _, fr := range j.validator.RuleSet() {
		if !j.Enabled(fr.Field) {
			continue
		}
		for _, r := range fr.Rules {
			mapping, entry, ok, err := j.convert(fr.Field, r)
			if err != nil {
				j.logger.Warn("jsvalidation: rule skipped",
					slog.String("field", fr.Field),
					slog.String("rule", r.Key()),
					slog.Any("error", err),
				)
				continue
			}
			if ok && j.Enabled(mapping.Field) {
				result.add(mapping.Field, mapping.Bucket, entry)
			}
		}
	}
	return result
}

// convert maps and phrases a single rule. Panics are confined to the rule.
func (j *JavascriptValidation) convert(field string, r rule.Rule) (mapping Mapping, entry Entry, ok bool, err error) {
	defer func() {
		if p := recover(); p != nil {
			mapping, entry, ok = Mapping{}, Entry{}, false
			err = fmt.Errorf("jsvalidation: %s on %q: %v", r.Key(), field, p)
		}
	}()

	mapping, ok, err = j.mapper.Map(field, r)
	if err != nil || !ok {
		return mapping, Entry{}, false, err
	}

	msg, err := j.Message(field, r)
	if err != nil {
		return Mapping{}, Entry{}, false, err
	}
	return mapping, Entry{
		Rule:       r.Name,
		Parameters: mapping.Parameters,
		Message:    msg,
		Implicit:   validation.IsImplicit(r.Name),
	}, true, nil
}

// Message resolves the final message for r on field.
//
// Fields carrying a file rule are treated as uploads so size rules pick
// their file wording, and conditional rules see the other field holding
// the comparison value. Both are installed only for this resolution.
func (j *JavascriptValidation) Message(field string, r rule.Rule) (string, error) {
	var overlay validation.Overlay
	if j.validator.HasRule(field, fileRules...) && !j.validator.IsFile(field) {
		overlay.Files = []string{field}
	}
	if r.Is(conditionalRules...) {
		if len(r.Parameters) < 2 {
			return "", fmt.Errorf("%s on %q: %w", r.Key(), field, ErrMissingParameters)
		}
		overlay.Data = map[string]string{r.Parameters[0]: r.Parameters[1]}
	}

	var msg string
	err := j.validator.WithOverlay(overlay, func() error {
		msg = j.validator.ResolveMessage(field, r.Name, r.Parameters)
		msg = j.validator.ApplyReplacements(msg, field, r.Name, r.Parameters)
		return nil
	})
	return msg, err
}
