package jsvalidation

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-json-experiment/json"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/km-arc/go-jsvalidation/framework/translation"
	"github.com/km-arc/go-jsvalidation/framework/validation"
)

// Config holds the jsvalidator defaults.
type Config struct {
	// FormSelector is the CSS selector of the form to attach to.
	FormSelector string
	// View is the name of the script template.
	View string
	// Remote enables the remote bucket for server-only rules.
	Remote bool
	// CacheSize bounds the translated-rules cache; 0 disables it.
	CacheSize int
}

// Factory builds Managers, mirrors the JsValidator facade:
//
//	jsv, err := factory.Make(validation.Rules{"email": "required|email"}, nil, nil)
//	data := jsv.Selector("#signup").ValidationData()
type Factory struct {
	cfg        Config
	translator validation.Translator
	cache      *lru.Cache[string, *Result]
	logger     *slog.Logger
}

// NewFactory creates a Factory. A nil translator uses the bundled catalog.
func NewFactory(cfg Config, tr validation.Translator, logger *slog.Logger) (*Factory, error) {
	if cfg.FormSelector == "" {
		cfg.FormSelector = "form"
	}
	if cfg.View == "" {
		cfg.View = "bootstrap"
	}
	if logger == nil {
		logger = slog.Default()
	}
	if tr == nil {
		tr = translation.Default()
	}
	f := &Factory{cfg: cfg, translator: tr, logger: logger}
	if cfg.CacheSize > 0 {
		cache, err := lru.New[string, *Result](cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("jsvalidation: cache: %w", err)
		}
		f.cache = cache
	}
	return f, nil
}

// Make creates a Manager from a rule declaration plus inline messages and
// attribute labels. It fails only when rules is not a valid declaration.
func (f *Factory) Make(rules any, messages, attributes map[string]string) (*Manager, error) {
	set, err := validation.NewRuleSet(rules)
	if err != nil {
		return nil, err
	}

	v, err := validation.New(nil, set,
		validation.WithMessages(messages),
		validation.WithAttributes(attributes),
		validation.WithTranslator(f.translator),
	)
	if err != nil {
		return nil, err
	}

	m := f.Validator(v)
	if f.cache != nil {
		key, err := f.cacheKey(set, messages, attributes)
		if err != nil {
			f.logger.Warn("jsvalidation: cache key", slog.Any("error", err))
			return m, nil
		}
		m.cache, m.cacheKey = f.cache, key
	}
	return m, nil
}

// FormRequest is a request type that declares its own validation.
type FormRequest interface {
	Rules() any
	Messages() map[string]string
	Attributes() map[string]string
}

// ErrNilFormRequest is returned by Factory.FormRequest for a nil request.
var ErrNilFormRequest = errors.New("jsvalidation: nil form request")

// FormRequest creates a Manager from a form request's rules, messages and
// attribute labels.
func (f *Factory) FormRequest(fr FormRequest) (*Manager, error) {
	if fr == nil {
		return nil, ErrNilFormRequest
	}
	return f.Make(fr.Rules(), fr.Messages(), fr.Attributes())
}

// Validator creates a Manager for an existing validator.
func (f *Factory) Validator(v Validator) *Manager {
	return &Manager{
		selector: f.cfg.FormSelector,
		view:     f.cfg.View,
		js:       New(v, WithLogger(f.logger), WithRemote(f.cfg.Remote)),
	}
}

// cacheKey hashes everything the translation depends on.
func (f *Factory) cacheKey(set validation.RuleSet, messages, attributes map[string]string) (string, error) {
	locale := ""
	if l, ok := f.translator.(interface{ Locale() string }); ok {
		locale = l.Locale()
	}
	b, err := json.Marshal(struct {
		Rules      validation.RuleSet
		Messages   map[string]string
		Attributes map[string]string
		Remote     bool
		Locale     string
	}{set, messages, attributes, f.cfg.Remote, locale}, json.Deterministic(true))
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}
