package providers

import (
	"log/slog"

	"github.com/km-arc/go-jsvalidation/framework/config"
	"github.com/km-arc/go-jsvalidation/framework/container"
	"github.com/km-arc/go-jsvalidation/framework/jsvalidation"
	"github.com/km-arc/go-jsvalidation/framework/translation"
)

// TranslationServiceProvider registers the message catalog: the bundled
// English lines, switched to APP_LOCALE, plus any catalog files under
// JSVALIDATION_LANG_DIR ({locale}/{group}.yaml).
//
// Bound abstracts:
//   - "translator"  → *translation.Translator
//
// Laravel equivalent:
//
//	// Illuminate\Translation\TranslationServiceProvider
//	$app->singleton('translator', fn($app) => new Translator($loader, $locale));
type TranslationServiceProvider struct {
	container.BaseProvider
}

func (p *TranslationServiceProvider) Register(app *container.Container) {
	app.Singleton("translator", func(c *container.Container) (any, error) {
		cfg, err := container.Resolve[*config.Config](c, "config")
		if err != nil {
			return nil, err
		}
		t := translation.Default()
		t.SetLocale(cfg.App.Locale)
		return t, nil
	})

	app.Extend("translator", func(instance any, c *container.Container) (any, error) {
		cfg, err := container.Resolve[*config.Config](c, "config")
		if err != nil {
			return nil, err
		}
		if dir := cfg.JsValidation.LangDir; dir != "" {
			if err := instance.(*translation.Translator).Load(dir); err != nil {
				return nil, err
			}
		}
		return instance, nil
	})
}

// JsValidationServiceProvider registers the jsvalidator factory. It is
// deferred: nothing is built until "jsvalidator" is first resolved.
//
// Bound abstracts:
//   - "jsvalidator"  → *jsvalidation.Factory
//
// Laravel equivalent:
//
//	// Proengsoft\JsValidation\JsValidationServiceProvider
//	$this->app->bind('jsvalidator', fn($app) => new Factory($manager, $app));
type JsValidationServiceProvider struct {
	container.BaseProvider
}

func (p *JsValidationServiceProvider) IsDeferred() bool   { return true }
func (p *JsValidationServiceProvider) Provides() []string { return []string{"jsvalidator"} }

func (p *JsValidationServiceProvider) Register(app *container.Container) {
	app.Singleton("jsvalidator", func(c *container.Container) (any, error) {
		cfg, err := container.Resolve[*config.Config](c, "config")
		if err != nil {
			return nil, err
		}
		tr, err := container.Resolve[*translation.Translator](c, "translator")
		if err != nil {
			return nil, err
		}
		logger, err := container.Resolve[*slog.Logger](c, "log")
		if err != nil {
			return nil, err
		}
		js := cfg.JsValidation
		return jsvalidation.NewFactory(jsvalidation.Config{
			FormSelector: js.FormSelector,
			View:         js.View,
			Remote:       js.Remote,
			CacheSize:    js.CacheSize,
		}, tr, logger)
	})
}
