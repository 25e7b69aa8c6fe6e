package providers_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-jsvalidation/framework/config"
	"github.com/km-arc/go-jsvalidation/framework/container"
	gohttp "github.com/km-arc/go-jsvalidation/framework/http"
	"github.com/km-arc/go-jsvalidation/framework/jsvalidation"
	"github.com/km-arc/go-jsvalidation/framework/providers"
	"github.com/km-arc/go-jsvalidation/framework/routing"
	"github.com/km-arc/go-jsvalidation/framework/translation"
	"github.com/km-arc/go-jsvalidation/framework/validation"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func emptyEnv(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "empty.env")
	require.NoError(t, os.WriteFile(path, nil, 0o600))
	return path
}

func boot(t *testing.T, extra ...container.ServiceProvider) *container.Container {
	t.Helper()
	c := container.New()
	reg := container.NewProviderRegistry(c)
	all := append([]container.ServiceProvider{
		&providers.ConfigServiceProvider{EnvFiles: []string{emptyEnv(t)}},
		&providers.LogServiceProvider{},
		&providers.TranslationServiceProvider{},
		&providers.JsValidationServiceProvider{},
	}, extra...)
	for _, p := range all {
		require.NoError(t, reg.Register(p))
	}
	require.NoError(t, reg.Boot())
	return c
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// ── Config ───────────────────────────────────────────────────────────────────

func TestConfigServiceProvider(t *testing.T) {
	t.Setenv("JSVALIDATION_FORM_SELECTOR", "#signup")
	c := boot(t)

	cfg, err := container.Resolve[*config.Config](c, "config")
	require.NoError(t, err)
	assert.Equal(t, "#signup", cfg.JsValidation.FormSelector)

	alias, err := container.Resolve[*config.Config](c, "configuration")
	require.NoError(t, err)
	assert.Same(t, cfg, alias)
}

// ── Log ──────────────────────────────────────────────────────────────────────

func TestLogServiceProvider(t *testing.T) {
	t.Run("local uses text", func(t *testing.T) {
		t.Setenv("APP_ENV", "local")
		logger, err := container.Resolve[*slog.Logger](boot(t), "log")
		require.NoError(t, err)
		assert.IsType(t, &slog.TextHandler{}, logger.Handler())
	})

	t.Run("production uses json without debug", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("APP_DEBUG", "false")
		logger, err := container.Resolve[*slog.Logger](boot(t), "log")
		require.NoError(t, err)
		assert.IsType(t, &slog.JSONHandler{}, logger.Handler())
		assert.False(t, logger.Enabled(t.Context(), slog.LevelDebug))
	})
}

// ── Translation ──────────────────────────────────────────────────────────────

func TestTranslationServiceProvider_Defaults(t *testing.T) {
	tr, err := container.Resolve[*translation.Translator](boot(t), "translator")
	require.NoError(t, err)
	assert.Equal(t, "en", tr.Locale())
	assert.Equal(t, "The :attribute field is required.", tr.Trans("validation.required"))
}

func TestTranslationServiceProvider_LangDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "fr", "validation.yaml"), "required: \"Le champ :attribute est obligatoire.\"\n")
	t.Setenv("APP_LOCALE", "fr")
	t.Setenv("JSVALIDATION_LANG_DIR", dir)

	tr, err := container.Resolve[*translation.Translator](boot(t), "translator")
	require.NoError(t, err)
	assert.Equal(t, "Le champ :attribute est obligatoire.", tr.Trans("validation.required"))
	assert.Equal(t, "The :attribute must be a valid email address.", tr.Trans("validation.email"), "falls back to en")
}

func TestTranslationServiceProvider_BadLangDir(t *testing.T) {
	t.Setenv("JSVALIDATION_LANG_DIR", filepath.Join(t.TempDir(), "missing"))

	_, err := container.Resolve[*translation.Translator](boot(t), "translator")
	assert.Error(t, err)
}

// ── JsValidation ─────────────────────────────────────────────────────────────

func TestJsValidationServiceProvider_Deferred(t *testing.T) {
	p := &providers.JsValidationServiceProvider{}
	assert.True(t, p.IsDeferred())
	assert.Equal(t, []string{"jsvalidator"}, p.Provides())

	t.Setenv("JSVALIDATION_FORM_SELECTOR", "#signup")
	t.Setenv("JSVALIDATION_VIEW", "plain")
	c := boot(t)
	assert.True(t, c.Bound("jsvalidator"))

	f, err := container.Resolve[*jsvalidation.Factory](c, "jsvalidator")
	require.NoError(t, err)

	again, err := container.Resolve[*jsvalidation.Factory](c, "jsvalidator")
	require.NoError(t, err)
	assert.Same(t, f, again)

	m, err := f.Make(validation.Rules{"email": "required"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "plain", m.View())
	assert.Equal(t, "#signup", m.ValidationData().Selector)
	assert.Equal(t, "The email field is required.", m.Rules().Bucket("email", jsvalidation.BucketDefault)[0].Message)
}

// ── Routing / View ───────────────────────────────────────────────────────────

func TestRoutingServiceProvider(t *testing.T) {
	c := boot(t, &providers.RoutingServiceProvider{})

	r1, err := container.Resolve[*routing.Router](c, "router")
	require.NoError(t, err)
	r2, err := container.Resolve[*routing.Router](c, "router")
	require.NoError(t, err)
	assert.Same(t, r1, r2)
}

func TestViewServiceProvider_Layers(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "jsvalidation", "plain.html"), `<script>/* custom */ $({{.Selector}})</script>`)
	t.Setenv("JSVALIDATION_VIEWS_DIR", dir)

	appViews := fstest.MapFS{"hello.html": {Data: []byte(`Hello {{.}}`)}}
	c := boot(t, &providers.ViewServiceProvider{FS: appViews})

	views, err := container.Resolve[*gohttp.ViewEngine](c, "view")
	require.NoError(t, err)

	out, err := views.Render("hello", "world")
	require.NoError(t, err)
	assert.Equal(t, "Hello world", string(out))

	out, err = views.RenderScript("plain", jsvalidation.ViewData{Selector: "#f"})
	require.NoError(t, err)
	assert.Contains(t, string(out), "/* custom */")

	out, err = views.RenderScript("bootstrap", jsvalidation.ViewData{Selector: "#f"})
	require.NoError(t, err)
	assert.Contains(t, string(out), "validate(")
}
