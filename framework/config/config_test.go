package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-jsvalidation/framework/config"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func emptyEnv(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "empty.env")
	require.NoError(t, os.WriteFile(path, nil, 0o600))
	return path
}

// ── Load ─────────────────────────────────────────────────────────────────────

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load(emptyEnv(t))

	assert.Equal(t, "GoJsValidation", cfg.App.Name)
	assert.Equal(t, "local", cfg.App.Env)
	assert.Equal(t, "8000", cfg.App.Port)
	assert.Equal(t, "en", cfg.App.Locale)
	assert.Equal(t, "en", cfg.App.FallbackLocale)

	assert.Equal(t, config.JsValidationConfig{
		FormSelector: "form",
		View:         "bootstrap",
		CacheSize:    256,
	}, cfg.JsValidation)
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("APP_NAME", "MyApp")
	t.Setenv("APP_LOCALE", "fr")
	t.Setenv("JSVALIDATION_FORM_SELECTOR", "#signup")
	t.Setenv("JSVALIDATION_CACHE_SIZE", "0")
	t.Setenv("JSVALIDATION_REMOTE", "true")

	cfg := config.Load(emptyEnv(t))

	assert.Equal(t, "MyApp", cfg.App.Name)
	assert.Equal(t, "fr", cfg.App.Locale)
	assert.Equal(t, "#signup", cfg.JsValidation.FormSelector)
	assert.Zero(t, cfg.JsValidation.CacheSize)
	assert.True(t, cfg.JsValidation.Remote)
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("JSVALIDATION_VIEW=plain\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("JSVALIDATION_VIEW") })

	cfg := config.Load(path)
	assert.Equal(t, "plain", cfg.JsValidation.View)
}

func TestLoad_AppDebug(t *testing.T) {
	t.Setenv("APP_DEBUG", "false")
	assert.False(t, config.Load(emptyEnv(t)).App.Debug)

	t.Setenv("APP_DEBUG", "true")
	assert.True(t, config.Load(emptyEnv(t)).App.Debug)
}

// ── Get / GetInt / GetBool ───────────────────────────────────────────────────

func TestGet(t *testing.T) {
	t.Setenv("CUSTOM_KEY", "hello")
	assert.Equal(t, "hello", config.Get("CUSTOM_KEY", "default"))

	os.Unsetenv("MISSING_KEY")
	assert.Equal(t, "fallback", config.Get("MISSING_KEY", "fallback"))
}

func TestGetInt(t *testing.T) {
	t.Setenv("SOME_INT", "42")
	assert.Equal(t, 42, config.GetInt("SOME_INT", 0))

	t.Setenv("SOME_INT", "notanint")
	assert.Equal(t, 99, config.GetInt("SOME_INT", 99))
}

func TestGetBool(t *testing.T) {
	for _, val := range []string{"true", "1", "True", "TRUE"} {
		t.Setenv("BOOL_KEY", val)
		assert.True(t, config.GetBool("BOOL_KEY", false), val)
	}

	t.Setenv("BOOL_KEY", "false")
	assert.False(t, config.GetBool("BOOL_KEY", true))

	t.Setenv("BOOL_KEY", "notabool")
	assert.True(t, config.GetBool("BOOL_KEY", true))
}
