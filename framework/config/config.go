package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the central typed configuration struct.
// Embed or extend it in your app's own AppConfig.
type Config struct {
	App          AppConfig
	JsValidation JsValidationConfig
}

type AppConfig struct {
	Name           string
	Env            string // local | production | testing
	Debug          bool
	URL            string
	Port           string
	Locale         string
	FallbackLocale string
}

// JsValidationConfig mirrors config/jsvalidation.php.
type JsValidationConfig struct {
	FormSelector string
	View         string
	ViewsDir     string // optional override for the bundled script templates
	LangDir      string // optional catalog directory, lang/{locale}/{group}.yaml
	CacheSize    int    // 0 disables the translated-rules cache
	Remote       bool
}

// Load reads .env (if present) and populates a Config from environment variables.
// Call once at bootstrap: cfg := config.Load()
func Load(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	return &Config{
		App: AppConfig{
			Name:           env("APP_NAME", "GoJsValidation"),
			Env:            env("APP_ENV", "local"),
			Debug:          envBool("APP_DEBUG", true),
			URL:            env("APP_URL", "http://localhost"),
			Port:           env("APP_PORT", "8000"),
			Locale:         env("APP_LOCALE", "en"),
			FallbackLocale: env("APP_FALLBACK_LOCALE", "en"),
		},
		JsValidation: JsValidationConfig{
			FormSelector: env("JSVALIDATION_FORM_SELECTOR", "form"),
			View:         env("JSVALIDATION_VIEW", "bootstrap"),
			ViewsDir:     env("JSVALIDATION_VIEWS_DIR", ""),
			LangDir:      env("JSVALIDATION_LANG_DIR", ""),
			CacheSize:    GetInt("JSVALIDATION_CACHE_SIZE", 256),
			Remote:       envBool("JSVALIDATION_REMOTE", false),
		},
	}
}

// Get returns a raw env value, falling back to defaultVal.
func Get(key, defaultVal string) string {
	return env(key, defaultVal)
}

// GetInt returns an int env value.
func GetInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

// GetBool returns a bool env value.
func GetBool(key string, defaultVal bool) bool {
	return envBool(key, defaultVal)
}

// ── helpers ─────────────────────────────────────────────────────────────────

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
