package providers

import (
	"io/fs"
	"log/slog"
	"os"

	"github.com/km-arc/go-jsvalidation/framework/config"
	"github.com/km-arc/go-jsvalidation/framework/container"
	gohttp "github.com/km-arc/go-jsvalidation/framework/http"
	"github.com/km-arc/go-jsvalidation/framework/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider loads the application configuration from .env and
// binds it into the container as "config".
//
// Bound abstracts:
//   - "config"         → *config.Config
//   - "configuration"  → alias of "config"
//
// Laravel equivalent:
//
//	// Illuminate\Foundation\Bootstrap\LoadConfiguration
//	$app->singleton('config', fn() => new Repository($items));
type ConfigServiceProvider struct {
	container.BaseProvider
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(app *container.Container) {
	envFiles := p.EnvFiles
	app.Singleton("config", func(c *container.Container) (any, error) {
		return config.Load(envFiles...), nil
	})
	_ = app.Alias("config", "configuration")
}

// ── LogServiceProvider ────────────────────────────────────────────────────────

// LogServiceProvider registers the application logger: text output while
// APP_ENV is local, JSON otherwise, debug level when APP_DEBUG is on.
//
// Bound abstracts:
//   - "log"  → *slog.Logger
type LogServiceProvider struct {
	container.BaseProvider
}

func (p *LogServiceProvider) Register(app *container.Container) {
	app.Singleton("log", func(c *container.Container) (any, error) {
		cfg, err := container.Resolve[*config.Config](c, "config")
		if err != nil {
			return nil, err
		}
		return newLogger(cfg.App), nil
	})
}

func newLogger(app config.AppConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if app.Debug {
		opts.Level = slog.LevelDebug
	}
	var h slog.Handler = slog.NewJSONHandler(os.Stderr, opts)
	if app.Env == "local" {
		h = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(h).With(slog.String("app", app.Name))
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router.
//
// Bound abstracts:
//   - "router"  → *routing.Router
//
// Laravel equivalent:
//
//	// Illuminate\Routing\RoutingServiceProvider
//	$app->singleton('router', fn($app) => new Router($app['events'], $app));
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) {
	app.Singleton("router", func(c *container.Container) (any, error) {
		logger, err := container.Resolve[*slog.Logger](c, "log")
		if err != nil {
			return nil, err
		}
		return routing.New(logger), nil
	})
}

// ── ViewServiceProvider ───────────────────────────────────────────────────────

// ViewServiceProvider registers the template engine.
//
// Bound abstracts:
//   - "view"   → *gohttp.ViewEngine
//
// Templates are looked up in JSVALIDATION_VIEWS_DIR (when set), then FS,
// then the bundled jsvalidation scripts.
//
// Laravel equivalent:
//
//	// Illuminate\View\ViewServiceProvider
//	$app->singleton('view', fn($app) => new Factory(...));
type ViewServiceProvider struct {
	container.BaseProvider
	FS  fs.FS  // application templates, optional
	Ext string // file extension, default: ".html"
}

func (p *ViewServiceProvider) Register(app *container.Container) {
	ext := p.Ext
	if ext == "" {
		ext = ".html"
	}
	appViews := p.FS

	app.Singleton("view", func(c *container.Container) (any, error) {
		cfg, err := container.Resolve[*config.Config](c, "config")
		if err != nil {
			return nil, err
		}
		var layers []fs.FS
		if dir := cfg.JsValidation.ViewsDir; dir != "" {
			layers = append(layers, os.DirFS(dir))
		}
		if appViews != nil {
			layers = append(layers, appViews)
		}
		return gohttp.NewViewEngine(ext, layers...), nil
	})
}
