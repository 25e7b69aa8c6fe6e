package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/km-arc/go-jsvalidation/framework/config"
	"github.com/km-arc/go-jsvalidation/framework/container"
	gohttp "github.com/km-arc/go-jsvalidation/framework/http"
	"github.com/km-arc/go-jsvalidation/framework/jsvalidation"
	"github.com/km-arc/go-jsvalidation/framework/providers"
	"github.com/km-arc/go-jsvalidation/framework/routing"
	"github.com/km-arc/go-jsvalidation/framework/translation"
)

// Version of the framework.
const Version = "0.2.0"

// Application is the top-level application container.
// It embeds the IoC Container and ProviderRegistry so user code can
// call app.Bind(), app.Singleton(), app.Register() directly,
// exactly like $app in Laravel's bootstrap/app.php.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry
}

// Option configures the framework providers registered by New.
type Option func(*options)

type options struct {
	envFiles []string
	views    fs.FS
}

// WithEnvFiles loads the given .env files instead of ".env".
func WithEnvFiles(files ...string) Option {
	return func(o *options) { o.envFiles = files }
}

// WithViews adds application templates to the view engine.
func WithViews(fsys fs.FS) Option {
	return func(o *options) { o.views = fsys }
}

// New creates the application and registers the framework core providers.
func New(opts ...Option) (*Application, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	c := container.New()
	app := &Application{
		Container: c,
		Providers: container.NewProviderRegistry(c),
	}

	// Same order as Laravel: config first, then the services that read it.
	core := []container.ServiceProvider{
		&providers.ConfigServiceProvider{EnvFiles: o.envFiles},
		&providers.LogServiceProvider{},
		&providers.TranslationServiceProvider{},
		&providers.RoutingServiceProvider{},
		&providers.ViewServiceProvider{FS: o.views},
		&providers.JsValidationServiceProvider{},
	}
	for _, p := range core {
		if err := app.Register(p); err != nil {
			return nil, err
		}
	}
	if err := c.Alias("jsvalidator", "jsvalidation"); err != nil {
		return nil, err
	}
	return app, nil
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) error {
	return a.Providers.Register(provider)
}

// Boot runs the Boot() phase on all providers.
func (a *Application) Boot() error {
	return a.Providers.Boot()
}

// Config resolves *config.Config from the container.
func (a *Application) Config() *config.Config {
	return container.MustResolve[*config.Config](a.Container, "config")
}

// Logger resolves the application logger.
func (a *Application) Logger() *slog.Logger {
	return container.MustResolve[*slog.Logger](a.Container, "log")
}

// Router resolves *routing.Router from the container.
func (a *Application) Router() *routing.Router {
	return container.MustResolve[*routing.Router](a.Container, "router")
}

// Views resolves *gohttp.ViewEngine from the container.
func (a *Application) Views() *gohttp.ViewEngine {
	return container.MustResolve[*gohttp.ViewEngine](a.Container, "view")
}

// Translator resolves the message catalog.
func (a *Application) Translator() *translation.Translator {
	return container.MustResolve[*translation.Translator](a.Container, "translator")
}

// JsValidator resolves the jsvalidator factory, loading its deferred
// provider on first use.
func (a *Application) JsValidator() (*jsvalidation.Factory, error) {
	return container.Resolve[*jsvalidation.Factory](a.Container, "jsvalidator")
}

// Server boots the application (if needed) and returns the HTTP server for
// APP_PORT.
func (a *Application) Server() (*http.Server, error) {
	if !a.Providers.Booted() {
		if err := a.Boot(); err != nil {
			return nil, err
		}
	}
	cfg := a.Config()
	return &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(a.Logger().Handler(), slog.LevelError),
	}, nil
}

// Run starts the HTTP server and blocks until ctx is done, then shuts the
// server down gracefully.
func (a *Application) Run(ctx context.Context) error {
	srv, err := a.Server()
	if err != nil {
		return err
	}
	cfg := a.Config()
	logger := a.Logger()

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	logger.Info("server started",
		slog.String("addr", "http://localhost"+srv.Addr),
		slog.String("env", cfg.App.Env))

	select {
	case err := <-errc:
		return fmt.Errorf("app: serve: %w", err)
	case <-ctx.Done():
	}

	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil {
		return fmt.Errorf("app: shutdown: %w", err)
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("server stopped")
	return nil
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.Config().App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.Config().App.Debug }
func (a *Application) Version() string     { return Version }

// Controller is an embeddable base for HTTP controllers.
type Controller struct{}

func (c *Controller) Request(r *http.Request) *gohttp.Request {
	return gohttp.NewRequest(r)
}
func (c *Controller) Response(w http.ResponseWriter) *gohttp.Response {
	return gohttp.NewResponse(w)
}
