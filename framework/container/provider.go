package container

import (
	"fmt"
	"sync"
)

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider mirrors Laravel's Illuminate\Support\ServiceProvider.
//
// Register() binds services. Boot() is called after ALL providers have been
// registered, making it safe to resolve other bindings inside Boot().
//
//	type JsValidationServiceProvider struct{ container.BaseProvider }
//
//	func (p *JsValidationServiceProvider) Register(app *container.Container) {
//	    app.Singleton("jsvalidator", func(c *container.Container) (any, error) {
//	        cfg, err := container.Resolve[*config.Config](c, "config")
//	        ...
//	    })
//	}
type ServiceProvider interface {
	// Register binds services into the container.
	// Do NOT resolve other bindings here, use Boot() for that.
	Register(app *Container)

	// Boot is called after all providers are registered.
	Boot(app *Container) error

	// Provides returns the abstract keys a deferred provider registers.
	//
	//	// Laravel: public function provides(): array { return ['jsvalidator']; }
	Provides() []string

	// IsDeferred returns true if this provider should be loaded lazily:
	// only when one of its Provides() abstracts is first resolved.
	//
	//	// Laravel: protected $defer = true;
	IsDeferred() bool
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct that provides no-op implementations
// of Boot(), Provides(), and IsDeferred().
//
//	type MyProvider struct{ container.BaseProvider }
//	func (p *MyProvider) Register(app *container.Container) { ... }
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container) error { return nil }
func (p *BaseProvider) Provides() []string      { return nil }
func (p *BaseProvider) IsDeferred() bool        { return false }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry manages registration and booting of ServiceProviders,
// including deferred (lazy) providers.
//
// It mirrors Laravel's Application::registerConfiguredProviders and
// Application::bootProviders.
type ProviderRegistry struct {
	app *Container

	mu         sync.Mutex
	eager      []ServiceProvider
	registered map[ServiceProvider]bool
	booted     bool
}

// NewProviderRegistry creates a registry bound to app.
func NewProviderRegistry(app *Container) *ProviderRegistry {
	return &ProviderRegistry{
		app:        app,
		registered: make(map[ServiceProvider]bool),
	}
}

// Register adds a provider and calls its Register() method (unless
// deferred). Registering the same provider twice is a no-op.
//
//	// Laravel: $app->register(new AppServiceProvider($app))
func (r *ProviderRegistry) Register(provider ServiceProvider) error {
	r.mu.Lock()
	if r.registered[provider] {
		r.mu.Unlock()
		return nil
	}
	r.registered[provider] = true

	if provider.IsDeferred() {
		r.mu.Unlock()
		r.defer_(provider)
		return nil
	}

	r.eager = append(r.eager, provider)
	booted := r.booted
	r.mu.Unlock()

	provider.Register(r.app)
	if booted {
		return bootProvider(provider, r.app)
	}
	return nil
}

// defer_ hooks every abstract the provider offers; the first Make() of any
// of them registers the provider for real, and boots it when the registry
// already booted.
func (r *ProviderRegistry) defer_(provider ServiceProvider) {
	var (
		once sync.Once
		err  error
	)
	load := func() error {
		once.Do(func() {
			provider.Register(r.app)
			r.mu.Lock()
			booted := r.booted
			r.mu.Unlock()
			if booted {
				err = bootProvider(provider, r.app)
			}
		})
		return err
	}
	for _, abstract := range provider.Provides() {
		r.app.onResolving(abstract, load)
	}
}

// Boot calls Boot() on all eager providers. Call it after ALL providers
// have been registered.
//
//	// Laravel: $app->boot()
func (r *ProviderRegistry) Boot() error {
	r.mu.Lock()
	if r.booted {
		r.mu.Unlock()
		return nil
	}
	r.booted = true
	eager := append([]ServiceProvider(nil), r.eager...)
	r.mu.Unlock()

	for _, provider := range eager {
		if err := bootProvider(provider, r.app); err != nil {
			return err
		}
	}
	return nil
}

// Booted returns true if Boot() has been called.
func (r *ProviderRegistry) Booted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.booted
}

// Providers returns all registered eager providers.
func (r *ProviderRegistry) Providers() []ServiceProvider {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ServiceProvider(nil), r.eager...)
}

func bootProvider(p ServiceProvider, app *Container) error {
	if err := p.Boot(app); err != nil {
		return fmt.Errorf("container: boot %T: %w", p, err)
	}
	return nil
}
