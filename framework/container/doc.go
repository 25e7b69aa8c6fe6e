// Package container provides a Laravel-compatible IoC (Inversion of Control)
// container and Service Provider system for Go.
//
// # Overview
//
// The container manages the instantiation and lifecycle of the application's
// services: the configuration, the translator, the jsvalidator factory, the
// router and the view engine. Because Go has no runtime constructor
// reflection, auto-wiring is replaced by explicit factory functions.
//
// # Container Lifecycle
//
//  1. Create: c := container.New()
//  2. Register providers: registry.Register(&MyProvider{})
//  3. Boot: registry.Boot() (safe to resolve everything after this)
//  4. Serve requests
//
// # Bindings
//
//	// Transient, new instance every Make()
//	c.Bind("validator", func(c *container.Container) (any, error) { ... })
//
//	// Singleton, created once, reused
//	c.Singleton("translator", func(c *container.Container) (any, error) {
//	    return translation.Default(), nil
//	})
//
//	// Pre-built value
//	c.Instance("config", cfg)
//
//	// Alias
//	c.Alias("jsvalidator", "jsvalidation")
//
// # Resolving
//
//	raw, err := c.Make("jsvalidator")
//
//	// Generic (preferred, no type assertion required)
//	f, err := container.Resolve[*jsvalidation.Factory](c, "jsvalidator")
//
//	// During boot, where a missing binding is a bug
//	f := container.MustResolve[*jsvalidation.Factory](c, "jsvalidator")
//
// Resolving an abstract nobody registered returns an error wrapping
// ErrNotBound.
//
// # Extend / Decorate
//
//	c.Extend("translator", func(instance any, c *container.Container) (any, error) {
//	    return instance, instance.(*translation.Translator).Load("./lang")
//	})
//
// # Deferred Providers
//
//	type HeavyProvider struct{ container.BaseProvider }
//
//	func (p *HeavyProvider) IsDeferred() bool   { return true }
//	func (p *HeavyProvider) Provides() []string { return []string{"heavy"} }
//	func (p *HeavyProvider) Register(app *container.Container) {
//	    app.Singleton("heavy", func(c *container.Container) (any, error) {
//	        return heavySetup() // only called on first app.Make("heavy")
//	    })
//	}
package container
