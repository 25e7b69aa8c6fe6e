package container

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNotBound is returned when an abstract has no binding or instance.
var ErrNotBound = errors.New("container: no binding registered")

// ── Binding types ─────────────────────────────────────────────────────────────

// Factory builds a concrete value from the container.
type Factory func(c *Container) (any, error)

// binding holds a registered factory and whether it is a singleton.
type binding struct {
	factory   Factory
	singleton bool

	once     sync.Once
	instance any
	err      error
}

// extender wraps an already-resolved instance with decorator logic.
type extender func(instance any, c *Container) (any, error)

// ── Container ─────────────────────────────────────────────────────────────────

// Container is the IoC container, mirrors Laravel's Illuminate\Container\Container.
//
// It supports:
//   - Bind / Singleton / Instance / Alias
//   - Make / Resolve (generic)
//   - Extend (decorate resolved instances)
//
// It is safe for concurrent use. A singleton factory runs at most once.
type Container struct {
	mu sync.RWMutex

	// abstract → binding
	bindings map[string]*binding

	// abstract → pre-built instance
	instances map[string]any

	// alias → abstract (canonical key)
	aliases map[string]string

	// abstract → extender funcs
	extenders map[string][]extender

	// abstract → hook run before each lookup (deferred providers)
	resolving map[string]func() error
}

// New creates an empty container.
func New() *Container {
	c := &Container{
		bindings:  make(map[string]*binding),
		instances: make(map[string]any),
		aliases:   make(map[string]string),
		extenders: make(map[string][]extender),
		resolving: make(map[string]func() error),
	}
	// Bind the container to itself, like Laravel's $app->instance()
	c.Instance("container", c)
	return c
}

// ── Registration ──────────────────────────────────────────────────────────────

// Bind registers a transient (new instance each Make) factory.
//
//	// Laravel: $app->bind(Mailer::class, fn($app) => new Mailer($app))
//	c.Bind("validator", func(c *container.Container) (any, error) {
//	    return validation.New(nil, rules)
//	})
func (c *Container) Bind(abstract string, factory Factory) {
	c.bind(abstract, factory, false)
}

// Singleton registers a factory whose result is cached after first resolution.
//
//	// Laravel: $app->singleton('translator', fn($app) => new Translator(...))
//	c.Singleton("translator", func(c *container.Container) (any, error) {
//	    return translation.Default(), nil
//	})
func (c *Container) Singleton(abstract string, factory Factory) {
	c.bind(abstract, factory, true)
}

// Instance registers a pre-built value as a singleton.
//
//	// Laravel: $app->instance(Config::class, $config)
//	c.Instance("config", myConfig)
func (c *Container) Instance(abstract string, instance any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(abstract)
	delete(c.bindings, key)
	c.instances[key] = instance
}

func (c *Container) bind(abstract string, factory Factory, singleton bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(abstract)
	delete(c.instances, key)
	c.bindings[key] = &binding{factory: factory, singleton: singleton}
}

// Alias registers an alternative name for an abstract.
//
//	// Laravel: $app->alias('jsvalidator', JsValidatorFactory::class)
//	c.Alias("jsvalidator", "jsvalidation")
func (c *Container) Alias(abstract, alias string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if abstract == alias {
		return fmt.Errorf("container: [%s] is aliased to itself", abstract)
	}
	c.aliases[alias] = c.canonical(abstract)
	return nil
}

// Extend decorates the resolved instance of an abstract. Extenders apply
// to instances resolved after the call.
//
//	// Laravel: $app->extend('translator', fn($t, $app) => $t->addLines(...))
//	c.Extend("translator", func(instance any, c *container.Container) (any, error) {
//	    return instance, instance.(*translation.Translator).Load(dir)
//	})
func (c *Container) Extend(abstract string, fn func(instance any, c *Container) (any, error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(abstract)
	c.extenders[key] = append(c.extenders[key], fn)
}

// onResolving installs a hook run before every lookup of abstract. The hook
// must be idempotent.
func (c *Container) onResolving(abstract string, fn func() error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resolving[c.canonical(abstract)] = fn
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Make resolves an abstract from the container.
//
//	// Laravel: $app->make('jsvalidator')
//	raw, err := c.Make("jsvalidator")
func (c *Container) Make(abstract string) (any, error) {
	c.mu.RLock()
	key := c.canonical(abstract)
	hook := c.resolving[key]
	c.mu.RUnlock()

	if hook != nil {
		if err := hook(); err != nil {
			return nil, fmt.Errorf("container: [%s]: %w", abstract, err)
		}
	}

	c.mu.RLock()
	inst, isInstance := c.instances[key]
	b, isBound := c.bindings[key]
	c.mu.RUnlock()

	switch {
	case isInstance:
		return inst, nil
	case !isBound:
		return nil, fmt.Errorf("%w for [%s]", ErrNotBound, abstract)
	case b.singleton:
		b.once.Do(func() { b.instance, b.err = c.build(key, b.factory) })
		return b.instance, b.err
	}
	return c.build(key, b.factory)
}

// build runs factory and the extenders registered for key.
func (c *Container) build(key string, factory Factory) (any, error) {
	instance, err := factory(c)
	if err != nil {
		return nil, fmt.Errorf("container: build [%s]: %w", key, err)
	}

	c.mu.RLock()
	exts := c.extenders[key]
	c.mu.RUnlock()
	for _, ext := range exts {
		if instance, err = ext(instance, c); err != nil {
			return nil, fmt.Errorf("container: extend [%s]: %w", key, err)
		}
	}
	return instance, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// Bound returns true if an abstract has been registered.
//
//	// Laravel: $app->bound('jsvalidator')
func (c *Container) Bound(abstract string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	key := c.canonical(abstract)
	_, hasBinding := c.bindings[key]
	_, hasInstance := c.instances[key]
	_, hasHook := c.resolving[key]
	return hasBinding || hasInstance || hasHook
}

// Forget removes all registrations for an abstract (binding + instance).
//
//	// Laravel: $app->forgetInstance(Cache::class)
func (c *Container) Forget(abstract string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(abstract)
	delete(c.bindings, key)
	delete(c.instances, key)
	delete(c.resolving, key)
}

// canonical resolves an alias to its canonical key.
func (c *Container) canonical(abstract string) string {
	if target, ok := c.aliases[abstract]; ok {
		return target
	}
	return abstract
}

// ── Generics helper ───────────────────────────────────────────────────────────

// Resolve is a generic helper that calls Make and type-asserts the result.
//
//	// Instead of: raw, err := c.Make("translator"); tr := raw.(*translation.Translator)
//	// Write:      tr, err := container.Resolve[*translation.Translator](c, "translator")
func Resolve[T any](c *Container, abstract string) (T, error) {
	var zero T
	instance, err := c.Make(abstract)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("container: Resolve[%T]: [%s] resolved to %T", zero, abstract, instance)
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on failure. Use it during boot,
// where a missing binding is a programming error.
func MustResolve[T any](c *Container, abstract string) T {
	typed, err := Resolve[T](c, abstract)
	if err != nil {
		panic(err)
	}
	return typed
}
