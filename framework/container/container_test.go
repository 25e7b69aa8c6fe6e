package container_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-jsvalidation/framework/container"
)

type counter struct{ n int }

func TestContainer_BindIsTransient(t *testing.T) {
	c := container.New()
	c.Bind("counter", func(*container.Container) (any, error) { return &counter{}, nil })

	a := container.MustResolve[*counter](c, "counter")
	b := container.MustResolve[*counter](c, "counter")
	assert.NotSame(t, a, b)
}

func TestContainer_SingletonBuildsOnce(t *testing.T) {
	c := container.New()
	var builds atomic.Int32
	c.Singleton("counter", func(*container.Container) (any, error) {
		builds.Add(1)
		return &counter{}, nil
	})

	var wg sync.WaitGroup
	got := make([]*counter, 8)
	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i] = container.MustResolve[*counter](c, "counter")
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, builds.Load())
	for _, g := range got {
		assert.Same(t, got[0], g)
	}
}

func TestContainer_Instance(t *testing.T) {
	c := container.New()
	want := &counter{n: 3}
	c.Instance("counter", want)

	got, err := container.Resolve[*counter](c, "counter")
	require.NoError(t, err)
	assert.Same(t, want, got)

	self, err := container.Resolve[*container.Container](c, "container")
	require.NoError(t, err)
	assert.Same(t, c, self)
}

func TestContainer_NotBound(t *testing.T) {
	c := container.New()

	_, err := c.Make("missing")
	assert.ErrorIs(t, err, container.ErrNotBound)
	assert.False(t, c.Bound("missing"))
	assert.Panics(t, func() { container.MustResolve[string](c, "missing") })
}

func TestContainer_ResolveWrongType(t *testing.T) {
	c := container.New()
	c.Instance("name", "jsvalidation")

	_, err := container.Resolve[int](c, "name")
	assert.Error(t, err)
}

func TestContainer_FactoryError(t *testing.T) {
	c := container.New()
	boom := errors.New("boom")
	c.Singleton("broken", func(*container.Container) (any, error) { return nil, boom })

	_, err := c.Make("broken")
	assert.ErrorIs(t, err, boom)
}

func TestContainer_Alias(t *testing.T) {
	c := container.New()
	c.Instance("jsvalidator", "factory")
	require.NoError(t, c.Alias("jsvalidator", "jsvalidation"))
	assert.Error(t, c.Alias("x", "x"))

	got, err := container.Resolve[string](c, "jsvalidation")
	require.NoError(t, err)
	assert.Equal(t, "factory", got)
}

func TestContainer_Extend(t *testing.T) {
	c := container.New()
	c.Singleton("counter", func(*container.Container) (any, error) { return &counter{n: 1}, nil })
	c.Extend("counter", func(instance any, _ *container.Container) (any, error) {
		instance.(*counter).n *= 10
		return instance, nil
	})

	assert.Equal(t, 10, container.MustResolve[*counter](c, "counter").n)
}

func TestContainer_Forget(t *testing.T) {
	c := container.New()
	c.Instance("x", 1)
	require.True(t, c.Bound("x"))

	c.Forget("x")
	assert.False(t, c.Bound("x"))
}

func TestContainer_RebindReplacesInstance(t *testing.T) {
	c := container.New()
	c.Instance("x", 1)
	c.Singleton("x", func(*container.Container) (any, error) { return 2, nil })

	assert.Equal(t, 2, container.MustResolve[int](c, "x"))
}
