package app_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-jsvalidation/framework/app"
	"github.com/km-arc/go-jsvalidation/framework/container"
	"github.com/km-arc/go-jsvalidation/framework/jsvalidation"
)

func newApp(t *testing.T, opts ...app.Option) *app.Application {
	t.Helper()
	env := filepath.Join(t.TempDir(), "empty.env")
	require.NoError(t, os.WriteFile(env, nil, 0o600))

	a, err := app.New(append([]app.Option{app.WithEnvFiles(env)}, opts...)...)
	require.NoError(t, err)
	return a
}

type greetingProvider struct {
	container.BaseProvider
	booted bool
}

func (p *greetingProvider) Register(c *container.Container) {
	c.Instance("greeting", "hello")
}

func (p *greetingProvider) Boot(c *container.Container) error {
	p.booted = true
	return nil
}

func TestApplication_Services(t *testing.T) {
	t.Setenv("APP_ENV", "testing")
	a := newApp(t)
	require.NoError(t, a.Boot())

	assert.Equal(t, "GoJsValidation", a.Config().App.Name)
	assert.NotNil(t, a.Logger())
	assert.NotNil(t, a.Router())
	assert.NotNil(t, a.Views())
	assert.Equal(t, "en", a.Translator().Locale())

	f, err := a.JsValidator()
	require.NoError(t, err)
	alias, err := container.Resolve[*jsvalidation.Factory](a.Container, "jsvalidation")
	require.NoError(t, err)
	assert.Same(t, f, alias)

	assert.True(t, a.IsTesting())
	assert.False(t, a.IsLocal())
	assert.False(t, a.IsProduction())
	assert.Equal(t, app.Version, a.Version())
}

func TestApplication_RegisterCustomProvider(t *testing.T) {
	a := newApp(t)
	p := &greetingProvider{}
	require.NoError(t, a.Register(p))
	require.NoError(t, a.Boot())

	assert.True(t, p.booted)
	got, err := container.Resolve[string](a.Container, "greeting")
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestApplication_Server(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	a := newApp(t, app.WithViews(fstest.MapFS{"hello.html": {Data: []byte("hi")}}))
	a.Router().Get("/ping", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("pong")) })

	srv, err := a.Server()
	require.NoError(t, err)
	assert.True(t, a.Providers.Booted())
	assert.Equal(t, ":9090", srv.Addr)

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, "pong", rr.Body.String())

	out, err := a.Views().Render("hello", nil)
	require.NoError(t, err)
	assert.Equal(t, "hi", string(out))
}

func TestApplication_RunStopsWithContext(t *testing.T) {
	t.Setenv("APP_PORT", "0")
	a := newApp(t)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	assert.NoError(t, a.Run(ctx))
}
