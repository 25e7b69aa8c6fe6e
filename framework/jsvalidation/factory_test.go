package jsvalidation_test

import (
	"html/template"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-jsvalidation/framework/jsvalidation"
	"github.com/km-arc/go-jsvalidation/framework/translation"
	"github.com/km-arc/go-jsvalidation/framework/validation"
)

func newFactory(t *testing.T, cfg jsvalidation.Config) *jsvalidation.Factory {
	t.Helper()
	f, err := jsvalidation.NewFactory(cfg, translation.Default(), slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	return f
}

func TestFactory_Defaults(t *testing.T) {
	f := newFactory(t, jsvalidation.Config{})

	m, err := f.Make(validation.Rules{"email": "required|email"}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "bootstrap", m.View())
	data := m.ValidationData()
	assert.Equal(t, "form", data.Selector)
	assert.Equal(t, 1, data.Rules.Len())
	assert.Empty(t, data.Messages)

	assert.Equal(t, "#signup", m.Selector("#signup").ValidationData().Selector)
	assert.Equal(t, "#signup", m.Selector("").ValidationData().Selector, "empty selector keeps the current one")
}

func TestFactory_InvalidRules(t *testing.T) {
	f := newFactory(t, jsvalidation.Config{})

	_, err := f.Make([]string{"required"}, nil, nil)
	assert.ErrorIs(t, err, validation.ErrInvalidRules)

	_, err = f.Make(map[string]any{"email": 42}, nil, nil)
	assert.ErrorIs(t, err, validation.ErrInvalidRules)
}

func TestFactory_MessagesAndAttributes(t *testing.T) {
	f := newFactory(t, jsvalidation.Config{})

	m, err := f.Make(
		map[string][]string{"email": {"required"}},
		map[string]string{"email.required": "Give us :attribute."},
		map[string]string{"email": "your e-mail"},
	)
	require.NoError(t, err)

	entries := m.Rules().Bucket("email", jsvalidation.BucketDefault)
	require.Len(t, entries, 1)
	assert.Equal(t, "Give us your e-mail.", entries[0].Message)
}

func TestFactory_Cache(t *testing.T) {
	rules := validation.Rules{"email": "required|email", "age": "numeric|min:18"}

	t.Run("hit returns the stored result", func(t *testing.T) {
		f := newFactory(t, jsvalidation.Config{CacheSize: 8})

		m1, err := f.Make(rules, nil, nil)
		require.NoError(t, err)
		m2, err := f.Make(validation.Rules{"age": "numeric|min:18", "email": "required|email"}, nil, nil)
		require.NoError(t, err)

		assert.Same(t, m1.Rules(), m2.Rules())
	})

	t.Run("different inputs miss", func(t *testing.T) {
		f := newFactory(t, jsvalidation.Config{CacheSize: 8})

		m1, err := f.Make(rules, nil, nil)
		require.NoError(t, err)
		m2, err := f.Make(rules, map[string]string{"required": "x"}, nil)
		require.NoError(t, err)

		assert.NotSame(t, m1.Rules(), m2.Rules())
		assert.Equal(t, "x", m2.Rules().Bucket("email", jsvalidation.BucketDefault)[0].Message)
	})

	t.Run("disabled", func(t *testing.T) {
		f := newFactory(t, jsvalidation.Config{})

		m, err := f.Make(rules, nil, nil)
		require.NoError(t, err)

		assert.NotSame(t, m.Rules(), m.Rules())
	})
}

func TestFactory_Remote(t *testing.T) {
	f := newFactory(t, jsvalidation.Config{Remote: true})

	m, err := f.Make(validation.Rules{"email": "required|unique:users"}, nil, nil)
	require.NoError(t, err)

	remote := m.Rules().Bucket("email", jsvalidation.BucketRemote)
	require.Len(t, remote, 1)
	assert.Equal(t, "Unique", remote[0].Rule)
}

func TestManager_JSON(t *testing.T) {
	f := newFactory(t, jsvalidation.Config{FormSelector: "#login"})

	m, err := f.Make(validation.Rules{"email": "required"}, nil, nil)
	require.NoError(t, err)

	b, err := m.JSON()
	require.NoError(t, err)
	assert.Equal(t,
		`{"selector":"#login","rules":{"email":{"laravelValidation":[["Required",[],"The email field is required.",true]]}},"messages":{}}`,
		string(b))
}

type signupRequest struct{}

func (signupRequest) Rules() any {
	return validation.RuleSet{
		validation.Field("name", "required", "max:50"),
		validation.Field("password", "required", "confirmed"),
	}
}
func (signupRequest) Messages() map[string]string   { return map[string]string{"name.required": "Tell us your :attribute."} }
func (signupRequest) Attributes() map[string]string { return map[string]string{"name": "full name"} }

func TestFactory_FormRequest(t *testing.T) {
	f := newFactory(t, jsvalidation.Config{})

	m, err := f.FormRequest(signupRequest{})
	require.NoError(t, err)

	res := m.Rules()
	assert.Equal(t, []string{"name", "password", "password_confirmation"}, fieldNames(res))
	assert.Equal(t, "Tell us your full name.", res.Bucket("name", jsvalidation.BucketDefault)[0].Message)

	_, err = f.FormRequest(nil)
	assert.ErrorIs(t, err, jsvalidation.ErrNilFormRequest)
}

type stubRenderer struct {
	view string
	data jsvalidation.ViewData
}

func (s *stubRenderer) RenderScript(view string, data jsvalidation.ViewData) (template.HTML, error) {
	s.view, s.data = view, data
	return "<script></script>", nil
}

func TestManager_Render(t *testing.T) {
	f := newFactory(t, jsvalidation.Config{View: "plain"})

	m, err := f.Make(validation.Rules{"email": "required"}, nil, nil)
	require.NoError(t, err)

	r := &stubRenderer{}
	out, err := m.Selector("#f").Render(r)
	require.NoError(t, err)
	assert.Equal(t, template.HTML("<script></script>"), out)
	assert.Equal(t, "plain", r.view)
	assert.Equal(t, "#f", r.data.Selector)
	assert.Equal(t, 1, r.data.Rules.Len())
}
