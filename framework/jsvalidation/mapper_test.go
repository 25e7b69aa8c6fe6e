package jsvalidation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-jsvalidation/framework/jsvalidation"
	"github.com/km-arc/go-jsvalidation/framework/validation/rule"
)

func native(names ...string) func(string) bool {
	set := map[string]bool{}
	for _, n := range names {
		set[n] = true
	}
	return func(name string) bool { return set[name] }
}

func TestMapper_Map(t *testing.T) {
	m := jsvalidation.Mapper{Native: native("Required", "Email", "Between")}

	tests := []struct {
		name   string
		field  string
		raw    string
		target string
		params []string
	}{
		{"native passthrough", "age", "between:3,10", "age", []string{"3", "10"}},
		{"confirmed targets confirmation input", "password", "confirmed", "password_confirmation", []string{"password"}},
		{"confirmed nested field", "user.password", "confirmed", "user.password_confirmation", []string{"user[password]"}},
		{"same references field", "email_again", "same:user.email", "email_again", []string{"user[email]"}},
		{"required_if keeps values", "company", "required_if:account.type,business,team", "company", []string{"account[type]", "business", "team"}},
		{"required_with fields", "last", "required_with:first,middle", "last", []string{"first", "middle"}},
		{"gt literal", "max", "gt:10", "max", []string{"10"}},
		{"gt field", "max", "gt:limits.min", "max", []string{"limits[min]"}},
		{"regex delimiters", "code", "regex:/^[a-z,]+$/i", "code", []string{"^[a-z,]+$", "i"}},
		{"regex undelimited", "code", `regex:^\d+$`, "code", []string{`^\d+$`, ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := m.Map(tt.field, rule.Parse(tt.raw))
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tt.target, got.Field)
			assert.Equal(t, jsvalidation.BucketDefault, got.Bucket)
			assert.Equal(t, tt.params, got.Parameters)
		})
	}
}

func TestMapper_Unmappable(t *testing.T) {
	m := jsvalidation.Mapper{Native: native("Required")}

	_, ok, err := m.Map("name", rule.Parse("something_custom:1"))
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = m.Map("email", rule.Parse("unique:users"))
	require.NoError(t, err)
	assert.False(t, ok, "remote rules are dropped unless remote validation is on")
}

func TestMapper_Remote(t *testing.T) {
	m := jsvalidation.Mapper{Native: native(), Remote: true}

	got, ok, err := m.Map("user.email", rule.Parse("unique:users,email"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, jsvalidation.BucketRemote, got.Bucket)
	assert.Equal(t, []string{"user[email]"}, got.Parameters)
}

func TestMapper_MissingParameters(t *testing.T) {
	m := jsvalidation.Mapper{Native: native("Same")}

	for _, raw := range []string{"same", "required_if:type", "gt", "regex:"} {
		t.Run(raw, func(t *testing.T) {
			_, ok, err := m.Map("x", rule.Parse(raw))
			assert.ErrorIs(t, err, jsvalidation.ErrMissingParameters)
			assert.False(t, ok)
		})
	}
}

func TestMapper_DoesNotAliasParameters(t *testing.T) {
	m := jsvalidation.Mapper{Native: native("In")}
	r := rule.Parse("in:a,b")

	got, _, err := m.Map("x", r)
	require.NoError(t, err)
	got.Parameters[0] = "changed"
	assert.Equal(t, "a", r.Parameters[0])
}
