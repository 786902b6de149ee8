package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"":                 "/",
		"/":                "/",
		"login":            "/login",
		" /employees/ ":    "/employees",
		"/dashboard?tab=1": "/dashboard",
		"/dashboard#x=1":   "/dashboard",
		"///":              "/",
	}
	for in, want := range tests {
		assert.Equal(t, want, Normalize(in), "input %q", in)
	}
}

func TestRouter_PublicRoutes(t *testing.T) {
	r := NewRouter("/", nil)

	assert.True(t, r.IsPublic("/"))
	assert.True(t, r.IsPublic("/login"))
	assert.True(t, r.IsPublic("register/"))
	assert.False(t, r.IsPublic("/employees"))
	assert.True(t, r.CurrentIsPublic())
}

func TestRouter_CustomPublicRoutes(t *testing.T) {
	r := NewRouter("/kiosk", []string{"/kiosk"})
	assert.True(t, r.CurrentIsPublic())
	assert.False(t, r.IsPublic("/login"))
}

func TestRouter_NavigateNotifiesListeners(t *testing.T) {
	r := NewRouter("/dashboard", nil)

	var got [][2]string
	r.OnChange(func(from, to string) { got = append(got, [2]string{from, to}) })

	r.Navigate("/leave")
	r.Navigate("/leave")
	r.Navigate("login")

	assert.Equal(t, [][2]string{{"/dashboard", "/leave"}, {"/leave", "/login"}}, got)
	assert.Equal(t, "/login", r.Current())
	assert.Equal(t, []string{"/dashboard", "/leave", "/login"}, r.History())
}

func TestIsKnown(t *testing.T) {
	assert.True(t, IsKnown("/reports"))
	assert.True(t, IsKnown("performance"))
	assert.False(t, IsKnown("/payroll"))
}
