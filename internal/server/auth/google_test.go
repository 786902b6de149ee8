package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestNewGoogleOAuth_NotConfigured(t *testing.T) {
	_, err := NewGoogleOAuth("", "secret", "http://cb")
	assert.ErrorIs(t, err, ErrGoogleNotConfigured)
	_, err = NewGoogleOAuth("id", "", "http://cb")
	assert.ErrorIs(t, err, ErrGoogleNotConfigured)
}

func TestGoogleOAuth_AuthCodeURL(t *testing.T) {
	g, err := NewGoogleOAuth("client-id", "secret", "http://localhost:8000/auth/google/callback")
	require.NoError(t, err)

	u, err := url.Parse(g.AuthCodeURL("state-1"))
	require.NoError(t, err)

	q := u.Query()
	assert.Equal(t, "accounts.google.com", u.Host)
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "state-1", q.Get("state"))
	assert.Equal(t, "http://localhost:8000/auth/google/callback", q.Get("redirect_uri"))
	assert.Contains(t, q.Get("scope"), "email")
}

func newFakeGoogle(t *testing.T, profile string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.Form.Get("code") != "good-code" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"g-token","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer g-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(profile))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func pointAt(g *GoogleOAuth, srv *httptest.Server) {
	g.config.Endpoint = oauth2.Endpoint{
		AuthURL:   srv.URL + "/auth",
		TokenURL:  srv.URL + "/token",
		AuthStyle: oauth2.AuthStyleInParams,
	}
	g.userInfoURL = srv.URL + "/userinfo"
	g.http = srv.Client()
}

func TestGoogleOAuth_Exchange(t *testing.T) {
	srv := newFakeGoogle(t, `{"id":"g-1","email":"ann@example.com","name":"Ann Lee"}`)
	g, err := NewGoogleOAuth("id", "secret", "http://cb")
	require.NoError(t, err)
	pointAt(g, srv)

	u, err := g.Exchange(context.Background(), "good-code")
	require.NoError(t, err)
	assert.Equal(t, &GoogleUser{ID: "g-1", Email: "ann@example.com", Name: "Ann Lee"}, u)
}

func TestGoogleOAuth_ExchangeErrors(t *testing.T) {
	srv := newFakeGoogle(t, `{"id":"g-1","name":"No Email"}`)
	g, err := NewGoogleOAuth("id", "secret", "http://cb")
	require.NoError(t, err)
	pointAt(g, srv)

	_, err = g.Exchange(context.Background(), "  ")
	assert.Error(t, err)

	_, err = g.Exchange(context.Background(), "bad-code")
	assert.ErrorContains(t, err, "exchange code")

	_, err = g.Exchange(context.Background(), "good-code")
	assert.ErrorContains(t, err, "missing email")
}
