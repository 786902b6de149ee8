package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// ErrGoogleNotConfigured is returned when no OAuth client id/secret is set.
var ErrGoogleNotConfigured = errors.New("google oauth client not configured")

// GoogleUser is the subset of the Google profile the backend relies on.
type GoogleUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GoogleOAuth wraps the OAuth 2.0 authorization code flow for Google.
type GoogleOAuth struct {
	config      *oauth2.Config
	http        *http.Client
	userInfoURL string
}

func NewGoogleOAuth(clientID, clientSecret, redirectURL string) (*GoogleOAuth, error) {
	if clientID == "" || clientSecret == "" {
		return nil, ErrGoogleNotConfigured
	}
	return &GoogleOAuth{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		http:        http.DefaultClient,
		userInfoURL: googleUserInfoURL,
	}, nil
}

// AuthCodeURL returns the consent page URL for state.
func (g *GoogleOAuth) AuthCodeURL(state string) string {
	return g.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades the authorization code for a token and fetches the
// profile it grants access to.
func (g *GoogleOAuth) Exchange(ctx context.Context, code string) (*GoogleUser, error) {
	if strings.TrimSpace(code) == "" {
		return nil, errors.New("empty authorization code")
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, g.http)
	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build userinfo request: %w", err)
	}
	token.SetAuthHeader(req)

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("userinfo request failed: %s", resp.Status)
	}

	var user GoogleUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decode userinfo: %w", err)
	}
	if user.Email == "" {
		return nil, errors.New("google profile missing email")
	}
	return &user, nil
}
