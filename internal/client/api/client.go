package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/hrportal/internal/client/transport"
)

// Client lists the backend calls made by the console.
type Client interface {
	Me(ctx context.Context) (*Identity, error)
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	Register(ctx context.Context, name, email, password string) (*AuthResponse, error)
	GoogleSession(ctx context.Context, sessionID string) (*AuthResponse, error)
	Logout(ctx context.Context) error
	SearchEmployees(ctx context.Context, query string, limit int) ([]EmployeeSummary, error)
	GoogleLoginURL() string
}

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient binds the REST contract to baseURL. httpClient should come
// from transport.New so credentials are attached.
func NewHTTPClient(baseURL string, httpClient *http.Client) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPClient{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}, nil
}

func (c *HTTPClient) GoogleLoginURL() string {
	return c.baseURL + "/auth/google"
}

// Me asks the backend who the current viewer is.
func (c *HTTPClient) Me(ctx context.Context) (*Identity, error) {
	body, err := c.do(ctx, http.MethodGet, "/auth/me", nil)
	if err != nil {
		return nil, err
	}
	if isBlank(body) {
		return nil, ErrEmptyBody
	}
	var id Identity
	if err := json.Unmarshal(body, &id); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmptyBody, err)
	}
	if id.ID == "" && id.Email == "" {
		return nil, ErrEmptyBody
	}
	return &id, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	return c.authCall(ctx, "/auth/login", loginRequest{Email: email, Password: password})
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	return c.authCall(ctx, "/auth/register", registerRequest{Name: name, Email: email, Password: password})
}

// GoogleSession exchanges an external-session id for a local identity.
func (c *HTTPClient) GoogleSession(ctx context.Context, sessionID string) (*AuthResponse, error) {
	return c.authCall(ctx, "/auth/google-session", googleSessionRequest{SessionID: sessionID})
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout", nil)
	return err
}

// ClearCookies forgets every cookie the backend has set, so a session
// cookie cannot outlive a failed logout.
func (c *HTTPClient) ClearCookies() {
	transport.ClearCookies(c.http)
}

// SearchEmployees looks employees up by free text. The result order is the
// backend's.
func (c *HTTPClient) SearchEmployees(ctx context.Context, query string, limit int) ([]EmployeeSummary, error) {
	path := "/employees/search?q=" + url.QueryEscape(strings.TrimSpace(query)) + "&limit=" + strconv.Itoa(limit)

	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if isBlank(body) {
		return []EmployeeSummary{}, nil
	}

	var out []EmployeeSummary
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmptyBody, err)
	}
	if out == nil {
		out = []EmployeeSummary{}
	}
	return out, nil
}

func (c *HTTPClient) authCall(ctx context.Context, path string, payload any) (*AuthResponse, error) {
	body, err := c.do(ctx, http.MethodPost, path, payload)
	if err != nil {
		return nil, err
	}
	return decodeAuthResponse(body)
}

// decodeAuthResponse accepts both {"user": {...}, "access_token": "..."}
// and a bare identity object.
func decodeAuthResponse(body []byte) (*AuthResponse, error) {
	if isBlank(body) {
		return nil, ErrEmptyBody
	}

	resp := &AuthResponse{Raw: json.RawMessage(body)}
	if err := json.Unmarshal(body, resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmptyBody, err)
	}
	if resp.User != nil {
		return resp, nil
	}

	var id Identity
	if err := json.Unmarshal(body, &id); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmptyBody, err)
	}
	if id.ID == "" && id.Email == "" {
		return nil, ErrEmptyBody
	}
	resp.User = &id
	return resp, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader = http.NoBody
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Status: resp.StatusCode, Detail: parseDetail(body)}
	}
	return body, nil
}

func isBlank(body []byte) bool {
	b := bytes.TrimSpace(body)
	return len(b) == 0 || bytes.Equal(b, []byte("null"))
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == code
}
