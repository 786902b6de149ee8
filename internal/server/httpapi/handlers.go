package httpapi

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dmitrijs2005/hrportal/internal/common"
	"github.com/dmitrijs2005/hrportal/internal/server/services"
)

const (
	msgInvalidCredentials = "Invalid email or password"
	msgEmailTaken         = "Email already registered"
	msgMissingFields      = "Name, email and password are required"
	msgBadBody            = "Malformed request body"
	msgInternal           = "Internal server error"
	msgSessionInvalid     = "Invalid or expired session"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	u, _ := userFrom(r.Context())
	writeJSON(w, http.StatusOK, toIdentity(u))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, msgBadBody)
		return
	}

	sess, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			s.logger.Info(r.Context(), "login rejected", "email", req.Email)
			writeDetail(w, http.StatusUnauthorized, msgInvalidCredentials)
			return
		}
		s.logger.Error(r.Context(), "login failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, msgInternal)
		return
	}

	s.setSessionCookie(w, sess.AccessToken, sess.Expires)
	writeJSON(w, http.StatusOK, authResponse{User: toIdentity(sess.User), AccessToken: sess.AccessToken})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, msgBadBody)
		return
	}

	sess, err := s.users.Register(r.Context(), req.Name, req.Email, req.Password)
	switch {
	case errors.Is(err, common.ErrorValidation):
		writeDetail(w, http.StatusBadRequest, msgMissingFields)
		return
	case errors.Is(err, common.ErrorAlreadyExists):
		writeDetail(w, http.StatusConflict, msgEmailTaken)
		return
	case err != nil:
		s.logger.Error(r.Context(), "registration failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, msgInternal)
		return
	}

	s.logger.Info(r.Context(), "Registered", "user_id", sess.User.ID)
	s.setSessionCookie(w, sess.AccessToken, sess.Expires)
	writeJSON(w, http.StatusOK, authResponse{User: toIdentity(sess.User), AccessToken: sess.AccessToken})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearCookie(w, s.cookieName, "/")
	writeDetail(w, http.StatusOK, "Logged out")
}

func (s *Server) handleGoogleStart(w http.ResponseWriter, r *http.Request) {
	if s.google == nil {
		http.Redirect(w, r, s.frontendURL+"/login?error=google_not_configured", http.StatusFound)
		return
	}

	state, err := newStateToken()
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, msgInternal)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.stateCookie,
		Value:    state,
		Path:     "/auth/google",
		HttpOnly: true,
		Secure:   s.secureCookie,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(5 * time.Minute),
	})
	http.Redirect(w, r, s.google.AuthCodeURL(state), http.StatusFound)
}

func (s *Server) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if s.google == nil {
		http.Redirect(w, r, s.frontendURL+"/login?error=google_not_configured", http.StatusFound)
		return
	}

	state := r.URL.Query().Get("state")
	if c, err := r.Cookie(s.stateCookie); err != nil || c.Value == "" || c.Value != state {
		s.loginError(w, r, "invalid_state")
		return
	}
	s.clearCookie(w, s.stateCookie, "/auth/google")

	if e := r.URL.Query().Get("error"); e != "" {
		s.loginError(w, r, e)
		return
	}

	gu, err := s.google.Exchange(ctx, r.URL.Query().Get("code"))
	if err != nil {
		s.logger.Warn(ctx, "google exchange failed", "error", err)
		s.loginError(w, r, "google_exchange_failed")
		return
	}

	id, err := s.users.StartExternalSession(ctx, gu)
	if err != nil {
		s.logger.Error(ctx, "external session failed", "error", err)
		s.loginError(w, r, "server_error")
		return
	}

	http.Redirect(w, r, s.frontendURL+"/dashboard#session_id="+url.QueryEscape(id), http.StatusFound)
}

func (s *Server) loginError(w http.ResponseWriter, r *http.Request, code string) {
	http.Redirect(w, r, s.frontendURL+"/login?error="+url.QueryEscape(code), http.StatusFound)
}

func (s *Server) handleGoogleSession(w http.ResponseWriter, r *http.Request) {
	var req googleSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, msgBadBody)
		return
	}

	sess, err := s.users.ConsumeExternalSession(r.Context(), req.SessionID)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) || errors.Is(err, common.ErrSessionExpired) {
			writeDetail(w, http.StatusUnauthorized, msgSessionInvalid)
			return
		}
		s.logger.Error(r.Context(), "external session exchange failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, msgInternal)
		return
	}

	s.setSessionCookie(w, sess.AccessToken, sess.Expires)
	writeJSON(w, http.StatusOK, externalSessionResponse{identity: toIdentity(sess.User), AccessToken: sess.AccessToken})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := services.DefaultSearchLimit
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeDetail(w, http.StatusUnprocessableEntity, "limit must be an integer")
			return
		}
		limit = n
	}

	found, err := s.employees.Search(r.Context(), q.Get("q"), limit)
	if err != nil {
		s.logger.Error(r.Context(), "employee search failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, msgInternal)
		return
	}
	writeJSON(w, http.StatusOK, toSummaries(found))
}

// --- cookies ---

func (s *Server) setSessionCookie(w http.ResponseWriter, value string, expires time.Time) {
	sameSite := http.SameSiteLaxMode
	if s.secureCookie {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secureCookie,
		SameSite: sameSite,
		Expires:  expires,
	})
}

func (s *Server) clearCookie(w http.ResponseWriter, name, path string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     path,
		HttpOnly: true,
		Secure:   s.secureCookie,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func newStateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
