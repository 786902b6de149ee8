// Package common contains shared constants and sentinel errors used across
// hrportal components.
package common

// AuthorizationHeaderName carries the bearer access token on outbound requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the access token in the Authorization header.
const BearerPrefix = "Bearer "

// RequestIDHeaderName correlates client requests with server logs.
const RequestIDHeaderName = "X-Request-ID"

// SessionCookieName is the cookie the backend sets on login; the client
// returns it on every call alongside the bearer header.
const SessionCookieName = "hrportal_session"
