// Package session owns who the viewer is.
//
// A Manager resolves the identity once per page load (Mount), guards
// protected routes by redirecting to the login page when the backend does
// not recognise the viewer, and performs the login, registration, external
// session and logout flows. The identity check is single-flight: concurrent
// callers share one GET /auth/me and observe the same outcome.
//
// The Manager is constructed once in the composition root and handed to the
// CLI and the TUI; there is no package-level instance.
package session
