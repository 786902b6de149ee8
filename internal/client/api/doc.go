// Package api is the client side of the HR backend's REST contract.
//
// # Overview
//
// The package provides:
//  1. The Client interface listing every backend call the console makes:
//     the identity check, login/register, the external-session exchange,
//     logout and the employee lookup.
//  2. HTTPClient, its implementation over an *http.Client built by the
//     transport package (which attaches credentials).
//  3. The wire models: Identity, AuthResponse, EmployeeSummary.
//
// # Error Handling
//
// Transport failures are reported as ErrUnavailable. Non-2xx responses come
// back as *StatusError carrying the server's "detail" message; 401 and 403
// additionally match ErrUnauthorized with errors.Is. A 2xx response whose
// body cannot be decoded yields ErrEmptyBody. Context cancellation is
// returned as the context's own error.
package api
