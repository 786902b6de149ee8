// Package cli provides the interactive HR portal console.
//
// It wires configuration, the local token store, the REST client, the
// session manager and the employee search into a REPL standing in for page
// navigation. The prompt shows the current route and the signed-in user.
//
// Key commands:
//   - login / register / google / callback: establish a session
//   - whoami / check: inspect or re-verify the session
//   - go <route>: navigate; protected routes need a signed-in user
//   - search: open the employee search surface (HR roles only)
//   - logout
//
// The console is started via App.Run(ctx), which blocks until the user
// exits or ctx ends.
package cli
