package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Google(ctx context.Context) error
	Callback(ctx context.Context, args []string) error
	Whoami(ctx context.Context) error
	Check(ctx context.Context) error
	Go(ctx context.Context, args []string) error
	Routes(ctx context.Context) error
	History(ctx context.Context) error
	Search(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the HR portal console.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF, when ctx ends, or when the user types "exit"
// or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help              — show available commands
//	  - register          — create an account
//	  - login             — sign in with email and password
//	  - google            — print the Google sign-in address
//	  - callback <frag>   — finish a Google sign-in
//	  - go <route>        — navigate
//	  - history           — routes visited so far
//	  - routes            — list routes
//	  - exit | quit       — leave the program
//
//	Logged in:
//	  - help              — show available commands
//	  - whoami            — show the signed-in user
//	  - check             — re-verify the session
//	  - go <route>        — navigate
//	  - history           — routes visited so far
//	  - routes            — list routes
//	  - search            — employee search (HR roles)
//	  - logout            — sign out
//	  - exit | quit       — leave the program
//
// Errors returned by command handlers are not printed here; handlers report
// their own failures. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("hr %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, check, go <route>, history, routes, search, logout, exit")
			} else {
				printlnFn("Available commands: register, login, google, callback <fragment>, go <route>, history, routes, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "google":
			_ = a.Google(ctx)

		case "callback":
			_ = a.Callback(ctx, args)

		case "whoami":
			_ = a.Whoami(ctx)

		case "check":
			_ = a.Check(ctx)

		case "go":
			_ = a.Go(ctx, args)

		case "routes":
			_ = a.Routes(ctx)

		case "history":
			_ = a.History(ctx)

		case "search":
			_ = a.Search(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			// EOF after a final unterminated line
			return
		}
	}
}
