package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/hrportal/internal/client/navigation"
	"github.com/dmitrijs2005/hrportal/internal/client/session"
	"github.com/dmitrijs2005/hrportal/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for name, email and password and creates an account.
// A rejected attempt is reported to the user and returned.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter full name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.session.Register(ctx, name, email, string(password)); err != nil {
		a.reportAuthError(err)
		return err
	}

	a.welcome()
	return nil
}

// Login prompts for credentials and signs in.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.session.Login(ctx, email, string(password)); err != nil {
		a.reportAuthError(err)
		return err
	}

	a.welcome()
	return nil
}

// Google prints the external login address. The browser comes back with a
// #session_id=... fragment to pass to the callback command.
func (a *App) Google(context.Context) error {
	a.println("Open this address in a browser to sign in with Google:")
	a.println("  " + a.session.GoogleLoginURL())
	a.println("Then run: callback <fragment from the redirect address>")
	return nil
}

// Callback finishes an external login from the redirect fragment.
func (a *App) Callback(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.println("Usage: callback <fragment>")
		return nil
	}
	fragment := args[0]

	if err := a.session.Mount(ctx, session.MountInfo{Fragment: fragment}); err != nil {
		return err
	}
	id, ok := session.ExternalSessionID(fragment)
	if !ok {
		a.println("No session_id in fragment")
		return nil
	}
	return a.completeExternalSession(ctx, id)
}

func (a *App) completeExternalSession(ctx context.Context, id string) error {
	if _, err := a.session.ProcessExternalSession(ctx, id); err != nil {
		a.reportAuthError(err)
		a.router.Navigate(navigation.RouteLogin)
		return err
	}
	a.welcome()
	return nil
}

// Logout ends the session; local state is cleared even when the backend
// cannot be reached.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	a.println("Logged out")
	return nil
}

func (a *App) welcome() {
	u := a.session.User()
	if u == nil {
		return
	}
	if a.router.CurrentIsPublic() {
		a.router.Navigate(navigation.RouteDashboard)
	}
	name := u.Name
	if name == "" {
		name = u.Email
	}
	a.printf("Welcome, %s!\n", name)
}

func (a *App) reportAuthError(err error) {
	var ae *session.AuthError
	if errors.As(err, &ae) {
		a.println("Error:", ae.Message)
		return
	}
	a.println("Error:", err.Error())
}
