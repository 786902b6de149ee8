package cli

import (
	"context"
	"time"

	"github.com/dmitrijs2005/hrportal/internal/client/navigation"
)

// Whoami prints the signed-in user and when the stored token expires.
func (a *App) Whoami(ctx context.Context) error {
	u := a.session.User()
	if u == nil {
		a.println("Not signed in")
		return nil
	}
	a.printf("%s <%s>\n", u.Name, u.Email)
	a.printf("  id:   %s\n", u.ID)
	a.printf("  role: %s\n", u.Role)
	if u.EmployeeID != nil {
		a.printf("  employee: %s\n", *u.EmployeeID)
	}
	if saved, ok := a.session.TokenSavedAt(ctx); ok {
		a.printf("  token saved:   %s\n", saved.Local().Format(time.RFC3339))
	}
	if exp, ok := a.session.TokenExpiry(ctx); ok {
		a.printf("  token expires: %s (in %s)\n", exp.Local().Format(time.RFC3339), time.Until(exp).Round(time.Second))
	}
	return nil
}

// Check re-verifies the session with the backend.
func (a *App) Check(ctx context.Context) error {
	if err := a.session.CheckAuth(ctx, true); err != nil {
		return err
	}
	if u := a.session.User(); u != nil {
		a.printf("Signed in as %s (%s)\n", u.Email, u.Role)
	} else {
		a.println("Not signed in")
	}
	return nil
}

// Go navigates to a route. Protected routes need a signed-in user; without
// one the viewer is sent to the login page.
func (a *App) Go(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.println("Usage: go <route>")
		return nil
	}
	route := navigation.Normalize(args[0])
	if !navigation.IsKnown(route) {
		a.println("Unknown route:", route)
		return nil
	}

	a.router.Navigate(route)
	if a.router.IsPublic(route) {
		return nil
	}

	if err := a.session.CheckAuth(ctx, false); err != nil {
		return err
	}
	if a.session.User() == nil {
		a.println("Sign in required")
		a.router.Navigate(navigation.RouteLogin)
	}
	return nil
}

// Routes lists the pages the console knows.
func (a *App) Routes(context.Context) error {
	for _, r := range navigation.KnownRoutes {
		if a.router.IsPublic(r) {
			a.println(" ", r, "(public)")
		} else {
			a.println(" ", r)
		}
	}
	return nil
}

// History lists the routes visited in this console session, oldest first.
func (a *App) History(context.Context) error {
	for i, r := range a.router.History() {
		a.printf("%3d  %s\n", i+1, r)
	}
	return nil
}

// Search opens the employee search surface for HR roles.
func (a *App) Search(ctx context.Context) error {
	if !a.session.HasRole(a.config.AuthorizedSearchRoles...) {
		a.println("Employee search is available to HR staff only.")
		return nil
	}

	picked, err := a.searchUI(ctx)
	if err != nil {
		a.log.Warn(ctx, "search surface failed", "error", err)
		return err
	}
	if picked != nil {
		a.printf("%s · %s", picked.FullName(), picked.EmpCode)
		if picked.DepartmentName != nil {
			a.printf(" · %s", *picked.DepartmentName)
		}
		if picked.Email != nil {
			a.printf(" · %s", *picked.Email)
		}
		a.printf(" · %s\n", picked.Status)
	}
	return nil
}
