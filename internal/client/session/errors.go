package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/hrportal/internal/client/api"
)

// FallbackAuthMessage is shown when the backend gives no detail.
const FallbackAuthMessage = "Authentication failed"

// AuthError is returned by Login, Register and ProcessExternalSession when
// the backend rejects the request or cannot be reached. Status is 0 for
// transport failures.
type AuthError struct {
	Status  int
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

func (e *AuthError) Unwrap() error { return e.Err }

// toAuthError converts a client error. Context errors pass through untouched.
func toAuthError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	ae := &AuthError{Message: FallbackAuthMessage, Err: err}
	var se *api.StatusError
	if errors.As(err, &se) {
		ae.Status = se.Status
		if se.Detail != "" {
			ae.Message = se.Detail
		}
	}
	return ae
}
