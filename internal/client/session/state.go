package session

import (
	"fmt"

	"github.com/dmitrijs2005/hrportal/internal/client/api"
)

// State is the identity-check lifecycle.
type State int

const (
	// StateUnchecked: no check has resolved since start or since logout.
	StateUnchecked State = iota
	// StateChecking: a GET /auth/me is in flight.
	StateChecking
	// StateDone: the last check (or a login) resolved.
	StateDone
)

func (s State) String() string {
	switch s {
	case StateUnchecked:
		return "unchecked"
	case StateChecking:
		return "checking"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Snapshot is a copy of the session handed to views.
type Snapshot struct {
	User    *api.Identity
	State   State
	Loading bool

	resolved bool
}

// CheckInProgress reports whether an identity check is in flight.
func (s Snapshot) CheckInProgress() bool { return s.State == StateChecking }

// InitialCheckDone reports whether an identity check has resolved since
// start or the last logout. A forced re-check does not reset it.
func (s Snapshot) InitialCheckDone() bool { return s.resolved }

// Authenticated reports whether a user is known.
func (s Snapshot) Authenticated() bool { return s.User != nil }
