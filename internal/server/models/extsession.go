package models

import "time"

// ExternalSession is the one-time id handed to the frontend after a Google
// login; the frontend exchanges it for the user's identity and token.
type ExternalSession struct {
	ID        string
	UserID    string
	Expires   time.Time
	CreatedAt time.Time
}
