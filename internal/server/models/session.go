package models

import "time"

// Session binds an opaque token to a user. Expiry is checked at resolve
// time; rows past ExpiresAt are dead even if not yet deleted.
type Session struct {
	Token     string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}
