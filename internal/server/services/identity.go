// Package services contains the server-side business logic: session
// lifecycle, authentication, and the ownership/visibility rules for owned
// rows. Every operation takes the caller's resolved Identity explicitly;
// nothing here reads ambient request state.
package services

// Identity is the resolved result of a session lookup: either Anonymous or
// Authenticated with exactly one user id. The zero value is Anonymous.
type Identity struct {
	userID        string
	authenticated bool
}

// Anonymous returns the identity of a caller with no valid session.
func Anonymous() Identity {
	return Identity{}
}

// Authenticated returns the identity of the user with the given id.
func Authenticated(userID string) Identity {
	return Identity{userID: userID, authenticated: true}
}

// IsAnonymous reports whether no user is bound to this identity.
func (i Identity) IsAnonymous() bool {
	return !i.authenticated
}

// UserID returns the bound user id, or the empty string for Anonymous.
func (i Identity) UserID() string {
	return i.userID
}
