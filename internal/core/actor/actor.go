package actor

import "github.com/gofrs/uuid"

// Actor is the identity issuing a request, authenticated or anonymous.
type Actor struct {
	ID            uuid.UUID
	Username      string
	Authenticated bool
}

// Anonymous returns an unauthenticated actor.
func Anonymous() Actor {
	return Actor{}
}

// New returns an authenticated actor.
func New(id uuid.UUID, username string) Actor {
	return Actor{ID: id, Username: username, Authenticated: true}
}

// Is reports whether the actor is authenticated as the given user.
func (a Actor) Is(userID uuid.UUID) bool {
	return a.Authenticated && userID != uuid.Nil && a.ID == userID
}

func (a Actor) String() string {
	if !a.Authenticated {
		return "anonymous"
	}
	return a.Username
}
