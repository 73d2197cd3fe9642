package policy

import (
	"github.com/gofrs/uuid"
	"github.com/pkg/errors"

	"yatube/internal/core/actor"
	"yatube/internal/core/apperror"
)

// Operation is an action checked by IsPermitted.
type Operation int

const (
	List Operation = iota
	Retrieve
	Create
	Update
	Delete
)

func (op Operation) String() string {
	switch op {
	case List:
		return "list"
	case Retrieve:
		return "retrieve"
	case Create:
		return "create"
	case Update:
		return "update"
	case Delete:
		return "delete"
	default:
		return "unknown"
	}
}

// Owned is content with a single recorded author.
type Owned interface {
	OwnerID() uuid.UUID
}

// IsPermitted decides whether a may perform op on target.
// Reads are open to everyone, creates need an authenticated actor, and
// updates and deletes are reserved to the target's author. There is no
// staff override.
func IsPermitted(a actor.Actor, op Operation, target Owned) bool {
	switch op {
	case List, Retrieve:
		return true
	case Create:
		return a.Authenticated
	case Update, Delete:
		if target == nil {
			return false
		}
		return a.Is(target.OwnerID())
	default:
		return false
	}
}

// Check is IsPermitted returning an apperror.ErrPermission on refusal.
func Check(a actor.Actor, op Operation, target Owned) error {
	if IsPermitted(a, op, target) {
		return nil
	}
	if !a.Authenticated {
		return errors.Wrapf(apperror.ErrPermission, "%s requires authentication", op)
	}
	return errors.Wrapf(apperror.ErrPermission, "%s by %s: not the author", op, a)
}

// RequireAuthenticated rejects anonymous actors.
func RequireAuthenticated(a actor.Actor) error {
	return Check(a, Create, nil)
}
