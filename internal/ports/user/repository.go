package user

import (
	"context"

	"github.com/gofrs/uuid"

	"yatube/internal/core/listing"
	"yatube/internal/core/user"
)

// UserRepository stores accounts. Identity is an external concern; this
// port only resolves usernames and backs token issuance.
type UserRepository interface {
	Create(ctx context.Context, user *user.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	List(ctx context.Context, username string, pg listing.Paginator, page int) (*listing.Page[*user.User], error)
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

// UserDTO is the public view of a user. The password hash never leaves the core.
type UserDTO struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// NewUserDTO maps a user entity to its public view.
func NewUserDTO(u *user.User) *UserDTO {
	return &UserDTO{
		ID:        u.ID.String(),
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}
