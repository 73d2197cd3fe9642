package follower

import (
	"time"

	"github.com/gofrs/uuid"

	"yatube/internal/core/user"
)

// Follow is a directed edge: User receives Author's posts in their feed.
// Duplicate edges are allowed.
type Follow struct {
	ID uuid.UUID `gorm:"primaryKey;type:char(36)"`
	// UserID is nulled when the follower account is removed.
	UserID    *uuid.UUID `gorm:"type:char(36);index"`
	User      *user.User `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
	AuthorID  uuid.UUID  `gorm:"type:char(36);not null;index"`
	Author    user.User  `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
}

// OwnerID is the follower; edges without one are owned by nobody.
func (f *Follow) OwnerID() uuid.UUID {
	if f.UserID == nil {
		return uuid.Nil
	}
	return *f.UserID
}
