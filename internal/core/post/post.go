package post

import (
	"time"

	"github.com/gofrs/uuid"

	"yatube/internal/core/group"
	"yatube/internal/core/user"
)

// Post is a text entry by one author, optionally filed under a group.
type Post struct {
	ID       uuid.UUID    `gorm:"primaryKey;type:char(36)"`
	Text     string       `gorm:"type:text;not null"`
	PubDate  time.Time    `gorm:"not null;index"`
	AuthorID uuid.UUID    `gorm:"type:char(36);not null;index"`
	Author   user.User    `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	GroupID  *uuid.UUID   `gorm:"type:char(36);index"`
	Group    *group.Group `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL"`
	// Image is an opaque reference into attachment storage.
	Image *string `gorm:"type:varchar(255)"`
}

// OwnerID is the only identity allowed to edit or delete the post.
// A nil post has no owner.
func (p *Post) OwnerID() uuid.UUID {
	if p == nil {
		return uuid.Nil
	}
	return p.AuthorID
}
