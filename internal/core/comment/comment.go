package comment

import (
	"time"

	"github.com/gofrs/uuid"

	"yatube/internal/core/post"
	"yatube/internal/core/user"
)

// Comment is a reply to a post. Deleting the post deletes its comments.
type Comment struct {
	ID       uuid.UUID `gorm:"primaryKey;type:char(36)"`
	PostID   uuid.UUID `gorm:"type:char(36);not null;index"`
	Post     post.Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	AuthorID uuid.UUID `gorm:"type:char(36);not null;index"`
	Author   user.User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Text     string    `gorm:"type:text;not null"`
	Created  time.Time `gorm:"not null;index"`
}

// OwnerID returns the comment author; a nil comment has no owner.
func (c *Comment) OwnerID() uuid.UUID {
	if c == nil {
		return uuid.Nil
	}
	return c.AuthorID
}
