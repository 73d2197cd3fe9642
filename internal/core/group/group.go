package group

import "github.com/gofrs/uuid"

// Group is a topic posts can be filed under. Slug is immutable.
type Group struct {
	ID          uuid.UUID `gorm:"primaryKey;type:char(36)"`
	Title       string    `gorm:"type:varchar(200);not null"`
	Slug        string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	Description string    `gorm:"type:text"`
}
