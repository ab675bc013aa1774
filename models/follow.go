package models

import (
	"time"
)

// Follow is a directed edge: UserID follows AuthorID. The pair is unique
// and a user can never follow themselves; both rules live in the database
// so racing requests cannot slip past an application-level check.
type Follow struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_follows_user_author;index"`
	AuthorID  uint      `json:"author_id" gorm:"not null;uniqueIndex:idx_follows_user_author;index;check:chk_follows_no_self,user_id <> author_id"`

	User   User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Author User `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}
