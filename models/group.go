package models

import (
	"time"
)

// Group is a topic a post can be filed under. Groups are created by
// administrators and never own the posts that reference them.
type Group struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Title       string    `gorm:"not null;type:varchar(200)" json:"title"`
	Slug        string    `gorm:"unique;not null;type:varchar(100)" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	Posts       []Post    `json:"posts,omitempty" gorm:"foreignKey:GroupID"`
}
