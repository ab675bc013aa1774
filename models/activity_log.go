package models

import (
	"time"
)

type ActivityLog struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	PostID    uint      `json:"post_id"`
	GroupID   uint      `json:"group_id"`
	Activity  string    `json:"activity" gorm:"not null;type:varchar(50)"` // post_created, post_updated, post_deleted, comment_added, user_followed, user_unfollowed
}
