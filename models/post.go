package models

import (
	"time"

	"github.com/lib/pq"
)

type Post struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Text      string         `json:"text" gorm:"not null;type:text"`
	AuthorID  uint           `json:"author_id" gorm:"not null;index"`
	Author    User           `json:"author" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	GroupID   *uint          `json:"group_id" gorm:"index"`
	Group     *Group         `json:"group,omitempty" gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL"`
	ImageURL  string         `json:"image_url" gorm:"type:varchar(512)"`
	Hashtags  pq.StringArray `json:"hashtags" gorm:"type:text[]"`
	Comments  []Comment      `json:"comments,omitempty" gorm:"foreignKey:PostID"`
}
