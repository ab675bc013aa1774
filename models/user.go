package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID            uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	Username      string         `gorm:"unique;not null" json:"username"`
	FirstName     string         `json:"first_name"`
	LastName      string         `json:"last_name"`
	Email         string         `gorm:"unique;not null" json:"email"`
	Password      *string        `gorm:"type:varchar(255)" json:"-"` // nil for OAuth-only accounts
	GoogleID      *string        `gorm:"uniqueIndex" json:"-"`
	Provider      string         `gorm:"default:'email'" json:"provider"`
	Bio           string         `json:"bio"`
	Avatar        string         `json:"avatar"`
	Role          string         `gorm:"default:'user'" json:"role"`
	Posts         []Post         `json:"posts,omitempty" gorm:"foreignKey:AuthorID"`
	Comments      []Comment      `json:"comments,omitempty" gorm:"foreignKey:AuthorID"`
	Followers     []User         `json:"followers,omitempty" gorm:"many2many:follows;foreignKey:ID;joinForeignKey:AuthorID;References:ID;joinReferences:UserID"`
	Following     []User         `json:"following,omitempty" gorm:"many2many:follows;foreignKey:ID;joinForeignKey:UserID;References:ID;joinReferences:AuthorID"`
	RefreshTokens []RefreshToken `json:"-" gorm:"foreignKey:UserID"`
}
