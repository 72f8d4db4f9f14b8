// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// SocialLinks holds the optional public profile links shown on a user's page.
type SocialLinks struct {
	YouTube   string `json:"youtube"`
	Instagram string `json:"instagram"`
	Facebook  string `json:"facebook"`
	Twitter   string `json:"twitter"`
	GitHub    string `json:"github"`
	Website   string `json:"website"`
}

// User represents an account on the platform. Password is empty for
// accounts created through Google sign-in; GoogleAuth records which
// method created the account so the two are never silently merged.
type User struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	FullName    string      `gorm:"not null" json:"fullname"`
	Email       string      `gorm:"unique;not null" json:"email"`
	Username    string      `gorm:"unique;not null" json:"username"`
	Password    string      `json:"-"`
	Bio         string      `gorm:"size:200" json:"bio"`
	ProfileImg  string      `json:"profile_img"`
	GoogleAuth  bool        `gorm:"default:false" json:"google_auth"`
	IsAdmin     bool        `gorm:"default:false" json:"is_admin"`
	TotalPosts  int64       `gorm:"default:0" json:"total_posts"`
	TotalReads  int64       `gorm:"default:0" json:"total_reads"`
	SocialLinks SocialLinks `gorm:"embedded;embeddedPrefix:social_" json:"social_links"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Blogs     []Blog         `gorm:"foreignKey:AuthorID" json:"blogs,omitempty"`
}
