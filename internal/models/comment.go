package models

import "time"

// Comment represents a comment on a blog. A nil ParentID marks a
// top-level comment; replies carry the parent's id and IsReply set.
// Child comments are addressed through parent_id, so both directions
// of the thread relation are a single column.
//
// Comments are hard-deleted: subtree removal must actually free the
// rows, not hide them behind a soft-delete flag.
type Comment struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	BlogID       uint   `gorm:"not null;index" json:"blog_id"`
	Blog         Blog   `gorm:"foreignKey:BlogID" json:"-"`
	BlogAuthorID uint   `gorm:"not null" json:"blog_author_id"`
	UserID       uint   `gorm:"not null;index" json:"user_id"`
	User         User   `gorm:"foreignKey:UserID" json:"user"`
	ParentID     *uint  `gorm:"index" json:"parent_id,omitempty"`
	IsReply      bool   `gorm:"default:false" json:"is_reply"`
	Content      string `gorm:"not null" json:"content"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TopLevel reports whether the comment sits directly under the blog.
func (c *Comment) TopLevel() bool {
	return c.ParentID == nil
}
