package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// TagList stores a blog's tag set as a JSON array column.
type TagList []string

// Value implements driver.Valuer.
func (t TagList) Value() (driver.Value, error) {
	if t == nil {
		t = TagList{}
	}
	return json.Marshal(t)
}

// Scan implements sql.Scanner.
func (t *TagList) Scan(value any) error {
	if value == nil {
		*t = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return fmt.Errorf("unsupported tag list type %T", value)
	}
}

// Blog represents a published post or an unpublished draft. Content is
// the editor's structured block document, stored verbatim as JSON.
// The Total* columns are denormalized counters maintained inside the
// same transaction as the write that changes them.
type Blog struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Slug        string          `gorm:"unique;not null" json:"slug"`
	Title       string          `gorm:"not null" json:"title"`
	Description string          `gorm:"size:200" json:"description"`
	Banner      string          `json:"banner"`
	Content     json.RawMessage `gorm:"type:jsonb" json:"content"`
	Tags        TagList         `gorm:"type:jsonb" json:"tags"`
	Draft       bool            `gorm:"default:false;index" json:"draft"`
	AuthorID    uint            `gorm:"not null;index" json:"author_id"`
	Author      User            `gorm:"foreignKey:AuthorID" json:"author"`

	TotalReads          int64 `gorm:"default:0" json:"total_reads"`
	TotalLikes          int64 `gorm:"default:0" json:"total_likes"`
	TotalComments       int64 `gorm:"default:0" json:"total_comments"`
	TotalParentComments int64 `gorm:"default:0" json:"total_parent_comments"`

	PublishedAt time.Time      `json:"published_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
