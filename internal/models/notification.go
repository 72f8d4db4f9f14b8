package models

import "time"

// NotificationType identifies what triggered a notification.
type NotificationType string

// Notification kinds.
const (
	NotificationLike    NotificationType = "like"
	NotificationComment NotificationType = "comment"
	NotificationReply   NotificationType = "reply"
)

// Notification is a record of activity aimed at a user. CommentID is
// the comment that triggered it (nil for likes). RepliedOnCommentID is
// set on reply notifications and points at the comment that was
// answered. ReplyID links the recipient's own reply back into the
// notification; when that reply is deleted the link is cleared, the
// notification itself stays.
type Notification struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	Type        NotificationType `gorm:"type:varchar(16);not null;index" json:"type"`
	RecipientID uint             `gorm:"not null;index" json:"recipient_id"`
	Recipient   User             `gorm:"foreignKey:RecipientID" json:"-"`
	ActorID     uint             `gorm:"not null" json:"actor_id"`
	Actor       User             `gorm:"foreignKey:ActorID" json:"actor"`
	BlogID      uint             `gorm:"not null;index" json:"blog_id"`
	Blog        Blog             `gorm:"foreignKey:BlogID" json:"blog"`

	CommentID          *uint    `gorm:"index" json:"comment_id,omitempty"`
	Comment            *Comment `gorm:"foreignKey:CommentID" json:"comment,omitempty"`
	RepliedOnCommentID *uint    `json:"replied_on_comment_id,omitempty"`
	RepliedOnComment   *Comment `gorm:"foreignKey:RepliedOnCommentID" json:"replied_on_comment,omitempty"`
	ReplyID            *uint    `gorm:"index" json:"reply_id,omitempty"`
	Reply              *Comment `gorm:"foreignKey:ReplyID" json:"reply,omitempty"`

	Seen      bool      `gorm:"default:false;index" json:"seen"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
