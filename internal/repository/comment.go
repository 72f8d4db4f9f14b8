package repository

import (
	"context"

	"github.com/iamsihlegqeza/sterkspruit/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment operations.
// Creation and subtree deletion are transactional units covering the
// comment rows, the blog's counters, and the notifications they touch.
type CommentRepository interface {
	// CreateWithFanout persists the comment, bumps the owning blog's
	// counters, creates the activity notification (its CommentID is
	// filled in from the new row), and optionally links the new comment
	// into an earlier notification's reply-reference. The link applies
	// only when that notification belongs to the replier and references
	// the parent comment.
	CreateWithFanout(ctx context.Context, comment *models.Comment, notification *models.Notification, linkNotificationID *uint) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByBlog(ctx context.Context, blogID uint, limit, offset int) ([]*models.Comment, error)
	ListReplies(ctx context.Context, parentID uint, limit, offset int) ([]*models.Comment, error)
	// DeleteSubtree removes the comment and all of its descendants and
	// returns how many comments were removed.
	DeleteSubtree(ctx context.Context, id uint) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) CreateWithFanout(ctx context.Context, comment *models.Comment, notification *models.Notification, linkNotificationID *uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}

		updates := map[string]any{
			"total_comments": gorm.Expr("total_comments + 1"),
		}
		if comment.TopLevel() {
			updates["total_parent_comments"] = gorm.Expr("total_parent_comments + 1")
		}
		if err := tx.Model(&models.Blog{}).
			Where("id = ?", comment.BlogID).
			UpdateColumns(updates).Error; err != nil {
			return err
		}

		if notification != nil {
			notification.CommentID = &comment.ID
			if err := tx.Create(notification).Error; err != nil {
				return err
			}
		}

		if linkNotificationID != nil && comment.ParentID != nil {
			// Only the replier's own notification about the parent
			// comment can be stamped; a forged id matches nothing and
			// the comment still goes through.
			if err := tx.Model(&models.Notification{}).
				Where("id = ? AND recipient_id = ? AND comment_id = ?",
					*linkNotificationID, comment.UserID, *comment.ParentID).
				Update("reply_id", comment.ID).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByBlog(ctx context.Context, blogID uint, limit, offset int) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("blog_id = ? AND parent_id IS NULL", blogID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) ListReplies(ctx context.Context, parentID uint, limit, offset int) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("parent_id = ?", parentID).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) DeleteSubtree(ctx context.Context, id uint) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var root models.Comment
		if err := tx.First(&root, id).Error; err != nil {
			return err
		}

		// Worklist traversal instead of recursion: thread depth is
		// unbounded, the call stack is not. The full id set is gathered
		// before anything is deleted so a failure aborts the whole
		// transaction with no orphans.
		ids := []uint{root.ID}
		frontier := []uint{root.ID}
		for len(frontier) > 0 {
			var children []uint
			if err := tx.Model(&models.Comment{}).
				Where("parent_id IN ?", frontier).
				Pluck("id", &children).Error; err != nil {
				return err
			}
			if len(children) == 0 {
				break
			}
			ids = append(ids, children...)
			frontier = children
		}
		removed = int64(len(ids))

		if err := tx.Where("id IN ?", ids).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		// Notifications triggered by removed comments go with them;
		// reply-links into the removed set are cleared but the
		// notifications they sit on survive.
		if err := tx.Where("comment_id IN ?", ids).
			Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Notification{}).
			Where("reply_id IN ?", ids).
			Update("reply_id", nil).Error; err != nil {
			return err
		}

		// One batched counter update for the whole subtree. The
		// parent-comment counter moves only when the root itself was
		// top-level.
		updates := map[string]any{
			"total_comments": gorm.Expr("total_comments - ?", removed),
		}
		if root.TopLevel() {
			updates["total_parent_comments"] = gorm.Expr("total_parent_comments - 1")
		}
		return tx.Model(&models.Blog{}).
			Where("id = ?", root.BlogID).
			UpdateColumns(updates).Error
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
