package service

import (
	"context"
	"testing"

	"github.com/iamsihlegqeza/sterkspruit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_Add(t *testing.T) {
	ctx := context.Background()

	blog := &models.Blog{ID: 10, AuthorID: 1}
	blogs := &stubBlogRepo{
		getByID: func(ctx context.Context, id uint) (*models.Blog, error) {
			require.EqualValues(t, 10, id)
			return blog, nil
		},
	}

	t.Run("top level notifies the blog author", func(t *testing.T) {
		var gotComment *models.Comment
		var gotNotification *models.Notification
		comments := &stubCommentRepo{
			createWithFanout: func(ctx context.Context, comment *models.Comment, notification *models.Notification, linkNotificationID *uint) error {
				gotComment = comment
				gotNotification = notification
				assert.Nil(t, linkNotificationID)
				return nil
			},
		}
		svc := NewCommentService(comments, blogs)

		_, err := svc.Add(ctx, 5, AddCommentInput{BlogID: 10, Content: "nice post"})
		require.NoError(t, err)

		assert.Nil(t, gotComment.ParentID)
		assert.False(t, gotComment.IsReply)
		assert.EqualValues(t, 1, gotComment.BlogAuthorID)
		assert.Equal(t, models.NotificationComment, gotNotification.Type)
		assert.EqualValues(t, 1, gotNotification.RecipientID)
		assert.EqualValues(t, 5, gotNotification.ActorID)
	})

	t.Run("reply notifies the parent author", func(t *testing.T) {
		parent := &models.Comment{ID: 42, BlogID: 10, UserID: 7}
		var gotComment *models.Comment
		var gotNotification *models.Notification
		comments := &stubCommentRepo{
			getByID: func(ctx context.Context, id uint) (*models.Comment, error) {
				require.EqualValues(t, 42, id)
				return parent, nil
			},
			createWithFanout: func(ctx context.Context, comment *models.Comment, notification *models.Notification, linkNotificationID *uint) error {
				gotComment = comment
				gotNotification = notification
				require.NotNil(t, linkNotificationID)
				assert.EqualValues(t, 99, *linkNotificationID)
				return nil
			},
		}
		svc := NewCommentService(comments, blogs)

		parentID := uint(42)
		notifyID := uint(99)
		_, err := svc.Add(ctx, 5, AddCommentInput{
			BlogID:   10,
			Content:  "thanks!",
			ParentID: &parentID,
			NotifyID: &notifyID,
		})
		require.NoError(t, err)

		assert.True(t, gotComment.IsReply)
		require.NotNil(t, gotComment.ParentID)
		assert.EqualValues(t, 42, *gotComment.ParentID)
		assert.Equal(t, models.NotificationReply, gotNotification.Type)
		assert.EqualValues(t, 7, gotNotification.RecipientID)
		require.NotNil(t, gotNotification.RepliedOnCommentID)
		assert.EqualValues(t, 42, *gotNotification.RepliedOnCommentID)
	})

	t.Run("parent from another blog is rejected", func(t *testing.T) {
		comments := &stubCommentRepo{
			getByID: func(ctx context.Context, id uint) (*models.Comment, error) {
				return &models.Comment{ID: id, BlogID: 999, UserID: 7}, nil
			},
		}
		svc := NewCommentService(comments, blogs)

		parentID := uint(42)
		_, err := svc.Add(ctx, 5, AddCommentInput{BlogID: 10, Content: "hi", ParentID: &parentID})
		assert.Equal(t, models.CodeValidation, appErrCode(t, err))
	})

	t.Run("empty content is rejected", func(t *testing.T) {
		svc := NewCommentService(&stubCommentRepo{}, blogs)

		_, err := svc.Add(ctx, 5, AddCommentInput{BlogID: 10, Content: "   "})
		assert.Equal(t, models.CodeValidation, appErrCode(t, err))
	})
}

func TestCommentService_Delete(t *testing.T) {
	ctx := context.Background()
	comment := &models.Comment{ID: 42, BlogID: 10, BlogAuthorID: 1, UserID: 7}

	newService := func(deleted *bool) *CommentService {
		comments := &stubCommentRepo{
			getByID: func(ctx context.Context, id uint) (*models.Comment, error) {
				return comment, nil
			},
			deleteSubtree: func(ctx context.Context, id uint) (int64, error) {
				if deleted != nil {
					*deleted = true
				}
				return 3, nil
			},
		}
		return NewCommentService(comments, &stubBlogRepo{})
	}

	tests := []struct {
		name    string
		userID  uint
		isAdmin bool
		allowed bool
	}{
		{name: "comment author", userID: 7, allowed: true},
		{name: "blog author", userID: 1, allowed: true},
		{name: "admin", userID: 99, isAdmin: true, allowed: true},
		{name: "anyone else", userID: 99, allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var deleted bool
			svc := newService(&deleted)

			removed, err := svc.Delete(ctx, tt.userID, tt.isAdmin, 42)
			if !tt.allowed {
				assert.Equal(t, models.CodeUnauthorized, appErrCode(t, err))
				assert.False(t, deleted)
				return
			}
			require.NoError(t, err)
			assert.EqualValues(t, 3, removed)
			assert.True(t, deleted)
		})
	}
}
