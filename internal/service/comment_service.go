package service

import (
	"context"
	"strings"

	"github.com/iamsihlegqeza/sterkspruit/internal/models"
	"github.com/iamsihlegqeza/sterkspruit/internal/repository"
)

// CommentService implements threaded comments and their notification
// fan-out.
type CommentService struct {
	comments repository.CommentRepository
	blogs    repository.BlogRepository
}

// AddCommentInput carries a new comment. ParentID is set for replies.
// NotifyID, when present, names the notification the user replied
// from; the new comment is linked back into it.
type AddCommentInput struct {
	BlogID   uint
	Content  string
	ParentID *uint
	NotifyID *uint
}

// NewCommentService creates a CommentService.
func NewCommentService(comments repository.CommentRepository, blogs repository.BlogRepository) *CommentService {
	return &CommentService{comments: comments, blogs: blogs}
}

// Add creates a comment or reply. The comment row, the blog's counters
// and the recipient's notification are committed as one unit: a
// top-level comment notifies the blog author, a reply notifies the
// author of the comment it answers.
func (s *CommentService) Add(ctx context.Context, userID uint, in AddCommentInput) (*models.Comment, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Write something to leave a comment")
	}

	blog, err := s.blogs.GetByID(ctx, in.BlogID)
	if err != nil {
		return nil, orNotFound(err, "blog", in.BlogID)
	}

	comment := &models.Comment{
		BlogID:       blog.ID,
		BlogAuthorID: blog.AuthorID,
		UserID:       userID,
		Content:      in.Content,
	}
	notification := &models.Notification{
		Type:        models.NotificationComment,
		RecipientID: blog.AuthorID,
		ActorID:     userID,
		BlogID:      blog.ID,
	}

	if in.ParentID != nil {
		parent, err := s.comments.GetByID(ctx, *in.ParentID)
		if err != nil {
			return nil, orNotFound(err, "comment", *in.ParentID)
		}
		if parent.BlogID != blog.ID {
			return nil, models.NewValidationError("Parent comment belongs to a different blog")
		}
		comment.ParentID = &parent.ID
		comment.IsReply = true
		notification.Type = models.NotificationReply
		notification.RecipientID = parent.UserID
		notification.RepliedOnCommentID = &parent.ID
	}

	if err := s.comments.CreateWithFanout(ctx, comment, notification, in.NotifyID); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete removes a comment and its whole reply subtree. Allowed for
// the comment's author, the blog's author, and admins. It returns the
// number of comments removed.
func (s *CommentService) Delete(ctx context.Context, userID uint, isAdmin bool, commentID uint) (int64, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return 0, orNotFound(err, "comment", commentID)
	}
	if comment.UserID != userID && comment.BlogAuthorID != userID && !isAdmin {
		return 0, models.NewUnauthorizedError("You can not delete this comment")
	}
	return s.comments.DeleteSubtree(ctx, commentID)
}

// ListForBlog returns a page of a blog's top-level comments, newest
// first. skip is an absolute offset so the client can page past
// comments it already holds.
func (s *CommentService) ListForBlog(ctx context.Context, blogID uint, skip int) ([]*models.Comment, error) {
	if skip < 0 {
		skip = 0
	}
	return s.comments.ListByBlog(ctx, blogID, CommentPageSize, skip)
}

// ListReplies returns a page of a comment's direct replies, oldest
// first.
func (s *CommentService) ListReplies(ctx context.Context, commentID uint, skip int) ([]*models.Comment, error) {
	if skip < 0 {
		skip = 0
	}
	return s.comments.ListReplies(ctx, commentID, CommentPageSize, skip)
}
