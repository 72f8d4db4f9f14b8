package server

import (
	"github.com/iamsihlegqeza/sterkspruit/internal/models"
	"github.com/iamsihlegqeza/sterkspruit/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AddComment handles POST /add-comment (protected). With replying_to
// set the comment becomes a reply; notification_id links the new reply
// back into the notification it was written from.
func (s *Server) AddComment(c *fiber.Ctx) error {
	var req struct {
		BlogID     uint   `json:"_id"`
		Comment    string `json:"comment"`
		ReplyingTo *uint  `json:"replying_to"`
		NotifyID   *uint  `json:"notification_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.BlogID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Blog id is required"))
	}

	comment, err := s.comments.Add(c.UserContext(), currentUserID(c), service.AddCommentInput{
		BlogID:   req.BlogID,
		Content:  req.Comment,
		ParentID: req.ReplyingTo,
		NotifyID: req.NotifyID,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// DeleteComment handles POST /delete-comment (protected). The whole
// reply subtree goes with the comment.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	var req struct {
		CommentID uint `json:"_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.CommentID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Comment id is required"))
	}

	removed, err := s.comments.Delete(c.UserContext(), currentUserID(c), currentIsAdmin(c), req.CommentID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "done", "deleted_count": removed})
}

// GetBlogComments handles POST /get-blog-comments.
func (s *Server) GetBlogComments(c *fiber.Ctx) error {
	var req struct {
		BlogID uint `json:"blog_id"`
		Skip   int  `json:"skip"`
	}
	if err := c.BodyParser(&req); err != nil || req.BlogID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Blog id is required"))
	}

	comments, err := s.comments.ListForBlog(c.UserContext(), req.BlogID, req.Skip)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(comments)
}

// GetReplies handles POST /get-replies.
func (s *Server) GetReplies(c *fiber.Ctx) error {
	var req struct {
		CommentID uint `json:"_id"`
		Skip      int  `json:"skip"`
	}
	if err := c.BodyParser(&req); err != nil || req.CommentID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Comment id is required"))
	}

	replies, err := s.comments.ListReplies(c.UserContext(), req.CommentID, req.Skip)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"replies": replies})
}
