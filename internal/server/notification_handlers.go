package server

import (
	"github.com/iamsihlegqeza/sterkspruit/internal/models"

	"github.com/gofiber/fiber/v2"
)

// NewNotification handles GET /new-notification (protected).
func (s *Server) NewNotification(c *fiber.Ctx) error {
	available, err := s.notifications.HasUnseen(c.UserContext(), currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"new_notification_available": available})
}

// Notifications handles POST /notifications (protected). Fetching a
// page marks it as seen. deletedDocCount compensates the offset for
// notifications the client removed while paging.
func (s *Server) Notifications(c *fiber.Ctx) error {
	var req struct {
		Page            int    `json:"page"`
		Filter          string `json:"filter"`
		DeletedDocCount int    `json:"deletedDocCount"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	notifications, err := s.notifications.List(c.UserContext(), currentUserID(c), req.Filter, req.Page, req.DeletedDocCount)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"notifications": notifications})
}

// AllNotificationsCount handles POST /all-notifications-count (protected).
func (s *Server) AllNotificationsCount(c *fiber.Ctx) error {
	var req struct {
		Filter string `json:"filter"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	count, err := s.notifications.Count(c.UserContext(), currentUserID(c), req.Filter)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"totalDocs": count})
}
