package server

import (
	"github.com/iamsihlegqeza/sterkspruit/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetUploadURL handles GET /get-upload-url (protected). The client
// uploads the image straight to object storage with the returned URL.
func (s *Server) GetUploadURL(c *fiber.Ctx) error {
	if s.uploader == nil {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewInternalError(fiber.NewError(fiber.StatusServiceUnavailable, "image uploads are not configured")))
	}

	url, err := s.uploader.PresignUpload(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{"uploadURL": url})
}
