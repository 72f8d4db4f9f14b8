package server

import (
	"github.com/iamsihlegqeza/sterkspruit/internal/models"
	"github.com/iamsihlegqeza/sterkspruit/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SearchUsers handles POST /search-users.
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	var req struct {
		Query string `json:"query"`
		Page  int    `json:"page"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	users, err := s.users.Search(c.UserContext(), req.Query, req.Page)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"users": users})
}

// GetProfile handles POST /get-profile.
func (s *Server) GetProfile(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
	}
	if err := c.BodyParser(&req); err != nil || req.Username == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username is required"))
	}

	user, err := s.users.Profile(c.UserContext(), req.Username)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}

// UpdateProfile handles POST /update-profile (protected).
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	var req struct {
		Username    string             `json:"username"`
		Bio         string             `json:"bio"`
		SocialLinks models.SocialLinks `json:"social_links"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.users.UpdateProfile(c.UserContext(), currentUserID(c), service.UpdateProfileInput{
		Username:    req.Username,
		Bio:         req.Bio,
		SocialLinks: req.SocialLinks,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"username": user.Username})
}

// UpdateProfileImg handles POST /update-profile-img (protected).
func (s *Server) UpdateProfileImg(c *fiber.Ctx) error {
	var req struct {
		URL string `json:"url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.users.UpdateProfileImg(c.UserContext(), currentUserID(c), req.URL); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"profile_img": req.URL})
}
