package server

import (
	"encoding/json"

	"github.com/iamsihlegqeza/sterkspruit/internal/models"
	"github.com/iamsihlegqeza/sterkspruit/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateBlog handles POST /create-blog (protected, admin). A non-zero
// id edits the existing blog in place.
func (s *Server) CreateBlog(c *fiber.Ctx) error {
	var req struct {
		ID          uint            `json:"id"`
		Title       string          `json:"title"`
		Description string          `json:"des"`
		Banner      string          `json:"banner"`
		Content     json.RawMessage `json:"content"`
		Tags        []string        `json:"tags"`
		Draft       bool            `json:"draft"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	blog, err := s.blogs.Publish(c.UserContext(), currentUserID(c), service.PublishInput{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		Banner:      req.Banner,
		Content:     req.Content,
		Tags:        req.Tags,
		Draft:       req.Draft,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": blog.Slug})
}

// DeleteBlog handles POST /delete-blog (protected, admin).
func (s *Server) DeleteBlog(c *fiber.Ctx) error {
	var req struct {
		BlogID uint `json:"blog_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.BlogID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Blog id is required"))
	}

	if err := s.blogs.Delete(c.UserContext(), currentUserID(c), currentIsAdmin(c), req.BlogID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "done"})
}

// GetBlog handles POST /get-blog. mode "edit" skips the read counters;
// draft reads are author-only.
func (s *Server) GetBlog(c *fiber.Ctx) error {
	var req struct {
		Slug  string `json:"blog_id"`
		Mode  string `json:"mode"`
		Draft bool   `json:"draft"`
	}
	if err := c.BodyParser(&req); err != nil || req.Slug == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Blog id is required"))
	}

	// The route is public; an attached token just unlocks draft access.
	userID, _ := s.optionalUserID(c)

	blog, err := s.blogs.Get(c.UserContext(), userID, req.Slug, req.Draft, req.Mode == "edit")
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"blog": blog})
}

// LikeBlog handles POST /like-blog (protected). Calling it again
// withdraws the like.
func (s *Server) LikeBlog(c *fiber.Ctx) error {
	var req struct {
		BlogID uint `json:"_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.BlogID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Blog id is required"))
	}

	liked, err := s.blogs.ToggleLike(c.UserContext(), currentUserID(c), req.BlogID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"liked_by_user": liked})
}

// IsLikedByUser handles POST /is-liked-by-user (protected).
func (s *Server) IsLikedByUser(c *fiber.Ctx) error {
	var req struct {
		BlogID uint `json:"_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.BlogID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Blog id is required"))
	}

	liked, err := s.blogs.IsLiked(c.UserContext(), currentUserID(c), req.BlogID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"result": liked})
}

// LatestBlogs handles POST /latest-blogs.
func (s *Server) LatestBlogs(c *fiber.Ctx) error {
	var req struct {
		Page int `json:"page"`
	}
	if err := c.BodyParser(&req); err != nil {
		req.Page = 1
	}

	blogs, err := s.blogs.Latest(c.UserContext(), req.Page)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"blogs": blogs})
}

// AllLatestBlogsCount handles POST /all-latest-blogs-count.
func (s *Server) AllLatestBlogsCount(c *fiber.Ctx) error {
	count, err := s.blogs.CountPublished(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"totalDocs": count})
}

// TrendingBlogs handles POST /trending-blogs.
func (s *Server) TrendingBlogs(c *fiber.Ctx) error {
	blogs, err := s.blogs.Trending(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"blogs": blogs})
}

type searchBlogsRequest struct {
	Tag         string `json:"tag"`
	Query       string `json:"query"`
	Author      string `json:"author"`
	Page        int    `json:"page"`
	Limit       int    `json:"limit"`
	ExcludeSlug string `json:"eliminate_blog"`
}

func (r searchBlogsRequest) toInput() service.SearchInput {
	return service.SearchInput{
		Tag:            r.Tag,
		Query:          r.Query,
		AuthorUsername: r.Author,
		ExcludeSlug:    r.ExcludeSlug,
		Page:           r.Page,
		Limit:          r.Limit,
	}
}

// SearchBlogs handles POST /search-blogs.
func (s *Server) SearchBlogs(c *fiber.Ctx) error {
	var req searchBlogsRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	blogs, err := s.blogs.Search(c.UserContext(), req.toInput())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"blogs": blogs})
}

// SearchBlogsCount handles POST /search-blogs-count.
func (s *Server) SearchBlogsCount(c *fiber.Ctx) error {
	var req searchBlogsRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	count, err := s.blogs.CountSearch(c.UserContext(), req.toInput())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"totalDocs": count})
}

// UserWrittenBlogs handles POST /user-written-blogs (protected).
func (s *Server) UserWrittenBlogs(c *fiber.Ctx) error {
	var req struct {
		Page  int    `json:"page"`
		Draft bool   `json:"draft"`
		Query string `json:"query"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	blogs, err := s.blogs.ByAuthor(c.UserContext(), currentUserID(c), req.Draft, req.Query, req.Page)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"blogs": blogs})
}

// UserWrittenBlogsCount handles POST /user-written-blogs-count (protected).
func (s *Server) UserWrittenBlogsCount(c *fiber.Ctx) error {
	var req struct {
		Draft bool   `json:"draft"`
		Query string `json:"query"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	count, err := s.blogs.CountByAuthor(c.UserContext(), currentUserID(c), req.Draft, req.Query)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"totalDocs": count})
}
