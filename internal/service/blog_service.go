package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/iamsihlegqeza/sterkspruit/internal/cache"
	"github.com/iamsihlegqeza/sterkspruit/internal/models"
	"github.com/iamsihlegqeza/sterkspruit/internal/repository"

	"github.com/google/uuid"
)

const maxTags = 10

// BlogService implements publishing, reading, searching, liking and
// deleting blogs.
type BlogService struct {
	blogs repository.BlogRepository
	users repository.UserRepository
}

// PublishInput carries the create-or-edit payload. A non-zero ID means
// an edit of an existing blog.
type PublishInput struct {
	ID          uint
	Title       string
	Description string
	Banner      string
	Content     json.RawMessage
	Tags        []string
	Draft       bool
}

// SearchInput narrows the published-blog search.
type SearchInput struct {
	Tag            string
	Query          string
	AuthorUsername string
	ExcludeSlug    string
	Page           int
	Limit          int
}

// NewBlogService creates a BlogService.
func NewBlogService(blogs repository.BlogRepository, users repository.UserRepository) *BlogService {
	return &BlogService{blogs: blogs, users: users}
}

// Publish creates a blog or, when in.ID is set, edits an existing one.
// Drafts only need a title; publishing demands the full set of fields.
func (s *BlogService) Publish(ctx context.Context, authorID uint, in PublishInput) (*models.Blog, error) {
	if err := validatePublish(in); err != nil {
		return nil, err
	}

	tags := make(models.TagList, 0, len(in.Tags))
	for _, t := range in.Tags {
		tags = append(tags, strings.ToLower(strings.TrimSpace(t)))
	}

	if in.ID != 0 {
		blog, err := s.blogs.GetByID(ctx, in.ID)
		if err != nil {
			return nil, orNotFound(err, "blog", in.ID)
		}
		if blog.AuthorID != authorID {
			return nil, models.NewUnauthorizedError("Only the author can edit this blog")
		}

		wasDraft := blog.Draft
		blog.Title = in.Title
		blog.Description = in.Description
		blog.Banner = in.Banner
		blog.Content = in.Content
		blog.Tags = tags
		blog.Draft = in.Draft

		// Crossing the draft boundary moves the author's post counter.
		postsDelta := 0
		switch {
		case wasDraft && !in.Draft:
			blog.PublishedAt = now()
			postsDelta = 1
		case !wasDraft && in.Draft:
			postsDelta = -1
		}
		if err := s.blogs.Update(ctx, blog, postsDelta); err != nil {
			return nil, err
		}
		return blog, nil
	}

	blog := &models.Blog{
		Slug:        makeSlug(in.Title),
		Title:       in.Title,
		Description: in.Description,
		Banner:      in.Banner,
		Content:     in.Content,
		Tags:        tags,
		Draft:       in.Draft,
		AuthorID:    authorID,
	}
	if !in.Draft {
		blog.PublishedAt = now()
	}
	if err := s.blogs.Create(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

func validatePublish(in PublishInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return models.NewValidationError("You must provide a title")
	}
	if in.Draft {
		return nil
	}
	if l := len(strings.TrimSpace(in.Description)); l == 0 || l > 200 {
		return models.NewValidationError("You must provide a blog description under 200 characters")
	}
	if strings.TrimSpace(in.Banner) == "" {
		return models.NewValidationError("You must provide a blog banner to publish it")
	}
	if len(in.Content) == 0 || string(in.Content) == "null" || string(in.Content) == "[]" {
		return models.NewValidationError("There must be some blog content to publish it")
	}
	if len(in.Tags) == 0 || len(in.Tags) > maxTags {
		return models.NewValidationError("Provide tags in order to publish the blog, maximum 10")
	}
	return nil
}

// Get fetches one blog by slug. A plain read goes through the cache and
// propagates the read counters; forEdit and draft reads always hit the
// database and never count as reads. Draft access is author-only.
func (s *BlogService) Get(ctx context.Context, userID uint, slug string, draft, forEdit bool) (*models.Blog, error) {
	if draft || forEdit {
		blog, err := s.blogs.GetBySlug(ctx, slug)
		if err != nil {
			return nil, orNotFound(err, "blog", slug)
		}
		if blog.Draft && blog.AuthorID != userID {
			return nil, models.NewUnauthorizedError("You can not access draft blogs")
		}
		return blog, nil
	}

	var blog models.Blog
	err := cache.Aside(ctx, cache.BlogKey(slug), &blog, cache.BlogTTL, func() error {
		fresh, err := s.blogs.ReadBySlug(ctx, slug)
		if err != nil {
			return err
		}
		blog = *fresh
		return nil
	})
	if err != nil {
		return nil, orNotFound(err, "blog", slug)
	}
	if blog.Draft {
		return nil, models.NewNotFoundError("blog", slug)
	}
	return &blog, nil
}

// Delete removes a blog together with its comments, likes and
// notifications. Allowed for the author and for admins.
func (s *BlogService) Delete(ctx context.Context, userID uint, isAdmin bool, blogID uint) error {
	blog, err := s.blogs.GetByID(ctx, blogID)
	if err != nil {
		return orNotFound(err, "blog", blogID)
	}
	if blog.AuthorID != userID && !isAdmin {
		return models.NewUnauthorizedError("You can not delete this blog")
	}
	return s.blogs.Delete(ctx, blogID)
}

// ToggleLike flips the user's like on a blog and reports the resulting
// state. Repeating the call undoes the previous one.
func (s *BlogService) ToggleLike(ctx context.Context, userID, blogID uint) (bool, error) {
	liked, err := s.blogs.ToggleLike(ctx, userID, blogID)
	if err != nil {
		return false, orNotFound(err, "blog", blogID)
	}
	return liked, nil
}

// IsLiked reports whether the user currently likes the blog.
func (s *BlogService) IsLiked(ctx context.Context, userID, blogID uint) (bool, error) {
	return s.blogs.IsLiked(ctx, userID, blogID)
}

// Latest returns a page of published blogs, newest first.
func (s *BlogService) Latest(ctx context.Context, page int) ([]*models.Blog, error) {
	if page < 1 {
		page = 1
	}

	var blogs []*models.Blog
	err := cache.Aside(ctx, cache.LatestKey(page), &blogs, cache.LatestTTL, func() error {
		fresh, err := s.blogs.Latest(ctx, BlogPageSize, (page-1)*BlogPageSize)
		if err != nil {
			return err
		}
		blogs = fresh
		return nil
	})
	return blogs, err
}

// CountPublished returns how many published blogs exist.
func (s *BlogService) CountPublished(ctx context.Context) (int64, error) {
	return s.blogs.CountPublished(ctx)
}

// Trending returns the most-read published blogs.
func (s *BlogService) Trending(ctx context.Context) ([]*models.Blog, error) {
	var blogs []*models.Blog
	err := cache.Aside(ctx, cache.TrendingKey(), &blogs, cache.TrendingTTL, func() error {
		fresh, err := s.blogs.Trending(ctx, BlogPageSize)
		if err != nil {
			return err
		}
		blogs = fresh
		return nil
	})
	return blogs, err
}

// Search returns a page of published blogs matching the filter.
func (s *BlogService) Search(ctx context.Context, in SearchInput) ([]*models.Blog, error) {
	f, err := s.searchFilter(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.blogs.Search(ctx, f)
}

// CountSearch returns the total match count for the same filter.
func (s *BlogService) CountSearch(ctx context.Context, in SearchInput) (int64, error) {
	f, err := s.searchFilter(ctx, in)
	if err != nil {
		return 0, err
	}
	return s.blogs.CountSearch(ctx, f)
}

func (s *BlogService) searchFilter(ctx context.Context, in SearchInput) (repository.BlogFilter, error) {
	f := repository.BlogFilter{
		Tag:         strings.ToLower(strings.TrimSpace(in.Tag)),
		Query:       strings.TrimSpace(in.Query),
		ExcludeSlug: in.ExcludeSlug,
		Limit:       in.Limit,
	}
	if f.Limit < 1 || f.Limit > BlogPageSize {
		f.Limit = BlogPageSize
	}
	page := in.Page
	if page < 1 {
		page = 1
	}
	f.Offset = (page - 1) * f.Limit

	if in.AuthorUsername != "" {
		author, err := s.users.GetByUsername(ctx, in.AuthorUsername)
		if err != nil {
			return f, orNotFound(err, "user", in.AuthorUsername)
		}
		f.AuthorID = author.ID
	}
	return f, nil
}

// ByAuthor lists the author's own blogs or drafts, optionally filtered
// by a title query.
func (s *BlogService) ByAuthor(ctx context.Context, authorID uint, drafts bool, query string, page int) ([]*models.Blog, error) {
	if page < 1 {
		page = 1
	}
	return s.blogs.ByAuthor(ctx, authorID, drafts, strings.TrimSpace(query), BlogPageSize, (page-1)*BlogPageSize)
}

// CountByAuthor counts the author's blogs or drafts for the same filter.
func (s *BlogService) CountByAuthor(ctx context.Context, authorID uint, drafts bool, query string) (int64, error) {
	return s.blogs.CountByAuthor(ctx, authorID, drafts, strings.TrimSpace(query))
}

// makeSlug builds a unique slug from the title: the lowercased
// hyphenated title plus a short random suffix.
func makeSlug(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	suffix := uuid.NewString()[:8]
	if slug == "" {
		return suffix
	}
	return slug + "-" + suffix
}
