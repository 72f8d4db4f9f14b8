package service

import (
	"context"
	"net/url"
	"strings"

	"github.com/iamsihlegqeza/sterkspruit/internal/models"
	"github.com/iamsihlegqeza/sterkspruit/internal/repository"
)

// UserService implements public profiles and profile editing.
type UserService struct {
	users repository.UserRepository
}

// UpdateProfileInput carries the editable profile fields.
type UpdateProfileInput struct {
	Username    string
	Bio         string
	SocialLinks models.SocialLinks
}

// NewUserService creates a UserService.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// Search returns a page of users whose username or full name matches
// the query.
func (s *UserService) Search(ctx context.Context, query string, page int) ([]*models.User, error) {
	if page < 1 {
		page = 1
	}
	return s.users.Search(ctx, strings.TrimSpace(query), UserPageSize, (page-1)*UserPageSize)
}

// Profile returns the public profile for a username.
func (s *UserService) Profile(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, orNotFound(err, "user", username)
	}
	return user, nil
}

// UpdateProfile changes the user's username, bio and social links.
// A username collision with another account is a conflict, not an
// overwrite.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, in UpdateProfileInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	if len(in.Username) < 3 {
		return nil, models.NewValidationError("Username should be at least 3 letters long")
	}
	if len(in.Bio) > 200 {
		return nil, models.NewValidationError("Bio should not be more than 200 characters")
	}
	if err := validateSocialLinks(in.SocialLinks); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, orNotFound(err, "user", userID)
	}

	if in.Username != user.Username {
		taken, err := s.users.UsernameTaken(ctx, in.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, models.NewConflictError("Username is already taken")
		}
	}

	user.Username = in.Username
	user.Bio = in.Bio
	user.SocialLinks = in.SocialLinks
	if err := s.users.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfileImg points the user's avatar at a freshly uploaded
// object URL.
func (s *UserService) UpdateProfileImg(ctx context.Context, userID uint, imgURL string) error {
	if strings.TrimSpace(imgURL) == "" {
		return models.NewValidationError("You must provide an image url")
	}
	return s.users.UpdateProfileImg(ctx, userID, imgURL)
}

// validateSocialLinks checks each filled link is a real URL and, for
// the named platforms, actually points at that platform's domain.
func validateSocialLinks(links models.SocialLinks) error {
	checks := []struct {
		platform string
		value    string
	}{
		{"youtube", links.YouTube},
		{"instagram", links.Instagram},
		{"facebook", links.Facebook},
		{"twitter", links.Twitter},
		{"github", links.GitHub},
		{"website", links.Website},
	}

	for _, c := range checks {
		if c.value == "" {
			continue
		}
		u, err := url.Parse(c.value)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return models.NewValidationError("You must provide full social links with http(s) included")
		}
		if c.platform != "website" && !strings.Contains(u.Host, c.platform+".com") {
			return models.NewValidationError(c.platform + " link is invalid")
		}
	}
	return nil
}
