package service

import (
	"errors"
	"time"

	"github.com/iamsihlegqeza/sterkspruit/internal/models"

	"gorm.io/gorm"
)

// now is swapped out in tests that pin publication timestamps.
var now = time.Now

// Page sizes for the listing surfaces.
const (
	BlogPageSize         = 5
	CommentPageSize      = 5
	NotificationPageSize = 10
	UserPageSize         = 50
)

var errNoVerifier = errors.New("google sign-in is not configured")

// orNotFound converts gorm's record-not-found into the application's
// not-found error; other errors pass through untouched.
func orNotFound(err error, resource string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	return err
}
