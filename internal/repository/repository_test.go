package repository

import (
	"testing"

	"github.com/iamsihlegqeza/sterkspruit/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupSQLiteDB creates an in-memory database with the full schema for
// tests that exercise real transactions.
func setupSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Blog{},
		&models.Comment{},
		&models.Like{},
		&models.Notification{},
	))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		FullName: "Test " + username,
		Email:    username + "@example.com",
		Username: username,
		Password: "hashed",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestBlog(t *testing.T, db *gorm.DB, author *models.User, slug string) *models.Blog {
	t.Helper()
	blog := &models.Blog{
		Slug:        slug,
		Title:       "Blog " + slug,
		Description: "a test blog",
		Banner:      "https://example.com/banner.jpeg",
		Content:     []byte(`{"blocks":[]}`),
		Tags:        models.TagList{"testing"},
		AuthorID:    author.ID,
	}
	require.NoError(t, db.Create(blog).Error)
	return blog
}

func blogCounters(t *testing.T, db *gorm.DB, id uint) *models.Blog {
	t.Helper()
	var blog models.Blog
	require.NoError(t, db.First(&blog, id).Error)
	return &blog
}
