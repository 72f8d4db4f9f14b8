package repository

import (
	"context"

	"github.com/iamsihlegqeza/sterkspruit/internal/cache"
	"github.com/iamsihlegqeza/sterkspruit/internal/models"

	"gorm.io/gorm"
)

// BlogFilter narrows blog searches. Zero values mean "no constraint".
type BlogFilter struct {
	Tag         string
	Query       string
	AuthorID    uint
	ExcludeSlug string
	Limit       int
	Offset      int
}

// BlogRepository defines the interface for blog data operations.
// Multi-row mutations (publish, delete, like toggle) run inside one
// transaction so denormalized counters can never drift from the rows
// they count.
type BlogRepository interface {
	Create(ctx context.Context, blog *models.Blog) error
	// Update saves an edited blog. postsDelta moves the author's
	// total_posts in the same transaction when the edit crosses the
	// draft boundary: +1 for draft to published, -1 for the reverse.
	Update(ctx context.Context, blog *models.Blog, postsDelta int) error
	GetByID(ctx context.Context, id uint) (*models.Blog, error)
	GetBySlug(ctx context.Context, slug string) (*models.Blog, error)
	// ReadBySlug fetches a published blog and propagates the read: the
	// blog's and its author's total_reads are incremented in the same
	// transaction. Drafts are invisible to it and count nothing.
	ReadBySlug(ctx context.Context, slug string) (*models.Blog, error)
	Latest(ctx context.Context, limit, offset int) ([]*models.Blog, error)
	CountPublished(ctx context.Context) (int64, error)
	Trending(ctx context.Context, limit int) ([]*models.Blog, error)
	Search(ctx context.Context, f BlogFilter) ([]*models.Blog, error)
	CountSearch(ctx context.Context, f BlogFilter) (int64, error)
	ByAuthor(ctx context.Context, authorID uint, drafts bool, query string, limit, offset int) ([]*models.Blog, error)
	CountByAuthor(ctx context.Context, authorID uint, drafts bool, query string) (int64, error)
	Delete(ctx context.Context, id uint) error
	// ToggleLike flips the requesting user's like. It returns true when
	// the blog ended up liked, false when the like was retracted.
	ToggleLike(ctx context.Context, userID, blogID uint) (bool, error)
	IsLiked(ctx context.Context, userID, blogID uint) (bool, error)
}

type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository creates a new blog repository.
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(ctx context.Context, blog *models.Blog) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(blog).Error; err != nil {
			return err
		}
		if blog.Draft {
			return nil
		}
		return tx.Model(&models.User{}).
			Where("id = ?", blog.AuthorID).
			UpdateColumn("total_posts", gorm.Expr("total_posts + 1")).Error
	})
	if err == nil {
		cache.InvalidateBlog(ctx, blog.Slug)
	}
	return err
}

func (r *blogRepository) Update(ctx context.Context, blog *models.Blog, postsDelta int) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(blog).Error; err != nil {
			return err
		}
		if postsDelta == 0 {
			return nil
		}
		return tx.Model(&models.User{}).
			Where("id = ?", blog.AuthorID).
			UpdateColumn("total_posts", gorm.Expr("total_posts + ?", postsDelta)).Error
	})
	if err != nil {
		return err
	}
	cache.InvalidateBlog(ctx, blog.Slug)
	return nil
}

func (r *blogRepository) GetByID(ctx context.Context, id uint) (*models.Blog, error) {
	var blog models.Blog
	if err := r.db.WithContext(ctx).Preload("Author").First(&blog, id).Error; err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *blogRepository) GetBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	var blog models.Blog
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("slug = ?", slug).
		First(&blog).Error
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *blogRepository) ReadBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	var blog models.Blog
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Author").
			Where("slug = ? AND draft = ?", slug, false).
			First(&blog).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Blog{}).
			Where("id = ?", blog.ID).
			UpdateColumn("total_reads", gorm.Expr("total_reads + 1")).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", blog.AuthorID).
			UpdateColumn("total_reads", gorm.Expr("total_reads + 1")).Error
	})
	if err != nil {
		return nil, err
	}
	blog.TotalReads++
	return &blog, nil
}

func (r *blogRepository) Latest(ctx context.Context, limit, offset int) ([]*models.Blog, error) {
	var blogs []*models.Blog
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("draft = ?", false).
		Order("published_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&blogs).Error
	return blogs, err
}

func (r *blogRepository) CountPublished(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Blog{}).
		Where("draft = ?", false).
		Count(&count).Error
	return count, err
}

func (r *blogRepository) Trending(ctx context.Context, limit int) ([]*models.Blog, error) {
	var blogs []*models.Blog
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("draft = ?", false).
		Order("total_reads DESC, total_likes DESC, published_at DESC").
		Limit(limit).
		Find(&blogs).Error
	return blogs, err
}

func (r *blogRepository) applyFilter(db *gorm.DB, f BlogFilter) *gorm.DB {
	db = db.Where("draft = ?", false)
	if f.Tag != "" {
		// Tags are stored as a JSON array; a LIKE over the serialized
		// form keeps the query portable across postgres and sqlite.
		db = db.Where("tags LIKE ?", "%\""+f.Tag+"\"%")
	}
	if f.Query != "" {
		db = db.Where("title LIKE ?", "%"+f.Query+"%")
	}
	if f.AuthorID != 0 {
		db = db.Where("author_id = ?", f.AuthorID)
	}
	if f.ExcludeSlug != "" {
		db = db.Where("slug <> ?", f.ExcludeSlug)
	}
	return db
}

func (r *blogRepository) Search(ctx context.Context, f BlogFilter) ([]*models.Blog, error) {
	var blogs []*models.Blog
	err := r.applyFilter(r.db.WithContext(ctx).Preload("Author"), f).
		Order("published_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&blogs).Error
	return blogs, err
}

func (r *blogRepository) CountSearch(ctx context.Context, f BlogFilter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.Blog{}), f).
		Count(&count).Error
	return count, err
}

func (r *blogRepository) ByAuthor(ctx context.Context, authorID uint, drafts bool, query string, limit, offset int) ([]*models.Blog, error) {
	var blogs []*models.Blog
	db := r.db.WithContext(ctx).
		Where("author_id = ? AND draft = ?", authorID, drafts)
	if query != "" {
		db = db.Where("title LIKE ?", "%"+query+"%")
	}
	err := db.Order("published_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&blogs).Error
	return blogs, err
}

func (r *blogRepository) CountByAuthor(ctx context.Context, authorID uint, drafts bool, query string) (int64, error) {
	var count int64
	db := r.db.WithContext(ctx).
		Model(&models.Blog{}).
		Where("author_id = ? AND draft = ?", authorID, drafts)
	if query != "" {
		db = db.Where("title LIKE ?", "%"+query+"%")
	}
	err := db.Count(&count).Error
	return count, err
}

// Delete removes a blog and everything hanging off it: comments,
// likes, notifications, and the author's post counter. One
// transaction, so a failure leaves the blog fully intact.
func (r *blogRepository) Delete(ctx context.Context, id uint) error {
	var slug string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var blog models.Blog
		if err := tx.First(&blog, id).Error; err != nil {
			return err
		}
		slug = blog.Slug

		if err := tx.Where("blog_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_id = ?", id).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Delete(&models.Blog{}, id).Error; err != nil {
			return err
		}
		if blog.Draft {
			return nil
		}
		return tx.Model(&models.User{}).
			Where("id = ?", blog.AuthorID).
			UpdateColumn("total_posts", gorm.Expr("total_posts - 1")).Error
	})
	if err == nil {
		cache.InvalidateBlog(ctx, slug)
	}
	return err
}

func (r *blogRepository) ToggleLike(ctx context.Context, userID, blogID uint) (bool, error) {
	liked := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var blog models.Blog
		if err := tx.Select("id", "slug", "author_id").First(&blog, blogID).Error; err != nil {
			return err
		}

		// ON CONFLICT DO NOTHING makes the insert race-safe: two
		// concurrent likes from the same user produce exactly one row.
		res := tx.Exec(
			`INSERT INTO likes (user_id, blog_id, created_at)
			 VALUES (?, ?, CURRENT_TIMESTAMP)
			 ON CONFLICT (user_id, blog_id) DO NOTHING`,
			userID, blogID,
		)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected > 0 {
			liked = true
			if err := tx.Model(&models.Blog{}).
				Where("id = ?", blogID).
				UpdateColumn("total_likes", gorm.Expr("total_likes + 1")).Error; err != nil {
				return err
			}
			notification := models.Notification{
				Type:        models.NotificationLike,
				RecipientID: blog.AuthorID,
				ActorID:     userID,
				BlogID:      blogID,
			}
			return tx.Create(&notification).Error
		}

		// Already liked: retract the like, the counter, and the
		// notification it created.
		if err := tx.Where("user_id = ? AND blog_id = ?", userID, blogID).
			Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Blog{}).
			Where("id = ?", blogID).
			UpdateColumn("total_likes", gorm.Expr("total_likes - 1")).Error; err != nil {
			return err
		}
		return tx.Where("actor_id = ? AND blog_id = ? AND type = ?",
			userID, blogID, models.NotificationLike).
			Delete(&models.Notification{}).Error
	})
	if err != nil {
		return false, err
	}
	return liked, nil
}

func (r *blogRepository) IsLiked(ctx context.Context, userID, blogID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND blog_id = ?", userID, blogID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
