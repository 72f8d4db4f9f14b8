package service

import (
	"context"

	"github.com/iamsihlegqeza/sterkspruit/internal/googleauth"
	"github.com/iamsihlegqeza/sterkspruit/internal/models"
	"github.com/iamsihlegqeza/sterkspruit/internal/repository"
)

// Function-field stubs for the repository interfaces. Tests fill in
// only the calls they expect; anything else panics loudly.

type stubUserRepo struct {
	create           func(ctx context.Context, user *models.User) error
	getByID          func(ctx context.Context, id uint) (*models.User, error)
	getByEmail       func(ctx context.Context, email string) (*models.User, error)
	getByUsername    func(ctx context.Context, username string) (*models.User, error)
	usernameTaken    func(ctx context.Context, username string) (bool, error)
	search           func(ctx context.Context, query string, limit, offset int) ([]*models.User, error)
	updateProfile    func(ctx context.Context, user *models.User) error
	updatePassword   func(ctx context.Context, id uint, hashed string) error
	updateProfileImg func(ctx context.Context, id uint, url string) error
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	return s.create(ctx, user)
}
func (s *stubUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByID(ctx, id)
}
func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmail(ctx, email)
}
func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsername(ctx, username)
}
func (s *stubUserRepo) UsernameTaken(ctx context.Context, username string) (bool, error) {
	return s.usernameTaken(ctx, username)
}
func (s *stubUserRepo) Search(ctx context.Context, query string, limit, offset int) ([]*models.User, error) {
	return s.search(ctx, query, limit, offset)
}
func (s *stubUserRepo) UpdateProfile(ctx context.Context, user *models.User) error {
	return s.updateProfile(ctx, user)
}
func (s *stubUserRepo) UpdatePassword(ctx context.Context, id uint, hashed string) error {
	return s.updatePassword(ctx, id, hashed)
}
func (s *stubUserRepo) UpdateProfileImg(ctx context.Context, id uint, url string) error {
	return s.updateProfileImg(ctx, id, url)
}

type stubBlogRepo struct {
	create         func(ctx context.Context, blog *models.Blog) error
	update         func(ctx context.Context, blog *models.Blog, postsDelta int) error
	getByID        func(ctx context.Context, id uint) (*models.Blog, error)
	getBySlug      func(ctx context.Context, slug string) (*models.Blog, error)
	readBySlug     func(ctx context.Context, slug string) (*models.Blog, error)
	latest         func(ctx context.Context, limit, offset int) ([]*models.Blog, error)
	countPublished func(ctx context.Context) (int64, error)
	trending       func(ctx context.Context, limit int) ([]*models.Blog, error)
	search         func(ctx context.Context, f repository.BlogFilter) ([]*models.Blog, error)
	countSearch    func(ctx context.Context, f repository.BlogFilter) (int64, error)
	byAuthor       func(ctx context.Context, authorID uint, drafts bool, query string, limit, offset int) ([]*models.Blog, error)
	countByAuthor  func(ctx context.Context, authorID uint, drafts bool, query string) (int64, error)
	delete         func(ctx context.Context, id uint) error
	toggleLike     func(ctx context.Context, userID, blogID uint) (bool, error)
	isLiked        func(ctx context.Context, userID, blogID uint) (bool, error)
}

var _ repository.BlogRepository = (*stubBlogRepo)(nil)

func (s *stubBlogRepo) Create(ctx context.Context, blog *models.Blog) error {
	return s.create(ctx, blog)
}
func (s *stubBlogRepo) Update(ctx context.Context, blog *models.Blog, postsDelta int) error {
	return s.update(ctx, blog, postsDelta)
}
func (s *stubBlogRepo) GetByID(ctx context.Context, id uint) (*models.Blog, error) {
	return s.getByID(ctx, id)
}
func (s *stubBlogRepo) GetBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	return s.getBySlug(ctx, slug)
}
func (s *stubBlogRepo) ReadBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	return s.readBySlug(ctx, slug)
}
func (s *stubBlogRepo) Latest(ctx context.Context, limit, offset int) ([]*models.Blog, error) {
	return s.latest(ctx, limit, offset)
}
func (s *stubBlogRepo) CountPublished(ctx context.Context) (int64, error) {
	return s.countPublished(ctx)
}
func (s *stubBlogRepo) Trending(ctx context.Context, limit int) ([]*models.Blog, error) {
	return s.trending(ctx, limit)
}
func (s *stubBlogRepo) Search(ctx context.Context, f repository.BlogFilter) ([]*models.Blog, error) {
	return s.search(ctx, f)
}
func (s *stubBlogRepo) CountSearch(ctx context.Context, f repository.BlogFilter) (int64, error) {
	return s.countSearch(ctx, f)
}
func (s *stubBlogRepo) ByAuthor(ctx context.Context, authorID uint, drafts bool, query string, limit, offset int) ([]*models.Blog, error) {
	return s.byAuthor(ctx, authorID, drafts, query, limit, offset)
}
func (s *stubBlogRepo) CountByAuthor(ctx context.Context, authorID uint, drafts bool, query string) (int64, error) {
	return s.countByAuthor(ctx, authorID, drafts, query)
}
func (s *stubBlogRepo) Delete(ctx context.Context, id uint) error {
	return s.delete(ctx, id)
}
func (s *stubBlogRepo) ToggleLike(ctx context.Context, userID, blogID uint) (bool, error) {
	return s.toggleLike(ctx, userID, blogID)
}
func (s *stubBlogRepo) IsLiked(ctx context.Context, userID, blogID uint) (bool, error) {
	return s.isLiked(ctx, userID, blogID)
}

type stubCommentRepo struct {
	createWithFanout func(ctx context.Context, comment *models.Comment, notification *models.Notification, linkNotificationID *uint) error
	getByID          func(ctx context.Context, id uint) (*models.Comment, error)
	listByBlog       func(ctx context.Context, blogID uint, limit, offset int) ([]*models.Comment, error)
	listReplies      func(ctx context.Context, parentID uint, limit, offset int) ([]*models.Comment, error)
	deleteSubtree    func(ctx context.Context, id uint) (int64, error)
}

var _ repository.CommentRepository = (*stubCommentRepo)(nil)

func (s *stubCommentRepo) CreateWithFanout(ctx context.Context, comment *models.Comment, notification *models.Notification, linkNotificationID *uint) error {
	return s.createWithFanout(ctx, comment, notification, linkNotificationID)
}
func (s *stubCommentRepo) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByID(ctx, id)
}
func (s *stubCommentRepo) ListByBlog(ctx context.Context, blogID uint, limit, offset int) ([]*models.Comment, error) {
	return s.listByBlog(ctx, blogID, limit, offset)
}
func (s *stubCommentRepo) ListReplies(ctx context.Context, parentID uint, limit, offset int) ([]*models.Comment, error) {
	return s.listReplies(ctx, parentID, limit, offset)
}
func (s *stubCommentRepo) DeleteSubtree(ctx context.Context, id uint) (int64, error) {
	return s.deleteSubtree(ctx, id)
}

type stubNotificationRepo struct {
	hasUnseen func(ctx context.Context, userID uint) (bool, error)
	list      func(ctx context.Context, userID uint, kind models.NotificationType, limit, offset int) ([]*models.Notification, error)
	count     func(ctx context.Context, userID uint, kind models.NotificationType) (int64, error)
}

var _ repository.NotificationRepository = (*stubNotificationRepo)(nil)

func (s *stubNotificationRepo) HasUnseen(ctx context.Context, userID uint) (bool, error) {
	return s.hasUnseen(ctx, userID)
}
func (s *stubNotificationRepo) List(ctx context.Context, userID uint, kind models.NotificationType, limit, offset int) ([]*models.Notification, error) {
	return s.list(ctx, userID, kind, limit, offset)
}
func (s *stubNotificationRepo) Count(ctx context.Context, userID uint, kind models.NotificationType) (int64, error) {
	return s.count(ctx, userID, kind)
}

type stubVerifier struct {
	claims *googleauth.Claims
	err    error
}

func (s *stubVerifier) Verify(ctx context.Context, rawToken string) (*googleauth.Claims, error) {
	return s.claims, s.err
}
