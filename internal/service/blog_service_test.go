package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/iamsihlegqeza/sterkspruit/internal/models"
	"github.com/iamsihlegqeza/sterkspruit/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var someContent = json.RawMessage(`{"blocks":[{"type":"paragraph"}]}`)

func TestBlogService_Publish_Validation(t *testing.T) {
	ctx := context.Background()

	valid := PublishInput{
		Title:       "A Title",
		Description: "A description",
		Banner:      "https://example.com/banner.jpeg",
		Content:     someContent,
		Tags:        []string{"Go", "Testing"},
	}

	tests := []struct {
		name    string
		mutate  func(in *PublishInput)
		wantErr bool
	}{
		{name: "complete publish", mutate: func(in *PublishInput) {}},
		{name: "missing title", mutate: func(in *PublishInput) { in.Title = " " }, wantErr: true},
		{name: "missing description", mutate: func(in *PublishInput) { in.Description = "" }, wantErr: true},
		{
			name:    "description too long",
			mutate:  func(in *PublishInput) { in.Description = strings.Repeat("x", 201) },
			wantErr: true,
		},
		{name: "missing banner", mutate: func(in *PublishInput) { in.Banner = "" }, wantErr: true},
		{name: "missing content", mutate: func(in *PublishInput) { in.Content = nil }, wantErr: true},
		{name: "no tags", mutate: func(in *PublishInput) { in.Tags = nil }, wantErr: true},
		{
			name:    "too many tags",
			mutate:  func(in *PublishInput) { in.Tags = make([]string, 11) },
			wantErr: true,
		},
		{
			name: "draft only needs a title",
			mutate: func(in *PublishInput) {
				*in = PublishInput{Title: "Just a title", Draft: true}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var created *models.Blog
			blogs := &stubBlogRepo{
				create: func(ctx context.Context, blog *models.Blog) error {
					created = blog
					return nil
				},
			}
			svc := NewBlogService(blogs, &stubUserRepo{})

			in := valid
			tt.mutate(&in)
			_, err := svc.Publish(ctx, 1, in)
			if tt.wantErr {
				assert.Equal(t, models.CodeValidation, appErrCode(t, err))
				assert.Nil(t, created)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, created)
			assert.EqualValues(t, 1, created.AuthorID)
		})
	}
}

func TestBlogService_Publish_SlugAndTags(t *testing.T) {
	ctx := context.Background()

	var created *models.Blog
	blogs := &stubBlogRepo{
		create: func(ctx context.Context, blog *models.Blog) error {
			created = blog
			return nil
		},
	}
	svc := NewBlogService(blogs, &stubUserRepo{})

	_, err := svc.Publish(ctx, 1, PublishInput{
		Title:       "Hello, World! A Go Story",
		Description: "a description",
		Banner:      "https://example.com/banner.jpeg",
		Content:     someContent,
		Tags:        []string{"GoLang", " Testing "},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(created.Slug, "hello-world-a-go-story-"))
	assert.Len(t, created.Slug, len("hello-world-a-go-story-")+8)
	assert.Equal(t, models.TagList{"golang", "testing"}, created.Tags)
	assert.False(t, created.PublishedAt.IsZero())
}

func TestBlogService_Publish_EditKeepsSlug(t *testing.T) {
	ctx := context.Background()

	existing := &models.Blog{ID: 3, Slug: "original-slug-abc12345", AuthorID: 1, Draft: true}
	var updated *models.Blog
	blogs := &stubBlogRepo{
		getByID: func(ctx context.Context, id uint) (*models.Blog, error) { return existing, nil },
		update: func(ctx context.Context, blog *models.Blog, postsDelta int) error {
			updated = blog
			return nil
		},
	}
	svc := NewBlogService(blogs, &stubUserRepo{})

	_, err := svc.Publish(ctx, 1, PublishInput{
		ID:          3,
		Title:       "New Title",
		Description: "new description",
		Banner:      "https://example.com/banner.jpeg",
		Content:     someContent,
		Tags:        []string{"go"},
	})
	require.NoError(t, err)
	assert.Equal(t, "original-slug-abc12345", updated.Slug)
	assert.False(t, updated.Draft)
	assert.False(t, updated.PublishedAt.IsZero())

	// Someone else's blog can not be edited.
	_, err = svc.Publish(ctx, 2, PublishInput{ID: 3, Title: "Hijack", Draft: true})
	assert.Equal(t, models.CodeUnauthorized, appErrCode(t, err))
}

func TestBlogService_Publish_EditMovesPostCounter(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		wasDraft  bool
		editDraft bool
		wantDelta int
	}{
		{name: "draft to published", wasDraft: true, editDraft: false, wantDelta: 1},
		{name: "published to draft", wasDraft: false, editDraft: true, wantDelta: -1},
		{name: "published stays published", wasDraft: false, editDraft: false, wantDelta: 0},
		{name: "draft stays draft", wasDraft: true, editDraft: true, wantDelta: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotDelta := 99
			blogs := &stubBlogRepo{
				getByID: func(ctx context.Context, id uint) (*models.Blog, error) {
					return &models.Blog{ID: id, Slug: "edited-post-abc12345", AuthorID: 1, Draft: tt.wasDraft}, nil
				},
				update: func(ctx context.Context, blog *models.Blog, postsDelta int) error {
					gotDelta = postsDelta
					return nil
				},
			}
			svc := NewBlogService(blogs, &stubUserRepo{})

			_, err := svc.Publish(ctx, 1, PublishInput{
				ID:          4,
				Title:       "Edited Post",
				Description: "a description",
				Banner:      "https://example.com/banner.jpeg",
				Content:     someContent,
				Tags:        []string{"go"},
				Draft:       tt.editDraft,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantDelta, gotDelta)
		})
	}
}

func TestBlogService_Delete_Authorization(t *testing.T) {
	ctx := context.Background()

	newService := func(deleted *bool) *BlogService {
		blogs := &stubBlogRepo{
			getByID: func(ctx context.Context, id uint) (*models.Blog, error) {
				return &models.Blog{ID: id, AuthorID: 1}, nil
			},
			delete: func(ctx context.Context, id uint) error {
				*deleted = true
				return nil
			},
		}
		return NewBlogService(blogs, &stubUserRepo{})
	}

	var deleted bool
	svc := newService(&deleted)
	require.NoError(t, svc.Delete(ctx, 1, false, 3))
	assert.True(t, deleted)

	deleted = false
	svc = newService(&deleted)
	require.NoError(t, svc.Delete(ctx, 99, true, 3))
	assert.True(t, deleted)

	deleted = false
	svc = newService(&deleted)
	err := svc.Delete(ctx, 99, false, 3)
	assert.Equal(t, models.CodeUnauthorized, appErrCode(t, err))
	assert.False(t, deleted)
}

func TestBlogService_Search_ClampsPaging(t *testing.T) {
	ctx := context.Background()

	var gotFilter repository.BlogFilter
	blogs := &stubBlogRepo{
		search: func(ctx context.Context, f repository.BlogFilter) ([]*models.Blog, error) {
			gotFilter = f
			return nil, nil
		},
	}
	users := &stubUserRepo{
		getByUsername: func(ctx context.Context, username string) (*models.User, error) {
			return &models.User{ID: 77, Username: username}, nil
		},
	}
	svc := NewBlogService(blogs, users)

	_, err := svc.Search(ctx, SearchInput{
		Tag:            " GoLang ",
		AuthorUsername: "thandi",
		Page:           3,
		Limit:          50,
	})
	require.NoError(t, err)

	assert.Equal(t, "golang", gotFilter.Tag)
	assert.EqualValues(t, 77, gotFilter.AuthorID)
	assert.Equal(t, BlogPageSize, gotFilter.Limit)
	assert.Equal(t, 2*BlogPageSize, gotFilter.Offset)
}

func TestBlogService_Get_DraftIsAuthorOnly(t *testing.T) {
	ctx := context.Background()

	blogs := &stubBlogRepo{
		getBySlug: func(ctx context.Context, slug string) (*models.Blog, error) {
			return &models.Blog{Slug: slug, AuthorID: 1, Draft: true}, nil
		},
	}
	svc := NewBlogService(blogs, &stubUserRepo{})

	blog, err := svc.Get(ctx, 1, "secret-draft", true, false)
	require.NoError(t, err)
	assert.Equal(t, "secret-draft", blog.Slug)

	_, err = svc.Get(ctx, 2, "secret-draft", true, false)
	assert.Equal(t, models.CodeUnauthorized, appErrCode(t, err))
}

func TestBlogService_Get_ReadPathCountsReads(t *testing.T) {
	ctx := context.Background()

	reads := 0
	blogs := &stubBlogRepo{
		readBySlug: func(ctx context.Context, slug string) (*models.Blog, error) {
			reads++
			return &models.Blog{Slug: slug, TotalReads: int64(reads)}, nil
		},
	}
	svc := NewBlogService(blogs, &stubUserRepo{})

	blog, err := svc.Get(ctx, 0, "popular-post", false, false)
	require.NoError(t, err)
	assert.EqualValues(t, 1, blog.TotalReads)
	assert.Equal(t, 1, reads)
}
