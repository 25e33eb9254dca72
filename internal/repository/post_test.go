package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"devconnect/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createPostFixture(t *testing.T, db *gorm.DB) (*models.User, *models.Post) {
	t.Helper()
	ctx := context.Background()

	user := &models.User{Name: "Jane", Email: "jane@example.com", Password: "x", Avatar: "https://example.com/a.png"}
	require.NoError(t, NewUserRepository(db).Create(ctx, user))

	post := &models.Post{UserID: user.ID, Text: "hello world", AuthorName: user.Name, AuthorAvatar: user.Avatar}
	require.NoError(t, NewPostRepository(db).Create(ctx, post))
	return user, post
}

func TestPostCreateAndGet(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	user, post := createPostFixture(t, db)
	repo := NewPostRepository(db)

	got, err := repo.GetByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got.Text)
	assert.Equal(t, user.Name, got.AuthorName)
	assert.NotNil(t, got.Likes)
}

func TestPostGetByIDMissing(t *testing.T) {
	t.Parallel()
	repo := NewPostRepository(setupTestDB(t))

	_, err := repo.GetByID(context.Background(), 999)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestPostListNewestFirst(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	user, _ := createPostFixture(t, db)
	repo := NewPostRepository(db)
	ctx := context.Background()

	older := &models.Post{UserID: user.ID, Text: "older", CreatedAt: time.Now().Add(-time.Hour)}
	require.NoError(t, repo.Create(ctx, older))
	newer := &models.Post{UserID: user.ID, Text: "newer", CreatedAt: time.Now().Add(time.Hour)}
	require.NoError(t, repo.Create(ctx, newer))

	posts, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "newer", posts[0].Text)
	assert.Equal(t, "older", posts[len(posts)-1].Text)
}

func TestPostListUnboundedByDefault(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	user, _ := createPostFixture(t, db)
	repo := NewPostRepository(db)
	ctx := context.Background()

	for i := 0; i < 30; i++ {
		post := &models.Post{UserID: user.ID, Text: "bulk", CreatedAt: time.Now().Add(time.Duration(i) * time.Second)}
		require.NoError(t, repo.Create(ctx, post))
	}

	// Without an explicit limit the whole feed comes back, not a capped page.
	posts, err := repo.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, posts, 31)
}

func TestPostListPagination(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	createPostFixture(t, db)
	repo := NewPostRepository(db)

	posts, err := repo.List(context.Background(), 10, 1)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestLikeLifecycle(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	user, post := createPostFixture(t, db)
	repo := NewPostRepository(db)
	ctx := context.Background()

	liked, err := repo.IsLiked(ctx, user.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	require.NoError(t, repo.Like(ctx, user.ID, post.ID))

	liked, err = repo.IsLiked(ctx, user.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	removed, err := repo.Unlike(ctx, user.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Unlike(ctx, user.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, removed, "second unlike finds no row")
}

func TestLikeDuplicateIsAlreadyLiked(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	user, post := createPostFixture(t, db)
	repo := NewPostRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Like(ctx, user.ID, post.ID))

	err := repo.Like(ctx, user.ID, post.ID)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeAlreadyLiked, appErr.Code)
}

func TestCommentCreateGetDelete(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	user, post := createPostFixture(t, db)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	comment := &models.Comment{PostID: post.ID, UserID: user.ID, Text: "nice", AuthorName: user.Name}
	require.NoError(t, repo.Create(ctx, comment))

	got, err := repo.GetByID(ctx, post.ID, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "nice", got.Text)

	// The comment is not reachable through a different post.
	_, err = repo.GetByID(ctx, post.ID+1, comment.ID)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)

	require.NoError(t, repo.Delete(ctx, got))
	_, err = repo.GetByID(ctx, post.ID, comment.ID)
	assert.Error(t, err)
}
