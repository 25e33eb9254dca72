package service

import (
	"context"
	"testing"

	"devconnect/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostSnapshotsAuthor(t *testing.T) {
	t.Parallel()
	env := setupEnv(t)
	user := env.createUser(t, "jane", "jane@example.com")
	ctx := context.Background()

	post, err := env.posts.CreatePost(ctx, user.ID, "hello world")
	require.NoError(t, err)
	assert.Equal(t, "jane", post.AuthorName)
	assert.Equal(t, user.Avatar, post.AuthorAvatar)

	// Renaming the user must not change the stored snapshot.
	user.Name = "janet"
	require.NoError(t, env.userRepo.Update(ctx, user))

	got, err := env.posts.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane", got.AuthorName)
}

func TestCreatePostRequiresText(t *testing.T) {
	t.Parallel()
	env := setupEnv(t)
	user := env.createUser(t, "jane", "jane@example.com")

	_, err := env.posts.CreatePost(context.Background(), user.ID, "")
	assertCode(t, err, models.CodeValidation)
}

func TestDeletePostOwnership(t *testing.T) {
	t.Parallel()
	env := setupEnv(t)
	author := env.createUser(t, "jane", "jane@example.com")
	other := env.createUser(t, "john", "john@example.com")
	ctx := context.Background()

	post, err := env.posts.CreatePost(ctx, author.ID, "mine")
	require.NoError(t, err)

	err = env.posts.DeletePost(ctx, post.ID, other.ID)
	assertCode(t, err, models.CodeForbidden)

	require.NoError(t, env.posts.DeletePost(ctx, post.ID, author.ID))

	_, err = env.posts.GetPost(ctx, post.ID)
	assertCode(t, err, models.CodeNotFound)
}

func TestLikeUnlikeFlow(t *testing.T) {
	t.Parallel()
	env := setupEnv(t)
	author := env.createUser(t, "jane", "jane@example.com")
	fan := env.createUser(t, "john", "john@example.com")
	ctx := context.Background()

	post, err := env.posts.CreatePost(ctx, author.ID, "likeable")
	require.NoError(t, err)

	likes, err := env.posts.LikePost(ctx, post.ID, fan.ID)
	require.NoError(t, err)
	require.Len(t, likes, 1)
	assert.Equal(t, fan.ID, likes[0].UserID)

	_, err = env.posts.LikePost(ctx, post.ID, fan.ID)
	assertCode(t, err, models.CodeAlreadyLiked)

	likes, err = env.posts.UnlikePost(ctx, post.ID, fan.ID)
	require.NoError(t, err)
	assert.Empty(t, likes)

	_, err = env.posts.UnlikePost(ctx, post.ID, fan.ID)
	assertCode(t, err, models.CodeNotLiked)
}

func TestLikeMissingPost(t *testing.T) {
	t.Parallel()
	env := setupEnv(t)
	fan := env.createUser(t, "john", "john@example.com")

	_, err := env.posts.LikePost(context.Background(), 999, fan.ID)
	assertCode(t, err, models.CodeNotFound)
}

func TestCommentFlow(t *testing.T) {
	t.Parallel()
	env := setupEnv(t)
	author := env.createUser(t, "jane", "jane@example.com")
	commenter := env.createUser(t, "john", "john@example.com")
	ctx := context.Background()

	post, err := env.posts.CreatePost(ctx, author.ID, "discuss")
	require.NoError(t, err)

	_, err = env.posts.AddComment(ctx, post.ID, commenter.ID, "")
	assertCode(t, err, models.CodeValidation)

	comments, err := env.posts.AddComment(ctx, post.ID, commenter.ID, "first!")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "john", comments[0].AuthorName)

	// Only the comment author may remove it; the post author may not.
	_, err = env.posts.DeleteComment(ctx, post.ID, comments[0].ID, author.ID)
	assertCode(t, err, models.CodeForbidden)

	comments, err = env.posts.DeleteComment(ctx, post.ID, comments[0].ID, commenter.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestDeleteCommentWrongPost(t *testing.T) {
	t.Parallel()
	env := setupEnv(t)
	author := env.createUser(t, "jane", "jane@example.com")
	ctx := context.Background()

	post, err := env.posts.CreatePost(ctx, author.ID, "one")
	require.NoError(t, err)
	other, err := env.posts.CreatePost(ctx, author.ID, "two")
	require.NoError(t, err)

	comments, err := env.posts.AddComment(ctx, post.ID, author.ID, "on the first post")
	require.NoError(t, err)

	_, err = env.posts.DeleteComment(ctx, other.ID, comments[0].ID, author.ID)
	assertCode(t, err, models.CodeNotFound)
}

func TestListPostsNewestFirst(t *testing.T) {
	t.Parallel()
	env := setupEnv(t)
	author := env.createUser(t, "jane", "jane@example.com")
	ctx := context.Background()

	_, err := env.posts.CreatePost(ctx, author.ID, "first")
	require.NoError(t, err)
	_, err = env.posts.CreatePost(ctx, author.ID, "second")
	require.NoError(t, err)

	posts, err := env.posts.ListPosts(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "second", posts[0].Text)
}
