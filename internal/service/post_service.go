package service

import (
	"context"

	"devconnect/internal/models"
	"devconnect/internal/repository"
)

// PostService owns the feed rules: author snapshots, like/unlike
// idempotency errors and ownership checks on deletes.
type PostService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
}

func NewPostService(postRepo repository.PostRepository, commentRepo repository.CommentRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, commentRepo: commentRepo, userRepo: userRepo}
}

// CreatePost stores a new post with the author's name and avatar captured
// at creation time. The snapshot is never resynced if the user later changes.
func (s *PostService) CreatePost(ctx context.Context, userID uint, text string) (*models.Post, error) {
	if text == "" {
		return nil, models.NewValidationError("Text is required")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:       userID,
		Text:         text,
		AuthorName:   user.Name,
		AuthorAvatar: user.Avatar,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.List(ctx, limit, offset)
}

func (s *PostService) GetPost(ctx context.Context, postID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, postID)
}

// DeletePost removes a post. Only the author may delete it.
func (s *PostService) DeletePost(ctx context.Context, postID, userID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewForbiddenError("you can only delete your own posts")
	}
	return s.postRepo.Delete(ctx, post.ID)
}

// LikePost records userID's like on a post. Liking twice fails with an
// already-liked error.
func (s *PostService) LikePost(ctx context.Context, postID, userID uint) ([]models.Like, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	liked, err := s.postRepo.IsLiked(ctx, userID, post.ID)
	if err != nil {
		return nil, err
	}
	if liked {
		return nil, models.NewAlreadyLikedError()
	}

	if err := s.postRepo.Like(ctx, userID, post.ID); err != nil {
		return nil, err
	}

	refreshed, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	return refreshed.Likes, nil
}

// UnlikePost removes userID's like. Unliking a post the caller never
// liked fails with a not-liked error.
func (s *PostService) UnlikePost(ctx context.Context, postID, userID uint) ([]models.Like, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	removed, err := s.postRepo.Unlike(ctx, userID, post.ID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, models.NewNotLikedError()
	}

	refreshed, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	return refreshed.Likes, nil
}

// AddComment attaches a comment to a post, snapshotting the commenter's
// name and avatar.
func (s *PostService) AddComment(ctx context.Context, postID, userID uint, text string) ([]models.Comment, error) {
	if text == "" {
		return nil, models.NewValidationError("Text is required")
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:       post.ID,
		UserID:       userID,
		Text:         text,
		AuthorName:   user.Name,
		AuthorAvatar: user.Avatar,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	refreshed, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	return refreshed.Comments, nil
}

// DeleteComment removes a comment from a post. Only the comment's author
// may delete it.
func (s *PostService) DeleteComment(ctx context.Context, postID, commentID, userID uint) ([]models.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(ctx, post.ID, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, models.NewForbiddenError("you can only delete your own comments")
	}

	if err := s.commentRepo.Delete(ctx, comment); err != nil {
		return nil, err
	}

	refreshed, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	return refreshed.Comments, nil
}
