package service

import (
	"context"
	"strings"

	"plume/internal/cache"
	"plume/internal/models"
	"plume/internal/repository"
)

const maxCommentTextLen = 10000

// CommentService provides comment business logic.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// NewCommentService returns a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// AddComment attaches a comment to an existing post.
func (s *CommentService) AddComment(ctx context.Context, userID, postID uint, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, models.NewValidationError("Text is required")
	}
	if len(text) > maxCommentTextLen {
		return nil, models.NewValidationError("Text too long (max 10000 characters)")
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:   text,
		UserID: userID,
		PostID: postID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	// the cached post carries a comment count
	cache.Invalidate(ctx, cache.PostKey(postID))

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListComments returns all comments on a post, newest first.
func (s *CommentService) ListComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	return comments, nil
}
