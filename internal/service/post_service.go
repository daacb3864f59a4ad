package service

import (
	"context"
	"errors"
	"strings"

	"plume/internal/models"
	"plume/internal/repository"
)

const maxPostTextLen = 40000

// PostService provides post business logic: creation, editing, and the
// four paginated feeds (global, group, profile, followed).
type PostService struct {
	postRepo  repository.PostRepository
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
}

type CreatePostInput struct {
	UserID    uint
	Text      string
	ImageURL  string
	GroupSlug string
}

type UpdatePostInput struct {
	UserID   uint
	PostID   uint
	Text     string
	ImageURL *string
	// GroupSlug nil leaves the group unchanged; empty string detaches it.
	GroupSlug *string
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, groupRepo repository.GroupRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{
		postRepo:  postRepo,
		groupRepo: groupRepo,
		userRepo:  userRepo,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, models.NewValidationError("Text is required")
	}
	if len(text) > maxPostTextLen {
		return nil, models.NewValidationError("Text too long (max 40000 characters)")
	}

	post := &models.Post{
		Text:     text,
		ImageURL: strings.TrimSpace(in.ImageURL),
		UserID:   in.UserID,
	}

	if in.GroupSlug != "" {
		group, err := s.resolveGroup(ctx, in.GroupSlug)
		if err != nil {
			return nil, err
		}
		post.GroupID = &group.ID
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// UpdatePost edits a post. Only the author may edit; the creation time is
// never touched so an edited post keeps its position in the feeds.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	if post.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only edit your own posts")
	}

	if in.Text != "" {
		text := strings.TrimSpace(in.Text)
		if text == "" {
			return nil, models.NewValidationError("Text is required")
		}
		if len(text) > maxPostTextLen {
			return nil, models.NewValidationError("Text too long (max 40000 characters)")
		}
		post.Text = text
	}
	if in.ImageURL != nil {
		post.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	if in.GroupSlug != nil {
		if *in.GroupSlug == "" {
			post.GroupID = nil
			post.Group = nil
		} else {
			group, err := s.resolveGroup(ctx, *in.GroupSlug)
			if err != nil {
				return nil, err
			}
			post.GroupID = &group.ID
			post.Group = nil
		}
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// DeletePost removes a post and its comments. Authors delete their own
// posts; admins may delete anyone's.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return err
	}

	if post.UserID != in.UserID {
		actor, err := s.userRepo.GetByID(ctx, in.UserID)
		if err != nil {
			return err
		}
		if !actor.IsAdmin {
			return models.NewForbiddenError("You can only delete your own posts")
		}
	}

	return s.postRepo.Delete(ctx, in.PostID)
}

// ListPosts returns one page of the global feed.
func (s *PostService) ListPosts(ctx context.Context, page int) (*PostPage, error) {
	return s.listPage(ctx, page,
		s.postRepo.Count,
		s.postRepo.List,
	)
}

// ListGroupPosts returns one page of a group's feed.
func (s *PostService) ListGroupPosts(ctx context.Context, slug string, page int) (*models.Group, *PostPage, error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	result, err := s.listPage(ctx, page,
		func(ctx context.Context) (int64, error) {
			return s.postRepo.CountByGroup(ctx, group.ID)
		},
		func(ctx context.Context, limit, offset int) ([]*models.Post, error) {
			return s.postRepo.ListByGroup(ctx, group.ID, limit, offset)
		},
	)
	if err != nil {
		return nil, nil, err
	}
	return group, result, nil
}

// ListAuthorPosts returns one page of a user's profile feed.
func (s *PostService) ListAuthorPosts(ctx context.Context, username string, page int) (*models.User, *PostPage, error) {
	author, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	result, err := s.listPage(ctx, page,
		func(ctx context.Context) (int64, error) {
			return s.postRepo.CountByAuthor(ctx, author.ID)
		},
		func(ctx context.Context, limit, offset int) ([]*models.Post, error) {
			return s.postRepo.ListByAuthor(ctx, author.ID, limit, offset)
		},
	)
	if err != nil {
		return nil, nil, err
	}
	return author, result, nil
}

// ListFollowedPosts returns one page of posts by authors the viewer follows.
func (s *PostService) ListFollowedPosts(ctx context.Context, viewerID uint, page int) (*PostPage, error) {
	return s.listPage(ctx, page,
		func(ctx context.Context) (int64, error) {
			return s.postRepo.CountFollowed(ctx, viewerID)
		},
		func(ctx context.Context, limit, offset int) ([]*models.Post, error) {
			return s.postRepo.ListFollowed(ctx, viewerID, limit, offset)
		},
	)
}

func (s *PostService) listPage(
	ctx context.Context,
	page int,
	count func(context.Context) (int64, error),
	list func(ctx context.Context, limit, offset int) ([]*models.Post, error),
) (*PostPage, error) {
	total, err := count(ctx)
	if err != nil {
		return nil, err
	}

	effective, offset := clampPage(page, total, DefaultPageSize)
	posts, err := list(ctx, DefaultPageSize, offset)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []*models.Post{}
	}

	return &PostPage{
		Posts:      posts,
		Page:       effective,
		PageSize:   DefaultPageSize,
		TotalPages: totalPages(total, DefaultPageSize),
		TotalCount: total,
	}, nil
}

func (s *PostService) resolveGroup(ctx context.Context, slug string) (*models.Group, error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
			return nil, models.NewValidationError("Unknown group: " + slug)
		}
		return nil, err
	}
	return group, nil
}

func (s *PostService) resolveUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", username)
	}
	return user, nil
}
