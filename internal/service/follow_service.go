package service

import (
	"context"

	"plume/internal/models"
	"plume/internal/repository"
)

// FollowService provides follow-relationship and profile business logic.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	postRepo   repository.PostRepository
}

// Profile is a user together with their profile counters, as seen by a
// particular viewer.
type Profile struct {
	User           *models.User `json:"user"`
	PostsCount     int64        `json:"posts_count"`
	FollowersCount int64        `json:"followers_count"`
	// Following reports whether the viewer follows this user. Always false
	// for anonymous viewers and for a user viewing their own profile.
	Following bool `json:"following"`
}

// NewFollowService returns a new FollowService.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository, postRepo repository.PostRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
		postRepo:   postRepo,
	}
}

// Follow subscribes the follower to the author's posts. Following twice is
// a no-op; following yourself is rejected.
func (s *FollowService) Follow(ctx context.Context, followerID uint, username string) error {
	author, err := s.resolveUser(ctx, username)
	if err != nil {
		return err
	}
	if author.ID == followerID {
		return models.NewValidationError("You cannot follow yourself")
	}

	return s.followRepo.Create(ctx, &models.Follow{
		FollowerID: followerID,
		AuthorID:   author.ID,
	})
}

// Unfollow removes the subscription. Unfollowing someone you do not follow
// is a no-op.
func (s *FollowService) Unfollow(ctx context.Context, followerID uint, username string) error {
	author, err := s.resolveUser(ctx, username)
	if err != nil {
		return err
	}
	if author.ID == followerID {
		return models.NewValidationError("You cannot unfollow yourself")
	}

	return s.followRepo.Delete(ctx, followerID, author.ID)
}

// GetProfile returns the user's profile with counters. viewerID is zero for
// anonymous viewers.
func (s *FollowService) GetProfile(ctx context.Context, username string, viewerID uint) (*Profile, error) {
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	postsCount, err := s.postRepo.CountByAuthor(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	followersCount, err := s.followRepo.CountFollowers(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	var following bool
	if viewerID != 0 && viewerID != user.ID {
		following, err = s.followRepo.Exists(ctx, viewerID, user.ID)
		if err != nil {
			return nil, err
		}
	}

	return &Profile{
		User:           user,
		PostsCount:     postsCount,
		FollowersCount: followersCount,
		Following:      following,
	}, nil
}

// ListFollowers returns the users following the named user, newest first.
func (s *FollowService) ListFollowers(ctx context.Context, username string) ([]models.User, error) {
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.followRepo.ListFollowers(ctx, user.ID)
}

// ListFollowing returns the users the named user follows, newest first.
func (s *FollowService) ListFollowing(ctx context.Context, username string) ([]models.User, error) {
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.followRepo.ListFollowing(ctx, user.ID)
}

func (s *FollowService) resolveUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", username)
	}
	return user, nil
}
