// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"plume/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository defines the interface for follow relationship operations.
type FollowRepository interface {
	Create(ctx context.Context, follow *models.Follow) error
	Exists(ctx context.Context, followerID, authorID uint) (bool, error)
	Delete(ctx context.Context, followerID, authorID uint) error
	CountFollowers(ctx context.Context, authorID uint) (int64, error)
	ListFollowers(ctx context.Context, authorID uint) ([]models.User, error)
	ListFollowing(ctx context.Context, followerID uint) ([]models.User, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Create inserts the follow pair, silently keeping the existing row when the
// pair already exists. The unique index on (follower_id, author_id) makes
// this atomic under concurrent requests.
func (r *followRepository) Create(ctx context.Context, follow *models.Follow) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "follower_id"}, {Name: "author_id"}},
			DoNothing: true,
		}).
		Create(follow).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *followRepository) Exists(ctx context.Context, followerID, authorID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND author_id = ?", followerID, authorID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// Delete removes the follow pair. Deleting a pair that does not exist is a
// no-op, which makes unfollow idempotent.
func (r *followRepository) Delete(ctx context.Context, followerID, authorID uint) error {
	err := r.db.WithContext(ctx).
		Where("follower_id = ? AND author_id = ?", followerID, authorID).
		Delete(&models.Follow{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *followRepository) CountFollowers(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *followRepository) ListFollowers(ctx context.Context, authorID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.author_id = ?", authorID).
		Order("follows.id DESC").
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *followRepository) ListFollowing(ctx context.Context, followerID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN follows ON follows.author_id = users.id").
		Where("follows.follower_id = ?", followerID).
		Order("follows.id DESC").
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}
