// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"plume/internal/cache"
	"plume/internal/models"

	"gorm.io/gorm"
)

// GroupRepository defines persistence operations for groups.
type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	GetBySlug(ctx context.Context, slug string) (*models.Group, error)
	List(ctx context.Context) ([]models.Group, error)
	DeleteBySlug(ctx context.Context, slug string) error
}

type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository returns a new GroupRepository implementation.
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(ctx context.Context, group *models.Group) error {
	if err := r.db.WithContext(ctx).Create(group).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("A group with this slug already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *groupRepository) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	var group models.Group
	key := cache.GroupKey(slug)

	err := cache.Aside(ctx, key, &group, cache.GroupTTL, func() error {
		if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&group).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Group", slug)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) List(ctx context.Context) ([]models.Group, error) {
	var groups []models.Group
	if err := r.db.WithContext(ctx).Order("title ASC").Find(&groups).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return groups, nil
}

// DeleteBySlug removes a group and detaches its posts. Posts outlive their
// group: the group ref is nulled, not cascaded.
func (r *groupRepository) DeleteBySlug(ctx context.Context, slug string) error {
	group, err := r.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).
			Where("group_id = ?", group.ID).
			Update("group_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Group{}, group.ID).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}

	cache.InvalidateGroup(ctx, slug)
	return nil
}
