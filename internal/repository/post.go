// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"plume/internal/cache"
	"plume/internal/models"
	"plume/internal/observability"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations.
// All listing methods order by creation time descending with descending ID
// as the tie-breaker so pagination stays stable under identical timestamps.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, limit, offset int) ([]*models.Post, error)
	Count(ctx context.Context) (int64, error)
	ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error)
	CountByAuthor(ctx context.Context, authorID uint) (int64, error)
	ListByGroup(ctx context.Context, groupID uint, limit, offset int) ([]*models.Post, error)
	CountByGroup(ctx context.Context, groupID uint) (int64, error)
	ListFollowed(ctx context.Context, followerID uint, limit, offset int) ([]*models.Post, error)
	CountFollowed(ctx context.Context, followerID uint) (int64, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db      *gorm.DB
	metrics *observability.DatabaseMetrics
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db, metrics: observability.NewDatabaseMetrics(db)}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	key := cache.PostKey(id)

	err := cache.Aside(ctx, key, &post, cache.PostTTL, func() error {
		if err := r.applyPostDetails(r.db.WithContext(ctx)).
			Preload("User").
			Preload("Group").
			First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return r.listWhere(ctx, nil, limit, offset)
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	return r.countWhere(ctx, nil)
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error) {
	return r.listWhere(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("posts.user_id = ?", authorID)
	}, limit, offset)
}

func (r *postRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	return r.countWhere(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("posts.user_id = ?", authorID)
	})
}

func (r *postRepository) ListByGroup(ctx context.Context, groupID uint, limit, offset int) ([]*models.Post, error) {
	return r.listWhere(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("posts.group_id = ?", groupID)
	}, limit, offset)
}

func (r *postRepository) CountByGroup(ctx context.Context, groupID uint) (int64, error) {
	return r.countWhere(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("posts.group_id = ?", groupID)
	})
}

func (r *postRepository) ListFollowed(ctx context.Context, followerID uint, limit, offset int) ([]*models.Post, error) {
	return r.listWhere(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Joins("JOIN follows ON follows.author_id = posts.user_id").
			Where("follows.follower_id = ?", followerID)
	}, limit, offset)
}

func (r *postRepository) CountFollowed(ctx context.Context, followerID uint) (int64, error) {
	return r.countWhere(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Joins("JOIN follows ON follows.author_id = posts.user_id").
			Where("follows.follower_id = ?", followerID)
	})
}

func (r *postRepository) listWhere(ctx context.Context, scope func(*gorm.DB) *gorm.DB, limit, offset int) ([]*models.Post, error) {
	defer r.metrics.TrackQuery("select", "posts")()

	var posts []*models.Post
	db := r.applyPostDetails(r.db.WithContext(ctx)).
		Preload("User").
		Preload("Group")
	if scope != nil {
		db = scope(db)
	}
	err := db.Order("posts.created_at DESC, posts.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) countWhere(ctx context.Context, scope func(*gorm.DB) *gorm.DB) (int64, error) {
	var count int64
	db := r.db.WithContext(ctx).Model(&models.Post{})
	if scope != nil {
		db = scope(db)
	}
	if err := db.Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// applyPostDetails adds a subquery to fetch the comment count in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB) *gorm.DB {
	return db.Select("posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL) as comments_count")
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

// Delete removes a post together with its comments. Comments never outlive
// their post.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, id)
	return nil
}
