// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"plume/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedOptions tune how the factory generates data.
type SeedOptions struct {
	// MaxDays spreads generated created_at times over this many days back.
	MaxDays int
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts SeedOptions
	rng  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts SeedOptions) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}
	return &Factory{
		db:   db,
		opts: opts,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Password: string(hashed),
		Bio:      gofakeit.Sentence(10),
		Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildPost constructs a post struct without persisting it. Useful for
// batching.
func (f *Factory) BuildPost(user *models.User, group *models.Group, overrides ...func(*models.Post)) *models.Post {
	post := &models.Post{
		Text:   gofakeit.Paragraph(1, 3, 8, "\n"),
		UserID: user.ID,
	}
	if group != nil {
		post.GroupID = &group.ID
	}
	if f.rng.Intn(3) == 0 {
		post.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
	}

	// realistic created_at spread
	daysBack := f.rng.Intn(f.opts.MaxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	post.CreatedAt = time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour -
			time.Duration(hoursBack)*time.Hour -
			time.Duration(minsBack)*time.Minute)

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePost persists a generated post for the user, optionally in a group.
func (f *Factory) CreatePost(user *models.User, group *models.Group, overrides ...func(*models.Post)) (*models.Post, error) {
	post := f.BuildPost(user, group, overrides...)
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreatePostsBatch persists multiple posts in a single DB call.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	return f.db.Create(&posts).Error
}

// CreateComment persists a generated comment by the user on the post.
func (f *Factory) CreateComment(user *models.User, post *models.Post, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Text:   gofakeit.Sentence(f.rng.Intn(12) + 3),
		UserID: user.ID,
		PostID: post.ID,
	}
	for _, override := range overrides {
		override(comment)
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateFollow subscribes follower to author. Duplicate pairs are ignored so
// random meshes can retry freely.
func (f *Factory) CreateFollow(follower, author *models.User) error {
	if follower.ID == author.ID {
		return nil
	}
	return f.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "follower_id"}, {Name: "author_id"}},
		DoNothing: true,
	}).Create(&models.Follow{
		FollowerID: follower.ID,
		AuthorID:   author.ID,
	}).Error
}
