package repository

import (
	"context"
	"testing"

	"plume/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRepository_CreateIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	follower := models.User{Username: "fan", Email: "fan@example.com", Password: "pw"}
	author := models.User{Username: "star", Email: "star@example.com", Password: "pw"}
	require.NoError(t, db.Create(&follower).Error)
	require.NoError(t, db.Create(&author).Error)

	require.NoError(t, repo.Create(ctx, &models.Follow{FollowerID: follower.ID, AuthorID: author.ID}))
	require.NoError(t, repo.Create(ctx, &models.Follow{FollowerID: follower.ID, AuthorID: author.ID}))

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	exists, err := repo.Exists(ctx, follower.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, author.ID, follower.ID)
	require.NoError(t, err)
	assert.False(t, exists, "follow relation is directional")
}

func TestFollowRepository_DeleteIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	follower := models.User{Username: "fan", Email: "fan@example.com", Password: "pw"}
	author := models.User{Username: "star", Email: "star@example.com", Password: "pw"}
	require.NoError(t, db.Create(&follower).Error)
	require.NoError(t, db.Create(&author).Error)
	require.NoError(t, repo.Create(ctx, &models.Follow{FollowerID: follower.ID, AuthorID: author.ID}))

	require.NoError(t, repo.Delete(ctx, follower.ID, author.ID))
	// second delete is a no-op, not an error
	require.NoError(t, repo.Delete(ctx, follower.ID, author.ID))

	exists, err := repo.Exists(ctx, follower.ID, author.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFollowRepository_Lists(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	author := models.User{Username: "star", Email: "star@example.com", Password: "pw"}
	fanA := models.User{Username: "alice", Email: "alice@example.com", Password: "pw"}
	fanB := models.User{Username: "bob", Email: "bob@example.com", Password: "pw"}
	require.NoError(t, db.Create(&author).Error)
	require.NoError(t, db.Create(&fanA).Error)
	require.NoError(t, db.Create(&fanB).Error)

	require.NoError(t, repo.Create(ctx, &models.Follow{FollowerID: fanA.ID, AuthorID: author.ID}))
	require.NoError(t, repo.Create(ctx, &models.Follow{FollowerID: fanB.ID, AuthorID: author.ID}))
	require.NoError(t, repo.Create(ctx, &models.Follow{FollowerID: fanA.ID, AuthorID: fanB.ID}))

	count, err := repo.CountFollowers(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	followers, err := repo.ListFollowers(ctx, author.ID)
	require.NoError(t, err)
	require.Len(t, followers, 2)
	// most recent follow first
	assert.Equal(t, "bob", followers[0].Username)
	assert.Equal(t, "alice", followers[1].Username)

	following, err := repo.ListFollowing(ctx, fanA.ID)
	require.NoError(t, err)
	require.Len(t, following, 2)
	assert.Equal(t, "bob", following[0].Username)
	assert.Equal(t, "star", following[1].Username)
}
