package server

import (
	"fmt"
	"net/http"
	"testing"

	"plume/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost(t *testing.T) {
	srv, app, db := newTestServer(t)
	author := createTestUser(t, db, "lena", false)
	auth := authHeader(t, srv, author)

	t.Run("creates post", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/posts/", auth, fiber.Map{
			"text": "hello world",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var post models.Post
		decodeBody(t, resp, &post)
		assert.Equal(t, "hello world", post.Text)
		assert.Equal(t, author.ID, post.UserID)
	})

	t.Run("empty text rejected", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/posts/", auth, fiber.Map{
			"text": "   ",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown group rejected", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/posts/", auth, fiber.Map{
			"text":  "hi",
			"group": "nowhere",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("group post", func(t *testing.T) {
		require.NoError(t, db.Create(&models.Group{Title: "Cats", Slug: "cats"}).Error)
		resp := doJSON(t, app, fiber.MethodPost, "/api/posts/", auth, fiber.Map{
			"text":  "meow",
			"group": "cats",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var post models.Post
		decodeBody(t, resp, &post)
		require.NotNil(t, post.Group)
		assert.Equal(t, "cats", post.Group.Slug)
	})
}

func TestGetPosts(t *testing.T) {
	srv, app, db := newTestServer(t)
	author := createTestUser(t, db, "lena", false)
	auth := authHeader(t, srv, author)

	for i := 0; i < 12; i++ {
		resp := doJSON(t, app, fiber.MethodPost, "/api/posts/", auth, fiber.Map{
			"text": fmt.Sprintf("post %d", i),
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	var page struct {
		Posts      []models.Post `json:"posts"`
		Page       int           `json:"page"`
		TotalPages int           `json:"total_pages"`
		TotalCount int64         `json:"total_count"`
	}

	t.Run("first page newest first", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodGet, "/api/posts/", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		decodeBody(t, resp, &page)
		require.Len(t, page.Posts, 10)
		assert.Equal(t, "post 11", page.Posts[0].Text)
		assert.Equal(t, 2, page.TotalPages)
		assert.Equal(t, int64(12), page.TotalCount)
	})

	t.Run("page past the end clamps to last", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodGet, "/api/posts/?page=99", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		decodeBody(t, resp, &page)
		assert.Equal(t, 2, page.Page)
		assert.Len(t, page.Posts, 2)
	})
}

func TestGetPost(t *testing.T) {
	srv, app, db := newTestServer(t)
	author := createTestUser(t, db, "lena", false)
	auth := authHeader(t, srv, author)

	resp := doJSON(t, app, fiber.MethodPost, "/api/posts/", auth, fiber.Map{"text": "topic"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created models.Post
	decodeBody(t, resp, &created)

	resp = doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/api/posts/%d/comments", created.ID), auth, fiber.Map{"text": "nice"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	t.Run("detail with comments", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/api/posts/%d", created.ID), "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Post     models.Post      `json:"post"`
			Comments []models.Comment `json:"comments"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, "topic", body.Post.Text)
		assert.Equal(t, 1, body.Post.CommentsCount)
		require.Len(t, body.Comments, 1)
		assert.Equal(t, "nice", body.Comments[0].Text)
	})

	t.Run("unknown post is 404", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodGet, "/api/posts/9999", "", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("bad id is 400", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodGet, "/api/posts/abc", "", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestUpdatePost(t *testing.T) {
	srv, app, db := newTestServer(t)
	author := createTestUser(t, db, "lena", false)
	other := createTestUser(t, db, "mallory", false)

	resp := doJSON(t, app, fiber.MethodPost, "/api/posts/", authHeader(t, srv, author), fiber.Map{"text": "original"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created models.Post
	decodeBody(t, resp, &created)

	t.Run("non-author is 403", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPut, fmt.Sprintf("/api/posts/%d", created.ID),
			authHeader(t, srv, other), fiber.Map{"text": "hijacked"})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("author edits", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPut, fmt.Sprintf("/api/posts/%d", created.ID),
			authHeader(t, srv, author), fiber.Map{"text": "revised"})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var post models.Post
		decodeBody(t, resp, &post)
		assert.Equal(t, "revised", post.Text)
		assert.True(t, post.CreatedAt.Equal(created.CreatedAt))
	})
}

func TestDeletePost(t *testing.T) {
	srv, app, db := newTestServer(t)
	author := createTestUser(t, db, "lena", false)
	other := createTestUser(t, db, "mallory", false)

	resp := doJSON(t, app, fiber.MethodPost, "/api/posts/", authHeader(t, srv, author), fiber.Map{"text": "doomed"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created models.Post
	decodeBody(t, resp, &created)

	t.Run("non-author is 403", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodDelete, fmt.Sprintf("/api/posts/%d", created.ID),
			authHeader(t, srv, other), nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("author deletes, comments go too", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/api/posts/%d/comments", created.ID),
			authHeader(t, srv, other), fiber.Map{"text": "gone with it"})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		resp = doJSON(t, app, fiber.MethodDelete, fmt.Sprintf("/api/posts/%d", created.ID),
			authHeader(t, srv, author), nil)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp = doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/api/posts/%d", created.ID), "", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var count int64
		require.NoError(t, db.Model(&models.Comment{}).Where("post_id = ?", created.ID).Count(&count).Error)
		assert.Zero(t, count)
	})
}

func TestGetFollowedFeed(t *testing.T) {
	srv, app, db := newTestServer(t)
	fan := createTestUser(t, db, "fan", false)
	star := createTestUser(t, db, "star", false)
	other := createTestUser(t, db, "other", false)

	resp := doJSON(t, app, fiber.MethodPost, "/api/posts/", authHeader(t, srv, star), fiber.Map{"text": "from star"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = doJSON(t, app, fiber.MethodPost, "/api/posts/", authHeader(t, srv, other), fiber.Map{"text": "from other"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPost, "/api/profiles/star/follow", authHeader(t, srv, fan), nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/api/feed", authHeader(t, srv, fan), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page struct {
		Posts []models.Post `json:"posts"`
	}
	decodeBody(t, resp, &page)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, "from star", page.Posts[0].Text)
}
