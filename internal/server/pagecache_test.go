package server

import (
	"net/http"
	"testing"
	"time"

	"plume/internal/cache"
	"plume/internal/config"
	"plume/internal/database"
	"plume/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newCachedTestServer wires a miniredis-backed server so the feed page cache
// is active.
func newCachedTestServer(t *testing.T, flags string, ttlSeconds int) (*Server, *fiber.App, *gorm.DB, *miniredis.Miniredis) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache.SetClient(client)
	t.Cleanup(func() { cache.SetClient(nil) })

	cfg := &config.Config{
		Port:                "0",
		JWTSecret:           "test-secret-not-for-production",
		FeatureFlags:        flags,
		FeedCacheTTLSeconds: ttlSeconds,
	}

	srv, err := NewServerWithDeps(cfg, db, client)
	require.NoError(t, err)

	app := fiber.New()
	srv.SetupRoutes(app)
	return srv, app, db, mr
}

func feedTexts(t *testing.T, app *fiber.App) []string {
	t.Helper()
	resp := doJSON(t, app, fiber.MethodGet, "/api/posts/", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page struct {
		Posts []models.Post `json:"posts"`
	}
	decodeBody(t, resp, &page)

	texts := make([]string, len(page.Posts))
	for i, p := range page.Posts {
		texts[i] = p.Text
	}
	return texts
}

func TestFeedPageCache_BoundedStaleness(t *testing.T) {
	srv, app, db, mr := newCachedTestServer(t, "feed_cache=on", 20)
	author := createTestUser(t, db, "lena", false)
	auth := authHeader(t, srv, author)

	resp := doJSON(t, app, fiber.MethodPost, "/api/posts/", auth, fiber.Map{"text": "first"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// prime the cache
	require.Equal(t, []string{"first"}, feedTexts(t, app))

	// a new post does not appear while the cached page is live
	resp = doJSON(t, app, fiber.MethodPost, "/api/posts/", auth, fiber.Map{"text": "second"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, []string{"first"}, feedTexts(t, app), "mutations must not invalidate the page cache")

	// past the TTL the page is rebuilt
	mr.FastForward(21 * time.Second)
	assert.Equal(t, []string{"second", "first"}, feedTexts(t, app))
}

func TestFeedPageCache_KeyIncludesQuery(t *testing.T) {
	srv, app, db, _ := newCachedTestServer(t, "feed_cache=on", 20)
	author := createTestUser(t, db, "lena", false)
	auth := authHeader(t, srv, author)

	for i := 0; i < 11; i++ {
		resp := doJSON(t, app, fiber.MethodPost, "/api/posts/", auth, fiber.Map{"text": "post"})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := doJSON(t, app, fiber.MethodGet, "/api/posts/?page=1", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page1 struct {
		Page  int           `json:"page"`
		Posts []models.Post `json:"posts"`
	}
	decodeBody(t, resp, &page1)
	assert.Equal(t, 1, page1.Page)
	assert.Len(t, page1.Posts, 10)

	// a different page number is a different cache entry
	resp = doJSON(t, app, fiber.MethodGet, "/api/posts/?page=2", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page2 struct {
		Page  int           `json:"page"`
		Posts []models.Post `json:"posts"`
	}
	decodeBody(t, resp, &page2)
	assert.Equal(t, 2, page2.Page)
	assert.Len(t, page2.Posts, 1)
}

func TestFeedPageCache_FlagOff(t *testing.T) {
	srv, app, db, _ := newCachedTestServer(t, "feed_cache=off", 20)
	author := createTestUser(t, db, "lena", false)
	auth := authHeader(t, srv, author)

	resp := doJSON(t, app, fiber.MethodPost, "/api/posts/", auth, fiber.Map{"text": "first"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, []string{"first"}, feedTexts(t, app))

	// with the flag off every request sees fresh data
	resp = doJSON(t, app, fiber.MethodPost, "/api/posts/", auth, fiber.Map{"text": "second"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, []string{"second", "first"}, feedTexts(t, app))
}

func TestFeedPageCache_OnlyGlobalFeed(t *testing.T) {
	srv, app, db, _ := newCachedTestServer(t, "feed_cache=on", 20)
	fan := createTestUser(t, db, "fan", false)
	star := createTestUser(t, db, "star", false)

	resp := doJSON(t, app, fiber.MethodPost, "/api/profiles/star/follow", authHeader(t, srv, fan), nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/api/feed", authHeader(t, srv, fan), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// the followed feed is personalized and never cached
	resp = doJSON(t, app, fiber.MethodPost, "/api/posts/", authHeader(t, srv, star), fiber.Map{"text": "fresh"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/api/feed", authHeader(t, srv, fan), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page struct {
		Posts []models.Post `json:"posts"`
	}
	decodeBody(t, resp, &page)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, "fresh", page.Posts[0].Text)
}

func TestClearFeedPages(t *testing.T) {
	srv, app, db, _ := newCachedTestServer(t, "feed_cache=on", 20)
	author := createTestUser(t, db, "lena", false)
	auth := authHeader(t, srv, author)

	resp := doJSON(t, app, fiber.MethodPost, "/api/posts/", auth, fiber.Map{"text": "first"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, []string{"first"}, feedTexts(t, app))

	resp = doJSON(t, app, fiber.MethodPost, "/api/posts/", auth, fiber.Map{"text": "second"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// operator escape hatch: explicit clear makes the next read fresh
	require.NoError(t, cache.ClearFeedPages(t.Context()))
	assert.Equal(t, []string{"second", "first"}, feedTexts(t, app))
}
