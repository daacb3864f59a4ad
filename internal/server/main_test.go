package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"plume/internal/cache"
	"plume/internal/config"
	"plume/internal/database"
	"plume/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))

	cfg := &config.Config{
		Port:                "0",
		JWTSecret:           "test-secret-not-for-production",
		FeatureFlags:        "feed_cache=on",
		FeedCacheTTLSeconds: 20,
	}

	cache.SetClient(nil)
	t.Cleanup(func() { cache.SetClient(nil) })

	srv, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	app := fiber.New()
	srv.SetupRoutes(app)
	return srv, app, db
}

func createTestUser(t *testing.T, db *gorm.DB, username string, admin bool) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("sturdy1password"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: string(hashed),
		IsAdmin:  admin,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func authHeader(t *testing.T, s *Server, user *models.User) string {
	t.Helper()
	token, err := s.generateToken(user.ID, user.Username)
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(t *testing.T, app *fiber.App, method, target, auth string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}
