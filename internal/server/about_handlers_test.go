package server

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestAboutPages(t *testing.T) {
	_, app, _ := newTestServer(t)

	for _, path := range []string{"/api/about/author", "/api/about/tech"} {
		resp := doJSON(t, app, fiber.MethodGet, path, "", nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body map[string]string
		decodeBody(t, resp, &body)
		assert.NotEmpty(t, body["title"])
		assert.NotEmpty(t, body["body"])
	}
}
