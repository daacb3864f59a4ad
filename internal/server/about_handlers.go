package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetAboutAuthor handles GET /api/about/author. The HTML about pages of the
// original site are JSON info endpoints here; the frontend renders them.
func (s *Server) GetAboutAuthor(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"title": "About the author",
		"body":  "Plume is maintained by a small group of contributors who wanted a calm place to write.",
	})
}

// GetAboutTech handles GET /api/about/tech.
func (s *Server) GetAboutTech(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"title": "Technology",
		"body":  "Plume is a Go service built on Fiber, GORM with PostgreSQL, and Redis.",
	})
}
