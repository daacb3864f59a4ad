package server

import (
	"plume/internal/models"
	"plume/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetGroups handles GET /api/groups
func (s *Server) GetGroups(c *fiber.Ctx) error {
	groups, err := s.groupService.ListGroups(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(groups)
}

// GetGroupPosts handles GET /api/groups/:slug/posts — the group feed.
func (s *Server) GetGroupPosts(c *fiber.Ctx) error {
	slug := c.Params("slug")

	group, page, err := s.postService.ListGroupPosts(c.Context(), slug, parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"group":       group,
		"posts":       page.Posts,
		"page":        page.Page,
		"total_pages": page.TotalPages,
		"total_count": page.TotalCount,
	})
}

// CreateGroup handles POST /api/groups. Admin only.
func (s *Server) CreateGroup(c *fiber.Ctx) error {
	var req struct {
		Title       string `json:"title"`
		Slug        string `json:"slug"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	group, err := s.groupService.CreateGroup(c.Context(), service.CreateGroupInput{
		UserID:      currentUserID(c),
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(group)
}

// DeleteGroup handles DELETE /api/groups/:slug. Admin only. Posts in the
// group are kept, detached.
func (s *Server) DeleteGroup(c *fiber.Ctx) error {
	slug := c.Params("slug")

	if err := s.groupService.DeleteGroup(c.Context(), currentUserID(c), slug); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
