package server

import (
	"plume/internal/models"
	"plume/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts — the global feed. Responses pass through
// FeedPageCache, so a freshly created post may lag by the cache TTL.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page, err := s.postService.ListPosts(c.Context(), parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// GetPost handles GET /api/posts/:id — post detail with its comments.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	comments, err := s.commentService.ListComments(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"post":     post,
		"comments": comments,
	})
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Text     string `json:"text"`
		ImageURL string `json:"image_url"`
		Group    string `json:"group"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		UserID:    currentUserID(c),
		Text:      req.Text,
		ImageURL:  req.ImageURL,
		GroupSlug: req.Group,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /api/posts/:id. Non-authors get 403.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text     string  `json:"text"`
		ImageURL *string `json:"image_url"`
		Group    *string `json:"group"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		UserID:    currentUserID(c),
		PostID:    id,
		Text:      req.Text,
		ImageURL:  req.ImageURL,
		GroupSlug: req.Group,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), service.DeletePostInput{
		UserID: currentUserID(c),
		PostID: id,
	}); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetFollowedFeed handles GET /api/feed — posts by authors the caller follows.
func (s *Server) GetFollowedFeed(c *fiber.Ctx) error {
	page, err := s.postService.ListFollowedPosts(c.Context(), currentUserID(c), parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}
