package server

import (
	"plume/internal/models"
	"plume/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProfile handles GET /api/profiles/:username — the profile feed with
// counters and, for logged-in viewers, a following flag.
func (s *Server) GetProfile(c *fiber.Ctx) error {
	username := c.Params("username")
	viewerID, _ := s.optionalUserID(c)

	profile, err := s.followService.GetProfile(c.Context(), username, viewerID)
	if err != nil {
		return respondServiceError(c, err)
	}

	_, page, err := s.postService.ListAuthorPosts(c.Context(), username, parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"profile":     profile,
		"posts":       page.Posts,
		"page":        page.Page,
		"total_pages": page.TotalPages,
	})
}

// GetFollowers handles GET /api/profiles/:username/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	followers, err := s.followService.ListFollowers(c.Context(), c.Params("username"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(followers)
}

// GetFollowing handles GET /api/profiles/:username/following
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	following, err := s.followService.ListFollowing(c.Context(), c.Params("username"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(following)
}

// FollowUser handles POST /api/profiles/:username/follow
func (s *Server) FollowUser(c *fiber.Ctx) error {
	if err := s.followService.Follow(c.Context(), currentUserID(c), c.Params("username")); err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"following": true})
}

// UnfollowUser handles DELETE /api/profiles/:username/follow
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	if err := s.followService.Unfollow(c.Context(), currentUserID(c), c.Params("username")); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"following": false})
}

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetByID(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		Bio    *string `json:"bio"`
		Avatar *string `json:"avatar"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID: currentUserID(c),
		Bio:    req.Bio,
		Avatar: req.Avatar,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}
