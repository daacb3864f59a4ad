// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"errors"
	"strconv"
	"strings"

	"plume/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parsePage extracts the page query parameter. Out-of-range values are left
// to the service layer, which clamps them onto the feed.
func parsePage(c *fiber.Ctx) int {
	return c.QueryInt("page", 1)
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "commentId" -> "comment ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	if strings.HasSuffix(param, "Id") {
		return strings.ToLower(param[:len(param)-2]) + " ID"
	}
	return param
}

// currentUserID returns the authenticated user's ID. Only valid behind
// AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	return c.Locals("userID").(uint)
}

// optionalUserID attempts to extract userID from the Authorization header but
// does not enforce it. Used on public routes whose response varies for
// logged-in viewers.
func (s *Server) optionalUserID(c *fiber.Ctx) (uint, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return 0, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, false
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, false
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(userID), true
}

// respondServiceError maps an AppError from the service layer onto the right
// HTTP status.
func respondServiceError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case models.CodeNotFound:
			return models.RespondWithError(c, fiber.StatusNotFound, err)
		case models.CodeValidation:
			return models.RespondWithError(c, fiber.StatusBadRequest, err)
		case models.CodeUnauthorized:
			return models.RespondWithError(c, fiber.StatusUnauthorized, err)
		case models.CodeForbidden:
			return models.RespondWithError(c, fiber.StatusForbidden, err)
		case models.CodeConflict:
			return models.RespondWithError(c, fiber.StatusConflict, err)
		}
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError, err)
}
