package server

import (
	"github.com/gofiber/fiber/v2"

	"inkwell/internal/models"
)

// SearchUsersRequest matches usernames by substring.
type SearchUsersRequest struct {
	Query string `json:"query"`
}

// GetProfileRequest identifies a user by username.
type GetProfileRequest struct {
	Username string `json:"username"`
}

// SearchUsers returns users whose username contains the query
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	var req SearchUsersRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	users, err := s.blogService.SearchUsers(c.UserContext(), req.Query)
	if err != nil {
		return respondError(c, err)
	}

	authors := make([]models.PublicAuthor, len(users))
	for i := range users {
		authors[i] = users[i].Public()
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"users": authors})
}

// GetProfile returns a user's public profile
func (s *Server) GetProfile(c *fiber.Ctx) error {
	var req GetProfileRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	user, err := s.blogService.GetProfile(c.UserContext(), req.Username)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(user)
}
