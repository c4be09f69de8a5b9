package server

import (
	"github.com/gofiber/fiber/v2"

	"inkwell/internal/models"
)

// GetUploadURL returns a presigned PUT URL for a banner image upload
func (s *Server) GetUploadURL(c *fiber.Ctx) error {
	url, err := s.signer.SignUploadURL(c.UserContext())
	if err != nil {
		return respondError(c, models.NewDependencyError("storage", err))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"uploadURL": url})
}
