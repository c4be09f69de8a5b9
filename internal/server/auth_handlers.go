package server

import (
	"github.com/gofiber/fiber/v2"
)

// SignUpRequest is the local account registration payload.
type SignUpRequest struct {
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInRequest is the local credential login payload.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GoogleAuthRequest carries a Google OAuth access token.
type GoogleAuthRequest struct {
	AccessToken string `json:"access_token"`
}

// SignUp handles local account registration
func (s *Server) SignUp(c *fiber.Ctx) error {
	var req SignUpRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	session, err := s.authService.SignUp(c.UserContext(), req.Fullname, req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(session)
}

// SignIn handles local credential login
func (s *Server) SignIn(c *fiber.Ctx) error {
	var req SignInRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	session, err := s.authService.SignIn(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(session)
}

// GoogleAuth handles federated login with a Google access token
func (s *Server) GoogleAuth(c *fiber.Ctx) error {
	var req GoogleAuthRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	session, err := s.authService.GoogleAuth(c.UserContext(), req.AccessToken)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(session)
}
