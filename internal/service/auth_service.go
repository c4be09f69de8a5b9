// Package service implements the application's core business logic.
package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"inkwell/internal/identity"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// SessionPayload is returned by every successful auth operation.
type SessionPayload struct {
	AccessToken string `json:"access_token"`
	ProfileImg  string `json:"profile_img"`
	Username    string `json:"username"`
	Fullname    string `json:"fullname"`
}

// AuthService reconciles user identities across the local and federated
// sign-in flows: one account per email, one auth method per account.
type AuthService struct {
	userRepo  repository.UserRepository
	verifier  identity.Verifier
	jwtSecret string
	tokenTTL  time.Duration
}

// NewAuthService returns a new AuthService.
func NewAuthService(userRepo repository.UserRepository, verifier identity.Verifier, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		verifier:  verifier,
		jwtSecret: jwtSecret,
		tokenTTL:  7 * 24 * time.Hour,
	}
}

// GenerateUsername derives a username from the email's local part. When the
// candidate is taken, a random suffix is appended instead of looping; a
// concurrent collision on the suffixed name surfaces as a creation conflict
// through the unique index.
func (s *AuthService) GenerateUsername(ctx context.Context, email string) (string, error) {
	username := strings.Split(email, "@")[0]

	taken, err := s.userRepo.UsernameExists(ctx, username)
	if err != nil {
		return "", err
	}
	if taken {
		username += randomSuffix()
	}
	return username, nil
}

// SignUp registers a local account and returns a session payload.
func (s *AuthService) SignUp(ctx context.Context, fullname, email, password string) (*SessionPayload, error) {
	// First failing field wins; order is fixed.
	if err := validation.ValidateFullname(fullname); err != nil {
		return nil, models.NewValidationError("fullname", err.Error())
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError("email", err.Error())
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, models.NewValidationError("password", err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	username, err := s.GenerateUsername(ctx, email)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Fullname:   fullname,
		Email:      email,
		Username:   username,
		Password:   string(hashed),
		GoogleAuth: false,
	}

	// Duplicate email is caught by the unique index at write time; a
	// pre-check would leave a race window between check and insert.
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.sessionFor(user)
}

// SignIn authenticates a local account.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*SessionPayload, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", email)
	}

	if user.GoogleAuth {
		return nil, models.NewConflictError("Account was created using Google. Try logging in with Google.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewAuthError("Incorrect password")
	}

	return s.sessionFor(user)
}

// GoogleAuth authenticates or registers a federated account from a verified
// provider access token.
func (s *AuthService) GoogleAuth(ctx context.Context, accessToken string) (*SessionPayload, error) {
	profile, err := s.verifier.Verify(ctx, accessToken)
	if err != nil {
		return nil, models.NewAuthError("Failed to authenticate with Google")
	}

	picture := identity.HighResPicture(profile.Picture)

	user, err := s.userRepo.GetByEmail(ctx, profile.Email)
	if err != nil {
		return nil, err
	}

	if user != nil {
		if !user.GoogleAuth {
			return nil, models.NewConflictError("This email was signed up without Google. Please log in with a password.")
		}
		return s.sessionFor(user)
	}

	username, err := s.GenerateUsername(ctx, profile.Email)
	if err != nil {
		return nil, err
	}

	user = &models.User{
		Fullname:   profile.Name,
		Email:      profile.Email,
		Username:   username,
		ProfileImg: picture,
		GoogleAuth: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.sessionFor(user)
}

// sessionFor issues a signed token and builds the session payload.
func (s *AuthService) sessionFor(user *models.User) (*SessionPayload, error) {
	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &SessionPayload{
		AccessToken: token,
		ProfileImg:  user.ProfileImg,
		Username:    user.Username,
		Fullname:    user.Fullname,
	}, nil
}

// generateToken creates a JWT for the given user ID and username.
func (s *AuthService) generateToken(userID uint, username string) (string, error) {
	if s.jwtSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10),
		"username": username,
		"iss":      middleware.TokenIssuer,
		"aud":      middleware.TokenAudience,
		"exp":      now.Add(s.tokenTTL).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      fmt.Sprintf("%d-%s", now.Unix(), uuid.New().String()[:8]),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
