package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"inkwell/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret"

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func validClaims(userID uint, ttl time.Duration) jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": TokenIssuer,
		"aud": TokenAudience,
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
	}
}

func authTestApp() *fiber.App {
	cfg := &config.Config{JWTSecret: testSecret}
	app := fiber.New()
	app.Get("/protected", AuthRequired(cfg), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"userID": c.Locals("userID")})
	})
	return app
}

func request(t *testing.T, app *fiber.App, authorization string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAuthRequiredMissingHeader(t *testing.T) {
	app := authTestApp()
	resp := request(t, app, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthRequiredValidToken(t *testing.T) {
	app := authTestApp()
	token := signToken(t, validClaims(42, time.Hour), testSecret)
	resp := request(t, app, "Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthRequiredRejections(t *testing.T) {
	app := authTestApp()

	tests := []struct {
		name          string
		authorization string
	}{
		{"malformed header", "NotBearer token"},
		{"garbage token", "Bearer not-a-jwt"},
		{"expired token", "Bearer " + signToken(t, validClaims(42, -time.Hour), testSecret)},
		{"wrong secret", "Bearer " + signToken(t, validClaims(42, time.Hour), "other_secret")},
		{"wrong issuer", "Bearer " + signToken(t, func() jwt.MapClaims {
			c := validClaims(42, time.Hour)
			c["iss"] = "someone-else"
			return c
		}(), testSecret)},
		{"wrong audience", "Bearer " + signToken(t, func() jwt.MapClaims {
			c := validClaims(42, time.Hour)
			c["aud"] = "someone-else"
			return c
		}(), testSecret)},
		{"non-numeric subject", "Bearer " + signToken(t, func() jwt.MapClaims {
			c := validClaims(42, time.Hour)
			c["sub"] = "ada"
			return c
		}(), testSecret)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := request(t, app, tt.authorization)
			// A token that is present but unusable is forbidden, not unauthorized.
			assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		})
	}
}

func TestParseUserID(t *testing.T) {
	token := signToken(t, validClaims(7, time.Hour), testSecret)
	userID, err := parseUserID(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(7), userID)
}
