// Package identity verifies federated identity tokens against the provider.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Profile is the subset of the provider's userinfo response the application uses.
type Profile struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Verifier resolves an opaque provider access token into a verified profile.
type Verifier interface {
	Verify(ctx context.Context, accessToken string) (*Profile, error)
}

// GoogleVerifier verifies Google OAuth access tokens by calling the
// userinfo endpoint with the token as a bearer credential.
type GoogleVerifier struct {
	userinfoURL string
}

// NewGoogleVerifier creates a verifier against the given userinfo endpoint.
func NewGoogleVerifier(userinfoURL string) *GoogleVerifier {
	return &GoogleVerifier{userinfoURL: userinfoURL}
}

// Verify calls the userinfo endpoint and decodes the profile. A non-200
// response means the token is invalid, expired or revoked.
func (v *GoogleVerifier) Verify(ctx context.Context, accessToken string) (*Profile, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("access token is required")
	}

	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	httpClient := oauth2.NewClient(ctx, src)
	httpClient.Timeout = 10 * time.Second

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.userinfoURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token verification failed: userinfo returned %d", resp.StatusCode)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo response: %w", err)
	}
	if profile.Email == "" {
		return nil, fmt.Errorf("userinfo response missing email")
	}

	return &profile, nil
}

// HighResPicture rewrites Google's default 96px avatar URL segment to the
// 384px variant. URLs without the known segment pass through unchanged.
func HighResPicture(pictureURL string) string {
	return strings.Replace(pictureURL, "s96-c", "s384-c", 1)
}
