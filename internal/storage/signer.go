// Package storage issues pre-signed upload URLs for blog banner images.
package storage

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// Signer issues a pre-signed URL the client can PUT an image to directly.
type Signer interface {
	SignUploadURL(ctx context.Context) (string, error)
}

// S3Signer signs PUT URLs for an S3-compatible object store using the
// query-string authentication scheme (AWSAccessKeyId/Expires/Signature).
type S3Signer struct {
	endpoint  string // e.g. http://localhost:9000
	bucket    string
	accessKey string
	secretKey string
	expiry    time.Duration
	now       func() time.Time
}

// NewS3Signer constructs a signer for the given endpoint and bucket.
func NewS3Signer(endpoint, bucket, accessKey, secretKey string) *S3Signer {
	return &S3Signer{
		endpoint:  endpoint,
		bucket:    bucket,
		accessKey: accessKey,
		secretKey: secretKey,
		expiry:    10 * time.Minute,
		now:       time.Now,
	}
}

// SignUploadURL generates a unique object key and returns a pre-signed PUT
// URL valid for ten minutes.
func (s *S3Signer) SignUploadURL(_ context.Context) (string, error) {
	if s.accessKey == "" || s.secretKey == "" {
		return "", fmt.Errorf("upload signing credentials not configured")
	}

	now := s.now()
	key := fmt.Sprintf("%s-%s.jpeg", uuid.New().String(), now.Format("20060102"))
	expires := now.Add(s.expiry).Unix()

	// StringToSign for S3 query-string auth: VERB\n\n\nExpires\n/bucket/key
	stringToSign := fmt.Sprintf("PUT\n\n\n%d\n/%s/%s", expires, s.bucket, key)
	mac := hmac.New(sha1.New, []byte(s.secretKey))
	mac.Write([]byte(stringToSign))
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	q := url.Values{}
	q.Set("AWSAccessKeyId", s.accessKey)
	q.Set("Expires", fmt.Sprintf("%d", expires))
	q.Set("Signature", signature)

	return fmt.Sprintf("%s/%s/%s?%s", s.endpoint, s.bucket, key, q.Encode()), nil
}
