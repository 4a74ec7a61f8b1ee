package publisher

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonesrussell/north-cloud/postbot/internal/x"
)

// Error types for publishing.
var (
	// ErrConfiguration is returned when posting credentials are missing
	ErrConfiguration = errors.New("posting credentials are not configured")

	// ErrAuthentication is returned when the platform rejects the credentials (401)
	ErrAuthentication = errors.New("authentication failed")

	// ErrPermission is returned when the app lacks write permission (403)
	ErrPermission = errors.New("write permission denied")

	// ErrRateLimit is returned when the platform throttles the account (429)
	ErrRateLimit = errors.New("rate limit exceeded")

	// ErrUnknownPost is returned for any other posting failure
	ErrUnknownPost = errors.New("post failed")
)

// Classify maps an error from the platform client onto the publishing
// error types. The original error stays in the chain.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *x.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %w", ErrAuthentication, err)
		case http.StatusForbidden:
			return fmt.Errorf("%w: %w", ErrPermission, err)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %w", ErrRateLimit, err)
		}
	}

	return fmt.Errorf("%w: %w", ErrUnknownPost, err)
}

// StatusCode returns the platform status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *x.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
