package mediawiki

import (
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/rosetta-mirror/internal/core/domain"
)

// APIError represents an error reported by the wiki, either as a non-2xx
// HTTP status or as an {"error": {...}} envelope.
type APIError struct {
	StatusCode int
	Code       string
	Info       string
	URL        string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("mediawiki: API error %s: %s (URL: %s)", e.Code, e.Info, e.URL)
	}
	return fmt.Sprintf("mediawiki: API error %d: %s (URL: %s)", e.StatusCode, e.Info, e.URL)
}

// Unwrap classifies API errors as transport failures.
func (e *APIError) Unwrap() error {
	return domain.ErrTransport
}

// RateLimitError is returned when the wiki asks the client to back off.
type RateLimitError struct {
	StatusCode int
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("mediawiki: rate limited (status %d), retry after %s", e.StatusCode, e.RetryAfter)
}

// Unwrap classifies rate limiting as a transport failure.
func (e *RateLimitError) Unwrap() error {
	return domain.ErrTransport
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

// IsNotFound checks if the error indicates a missing page or endpoint.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404 || apiErr.Code == "missingtitle" || apiErr.Code == "nosuchpageid"
	}
	return errors.Is(err, domain.ErrNotFound)
}
