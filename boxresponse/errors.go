package boxresponse

import (
	"errors"
	"fmt"
	"time"
)

// DefaultRetryAfter is used when a throttled response has no usable Retry-After header.
const DefaultRetryAfter = 20

var (
	ErrAuthExpired = errors.New("box: access token expired")
	ErrRateLimited = errors.New("box: rate limit reached")
	ErrAPI         = errors.New("box: api error")
)

// FailureKind tags which member of the failure taxonomy an error belongs to.
type FailureKind int

const (
	KindNone FailureKind = iota
	KindAuthExpired
	KindRateLimited
	KindAPI
)

func (k FailureKind) String() string {
	switch k {
	case KindAuthExpired:
		return "auth_expired"
	case KindRateLimited:
		return "rate_limited"
	case KindAPI:
		return "api"
	case KindNone:
		return "none"
	default:
		return "none"
	}
}

// KindOf classifies err. Errors outside the taxonomy, including nil, are KindNone.
func KindOf(err error) FailureKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrAuthExpired):
		return KindAuthExpired
	case errors.Is(err, ErrRateLimited):
		return KindRateLimited
	case errors.Is(err, ErrAPI):
		return KindAPI
	default:
		return KindNone
	}
}

// AuthExpiredError reports a rejected or expired credential.
type AuthExpiredError struct {
	Message string
	Payload *ErrorPayload
}

func (e *AuthExpiredError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return ErrAuthExpired.Error()
}

func (e *AuthExpiredError) Is(target error) bool {
	return errors.Is(target, ErrAuthExpired)
}

func (e *AuthExpiredError) Unwrap() error {
	return ErrAuthExpired
}

// RateLimitError reports server-side throttling. RetryAfter is in seconds.
type RateLimitError struct {
	Message    string
	RetryAfter int
	Payload    *ErrorPayload
}

func (e *RateLimitError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return fmt.Sprintf("%s: retry after %ds", ErrRateLimited.Error(), e.RetryAfter)
}

func (e *RateLimitError) Is(target error) bool {
	return errors.Is(target, ErrRateLimited)
}

func (e *RateLimitError) Unwrap() error {
	return ErrRateLimited
}

func (e *RateLimitError) RetryAfterDuration() time.Duration {
	return time.Duration(e.RetryAfter) * time.Second
}

// APIError is any other non-success outcome.
type APIError struct {
	StatusCode int
	Message    string
	Payload    *ErrorPayload
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return fmt.Sprintf("box: request failed with status %d", e.StatusCode)
}

func (e *APIError) Is(target error) bool {
	return errors.Is(target, ErrAPI)
}

func (e *APIError) Unwrap() error {
	return ErrAPI
}

func AsAuthExpiredError(err error) (*AuthExpiredError, bool) {
	var authErr *AuthExpiredError
	if errors.As(err, &authErr) {
		return authErr, true
	}

	return nil, false
}

func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rateErr *RateLimitError
	if errors.As(err, &rateErr) {
		return rateErr, true
	}

	return nil, false
}

func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}

	return nil, false
}
