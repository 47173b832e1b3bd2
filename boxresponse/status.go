package boxresponse

import "net/http"

// Status is the coarse outcome bucket the transport assigns to an exchange.
type Status int

const (
	StatusUnknown Status = iota
	StatusSuccess
	StatusRateLimitReached
	StatusUnauthorized
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusRateLimitReached:
		return "rate_limit_reached"
	case StatusUnauthorized:
		return "unauthorized"
	case StatusError:
		return "error"
	case StatusUnknown:
		return "unknown"
	default:
		return "unknown"
	}
}

// StatusFromCode buckets a raw HTTP status code.
func StatusFromCode(code int) Status {
	switch {
	case code >= http.StatusOK && code < http.StatusMultipleChoices:
		return StatusSuccess
	case code == http.StatusTooManyRequests:
		return StatusRateLimitReached
	case code == http.StatusUnauthorized:
		return StatusUnauthorized
	case code >= http.StatusMultipleChoices:
		return StatusError
	default:
		return StatusUnknown
	}
}
