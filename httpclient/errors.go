package httpclient

import "errors"

var (
	ErrRequestFailed    = errors.New("httpclient: request failed")
	ErrReadResponse     = errors.New("httpclient: failed to read response")
	ErrCreateRequest    = errors.New("httpclient: failed to create request")
	ErrEncodeBody       = errors.New("httpclient: failed to encode request body")
	ErrAuthFailed       = errors.New("httpclient: authentication failed")
	ErrResponseTooLarge = errors.New("httpclient: response body too large")
	ErrRateLimiterWait  = errors.New("httpclient: rate limiter wait failed")
)
