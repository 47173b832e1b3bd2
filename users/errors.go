package users

import "errors"

var (
	ErrInvalidRequest = errors.New("users: invalid request")
	ErrInvalidUserID  = errors.New("users: user id must be a numeric Box ID")
	ErrEmptyResponse  = errors.New("users: empty response body")
)
