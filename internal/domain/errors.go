package domain

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already exists")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidInput   = errors.New("invalid input")
	ErrPersonalEmail  = errors.New("personal email accounts are not allowed")
	ErrRateLimited    = errors.New("too many requests")
)
