package user

import "errors"

var (
	ErrNotFound      = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already exists")
	ErrMissingField  = errors.New("required field is missing")
	ErrInvalidRole   = errors.New("invalid role")
)
