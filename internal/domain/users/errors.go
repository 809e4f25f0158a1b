package users

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("user profile not found")
	ErrUsernameTaken = errors.New("username already taken")
	ErrStore         = errors.New("user store error")
)
