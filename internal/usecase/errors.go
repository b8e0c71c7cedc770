package usecase

import "errors"

var (
	ErrInvalidInput  = errors.New("Invalid input")
	ErrUserNotFound  = errors.New("User not found")
	ErrJobNotFound   = errors.New("Job not found")
	ErrMissingRecord = errors.New("Missing record in webhook payload")
	ErrInternal      = errors.New("Internal server error")
)
