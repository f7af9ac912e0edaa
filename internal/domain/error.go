package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound          = errors.New("entity not found")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrNotRegistered     = errors.New("user is not registered")
	ErrAlreadyRegistered = errors.New("user is already registered")
	ErrAlreadyRated      = errors.New("user has already submitted a rating")
	ErrInvalidPhone      = errors.New("phone number has an unrecognized format")
	ErrNoRatings         = errors.New("no ratings recorded")
	ErrAccessDenied      = errors.New("caller is not the admin")
)
