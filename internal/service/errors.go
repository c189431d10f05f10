package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
	ErrBlogNotFound    = fmt.Errorf("blog %w", ErrNotFound)
	ErrProjectNotFound = fmt.Errorf("project %w", ErrNotFound)
	ErrSkillNotFound   = fmt.Errorf("skill %w", ErrNotFound)

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingToken       = errors.New("no refresh token provided")
	ErrEmailTaken         = errors.New("user already exists")
)

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}
