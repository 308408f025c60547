package services

import (
	"errors"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrEmptyRanking       = errors.New("ranking feed returned no players")
)

// ValidationError carries a message that is safe to show to the client.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) error { return &ValidationError{Message: msg} }
