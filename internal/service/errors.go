package service

import (
	"errors"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrConflict          = errors.New("conflict")
	ErrInvalid           = errors.New("invalid")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrMismatchedNetwork = errors.New("mismatched network")
	ErrParentNotFound    = errors.New("parent folder not found")
	ErrDeleteBlocked     = errors.New("delete blocked")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// DeleteBlockedError is returned when the integrity rules refuse a folder delete.
type DeleteBlockedError struct {
	Reason DeleteBlockReason
}

func (e *DeleteBlockedError) Error() string {
	return e.Reason.Message()
}

func (e *DeleteBlockedError) Is(target error) bool {
	return target == ErrDeleteBlocked
}
