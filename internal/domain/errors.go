package domain

import "errors"

// Sentinel errors shared by repositories and services.
var (
	ErrNotFound               = errors.New("not found")
	ErrInvalidInput           = errors.New("invalid input")
	ErrEventNotFound          = errors.New("event not found")
	ErrSlugMismatch           = errors.New("booking slug does not match event")
	ErrDuplicateBooking       = errors.New("booking already exists for event and email")
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
)
