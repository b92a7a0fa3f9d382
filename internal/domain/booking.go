package domain

import (
	"context"
	"time"
)

// Booking is one email's reservation against one event.
// swagger:model Booking
type Booking struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Slug      string    `json:"slug"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBooking returns a Booking for the given fields. ID is set by the repository on create.
func NewBooking(eventID, slug, email string, createdAt time.Time) *Booking {
	return &Booking{
		EventID:   eventID,
		Slug:      slug,
		Email:     email,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

// BookingRepository defines storage operations for bookings.
type BookingRepository interface {
	// GetByEventAndEmail returns ErrNotFound when no booking matches.
	GetByEventAndEmail(ctx context.Context, eventID, email string) (*Booking, error)
	// Create checks that the event exists with booking.Slug and inserts the booking in one
	// transaction. It returns ErrEventNotFound, ErrSlugMismatch or ErrDuplicateBooking
	// without writing anything.
	Create(ctx context.Context, booking *Booking) error
	CountByEvent(ctx context.Context, eventID string) (int, error)
}

// BookingErrorCode is the machine-readable reason a booking request failed.
type BookingErrorCode string

const (
	BookingErrMissingFields          BookingErrorCode = "MISSING_FIELDS"
	BookingErrInvalidEmail           BookingErrorCode = "INVALID_EMAIL"
	BookingErrSlugMismatch           BookingErrorCode = "SLUG_MISMATCH"
	BookingErrEventNotFound          BookingErrorCode = "EVENT_NOT_FOUND"
	BookingErrDuplicate              BookingErrorCode = "DUPLICATE_BOOKING"
	BookingErrPersistenceUnavailable BookingErrorCode = "PERSISTENCE_UNAVAILABLE"
)

// BookingSummary is the booking shape returned to callers.
// swagger:model BookingSummary
type BookingSummary struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Slug      string    `json:"slug"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// BookingError carries a failure code and a message fit for inline display.
// swagger:model BookingError
type BookingError struct {
	Code    BookingErrorCode `json:"code"`
	Message string           `json:"message"`
}

// BookingResult is the outcome of a booking request. Exactly one of Booking and Error is set.
// Created distinguishes a fresh write from an idempotent replay and is not serialized.
// swagger:model BookingResult
type BookingResult struct {
	Success bool            `json:"success"`
	Booking *BookingSummary `json:"booking"`
	Error   *BookingError   `json:"error,omitempty"`
	Created bool            `json:"-"`
}

// BookingSucceeded builds a successful result from a stored booking.
func BookingSucceeded(b *Booking, created bool) BookingResult {
	return BookingResult{
		Success: true,
		Booking: &BookingSummary{
			ID:        b.ID,
			EventID:   b.EventID,
			Slug:      b.Slug,
			Email:     b.Email,
			CreatedAt: b.CreatedAt,
		},
		Created: created,
	}
}

// BookingFailed builds a failed result.
func BookingFailed(code BookingErrorCode, message string) BookingResult {
	return BookingResult{
		Success: false,
		Error:   &BookingError{Code: code, Message: message},
	}
}

// BookingService creates bookings. Failures are reported in the result, never as errors.
type BookingService interface {
	CreateBooking(ctx context.Context, eventID, slug, email string) BookingResult
}
