package controllers

import (
	"log/slog"
	"net/http"

	"github.com/Ashwith-Garlapati/dev-event/internal/delivery/http/helpers"
	"github.com/Ashwith-Garlapati/dev-event/internal/domain"
)

type BookingController struct {
	Logger  *slog.Logger
	Service domain.BookingService
}

func NewBookingController(logger *slog.Logger, svc domain.BookingService) *BookingController {
	return &BookingController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateBookingRequest is the request body for POST /api/bookings.
// Presence and format are checked by the booking service so failures come back as a BookingResult.
type CreateBookingRequest struct {
	EventID string `json:"event_id"`
	Slug    string `json:"slug"`
	Email   string `json:"email"`
}

// bookingStatus maps a result to its HTTP status.
func bookingStatus(res domain.BookingResult) int {
	if res.Success {
		if res.Created {
			return http.StatusCreated
		}
		return http.StatusOK
	}
	switch res.Error.Code {
	case domain.BookingErrMissingFields, domain.BookingErrInvalidEmail:
		return http.StatusBadRequest
	case domain.BookingErrEventNotFound:
		return http.StatusNotFound
	case domain.BookingErrSlugMismatch, domain.BookingErrDuplicate:
		return http.StatusConflict
	case domain.BookingErrPersistenceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// CreateBooking godoc
// @Summary Book a spot at an event
// @Description Reserves a spot for an email at an event. Idempotent per event and email: returns 201 when a booking is created and 200 with the existing booking on retry. Failures carry a code for inline display.
// @Tags bookings
// @Accept json
// @Produce json
// @Param booking body CreateBookingRequest true "Event id, event slug and email"
// @Success 200 {object} domain.BookingResult "Existing booking"
// @Success 201 {object} domain.BookingResult "Booking created"
// @Failure 400 {object} domain.BookingResult "error.code: MISSING_FIELDS or INVALID_EMAIL"
// @Failure 404 {object} domain.BookingResult "error.code: EVENT_NOT_FOUND"
// @Failure 409 {object} domain.BookingResult "error.code: SLUG_MISMATCH or DUPLICATE_BOOKING"
// @Failure 503 {object} domain.BookingResult "error.code: PERSISTENCE_UNAVAILABLE"
// @Router /api/bookings [post]
func (c *BookingController) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := helpers.DecodeJSON(w, r, &req); err != nil {
		c.Logger.DebugContext(r.Context(), "invalid booking body", "err", err)
		res := domain.BookingFailed(domain.BookingErrMissingFields, "Missing required fields")
		helpers.WriteJSON(w, http.StatusBadRequest, res)
		return
	}

	res := c.Service.CreateBooking(r.Context(), req.EventID, req.Slug, req.Email)
	status := bookingStatus(res)
	if status >= http.StatusInternalServerError {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "code", res.Error.Code)
	}
	helpers.WriteJSON(w, status, res)
}
