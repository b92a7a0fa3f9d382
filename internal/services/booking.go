package services

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Ashwith-Garlapati/dev-event/internal/domain"
	"github.com/Ashwith-Garlapati/dev-event/internal/metrics"
)

// emailPattern rejects any whitespace, including \v and Unicode spaces, in every part.
var emailPattern = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)

// Messages shown inline next to the booking form.
const (
	msgMissingFields          = "Missing required fields"
	msgInvalidEmail           = "Invalid email format"
	msgBookingSlugMismatch    = "Booking exists with different event slug"
	msgEventSlugMismatch      = "Slug does not match the event"
	msgEventNotFound          = "Event not found"
	msgDuplicateBooking       = "A booking for this event and email already exists"
	msgPersistenceUnavailable = "Bookings are temporarily unavailable, please try again"
)

type bookingService struct {
	bookingRepo    domain.BookingRepository
	eventRepo      domain.EventRepository
	emailService   domain.EmailService
	recorder       Recorder
	logger         *slog.Logger
	baseURL        string
	contextTimeout time.Duration
	now            func() time.Time
}

// NewBookingService returns a BookingService. emailService may be nil to skip confirmations.
func NewBookingService(
	bookingRepo domain.BookingRepository,
	eventRepo domain.EventRepository,
	emailService domain.EmailService,
	recorder Recorder,
	logger *slog.Logger,
	baseURL string,
	timeout time.Duration,
) domain.BookingService {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &bookingService{
		bookingRepo:    bookingRepo,
		eventRepo:      eventRepo,
		emailService:   emailService,
		recorder:       recorder,
		logger:         logger,
		baseURL:        baseURL,
		contextTimeout: timeout,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, eventID, eventSlug, email string) domain.BookingResult {
	result := s.createBooking(ctx, eventID, eventSlug, email)
	switch {
	case result.Success && result.Created:
		s.recorder.RecordBooking(metrics.OutcomeCreated)
	case result.Success:
		s.recorder.RecordBooking(metrics.OutcomeExisting)
	default:
		s.recorder.RecordBooking(string(result.Error.Code))
	}
	return result
}

func (s *bookingService) createBooking(ctx context.Context, eventID, eventSlug, email string) domain.BookingResult {
	eventID = strings.TrimSpace(eventID)
	eventSlug = normalizeSlug(eventSlug)
	email = strings.ToLower(strings.TrimSpace(email))

	if eventID == "" || eventSlug == "" || email == "" {
		return domain.BookingFailed(domain.BookingErrMissingFields, msgMissingFields)
	}
	if !emailPattern.MatchString(email) {
		return domain.BookingFailed(domain.BookingErrInvalidEmail, msgInvalidEmail)
	}
	// Event identifiers are UUIDs; anything else cannot reference a stored event.
	if _, err := uuid.Parse(eventID); err != nil {
		return domain.BookingFailed(domain.BookingErrEventNotFound, msgEventNotFound)
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	existing, err := s.bookingRepo.GetByEventAndEmail(ctx, eventID, email)
	switch {
	case err == nil:
		return s.replay(existing, eventSlug)
	case !errors.Is(err, domain.ErrNotFound):
		s.logger.ErrorContext(ctx, "booking lookup failed", "event_id", eventID, "err", err)
		return domain.BookingFailed(domain.BookingErrPersistenceUnavailable, msgPersistenceUnavailable)
	}

	booking := domain.NewBooking(eventID, eventSlug, email, s.now())
	err = s.bookingRepo.Create(ctx, booking)
	switch {
	case err == nil:
		s.logger.InfoContext(ctx, "booking created", "booking_id", booking.ID, "event_id", eventID)
		s.sendConfirmation(ctx, booking)
		return domain.BookingSucceeded(booking, true)
	case errors.Is(err, domain.ErrDuplicateBooking):
		// Lost a race with a concurrent request for the same event and email.
		winner, lookupErr := s.bookingRepo.GetByEventAndEmail(ctx, eventID, email)
		if lookupErr != nil {
			s.logger.WarnContext(ctx, "duplicate booking could not be re-read", "event_id", eventID, "err", lookupErr)
			return domain.BookingFailed(domain.BookingErrDuplicate, msgDuplicateBooking)
		}
		return s.replay(winner, eventSlug)
	case errors.Is(err, domain.ErrEventNotFound):
		return domain.BookingFailed(domain.BookingErrEventNotFound, msgEventNotFound)
	case errors.Is(err, domain.ErrSlugMismatch):
		return domain.BookingFailed(domain.BookingErrSlugMismatch, msgEventSlugMismatch)
	default:
		s.logger.ErrorContext(ctx, "booking create failed", "event_id", eventID, "err", err)
		return domain.BookingFailed(domain.BookingErrPersistenceUnavailable, msgPersistenceUnavailable)
	}
}

func (s *bookingService) replay(existing *domain.Booking, eventSlug string) domain.BookingResult {
	if existing.Slug != eventSlug {
		return domain.BookingFailed(domain.BookingErrSlugMismatch, msgBookingSlugMismatch)
	}
	return domain.BookingSucceeded(existing, false)
}

// sendConfirmation is best effort; the booking is already committed.
func (s *bookingService) sendConfirmation(ctx context.Context, b *domain.Booking) {
	if s.emailService == nil {
		return
	}
	event, err := s.eventRepo.GetByID(ctx, b.EventID)
	if err != nil {
		s.logger.WarnContext(ctx, "booking confirmation skipped", "booking_id", b.ID, "err", err)
		return
	}
	data := &domain.BookingConfirmationEmailData{
		Email:      b.Email,
		EventTitle: event.Title,
		EventDate:  event.Date,
		EventTime:  event.Time,
		Location:   event.Location,
		EventURL:   s.baseURL + "/events/" + event.Slug,
		BookingID:  b.ID,
	}
	if err := s.emailService.SendBookingConfirmation(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "booking confirmation failed", "booking_id", b.ID, "err", err)
	}
}
