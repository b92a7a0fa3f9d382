package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/Ashwith-Garlapati/dev-event/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

const testTimeout = 2 * time.Second

// store is an in-memory persistence layer that enforces the same constraints as the schema.
type store struct {
	mu       sync.Mutex
	events   []*domain.Event
	bookings map[string]*domain.Booking
	nextID   int

	getBookingErr error
	createErr     error
	listErr       error
	countErr      error
	creates       int
}

func newStore(events ...*domain.Event) *store {
	return &store{events: events, bookings: map[string]*domain.Booking{}}
}

func bookingKey(eventID, email string) string { return eventID + "|" + email }

type fakeEventRepo struct{ *store }

func (r fakeEventRepo) Create(_ context.Context, e *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r fakeEventRepo) GetByID(_ context.Context, id string) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r fakeEventRepo) GetBySlug(_ context.Context, slug string) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e.Slug == slug {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r fakeEventRepo) ListByTagsExcluding(_ context.Context, excludeID string, tags []string, limit int) ([]*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := []*domain.Event{}
	for _, e := range r.events {
		if e.ID == excludeID || !sharesTag(e.Tags, tags) {
			continue
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func sharesTag(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func (r fakeEventRepo) List(_ context.Context, params domain.PaginationParams) ([]*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	start := min(params.Offset(), len(r.events))
	end := min(start+params.Limit(), len(r.events))
	return r.events[start:end], nil
}

func (r fakeEventRepo) Count(context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events), nil
}

type fakeBookingRepo struct{ *store }

func (r fakeBookingRepo) GetByEventAndEmail(_ context.Context, eventID, email string) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getBookingErr != nil {
		return nil, r.getBookingErr
	}
	b, ok := r.bookings[bookingKey(eventID, email)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r fakeBookingRepo) Create(_ context.Context, b *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	var event *domain.Event
	for _, e := range r.events {
		if e.ID == b.EventID {
			event = e
		}
	}
	if event == nil {
		return domain.ErrEventNotFound
	}
	if event.Slug != b.Slug {
		return domain.ErrSlugMismatch
	}
	key := bookingKey(b.EventID, b.Email)
	if _, ok := r.bookings[key]; ok {
		return domain.ErrDuplicateBooking
	}
	r.nextID++
	b.ID = fmt.Sprintf("bk-%d", r.nextID)
	cp := *b
	r.bookings[key] = &cp
	r.creates++
	return nil
}

func (r fakeBookingRepo) CountByEvent(_ context.Context, eventID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.countErr != nil {
		return 0, r.countErr
	}
	n := 0
	for _, b := range r.bookings {
		if b.EventID == eventID {
			n++
		}
	}
	return n, nil
}

type recordingRecorder struct {
	mu              sync.Mutex
	bookings        map[string]int
	similarFailures int
}

func newRecordingRecorder() *recordingRecorder {
	return &recordingRecorder{bookings: map[string]int{}}
}

func (r *recordingRecorder) RecordBooking(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[outcome]++
}

func (r *recordingRecorder) RecordSimilarEventsFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.similarFailures++
}

type fakeEmailService struct {
	mu   sync.Mutex
	sent []*domain.BookingConfirmationEmailData
	err  error
}

func (f *fakeEmailService) SendBookingConfirmation(_ context.Context, data *domain.BookingConfirmationEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, data)
	return f.err
}
