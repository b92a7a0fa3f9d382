package domain

import (
	"context"
	"time"
)

// Event represents a bookable occasion shown on the site.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Overview    string    `json:"overview"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Location    string    `json:"location"`
	Mode        string    `json:"mode"`
	Agenda      []string  `json:"agenda"`
	Audience    string    `json:"audience"`
	Tags        []string  `json:"tags"`
	Organizer   string    `json:"organizer"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SimilarEventsLimit caps the related-events list on an event page.
const SimilarEventsLimit = 3

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	// ListByTagsExcluding returns events other than excludeID that share at least one tag,
	// in storage order, at most limit of them.
	ListByTagsExcluding(ctx context.Context, excludeID string, tags []string, limit int) ([]*Event, error)
	List(ctx context.Context, params PaginationParams) ([]*Event, error)
	Count(ctx context.Context) (int, error)
}

// EventService defines read operations over events.
type EventService interface {
	// GetEventBySlug returns ErrNotFound when no event has the slug.
	GetEventBySlug(ctx context.Context, slug string) (*Event, error)
	// GetSimilarEvents never fails: lookup errors are logged and yield an empty slice.
	GetSimilarEvents(ctx context.Context, slug string) []*Event
	ListEvents(ctx context.Context, params PaginationParams) ([]*Event, int, error)
}

// EventFetcher reads event details from the public read API.
// A missing event is reported as (nil, ErrNotFound).
type EventFetcher interface {
	FetchEventBySlug(ctx context.Context, slug string) (*Event, error)
}

// EventCache is a slug-keyed cache of event details with a fixed time-to-live.
// Get reports a miss as (nil, false, nil).
type EventCache interface {
	Get(ctx context.Context, slug string) (*Event, bool, error)
	Set(ctx context.Context, slug string, event *Event) error
}

// EventPage is everything the event detail page shows.
type EventPage struct {
	Event         *Event   `json:"event"`
	SimilarEvents []*Event `json:"similar_events"`
	BookingsCount int      `json:"bookings_count"`
}

// PageService assembles the event detail page.
type PageService interface {
	// EventPage returns ErrNotFound when the event is absent or could not be read.
	EventPage(ctx context.Context, slug string) (*EventPage, error)
}
