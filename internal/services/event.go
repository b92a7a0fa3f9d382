package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"github.com/Ashwith-Garlapati/dev-event/internal/domain"
)

// Recorder receives service-level counters.
type Recorder interface {
	RecordBooking(outcome string)
	RecordSimilarEventsFailure()
}

type noopRecorder struct{}

func (noopRecorder) RecordBooking(string)        {}
func (noopRecorder) RecordSimilarEventsFailure() {}

type eventService struct {
	eventRepo      domain.EventRepository
	recorder       Recorder
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository,
	recorder Recorder,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &eventService{
		eventRepo:      eventRepo,
		recorder:       recorder,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func normalizeSlug(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (s *eventService) GetEventBySlug(ctx context.Context, eventSlug string) (*domain.Event, error) {
	eventSlug = normalizeSlug(eventSlug)
	if !slug.IsSlug(eventSlug) {
		return nil, domain.ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, eventSlug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetSimilarEvents(ctx context.Context, eventSlug string) []*domain.Event {
	source, err := s.GetEventBySlug(ctx, eventSlug)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.recorder.RecordSimilarEventsFailure()
			s.logger.WarnContext(ctx, "similar events: source lookup failed", "slug", eventSlug, "err", err)
		}
		return []*domain.Event{}
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListByTagsExcluding(ctx, source.ID, source.Tags, domain.SimilarEventsLimit)
	if err != nil {
		s.recorder.RecordSimilarEventsFailure()
		s.logger.WarnContext(ctx, "similar events: tag lookup failed", "slug", source.Slug, "err", err)
		return []*domain.Event{}
	}
	if len(events) > domain.SimilarEventsLimit {
		events = events[:domain.SimilarEventsLimit]
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events
}

func (s *eventService) ListEvents(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	total, err := s.eventRepo.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}
	return events, total, nil
}
