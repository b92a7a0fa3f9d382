package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Ashwith-Garlapati/dev-event/internal/domain"
)

type pageService struct {
	fetcher        domain.EventFetcher
	cache          domain.EventCache
	events         domain.EventService
	bookingRepo    domain.BookingRepository
	logger         *slog.Logger
	contextTimeout time.Duration
	fetches        singleflight.Group
}

// NewPageService assembles event pages. Event details are read through cache; similar events
// and the booking count are always read fresh.
func NewPageService(
	fetcher domain.EventFetcher,
	cache domain.EventCache,
	events domain.EventService,
	bookingRepo domain.BookingRepository,
	logger *slog.Logger,
	timeout time.Duration,
) domain.PageService {
	return &pageService{
		fetcher:        fetcher,
		cache:          cache,
		events:         events,
		bookingRepo:    bookingRepo,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *pageService) EventPage(ctx context.Context, eventSlug string) (*domain.EventPage, error) {
	eventSlug = normalizeSlug(eventSlug)
	if eventSlug == "" {
		return nil, domain.ErrNotFound
	}

	event, err := s.cachedEvent(ctx, eventSlug)
	if err != nil {
		return nil, err
	}
	if event.Description == "" {
		return nil, domain.ErrNotFound
	}

	page := &domain.EventPage{
		Event:         event,
		SimilarEvents: s.events.GetSimilarEvents(ctx, eventSlug),
	}

	countCtx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	count, err := s.bookingRepo.CountByEvent(countCtx, event.ID)
	if err != nil {
		s.logger.WarnContext(ctx, "booking count unavailable", "slug", eventSlug, "err", err)
	} else {
		page.BookingsCount = count
	}
	return page, nil
}

// cachedEvent reads through the cache. Only successful fetches are stored; absence and
// fetch failures both surface as ErrNotFound for this request and are retried next time.
func (s *pageService) cachedEvent(ctx context.Context, eventSlug string) (*domain.Event, error) {
	event, hit, err := s.cache.Get(ctx, eventSlug)
	if err != nil {
		s.logger.WarnContext(ctx, "event cache read failed", "slug", eventSlug, "err", err)
	}
	if hit {
		return event, nil
	}

	v, err, _ := s.fetches.Do(eventSlug, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.contextTimeout)
		defer cancel()

		fetched, err := s.fetcher.FetchEventBySlug(fetchCtx, eventSlug)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(fetchCtx, eventSlug, fetched); err != nil {
			s.logger.WarnContext(ctx, "event cache write failed", "slug", eventSlug, "err", err)
		}
		return fetched, nil
	})
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.ErrorContext(ctx, "event fetch failed", "slug", eventSlug, "err", err)
		}
		return nil, domain.ErrNotFound
	}
	return v.(*domain.Event), nil
}
