package cache

import (
	"context"
	"slices"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/Ashwith-Garlapati/dev-event/internal/domain"
)

// DefaultMemorySize bounds the in-process cache when Redis is not configured.
const DefaultMemorySize = 1024

type memoryEventCache struct {
	lru *expirable.LRU[string, domain.Event]
}

// NewMemoryEventCache keeps events in process. Entries expire after ttl.
func NewMemoryEventCache(size int, ttl time.Duration) domain.EventCache {
	if size <= 0 {
		size = DefaultMemorySize
	}
	return &memoryEventCache{lru: expirable.NewLRU[string, domain.Event](size, nil, ttl)}
}

func (c *memoryEventCache) Get(_ context.Context, slug string) (*domain.Event, bool, error) {
	e, ok := c.lru.Get(slug)
	if !ok {
		return nil, false, nil
	}
	return cloneEvent(e), true, nil
}

func (c *memoryEventCache) Set(_ context.Context, slug string, e *domain.Event) error {
	c.lru.Add(slug, *cloneEvent(*e))
	return nil
}

// cloneEvent detaches the slice fields so callers never share them with a cached entry.
func cloneEvent(e domain.Event) *domain.Event {
	e.Agenda = slices.Clone(e.Agenda)
	e.Tags = slices.Clone(e.Tags)
	return &e
}
