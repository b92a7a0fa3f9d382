package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/Ashwith-Garlapati/dev-event/internal/domain"
)

const eventColumns = `id, slug, title, description, image, overview, event_date, event_time,
	location, mode, agenda, audience, tags, organizer, created_at, updated_at`

type eventRepository struct {
	conn Conn
}

func NewEventRepository(conn Conn) domain.EventRepository {
	return &eventRepository{
		conn: conn,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	err := row.Scan(
		&e.ID, &e.Slug, &e.Title, &e.Description, &e.Image, &e.Overview, &e.Date, &e.Time,
		&e.Location, &e.Mode, pq.Array(&e.Agenda), &e.Audience, pq.Array(&e.Tags), &e.Organizer,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	db, err := r.conn.DB(ctx)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO events (slug, title, description, image, overview, event_date, event_time,
			location, mode, agenda, audience, tags, organizer, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`
	err = db.QueryRowContext(ctx, query,
		e.Slug, e.Title, e.Description, e.Image, e.Overview, e.Date, e.Time,
		e.Location, e.Mode, pq.Array(e.Agenda), e.Audience, pq.Array(e.Tags), e.Organizer,
		e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	if err != nil {
		switch pqCode(err) {
		case codeUniqueViolation:
			return fmt.Errorf("event slug %q already exists: %w", e.Slug, domain.ErrInvalidInput)
		case codeCheckViolation:
			return fmt.Errorf("event slug %q is malformed: %w", e.Slug, domain.ErrInvalidInput)
		}
		return unavailable("create event", err)
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	db, err := r.conn.DB(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(db.QueryRowContext(ctx, query, id))
	if err != nil {
		// A malformed UUID cannot name a stored event.
		if errors.Is(err, sql.ErrNoRows) || pqCode(err) == codeInvalidTextRepr {
			return nil, domain.ErrNotFound
		}
		return nil, unavailable("get event by id", err)
	}
	return e, nil
}

func (r *eventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	db, err := r.conn.DB(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + eventColumns + ` FROM events WHERE slug = $1`
	e, err := scanEvent(db.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, unavailable("get event by slug", err)
	}
	return e, nil
}

func (r *eventRepository) ListByTagsExcluding(ctx context.Context, excludeID string, tags []string, limit int) ([]*domain.Event, error) {
	if len(tags) == 0 || limit <= 0 {
		return []*domain.Event{}, nil
	}
	db, err := r.conn.DB(ctx)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE id <> $1 AND tags && $2
		ORDER BY created_at, id
		LIMIT $3
	`
	rows, err := db.QueryContext(ctx, query, excludeID, pq.Array(tags), limit)
	if err != nil {
		return nil, unavailable("list events by tags", err)
	}
	defer rows.Close()
	return collectEvents(rows)
}

func (r *eventRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, error) {
	db, err := r.conn.DB(ctx)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT ` + eventColumns + `
		FROM events
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2
	`
	rows, err := db.QueryContext(ctx, query, params.Limit(), params.Offset())
	if err != nil {
		return nil, unavailable("list events", err)
	}
	defer rows.Close()
	return collectEvents(rows)
}

func (r *eventRepository) Count(ctx context.Context) (int, error) {
	db, err := r.conn.DB(ctx)
	if err != nil {
		return 0, err
	}
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&n); err != nil {
		return 0, unavailable("count events", err)
	}
	return n, nil
}

func collectEvents(rows *sql.Rows) ([]*domain.Event, error) {
	events := []*domain.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, unavailable("scan event", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate events", err)
	}
	return events, nil
}
