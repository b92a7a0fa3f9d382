package postgres

import (
	"context"
	"fmt"
	"log/slog"
)

// RunMigrations creates the schema if it is missing. Every statement is idempotent.
func RunMigrations(ctx context.Context, conn Conn, logger *slog.Logger) error {
	db, err := conn.DB(ctx)
	if err != nil {
		return err
	}
	logger.Info("running database migrations")

	migrations := []string{
		createPgcryptoExtension,
		createEventsTable,
		createEventsTagsIndex,
		createBookingsTable,
		createBookingsEventIndex,
	}

	for i, migration := range migrations {
		logger.Debug("running migration", "step", i+1)
		if _, err := db.ExecContext(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	logger.Info("database migrations completed", "steps", len(migrations))
	return nil
}

const createPgcryptoExtension = `CREATE EXTENSION IF NOT EXISTS "pgcrypto";`

const createEventsTable = `
CREATE TABLE IF NOT EXISTS events (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    slug VARCHAR(255) NOT NULL UNIQUE,
    title VARCHAR(500) NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    image TEXT NOT NULL DEFAULT '',
    overview TEXT NOT NULL DEFAULT '',
    event_date VARCHAR(50) NOT NULL DEFAULT '',
    event_time VARCHAR(50) NOT NULL DEFAULT '',
    location VARCHAR(255) NOT NULL DEFAULT '',
    mode VARCHAR(50) NOT NULL DEFAULT '',
    agenda TEXT[] NOT NULL DEFAULT '{}',
    audience TEXT NOT NULL DEFAULT '',
    tags TEXT[] NOT NULL DEFAULT '{}',
    organizer TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),

    CONSTRAINT events_slug_format CHECK (slug ~ '^[a-z0-9]+(-[a-z0-9]+)*$')
);`

const createEventsTagsIndex = `CREATE INDEX IF NOT EXISTS idx_events_tags ON events USING GIN (tags);`

const createBookingsTable = `
CREATE TABLE IF NOT EXISTS bookings (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    event_id UUID NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    slug VARCHAR(255) NOT NULL,
    email VARCHAR(320) NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),

    CONSTRAINT bookings_event_email_key UNIQUE (event_id, email),
    CONSTRAINT bookings_slug_format CHECK (slug ~ '^[a-z0-9]+(-[a-z0-9]+)*$'),
    CONSTRAINT bookings_email_normalized CHECK (email = lower(btrim(email)))
);`

const createBookingsEventIndex = `CREATE INDEX IF NOT EXISTS idx_bookings_event_id ON bookings(event_id);`
