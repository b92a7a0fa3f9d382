package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/singleflight"

	"github.com/Ashwith-Garlapati/dev-event/internal/domain"
)

// Pool settings applied to every connection opened by a Connector.
const (
	maxOpenConns    = 25
	maxIdleConns    = 10
	connMaxLifetime = 5 * time.Minute
	connMaxIdleTime = time.Minute
	connectTimeout  = 5 * time.Second
)

// Conn hands out the process-wide database handle.
type Conn interface {
	DB(ctx context.Context) (*sql.DB, error)
}

// OpenFunc opens and verifies a database handle for dsn.
type OpenFunc func(ctx context.Context, dsn string) (*sql.DB, error)

// Connector lazily opens one *sql.DB on first use and shares it afterwards.
// Concurrent first callers wait on the same connection attempt. A failed attempt is
// discarded so the next call retries.
type Connector struct {
	dsn    string
	open   OpenFunc
	logger *slog.Logger

	group singleflight.Group
	mu    sync.RWMutex
	db    *sql.DB
}

// NewConnector returns a Connector for dsn. Nothing is dialed until DB is called.
func NewConnector(dsn string, logger *slog.Logger) *Connector {
	return NewConnectorWithOpener(dsn, logger, openPostgres)
}

// NewConnectorWithOpener is NewConnector with a custom open function.
func NewConnectorWithOpener(dsn string, logger *slog.Logger, open OpenFunc) *Connector {
	return &Connector{dsn: dsn, open: open, logger: logger}
}

// DB returns the shared handle, connecting first if needed. Connection failures wrap
// domain.ErrPersistenceUnavailable.
func (c *Connector) DB(ctx context.Context) (*sql.DB, error) {
	if db := c.current(); db != nil {
		return db, nil
	}

	v, err, shared := c.group.Do("connect", func() (any, error) {
		if db := c.current(); db != nil {
			return db, nil
		}
		// The attempt outlives any single caller; one canceled request must not fail the rest.
		connectCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), connectTimeout)
		defer cancel()

		db, err := c.open(connectCtx, c.dsn)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.db = db
		c.mu.Unlock()
		c.logger.Info("connected to database")
		return db, nil
	})
	if err != nil {
		c.logger.Error("database connection failed", "err", err, "shared", shared)
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistenceUnavailable, err)
	}
	return v.(*sql.DB), nil
}

// Ping connects if needed and checks the handle is alive.
func (c *Connector) Ping(ctx context.Context) error {
	db, err := c.DB(ctx)
	if err != nil {
		return err
	}
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPersistenceUnavailable, err)
	}
	return nil
}

// Reset drops the current handle; the next DB call reconnects.
func (c *Connector) Reset() error {
	c.mu.Lock()
	db := c.db
	c.db = nil
	c.mu.Unlock()
	if db == nil {
		return nil
	}
	return db.Close()
}

// Close releases the handle at shutdown.
func (c *Connector) Close() error {
	return c.Reset()
}

func (c *Connector) current() *sql.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}

func openPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)
	db.SetConnMaxIdleTime(connMaxIdleTime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

type staticConn struct {
	db *sql.DB
}

// Static wraps an already opened handle, as used by tests and tools.
func Static(db *sql.DB) Conn {
	return staticConn{db: db}
}

func (s staticConn) DB(context.Context) (*sql.DB, error) {
	return s.db, nil
}
