package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Ashwith-Garlapati/dev-event/internal/domain"
)

type bookingRepository struct {
	conn Conn
}

func NewBookingRepository(conn Conn) domain.BookingRepository {
	return &bookingRepository{
		conn: conn,
	}
}

func (r *bookingRepository) GetByEventAndEmail(ctx context.Context, eventID, email string) (*domain.Booking, error) {
	db, err := r.conn.DB(ctx)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT id, event_id, slug, email, created_at, updated_at
		FROM bookings
		WHERE event_id = $1 AND email = $2
	`
	b := &domain.Booking{}
	err = db.QueryRowContext(ctx, query, eventID, email).
		Scan(&b.ID, &b.EventID, &b.Slug, &b.Email, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || pqCode(err) == codeInvalidTextRepr {
			return nil, domain.ErrNotFound
		}
		return nil, unavailable("get booking", err)
	}
	return b, nil
}

// Create locks the event row against deletion, checks its slug, and inserts the booking.
func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	db, err := r.conn.DB(ctx)
	if err != nil {
		return err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("begin booking", err)
	}
	defer func() { _ = tx.Rollback() }()

	var eventSlug string
	err = tx.QueryRowContext(ctx, `SELECT slug FROM events WHERE id = $1 FOR SHARE`, b.EventID).Scan(&eventSlug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || pqCode(err) == codeInvalidTextRepr {
			return domain.ErrEventNotFound
		}
		return unavailable("lock event", err)
	}
	if eventSlug != b.Slug {
		return domain.ErrSlugMismatch
	}

	query := `
		INSERT INTO bookings (event_id, slug, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, query, b.EventID, b.Slug, b.Email, b.CreatedAt, b.UpdatedAt).Scan(&b.ID)
	if err != nil {
		switch pqCode(err) {
		case codeUniqueViolation:
			return domain.ErrDuplicateBooking
		case codeForeignKeyViolation, codeInvalidTextRepr:
			return domain.ErrEventNotFound
		}
		return unavailable("insert booking", err)
	}

	if err := tx.Commit(); err != nil {
		if pqCode(err) == codeUniqueViolation {
			return domain.ErrDuplicateBooking
		}
		return unavailable("commit booking", err)
	}
	return nil
}

func (r *bookingRepository) CountByEvent(ctx context.Context, eventID string) (int, error) {
	db, err := r.conn.DB(ctx)
	if err != nil {
		return 0, err
	}
	var n int
	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE event_id = $1`, eventID).Scan(&n)
	if err != nil {
		if pqCode(err) == codeInvalidTextRepr {
			return 0, nil
		}
		return 0, unavailable("count bookings", err)
	}
	return n, nil
}
