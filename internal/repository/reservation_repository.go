package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/johotel/hotel-api/internal/domain"
)

type ReservationRepository interface {
	// CreateConfirmed inserts a confirmed reservation, returning
	// domain.ErrOverlap when the room is already held for an intersecting
	// window. The check and insert run in one transaction.
	CreateConfirmed(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	HasOverlap(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (bool, error)
	Cancel(ctx context.Context, id int64) (bool, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.ReservationView, error)
	ListAll(ctx context.Context, limit, offset int) ([]domain.ReservationView, error)
}

type reservationRepository struct {
	pool *pgxpool.Pool
}

func NewReservationRepository(pool *pgxpool.Pool) ReservationRepository {
	return &reservationRepository{pool: pool}
}

const reservationCols = `id, user_id, room_id, check_in, check_out, guests, total_cents, status, created_at, updated_at`

// exclusionViolation is raised by the gist exclusion constraint on
// (room_id, tstzrange(check_in, check_out)) when two confirmed stays touch.
const exclusionViolation = "23P01"

func (r *reservationRepository) CreateConfirmed(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lock the room row so concurrent creates for the same room serialize;
	// the overlap check below then sees any committed competitor.
	var roomID int64
	err = tx.QueryRow(ctx, `SELECT id FROM rooms WHERE id = $1 FOR UPDATE`, res.RoomID).Scan(&roomID)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var overlaps bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE room_id = $1
			  AND status = 'confirmed'
			  AND check_in < $3
			  AND check_out > $2
		)`, res.RoomID, res.CheckIn, res.CheckOut).Scan(&overlaps)
	if err != nil {
		return nil, err
	}
	if overlaps {
		return nil, domain.ErrOverlap
	}

	const q = `
		INSERT INTO reservations (user_id, room_id, check_in, check_out, guests, total_cents, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'confirmed')
		RETURNING ` + reservationCols

	var out domain.Reservation
	err = tx.QueryRow(ctx, q,
		res.UserID, res.RoomID, res.CheckIn, res.CheckOut, res.Guests, res.TotalCents,
	).Scan(
		&out.ID, &out.UserID, &out.RoomID, &out.CheckIn, &out.CheckOut,
		&out.Guests, &out.TotalCents, &out.Status, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == exclusionViolation {
			return nil, domain.ErrOverlap
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == exclusionViolation {
			return nil, domain.ErrOverlap
		}
		return nil, err
	}
	return &out, nil
}

func (r *reservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM reservations WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var res domain.Reservation
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&res.ID, &res.UserID, &res.RoomID, &res.CheckIn, &res.CheckOut,
		&res.Guests, &res.TotalCents, &res.Status, &res.CreatedAt, &res.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *reservationRepository) HasOverlap(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE room_id = $1
			  AND status = 'confirmed'
			  AND check_in < $3
			  AND check_out > $2
		)`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var overlaps bool
	err := r.pool.QueryRow(ctx, q, roomID, checkIn.UTC(), checkOut.UTC()).Scan(&overlaps)
	return overlaps, err
}

func (r *reservationRepository) Cancel(ctx context.Context, id int64) (bool, error) {
	const q = `UPDATE reservations SET status = 'cancelled', updated_at = now() WHERE id = $1 AND status = 'confirmed'`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

const viewCols = `b.id, b.room_id, r.room_number, r.type, b.user_id, u.email, u.username,
b.check_in, b.check_out, b.guests, b.total_cents, b.status, b.created_at`

func (r *reservationRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.ReservationView, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	const q = `
		SELECT ` + viewCols + `
		FROM reservations b
		JOIN rooms r ON r.id = b.room_id
		JOIN users u ON u.id = b.user_id
		WHERE b.user_id = $1
		ORDER BY b.check_in DESC
		LIMIT $2 OFFSET $3`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanViews(rows)
}

func (r *reservationRepository) ListAll(ctx context.Context, limit, offset int) ([]domain.ReservationView, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	const q = `
		SELECT ` + viewCols + `
		FROM reservations b
		JOIN rooms r ON r.id = b.room_id
		JOIN users u ON u.id = b.user_id
		ORDER BY b.created_at DESC
		LIMIT $1 OFFSET $2`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanViews(rows)
}

func scanViews(rows pgx.Rows) ([]domain.ReservationView, error) {
	var views []domain.ReservationView
	for rows.Next() {
		var v domain.ReservationView
		if err := rows.Scan(
			&v.ID, &v.RoomID, &v.RoomNumber, &v.RoomType, &v.UserID, &v.UserEmail, &v.Username,
			&v.CheckIn, &v.CheckOut, &v.Guests, &v.TotalCents, &v.Status, &v.CreatedAt,
		); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}
