package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/johotel/hotel-api/internal/domain"
)

type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	ListWithAvailability(ctx context.Context, windowStart, windowEnd time.Time) ([]domain.RoomAvailability, error)
	GetWithAvailability(ctx context.Context, id int64, windowStart, windowEnd time.Time) (*domain.RoomAvailability, error)
}

type roomRepository struct {
	pool *pgxpool.Pool
}

func NewRoomRepository(pool *pgxpool.Pool) RoomRepository {
	return &roomRepository{pool: pool}
}

func (r *roomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	const q = `SELECT id, room_number, type, created_at, updated_at FROM rooms WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var room domain.Room
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&room.ID, &room.RoomNumber, &room.Type, &room.CreatedAt, &room.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// Availability uses the half-open interval predicate: a confirmed stay
// [a1,a2) blocks a window [b1,b2) iff a1 < b2 AND a2 > b1.
const availabilityExpr = `NOT EXISTS (
	SELECT 1 FROM reservations b
	WHERE b.room_id = r.id
	  AND b.status = 'confirmed'
	  AND b.check_in < $2
	  AND b.check_out > $1
)`

func (r *roomRepository) ListWithAvailability(ctx context.Context, windowStart, windowEnd time.Time) ([]domain.RoomAvailability, error) {
	const q = `
		SELECT r.id, r.room_number, r.type, ` + availabilityExpr + `
		FROM rooms r
		ORDER BY r.room_number`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, windowStart.UTC(), windowEnd.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []domain.RoomAvailability
	for rows.Next() {
		var ra domain.RoomAvailability
		if err := rows.Scan(&ra.ID, &ra.RoomNumber, &ra.Type, &ra.Available); err != nil {
			return nil, err
		}
		rooms = append(rooms, ra)
	}
	return rooms, rows.Err()
}

func (r *roomRepository) GetWithAvailability(ctx context.Context, id int64, windowStart, windowEnd time.Time) (*domain.RoomAvailability, error) {
	const q = `
		SELECT r.id, r.room_number, r.type, ` + availabilityExpr + `
		FROM rooms r
		WHERE r.id = $3`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var ra domain.RoomAvailability
	err := r.pool.QueryRow(ctx, q, windowStart.UTC(), windowEnd.UTC(), id).Scan(
		&ra.ID, &ra.RoomNumber, &ra.Type, &ra.Available,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ra, nil
}
