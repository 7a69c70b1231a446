package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/johotel/hotel-api/internal/domain"
	"github.com/johotel/hotel-api/internal/repository"
	"github.com/johotel/hotel-api/pkg/config"
	"github.com/johotel/hotel-api/pkg/events"
	"github.com/johotel/hotel-api/pkg/logger"
)

// Service orchestrates the reservation lifecycle: create runs the
// room-exists, overlap and pricing checks before persisting as confirmed;
// cancel enforces ownership and the cancellation cutoff.
type Service interface {
	Create(ctx context.Context, userID int64, req *domain.CreateReservationRequest) (*domain.ReservationConfirmation, error)
	Cancel(ctx context.Context, actorUserID, reservationID int64) error
	ListForUser(ctx context.Context, userID int64, limit, offset int) ([]domain.ReservationView, error)
	ListAll(ctx context.Context, limit, offset int) ([]domain.ReservationView, error)
	RoomsWithAvailability(ctx context.Context, windowStart, windowEnd time.Time) ([]domain.RoomAvailability, error)
	RoomWithAvailability(ctx context.Context, roomID int64, windowStart, windowEnd time.Time) (*domain.RoomAvailability, error)
}

type service struct {
	reservations repository.ReservationRepository
	rooms        repository.RoomRepository
	users        repository.UserRepository
	pricer       PriceCalculator
	eventBus     events.Publisher
	cancelCutoff time.Duration
	hotelName    string
	now          func() time.Time
}

func NewService(
	reservations repository.ReservationRepository,
	rooms repository.RoomRepository,
	users repository.UserRepository,
	pricer PriceCalculator,
	eventBus events.Publisher,
	cfg *config.Config,
) Service {
	return &service{
		reservations: reservations,
		rooms:        rooms,
		users:        users,
		pricer:       pricer,
		eventBus:     eventBus,
		cancelCutoff: cfg.Auth.CancelCutoff,
		hotelName:    cfg.Hotel.Name,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Create(ctx context.Context, userID int64, req *domain.CreateReservationRequest) (*domain.ReservationConfirmation, error) {
	req.Normalize()
	if err := req.Validate(s.now()); err != nil {
		return nil, err
	}

	room, err := s.rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		return nil, fmt.Errorf("failed to load room: %w", err)
	}
	if room == nil {
		return nil, fmt.Errorf("%w: room %d", domain.ErrNotFound, req.RoomID)
	}

	total, err := s.pricer.Price(room.Type, req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}

	// The repository re-runs the overlap check inside the insert
	// transaction; racing requests for the same room surface as ErrOverlap.
	created, err := s.reservations.CreateConfirmed(ctx, &domain.Reservation{
		UserID:     userID,
		RoomID:     room.ID,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		Guests:     req.Guests,
		TotalCents: total,
	})
	if err != nil {
		return nil, err
	}

	s.publishCreated(ctx, created, room, userID)

	return &domain.ReservationConfirmation{
		ID:         created.ID,
		RoomID:     room.ID,
		RoomNumber: room.RoomNumber,
		RoomType:   room.Type,
		CheckIn:    created.CheckIn,
		CheckOut:   created.CheckOut,
		Nights:     s.pricer.Nights(created.CheckIn, created.CheckOut),
		Guests:     created.Guests,
		TotalCents: created.TotalCents,
	}, nil
}

func (s *service) Cancel(ctx context.Context, actorUserID, reservationID int64) error {
	res, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return fmt.Errorf("failed to load reservation: %w", err)
	}
	if res == nil || res.Status != domain.ReservationConfirmed {
		return fmt.Errorf("%w: reservation %d", domain.ErrNotFound, reservationID)
	}
	if res.UserID != actorUserID {
		return fmt.Errorf("%w: reservation belongs to another guest", domain.ErrForbidden)
	}

	// Wall clock is read here, at cancellation time. Hitting the cutoff
	// exactly is already too late.
	if !s.now().Add(s.cancelCutoff).Before(res.CheckIn) {
		return fmt.Errorf("%w: check-in is less than %s away", domain.ErrTooLate, s.cancelCutoff)
	}

	ok, err := s.reservations.Cancel(ctx, reservationID)
	if err != nil {
		return fmt.Errorf("failed to cancel reservation: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: reservation %d", domain.ErrNotFound, reservationID)
	}

	s.publishCancelled(ctx, res)
	return nil
}

func (s *service) ListForUser(ctx context.Context, userID int64, limit, offset int) ([]domain.ReservationView, error) {
	return s.reservations.ListByUser(ctx, userID, limit, offset)
}

func (s *service) ListAll(ctx context.Context, limit, offset int) ([]domain.ReservationView, error) {
	return s.reservations.ListAll(ctx, limit, offset)
}

func (s *service) RoomsWithAvailability(ctx context.Context, windowStart, windowEnd time.Time) ([]domain.RoomAvailability, error) {
	if !windowStart.Before(windowEnd) {
		return nil, fmt.Errorf("%w: window start must be before window end", domain.ErrValidation)
	}
	return s.rooms.ListWithAvailability(ctx, windowStart, windowEnd)
}

func (s *service) RoomWithAvailability(ctx context.Context, roomID int64, windowStart, windowEnd time.Time) (*domain.RoomAvailability, error) {
	if !windowStart.Before(windowEnd) {
		return nil, fmt.Errorf("%w: window start must be before window end", domain.ErrValidation)
	}
	room, err := s.rooms.GetWithAvailability(ctx, roomID, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, fmt.Errorf("%w: room %d", domain.ErrNotFound, roomID)
	}
	return room, nil
}

// Confirmation dispatch is best effort: a publish failure is logged and
// never fails the reservation.
func (s *service) publishCreated(ctx context.Context, res *domain.Reservation, room *domain.Room, userID int64) {
	if s.eventBus == nil {
		return
	}

	email, username := "", ""
	if user, err := s.users.FindByID(ctx, userID); err == nil && user != nil {
		email, username = user.Email, user.Username
	}

	event := events.ReservationCreatedEvent{
		ReservationID: res.ID,
		Email:         email,
		Username:      username,
		HotelName:     s.hotelName,
		RoomNumber:    room.RoomNumber,
		RoomType:      string(room.Type),
		CheckIn:       res.CheckIn,
		CheckOut:      res.CheckOut,
		Guests:        res.Guests,
		TotalCents:    res.TotalCents,
		CreatedAt:     res.CreatedAt,
	}
	if err := s.eventBus.Publish(ctx, events.ReservationCreated, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish reservation created event",
			"error", err, "reservation_id", res.ID)
	}
}

func (s *service) publishCancelled(ctx context.Context, res *domain.Reservation) {
	if s.eventBus == nil {
		return
	}

	email := ""
	roomNumber := 0
	if user, err := s.users.FindByID(ctx, res.UserID); err == nil && user != nil {
		email = user.Email
	}
	if room, err := s.rooms.GetByID(ctx, res.RoomID); err == nil && room != nil {
		roomNumber = room.RoomNumber
	}

	event := events.ReservationCancelledEvent{
		ReservationID: res.ID,
		Email:         email,
		RoomNumber:    roomNumber,
		CancelledAt:   s.now(),
	}
	if err := s.eventBus.Publish(ctx, events.ReservationCancelled, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish reservation cancelled event",
			"error", err, "reservation_id", res.ID)
	}
}
