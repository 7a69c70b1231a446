package domain

import (
	"fmt"
	"time"
)

type ReservationStatus string

const (
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// Reservation holds a room for [CheckIn, CheckOut): check-in inclusive,
// check-out exclusive. Adjacent stays on the same room do not conflict.
type Reservation struct {
	ID         int64             `json:"id"`
	UserID     int64             `json:"user_id"`
	RoomID     int64             `json:"room_id"`
	CheckIn    time.Time         `json:"check_in"`
	CheckOut   time.Time         `json:"check_out"`
	Guests     int               `json:"guests"`
	TotalCents int64             `json:"total_cents"`
	Status     ReservationStatus `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

type CreateReservationRequest struct {
	RoomID   int64     `json:"room_id"`
	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`
	Guests   int       `json:"guests"`
}

func (r *CreateReservationRequest) Normalize() {
	r.CheckIn = r.CheckIn.UTC()
	r.CheckOut = r.CheckOut.UTC()
	if r.Guests == 0 {
		r.Guests = 1
	}
}

func (r *CreateReservationRequest) Validate(now time.Time) error {
	if r.RoomID <= 0 {
		return fmt.Errorf("%w: room_id is required", ErrValidation)
	}
	if !r.CheckIn.Before(r.CheckOut) {
		return fmt.Errorf("%w: check-in must be before check-out", ErrValidation)
	}
	if !r.CheckOut.After(now) {
		return fmt.Errorf("%w: check-out must be in the future", ErrValidation)
	}
	if r.Guests < 1 {
		return fmt.Errorf("%w: at least one guest is required", ErrValidation)
	}
	return nil
}

// ReservationConfirmation is the statically typed result of a successful
// create; the boundary serializes it as-is.
type ReservationConfirmation struct {
	ID         int64     `json:"id"`
	RoomID     int64     `json:"room_id"`
	RoomNumber int       `json:"room_number"`
	RoomType   RoomType  `json:"room_type"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
	Nights     int       `json:"nights"`
	Guests     int       `json:"guests"`
	TotalCents int64     `json:"total_cents"`
}

// ReservationView joins a reservation with room identity for listings.
type ReservationView struct {
	ID         int64             `json:"id"`
	RoomID     int64             `json:"room_id"`
	RoomNumber int               `json:"room_number"`
	RoomType   RoomType          `json:"room_type"`
	UserID     int64             `json:"user_id"`
	UserEmail  string            `json:"user_email,omitempty"`
	Username   string            `json:"username,omitempty"`
	CheckIn    time.Time         `json:"check_in"`
	CheckOut   time.Time         `json:"check_out"`
	Guests     int               `json:"guests"`
	TotalCents int64             `json:"total_cents"`
	Status     ReservationStatus `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
}
