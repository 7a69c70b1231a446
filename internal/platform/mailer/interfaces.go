package mailer

import "time"

// ReservationDetails are the confirmation template inputs.
type ReservationDetails struct {
	ReservationID int64
	Username      string
	HotelName     string
	RoomLabel     string
	CheckIn       time.Time
	CheckOut      time.Time
	Guests        int
	TotalCents    int64
}

type Service interface {
	Send(toEmail, toName, subject, text, html string) (string, error)
	SendWelcome(toEmail, username, hotelName string) error
	SendReservationConfirmation(toEmail string, details ReservationDetails) error
}
