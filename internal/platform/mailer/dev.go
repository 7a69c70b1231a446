package mailer

import (
	"github.com/johotel/hotel-api/pkg/logger"
)

// DevMailer logs messages instead of sending them. Used when no mail
// transport is configured.
type DevMailer struct{}

func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (d *DevMailer) Send(toEmail, toName, subject, text, _ string) (string, error) {
	logger.Info("[DEV MAIL]",
		"to", toEmail,
		"name", toName,
		"subject", subject,
		"body", text,
	)
	return "", nil
}

func (d *DevMailer) SendWelcome(toEmail, username, hotelName string) error {
	subject, text, _ := welcomeTemplates(username, hotelName)
	_, err := d.Send(toEmail, username, subject, text, "")
	return err
}

func (d *DevMailer) SendReservationConfirmation(toEmail string, details ReservationDetails) error {
	subject, text, _ := confirmationTemplates(details)
	_, err := d.Send(toEmail, details.Username, subject, text, "")
	return err
}
