package mailer

import "fmt"

const dateLayout = "Mon, 02 Jan 2006"

func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

func welcomeTemplates(username, hotelName string) (subject, text, html string) {
	subject = fmt.Sprintf("Welcome to %s", hotelName)
	text = fmt.Sprintf("Hi %s,\n\nYour %s account is ready. You can now browse rooms and book your stay.", username, hotelName)
	html = fmt.Sprintf(`<p>Hi %s,</p><p>Your <b>%s</b> account is ready. You can now browse rooms and book your stay.</p>`, username, hotelName)
	return subject, text, html
}

func confirmationTemplates(d ReservationDetails) (subject, text, html string) {
	subject = fmt.Sprintf("%s booking confirmation #%d", d.HotelName, d.ReservationID)
	text = fmt.Sprintf(
		"Hi %s,\n\nYour reservation is confirmed.\n\nRoom: %s\nCheck-in: %s\nCheck-out: %s\nGuests: %d\nTotal: %s\n\nReservation ID: %d",
		d.Username, d.RoomLabel,
		d.CheckIn.Format(dateLayout), d.CheckOut.Format(dateLayout),
		d.Guests, formatCents(d.TotalCents), d.ReservationID,
	)
	html = fmt.Sprintf(
		`<p>Hi %s,</p><p>Your reservation is confirmed.</p>
<table>
<tr><td>Room</td><td><b>%s</b></td></tr>
<tr><td>Check-in</td><td>%s</td></tr>
<tr><td>Check-out</td><td>%s</td></tr>
<tr><td>Guests</td><td>%d</td></tr>
<tr><td>Total</td><td><b>%s</b></td></tr>
</table>
<p>Reservation ID: %d</p>`,
		d.Username, d.RoomLabel,
		d.CheckIn.Format(dateLayout), d.CheckOut.Format(dateLayout),
		d.Guests, formatCents(d.TotalCents), d.ReservationID,
	)
	return subject, text, html
}
