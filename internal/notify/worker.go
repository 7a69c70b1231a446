package notify

import (
	"encoding/json"
	"fmt"

	"github.com/johotel/hotel-api/internal/platform/mailer"
	"github.com/johotel/hotel-api/pkg/events"
	"github.com/johotel/hotel-api/pkg/logger"
)

const queueGroup = "notify-workers"

// Worker consumes reservation and account events and sends the matching
// emails. Mail failures are logged and dropped; notifications never block
// or fail the flows that emitted them.
type Worker struct {
	bus       events.Subscriber
	mail      mailer.Service
	hotelName string
}

func NewWorker(bus events.Subscriber, mail mailer.Service, hotelName string) *Worker {
	return &Worker{bus: bus, mail: mail, hotelName: hotelName}
}

// Start registers the queue subscriptions. Handlers run on the NATS
// delivery goroutine.
func (w *Worker) Start() error {
	if err := w.bus.QueueSubscribe(events.ReservationCreated, queueGroup, w.handleReservationCreated); err != nil {
		return fmt.Errorf("subscribe %s: %w", events.ReservationCreated, err)
	}
	if err := w.bus.QueueSubscribe(events.UserRegistered, queueGroup, w.handleUserRegistered); err != nil {
		return fmt.Errorf("subscribe %s: %w", events.UserRegistered, err)
	}
	logger.Info("Notify worker started", "queue", queueGroup)
	return nil
}

func (w *Worker) handleReservationCreated(msg *events.Message) {
	var ev events.ReservationCreatedEvent
	if err := json.Unmarshal(msg.Data, &ev); err != nil {
		logger.Error("Failed to decode reservation.created event", "error", err)
		return
	}

	details := mailer.ReservationDetails{
		ReservationID: ev.ReservationID,
		Username:      ev.Username,
		HotelName:     ev.HotelName,
		RoomLabel:     fmt.Sprintf("Room %d (%s)", ev.RoomNumber, ev.RoomType),
		CheckIn:       ev.CheckIn,
		CheckOut:      ev.CheckOut,
		Guests:        ev.Guests,
		TotalCents:    ev.TotalCents,
	}
	if err := w.mail.SendReservationConfirmation(ev.Email, details); err != nil {
		logger.Error("Failed to send reservation confirmation",
			"reservation_id", ev.ReservationID,
			"error", err,
		)
		return
	}
	logger.Info("Sent reservation confirmation", "reservation_id", ev.ReservationID)
}

func (w *Worker) handleUserRegistered(msg *events.Message) {
	var ev events.UserRegisteredEvent
	if err := json.Unmarshal(msg.Data, &ev); err != nil {
		logger.Error("Failed to decode user.registered event", "error", err)
		return
	}

	if err := w.mail.SendWelcome(ev.Email, ev.Username, w.hotelName); err != nil {
		logger.Error("Failed to send welcome email", "user_id", ev.UserID, "error", err)
		return
	}
	logger.Info("Sent welcome email", "user_id", ev.UserID)
}
