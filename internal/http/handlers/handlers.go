package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/johotel/hotel-api/internal/auth"
	"github.com/johotel/hotel-api/internal/booking"
)

// Handlers bundles the HTTP surface over the auth gateway and the
// reservation lifecycle.
type Handlers struct {
	auth    auth.Service
	booking booking.Service
}

func New(auth auth.Service, booking booking.Service) *Handlers {
	return &Handlers{auth: auth, booking: booking}
}

func parsePagination(r *http.Request) (limit, offset int) {
	limit = 20
	offset = 0

	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil && parsed >= 0 {
			offset = parsed
		}
	}
	return limit, offset
}

// parseWindow reads the optional from/to availability window, defaulting to
// the next 24 hours.
func parseWindow(r *http.Request) (from, to time.Time, err error) {
	now := time.Now().UTC()
	from, to = now, now.Add(24*time.Hour)

	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return from, to, err
		}
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		to, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return from, to, err
		}
	}
	return from.UTC(), to.UTC(), nil
}
