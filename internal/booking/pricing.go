package booking

import (
	"fmt"
	"time"

	"github.com/johotel/hotel-api/internal/domain"
)

// PriceCalculator computes a stay total from the nightly rate table.
type PriceCalculator interface {
	Price(roomType domain.RoomType, checkIn, checkOut time.Time) (int64, error)
	Nights(checkIn, checkOut time.Time) int
}

type rateTableCalculator struct {
	nightlyCents map[string]int64
}

// NewPriceCalculator takes the configured nightly rates in cents, keyed by
// room type name.
func NewPriceCalculator(nightlyCents map[string]int64) PriceCalculator {
	return &rateTableCalculator{nightlyCents: nightlyCents}
}

func (c *rateTableCalculator) Price(roomType domain.RoomType, checkIn, checkOut time.Time) (int64, error) {
	nights := c.Nights(checkIn, checkOut)
	if nights < 1 {
		return 0, fmt.Errorf("%w: stay must cover at least one night", domain.ErrValidation)
	}

	rate, ok := c.nightlyCents[string(roomType)]
	if !ok {
		return 0, fmt.Errorf("%w: no rate configured for room type %q", domain.ErrValidation, roomType)
	}

	return int64(nights) * rate, nil
}

// Nights counts whole calendar days between the UTC dates of check-in and
// check-out; times of day within the same date do not add nights.
func (c *rateTableCalculator) Nights(checkIn, checkOut time.Time) int {
	in := utcDate(checkIn)
	out := utcDate(checkOut)
	return int(out.Sub(in) / (24 * time.Hour))
}

func utcDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
