package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/johotel/hotel-api/internal/domain"
)

var testRates = map[string]int64{
	"Standard": 89900,
	"Family":   129900,
	"Suite":    199900,
}

func date(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
}

func TestNights(t *testing.T) {
	calc := NewPriceCalculator(testRates)

	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int
	}{
		{"two full nights", date(2026, 6, 5, 15), date(2026, 6, 7, 11), 2},
		{"one night", date(2026, 6, 5, 15), date(2026, 6, 6, 11), 1},
		{"same day", date(2026, 6, 5, 10), date(2026, 6, 5, 18), 0},
		{"time of day ignored", date(2026, 6, 5, 23), date(2026, 6, 6, 1), 1},
		{"non-utc zone normalized", // 23:00+02:00 is 21:00 UTC the same day
			time.Date(2026, 6, 5, 23, 0, 0, 0, time.FixedZone("CEST", 2*3600)),
			date(2026, 6, 6, 11), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := calc.Nights(tt.checkIn, tt.checkOut); got != tt.want {
				t.Errorf("Nights() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPrice(t *testing.T) {
	calc := NewPriceCalculator(testRates)

	t.Run("two nights standard", func(t *testing.T) {
		total, err := calc.Price(domain.RoomStandard, date(2026, 6, 5, 15), date(2026, 6, 7, 11))
		if err != nil {
			t.Fatalf("Price() error = %v", err)
		}
		if want := int64(2 * 89900); total != want {
			t.Errorf("Price() = %d, want %d", total, want)
		}
	})

	t.Run("suite rate", func(t *testing.T) {
		total, err := calc.Price(domain.RoomSuite, date(2026, 6, 5, 15), date(2026, 6, 6, 11))
		if err != nil {
			t.Fatalf("Price() error = %v", err)
		}
		if want := int64(199900); total != want {
			t.Errorf("Price() = %d, want %d", total, want)
		}
	})

	t.Run("zero nights rejected", func(t *testing.T) {
		_, err := calc.Price(domain.RoomStandard, date(2026, 6, 5, 10), date(2026, 6, 5, 18))
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("Price() error = %v, want ErrValidation", err)
		}
	})

	t.Run("unknown room type rejected", func(t *testing.T) {
		_, err := calc.Price(domain.RoomType("Penthouse"), date(2026, 6, 5, 15), date(2026, 6, 7, 11))
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("Price() error = %v, want ErrValidation", err)
		}
	})
}
