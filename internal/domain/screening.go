package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ScreeningTimeLayout is the wire format for screening times. Screening times
// are minute-precision; seconds are not part of the stored representation.
const ScreeningTimeLayout = "2006-01-02 15:04"

// ErrNegativePrice rejects screenings constructed with a price below zero.
var ErrNegativePrice = errors.New("domain: price must be non-negative")

// Screening is a single showtime of a movie. At most one screening exists per
// (movie, starts-at) pair.
type Screening struct {
	ID       uuid.UUID
	MovieID  uuid.UUID
	StartsAt time.Time
	Price    int
}

// NewScreening validates the inputs and builds a screening with a fresh
// identity. The timestamp is normalized to UTC and truncated to the minute so
// key matching is exact value equality.
func NewScreening(movieID uuid.UUID, startsAt time.Time, price int) (Screening, error) {
	if price < 0 {
		return Screening{}, ErrNegativePrice
	}
	return Screening{
		ID:       uuid.New(),
		MovieID:  movieID,
		StartsAt: NormalizeScreeningTime(startsAt),
		Price:    price,
	}, nil
}

// NormalizeScreeningTime maps a timestamp onto the minute-precision UTC
// representation screenings are keyed on.
func NormalizeScreeningTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Minute)
}
