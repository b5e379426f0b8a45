package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Rating bounds for a review, inclusive.
const (
	MinRating = 1
	MaxRating = 5
)

// ErrRatingOutOfRange rejects reviews whose rating falls outside [1, 5].
var ErrRatingOutOfRange = errors.New("domain: rating must be between 1 and 5")

// Review is a single moviegoer rating. Reviews are append-only; there is no
// update or delete.
type Review struct {
	ID          uuid.UUID
	MovieID     uuid.UUID
	Rating      int
	SubmittedAt time.Time
}

// NewReview validates the rating and builds a review with a fresh identity.
func NewReview(movieID uuid.UUID, rating int, submittedAt time.Time) (Review, error) {
	if rating < MinRating || rating > MaxRating {
		return Review{}, ErrRatingOutOfRange
	}
	return Review{
		ID:          uuid.New(),
		MovieID:     movieID,
		Rating:      rating,
		SubmittedAt: submittedAt.UTC(),
	}, nil
}
