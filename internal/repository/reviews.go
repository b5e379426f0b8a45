package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jd-cinema/cinema-api/internal/domain"
)

// ReviewsRepository owns the mapping from a movie to its review list.
// Reviews are append-only.
type ReviewsRepository struct {
	pool *pgxpool.Pool
}

// Insert stores a new review with a fresh identity. Unlike screenings,
// reviews are never deduplicated.
func (r *ReviewsRepository) Insert(ctx context.Context, movieID uuid.UUID, rating int, submittedAt time.Time) (domain.Review, error) {
	review, err := domain.NewReview(movieID, rating, submittedAt)
	if err != nil {
		return domain.Review{}, err
	}

	const query = `INSERT INTO reviews (id, movie_id, rating, submitted_at) VALUES ($1, $2, $3, $4)`
	_, err = r.pool.Exec(ctx, query, review.ID, review.MovieID, review.Rating, review.SubmittedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return domain.Review{}, ErrNotFound
		}
		return domain.Review{}, fmt.Errorf("insert review: %w", err)
	}
	return review, nil
}

// ListByMovie returns every review for the movie. Order is not guaranteed.
func (r *ReviewsRepository) ListByMovie(ctx context.Context, movieID uuid.UUID) ([]domain.Review, error) {
	const query = `SELECT id, movie_id, rating, submitted_at FROM reviews WHERE movie_id = $1`

	rows, err := r.pool.Query(ctx, query, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]domain.Review, 0)
	for rows.Next() {
		var review domain.Review
		if err := rows.Scan(&review.ID, &review.MovieID, &review.Rating, &review.SubmittedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

// AverageRating returns the arithmetic mean of all ratings for the movie.
// ok is false when the movie has no reviews yet; the absence is explicit
// rather than encoded as zero or NaN.
func (r *ReviewsRepository) AverageRating(ctx context.Context, movieID uuid.UUID) (float64, bool, error) {
	const query = `SELECT AVG(rating)::float8 FROM reviews WHERE movie_id = $1`

	var avg *float64
	if err := r.pool.QueryRow(ctx, query, movieID).Scan(&avg); err != nil {
		return 0, false, fmt.Errorf("aggregate reviews: %w", err)
	}
	if avg == nil {
		return 0, false, nil
	}
	return *avg, true, nil
}
