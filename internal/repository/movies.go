package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jd-cinema/cinema-api/internal/domain"
)

// MoviesRepository provides read access to the seeded movie catalog. The
// catalog is fixed at boot; there are no mutation operations.
type MoviesRepository struct {
	pool *pgxpool.Pool
}

// FetchAll returns every movie in the catalog.
func (r *MoviesRepository) FetchAll(ctx context.Context) ([]domain.Movie, error) {
	const query = `SELECT id, title, external_id FROM movies ORDER BY title`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movies []domain.Movie
	for rows.Next() {
		var movie domain.Movie
		if err := rows.Scan(&movie.ID, &movie.Title, &movie.ExternalID); err != nil {
			return nil, err
		}
		movies = append(movies, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return movies, nil
}

// GetByID fetches a movie by its identifier. Unknown ids yield ErrNotFound.
func (r *MoviesRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Movie, error) {
	const query = `SELECT id, title, external_id FROM movies WHERE id = $1`

	var movie domain.Movie
	err := r.pool.QueryRow(ctx, query, id).Scan(&movie.ID, &movie.Title, &movie.ExternalID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Movie{}, ErrNotFound
		}
		return domain.Movie{}, err
	}
	return movie, nil
}
