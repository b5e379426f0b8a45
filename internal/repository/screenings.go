package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jd-cinema/cinema-api/internal/domain"
)

// Postgres error codes surfaced by screening writes.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// AddOutcome tags the result of an Add call so callers can distinguish a
// fresh insert from an idempotent replay without comparing rows.
type AddOutcome int

const (
	// ScreeningCreated means a new screening row was inserted.
	ScreeningCreated AddOutcome = iota
	// ScreeningExists means a screening already occupied the
	// (movie, starts-at) key and was returned unchanged.
	ScreeningExists
)

// ScreeningsRepository owns the mapping from a movie to its screening set.
type ScreeningsRepository struct {
	pool *pgxpool.Pool
}

const screeningColumns = `id, movie_id, starts_at, price`

// ListByMovie returns all screenings for a movie. Unknown movies and movies
// without screenings both yield an empty slice, not an error.
func (r *ScreeningsRepository) ListByMovie(ctx context.Context, movieID uuid.UUID) ([]domain.Screening, error) {
	const query = `SELECT ` + screeningColumns + ` FROM screenings WHERE movie_id = $1 ORDER BY starts_at`

	rows, err := r.pool.Query(ctx, query, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	screenings := make([]domain.Screening, 0)
	for rows.Next() {
		screening, err := scanScreening(rows)
		if err != nil {
			return nil, err
		}
		screenings = append(screenings, screening)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return screenings, nil
}

// Add is an idempotent upsert keyed on (movieID, startsAt) at minute
// precision. An existing screening is returned unchanged, first write wins:
// a replay with a different price does not update the stored price.
//
// The existence check and the insert are separate statements, so two
// concurrent calls for the same key can both see "not found". The unique
// constraint on (movie_id, starts_at) rejects the losing insert, which
// surfaces here as ErrConflict.
func (r *ScreeningsRepository) Add(ctx context.Context, movieID uuid.UUID, startsAt time.Time, price int) (domain.Screening, AddOutcome, error) {
	startsAt = domain.NormalizeScreeningTime(startsAt)

	existing, err := r.getByKey(ctx, movieID, startsAt)
	if err == nil {
		return existing, ScreeningExists, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return domain.Screening{}, ScreeningCreated, err
	}

	screening, err := domain.NewScreening(movieID, startsAt, price)
	if err != nil {
		return domain.Screening{}, ScreeningCreated, err
	}

	const query = `INSERT INTO screenings (id, movie_id, starts_at, price) VALUES ($1, $2, $3, $4)`
	tag, err := r.pool.Exec(ctx, query, screening.ID, screening.MovieID, screening.StartsAt, screening.Price)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolation:
				return domain.Screening{}, ScreeningCreated, ErrConflict
			case pgForeignKeyViolation:
				return domain.Screening{}, ScreeningCreated, ErrNotFound
			}
		}
		return domain.Screening{}, ScreeningCreated, err
	}
	if tag.RowsAffected() == 0 {
		return domain.Screening{}, ScreeningCreated, ErrConflict
	}

	return screening, ScreeningCreated, nil
}

// Delete removes the screening identified by (movieID, startsAt). It reports
// whether a row was actually removed; deleting an absent screening is not an
// error.
func (r *ScreeningsRepository) Delete(ctx context.Context, movieID uuid.UUID, startsAt time.Time) (bool, error) {
	const query = `DELETE FROM screenings WHERE movie_id = $1 AND starts_at = $2`

	tag, err := r.pool.Exec(ctx, query, movieID, domain.NormalizeScreeningTime(startsAt))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ScreeningsRepository) getByKey(ctx context.Context, movieID uuid.UUID, startsAt time.Time) (domain.Screening, error) {
	const query = `SELECT ` + screeningColumns + ` FROM screenings WHERE movie_id = $1 AND starts_at = $2`

	screening, err := scanScreening(r.pool.QueryRow(ctx, query, movieID, startsAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Screening{}, ErrNotFound
		}
		return domain.Screening{}, err
	}
	return screening, nil
}

func scanScreening(row pgx.Row) (domain.Screening, error) {
	var screening domain.Screening
	if err := row.Scan(&screening.ID, &screening.MovieID, &screening.StartsAt, &screening.Price); err != nil {
		return domain.Screening{}, err
	}
	screening.StartsAt = domain.NormalizeScreeningTime(screening.StartsAt)
	return screening, nil
}
