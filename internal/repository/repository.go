package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jd-cinema/cinema-api/internal/store"
)

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("repository: not found")

// ErrConflict indicates a write lost a race against a concurrent insert for
// the same key. Callers may re-read and retry; the error is never swallowed
// at this layer.
var ErrConflict = errors.New("repository: conflicting write")

// Repository aggregates all domain-specific repositories.
type Repository struct {
	Movies     *MoviesRepository
	Screenings *ScreeningsRepository
	Reviews    *ReviewsRepository
}

// New constructs a Repository backed by the provided store.
func New(st *store.Store) *Repository {
	return NewWithPool(st.Pool())
}

// NewWithPool allows constructing repositories directly from a pgx pool.
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{
		Movies:     &MoviesRepository{pool: pool},
		Screenings: &ScreeningsRepository{pool: pool},
		Reviews:    &ReviewsRepository{pool: pool},
	}
}
