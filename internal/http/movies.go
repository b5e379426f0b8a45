package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jd-cinema/cinema-api/internal/domain"
	"github.com/jd-cinema/cinema-api/internal/omdb"
	"github.com/jd-cinema/cinema-api/internal/repository"
)

func (s *Server) handleListMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := s.repo.Movies.FetchAll(r.Context())
	if err != nil {
		s.logger.Printf("list movies error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list movies")
		return
	}

	items := make([]movieResponse, 0, len(movies))
	for _, movie := range movies {
		screenings, err := s.repo.Screenings.ListByMovie(r.Context(), movie.ID)
		if err != nil {
			s.logger.Printf("list screenings for %s error: %v", movie.ID, err)
			s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list movies")
			return
		}
		items = append(items, toMovieResponse(movie, screenings, nil))
	}

	s.respondJSON(w, http.StatusOK, moviesResponse{Movies: items})
}

func (s *Server) handleGetMovie(w http.ResponseWriter, r *http.Request) {
	movie, ok := s.fetchMovieParam(w, r)
	if !ok {
		return
	}

	screenings, err := s.repo.Screenings.ListByMovie(r.Context(), movie.ID)
	if err != nil {
		s.logger.Printf("list screenings for %s error: %v", movie.ID, err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch movie")
		return
	}

	// Details are best-effort here: an underivable vendor id or provider
	// failure leaves them absent rather than failing the whole response.
	var details *omdb.Details
	if imdbID, ok := movie.IMDBID(); ok {
		details = s.fetchDetails(r.Context(), imdbID)
	}

	s.respondJSON(w, http.StatusOK, toMovieResponse(movie, screenings, details))
}

func (s *Server) handleListScreenings(w http.ResponseWriter, r *http.Request) {
	movie, ok := s.fetchMovieParam(w, r)
	if !ok {
		return
	}

	screenings, err := s.repo.Screenings.ListByMovie(r.Context(), movie.ID)
	if err != nil {
		s.logger.Printf("list screenings for %s error: %v", movie.ID, err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list screenings")
		return
	}

	s.respondJSON(w, http.StatusOK, showtimesResponse{
		MovieID:    movie.ID,
		Screenings: toScreeningResponses(screenings),
	})
}

func (s *Server) handleGetDetails(w http.ResponseWriter, r *http.Request) {
	movie, ok := s.fetchMovieParam(w, r)
	if !ok {
		return
	}

	imdbID, ok := movie.IMDBID()
	if !ok {
		s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Movie has no vendor id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(s.cfg.OMDBTimeoutSecs)*time.Second)
	defer cancel()

	details, err := s.omdb.Fetch(ctx, imdbID)
	if err != nil {
		if errors.Is(err, omdb.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		s.logger.Printf("omdb fetch failed for %s: %v", imdbID, err)
		s.respondError(w, http.StatusBadGateway, "UPSTREAM_ERROR", "Metadata provider unavailable")
		return
	}

	s.respondJSON(w, http.StatusOK, toDetailsPayload(details))
}

func (s *Server) handleGetRating(w http.ResponseWriter, r *http.Request) {
	movie, ok := s.fetchMovieParam(w, r)
	if !ok {
		return
	}

	avg, present, err := s.repo.Reviews.AverageRating(r.Context(), movie.ID)
	if err != nil {
		s.logger.Printf("aggregate reviews for %s error: %v", movie.ID, err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch rating")
		return
	}
	if !present {
		s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Movie has no reviews yet")
		return
	}

	s.respondJSON(w, http.StatusOK, ratingSummaryResponse{MovieID: movie.ID, Rating: avg})
}

// fetchMovieParam resolves the {movieId} path parameter to a catalog movie,
// writing the client/not-found response itself when resolution fails.
func (s *Server) fetchMovieParam(w http.ResponseWriter, r *http.Request) (domain.Movie, bool) {
	movieID, err := parseMovieID(chi.URLParam(r, "movieId"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return domain.Movie{}, false
	}
	return s.fetchMovie(w, r, movieID)
}

func (s *Server) fetchMovie(w http.ResponseWriter, r *http.Request, movieID uuid.UUID) (domain.Movie, bool) {
	movie, err := s.repo.Movies.GetByID(r.Context(), movieID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return domain.Movie{}, false
		}
		s.logger.Printf("fetch movie %s error: %v", movieID, err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch movie")
		return domain.Movie{}, false
	}
	return movie, true
}

func (s *Server) fetchDetails(ctx context.Context, imdbID string) *omdb.Details {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.OMDBTimeoutSecs)*time.Second)
	defer cancel()

	details, err := s.omdb.Fetch(ctx, imdbID)
	if err != nil {
		if !errors.Is(err, omdb.ErrNotFound) {
			s.logger.Printf("omdb fetch failed for %s: %v", imdbID, err)
		}
		return nil
	}
	return details
}
