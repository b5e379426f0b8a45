package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jd-cinema/cinema-api/internal/domain"
	"github.com/jd-cinema/cinema-api/internal/repository"
)

type screeningUpsertRequest struct {
	MovieID  string `json:"movieId"`
	StartsAt string `json:"startsAt"`
	Price    *int   `json:"price"`
}

type screeningDeleteRequest struct {
	MovieID  string `json:"movieId"`
	StartsAt string `json:"startsAt"`
}

func (s *Server) handleAdminListScreenings(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("movieId"))
	if raw == "" {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", "movieId query parameter is required")
		return
	}
	movieID, err := parseMovieID(raw)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	movie, ok := s.fetchMovie(w, r, movieID)
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

func (s *Server) handleAddScreening(w http.ResponseWriter, r *http.Request) {
	var req screeningUpsertRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	movieID, err := parseMovieID(req.MovieID)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}
	startsAt, err := parseScreeningTime(req.StartsAt)
	if err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
		return
	}
	if req.Price == nil {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "price is required")
		return
	}
	if *req.Price < 0 {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "price must be non-negative")
		return
	}

	movie, ok := s.fetchMovie(w, r, movieID)
	if !ok {
		return
	}

	screening, outcome, err := s.repo.Screenings.Add(r.Context(), movie.ID, startsAt, *req.Price)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNegativePrice):
			s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "price must be non-negative")
		case errors.Is(err, repository.ErrNotFound):
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
		case errors.Is(err, repository.ErrConflict):
			// Lost the upsert race; the caller can safely retry the request.
			s.respondError(w, http.StatusConflict, "CONFLICT", "Concurrent write for the same screening slot")
		default:
			s.logger.Printf("add screening error: %v", err)
			s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to add screening")
		}
		return
	}

	status := http.StatusCreated
	if outcome == repository.ScreeningExists {
		status = http.StatusOK
	}
	s.respondJSON(w, status, toScreeningAdminResponse(screening))
}

func (s *Server) handleDeleteScreening(w http.ResponseWriter, r *http.Request) {
	var req screeningDeleteRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	movieID, err := parseMovieID(req.MovieID)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}
	startsAt, err := parseScreeningTime(req.StartsAt)
	if err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
		return
	}

	deleted, err := s.repo.Screenings.Delete(r.Context(), movieID, startsAt)
	if err != nil {
		s.logger.Printf("delete screening error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete screening")
		return
	}
	if !deleted {
		s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
