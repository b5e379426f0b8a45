package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/jd-cinema/cinema-api/internal/domain"
	"github.com/jd-cinema/cinema-api/internal/repository"
)

type reviewRequest struct {
	MovieID string `json:"movieId"`
	Rating  *int   `json:"rating"`
}

func (s *Server) handleSubmitReview(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	movieID, err := parseMovieID(req.MovieID)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}
	if req.Rating == nil {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "rating is required")
		return
	}
	if *req.Rating < domain.MinRating || *req.Rating > domain.MaxRating {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "rating must be between 1 and 5")
		return
	}

	movie, ok := s.fetchMovie(w, r, movieID)
	if !ok {
		return
	}

	// The submission timestamp is server-assigned.
	review, err := s.repo.Reviews.Insert(r.Context(), movie.ID, *req.Rating, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrRatingOutOfRange) {
			s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "rating must be between 1 and 5")
			return
		}
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		s.logger.Printf("insert review error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to submit review")
		return
	}

	s.respondJSON(w, http.StatusCreated, reviewResponse{
		ID:          review.ID,
		MovieID:     review.MovieID,
		Rating:      review.Rating,
		SubmittedAt: review.SubmittedAt,
	})
}
