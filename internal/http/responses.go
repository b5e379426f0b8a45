package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jd-cinema/cinema-api/internal/domain"
	"github.com/jd-cinema/cinema-api/internal/omdb"
)

const maxRequestBody = 1 << 20 // 1 MiB

type errorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type moviesResponse struct {
	Movies []movieResponse `json:"movies"`
}

type movieResponse struct {
	ID         uuid.UUID            `json:"id"`
	Title      string               `json:"title"`
	Screenings []screeningResponse  `json:"screenings"`
	Details    *movieDetailsPayload `json:"details,omitempty"`
}

type movieDetailsPayload struct {
	Title string `json:"title"`
	Year  string `json:"year"`
	Rated string `json:"rated"`
}

type showtimesResponse struct {
	MovieID    uuid.UUID           `json:"movieId"`
	Screenings []screeningResponse `json:"screenings"`
}

type screeningResponse struct {
	StartsAt string `json:"startsAt"`
	Price    int    `json:"price"`
}

type ratingSummaryResponse struct {
	MovieID uuid.UUID `json:"movieId"`
	Rating  float64   `json:"rating"`
}

type reviewResponse struct {
	ID          uuid.UUID `json:"id"`
	MovieID     uuid.UUID `json:"movieId"`
	Rating      int       `json:"rating"`
	SubmittedAt time.Time `json:"submittedAt"`
}

type screeningAdminResponse struct {
	ID       uuid.UUID `json:"id"`
	MovieID  uuid.UUID `json:"movieId"`
	StartsAt string    `json:"startsAt"`
	Price    int       `json:"price"`
}

func toMovieResponse(movie domain.Movie, screenings []domain.Screening, details *omdb.Details) movieResponse {
	return movieResponse{
		ID:         movie.ID,
		Title:      movie.Title,
		Screenings: toScreeningResponses(screenings),
		Details:    toDetailsPayload(details),
	}
}

func toScreeningResponses(screenings []domain.Screening) []screeningResponse {
	out := make([]screeningResponse, 0, len(screenings))
	for _, screening := range screenings {
		out = append(out, screeningResponse{
			StartsAt: screening.StartsAt.Format(domain.ScreeningTimeLayout),
			Price:    screening.Price,
		})
	}
	return out
}

func toDetailsPayload(details *omdb.Details) *movieDetailsPayload {
	if details == nil {
		return nil
	}
	return &movieDetailsPayload{
		Title: details.Title,
		Year:  details.Year,
		Rated: details.Rated,
	}
}

func toScreeningAdminResponse(screening domain.Screening) screeningAdminResponse {
	return screeningAdminResponse{
		ID:       screening.ID,
		MovieID:  screening.MovieID,
		StartsAt: screening.StartsAt.Format(domain.ScreeningTimeLayout),
		Price:    screening.Price,
	}
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			s.logger.Printf("failed to encode response: %v", err)
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	s.respondJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

func (s *Server) respondDecodeError(w http.ResponseWriter, err error) {
	var syntaxError *json.SyntaxError
	var typeError *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxError):
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Malformed JSON payload")
	case errors.As(err, &typeError):
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", fmt.Sprintf("Invalid value for field %s", typeError.Field))
	case errors.Is(err, io.EOF):
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Request body cannot be empty")
	default:
		s.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Unable to parse request body")
	}
}

func parseMovieID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid movie id")
	}
	return id, nil
}

func parseScreeningTime(raw string) (time.Time, error) {
	t, err := time.Parse(domain.ScreeningTimeLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("startsAt must follow the %q format", domain.ScreeningTimeLayout)
	}
	return t, nil
}
