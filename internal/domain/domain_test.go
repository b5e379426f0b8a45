package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewScreening_PriceValidation(t *testing.T) {
	movieID := uuid.New()
	now := time.Now()

	if _, err := NewScreening(movieID, now, -1); err != ErrNegativePrice {
		t.Fatalf("NewScreening(price=-1) error = %v, want ErrNegativePrice", err)
	}
	screening, err := NewScreening(movieID, now, 0)
	if err != nil {
		t.Fatalf("NewScreening(price=0) unexpected error: %v", err)
	}
	if screening.Price != 0 {
		t.Fatalf("Price = %d, want 0", screening.Price)
	}
	if screening.ID == uuid.Nil {
		t.Fatalf("expected a fresh screening identity")
	}
}

func TestNewScreening_TruncatesToMinute(t *testing.T) {
	startsAt := time.Date(2026, time.March, 14, 18, 30, 45, 123456789, time.UTC)
	screening, err := NewScreening(uuid.New(), startsAt, 1000)
	if err != nil {
		t.Fatalf("NewScreening: %v", err)
	}
	want := time.Date(2026, time.March, 14, 18, 30, 0, 0, time.UTC)
	if !screening.StartsAt.Equal(want) {
		t.Fatalf("StartsAt = %v, want %v", screening.StartsAt, want)
	}
}

func TestNewReview_RatingValidation(t *testing.T) {
	movieID := uuid.New()
	now := time.Now()

	tests := []struct {
		rating  int
		wantErr bool
	}{
		{0, true},
		{1, false},
		{3, false},
		{5, false},
		{6, true},
		{-1, true},
	}

	for _, tt := range tests {
		_, err := NewReview(movieID, tt.rating, now)
		if tt.wantErr && err != ErrRatingOutOfRange {
			t.Fatalf("NewReview(rating=%d) error = %v, want ErrRatingOutOfRange", tt.rating, err)
		}
		if !tt.wantErr && err != nil {
			t.Fatalf("NewReview(rating=%d) unexpected error: %v", tt.rating, err)
		}
	}
}

func TestMovieIMDBID(t *testing.T) {
	tests := []struct {
		name       string
		externalID string
		want       string
		ok         bool
	}{
		{"valid", "imdb:tt0232500", "tt0232500", true},
		{"missing separator", "tt0232500", "", false},
		{"wrong vendor", "tmdb:9799", "", false},
		{"empty vendor id", "imdb:", "", false},
		{"extra separator", "imdb:tt123:extra", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			movie := Movie{ID: uuid.New(), Title: "x", ExternalID: tt.externalID}
			got, ok := movie.IMDBID()
			if got != tt.want || ok != tt.ok {
				t.Fatalf("IMDBID() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}
