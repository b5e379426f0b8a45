package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jd-cinema/cinema-api/internal/config"
)

func TestParseScreeningTime(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    time.Time
		wantErr bool
	}{
		{"valid", "2026-09-01 20:30", time.Date(2026, time.September, 1, 20, 30, 0, 0, time.UTC), false},
		{"seconds rejected", "2026-09-01 20:30:15", time.Time{}, true},
		{"date only", "2026-09-01", time.Time{}, true},
		{"rfc3339 rejected", "2026-09-01T20:30:00Z", time.Time{}, true},
		{"empty", "", time.Time{}, true},
		{"garbage", "tonight at eight", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseScreeningTime(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseScreeningTime(%q) expected error", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseScreeningTime(%q) unexpected error: %v", tt.raw, err)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("parseScreeningTime(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseMovieID(t *testing.T) {
	id := uuid.New()
	got, err := parseMovieID(id.String())
	if err != nil {
		t.Fatalf("parseMovieID(valid) error: %v", err)
	}
	if got != id {
		t.Fatalf("parseMovieID = %s, want %s", got, id)
	}

	for _, raw := range []string{"", "nope", "123", id.String() + "x"} {
		if _, err := parseMovieID(raw); err == nil {
			t.Fatalf("parseMovieID(%q) expected error", raw)
		}
	}
}

func TestRequireAdmin(t *testing.T) {
	srv := &Server{cfg: config.Config{AdminUser: "admin", AdminPassword: "secret"}}

	var reached bool
	handler := srv.requireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))

	cases := []struct {
		name    string
		user    string
		pass    string
		send    bool
		allowed bool
	}{
		{"valid", "admin", "secret", true, true},
		{"wrong password", "admin", "other", true, false},
		{"wrong user", "root", "secret", true, false},
		{"no header", "", "", false, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			reached = false
			req := httptest.NewRequest(http.MethodGet, "/int/v1/screenings", nil)
			if c.send {
				req.SetBasicAuth(c.user, c.pass)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if c.allowed && (rec.Code != http.StatusOK || !reached) {
				t.Fatalf("expected request to pass the gate, got %d", rec.Code)
			}
			if !c.allowed {
				if rec.Code != http.StatusUnauthorized || reached {
					t.Fatalf("expected 401 before the handler, got %d (reached=%v)", rec.Code, reached)
				}
			}
		})
	}
}

func FuzzParseScreeningTime(f *testing.F) {
	seeds := []string{
		"2026-09-01 20:30",
		"2026-09-01T20:30:00Z",
		"not a time",
		"",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, raw string) {
		got, err := parseScreeningTime(raw)
		if err != nil {
			return
		}
		// Anything accepted must already sit on a minute boundary.
		if got.Second() != 0 || got.Nanosecond() != 0 {
			t.Fatalf("parseScreeningTime(%q) = %v, not minute-precision", raw, got)
		}
	})
}
