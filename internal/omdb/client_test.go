package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*HTTPClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewHTTPClient(srv.URL, "test-key", 2*time.Second, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("create http client: %v", err)
	}
	return client, srv
}

func TestFetchSuccess(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("apikey"); got != "test-key" {
			t.Errorf("apikey = %q, want test-key", got)
		}
		if got := r.URL.Query().Get("i"); got != "tt0232500" {
			t.Errorf("i = %q, want tt0232500", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"Title":    "The Fast and the Furious",
			"Year":     "2001",
			"Rated":    "PG-13",
			"Response": "True",
		})
	})

	details, err := client.Fetch(context.Background(), "tt0232500")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if details.Title != "The Fast and the Furious" || details.Year != "2001" || details.Rated != "PG-13" {
		t.Fatalf("unexpected details: %+v", details)
	}
}

func TestFetchProviderNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// OMDb reports misses inside a 200 response.
		_ = json.NewEncoder(w).Encode(map[string]string{
			"Response": "False",
			"Error":    "Incorrect IMDb ID.",
		})
	})

	_, err := client.Fetch(context.Background(), "tt9999999")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Fetch error = %v, want ErrNotFound", err)
	}
}

func TestFetchUpstreamFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	if _, err := client.Fetch(context.Background(), "tt0232500"); err == nil {
		t.Fatalf("expected error for upstream 502")
	}
}

func TestFetchContextCancelled(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := client.Fetch(ctx, "tt0232500"); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}
