package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNotFound is returned when the provider cannot find the requested movie.
var ErrNotFound = errors.New("omdb: not found")

// Details carries the enrichment fields the service exposes. Only a subset of
// the provider payload is mapped.
type Details struct {
	Title    string `json:"Title"`
	Year     string `json:"Year"`
	Rated    string `json:"Rated"`
	Released string `json:"Released"`
	Runtime  string `json:"Runtime"`
	Genre    string `json:"Genre"`
	Director string `json:"Director"`
	Writer   string `json:"Writer"`
	Actors   string `json:"Actors"`
	Plot     string `json:"Plot"`
}

// Client defines the contract for querying the metadata provider by IMDb id.
type Client interface {
	Fetch(ctx context.Context, imdbID string) (*Details, error)
}

// HTTPClient implements Client over HTTP. One blocking request per call; no
// retry, no cache.
type HTTPClient struct {
	baseURL *url.URL
	apiKey  string
	client  *http.Client
	logger  *log.Logger
}

// NewHTTPClient constructs a new HTTP-backed metadata client.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration, logger *log.Logger) (*HTTPClient, error) {
	if logger == nil {
		logger = log.Default()
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse omdb url: %w", err)
	}
	return &HTTPClient{
		baseURL: parsed,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   timeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   timeout,
				ResponseHeaderTimeout: timeout,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		logger: logger,
	}, nil
}

// Fetch retrieves movie details by IMDb id.
func (c *HTTPClient) Fetch(ctx context.Context, imdbID string) (*Details, error) {
	endpoint := *c.baseURL
	q := endpoint.Query()
	q.Set("apikey", c.apiKey)
	q.Set("i", imdbID)
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Printf("omdb: unexpected status %d for id %q", resp.StatusCode, imdbID)
		return nil, fmt.Errorf("omdb: upstream returned %d", resp.StatusCode)
	}

	// The provider reports errors inside a 200 response.
	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode omdb response: %w", err)
	}
	if strings.EqualFold(payload.Response, "False") {
		return nil, ErrNotFound
	}
	return &payload.Details, nil
}

type apiResponse struct {
	Details
	Response string `json:"Response"`
	Error    string `json:"Error"`
}
