package geolocation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"eventfinder/internal/domain"
)

// DefaultIPLookupURL returns the caller's approximate position as JSON.
const DefaultIPLookupURL = "https://ipapi.co/json/"

// APIError is returned when the lookup service answers with an unusable response.
type APIError struct {
	StatusCode int
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("ip lookup error (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("ip lookup error: %v", e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

type ipLookupResponse struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type ipSource struct {
	client    *http.Client
	url       string
	userAgent string
}

// NewIPSource returns a source that geolocates the host's public IP. A nil client
// uses http.DefaultClient; an empty url uses DefaultIPLookupURL.
func NewIPSource(client *http.Client, url, userAgent string) domain.PositionSource {
	if client == nil {
		client = http.DefaultClient
	}
	if url == "" {
		url = DefaultIPLookupURL
	}
	return &ipSource{client: client, url: url, userAgent: userAgent}
}

// CurrentPosition ignores accuracy: an IP lookup only has one precision.
func (s *ipSource) CurrentPosition(ctx context.Context, _ domain.Accuracy) (domain.Coordinate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("failed to create request: %w", err)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("failed to reach ip lookup: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return domain.Coordinate{}, &APIError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status code %d", resp.StatusCode),
		}
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		return domain.Coordinate{}, &APIError{
			Err: fmt.Errorf("unexpected content-type: %s (expected application/json)", ct),
		}
	}

	var data ipLookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return domain.Coordinate{}, &APIError{Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if data.Latitude == nil || data.Longitude == nil {
		return domain.Coordinate{}, &APIError{Err: fmt.Errorf("response has no coordinates")}
	}
	return domain.NewCoordinate(*data.Latitude, *data.Longitude), nil
}
