// Package ephemeris provides the celestial position backends: a remote
// ephemeris API client covering the full ten-body set, and a built-in
// Meeus-based provider covering the Sun and Moon for deployments without a
// remote backend.
package ephemeris

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/astromapa/natal-chart-service/internal/domain"
)

// Client implements domain.EphemerisProvider against a remote positions API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a remote ephemeris client. token may be empty for
// unauthenticated backends.
func NewClient(baseURL, token string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Bodies returns the full ten-body chart set.
func (c *Client) Bodies() []string { return domain.AllBodies }

// Positions requests geocentric ecliptic longitudes for every tracked body
// at the given instant. The response must cover the full body set; a missing
// or unknown body maps to domain.ErrEphemeris.
func (c *Client) Positions(ctx context.Context, utc time.Time, coord domain.GeoCoordinate) ([]domain.BodyPosition, error) {
	reqBody := positionsRequest{
		UTC:       utc.Format(time.RFC3339),
		Latitude:  coord.Latitude,
		Longitude: coord.Longitude,
		Bodies:    c.Bodies(),
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("serialize positions request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/positions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEphemeris, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrEphemeris, resp.StatusCode, body)
	}

	var parsed positionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrEphemeris, err)
	}

	return c.orderPositions(parsed.Positions)
}

// orderPositions maps the response onto the fixed body order and normalizes
// longitudes. Every tracked body must be present exactly once.
func (c *Client) orderPositions(raw []positionEntry) ([]domain.BodyPosition, error) {
	byBody := make(map[string]float64, len(raw))
	for _, p := range raw {
		byBody[p.Body] = p.Longitude
	}

	out := make([]domain.BodyPosition, 0, len(c.Bodies()))
	for _, body := range c.Bodies() {
		lon, ok := byBody[body]
		if !ok {
			return nil, fmt.Errorf("%w: body %q missing from response", domain.ErrEphemeris, body)
		}
		out = append(out, domain.BodyPosition{
			Body:      body,
			Longitude: domain.NormalizeLongitude(lon),
		})
	}
	return out, nil
}

// Remote API wire types.

type positionsRequest struct {
	UTC       string   `json:"utc"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Bodies    []string `json:"bodies"`
}

type positionsResponse struct {
	Positions []positionEntry `json:"positions"`
}

type positionEntry struct {
	Body      string  `json:"body"`
	Longitude float64 `json:"longitude"`
}
