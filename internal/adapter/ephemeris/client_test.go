package ephemeris

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astromapa/natal-chart-service/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var testInstant = time.Date(1990, time.March, 15, 17, 30, 0, 0, time.UTC)

func fullResponse() positionsResponse {
	resp := positionsResponse{}
	for i, body := range domain.AllBodies {
		resp.Positions = append(resp.Positions, positionEntry{
			Body:      body,
			Longitude: float64(i) * 33.3,
		})
	}
	return resp
}

func TestClient_Positions_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/positions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req positionsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "1990-03-15T17:30:00Z", req.UTC)
		assert.Equal(t, domain.AllBodies, req.Bodies)

		require.NoError(t, json.NewEncoder(w).Encode(fullResponse()))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", 5*time.Second, testLogger())

	positions, err := c.Positions(context.Background(), testInstant, domain.GeoCoordinate{Latitude: -23.55, Longitude: -46.63})

	require.NoError(t, err)
	require.Len(t, positions, len(domain.AllBodies))
	for i, pos := range positions {
		assert.Equal(t, domain.AllBodies[i], pos.Body)
		assert.GreaterOrEqual(t, pos.Longitude, 0.0)
		assert.Less(t, pos.Longitude, 360.0)
	}
}

func TestClient_Positions_ReordersAndNormalizes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		resp := fullResponse()
		// Shuffle order and push one longitude out of range.
		resp.Positions[0], resp.Positions[9] = resp.Positions[9], resp.Positions[0]
		resp.Positions[9].Longitude = 390.5 // Sol, now last
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 5*time.Second, testLogger())

	positions, err := c.Positions(context.Background(), testInstant, domain.GeoCoordinate{})

	require.NoError(t, err)
	assert.Equal(t, domain.BodySun, positions[0].Body)
	assert.InDelta(t, 30.5, positions[0].Longitude, 1e-9)
}

func TestClient_Positions_MissingBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		resp := fullResponse()
		resp.Positions = resp.Positions[:9] // drop Plutão
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 5*time.Second, testLogger())

	_, err := c.Positions(context.Background(), testInstant, domain.GeoCoordinate{})
	assert.ErrorIs(t, err, domain.ErrEphemeris)
}

func TestClient_Positions_BackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 5*time.Second, testLogger())

	_, err := c.Positions(context.Background(), testInstant, domain.GeoCoordinate{})
	assert.ErrorIs(t, err, domain.ErrEphemeris)
}

func TestClient_Positions_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"positions": "nope"`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 5*time.Second, testLogger())

	_, err := c.Positions(context.Background(), testInstant, domain.GeoCoordinate{})
	assert.ErrorIs(t, err, domain.ErrEphemeris)
}
