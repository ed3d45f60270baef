package domain

import (
	"context"
	"time"
)

// BirthQuery is a validated chart request: the civil birth moment and the
// free-text birth place.
type BirthQuery struct {
	Name    string
	Year    int
	Month   time.Month
	Day     int
	Hour    int
	Minute  int
	Place   string
	Country string // optional, narrows geocoding
}

// GeoCoordinate is a WGS-84 latitude/longitude pair.
type GeoCoordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// BodyPosition is one celestial body's ecliptic longitude at an instant.
type BodyPosition struct {
	Body      string  `json:"body"`
	Longitude float64 `json:"longitude"`
}

// SignedDegree locates an ecliptic longitude inside its zodiac sector.
type SignedDegree struct {
	Sign   string
	Degree float64 // degrees within the sign, [0,30)
}

// ChartResult is an assembled natal chart. Planets holds one formatted line
// per tracked body, in the provider's fixed zodiacal order. Signs holds the
// summary lines (solar and lunar sign) when those bodies are tracked.
type ChartResult struct {
	Subject     string
	Planets     []string
	Signs       []string
	Coordinate  GeoCoordinate
	Timezone    string
	UTC         time.Time
	Total       int64 // access counter value after this chart
	GeneratedAt time.Time
}

// ChartComputedEvent is the audit record published after a successful
// chart computation.
type ChartComputedEvent struct {
	ID          string        `json:"id"`
	Subject     string        `json:"subject,omitempty"`
	Place       string        `json:"place"`
	Country     string        `json:"country,omitempty"`
	Coordinate  GeoCoordinate `json:"coordinate"`
	Timezone    string        `json:"timezone"`
	UTC         time.Time     `json:"utc"`
	BodyCount   int           `json:"body_count"`
	GeneratedAt time.Time     `json:"generated_at"`
}

// Geocoder resolves a free-text place name to a coordinate.
type Geocoder interface {
	// Geocode returns the best match for "place, country".
	// Fails with ErrLocationNotFound when nothing matches.
	Geocode(ctx context.Context, place, country string) (GeoCoordinate, error)
}

// TimezoneResolver maps a coordinate to an IANA timezone identifier.
type TimezoneResolver interface {
	// Resolve fails with ErrTimezoneNotFound when no zone covers the
	// coordinate (open ocean, poles).
	Resolve(ctx context.Context, coord GeoCoordinate) (string, error)
}

// EphemerisProvider reports ecliptic longitudes for a fixed body set.
type EphemerisProvider interface {
	// Bodies returns the tracked body names in chart order. The slice is
	// fixed for the provider's lifetime.
	Bodies() []string

	// Positions returns one BodyPosition per tracked body, in Bodies()
	// order, for the given UTC instant and observer coordinate.
	// Fails with ErrEphemeris when the backend cannot compute a body.
	Positions(ctx context.Context, utc time.Time, coord GeoCoordinate) ([]BodyPosition, error)
}

// AccessCounter is a durable increment-and-read counter. Implementations
// must not lose updates under concurrent Increment calls.
type AccessCounter interface {
	Increment(ctx context.Context) (int64, error)
	Read(ctx context.Context) (int64, error)
}

// ChartPublisher delivers audit events for computed charts.
type ChartPublisher interface {
	PublishChartComputed(ctx context.Context, event ChartComputedEvent) error
}
