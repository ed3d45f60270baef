package ephemeris

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astromapa/natal-chart-service/internal/domain"
)

// angularDistance returns the shortest separation between two longitudes.
func angularDistance(a, b float64) float64 {
	d := math.Abs(domain.NormalizeLongitude(a) - domain.NormalizeLongitude(b))
	if d > 180 {
		d = 360 - d
	}
	return d
}

func TestMeeusProvider_Bodies(t *testing.T) {
	p := NewMeeusProvider()
	assert.Equal(t, []string{domain.BodySun, domain.BodyMoon}, p.Bodies())
}

func TestMeeusProvider_Positions_InRange(t *testing.T) {
	p := NewMeeusProvider()

	positions, err := p.Positions(context.Background(),
		time.Date(1990, time.March, 15, 17, 30, 0, 0, time.UTC),
		domain.GeoCoordinate{Latitude: -23.55, Longitude: -46.63})

	require.NoError(t, err)
	require.Len(t, positions, 2)
	for _, pos := range positions {
		assert.GreaterOrEqual(t, pos.Longitude, 0.0)
		assert.Less(t, pos.Longitude, 360.0)
	}
	assert.Equal(t, domain.BodySun, positions[0].Body)
	assert.Equal(t, domain.BodyMoon, positions[1].Body)
}

func TestMeeusProvider_SunAtEquinox(t *testing.T) {
	// At the March equinox the Sun's apparent longitude crosses 0° Áries.
	// 2024 equinox: 2024-03-20 03:06 UTC.
	p := NewMeeusProvider()

	positions, err := p.Positions(context.Background(),
		time.Date(2024, time.March, 20, 3, 6, 0, 0, time.UTC),
		domain.GeoCoordinate{})

	require.NoError(t, err)
	sun := positions[0]
	assert.Less(t, angularDistance(sun.Longitude, 0), 0.5,
		"sun longitude %.4f should sit at the Áries point", sun.Longitude)
}

func TestMeeusProvider_SunAtSolstice(t *testing.T) {
	// June solstice 2024: 2024-06-20 20:51 UTC, solar longitude 90°.
	p := NewMeeusProvider()

	positions, err := p.Positions(context.Background(),
		time.Date(2024, time.June, 20, 20, 51, 0, 0, time.UTC),
		domain.GeoCoordinate{})

	require.NoError(t, err)
	sun := positions[0]
	assert.Less(t, angularDistance(sun.Longitude, 90), 0.5,
		"sun longitude %.4f should sit at the Câncer point", sun.Longitude)
	assert.Equal(t, "Câncer", domain.SignOf(sun.Longitude).Sign)
}

func TestMeeusProvider_MoonMovesBetweenDays(t *testing.T) {
	// The Moon advances roughly 13° per day; consecutive days must differ.
	p := NewMeeusProvider()

	day1, err := p.Positions(context.Background(),
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), domain.GeoCoordinate{})
	require.NoError(t, err)
	day2, err := p.Positions(context.Background(),
		time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC), domain.GeoCoordinate{})
	require.NoError(t, err)

	moved := angularDistance(day1[1].Longitude, day2[1].Longitude)
	assert.Greater(t, moved, 10.0)
	assert.Less(t, moved, 16.0)
}
