package nominatim

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astromapa/natal-chart-service/internal/domain"
	"github.com/astromapa/natal-chart-service/internal/observability"
)

type countingGeocoder struct {
	calls int
	coord domain.GeoCoordinate
	err   error
}

func (c *countingGeocoder) Geocode(_ context.Context, _, _ string) (domain.GeoCoordinate, error) {
	c.calls++
	return c.coord, c.err
}

func TestCachedGeocoder_HitSkipsBackend(t *testing.T) {
	backend := &countingGeocoder{coord: domain.GeoCoordinate{Latitude: -23.55, Longitude: -46.63}}
	cached := NewCachedGeocoder(backend, 10, observability.NewMetricsForTesting())

	first, err := cached.Geocode(context.Background(), "São Paulo", "Brasil")
	require.NoError(t, err)

	second, err := cached.Geocode(context.Background(), "São Paulo", "Brasil")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, backend.calls)
}

func TestCachedGeocoder_KeyIsCaseInsensitive(t *testing.T) {
	backend := &countingGeocoder{coord: domain.GeoCoordinate{Latitude: 1}}
	cached := NewCachedGeocoder(backend, 10, observability.NewMetricsForTesting())

	_, err := cached.Geocode(context.Background(), "Lisboa", "Portugal")
	require.NoError(t, err)
	_, err = cached.Geocode(context.Background(), "lisboa", "PORTUGAL")
	require.NoError(t, err)

	assert.Equal(t, 1, backend.calls)
}

func TestCachedGeocoder_ErrorsNotCached(t *testing.T) {
	backend := &countingGeocoder{err: errors.New("transient")}
	cached := NewCachedGeocoder(backend, 10, observability.NewMetricsForTesting())

	_, err := cached.Geocode(context.Background(), "São Paulo", "Brasil")
	require.Error(t, err)
	_, err = cached.Geocode(context.Background(), "São Paulo", "Brasil")
	require.Error(t, err)

	assert.Equal(t, 2, backend.calls)
}

func TestLRUCache_EvictsLeastRecentlyUsed(t *testing.T) {
	cache := newLRUCache(2)
	a := domain.GeoCoordinate{Latitude: 1}
	b := domain.GeoCoordinate{Latitude: 2}
	c := domain.GeoCoordinate{Latitude: 3}

	cache.put("a", a)
	cache.put("b", b)

	// Touch "a" so "b" becomes the eviction candidate.
	_, ok := cache.get("a")
	require.True(t, ok)

	cache.put("c", c)

	_, ok = cache.get("b")
	assert.False(t, ok)
	got, ok := cache.get("a")
	assert.True(t, ok)
	assert.Equal(t, a, got)
	got, ok = cache.get("c")
	assert.True(t, ok)
	assert.Equal(t, c, got)
}
