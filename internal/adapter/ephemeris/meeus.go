package ephemeris

import (
	"context"
	"time"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/solar"

	"github.com/astromapa/natal-chart-service/internal/domain"
)

// MeeusProvider computes apparent geocentric positions for the Sun and Moon
// with the Meeus analytic series. It needs no network and no data files, at
// the cost of covering only the luminaries; planets require the remote API.
type MeeusProvider struct{}

// NewMeeusProvider creates the built-in provider.
func NewMeeusProvider() *MeeusProvider { return &MeeusProvider{} }

// Bodies returns the reduced luminary set.
func (p *MeeusProvider) Bodies() []string {
	return []string{domain.BodySun, domain.BodyMoon}
}

// Positions computes the Sun's and Moon's apparent ecliptic longitudes at
// the given UTC instant. The observer coordinate is unused: the series is
// geocentric, and at chart precision (hundredths of a degree) topocentric
// parallax is negligible for sign mapping.
func (p *MeeusProvider) Positions(_ context.Context, utc time.Time, _ domain.GeoCoordinate) ([]domain.BodyPosition, error) {
	jde := julian.TimeToJD(utc)

	sunLon := solar.ApparentLongitude(base.J2000Century(jde))
	moonLon, _, _ := moonposition.Position(jde)

	return []domain.BodyPosition{
		{Body: domain.BodySun, Longitude: domain.NormalizeLongitude(sunLon.Deg())},
		{Body: domain.BodyMoon, Longitude: domain.NormalizeLongitude(moonLon.Deg())},
	}, nil
}
