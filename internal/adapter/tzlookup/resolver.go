// Package tzlookup implements domain.TimezoneResolver over the embedded
// timezone-boundary dataset shipped with the tzf library. Lookups are pure
// in-process polygon queries; no network is involved.
package tzlookup

import (
	"context"
	"fmt"

	"github.com/ringsaturn/tzf"

	"github.com/astromapa/natal-chart-service/internal/domain"
)

// Resolver maps coordinates to IANA timezone identifiers.
type Resolver struct {
	finder tzf.F
}

// NewResolver loads the embedded timezone boundary data. The data set is a
// few megabytes; construct once at startup and share.
func NewResolver() (*Resolver, error) {
	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, fmt.Errorf("load timezone data: %w", err)
	}
	return &Resolver{finder: finder}, nil
}

// Resolve returns the IANA zone covering the coordinate, or
// domain.ErrTimezoneNotFound for uncovered points (open ocean, poles).
func (r *Resolver) Resolve(_ context.Context, coord domain.GeoCoordinate) (string, error) {
	// tzf takes longitude first.
	name := r.finder.GetTimezoneName(coord.Longitude, coord.Latitude)
	if name == "" {
		return "", fmt.Errorf("%w: %.4f,%.4f", domain.ErrTimezoneNotFound, coord.Latitude, coord.Longitude)
	}
	return name, nil
}
