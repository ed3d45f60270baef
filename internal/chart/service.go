// Package chart orchestrates the natal chart assembly pipeline:
// geocode → timezone → civil-to-UTC → ephemeris → sign mapping →
// interpretation, producing one formatted line per tracked body.
package chart

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/astromapa/natal-chart-service/internal/domain"
	"github.com/astromapa/natal-chart-service/internal/observability"
)

// Service assembles charts from its collaborators. Counter and publisher
// are optional; when nil the corresponding side effect is skipped.
type Service struct {
	geocoder  domain.Geocoder
	timezones domain.TimezoneResolver
	ephemeris domain.EphemerisProvider
	counter   domain.AccessCounter
	publisher domain.ChartPublisher
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewService wires the assembly pipeline.
func NewService(
	geocoder domain.Geocoder,
	timezones domain.TimezoneResolver,
	ephemeris domain.EphemerisProvider,
	counter domain.AccessCounter,
	publisher domain.ChartPublisher,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *Service {
	return &Service{
		geocoder:  geocoder,
		timezones: timezones,
		ephemeris: ephemeris,
		counter:   counter,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness verifies the durable counter store is reachable.
func (s *Service) CheckReadiness(ctx context.Context) error {
	if s.counter == nil {
		return nil
	}
	if _, err := s.counter.Read(ctx); err != nil {
		return fmt.Errorf("counter store: %w", err)
	}
	return nil
}

// Assemble runs the full pipeline for one birth query. Any failing stage
// aborts the whole assembly: no partial result, no counter increment, no
// audit event.
func (s *Service) Assemble(ctx context.Context, q domain.BirthQuery) (domain.ChartResult, error) {
	coord, err := timed(s.metrics, "geocode", func() (domain.GeoCoordinate, error) {
		return s.geocoder.Geocode(ctx, q.Place, q.Country)
	})
	if err != nil {
		return domain.ChartResult{}, fmt.Errorf("geocode %q: %w", q.Place, err)
	}

	tzID, err := timed(s.metrics, "timezone", func() (string, error) {
		return s.timezones.Resolve(ctx, coord)
	})
	if err != nil {
		return domain.ChartResult{}, fmt.Errorf("timezone for %.4f,%.4f: %w", coord.Latitude, coord.Longitude, err)
	}

	utc, err := domain.CivilToUTC(q.Year, q.Month, q.Day, q.Hour, q.Minute, tzID)
	if err != nil {
		return domain.ChartResult{}, err
	}

	positions, err := timed(s.metrics, "ephemeris", func() ([]domain.BodyPosition, error) {
		return s.ephemeris.Positions(ctx, utc, coord)
	})
	if err != nil {
		return domain.ChartResult{}, fmt.Errorf("positions at %s: %w", utc.Format(time.RFC3339), err)
	}

	result := domain.ChartResult{
		Subject:     q.Name,
		Coordinate:  coord,
		Timezone:    tzID,
		UTC:         utc,
		GeneratedAt: domain.Now(),
	}

	for _, pos := range positions {
		sd := domain.SignOf(pos.Longitude)
		text := domain.InterpretationOf(pos.Body, sd.Sign)
		result.Planets = append(result.Planets, domain.FormatBodyLine(pos.Body, sd, text))

		switch pos.Body {
		case domain.BodySun:
			result.Signs = append(result.Signs, "Signo Solar: "+sd.Sign)
		case domain.BodyMoon:
			result.Signs = append(result.Signs, "Signo Lunar: "+sd.Sign)
		}
	}

	result.Total = s.recordAccess(ctx)
	s.metrics.ChartsComputed.Inc()
	s.publishAudit(ctx, q, result, len(positions))

	s.logger.Info("chart assembled",
		"place", q.Place,
		"timezone", tzID,
		"utc", utc.Format(time.RFC3339),
		"bodies", len(positions),
	)

	return result, nil
}

// recordAccess increments the durable counter. Failures are logged, not
// surfaced: the chart is already computed and telemetry must not fail the
// request.
func (s *Service) recordAccess(ctx context.Context) int64 {
	if s.counter == nil {
		return 0
	}
	total, err := s.counter.Increment(ctx)
	if err != nil {
		s.logger.Error("access counter increment failed", "error", err)
		return 0
	}
	s.metrics.AccessTotal.Set(float64(total))
	return total
}

func (s *Service) publishAudit(ctx context.Context, q domain.BirthQuery, result domain.ChartResult, bodies int) {
	if s.publisher == nil {
		return
	}
	event := domain.ChartComputedEvent{
		ID:          uuid.New().String(),
		Subject:     q.Name,
		Place:       q.Place,
		Country:     q.Country,
		Coordinate:  result.Coordinate,
		Timezone:    result.Timezone,
		UTC:         result.UTC,
		BodyCount:   bodies,
		GeneratedAt: result.GeneratedAt,
	}
	if err := s.publisher.PublishChartComputed(ctx, event); err != nil {
		s.logger.Warn("audit publish failed", "error", err, "event_id", event.ID)
	}
}

// timed runs one external stage and records its duration.
func timed[T any](m *observability.Metrics, stage string, fn func() (T, error)) (T, error) {
	start := time.Now()
	v, err := fn()
	m.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
	return v, err
}
