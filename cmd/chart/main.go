// Command chart computes a single natal chart from the command line, using
// the same adapter stack as the server but without the counter or the audit
// publisher.
//
// Usage:
//
//	go run ./cmd/chart \
//	  -nome "Ana" -data 1990-03-15 -hora 14:30 \
//	  -cidade "São Paulo" -pais Brasil
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/astromapa/natal-chart-service/internal/adapter/ephemeris"
	"github.com/astromapa/natal-chart-service/internal/adapter/nominatim"
	"github.com/astromapa/natal-chart-service/internal/adapter/tzlookup"
	"github.com/astromapa/natal-chart-service/internal/chart"
	"github.com/astromapa/natal-chart-service/internal/config"
	"github.com/astromapa/natal-chart-service/internal/domain"
	"github.com/astromapa/natal-chart-service/internal/observability"
)

func main() {
	nome := flag.String("nome", "", "name printed on the chart header")
	data := flag.String("data", "", "birth date, AAAA-MM-DD")
	hora := flag.String("hora", "", "birth time, HH:MM")
	cidade := flag.String("cidade", "", "birth city")
	pais := flag.String("pais", "", "birth country (optional)")
	flag.Parse()

	if *data == "" || *hora == "" || *cidade == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*nome, *data, *hora, *cidade, *pais); code != 0 {
		os.Exit(code)
	}
}

func run(nome, data, hora, cidade, pais string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}

	date, err := time.Parse("2006-01-02", data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "data %q não está no formato AAAA-MM-DD\n", data)
		return 1
	}
	clock, err := time.Parse("15:04", hora)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hora %q não está no formato HH:MM\n", hora)
		return 1
	}

	logger := observability.NewLogger("error", "text")
	metrics := observability.NewMetrics()

	geocoderClient := nominatim.NewClient(cfg.GeocoderURL, cfg.GeocoderUserAgent, cfg.GeocoderTimeout, metrics, logger)
	geocoder := nominatim.NewCachedGeocoder(geocoderClient, cfg.GeocoderCacheSize, metrics)

	timezones, err := tzlookup.NewResolver()
	if err != nil {
		fmt.Fprintf(os.Stderr, "timezone index: %v\n", err)
		return 1
	}

	var provider domain.EphemerisProvider
	if cfg.EphemerisURL != "" {
		provider = ephemeris.NewClient(cfg.EphemerisURL, cfg.EphemerisToken, cfg.EphemerisTimeout, logger)
	} else {
		provider = ephemeris.NewMeeusProvider()
	}

	service := chart.NewService(geocoder, timezones, provider, nil, nil, logger, metrics)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := service.Assemble(ctx, domain.BirthQuery{
		Name:    nome,
		Year:    date.Year(),
		Month:   date.Month(),
		Day:     date.Day(),
		Hour:    clock.Hour(),
		Minute:  clock.Minute(),
		Place:   cidade,
		Country: pais,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "erro: %v\n", err)
		return 1
	}

	if result.Subject != "" {
		fmt.Printf("Mapa Astral de %s\n", result.Subject)
	}
	fmt.Printf("Local: %.4f, %.4f (%s)\n", result.Coordinate.Latitude, result.Coordinate.Longitude, result.Timezone)
	fmt.Printf("UTC: %s\n\n", result.UTC.Format(time.RFC3339))
	for _, line := range result.Planets {
		fmt.Println(line)
	}
	fmt.Println()
	for _, line := range result.Signs {
		fmt.Println(line)
	}
	return 0
}
