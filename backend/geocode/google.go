// Package geocode implements reverse geocoders for the lookup orchestrator.
package geocode

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"googlemaps.github.io/maps"

	"countryclick/backend/lookup"
)

// GoogleConfig configures the Google Maps geocoding client.
type GoogleConfig struct {
	APIKey     string
	BaseURL    string // empty uses maps.googleapis.com
	HTTPClient *http.Client
	RateLimit  int // requests per second, 0 keeps the client default
}

// Google reverse geocodes through the Google Maps Geocoding API.
type Google struct {
	client *maps.Client
}

func NewGoogle(cfg GoogleConfig) (*Google, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("google geocoder: missing API key")
	}

	opts := []maps.ClientOption{maps.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, maps.WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, maps.WithHTTPClient(cfg.HTTPClient))
	}
	if cfg.RateLimit > 0 {
		opts = append(opts, maps.WithRateLimit(cfg.RateLimit))
	}

	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("google geocoder: %w", err)
	}
	return &Google{client: client}, nil
}

// ReverseGeocode returns the country component of the first result.
// A non-OK status, including ZERO_RESULTS, is reported as an error.
func (g *Google) ReverseGeocode(ctx context.Context, c lookup.Coordinate) (lookup.Place, error) {
	results, err := g.client.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng:   &maps.LatLng{Lat: c.Lat, Lng: c.Lng},
		Language: "en",
	})
	if err != nil {
		return lookup.Place{}, err
	}
	if len(results) == 0 {
		return lookup.Place{}, errors.New("ZERO_RESULTS")
	}
	return countryFromComponents(results[0].AddressComponents), nil
}

func countryFromComponents(components []maps.AddressComponent) lookup.Place {
	for _, component := range components {
		for _, t := range component.Types {
			if t == "country" {
				return lookup.Place{Country: component.LongName, CountryCode: component.ShortName}
			}
		}
	}
	return lookup.Place{}
}
