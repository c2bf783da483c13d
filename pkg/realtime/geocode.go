package realtime

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// ErrLocationNotFound is returned when the geocoder has no match for a place.
var ErrLocationNotFound = errors.New("location not found")

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Geocoder resolves a free-text place name to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, place string) (Coordinates, error)
}

// NominatimGeocoder queries an OpenStreetMap Nominatim search endpoint.
type NominatimGeocoder struct {
	BaseURL   string
	UserAgent string
	HTTP      *http.Client
}

// Geocode returns the coordinates of the best match for place.
func (g *NominatimGeocoder) Geocode(ctx context.Context, place string) (Coordinates, error) {
	place = strings.TrimSpace(place)
	if place == "" {
		return Coordinates{}, fmt.Errorf("geocode: %w: empty place name", ErrLocationNotFound)
	}

	query := url.Values{}
	query.Set("q", place)
	query.Set("format", "json")
	query.Set("limit", "1")
	header := http.Header{}
	if g.UserAgent != "" {
		header.Set("User-Agent", g.UserAgent)
	}

	body, err := getJSON(ctx, g.HTTP, g.BaseURL, "/search", query, header)
	if err != nil {
		return Coordinates{}, fmt.Errorf("geocode %q: %w", place, err)
	}

	first := body.Get("0")
	if !first.Exists() {
		return Coordinates{}, fmt.Errorf("geocode %q: %w", place, ErrLocationNotFound)
	}
	lat, lon := first.Get("lat"), first.Get("lon")
	if !lat.Exists() || !lon.Exists() {
		return Coordinates{}, fmt.Errorf("geocode %q: %w: missing lat/lon", place, ErrMalformedResponse)
	}
	// Nominatim encodes coordinates as strings; Float parses either form.
	return Coordinates{Lat: lat.Float(), Lon: lon.Float()}, nil
}
