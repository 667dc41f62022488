package places

import (
	"context"
	"errors"

	"googlemaps.github.io/maps"
)

// Place is one point-of-interest result from the places collaborator.
// A Rating of 0 means the place is unrated; PlaceID may be empty.
type Place struct {
	Name     string
	Rating   float64
	Vicinity string
	Lat      float64
	Lng      float64
	PlaceID  string
}

// Finder defines the interface for the nearby-places collaborator.
type Finder interface {
	Nearby(ctx context.Context, lat, lng float64, radius uint, keyword string) ([]Place, error)
}

type googleFinder struct {
	client *maps.Client
}

// NewGoogleFinder creates a Finder backed by the Google Maps Places API.
// It fails when the credential is missing; callers that want a degraded
// service should fall back to NewDisabledFinder.
func NewGoogleFinder(apiKey string) (Finder, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &googleFinder{client: client}, nil
}

func (f *googleFinder) Nearby(ctx context.Context, lat, lng float64, radius uint, keyword string) ([]Place, error) {
	req := &maps.NearbySearchRequest{
		Location: &maps.LatLng{Lat: lat, Lng: lng},
		Radius:   radius,
		Type:     maps.PlaceTypeRestaurant,
		Keyword:  keyword,
	}

	resp, err := f.client.NearbySearch(ctx, req)
	if err != nil {
		return nil, err
	}

	results := make([]Place, 0, len(resp.Results))
	for _, r := range resp.Results {
		results = append(results, Place{
			Name:     r.Name,
			Rating:   float64(r.Rating),
			Vicinity: r.Vicinity,
			Lat:      r.Geometry.Location.Lat,
			Lng:      r.Geometry.Location.Lng,
			PlaceID:  r.PlaceID,
		})
	}
	return results, nil
}

// ErrDisabled is returned by the disabled finder on every lookup.
var ErrDisabled = errors.New("places client not configured")

type disabledFinder struct{}

// NewDisabledFinder returns a Finder whose lookups always fail. It is used
// when no maps credential is configured, so that the caller's recoverable
// failure path degrades the feature instead of the whole service.
func NewDisabledFinder() Finder {
	return disabledFinder{}
}

func (disabledFinder) Nearby(ctx context.Context, lat, lng float64, radius uint, keyword string) ([]Place, error) {
	return nil, ErrDisabled
}
