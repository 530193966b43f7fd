package geocode

import (
	"context"

	"github.com/Luks9/geo-rota/internal/domain/apperr"
	"github.com/Luks9/geo-rota/internal/domain/entity"
)

// FakeGeocoder is a deterministic address -> coordinate substitute for
// tests, per spec.md §9 ("expose it via a capability interface so tests can
// substitute a deterministic fake").
type FakeGeocoder struct {
	Coordinates map[string]entity.Coordinates
}

func NewFakeGeocoder() *FakeGeocoder {
	return &FakeGeocoder{Coordinates: make(map[string]entity.Coordinates)}
}

func (f *FakeGeocoder) Set(address string, lat, lon float64) {
	f.Coordinates[NormalizeAddress(address)] = entity.Coordinates{Latitude: lat, Longitude: lon}
}

func (f *FakeGeocoder) Geocode(_ context.Context, address string) (entity.Coordinates, error) {
	normalized := NormalizeAddress(address)
	if normalized == "" {
		return entity.Coordinates{}, apperr.NewGeocodeError(address, "empty address")
	}
	coords, ok := f.Coordinates[normalized]
	if !ok {
		return entity.Coordinates{}, apperr.NewGeocodeError(address, "not found: "+address)
	}
	return coords, nil
}
