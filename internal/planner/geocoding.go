package planner

import (
	"context"

	"github.com/google/uuid"

	"github.com/Luks9/geo-rota/internal/domain/apperr"
	"github.com/Luks9/geo-rota/internal/domain/entity"
	"github.com/Luks9/geo-rota/internal/geocode"
)

// GeocodeEmployees resolves a coordinate for every candidate's home address,
// failing the whole operation (wrapped as a ValidationError) the moment one
// address cannot be geocoded, per spec.md §7's GeocodeError boundary rule.
func GeocodeEmployees(ctx context.Context, geocoder geocode.Geocoder, employees []*entity.Employee) (map[uuid.UUID]entity.Coordinates, error) {
	coordinates := make(map[uuid.UUID]entity.Coordinates, len(employees))
	for _, e := range employees {
		coords, err := geocoder.Geocode(ctx, e.Address())
		if err != nil {
			return nil, apperr.NewValidationError("failed to geocode " + e.FullName + ": " + err.Error())
		}
		coordinates[e.ID] = coords
	}
	return coordinates, nil
}
