package planner

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/Luks9/geo-rota/internal/domain/apperr"
	"github.com/Luks9/geo-rota/internal/domain/entity"
	"github.com/Luks9/geo-rota/internal/domain/repository"
	"github.com/Luks9/geo-rota/internal/geocode"
)

// DestinationInput is the destination half of a planning request: either an
// existing destination id, or the full set of address fields to create one
// inline (spec.md §4.5 step 3).
type DestinationInput struct {
	ExistingID   *uuid.UUID
	Name         string
	Street       string
	Number       string
	Complement   string
	Neighborhood string
	City         string
	State        string
	Zip          string
}

// ResolveDestination implements §4.5 step 3 and the destination half of §4.8
// "Set destination": resolve by id, geocoding missing coordinates, or build
// a new Destination from address fields with the state uppercased and the
// zip stripped of spaces, then geocode it. Shared by the single-vehicle
// planner, the VRP planner, and the set-destination edit operation.
func ResolveDestination(ctx context.Context, destinations repository.DestinationRepository, geocoder geocode.Geocoder, companyID uuid.UUID, input DestinationInput) (*entity.Destination, error) {
	if input.ExistingID != nil {
		dest, err := destinations.GetByID(ctx, *input.ExistingID)
		if err != nil {
			return nil, apperr.NewRepositoryError("destination lookup", err)
		}
		if dest == nil || dest.CompanyID != companyID {
			return nil, apperr.NewValidationError("destination does not belong to the selected company")
		}
		if !dest.HasCoordinates() {
			coords, err := geocoder.Geocode(ctx, dest.Address())
			if err != nil {
				return nil, apperr.NewValidationError("failed to geocode existing destination: " + err.Error())
			}
			dest.SetCoordinates(coords.Latitude, coords.Longitude)
			if err := destinations.Update(ctx, dest); err != nil {
				return nil, apperr.NewRepositoryError("destination update", err)
			}
		}
		return dest, nil
	}

	if strings.TrimSpace(input.Street) == "" || strings.TrimSpace(input.Number) == "" ||
		strings.TrimSpace(input.Neighborhood) == "" || strings.TrimSpace(input.City) == "" ||
		strings.TrimSpace(input.State) == "" || strings.TrimSpace(input.Zip) == "" {
		return nil, apperr.NewValidationError("destination address fields are incomplete")
	}

	name := strings.TrimSpace(input.Name)
	state := strings.ToUpper(strings.TrimSpace(input.State))
	zip := strings.ReplaceAll(strings.TrimSpace(input.Zip), " ", "")

	dest := entity.NewDestination(companyID, name, strings.TrimSpace(input.Street), strings.TrimSpace(input.Number),
		strings.TrimSpace(input.Neighborhood), strings.TrimSpace(input.City), state, zip)
	if input.Complement != "" {
		complement := strings.TrimSpace(input.Complement)
		dest.Complement = &complement
	}

	coords, err := geocoder.Geocode(ctx, dest.Address())
	if err != nil {
		return nil, apperr.NewValidationError("failed to geocode destination: " + err.Error())
	}
	dest.SetCoordinates(coords.Latitude, coords.Longitude)

	if err := destinations.Create(ctx, dest); err != nil {
		return nil, apperr.NewRepositoryError("destination creation", err)
	}
	return dest, nil
}
