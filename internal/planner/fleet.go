package planner

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Luks9/geo-rota/internal/domain/apperr"
	"github.com/Luks9/geo-rota/internal/domain/entity"
	"github.com/Luks9/geo-rota/internal/domain/repository"
)

// SelectVehicle implements C6's single-vehicle path (spec.md §4.5 step 6):
// among fleet candidates covering (date, group) with usable capacity large
// enough for the roster, pick the manual choice if given (it must qualify),
// otherwise sort by (cost_factor, -capacity) and take the first. A nil
// result (no error) means "proceed without a vehicle" per spec.md step 6's
// no-qualifier branch.
func SelectVehicle(ctx context.Context, availabilities repository.VehicleAvailabilityRepository, companyID, groupID uuid.UUID, date time.Time, neededSeats int, manualVehicleID *uuid.UUID) (*repository.FleetCandidate, error) {
	fleet, err := availabilities.FleetFor(ctx, companyID, groupID, date, true)
	if err != nil {
		return nil, apperr.NewRepositoryError("fleet lookup", err)
	}

	var qualifying []repository.FleetCandidate
	for _, candidate := range fleet {
		if !candidate.Availability.Covers(date, groupID) {
			continue
		}
		if candidate.Vehicle.UsableCapacity()+1 < neededSeats {
			continue
		}
		qualifying = append(qualifying, candidate)
	}

	if manualVehicleID != nil {
		for _, candidate := range qualifying {
			if candidate.Vehicle.ID == *manualVehicleID {
				chosen := candidate
				return &chosen, nil
			}
		}
		return nil, apperr.NewValidationError("manual vehicle is not in the qualifying fleet for this date and capacity")
	}

	if len(qualifying) == 0 {
		return nil, nil
	}

	sort.Slice(qualifying, func(i, j int) bool {
		fi, fj := qualifying[i].Vehicle.CostTier.Factor(), qualifying[j].Vehicle.CostTier.Factor()
		if fi != fj {
			return fi < fj
		}
		return qualifying[i].Vehicle.UsableCapacity() > qualifying[j].Vehicle.UsableCapacity()
	})

	chosen := qualifying[0]
	return &chosen, nil
}

// FleetForVRP implements §4.6a: covering availabilities for the group (or
// group-agnostic ones), optionally excluding rentals, filtered to usable
// capacity > 0 and an allow-list, sorted by (is_rental, cost_factor,
// -usable_capacity), truncated to maxVehicles.
func FleetForVRP(ctx context.Context, availabilities repository.VehicleAvailabilityRepository, companyID, groupID uuid.UUID, date time.Time, includeRentals bool, allowedVehicleIDs []uuid.UUID, maxVehicles int) ([]repository.FleetCandidate, error) {
	fleet, err := availabilities.FleetFor(ctx, companyID, groupID, date, includeRentals)
	if err != nil {
		return nil, apperr.NewRepositoryError("fleet enumeration", err)
	}

	var allowSet map[uuid.UUID]bool
	if len(allowedVehicleIDs) > 0 {
		allowSet = make(map[uuid.UUID]bool, len(allowedVehicleIDs))
		for _, id := range allowedVehicleIDs {
			allowSet[id] = true
		}
	}

	var result []repository.FleetCandidate
	for _, candidate := range fleet {
		if !candidate.Availability.Covers(date, groupID) {
			continue
		}
		if !includeRentals && candidate.Availability.IsRental() {
			continue
		}
		if candidate.Vehicle.UsableCapacity() <= 0 {
			continue
		}
		if allowSet != nil && !allowSet[candidate.Vehicle.ID] {
			continue
		}
		result = append(result, candidate)
	}

	sort.Slice(result, func(i, j int) bool {
		ri, rj := result[i].Availability.IsRental(), result[j].Availability.IsRental()
		if ri != rj {
			return !ri
		}
		fi, fj := result[i].Vehicle.CostTier.Factor(), result[j].Vehicle.CostTier.Factor()
		if fi != fj {
			return fi < fj
		}
		return result[i].Vehicle.UsableCapacity() > result[j].Vehicle.UsableCapacity()
	})

	if maxVehicles > 0 && len(result) > maxVehicles {
		result = result[:maxVehicles]
	}

	return result, nil
}

var (
	// ErrEmptyFleet signals §4.6 step 2's fleet-enumeration failure mode.
	ErrEmptyFleet = apperr.NewValidationError("no vehicles available for this group and date")
)
