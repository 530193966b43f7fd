package planner

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Luks9/geo-rota/internal/domain/apperr"
	"github.com/Luks9/geo-rota/internal/domain/entity"
	"github.com/Luks9/geo-rota/internal/domain/repository"
)

// CheckEmployeeConflicts implements the employee half of C10's double-
// booking scan (spec.md §4.7): none of employeeIDs may already be booked
// (as driver or passenger) on a non-canceled route for (date, shift),
// except routes listed in ignore. Writes an ErrorLog on the first hit.
func CheckEmployeeConflicts(ctx context.Context, routes repository.RouteRepository, employeeIDs []uuid.UUID, date time.Time, shift entity.Shift, ignore []uuid.UUID) error {
	for _, id := range employeeIDs {
		conflict, err := routes.ConflictForEmployee(ctx, id, date, shift, ignore)
		if err != nil {
			return apperr.NewRepositoryError("employee conflict check", err)
		}
		if conflict {
			logConflict(ctx, routes, apperr.NewEmployeeConflict(id))
			return apperr.NewEmployeeConflict(id)
		}
	}
	return nil
}

// CheckVehicleConflict implements the vehicle half of C10's scan.
func CheckVehicleConflict(ctx context.Context, routes repository.RouteRepository, vehicleID uuid.UUID, date time.Time, shift entity.Shift, ignore []uuid.UUID) error {
	conflict, err := routes.ConflictForVehicle(ctx, vehicleID, date, shift, ignore)
	if err != nil {
		return apperr.NewRepositoryError("vehicle conflict check", err)
	}
	if conflict {
		logConflict(ctx, routes, apperr.NewVehicleConflict(vehicleID))
		return apperr.NewVehicleConflict(vehicleID)
	}
	return nil
}

func logConflict(ctx context.Context, routes repository.RouteRepository, conflictErr error) {
	_ = routes.CreateErrorLog(ctx, entity.NewErrorLog(nil, entity.ContextConflict, conflictErr.Error()))
}

// DenseBoardingOrders assigns boarding_order = 0 to the driver and 1..k to
// passengers in the given order, forming the contiguous range spec.md §8
// requires.
func DenseBoardingOrders(driverID uuid.UUID, passengerIDsInOrder []uuid.UUID) map[uuid.UUID]int {
	orders := make(map[uuid.UUID]int, len(passengerIDsInOrder)+1)
	orders[driverID] = 0
	for i, id := range passengerIDsInOrder {
		orders[id] = i + 1
	}
	return orders
}
