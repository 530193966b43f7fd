package planner

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Luks9/geo-rota/internal/domain/apperr"
	"github.com/Luks9/geo-rota/internal/domain/entity"
	"github.com/Luks9/geo-rota/internal/domain/repository"
	"github.com/Luks9/geo-rota/internal/geocode"
	"github.com/Luks9/geo-rota/internal/planner/solver"
)

// EditPlanner implements C11's manual edit operations on an existing route.
// Every mutation is wrapped in Routes.WithTx and writes an AdminLog entry.
type EditPlanner struct {
	Employees      repository.EmployeeRepository
	Vehicles       repository.VehicleRepository
	Availabilities repository.VehicleAvailabilityRepository
	Destinations   repository.DestinationRepository
	Routes         repository.RouteRepository
	Geocoder       geocode.Geocoder
}

func (p *EditPlanner) getRoute(ctx context.Context, routeID uuid.UUID) (*entity.Route, error) {
	route, err := p.Routes.GetByID(ctx, routeID)
	if err != nil {
		return nil, apperr.NewRepositoryError("route lookup", err)
	}
	if route == nil {
		return nil, apperr.NewValidationError("unknown route")
	}
	return route, nil
}

func (p *EditPlanner) writeAdminLog(ctx context.Context, routeID uuid.UUID, actor, action string, details *string) error {
	if err := p.Routes.CreateAdminLog(ctx, entity.NewAdminLog(routeID, actor, action, details)); err != nil {
		return apperr.NewRepositoryError("admin log", err)
	}
	return nil
}

// SetDriver implements §4.8 "Set driver".
func (p *EditPlanner) SetDriver(ctx context.Context, routeID uuid.UUID, employeeID uuid.UUID, actor string) error {
	return p.Routes.WithTx(ctx, func(ctx context.Context) error {
		route, err := p.getRoute(ctx, routeID)
		if err != nil {
			return err
		}
		employee, err := p.Employees.GetByID(ctx, employeeID)
		if err != nil {
			return apperr.NewRepositoryError("employee lookup", err)
		}
		if employee == nil || employee.CompanyID != route.CompanyID {
			return apperr.NewValidationError("driver candidate does not belong to the route's company")
		}
		if !employee.IsEligibleDriver() {
			return apperr.NewValidationError("driver candidate is not apt and licensed")
		}
		if err := CheckEmployeeConflicts(ctx, p.Routes, []uuid.UUID{employeeID}, route.Date, route.Shift, []uuid.UUID{routeID}); err != nil {
			return err
		}

		previous := route.DriverID
		route.DriverID = &employeeID
		route.UpdatedAt = time.Now()
		if err := p.Routes.Update(ctx, route); err != nil {
			return apperr.NewRepositoryError("route update", err)
		}

		if err := p.reassignDriverSeat(ctx, route, previous, employeeID); err != nil {
			return err
		}

		return p.writeAdminLog(ctx, routeID, actor, entity.ActionSetDriver, nil)
	})
}

// reassignDriverSeat moves the driver AssignmentRole from the previous
// occupant (if any) to the new driver, preserving boarding order 0.
func (p *EditPlanner) reassignDriverSeat(ctx context.Context, route *entity.Route, previous *uuid.UUID, newDriverID uuid.UUID) error {
	assignments, err := p.Routes.AssignmentsForRoute(ctx, route.ID)
	if err != nil {
		return apperr.NewRepositoryError("assignments lookup", err)
	}
	for _, a := range assignments {
		if a.EmployeeID == newDriverID {
			a.Role = entity.RoleDriver
			order := 0
			a.BoardingOrder = &order
		} else if previous != nil && a.EmployeeID == *previous {
			a.Role = entity.RolePassenger
		} else {
			continue
		}
		if err := p.Routes.DeleteAssignment(ctx, route.ID, a.EmployeeID); err != nil {
			return apperr.NewRepositoryError("assignment removal", err)
		}
		if err := p.Routes.CreateAssignment(ctx, a); err != nil {
			return apperr.NewRepositoryError("assignment creation", err)
		}
	}
	return nil
}

// SetVehicle implements §4.8 "Set vehicle".
func (p *EditPlanner) SetVehicle(ctx context.Context, routeID, vehicleID uuid.UUID, availabilityID *uuid.UUID, actor string) error {
	return p.Routes.WithTx(ctx, func(ctx context.Context) error {
		route, err := p.getRoute(ctx, routeID)
		if err != nil {
			return err
		}
		vehicle, err := p.Vehicles.GetByID(ctx, vehicleID)
		if err != nil {
			return apperr.NewRepositoryError("vehicle lookup", err)
		}
		if vehicle == nil || vehicle.CompanyID != route.CompanyID {
			return apperr.NewValidationError("vehicle does not belong to the route's company")
		}
		if err := CheckVehicleConflict(ctx, p.Routes, vehicleID, route.Date, route.Shift, []uuid.UUID{routeID}); err != nil {
			return err
		}

		resolvedAvailabilityID := route.AvailabilityID
		if availabilityID != nil {
			availability, err := p.Availabilities.GetByID(ctx, *availabilityID)
			if err != nil {
				return apperr.NewRepositoryError("availability lookup", err)
			}
			if availability == nil || availability.VehicleID != vehicleID || !availability.Covers(route.Date, route.GroupID) {
				return apperr.NewValidationError("vehicle availability does not match this route's group and date")
			}
			resolvedAvailabilityID = availabilityID
		}

		route.VehicleID = &vehicleID
		route.AvailabilityID = resolvedAvailabilityID
		route.Status = entity.RouteStatusScheduled
		route.UpdatedAt = time.Now()
		if err := p.Routes.Update(ctx, route); err != nil {
			return apperr.NewRepositoryError("route update", err)
		}

		return p.writeAdminLog(ctx, routeID, actor, entity.ActionSetVehicle, nil)
	})
}

// SetDestination implements §4.8 "Set destination", sharing ResolveDestination
// with §4.5 step 3.
func (p *EditPlanner) SetDestination(ctx context.Context, routeID uuid.UUID, input DestinationInput, actor string) error {
	return p.Routes.WithTx(ctx, func(ctx context.Context) error {
		route, err := p.getRoute(ctx, routeID)
		if err != nil {
			return err
		}
		destination, err := ResolveDestination(ctx, p.Destinations, p.Geocoder, route.CompanyID, input)
		if err != nil {
			return err
		}
		route.DestinationID = destination.ID
		route.UpdatedAt = time.Now()
		if err := p.Routes.Update(ctx, route); err != nil {
			return apperr.NewRepositoryError("route update", err)
		}
		return p.writeAdminLog(ctx, routeID, actor, entity.ActionSetDestination, nil)
	})
}

// SetDateShift implements §4.8 "Set date/shift".
func (p *EditPlanner) SetDateShift(ctx context.Context, routeID uuid.UUID, date time.Time, shift entity.Shift, actor string) error {
	return p.Routes.WithTx(ctx, func(ctx context.Context) error {
		route, err := p.getRoute(ctx, routeID)
		if err != nil {
			return err
		}
		exists, err := p.Routes.RouteExists(ctx, route.CompanyID, route.GroupID, date, shift)
		if err != nil {
			return apperr.NewRepositoryError("route existence check", err)
		}
		if exists {
			return apperr.NewValidationError(entity.ErrRouteAlreadyExists.Error())
		}
		route.Date = date
		route.Shift = shift
		route.UpdatedAt = time.Now()
		if err := p.Routes.Update(ctx, route); err != nil {
			return apperr.NewRepositoryError("route update", err)
		}
		return p.writeAdminLog(ctx, routeID, actor, entity.ActionSetDateShift, nil)
	})
}

// SetStatus implements §4.8 "Set status" — a free transition, no lifecycle
// machine enforced per spec.md.
func (p *EditPlanner) SetStatus(ctx context.Context, routeID uuid.UUID, status entity.RouteStatus, actor string) error {
	return p.Routes.WithTx(ctx, func(ctx context.Context) error {
		route, err := p.getRoute(ctx, routeID)
		if err != nil {
			return err
		}
		route.SetStatus(status)
		if err := p.Routes.Update(ctx, route); err != nil {
			return apperr.NewRepositoryError("route update", err)
		}
		return p.writeAdminLog(ctx, routeID, actor, entity.ActionSetStatus, nil)
	})
}

// ReplacePassengers implements §4.8 "Replace passengers": every id must
// belong to the company and pass the double-booking check; passengers get
// boarding_order 1..k in the order of the caller's list (the driver keeps
// boarding_order 0).
func (p *EditPlanner) ReplacePassengers(ctx context.Context, routeID uuid.UUID, employeeIDs []uuid.UUID, actor string) error {
	return p.Routes.WithTx(ctx, func(ctx context.Context) error {
		route, err := p.getRoute(ctx, routeID)
		if err != nil {
			return err
		}
		for _, id := range employeeIDs {
			employee, err := p.Employees.GetByID(ctx, id)
			if err != nil {
				return apperr.NewRepositoryError("employee lookup", err)
			}
			if employee == nil || employee.CompanyID != route.CompanyID {
				return apperr.NewValidationError("passenger candidate does not belong to the route's company")
			}
		}
		if err := CheckEmployeeConflicts(ctx, p.Routes, employeeIDs, route.Date, route.Shift, []uuid.UUID{routeID}); err != nil {
			return err
		}

		assignments := make([]*entity.Assignment, 0, len(employeeIDs)+1)
		if route.DriverID != nil {
			driverAssignment := entity.NewAssignment(route.ID, *route.DriverID, entity.RoleDriver, 0)
			assignments = append(assignments, driverAssignment)
		}
		for i, id := range employeeIDs {
			assignments = append(assignments, entity.NewAssignment(route.ID, id, entity.RolePassenger, i+1))
		}
		if err := p.Routes.ReplaceAssignments(ctx, route.ID, assignments); err != nil {
			return apperr.NewRepositoryError("assignment replace", err)
		}

		return p.writeAdminLog(ctx, routeID, actor, entity.ActionReplacePassengers, nil)
	})
}

// MovePassengers implements §4.8 "Move passengers between routes": both
// routes must share (date, shift); double-booking is checked ignoring both
// routes; the destination route's boarding_order continues from
// max(current)+1.
func (p *EditPlanner) MovePassengers(ctx context.Context, fromRouteID, toRouteID uuid.UUID, employeeIDs []uuid.UUID, actor string) error {
	return p.Routes.WithTx(ctx, func(ctx context.Context) error {
		from, err := p.getRoute(ctx, fromRouteID)
		if err != nil {
			return err
		}
		to, err := p.getRoute(ctx, toRouteID)
		if err != nil {
			return err
		}
		if from.Date != to.Date || from.Shift != to.Shift {
			return apperr.NewValidationError("both routes must share the same date and shift to move passengers")
		}

		ignore := []uuid.UUID{fromRouteID, toRouteID}
		if err := CheckEmployeeConflicts(ctx, p.Routes, employeeIDs, to.Date, to.Shift, ignore); err != nil {
			return err
		}

		for _, id := range employeeIDs {
			if err := p.Routes.DeleteAssignment(ctx, fromRouteID, id); err != nil {
				return apperr.NewRepositoryError("assignment removal", err)
			}
		}

		destinationAssignments, err := p.Routes.AssignmentsForRoute(ctx, toRouteID)
		if err != nil {
			return apperr.NewRepositoryError("assignments lookup", err)
		}
		next := 0
		for _, a := range destinationAssignments {
			if a.BoardingOrder != nil && *a.BoardingOrder >= next {
				next = *a.BoardingOrder + 1
			}
		}
		for _, id := range employeeIDs {
			a := entity.NewAssignment(toRouteID, id, entity.RolePassenger, next)
			next++
			if err := p.Routes.CreateAssignment(ctx, a); err != nil {
				return apperr.NewRepositoryError("assignment creation", err)
			}
		}

		if err := p.writeAdminLog(ctx, fromRouteID, actor, entity.ActionMovePassengers, nil); err != nil {
			return err
		}
		return p.writeAdminLog(ctx, toRouteID, actor, entity.ActionMovePassengers, nil)
	})
}

// Recalculate implements §4.8 "Recalculate": re-geocode missing coordinates,
// re-solve §4.5 step 7 for the existing roster and vehicle, and update
// distance_km, cost, and per-assignment boarding_order/lat/lon.
func (p *EditPlanner) Recalculate(ctx context.Context, routeID uuid.UUID, destination *entity.Destination, actor string) error {
	return p.Routes.WithTx(ctx, func(ctx context.Context) error {
		route, err := p.getRoute(ctx, routeID)
		if err != nil {
			return err
		}
		if route.DriverID == nil {
			return apperr.NewValidationError("route has no driver to recalculate around")
		}

		assignments, err := p.Routes.AssignmentsForRoute(ctx, routeID)
		if err != nil {
			return apperr.NewRepositoryError("assignments lookup", err)
		}

		var driverAssignment *entity.Assignment
		var passengerAssignments []*entity.Assignment
		for _, a := range assignments {
			if a.Role == entity.RoleDriver {
				driverAssignment = a
			} else {
				passengerAssignments = append(passengerAssignments, a)
			}
		}
		if driverAssignment == nil {
			return apperr.NewValidationError("route has no driver assignment to recalculate around")
		}

		employeeIDs := make([]uuid.UUID, 0, len(assignments))
		employeeIDs = append(employeeIDs, driverAssignment.EmployeeID)
		for _, a := range passengerAssignments {
			employeeIDs = append(employeeIDs, a.EmployeeID)
		}
		employees, err := p.Employees.GetByIDs(ctx, employeeIDs)
		if err != nil {
			return apperr.NewRepositoryError("employee lookup", err)
		}

		coordinates, err := GeocodeEmployees(ctx, p.Geocoder, employees)
		if err != nil {
			return err
		}

		points := make([]entity.Coordinates, 0, len(passengerAssignments)+2)
		points = append(points, coordinates[driverAssignment.EmployeeID])
		for _, a := range passengerAssignments {
			points = append(points, coordinates[a.EmployeeID])
		}
		points = append(points, destination.Coordinates())
		endIdx := len(points) - 1

		order, err := solver.SolveTSP(distanceMatrixFromCoordinates(points), endIdx)
		if err != nil {
			return apperr.NewSolverError("recalculation ordering failed: " + err.Error())
		}

		reordered := make([]*entity.Assignment, 0, len(passengerAssignments))
		for _, idx := range order {
			reordered = append(reordered, passengerAssignments[idx-1])
		}

		driverOrder := 0
		driverAssignment.BoardingOrder = &driverOrder
		if coords, ok := coordinates[driverAssignment.EmployeeID]; ok {
			driverAssignment.SetCoordinates(coords.Latitude, coords.Longitude)
		}

		final := []*entity.Assignment{driverAssignment}
		for i, a := range reordered {
			order := i + 1
			a.BoardingOrder = &order
			if coords, ok := coordinates[a.EmployeeID]; ok {
				a.SetCoordinates(coords.Latitude, coords.Longitude)
			}
			final = append(final, a)
		}

		if err := p.Routes.ReplaceAssignments(ctx, routeID, final); err != nil {
			return apperr.NewRepositoryError("assignment replace", err)
		}
		if err := p.Routes.DeleteAssignment(ctx, routeID, driverAssignment.EmployeeID); err != nil {
			return apperr.NewRepositoryError("assignment removal", err)
		}
		if err := p.Routes.CreateAssignment(ctx, driverAssignment); err != nil {
			return apperr.NewRepositoryError("assignment creation", err)
		}

		distanceKM := totalGeodesicDistanceKM(points, order, endIdx)
		costFactor := 1.0
		if route.VehicleID != nil {
			vehicle, err := p.Vehicles.GetByID(ctx, *route.VehicleID)
			if err != nil {
				return apperr.NewRepositoryError("vehicle lookup", err)
			}
			if vehicle != nil {
				costFactor = vehicle.CostTier.Factor()
			}
		}
		route.SetMetrics(distanceKM, distanceKM*costFactor)
		if err := p.Routes.Update(ctx, route); err != nil {
			return apperr.NewRepositoryError("route update", err)
		}

		return p.writeAdminLog(ctx, routeID, actor, entity.ActionRecalculate, nil)
	})
}
