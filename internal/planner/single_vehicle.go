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
	"github.com/Luks9/geo-rota/pkg/logger"
)

// SingleVehicleRequest carries the inputs to C7 (spec.md §4.5).
type SingleVehicleRequest struct {
	CompanyID       uuid.UUID
	GroupID         uuid.UUID
	Date            time.Time
	Shift           entity.Shift
	ManualDriverID  *uuid.UUID
	ManualVehicleID *uuid.UUID
	Destination     DestinationInput
	Mode            entity.RouteMode
}

// SingleVehicleResult is everything the caller needs to present the
// outcome of a single-vehicle plan, including the ephemeral vehicle
// suggestions that are never persisted (spec.md §4.5a).
type SingleVehicleResult struct {
	Route       *entity.Route
	Assignments []*entity.Assignment
	Pending     []*entity.PendingEmployee
	Suggestions []apperr.VehicleSuggestion
}

// SingleVehiclePlanner implements C7.
type SingleVehiclePlanner struct {
	Companies      repository.CompanyRepository
	Groups         repository.RouteGroupRepository
	Employees      repository.EmployeeRepository
	Destinations   repository.DestinationRepository
	Availabilities repository.VehicleAvailabilityRepository
	Routes         repository.RouteRepository
	Geocoder       geocode.Geocoder
	Log            logger.Logger
}

// Plan runs spec.md §4.5 steps 1-9 and returns the persisted route.
func (p *SingleVehiclePlanner) Plan(ctx context.Context, req SingleVehicleRequest) (*SingleVehicleResult, error) {
	company, group, err := ValidateOwnership(ctx, p.Companies, p.Groups, req.CompanyID, req.GroupID)
	if err != nil {
		return nil, err
	}
	if err := ValidateDateAndUniqueness(ctx, p.Routes, company.ID, group.ID, req.Date, req.Shift); err != nil {
		return nil, err
	}

	candidates, err := RequireEligible(ctx, p.Employees, group, req.Date, req.Shift)
	if err != nil {
		return nil, err
	}

	destination, err := ResolveDestination(ctx, p.Destinations, p.Geocoder, company.ID, req.Destination)
	if err != nil {
		return nil, err
	}

	coordinates, err := GeocodeEmployees(ctx, p.Geocoder, candidates)
	if err != nil {
		return nil, err
	}

	driver, err := SelectDriver(candidates, req.ManualDriverID, coordinates, destination.Coordinates())
	if err != nil {
		return nil, err
	}

	var passengers []*entity.Employee
	for _, c := range candidates {
		if c.ID != driver.ID {
			passengers = append(passengers, c)
		}
	}
	if len(passengers) == 0 {
		return nil, apperr.NewValidationError("no passengers remain after removing the driver")
	}

	vehicle, err := SelectVehicle(ctx, p.Availabilities, company.ID, group.ID, req.Date, len(passengers)+1, req.ManualVehicleID)
	if err != nil {
		return nil, err
	}

	seatsForPassengers := 0
	if vehicle != nil {
		seatsForPassengers = vehicle.Vehicle.UsableCapacity()
	}
	riding, pending := splitByCapacity(passengers, seatsForPassengers)

	points := make([]entity.Coordinates, 0, len(riding)+2)
	points = append(points, coordinates[driver.ID])
	for _, emp := range riding {
		points = append(points, coordinates[emp.ID])
	}
	points = append(points, destination.Coordinates())
	endIdx := len(points) - 1

	order, err := solver.SolveTSP(distanceMatrixFromCoordinates(points), endIdx)
	if err != nil {
		return nil, apperr.NewSolverError("single-vehicle pickup ordering failed: " + err.Error())
	}

	orderedRiding := make([]*entity.Employee, 0, len(riding))
	for _, idx := range order {
		orderedRiding = append(orderedRiding, riding[idx-1])
	}

	distanceKM := totalGeodesicDistanceKM(points, order, endIdx)
	costFactor := 1.0
	if vehicle != nil {
		costFactor = vehicle.Vehicle.CostTier.Factor()
	}
	cost := distanceKM * costFactor

	mode := req.Mode
	if mode == "" {
		mode = entity.ModeAutomatic
	}

	return p.persist(ctx, company, group, destination, req, driver, orderedRiding, pending, vehicle, coordinates, distanceKM, cost, mode)
}


func (p *SingleVehiclePlanner) persist(
	ctx context.Context,
	company *entity.Company,
	group *entity.RouteGroup,
	destination *entity.Destination,
	req SingleVehicleRequest,
	driver *entity.Employee,
	riding []*entity.Employee,
	pending []*entity.Employee,
	vehicle *repository.FleetCandidate,
	coordinates map[uuid.UUID]entity.Coordinates,
	distanceKM, cost float64,
	mode entity.RouteMode,
) (*SingleVehicleResult, error) {
	var result SingleVehicleResult

	err := p.Routes.WithTx(ctx, func(ctx context.Context) error {
		ridingIDs := make([]uuid.UUID, 0, len(riding)+1)
		ridingIDs = append(ridingIDs, driver.ID)
		for _, emp := range riding {
			ridingIDs = append(ridingIDs, emp.ID)
		}
		if err := CheckEmployeeConflicts(ctx, p.Routes, ridingIDs, req.Date, req.Shift, nil); err != nil {
			return err
		}
		if vehicle != nil {
			if err := CheckVehicleConflict(ctx, p.Routes, vehicle.Vehicle.ID, req.Date, req.Shift, nil); err != nil {
				return err
			}
		}

		route := entity.NewRoute(company.ID, group.ID, destination.ID, req.Date, req.Shift, 1, mode)
		var driverIDPtr, vehicleIDPtr *uuid.UUID
		driverID := driver.ID
		driverIDPtr = &driverID
		if vehicle != nil {
			route.AssignVehicle(vehicle.Vehicle.ID, driver.ID, vehicle.Availability.ID)
			vid := vehicle.Vehicle.ID
			vehicleIDPtr = &vid
		} else {
			route.DriverID = driverIDPtr
		}
		route.SetMetrics(distanceKM, cost)

		if err := p.Routes.Create(ctx, route); err != nil {
			return apperr.NewRepositoryError("route creation", err)
		}

		driverAssignment := entity.NewAssignment(route.ID, driver.ID, entity.RoleDriver, 0)
		if coords, ok := coordinates[driver.ID]; ok {
			driverAssignment.SetCoordinates(coords.Latitude, coords.Longitude)
		}
		if err := p.Routes.CreateAssignment(ctx, driverAssignment); err != nil {
			return apperr.NewRepositoryError("driver assignment", err)
		}
		result.Assignments = append(result.Assignments, driverAssignment)

		for i, emp := range riding {
			a := entity.NewAssignment(route.ID, emp.ID, entity.RolePassenger, i+1)
			if coords, ok := coordinates[emp.ID]; ok {
				a.SetCoordinates(coords.Latitude, coords.Longitude)
			}
			if err := p.Routes.CreateAssignment(ctx, a); err != nil {
				return apperr.NewRepositoryError("passenger assignment", err)
			}
			result.Assignments = append(result.Assignments, a)
		}

		for _, emp := range pending {
			entry := entity.NewPendingEmployee(emp.ID, req.Date, req.Shift, entity.ReasonVehicleCapacityReached, &group.ID)
			if err := p.Routes.CreatePending(ctx, entry); err != nil {
				return apperr.NewRepositoryError("pending employee", err)
			}
			result.Pending = append(result.Pending, entry)
		}

		genLog := entity.NewGenerationLog(route.ID, len(riding)+1, vehicleIDPtr, driverIDPtr)
		if err := p.Routes.CreateGenerationLog(ctx, genLog); err != nil {
			return apperr.NewRepositoryError("generation log", err)
		}

		result.Route = route
		result.Suggestions = SuggestVehicles(len(pending))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// splitByCapacity implements the overflow rule of spec.md §4.5: only the
// first `seats` passengers (in eligibility order) ride; the rest are pending.
func splitByCapacity(passengers []*entity.Employee, seats int) (riding, pending []*entity.Employee) {
	if seats < 0 {
		seats = 0
	}
	if seats >= len(passengers) {
		return passengers, nil
	}
	return passengers[:seats], passengers[seats:]
}
