package planner

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/Luks9/geo-rota/internal/domain/apperr"
	"github.com/Luks9/geo-rota/internal/domain/entity"
	"github.com/Luks9/geo-rota/internal/domain/repository"
	"github.com/Luks9/geo-rota/internal/geocode"
	"github.com/Luks9/geo-rota/internal/matrix"
	"github.com/Luks9/geo-rota/internal/planner/solver"
	"github.com/Luks9/geo-rota/pkg/logger"
)

// VRPRequest carries the inputs to C8 (spec.md §4.6): a multi-vehicle plan
// for a whole group/date/shift, splitting the eligible roster across as
// many vehicles as the fleet and the solver can use.
type VRPRequest struct {
	CompanyID         uuid.UUID
	GroupID           uuid.UUID
	Date              time.Time
	Shift             entity.Shift
	Destination       DestinationInput
	IncludeRentals    bool
	AllowedVehicleIDs []uuid.UUID
	MaxVehicles       int
	Mode              entity.RouteMode
}

// VRPSubRoute is one persisted route out of a VRP plan.
type VRPSubRoute struct {
	Route       *entity.Route
	Assignments []*entity.Assignment
}

// VRPResult is the outcome of a multi-vehicle plan.
type VRPResult struct {
	Routes      []VRPSubRoute
	Pending     []*entity.PendingEmployee
	Suggestions []apperr.VehicleSuggestion
	CacheHit    bool
}

// VRPPlanner implements C8.
type VRPPlanner struct {
	Companies      repository.CompanyRepository
	Groups         repository.RouteGroupRepository
	Employees      repository.EmployeeRepository
	Destinations   repository.DestinationRepository
	Availabilities repository.VehicleAvailabilityRepository
	Routes         repository.RouteRepository
	Cache          repository.VRPResultCacheRepository
	Geocoder       geocode.Geocoder
	Matrix         matrix.Provider
	CacheTTL       time.Duration
	Log            logger.Logger
}

// vrpCachedRoute/vrpCachedPlan is the JSON shape persisted in
// VRPResultCache.Payload: the solved plan keyed by employee id so a cache
// hit never has to touch the solver or the matrix provider again.
type vrpCachedRoute struct {
	EmployeeIDs []uuid.UUID `json:"employee_ids"`
	DistanceM   int64       `json:"distance_m"`
	DurationS   int64       `json:"duration_s"`
}

type vrpCachedPlan struct {
	Routes  []vrpCachedRoute `json:"routes"`
	Dropped []uuid.UUID      `json:"dropped"`
}

// Plan runs spec.md §4.6 steps 1-5.
func (p *VRPPlanner) Plan(ctx context.Context, req VRPRequest) (*VRPResult, error) {
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

	fleet, err := FleetForVRP(ctx, p.Availabilities, company.ID, group.ID, req.Date, req.IncludeRentals, req.AllowedVehicleIDs, req.MaxVehicles)
	if err != nil {
		return nil, err
	}
	if len(fleet) == 0 {
		return nil, ErrEmptyFleet
	}

	dateKey := req.Date.Format("2006-01-02")
	contextKey, _, err := VRPCacheKey(company.ID, group.ID, dateKey, req.Shift, destination.Coordinates(), coordinates, fleet)
	if err != nil {
		return nil, apperr.NewSolverError("cache key construction failed: " + err.Error())
	}

	employeeByID := make(map[uuid.UUID]*entity.Employee, len(candidates))
	for _, c := range candidates {
		employeeByID[c.ID] = c
	}

	plan, cacheHit, err := p.resolvePlan(ctx, contextKey, candidates, employeeByID, coordinates, destination, fleet)
	if err != nil {
		return nil, err
	}

	mode := req.Mode
	if mode == "" {
		mode = entity.ModeAutomatic
	}

	return p.persist(ctx, company, group, destination, req, plan, employeeByID, coordinates, fleet, mode, cacheHit)
}

// resolvePlan looks up a fresh cache entry for contextKey; on a miss (or a
// stale/unreadable hit) it calls the matrix provider and the VRP solver and
// stores the result.
func (p *VRPPlanner) resolvePlan(
	ctx context.Context,
	contextKey string,
	candidates []*entity.Employee,
	employeeByID map[uuid.UUID]*entity.Employee,
	coordinates map[uuid.UUID]entity.Coordinates,
	destination *entity.Destination,
	fleet []repository.FleetCandidate,
) (vrpCachedPlan, bool, error) {
	if cached, ok := p.readCache(ctx, contextKey, employeeByID); ok {
		return cached, true, nil
	}

	points := make([]entity.Coordinates, 0, len(candidates)+1)
	points = append(points, destination.Coordinates())
	for _, c := range candidates {
		points = append(points, coordinates[c.ID])
	}

	matrixResult, err := p.Matrix.Build(ctx, points)
	if err != nil {
		return vrpCachedPlan{}, false, apperr.NewSolverError("distance matrix build failed: " + err.Error())
	}

	demand := make([]int, len(points))
	for i := range demand {
		demand[i] = 1
	}
	capacities := make([]int, len(fleet))
	for i, f := range fleet {
		capacities[i] = f.Vehicle.UsableCapacity()
	}

	solved, err := solver.SolveVRP(solver.Matrix(matrixResult.Distances), solver.Matrix(matrixResult.Durations), demand, capacities, 0)
	if err != nil {
		return vrpCachedPlan{}, false, apperr.NewSolverError("VRP solve failed: " + err.Error())
	}

	plan := vrpCachedPlan{}
	for _, route := range solved.Routes {
		ids := make([]uuid.UUID, 0, len(route.Nodes))
		for _, node := range route.Nodes {
			ids = append(ids, candidates[node-1].ID)
		}
		plan.Routes = append(plan.Routes, vrpCachedRoute{
			EmployeeIDs: ids,
			DistanceM:   route.DistanceM,
			DurationS:   route.DurationS,
		})
	}
	for _, node := range solved.Dropped {
		plan.Dropped = append(plan.Dropped, candidates[node-1].ID)
	}

	p.writeCache(ctx, contextKey, plan)
	return plan, false, nil
}

func (p *VRPPlanner) readCache(ctx context.Context, contextKey string, employeeByID map[uuid.UUID]*entity.Employee) (vrpCachedPlan, bool) {
	if p.Cache == nil {
		return vrpCachedPlan{}, false
	}
	cached, err := p.Cache.Get(ctx, contextKey)
	if err != nil || cached == nil || !cached.IsFresh(p.CacheTTL) {
		return vrpCachedPlan{}, false
	}
	var plan vrpCachedPlan
	if err := json.Unmarshal([]byte(cached.Payload), &plan); err != nil {
		return vrpCachedPlan{}, false
	}
	for _, route := range plan.Routes {
		for _, id := range route.EmployeeIDs {
			if _, ok := employeeByID[id]; !ok {
				return vrpCachedPlan{}, false
			}
		}
	}
	return plan, true
}

func (p *VRPPlanner) writeCache(ctx context.Context, contextKey string, plan vrpCachedPlan) {
	if p.Cache == nil {
		return
	}
	payload, err := json.Marshal(plan)
	if err != nil {
		return
	}
	_ = p.Cache.Upsert(ctx, entity.NewVRPResultCache(contextKey, string(payload)))
}

func (p *VRPPlanner) persist(
	ctx context.Context,
	company *entity.Company,
	group *entity.RouteGroup,
	destination *entity.Destination,
	req VRPRequest,
	plan vrpCachedPlan,
	employeeByID map[uuid.UUID]*entity.Employee,
	coordinates map[uuid.UUID]entity.Coordinates,
	fleet []repository.FleetCandidate,
	mode entity.RouteMode,
	cacheHit bool,
) (*VRPResult, error) {
	var result VRPResult
	result.CacheHit = cacheHit

	err := p.Routes.WithTx(ctx, func(ctx context.Context) error {
		for vehicleIdx, cachedRoute := range plan.Routes {
			vehicle := fleet[vehicleIdx]

			members := make([]*entity.Employee, 0, len(cachedRoute.EmployeeIDs))
			for _, id := range cachedRoute.EmployeeIDs {
				members = append(members, employeeByID[id])
			}

			driver, err := SelectDriver(members, nil, coordinates, destination.Coordinates())
			if err != nil {
				return err
			}

			var passengers []*entity.Employee
			for _, m := range members {
				if m.ID != driver.ID {
					passengers = append(passengers, m)
				}
			}

			ridingIDs := append([]uuid.UUID{driver.ID}, idsOf(passengers)...)
			if err := CheckEmployeeConflicts(ctx, p.Routes, ridingIDs, req.Date, req.Shift, nil); err != nil {
				return err
			}
			if err := CheckVehicleConflict(ctx, p.Routes, vehicle.Vehicle.ID, req.Date, req.Shift, nil); err != nil {
				return err
			}

			sequence, err := p.Routes.NextSequence(ctx, group.ID, req.Date, req.Shift)
			if err != nil {
				return apperr.NewRepositoryError("sequence allocation", err)
			}

			route := entity.NewRoute(company.ID, group.ID, destination.ID, req.Date, req.Shift, sequence, mode)
			route.AssignVehicle(vehicle.Vehicle.ID, driver.ID, vehicle.Availability.ID)
			distanceKM := float64(cachedRoute.DistanceM) / 1000.0
			route.SetMetrics(distanceKM, distanceKM*vehicle.Vehicle.CostTier.Factor())

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

			subRoute := VRPSubRoute{Route: route, Assignments: []*entity.Assignment{driverAssignment}}
			for i, passenger := range passengers {
				a := entity.NewAssignment(route.ID, passenger.ID, entity.RolePassenger, i+1)
				if coords, ok := coordinates[passenger.ID]; ok {
					a.SetCoordinates(coords.Latitude, coords.Longitude)
				}
				if err := p.Routes.CreateAssignment(ctx, a); err != nil {
					return apperr.NewRepositoryError("passenger assignment", err)
				}
				subRoute.Assignments = append(subRoute.Assignments, a)
			}

			driverID, vehicleID := driver.ID, vehicle.Vehicle.ID
			genLog := entity.NewGenerationLog(route.ID, len(members), &vehicleID, &driverID)
			if err := p.Routes.CreateGenerationLog(ctx, genLog); err != nil {
				return apperr.NewRepositoryError("generation log", err)
			}

			result.Routes = append(result.Routes, subRoute)
		}

		for _, id := range plan.Dropped {
			entry := entity.NewPendingEmployee(id, req.Date, req.Shift, entity.ReasonFleetCapacityReached, &group.ID)
			if err := p.Routes.CreatePending(ctx, entry); err != nil {
				return apperr.NewRepositoryError("pending employee", err)
			}
			result.Pending = append(result.Pending, entry)
		}

		result.Suggestions = SuggestVehicles(len(plan.Dropped))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func idsOf(employees []*entity.Employee) []uuid.UUID {
	ids := make([]uuid.UUID, len(employees))
	for i, e := range employees {
		ids[i] = e.ID
	}
	return ids
}
