// Package repository defines the contracts the planning engine reads and
// writes entities through (spec.md §6.1). Implementations live under
// internal/infrastructure/database.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Luks9/geo-rota/internal/domain/entity"
)

// CompanyRepository resolves company ownership checks.
type CompanyRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Company, error)
}

// RouteGroupRepository resolves route groups and their membership.
type RouteGroupRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.RouteGroup, error)
	MembersOf(ctx context.Context, groupID uuid.UUID) ([]uuid.UUID, error)
}

// DestinationRepository resolves and persists shuttle destinations.
type DestinationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Destination, error)
	Create(ctx context.Context, d *entity.Destination) error
	Update(ctx context.Context, d *entity.Destination) error
}

// EmployeeRepository resolves employees and the eligibility filter (C4).
type EmployeeRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Employee, error)

	// EligibleForGroup implements spec.md §4.3 steps 2-3: active members of
	// the group with a matching WorkSchedule, no active Unavailability, and
	// not already assigned for (date, shift). Returned deterministically
	// sorted by employee id.
	EligibleForGroup(ctx context.Context, groupID uuid.UUID, date time.Time, shift entity.Shift) ([]*entity.Employee, error)
}

// VehicleRepository resolves vehicles belonging to a company.
type VehicleRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error)
}

// FleetCandidate pairs a vehicle with the availability window that admits it
// for a given date/group, used by the fleet selector (C6) and the VRP fleet
// enumeration (C8 §4.6a).
type FleetCandidate struct {
	Availability *entity.VehicleAvailability
	Vehicle      *entity.Vehicle
}

// VehicleAvailabilityRepository answers fleet-for-date queries.
type VehicleAvailabilityRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.VehicleAvailability, error)

	// FleetFor returns every (availability, vehicle) pair belonging to
	// companyID whose availability covers date for groupID, per spec.md
	// §6.1's `fleet_for(date, group_id, filters)`.
	FleetFor(ctx context.Context, companyID, groupID uuid.UUID, date time.Time, includeRentals bool) ([]FleetCandidate, error)
}

// RouteConflictChecker implements the double-booking scans spec.md §4.7 and
// §6.1 require (`route_conflict_for_employee`/`route_conflict_for_vehicle`).
type RouteConflictChecker interface {
	ConflictForEmployee(ctx context.Context, employeeID uuid.UUID, date time.Time, shift entity.Shift, ignore []uuid.UUID) (bool, error)
	ConflictForVehicle(ctx context.Context, vehicleID uuid.UUID, date time.Time, shift entity.Shift, ignore []uuid.UUID) (bool, error)
	RouteExists(ctx context.Context, companyID, groupID uuid.UUID, date time.Time, shift entity.Shift) (bool, error)
}

// RouteRepository persists routes, assignments and pending entries inside a
// single unit of work (C10).
type RouteRepository interface {
	RouteConflictChecker

	Create(ctx context.Context, r *entity.Route) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Route, error)
	Update(ctx context.Context, r *entity.Route) error

	CreateAssignment(ctx context.Context, a *entity.Assignment) error
	AssignmentsForRoute(ctx context.Context, routeID uuid.UUID) ([]*entity.Assignment, error)
	ReplaceAssignments(ctx context.Context, routeID uuid.UUID, assignments []*entity.Assignment) error
	DeleteAssignment(ctx context.Context, routeID, employeeID uuid.UUID) error

	CreatePending(ctx context.Context, p *entity.PendingEmployee) error
	PendingForRoute(ctx context.Context, routeID uuid.UUID) ([]*entity.PendingEmployee, error)

	CreateGenerationLog(ctx context.Context, l *entity.GenerationLog) error
	CreateAdminLog(ctx context.Context, l *entity.AdminLog) error
	CreateErrorLog(ctx context.Context, l *entity.ErrorLog) error

	// NextSequence returns the next planning sequence number for
	// (date, shift, group_id), starting at 1 (spec.md §4.7).
	NextSequence(ctx context.Context, groupID uuid.UUID, date time.Time, shift entity.Shift) (int, error)

	// WithTx runs fn inside a single transactional unit of work; fn's
	// returned error triggers a rollback (spec.md §5, §9 "Transaction
	// boundaries").
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// GeocodeCacheRepository is the persistent tier of the geocoder's cache (C2).
type GeocodeCacheRepository interface {
	Get(ctx context.Context, normalizedAddress string) (*entity.GeocodeCache, error)
	Upsert(ctx context.Context, c *entity.GeocodeCache) error
}

// VRPResultCacheRepository is the durable store behind C9.
type VRPResultCacheRepository interface {
	Get(ctx context.Context, contextKey string) (*entity.VRPResultCache, error)
	Upsert(ctx context.Context, c *entity.VRPResultCache) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
