package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Route is a single vehicle's planned shuttle run for one company, group,
// date and shift. Unique per (date, shift, group_id, sequence).
type Route struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	CompanyID      uuid.UUID  `json:"company_id" db:"company_id"`
	GroupID        uuid.UUID  `json:"group_id" db:"group_id"`
	VehicleID      *uuid.UUID `json:"vehicle_id,omitempty" db:"vehicle_id"`
	DriverID       *uuid.UUID `json:"driver_id,omitempty" db:"driver_id"`
	AvailabilityID *uuid.UUID `json:"availability_id,omitempty" db:"availability_id"`
	DestinationID  uuid.UUID  `json:"destination_id" db:"destination_id"`
	Date           time.Time  `json:"date" db:"date"`
	Shift          Shift      `json:"shift" db:"shift"`
	Status         RouteStatus `json:"status" db:"status"`
	Mode           RouteMode   `json:"mode" db:"mode"`
	Sequence       int         `json:"sequence" db:"sequence"`
	DistanceKM     *float64    `json:"distance_km,omitempty" db:"distance_km"`
	Cost           *float64    `json:"cost,omitempty" db:"cost"`
	Notes          *string     `json:"notes,omitempty" db:"notes"`
	CreatedAt      time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at" db:"updated_at"`
}

func NewRoute(companyID, groupID, destinationID uuid.UUID, date time.Time, shift Shift, sequence int, mode RouteMode) *Route {
	now := time.Now()
	return &Route{
		ID:            uuid.New(),
		CompanyID:     companyID,
		GroupID:       groupID,
		DestinationID: destinationID,
		Date:          date,
		Shift:         shift,
		Status:        RouteStatusDraft,
		Mode:          mode,
		Sequence:      sequence,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// AssignVehicle binds a vehicle, driver and availability window to the route
// and upgrades its status to scheduled (spec.md §4.5 step 9).
func (r *Route) AssignVehicle(vehicleID uuid.UUID, driverID uuid.UUID, availabilityID uuid.UUID) {
	r.VehicleID = &vehicleID
	r.DriverID = &driverID
	r.AvailabilityID = &availabilityID
	r.Status = RouteStatusScheduled
	r.UpdatedAt = time.Now()
}

// UnassignVehicle clears the vehicle/driver and downgrades the route to
// draft — used when no vehicle in the fleet qualifies (spec.md §4.5 step 6).
func (r *Route) UnassignVehicle() {
	r.VehicleID = nil
	r.DriverID = nil
	r.AvailabilityID = nil
	r.Status = RouteStatusDraft
	r.UpdatedAt = time.Now()
}

func (r *Route) SetMetrics(distanceKM, cost float64) {
	r.DistanceKM = &distanceKM
	r.Cost = &cost
	r.UpdatedAt = time.Now()
}

func (r *Route) SetStatus(status RouteStatus) {
	r.Status = status
	r.UpdatedAt = time.Now()
}

func (r *Route) IsCanceled() bool {
	return r.Status == RouteStatusCanceled
}

func (r *Route) Validate() error {
	if r.CompanyID == uuid.Nil {
		return ErrRouteInvalidCompany
	}
	if r.GroupID == uuid.Nil {
		return ErrRouteInvalidGroup
	}
	if !r.Shift.Valid() {
		return ErrRouteInvalidShift
	}
	if r.Sequence < 1 {
		return ErrRouteInvalidSequence
	}
	return nil
}

var (
	ErrRouteNotFound        = errors.New("route not found")
	ErrRouteInvalidCompany  = errors.New("route must belong to a company")
	ErrRouteInvalidGroup    = errors.New("route must belong to a group")
	ErrRouteInvalidShift    = errors.New("invalid route shift")
	ErrRouteInvalidSequence = errors.New("route sequence must be >= 1")
	ErrRouteAlreadyExists   = errors.New("a route already exists for this company, group, date and shift")
	ErrRouteDateInPast      = errors.New("route date must not be in the past")
)

// Assignment seats one employee on a route, either as driver or passenger.
// Unique per (route_id, employee_id).
type Assignment struct {
	ID            uuid.UUID      `json:"id" db:"id"`
	RouteID       uuid.UUID      `json:"route_id" db:"route_id"`
	EmployeeID    uuid.UUID      `json:"employee_id" db:"employee_id"`
	Role          AssignmentRole `json:"role" db:"role"`
	BoardingOrder *int           `json:"boarding_order,omitempty" db:"boarding_order"`
	BoardingTime  *string        `json:"boarding_time,omitempty" db:"boarding_time"`
	Latitude      *float64       `json:"latitude,omitempty" db:"latitude"`
	Longitude     *float64       `json:"longitude,omitempty" db:"longitude"`
}

func NewAssignment(routeID, employeeID uuid.UUID, role AssignmentRole, boardingOrder int) *Assignment {
	return &Assignment{
		ID:            uuid.New(),
		RouteID:       routeID,
		EmployeeID:    employeeID,
		Role:          role,
		BoardingOrder: &boardingOrder,
	}
}

func (a *Assignment) SetCoordinates(lat, lon float64) {
	a.Latitude = &lat
	a.Longitude = &lon
}

var ErrAssignmentDriverMismatch = errors.New("driver assignment must match route.driver_id")

// PendingEmployee represents a would-be passenger who could not be seated.
type PendingEmployee struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	RouteID    *uuid.UUID `json:"route_id,omitempty" db:"route_id"`
	EmployeeID uuid.UUID  `json:"employee_id" db:"employee_id"`
	Date       time.Time  `json:"date" db:"date"`
	Shift      Shift      `json:"shift" db:"shift"`
	Reason     string     `json:"reason" db:"reason"`
	GroupID    *uuid.UUID `json:"group_id,omitempty" db:"group_id"`
}

// Pending-reason text preserved verbatim from the Python original so that
// scenario assertions (spec.md §8 S2) and any downstream UI keep matching.
const (
	ReasonVehicleCapacityReached = "Capacidade máxima do veículo atingida para o turno."
	ReasonFleetCapacityReached   = "Capacidade total da frota atingida para o turno selecionado."
)

func NewPendingEmployee(employeeID uuid.UUID, date time.Time, shift Shift, reason string, groupID *uuid.UUID) *PendingEmployee {
	return &PendingEmployee{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Date:       date,
		Shift:      shift,
		Reason:     reason,
		GroupID:    groupID,
	}
}

// GenerationLog records one automatic/manual generation of a route.
type GenerationLog struct {
	ID                  uuid.UUID  `json:"id" db:"id"`
	RouteID             uuid.UUID  `json:"route_id" db:"route_id"`
	GeneratedAt         time.Time  `json:"generated_at" db:"generated_at"`
	EmployeeCount       int        `json:"employee_count" db:"employee_count"`
	VehicleID           *uuid.UUID `json:"vehicle_id,omitempty" db:"vehicle_id"`
	DriverID            *uuid.UUID `json:"driver_id,omitempty" db:"driver_id"`
	Notes               *string    `json:"notes,omitempty" db:"notes"`
}

func NewGenerationLog(routeID uuid.UUID, employeeCount int, vehicleID, driverID *uuid.UUID) *GenerationLog {
	return &GenerationLog{
		ID:            uuid.New(),
		RouteID:       routeID,
		GeneratedAt:   time.Now(),
		EmployeeCount: employeeCount,
		VehicleID:     vehicleID,
		DriverID:      driverID,
	}
}

// AdminLog records a manual edit operation (spec.md §4.8 / SPEC_FULL.md §C.3).
type AdminLog struct {
	ID        uuid.UUID `json:"id" db:"id"`
	RouteID   uuid.UUID `json:"route_id" db:"route_id"`
	Actor     string    `json:"actor" db:"actor"`
	Action    string    `json:"action" db:"action"`
	Details   *string   `json:"details,omitempty" db:"details"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Action label vocabulary preserved verbatim from rota_service.py's
// registrar_log_administrativo call sites.
const (
	ActionSetDriver         = "Atualização de motorista"
	ActionSetVehicle        = "Atualização de veículo"
	ActionSetDestination    = "Atualização de destino"
	ActionSetDateShift      = "Atualização de data/turno"
	ActionSetStatus         = "Atualização de status"
	ActionReplacePassengers = "Atualização de funcionários"
	ActionMovePassengers    = "Remanejamento de funcionários"
	ActionRecalculate       = "Recalcular rota"
)

func NewAdminLog(routeID uuid.UUID, actor, action string, details *string) *AdminLog {
	return &AdminLog{
		ID:        uuid.New(),
		RouteID:   routeID,
		Actor:     actor,
		Action:    action,
		Details:   details,
		CreatedAt: time.Now(),
	}
}

// ErrorLog records a conflict or solver failure for operator visibility.
type ErrorLog struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	RouteID      *uuid.UUID `json:"route_id,omitempty" db:"route_id"`
	RecordedAt   time.Time  `json:"recorded_at" db:"recorded_at"`
	Context      string     `json:"context" db:"context"`
	Message      string     `json:"message" db:"message"`
	Details      *string    `json:"details,omitempty" db:"details"`
}

// Error-context vocabulary preserved verbatim from the Python original.
const (
	ContextConflict     = "Conflito de alocação"
	ContextSolverFailed = "Falha no solver"
)

func NewErrorLog(routeID *uuid.UUID, context, message string) *ErrorLog {
	return &ErrorLog{
		ID:         uuid.New(),
		RouteID:    routeID,
		RecordedAt: time.Now(),
		Context:    context,
		Message:    message,
	}
}
