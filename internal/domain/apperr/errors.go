// Package apperr defines the error taxonomy propagated to callers of the
// planning engine (spec.md §7). Errors are plain Go error values; the ones
// that carry structured detail (capacity suggestions, conflict subject) are
// small structs rather than sentinel values so handlers can extract detail
// with errors.As.
package apperr

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ValidationError covers past dates, unknown company/group/destination,
// mismatched ownership, missing address fields, and manual driver/vehicle
// that fail their eligibility checks.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "validation error: " + e.Reason }

func NewValidationError(reason string) error { return &ValidationError{Reason: reason} }

// NoEligibleEmployees is returned when the eligibility filter (C4) returns
// an empty candidate set.
var ErrNoEligibleEmployees = errors.New("no eligible employees for this group, date and shift")

// NoEligibleDriver is returned when the candidate set contains no
// apt-and-licensed employee.
var ErrNoEligibleDriver = errors.New("no eligible driver among candidates")

// VehicleSuggestion is a combinatorial suggestion for additional vehicles
// needed to seat overflow passengers (spec.md §4.5a).
type VehicleSuggestion struct {
	Type                 string `json:"tipo"`
	Quantity             int    `json:"quantidade"`
	CapacityPerVehicle   int    `json:"capacidade_por_veiculo"`
	PassengersServed     int    `json:"passageiros_atendidos"`
}

// CapacityInsufficientError is raised when the chosen vehicle cannot seat
// everyone. The single-vehicle planner absorbs this internally and
// downgrades to pending entries rather than propagating it to the caller
// (spec.md §7); it remains available for callers that want to treat it as
// fatal.
type CapacityInsufficientError struct {
	Suggestions []VehicleSuggestion
}

func (e *CapacityInsufficientError) Error() string {
	return fmt.Sprintf("capacity insufficient: %d suggestion(s) available", len(e.Suggestions))
}

// ConflictError is raised when an employee or vehicle is already booked for
// (date, shift) on another non-canceled route.
type ConflictError struct {
	Kind       string // "employee" or "vehicle"
	EmployeeID *uuid.UUID
	VehicleID  *uuid.UUID
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s already booked for this date and shift", e.Kind)
}

func NewEmployeeConflict(employeeID uuid.UUID) error {
	return &ConflictError{Kind: "employee", EmployeeID: &employeeID}
}

func NewVehicleConflict(vehicleID uuid.UUID) error {
	return &ConflictError{Kind: "vehicle", VehicleID: &vehicleID}
}

// GeocodeError wraps a geocoding failure with the offending address/name.
type GeocodeError struct {
	Subject string
	Detail  string
}

func (e *GeocodeError) Error() string {
	return fmt.Sprintf("geocode error for %q: %s", e.Subject, e.Detail)
}

func NewGeocodeError(subject, detail string) error {
	return &GeocodeError{Subject: subject, Detail: detail}
}

// RoutingServiceError signals the external matrix provider failed; callers
// must treat this as absorbed (recovered locally via geodesic fallback),
// never propagated to the API boundary.
var ErrRoutingServiceFailed = errors.New("routing service unavailable, falling back to geodesic")

// SolverError is raised when the TSP/VRP solver produced no feasible plan.
type SolverError struct {
	Reason string
}

func (e *SolverError) Error() string { return "solver error: " + e.Reason }

func NewSolverError(reason string) error { return &SolverError{Reason: reason} }

// RepositoryError wraps a storage failure; the caller's transaction must
// already have been rolled back by the time this surfaces.
type RepositoryError struct {
	Op  string
	Err error
}

func (e *RepositoryError) Error() string { return fmt.Sprintf("repository error during %s: %v", e.Op, e.Err) }
func (e *RepositoryError) Unwrap() error { return e.Err }

func NewRepositoryError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &RepositoryError{Op: op, Err: err}
}
