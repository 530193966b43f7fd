// Package application exposes the planner use cases (C7, C8, C11) as a
// single facade, grounded on
// services/shipping/internal/application/routing_usecase.go's
// fetch -> mutate -> persist -> publish shape.
package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Luks9/geo-rota/internal/domain/entity"
	"github.com/Luks9/geo-rota/internal/domain/repository"
	"github.com/Luks9/geo-rota/internal/planner"
	"github.com/Luks9/geo-rota/pkg/logger"
)

// EventPublisher is the narrow dependency the facade needs from
// infrastructure/events.EventPublisher.
type EventPublisher interface {
	RouteGenerated(ctx context.Context, routeID uuid.UUID, data interface{}) error
	RouteRecalculated(ctx context.Context, routeID uuid.UUID, data interface{}) error
}

// PlannerFacade wires the C7/C8/C11 planners to event publishing so HTTP
// handlers never touch Kafka directly.
type PlannerFacade struct {
	SingleVehicle *planner.SingleVehiclePlanner
	VRP           *planner.VRPPlanner
	Edit          *planner.EditPlanner
	Events        EventPublisher
	Log           logger.Logger
}

// routeGeneratedEvent is the JSON payload shape published on route.generated.
type routeGeneratedEvent struct {
	RouteID        uuid.UUID `json:"route_id"`
	CompanyID      uuid.UUID `json:"company_id"`
	GroupID        uuid.UUID `json:"group_id"`
	Date           string    `json:"date"`
	Shift          string    `json:"shift"`
	PassengerCount int       `json:"passenger_count"`
	PendingCount   int       `json:"pending_count"`
	Mode           string    `json:"mode"`
}

// PlanSingleVehicle runs C7 and publishes route.generated on success.
func (f *PlannerFacade) PlanSingleVehicle(ctx context.Context, req planner.SingleVehicleRequest) (*planner.SingleVehicleResult, error) {
	result, err := f.SingleVehicle.Plan(ctx, req)
	if err != nil {
		return nil, err
	}
	f.publishGenerated(ctx, result.Route, len(result.Assignments), len(result.Pending))
	return result, nil
}

// PlanVRP runs C8 and publishes route.generated once per sub-route.
func (f *PlannerFacade) PlanVRP(ctx context.Context, req planner.VRPRequest) (*planner.VRPResult, error) {
	result, err := f.VRP.Plan(ctx, req)
	if err != nil {
		return nil, err
	}
	for _, sub := range result.Routes {
		f.publishGenerated(ctx, sub.Route, len(sub.Assignments), len(result.Pending))
	}
	return result, nil
}

func (f *PlannerFacade) publishGenerated(ctx context.Context, route *entity.Route, assignmentCount, pendingCount int) {
	if f.Events == nil || route == nil {
		return
	}
	event := routeGeneratedEvent{
		RouteID:        route.ID,
		CompanyID:      route.CompanyID,
		GroupID:        route.GroupID,
		Date:           route.Date.Format("2006-01-02"),
		Shift:          string(route.Shift),
		PassengerCount: assignmentCount,
		PendingCount:   pendingCount,
		Mode:           string(route.Mode),
	}
	if err := f.Events.RouteGenerated(ctx, route.ID, event); err != nil && f.Log != nil {
		f.Log.WithField("route_id", route.ID).Warnf("failed to publish route.generated: %v", err)
	}
}

// SetDriver delegates to the edit planner (no route-level event: spec.md
// §6.2 only names route.generated/conflict/recalculated).
func (f *PlannerFacade) SetDriver(ctx context.Context, routeID, employeeID uuid.UUID, actor string) error {
	return f.Edit.SetDriver(ctx, routeID, employeeID, actor)
}

func (f *PlannerFacade) SetVehicle(ctx context.Context, routeID, vehicleID uuid.UUID, availabilityID *uuid.UUID, actor string) error {
	return f.Edit.SetVehicle(ctx, routeID, vehicleID, availabilityID, actor)
}

func (f *PlannerFacade) SetDestination(ctx context.Context, routeID uuid.UUID, input planner.DestinationInput, actor string) error {
	return f.Edit.SetDestination(ctx, routeID, input, actor)
}

func (f *PlannerFacade) SetDateShift(ctx context.Context, routeID uuid.UUID, date time.Time, shift entity.Shift, actor string) error {
	return f.Edit.SetDateShift(ctx, routeID, date, shift, actor)
}

func (f *PlannerFacade) SetStatus(ctx context.Context, routeID uuid.UUID, status entity.RouteStatus, actor string) error {
	return f.Edit.SetStatus(ctx, routeID, status, actor)
}

func (f *PlannerFacade) ReplacePassengers(ctx context.Context, routeID uuid.UUID, employeeIDs []uuid.UUID, actor string) error {
	return f.Edit.ReplacePassengers(ctx, routeID, employeeIDs, actor)
}

func (f *PlannerFacade) MovePassengers(ctx context.Context, fromRouteID, toRouteID uuid.UUID, employeeIDs []uuid.UUID, actor string) error {
	return f.Edit.MovePassengers(ctx, fromRouteID, toRouteID, employeeIDs, actor)
}

// ListAvailableFleet implements the original's `_listar_frota_disponivel`
// (SPEC_FULL.md §C.2): a read-only, company-wide preview of every vehicle
// available for (groupID, date) before a plan is run. Reuses FleetForVRP's
// repository query and ordering (rental-last, cost-ascending,
// capacity-descending) rather than duplicating it.
func (f *PlannerFacade) ListAvailableFleet(ctx context.Context, companyID, groupID uuid.UUID, date time.Time, includeRentals bool, allowedVehicleIDs []uuid.UUID, maxVehicles int) ([]repository.FleetCandidate, error) {
	if _, _, err := planner.ValidateOwnership(ctx, f.VRP.Companies, f.VRP.Groups, companyID, groupID); err != nil {
		return nil, err
	}
	return planner.FleetForVRP(ctx, f.VRP.Availabilities, companyID, groupID, date, includeRentals, allowedVehicleIDs, maxVehicles)
}

// Recalculate runs C11's recalculation and publishes route.recalculated.
func (f *PlannerFacade) Recalculate(ctx context.Context, routeID uuid.UUID, destination *entity.Destination, actor string) error {
	if err := f.Edit.Recalculate(ctx, routeID, destination, actor); err != nil {
		return err
	}
	if f.Events != nil {
		if err := f.Events.RouteRecalculated(ctx, routeID, map[string]interface{}{"route_id": routeID, "actor": actor}); err != nil && f.Log != nil {
			f.Log.WithField("route_id", routeID).Warnf("failed to publish route.recalculated: %v", err)
		}
	}
	return nil
}
