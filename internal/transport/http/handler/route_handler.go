package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/Luks9/geo-rota/internal/application"
	"github.com/Luks9/geo-rota/internal/domain/apperr"
	"github.com/Luks9/geo-rota/internal/domain/entity"
	"github.com/Luks9/geo-rota/internal/planner"
)

// RouteHandler exposes the planning (C7/C8) and edit (C11) operations over
// HTTP, delegating all business logic to application.PlannerFacade.
type RouteHandler struct {
	facade *application.PlannerFacade
}

func NewRouteHandler(facade *application.PlannerFacade) *RouteHandler {
	return &RouteHandler{facade: facade}
}

const dateLayout = "2006-01-02"

type destinationInputDTO struct {
	ExistingID   *uuid.UUID `json:"existing_id,omitempty"`
	Name         string     `json:"name,omitempty"`
	Street       string     `json:"street,omitempty"`
	Number       string     `json:"number,omitempty"`
	Complement   string     `json:"complement,omitempty"`
	Neighborhood string     `json:"neighborhood,omitempty"`
	City         string     `json:"city,omitempty"`
	State        string     `json:"state,omitempty"`
	Zip          string     `json:"zip,omitempty"`
}

func (d destinationInputDTO) toInput() planner.DestinationInput {
	return planner.DestinationInput{
		ExistingID:   d.ExistingID,
		Name:         d.Name,
		Street:       d.Street,
		Number:       d.Number,
		Complement:   d.Complement,
		Neighborhood: d.Neighborhood,
		City:         d.City,
		State:        d.State,
		Zip:          d.Zip,
	}
}

type planSingleVehicleRequest struct {
	CompanyID       uuid.UUID           `json:"company_id"`
	GroupID         uuid.UUID           `json:"group_id"`
	Date            string              `json:"date"`
	Shift           entity.Shift        `json:"shift"`
	ManualDriverID  *uuid.UUID          `json:"manual_driver_id,omitempty"`
	ManualVehicleID *uuid.UUID          `json:"manual_vehicle_id,omitempty"`
	Destination     destinationInputDTO `json:"destination"`
	Mode            entity.RouteMode    `json:"mode,omitempty"`
}

// PlanSingleVehicle handles POST /api/v1/routes/single-vehicle (C7).
func (h *RouteHandler) PlanSingleVehicle(w http.ResponseWriter, r *http.Request) {
	var req planSingleVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequestError(w, r, "invalid request body")
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		writeBadRequestError(w, r, "date must be formatted as YYYY-MM-DD")
		return
	}
	mode := req.Mode
	if mode == "" {
		mode = entity.ModeAutomatic
	}

	result, err := h.facade.PlanSingleVehicle(r.Context(), planner.SingleVehicleRequest{
		CompanyID:       req.CompanyID,
		GroupID:         req.GroupID,
		Date:            date,
		Shift:           req.Shift,
		ManualDriverID:  req.ManualDriverID,
		ManualVehicleID: req.ManualVehicleID,
		Destination:     req.Destination.toInput(),
		Mode:            mode,
	})
	if err != nil {
		writePlannerError(w, r, err)
		return
	}
	writeJSONResponse(w, r, http.StatusCreated, result)
}

type planVRPRequest struct {
	CompanyID         uuid.UUID           `json:"company_id"`
	GroupID           uuid.UUID           `json:"group_id"`
	Date              string              `json:"date"`
	Shift             entity.Shift        `json:"shift"`
	Destination       destinationInputDTO `json:"destination"`
	IncludeRentals    bool                `json:"include_rentals"`
	AllowedVehicleIDs []uuid.UUID         `json:"allowed_vehicle_ids,omitempty"`
	MaxVehicles       int                 `json:"max_vehicles,omitempty"`
	Mode              entity.RouteMode    `json:"mode,omitempty"`
}

// PlanVRP handles POST /api/v1/routes/vrp (C8).
func (h *RouteHandler) PlanVRP(w http.ResponseWriter, r *http.Request) {
	var req planVRPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequestError(w, r, "invalid request body")
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		writeBadRequestError(w, r, "date must be formatted as YYYY-MM-DD")
		return
	}
	mode := req.Mode
	if mode == "" {
		mode = entity.ModeAutomatic
	}

	result, err := h.facade.PlanVRP(r.Context(), planner.VRPRequest{
		CompanyID:         req.CompanyID,
		GroupID:           req.GroupID,
		Date:              date,
		Shift:             req.Shift,
		Destination:       req.Destination.toInput(),
		IncludeRentals:    req.IncludeRentals,
		AllowedVehicleIDs: req.AllowedVehicleIDs,
		MaxVehicles:       req.MaxVehicles,
		Mode:              mode,
	})
	if err != nil {
		writePlannerError(w, r, err)
		return
	}
	writeJSONResponse(w, r, http.StatusCreated, result)
}

// ListAvailableFleet handles GET /api/v1/fleet, a read-only preview of the
// vehicles available for a company/group/date before a plan is run
// (SPEC_FULL.md §C.2, grounded on the original's `_listar_frota_disponivel`).
func (h *RouteHandler) ListAvailableFleet(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	companyID, err := parseUUID(query.Get("company_id"))
	if err != nil {
		writeBadRequestError(w, r, "invalid or missing company_id")
		return
	}
	groupID, err := parseUUID(query.Get("group_id"))
	if err != nil {
		writeBadRequestError(w, r, "invalid or missing group_id")
		return
	}
	date, err := time.Parse(dateLayout, query.Get("date"))
	if err != nil {
		writeBadRequestError(w, r, "date must be formatted as YYYY-MM-DD")
		return
	}
	includeRentals := query.Get("include_rentals") == "true"

	maxVehicles := 0
	if raw := query.Get("max_vehicles"); raw != "" {
		maxVehicles, err = strconv.Atoi(raw)
		if err != nil {
			writeBadRequestError(w, r, "max_vehicles must be an integer")
			return
		}
	}

	var allowedVehicleIDs []uuid.UUID
	if raw := query.Get("vehicle_ids"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := parseUUID(strings.TrimSpace(part))
			if err != nil {
				writeBadRequestError(w, r, "vehicle_ids must be a comma-separated list of uuids")
				return
			}
			allowedVehicleIDs = append(allowedVehicleIDs, id)
		}
	}

	fleet, err := h.facade.ListAvailableFleet(r.Context(), companyID, groupID, date, includeRentals, allowedVehicleIDs, maxVehicles)
	if err != nil {
		writePlannerError(w, r, err)
		return
	}
	writeJSONResponse(w, r, http.StatusOK, fleet)
}

func (h *RouteHandler) routeID(r *http.Request) (uuid.UUID, error) {
	return parseUUID(mux.Vars(r)["id"])
}

func (h *RouteHandler) actor(r *http.Request) string {
	if actor := r.Header.Get("X-Actor"); actor != "" {
		return actor
	}
	return "system"
}

type setDriverRequest struct {
	EmployeeID uuid.UUID `json:"employee_id"`
}

// SetDriver handles PUT /api/v1/routes/{id}/driver.
func (h *RouteHandler) SetDriver(w http.ResponseWriter, r *http.Request) {
	routeID, err := h.routeID(r)
	if err != nil {
		writeBadRequestError(w, r, "invalid route id")
		return
	}
	var req setDriverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequestError(w, r, "invalid request body")
		return
	}
	if err := h.facade.SetDriver(r.Context(), routeID, req.EmployeeID, h.actor(r)); err != nil {
		writePlannerError(w, r, err)
		return
	}
	writeJSONResponse(w, r, http.StatusOK, nil)
}

type setVehicleRequest struct {
	VehicleID      uuid.UUID  `json:"vehicle_id"`
	AvailabilityID *uuid.UUID `json:"availability_id,omitempty"`
}

// SetVehicle handles PUT /api/v1/routes/{id}/vehicle.
func (h *RouteHandler) SetVehicle(w http.ResponseWriter, r *http.Request) {
	routeID, err := h.routeID(r)
	if err != nil {
		writeBadRequestError(w, r, "invalid route id")
		return
	}
	var req setVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequestError(w, r, "invalid request body")
		return
	}
	if err := h.facade.SetVehicle(r.Context(), routeID, req.VehicleID, req.AvailabilityID, h.actor(r)); err != nil {
		writePlannerError(w, r, err)
		return
	}
	writeJSONResponse(w, r, http.StatusOK, nil)
}

// SetDestination handles PUT /api/v1/routes/{id}/destination.
func (h *RouteHandler) SetDestination(w http.ResponseWriter, r *http.Request) {
	routeID, err := h.routeID(r)
	if err != nil {
		writeBadRequestError(w, r, "invalid route id")
		return
	}
	var req destinationInputDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequestError(w, r, "invalid request body")
		return
	}
	if err := h.facade.SetDestination(r.Context(), routeID, req.toInput(), h.actor(r)); err != nil {
		writePlannerError(w, r, err)
		return
	}
	writeJSONResponse(w, r, http.StatusOK, nil)
}

type setDateShiftRequest struct {
	Date  string       `json:"date"`
	Shift entity.Shift `json:"shift"`
}

// SetDateShift handles PUT /api/v1/routes/{id}/date-shift.
func (h *RouteHandler) SetDateShift(w http.ResponseWriter, r *http.Request) {
	routeID, err := h.routeID(r)
	if err != nil {
		writeBadRequestError(w, r, "invalid route id")
		return
	}
	var req setDateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequestError(w, r, "invalid request body")
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		writeBadRequestError(w, r, "date must be formatted as YYYY-MM-DD")
		return
	}
	if err := h.facade.SetDateShift(r.Context(), routeID, date, req.Shift, h.actor(r)); err != nil {
		writePlannerError(w, r, err)
		return
	}
	writeJSONResponse(w, r, http.StatusOK, nil)
}

type setStatusRequest struct {
	Status entity.RouteStatus `json:"status"`
}

// SetStatus handles PUT /api/v1/routes/{id}/status.
func (h *RouteHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	routeID, err := h.routeID(r)
	if err != nil {
		writeBadRequestError(w, r, "invalid route id")
		return
	}
	var req setStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequestError(w, r, "invalid request body")
		return
	}
	if err := h.facade.SetStatus(r.Context(), routeID, req.Status, h.actor(r)); err != nil {
		writePlannerError(w, r, err)
		return
	}
	writeJSONResponse(w, r, http.StatusOK, nil)
}

type replacePassengersRequest struct {
	EmployeeIDs []uuid.UUID `json:"employee_ids"`
}

// ReplacePassengers handles PUT /api/v1/routes/{id}/passengers.
func (h *RouteHandler) ReplacePassengers(w http.ResponseWriter, r *http.Request) {
	routeID, err := h.routeID(r)
	if err != nil {
		writeBadRequestError(w, r, "invalid route id")
		return
	}
	var req replacePassengersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequestError(w, r, "invalid request body")
		return
	}
	if err := h.facade.ReplacePassengers(r.Context(), routeID, req.EmployeeIDs, h.actor(r)); err != nil {
		writePlannerError(w, r, err)
		return
	}
	writeJSONResponse(w, r, http.StatusOK, nil)
}

type movePassengersRequest struct {
	FromRouteID uuid.UUID   `json:"from_route_id"`
	ToRouteID   uuid.UUID   `json:"to_route_id"`
	EmployeeIDs []uuid.UUID `json:"employee_ids"`
}

// MovePassengers handles POST /api/v1/routes/passengers/move.
func (h *RouteHandler) MovePassengers(w http.ResponseWriter, r *http.Request) {
	var req movePassengersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequestError(w, r, "invalid request body")
		return
	}
	if err := h.facade.MovePassengers(r.Context(), req.FromRouteID, req.ToRouteID, req.EmployeeIDs, h.actor(r)); err != nil {
		writePlannerError(w, r, err)
		return
	}
	writeJSONResponse(w, r, http.StatusOK, nil)
}

// Recalculate handles POST /api/v1/routes/{id}/recalculate.
func (h *RouteHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	routeID, err := h.routeID(r)
	if err != nil {
		writeBadRequestError(w, r, "invalid route id")
		return
	}
	var req destinationInputDTO
	_ = json.NewDecoder(r.Body).Decode(&req)

	var destination *entity.Destination
	if req != (destinationInputDTO{}) {
		d := req.toInput()
		destination = &entity.Destination{
			ID:           uuid.New(),
			Name:         d.Name,
			Street:       d.Street,
			Number:       d.Number,
			Neighborhood: d.Neighborhood,
			City:         d.City,
			State:        d.State,
			Zip:          d.Zip,
		}
	}

	if err := h.facade.Recalculate(r.Context(), routeID, destination, h.actor(r)); err != nil {
		writePlannerError(w, r, err)
		return
	}
	writeJSONResponse(w, r, http.StatusOK, nil)
}

// writePlannerError maps the apperr taxonomy (spec.md §7) onto HTTP status
// codes, the way the teacher's handlers translate domain errors at the API
// boundary.
func writePlannerError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *apperr.ValidationError
	var conflictErr *apperr.ConflictError
	var capacityErr *apperr.CapacityInsufficientError
	var solverErr *apperr.SolverError
	var geocodeErr *apperr.GeocodeError
	var repositoryErr *apperr.RepositoryError

	switch {
	case errors.As(err, &validationErr):
		writeValidationError(w, r, validationErr.Error())
	case errors.As(err, &conflictErr):
		writeConflictError(w, r, conflictErr.Error())
	case errors.As(err, &capacityErr):
		writeConflictError(w, r, capacityErr.Error())
	case errors.As(err, &solverErr):
		writeErrorResponse(w, r, http.StatusUnprocessableEntity, "SOLVER_ERROR", solverErr.Error(), "")
	case errors.As(err, &geocodeErr):
		writeErrorResponse(w, r, http.StatusUnprocessableEntity, "GEOCODE_ERROR", geocodeErr.Error(), "")
	case errors.As(err, &repositoryErr):
		writeInternalServerError(w, r, repositoryErr)
	case errors.Is(err, entity.ErrRouteNotFound),
		errors.Is(err, entity.ErrEmployeeNotFound),
		errors.Is(err, entity.ErrVehicleNotFound),
		errors.Is(err, entity.ErrCompanyNotFound),
		errors.Is(err, entity.ErrRouteGroupNotFound),
		errors.Is(err, entity.ErrDestinationNotFound):
		writeNotFoundError(w, r, "resource")
	case errors.Is(err, apperr.ErrNoEligibleEmployees),
		errors.Is(err, apperr.ErrNoEligibleDriver):
		writeErrorResponse(w, r, http.StatusUnprocessableEntity, "NO_CANDIDATES", err.Error(), "")
	default:
		writeInternalServerError(w, r, err)
	}
}
