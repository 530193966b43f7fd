package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Luks9/geo-rota/internal/domain/entity"
	"github.com/Luks9/geo-rota/internal/domain/repository"
)

// uuidArray adapts a (possibly nil) slice of ignored route ids for use with
// Postgres' ANY($n); pq.Array renders nil as an empty array, so "NOT (id =
// ANY($n))" is true for every row when nothing is being ignored.
func uuidArray(ids []uuid.UUID) interface{} {
	return pq.Array(ids)
}

type routeRepository struct {
	db *sqlx.DB
}

// NewRouteRepository creates a new route repository implementation.
func NewRouteRepository(db *sqlx.DB) repository.RouteRepository {
	return &routeRepository{db: db}
}

// WithTx runs fn inside a single Postgres transaction, shared across every
// repository in this package via the context key set up in tx.go — a plan
// or edit either persists the route, its assignments and its logs together,
// or leaves no trace.
func (r *routeRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.db, fn)
}

func (r *routeRepository) Create(ctx context.Context, route *entity.Route) error {
	const query = `
		INSERT INTO routes (
			id, company_id, group_id, vehicle_id, driver_id, availability_id,
			destination_id, date, shift, status, mode, sequence,
			distance_km, cost, notes, created_at, updated_at
		) VALUES (
			:id, :company_id, :group_id, :vehicle_id, :driver_id, :availability_id,
			:destination_id, :date, :shift, :status, :mode, :sequence,
			:distance_km, :cost, :notes, :created_at, :updated_at
		)`
	_, err := executorFrom(ctx, r.db).NamedExecContext(ctx, query, route)
	return err
}

func (r *routeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Route, error) {
	const query = `
		SELECT id, company_id, group_id, vehicle_id, driver_id, availability_id,
		       destination_id, date, shift, status, mode, sequence,
		       distance_km, cost, notes, created_at, updated_at
		FROM routes
		WHERE id = $1`

	var route entity.Route
	err := executorFrom(ctx, r.db).GetContext(ctx, &route, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &route, nil
}

func (r *routeRepository) Update(ctx context.Context, route *entity.Route) error {
	const query = `
		UPDATE routes SET
			vehicle_id = :vehicle_id,
			driver_id = :driver_id,
			availability_id = :availability_id,
			destination_id = :destination_id,
			date = :date,
			shift = :shift,
			status = :status,
			mode = :mode,
			distance_km = :distance_km,
			cost = :cost,
			notes = :notes,
			updated_at = :updated_at
		WHERE id = :id`
	_, err := executorFrom(ctx, r.db).NamedExecContext(ctx, query, route)
	return err
}

func (r *routeRepository) CreateAssignment(ctx context.Context, a *entity.Assignment) error {
	const query = `
		INSERT INTO assignments (
			id, route_id, employee_id, role, boarding_order, boarding_time,
			latitude, longitude
		) VALUES (
			:id, :route_id, :employee_id, :role, :boarding_order, :boarding_time,
			:latitude, :longitude
		)`
	_, err := executorFrom(ctx, r.db).NamedExecContext(ctx, query, a)
	return err
}

func (r *routeRepository) AssignmentsForRoute(ctx context.Context, routeID uuid.UUID) ([]*entity.Assignment, error) {
	const query = `
		SELECT id, route_id, employee_id, role, boarding_order, boarding_time,
		       latitude, longitude
		FROM assignments
		WHERE route_id = $1
		ORDER BY boarding_order NULLS LAST, id`

	var assignments []*entity.Assignment
	err := executorFrom(ctx, r.db).SelectContext(ctx, &assignments, query, routeID)
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

// ReplaceAssignments implements the wholesale swap SPEC_FULL.md's C11
// "replace passengers" operation needs: the driver seat is untouched, every
// passenger/reserve row for the route is deleted and replaced in one go.
func (r *routeRepository) ReplaceAssignments(ctx context.Context, routeID uuid.UUID, assignments []*entity.Assignment) error {
	exec := executorFrom(ctx, r.db)

	const del = `DELETE FROM assignments WHERE route_id = $1 AND role != $2`
	if _, err := exec.ExecContext(ctx, del, routeID, entity.RoleDriver); err != nil {
		return err
	}

	const insert = `
		INSERT INTO assignments (
			id, route_id, employee_id, role, boarding_order, boarding_time,
			latitude, longitude
		) VALUES (
			:id, :route_id, :employee_id, :role, :boarding_order, :boarding_time,
			:latitude, :longitude
		)`
	for _, a := range assignments {
		if a.Role == entity.RoleDriver {
			continue
		}
		if _, err := exec.NamedExecContext(ctx, insert, a); err != nil {
			return err
		}
	}
	return nil
}

func (r *routeRepository) DeleteAssignment(ctx context.Context, routeID, employeeID uuid.UUID) error {
	const query = `DELETE FROM assignments WHERE route_id = $1 AND employee_id = $2`
	_, err := executorFrom(ctx, r.db).ExecContext(ctx, query, routeID, employeeID)
	return err
}

func (r *routeRepository) CreatePending(ctx context.Context, p *entity.PendingEmployee) error {
	const query = `
		INSERT INTO pending_employees (
			id, route_id, employee_id, date, shift, reason, group_id
		) VALUES (
			:id, :route_id, :employee_id, :date, :shift, :reason, :group_id
		)`
	_, err := executorFrom(ctx, r.db).NamedExecContext(ctx, query, p)
	return err
}

func (r *routeRepository) PendingForRoute(ctx context.Context, routeID uuid.UUID) ([]*entity.PendingEmployee, error) {
	const query = `
		SELECT id, route_id, employee_id, date, shift, reason, group_id
		FROM pending_employees
		WHERE route_id = $1
		ORDER BY id`

	var pending []*entity.PendingEmployee
	err := executorFrom(ctx, r.db).SelectContext(ctx, &pending, query, routeID)
	if err != nil {
		return nil, err
	}
	return pending, nil
}

func (r *routeRepository) CreateGenerationLog(ctx context.Context, l *entity.GenerationLog) error {
	const query = `
		INSERT INTO generation_logs (
			id, route_id, generated_at, employee_count, vehicle_id, driver_id, notes
		) VALUES (
			:id, :route_id, :generated_at, :employee_count, :vehicle_id, :driver_id, :notes
		)`
	_, err := executorFrom(ctx, r.db).NamedExecContext(ctx, query, l)
	return err
}

func (r *routeRepository) CreateAdminLog(ctx context.Context, l *entity.AdminLog) error {
	const query = `
		INSERT INTO admin_logs (
			id, route_id, actor, action, details, created_at
		) VALUES (
			:id, :route_id, :actor, :action, :details, :created_at
		)`
	_, err := executorFrom(ctx, r.db).NamedExecContext(ctx, query, l)
	return err
}

func (r *routeRepository) CreateErrorLog(ctx context.Context, l *entity.ErrorLog) error {
	const query = `
		INSERT INTO error_logs (
			id, route_id, recorded_at, context, message, details
		) VALUES (
			:id, :route_id, :recorded_at, :context, :message, :details
		)`
	_, err := executorFrom(ctx, r.db).NamedExecContext(ctx, query, l)
	return err
}

// NextSequence implements spec.md §4.7: sequence numbers for a (group, date,
// shift) triple start at 1 and increase by one per route already generated.
func (r *routeRepository) NextSequence(ctx context.Context, groupID uuid.UUID, date time.Time, shift entity.Shift) (int, error) {
	const query = `
		SELECT COALESCE(MAX(sequence), 0) + 1
		FROM routes
		WHERE group_id = $1 AND date = $2 AND shift = $3`

	var next int
	err := executorFrom(ctx, r.db).GetContext(ctx, &next, query, groupID, date, shift)
	if err != nil {
		return 0, err
	}
	return next, nil
}

// ConflictForEmployee implements spec.md §4.7's double-booking scan: true if
// employeeID already holds a non-canceled assignment on (date, shift),
// ignoring the route ids in ignore (used when re-checking a route being
// edited in place).
func (r *routeRepository) ConflictForEmployee(ctx context.Context, employeeID uuid.UUID, date time.Time, shift entity.Shift, ignore []uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM assignments a
			JOIN routes r ON r.id = a.route_id
			WHERE a.employee_id = $1
				AND r.date = $2 AND r.shift = $3
				AND r.status != $4
				AND NOT (r.id = ANY($5))
		)`

	var conflict bool
	err := executorFrom(ctx, r.db).GetContext(ctx, &conflict, query,
		employeeID, date, shift, entity.RouteStatusCanceled, uuidArray(ignore))
	if err != nil {
		return false, err
	}
	return conflict, nil
}

func (r *routeRepository) ConflictForVehicle(ctx context.Context, vehicleID uuid.UUID, date time.Time, shift entity.Shift, ignore []uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM routes r
			WHERE r.vehicle_id = $1
				AND r.date = $2 AND r.shift = $3
				AND r.status != $4
				AND NOT (r.id = ANY($5))
		)`

	var conflict bool
	err := executorFrom(ctx, r.db).GetContext(ctx, &conflict, query,
		vehicleID, date, shift, entity.RouteStatusCanceled, uuidArray(ignore))
	if err != nil {
		return false, err
	}
	return conflict, nil
}

func (r *routeRepository) RouteExists(ctx context.Context, companyID, groupID uuid.UUID, date time.Time, shift entity.Shift) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM routes
			WHERE company_id = $1 AND group_id = $2 AND date = $3 AND shift = $4
				AND status != $5
		)`

	var exists bool
	err := executorFrom(ctx, r.db).GetContext(ctx, &exists, query,
		companyID, groupID, date, shift, entity.RouteStatusCanceled)
	if err != nil {
		return false, err
	}
	return exists, nil
}
