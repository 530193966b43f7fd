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

type employeeRepository struct {
	db *sqlx.DB
}

// NewEmployeeRepository creates a new employee repository implementation.
func NewEmployeeRepository(db *sqlx.DB) repository.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `id, company_id, full_name, national_id, email, phone, street, number,
	complement, neighborhood, city, state, zip, licensed, license_class, license_expiry,
	apt_to_drive, active, created_at, updated_at`

func (r *employeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	var e entity.Employee
	err := executorFrom(ctx, r.db).GetContext(ctx, &e, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *employeeRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Employee, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = ANY($1) ORDER BY id`

	var employees []*entity.Employee
	err := executorFrom(ctx, r.db).SelectContext(ctx, &employees, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	return employees, nil
}

// EligibleForGroup implements spec.md §4.3 steps 2-3: active members of the
// group whose work_schedules row for date's weekday+shift says available,
// with no active unavailability covering date, and not already assigned (as
// driver or passenger) on a non-canceled route for (date, shift).
func (r *employeeRepository) EligibleForGroup(ctx context.Context, groupID uuid.UUID, date time.Time, shift entity.Shift) ([]*entity.Employee, error) {
	weekday := isoWeekdayOf(date)

	query := `
		SELECT e.id, e.company_id, e.full_name, e.national_id, e.email, e.phone, e.street,
		       e.number, e.complement, e.neighborhood, e.city, e.state, e.zip, e.licensed,
		       e.license_class, e.license_expiry, e.apt_to_drive, e.active, e.created_at, e.updated_at
		FROM employees e
		JOIN employee_group_memberships m ON m.employee_id = e.id
		JOIN work_schedules ws ON ws.employee_id = e.id
			AND ws.weekday = $2 AND ws.shift = $3 AND ws.available = true
		WHERE m.group_id = $1
			AND e.active = true
			AND NOT EXISTS (
				SELECT 1 FROM unavailabilities u
				WHERE u.employee_id = e.id AND u.start_date <= $4 AND u.end_date >= $4
			)
			AND NOT EXISTS (
				SELECT 1 FROM assignments a
				JOIN routes r ON r.id = a.route_id
				WHERE a.employee_id = e.id
					AND r.date = $4 AND r.shift = $3
					AND r.status != $5
			)
		ORDER BY e.id`

	var employees []*entity.Employee
	err := executorFrom(ctx, r.db).SelectContext(ctx, &employees, query,
		groupID, weekday, shift, date, entity.RouteStatusCanceled)
	if err != nil {
		return nil, err
	}
	return employees, nil
}

func isoWeekdayOf(t time.Time) int {
	wd := int(t.Weekday())
	return (wd + 6) % 7
}
