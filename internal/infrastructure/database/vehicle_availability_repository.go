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

type vehicleAvailabilityRepository struct {
	db *sqlx.DB
}

// NewVehicleAvailabilityRepository creates a new vehicle availability repository implementation.
func NewVehicleAvailabilityRepository(db *sqlx.DB) repository.VehicleAvailabilityRepository {
	return &vehicleAvailabilityRepository{db: db}
}

func (r *vehicleAvailabilityRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.VehicleAvailability, error) {
	const query = `
		SELECT id, vehicle_id, group_id, tenure, period_start, period_end,
		       weekday_mask, monthly_renewal, active, created_at, updated_at
		FROM vehicle_availabilities
		WHERE id = $1`

	var a entity.VehicleAvailability
	var mask pq.Int64Array
	row := executorFrom(ctx, r.db).QueryRowxContext(ctx, query, id)
	err := row.Scan(&a.ID, &a.VehicleID, &a.GroupID, &a.Tenure, &a.PeriodStart, &a.PeriodEnd,
		&mask, &a.MonthlyRenewal, &a.Active, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	for _, w := range mask {
		a.WeekdayMask = append(a.WeekdayMask, int(w))
	}
	return &a, nil
}

// FleetFor implements repository.VehicleAvailabilityRepository.FleetFor: every
// (availability, vehicle) pair belonging to companyID whose availability
// window covers date for groupID. Rentals are excluded in SQL when
// includeRentals is false. The weekday mask is not checked here: callers
// filter on it in Go via entity.VehicleAvailability.Covers, since the mask
// comparison is cheaper to express there than as a Postgres
// array-containment clause.
func (r *vehicleAvailabilityRepository) FleetFor(ctx context.Context, companyID, groupID uuid.UUID, date time.Time, includeRentals bool) ([]repository.FleetCandidate, error) {
	query := `
		SELECT va.id, va.vehicle_id, va.group_id, va.tenure, va.period_start, va.period_end,
		       va.weekday_mask, va.monthly_renewal, va.active, va.created_at, va.updated_at,
		       v.id, v.company_id, v.plate, v.type, v.seat_capacity, v.fuel_efficiency_km_l,
		       v.cost_tier, v.active, v.created_at, v.updated_at
		FROM vehicle_availabilities va
		JOIN vehicles v ON v.id = va.vehicle_id
		WHERE v.company_id = $1
			AND va.active = true
			AND v.active = true
			AND va.period_start <= $2 AND va.period_end >= $2
			AND (va.group_id IS NULL OR va.group_id = $3)`
	args := []interface{}{companyID, date, groupID}

	if !includeRentals {
		query += ` AND va.tenure != $4`
		args = append(args, entity.TenureRental)
	}
	query += ` ORDER BY v.id`

	rows, err := executorFrom(ctx, r.db).QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []repository.FleetCandidate
	for rows.Next() {
		var a entity.VehicleAvailability
		var v entity.Vehicle
		var mask pq.Int64Array
		if err := rows.Scan(&a.ID, &a.VehicleID, &a.GroupID, &a.Tenure, &a.PeriodStart, &a.PeriodEnd,
			&mask, &a.MonthlyRenewal, &a.Active, &a.CreatedAt, &a.UpdatedAt,
			&v.ID, &v.CompanyID, &v.Plate, &v.Type, &v.SeatCapacity, &v.FuelEfficiency,
			&v.CostTier, &v.Active, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		for _, w := range mask {
			a.WeekdayMask = append(a.WeekdayMask, int(w))
		}
		candidates = append(candidates, repository.FleetCandidate{Availability: &a, Vehicle: &v})
	}
	return candidates, rows.Err()
}
