package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Luks9/geo-rota/internal/domain/entity"
	"github.com/Luks9/geo-rota/internal/domain/repository"
)

type vehicleRepository struct {
	db *sqlx.DB
}

// NewVehicleRepository creates a new vehicle repository implementation.
func NewVehicleRepository(db *sqlx.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error) {
	const query = `
		SELECT id, company_id, plate, type, seat_capacity, fuel_efficiency_km_l,
		       cost_tier, active, created_at, updated_at
		FROM vehicles
		WHERE id = $1`

	var v entity.Vehicle
	err := executorFrom(ctx, r.db).GetContext(ctx, &v, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}
