package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Luks9/geo-rota/internal/domain/entity"
	"github.com/Luks9/geo-rota/internal/domain/repository"
)

type destinationRepository struct {
	db *sqlx.DB
}

// NewDestinationRepository creates a new destination repository implementation.
func NewDestinationRepository(db *sqlx.DB) repository.DestinationRepository {
	return &destinationRepository{db: db}
}

func (r *destinationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Destination, error) {
	const query = `
		SELECT id, company_id, name, street, number, complement, neighborhood,
		       city, state, zip, latitude, longitude, active, created_at, updated_at
		FROM destinations
		WHERE id = $1`

	var d entity.Destination
	err := executorFrom(ctx, r.db).GetContext(ctx, &d, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *destinationRepository) Create(ctx context.Context, d *entity.Destination) error {
	const query = `
		INSERT INTO destinations (
			id, company_id, name, street, number, complement, neighborhood,
			city, state, zip, latitude, longitude, active, created_at, updated_at
		) VALUES (
			:id, :company_id, :name, :street, :number, :complement, :neighborhood,
			:city, :state, :zip, :latitude, :longitude, :active, :created_at, :updated_at
		)`
	_, err := executorFrom(ctx, r.db).NamedExecContext(ctx, query, d)
	return err
}

func (r *destinationRepository) Update(ctx context.Context, d *entity.Destination) error {
	const query = `
		UPDATE destinations SET
			name = :name, street = :street, number = :number, complement = :complement,
			neighborhood = :neighborhood, city = :city, state = :state, zip = :zip,
			latitude = :latitude, longitude = :longitude, active = :active, updated_at = :updated_at
		WHERE id = :id`
	_, err := executorFrom(ctx, r.db).NamedExecContext(ctx, query, d)
	return err
}
