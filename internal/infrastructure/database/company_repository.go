package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Luks9/geo-rota/internal/domain/entity"
	"github.com/Luks9/geo-rota/internal/domain/repository"
)

type companyRepository struct {
	db *sqlx.DB
}

// NewCompanyRepository creates a new company repository implementation.
func NewCompanyRepository(db *sqlx.DB) repository.CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	const query = `
		SELECT id, code, name, base_address, city, state, zip, created_at, updated_at
		FROM companies
		WHERE id = $1`

	var company entity.Company
	err := executorFrom(ctx, r.db).GetContext(ctx, &company, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &company, nil
}
