package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Luks9/geo-rota/internal/domain/entity"
	"github.com/Luks9/geo-rota/internal/domain/repository"
)

type routeGroupRepository struct {
	db *sqlx.DB
}

// NewRouteGroupRepository creates a new route group repository implementation.
func NewRouteGroupRepository(db *sqlx.DB) repository.RouteGroupRepository {
	return &routeGroupRepository{db: db}
}

func (r *routeGroupRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.RouteGroup, error) {
	const query = `
		SELECT id, company_id, name, regime, description, default_weekdays, created_at, updated_at
		FROM route_groups
		WHERE id = $1`

	var group entity.RouteGroup
	var weekdays pq.Int64Array
	row := executorFrom(ctx, r.db).QueryRowxContext(ctx, query, id)
	err := row.Scan(&group.ID, &group.CompanyID, &group.Name, &group.Regime, &group.Description, &weekdays, &group.CreatedAt, &group.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	for _, w := range weekdays {
		group.DefaultWeekdays = append(group.DefaultWeekdays, int(w))
	}
	return &group, nil
}

// MembersOf returns the employee ids belonging to groupID, per
// employee_group_memberships.
func (r *routeGroupRepository) MembersOf(ctx context.Context, groupID uuid.UUID) ([]uuid.UUID, error) {
	const query = `
		SELECT employee_id
		FROM employee_group_memberships
		WHERE group_id = $1`

	rows, err := executorFrom(ctx, r.db).QueryxContext(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
