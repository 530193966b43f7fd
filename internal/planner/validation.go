package planner

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Luks9/geo-rota/internal/domain/apperr"
	"github.com/Luks9/geo-rota/internal/domain/entity"
	"github.com/Luks9/geo-rota/internal/domain/repository"
)

// ValidateOwnership implements the common company/group lookup both C7 and
// C8 start with: the group must exist and belong to the given company.
func ValidateOwnership(ctx context.Context, companies repository.CompanyRepository, groups repository.RouteGroupRepository, companyID, groupID uuid.UUID) (*entity.Company, *entity.RouteGroup, error) {
	company, err := companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, nil, apperr.NewRepositoryError("company lookup", err)
	}
	if company == nil {
		return nil, nil, apperr.NewValidationError("unknown company")
	}
	group, err := groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, nil, apperr.NewRepositoryError("group lookup", err)
	}
	if group == nil {
		return nil, nil, apperr.NewValidationError("unknown route group")
	}
	if group.CompanyID != company.ID {
		return nil, nil, apperr.NewValidationError("route group does not belong to the selected company")
	}
	return company, group, nil
}

// ValidateDateAndUniqueness rejects past dates and dates that already have a
// route for (company, group, shift), per spec.md §4.5 step 2 / §4.6 step 1.
func ValidateDateAndUniqueness(ctx context.Context, routes repository.RouteConflictChecker, companyID, groupID uuid.UUID, date time.Time, shift entity.Shift) error {
	today := time.Now()
	if truncateToDate(date).Before(truncateToDate(today)) {
		return apperr.NewValidationError(entity.ErrRouteDateInPast.Error())
	}
	exists, err := routes.RouteExists(ctx, companyID, groupID, date, shift)
	if err != nil {
		return apperr.NewRepositoryError("route existence check", err)
	}
	if exists {
		return apperr.NewValidationError(entity.ErrRouteAlreadyExists.Error())
	}
	return nil
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
