// Package planner implements the core route-planning pipeline: eligibility
// filtering (C4), driver selection (C5), fleet selection (C6), the
// single-vehicle (C7) and multi-vehicle VRP (C8) planners, the VRP result
// cache (C9), and the manual edit operations (C11).
//
// Grounded throughout on original_source/geo_rota/services/roteirizacao_service.py,
// whose private helpers (_filtrar_funcionarios_disponiveis,
// _selecionar_motorista, _selecionar_disponibilidade_veiculo,
// _resolver_ordem_embarque, _resolver_vrp_multi) define the exact contract
// each Go function below reproduces.
package planner

import (
	"context"
	"time"

	"github.com/Luks9/geo-rota/internal/domain/apperr"
	"github.com/Luks9/geo-rota/internal/domain/entity"
	"github.com/Luks9/geo-rota/internal/domain/repository"
)

// FilterEligible implements C4 (spec.md §4.3): employees active, members of
// the group, scheduled for (weekday, shift), unavailable-free, and not
// already booked elsewhere for (date, shift) — sorted by id.
func FilterEligible(ctx context.Context, employees repository.EmployeeRepository, group *entity.RouteGroup, date time.Time, shift entity.Shift) ([]*entity.Employee, error) {
	if !group.AdmitsWeekday(isoWeekday(date)) {
		return nil, nil
	}
	return employees.EligibleForGroup(ctx, group.ID, date, shift)
}

// isoWeekday maps time.Weekday (Sunday=0) to the spec's 0=Monday..6=Sunday
// convention, matching entity.isoWeekday and database.isoWeekdayOf.
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	return (wd + 6) % 7
}

// RequireEligible wraps FilterEligible with the ErrNoEligibleEmployees
// failure mode spec.md §4.5 step 2 and §7 require.
func RequireEligible(ctx context.Context, employees repository.EmployeeRepository, group *entity.RouteGroup, date time.Time, shift entity.Shift) ([]*entity.Employee, error) {
	candidates, err := FilterEligible(ctx, employees, group, date, shift)
	if err != nil {
		return nil, apperr.NewRepositoryError("eligibility filter", err)
	}
	if len(candidates) == 0 {
		return nil, apperr.ErrNoEligibleEmployees
	}
	return candidates, nil
}
