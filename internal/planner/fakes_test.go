package planner

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Luks9/geo-rota/internal/domain/entity"
)

// fakeCompanyRepository and fakeRouteGroupRepository back the ownership
// validation tests with plain in-memory maps, in place of a real database.

type fakeCompanyRepository struct {
	companies map[uuid.UUID]*entity.Company
}

func (f *fakeCompanyRepository) GetByID(_ context.Context, id uuid.UUID) (*entity.Company, error) {
	return f.companies[id], nil
}

type fakeRouteGroupRepository struct {
	groups  map[uuid.UUID]*entity.RouteGroup
	members map[uuid.UUID][]uuid.UUID
}

func (f *fakeRouteGroupRepository) GetByID(_ context.Context, id uuid.UUID) (*entity.RouteGroup, error) {
	return f.groups[id], nil
}

func (f *fakeRouteGroupRepository) MembersOf(_ context.Context, groupID uuid.UUID) ([]uuid.UUID, error) {
	return f.members[groupID], nil
}

type fakeRouteConflictChecker struct {
	exists bool
}

func (f *fakeRouteConflictChecker) ConflictForEmployee(_ context.Context, _ uuid.UUID, _ time.Time, _ entity.Shift, _ []uuid.UUID) (bool, error) {
	return false, nil
}

func (f *fakeRouteConflictChecker) ConflictForVehicle(_ context.Context, _ uuid.UUID, _ time.Time, _ entity.Shift, _ []uuid.UUID) (bool, error) {
	return false, nil
}

func (f *fakeRouteConflictChecker) RouteExists(_ context.Context, _, _ uuid.UUID, _ time.Time, _ entity.Shift) (bool, error) {
	return f.exists, nil
}

type fakeEmployeeRepository struct {
	byID     map[uuid.UUID]*entity.Employee
	eligible []*entity.Employee
}

func (f *fakeEmployeeRepository) GetByID(_ context.Context, id uuid.UUID) (*entity.Employee, error) {
	return f.byID[id], nil
}

func (f *fakeEmployeeRepository) GetByIDs(_ context.Context, ids []uuid.UUID) ([]*entity.Employee, error) {
	var out []*entity.Employee
	for _, id := range ids {
		if e, ok := f.byID[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepository) EligibleForGroup(_ context.Context, _ uuid.UUID, _ time.Time, _ entity.Shift) ([]*entity.Employee, error) {
	return f.eligible, nil
}
