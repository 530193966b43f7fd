package planner

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Luks9/geo-rota/internal/domain/entity"
)

func TestValidateOwnership_Success(t *testing.T) {
	companyID := uuid.New()
	groupID := uuid.New()
	companies := &fakeCompanyRepository{companies: map[uuid.UUID]*entity.Company{
		companyID: {ID: companyID},
	}}
	groups := &fakeRouteGroupRepository{groups: map[uuid.UUID]*entity.RouteGroup{
		groupID: {ID: groupID, CompanyID: companyID},
	}}

	company, group, err := ValidateOwnership(nil, companies, groups, companyID, groupID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if company.ID != companyID || group.ID != groupID {
		t.Fatal("unexpected company/group returned")
	}
}

func TestValidateOwnership_UnknownCompany(t *testing.T) {
	companies := &fakeCompanyRepository{companies: map[uuid.UUID]*entity.Company{}}
	groups := &fakeRouteGroupRepository{groups: map[uuid.UUID]*entity.RouteGroup{}}

	if _, _, err := ValidateOwnership(nil, companies, groups, uuid.New(), uuid.New()); err == nil {
		t.Fatal("expected error for unknown company")
	}
}

func TestValidateOwnership_GroupBelongsToDifferentCompany(t *testing.T) {
	companyID := uuid.New()
	otherCompanyID := uuid.New()
	groupID := uuid.New()
	companies := &fakeCompanyRepository{companies: map[uuid.UUID]*entity.Company{
		companyID: {ID: companyID},
	}}
	groups := &fakeRouteGroupRepository{groups: map[uuid.UUID]*entity.RouteGroup{
		groupID: {ID: groupID, CompanyID: otherCompanyID},
	}}

	if _, _, err := ValidateOwnership(nil, companies, groups, companyID, groupID); err == nil {
		t.Fatal("expected error for mismatched group ownership")
	}
}

func TestValidateDateAndUniqueness_RejectsPastDate(t *testing.T) {
	checker := &fakeRouteConflictChecker{exists: false}
	past := time.Now().AddDate(0, 0, -1)

	err := ValidateDateAndUniqueness(nil, checker, uuid.New(), uuid.New(), past, entity.ShiftMorning)
	if err == nil {
		t.Fatal("expected error for past date")
	}
}

func TestValidateDateAndUniqueness_RejectsExistingRoute(t *testing.T) {
	checker := &fakeRouteConflictChecker{exists: true}
	future := time.Now().AddDate(0, 0, 1)

	err := ValidateDateAndUniqueness(nil, checker, uuid.New(), uuid.New(), future, entity.ShiftMorning)
	if err == nil {
		t.Fatal("expected error for pre-existing route")
	}
}

func TestValidateDateAndUniqueness_AcceptsFutureDateWithNoExistingRoute(t *testing.T) {
	checker := &fakeRouteConflictChecker{exists: false}
	future := time.Now().AddDate(0, 0, 1)

	if err := ValidateDateAndUniqueness(nil, checker, uuid.New(), uuid.New(), future, entity.ShiftMorning); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
