package planner

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Luks9/geo-rota/internal/domain/apperr"
	"github.com/Luks9/geo-rota/internal/domain/entity"
)

func TestFilterEligible_WeekdayNotAdmittedReturnsEmpty(t *testing.T) {
	// DefaultWeekdays={1,2,3} is Tue/Wed/Thu under the 0=Monday..6=Sunday
	// convention. 2026-08-03 is a real Monday (iso weekday 0), which must be
	// rejected; a naive int(date.Weekday()) conversion (Go's Sunday=0) would
	// instead see Monday as 1 and wrongly admit it.
	group := &entity.RouteGroup{ID: uuid.New(), DefaultWeekdays: []int{1, 2, 3}}
	employees := &fakeEmployeeRepository{eligible: []*entity.Employee{{ID: uuid.New()}}}

	monday := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)

	got, err := FilterEligible(nil, employees, group, monday, entity.ShiftMorning)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no eligible employees on an inadmissible weekday, got %d", len(got))
	}
}

func TestFilterEligible_AdmitsMatchingIsoWeekday(t *testing.T) {
	// Under the 0=Monday..6=Sunday convention, 2026-08-03 (a real Monday)
	// has iso weekday 0.
	group := &entity.RouteGroup{ID: uuid.New(), DefaultWeekdays: []int{0, 2, 4}}
	want := []*entity.Employee{{ID: uuid.New()}}
	employees := &fakeEmployeeRepository{eligible: want}

	monday := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)

	got, err := FilterEligible(nil, employees, group, monday, entity.ShiftMorning)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != want[0].ID {
		t.Fatalf("expected Monday to be admitted under iso weekday 0")
	}
}

func TestFilterEligible_EmptyWeekdaySetAdmitsEveryDay(t *testing.T) {
	group := &entity.RouteGroup{ID: uuid.New(), DefaultWeekdays: nil}
	want := []*entity.Employee{{ID: uuid.New()}}
	employees := &fakeEmployeeRepository{eligible: want}

	got, err := FilterEligible(nil, employees, group, time.Now(), entity.ShiftMorning)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != want[0].ID {
		t.Fatalf("expected employees.EligibleForGroup result to pass through unchanged")
	}
}

func TestRequireEligible_NoCandidatesErrors(t *testing.T) {
	group := &entity.RouteGroup{ID: uuid.New(), DefaultWeekdays: nil}
	employees := &fakeEmployeeRepository{eligible: nil}

	_, err := RequireEligible(nil, employees, group, time.Now(), entity.ShiftMorning)
	if err != apperr.ErrNoEligibleEmployees {
		t.Fatalf("expected ErrNoEligibleEmployees, got %v", err)
	}
}

func TestRequireEligible_ReturnsCandidates(t *testing.T) {
	group := &entity.RouteGroup{ID: uuid.New(), DefaultWeekdays: nil}
	want := []*entity.Employee{{ID: uuid.New()}, {ID: uuid.New()}}
	employees := &fakeEmployeeRepository{eligible: want}

	got, err := RequireEligible(nil, employees, group, time.Now(), entity.ShiftMorning)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
}
