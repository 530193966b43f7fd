package planner

import (
	"testing"

	"github.com/google/uuid"

	"github.com/Luks9/geo-rota/internal/domain/apperr"
	"github.com/Luks9/geo-rota/internal/domain/entity"
)

func newCandidate(aptToDrive, licensed bool) *entity.Employee {
	return &entity.Employee{
		ID:         uuid.New(),
		AptToDrive: aptToDrive,
		Licensed:   licensed,
	}
}

func TestSelectDriver_ManualDriverMustBeEligible(t *testing.T) {
	eligible := newCandidate(true, true)
	ineligible := newCandidate(false, true)
	candidates := []*entity.Employee{eligible, ineligible}

	got, err := SelectDriver(candidates, &eligible.ID, nil, entity.Coordinates{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != eligible.ID {
		t.Fatalf("expected eligible candidate to be picked")
	}

	if _, err := SelectDriver(candidates, &ineligible.ID, nil, entity.Coordinates{}); err == nil {
		t.Fatal("expected error for ineligible manual driver")
	}
}

func TestSelectDriver_NoEligibleCandidatesErrors(t *testing.T) {
	candidates := []*entity.Employee{newCandidate(false, false)}
	_, err := SelectDriver(candidates, nil, nil, entity.Coordinates{})
	if err != apperr.ErrNoEligibleDriver {
		t.Fatalf("expected ErrNoEligibleDriver, got %v", err)
	}
}

func TestSelectDriver_FallsBackToFirstEligibleWhenCoordinatesMissing(t *testing.T) {
	a := newCandidate(true, true)
	b := newCandidate(true, true)
	candidates := []*entity.Employee{a, b}

	got, err := SelectDriver(candidates, nil, map[uuid.UUID]entity.Coordinates{}, entity.Coordinates{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != a.ID {
		t.Fatalf("expected fallback to first eligible candidate, got %v", got.ID)
	}
}

func TestSelectDriver_PicksShortestTripAmongCoordinateCandidates(t *testing.T) {
	near := newCandidate(true, true)
	far := newCandidate(true, true)
	candidates := []*entity.Employee{near, far}

	destination := entity.Coordinates{Latitude: 0, Longitude: 0}
	coords := map[uuid.UUID]entity.Coordinates{
		near.ID: {Latitude: 0, Longitude: 0.01},
		far.ID:  {Latitude: 0, Longitude: 5},
	}

	got, err := SelectDriver(candidates, nil, coords, destination)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != far.ID {
		t.Fatalf("expected farther candidate %v to win (it collects the nearer one on the way, the shorter trip), got %v", far.ID, got.ID)
	}
}
