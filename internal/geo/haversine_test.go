package geo

import (
	"math"
	"testing"
)

func TestDistanceKM_SamePointIsZero(t *testing.T) {
	if d := DistanceKM(-23.55, -46.63, -23.55, -46.63); d != 0 {
		t.Fatalf("expected 0, got %f", d)
	}
}

func TestDistanceKM_KnownPair(t *testing.T) {
	// Sao Paulo (-23.5505, -46.6333) to Rio de Janeiro (-22.9068, -43.1729):
	// ~357km great-circle distance.
	d := DistanceKM(-23.5505, -46.6333, -22.9068, -43.1729)
	if math.Abs(d-357) > 5 {
		t.Fatalf("expected ~357km, got %f", d)
	}
}

func TestDistanceMeters_RoundsToWholeMeters(t *testing.T) {
	m := DistanceMeters(-23.5505, -46.6333, -23.5505, -46.6333)
	if m != 0 {
		t.Fatalf("expected 0 meters for identical points, got %d", m)
	}
}

func TestDurationSeconds_AssumesConstantSpeed(t *testing.T) {
	// 32 km/h => 32000 meters in exactly 3600 seconds.
	got := DurationSeconds(32000)
	if got != 3600 {
		t.Fatalf("expected 3600s, got %d", got)
	}
}

func TestDurationSeconds_Zero(t *testing.T) {
	if got := DurationSeconds(0); got != 0 {
		t.Fatalf("expected 0s, got %d", got)
	}
}
