package solver

import "testing"

func lineMatrix(n int) Matrix {
	m := make(Matrix, n)
	for i := range m {
		m[i] = make([]int64, n)
		for j := range m[i] {
			if i != j {
				m[i][j] = int64(abs(i - j))
			}
		}
	}
	return m
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestSolveTSP_OrdersIntermediateStopsAlongLine(t *testing.T) {
	// points laid out 0,1,2,3,4 on a line; start=0, end=4.
	dist := lineMatrix(5)

	order, err := SolveTSP(dist, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 3 {
		t.Fatalf("expected 3 intermediate stops, got %d: %v", len(order), order)
	}

	got := PathCost(dist, 0, 4, order)
	if got != 4 {
		t.Fatalf("expected optimal path cost 4, got %d for order %v", got, order)
	}
}

func TestSolveTSP_NoIntermediateStops(t *testing.T) {
	dist := lineMatrix(2)
	order, err := SolveTSP(dist, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 0 {
		t.Fatalf("expected no intermediate stops, got %v", order)
	}
}

func TestSolveTSP_InvalidEnd(t *testing.T) {
	dist := lineMatrix(3)
	if _, err := SolveTSP(dist, 0); err != ErrInvalidEnd {
		t.Fatalf("expected ErrInvalidEnd, got %v", err)
	}
	if _, err := SolveTSP(dist, 3); err != ErrInvalidEnd {
		t.Fatalf("expected ErrInvalidEnd, got %v", err)
	}
}

func TestSolveVRP_SplitsAcrossCapacityAndDrops(t *testing.T) {
	// depot at 0; customers 1..4 spaced out on a line so nearby pairs save
	// the most by merging. Two single-seat vehicles can carry 2 customers
	// total, so the rest must be dropped.
	dist := lineMatrix(5)
	dur := lineMatrix(5)
	demand := []int{0, 1, 1, 1, 1}

	result, err := SolveVRP(dist, dur, demand, []int{1, 1}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	servedCount := 0
	for _, r := range result.Routes {
		servedCount += len(r.Nodes)
	}
	if servedCount+len(result.Dropped) != 4 {
		t.Fatalf("expected all 4 customers accounted for, served=%d dropped=%v", servedCount, result.Dropped)
	}
	if servedCount != 2 {
		t.Fatalf("expected exactly 2 customers served by 2 single-seat vehicles, got %d", servedCount)
	}
}

func TestSolveVRP_NoVehicles(t *testing.T) {
	dist := lineMatrix(2)
	_, err := SolveVRP(dist, dist, []int{0, 1}, nil, 0)
	if err != ErrNoVehicles {
		t.Fatalf("expected ErrNoVehicles, got %v", err)
	}
}

func TestSolveVRP_NoCustomers(t *testing.T) {
	dist := lineMatrix(1)
	result, err := SolveVRP(dist, dist, []int{0}, []int{4}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Routes) != 0 || len(result.Dropped) != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
}

func TestSolveVRP_SingleVehicleFitsEveryone(t *testing.T) {
	dist := lineMatrix(4)
	dur := lineMatrix(4)
	demand := []int{0, 1, 1, 1}

	result, err := SolveVRP(dist, dur, demand, []int{10}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Dropped) != 0 {
		t.Fatalf("expected no drops, got %v", result.Dropped)
	}
	if len(result.Routes) != 1 || len(result.Routes[0].Nodes) != 3 {
		t.Fatalf("expected single route serving all 3 customers, got %+v", result.Routes)
	}
}
