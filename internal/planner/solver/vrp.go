package solver

import (
	"errors"
	"sort"
)

// ErrNoVehicles is returned when a VRP is solved with an empty fleet but at
// least one customer to serve.
var ErrNoVehicles = errors.New("solver: no vehicles available")

// VRPRoute is one vehicle's planned closed tour depot -> Nodes... -> depot.
type VRPRoute struct {
	VehicleIndex int
	Nodes        []int
	DistanceM    int64
	DurationS    int64
}

// VRPResult is the outcome of SolveVRP: the routes that could be built, and
// the customer node indices that could not be fit into any vehicle
// (spec.md §4.6b: "pending" passengers dropped by the solver).
type VRPResult struct {
	Routes  []VRPRoute
	Dropped []int
}

type vrpRoute struct {
	nodes  []int
	demand int
}

// SolveVRP splits the customers reachable from depot across a fleet with
// per-vehicle capacities, minimizing total distance while allowing
// customers that do not fit anywhere to be dropped rather than fail the
// whole plan. Mirrors _resolver_vrp_multi's unary demand dimension with
// vehicle capacities. It takes no drop penalty and no time limit: a customer
// is dropped only when no vehicle has capacity left for it, and the
// heuristic runs to completion.
func SolveVRP(distance, duration Matrix, demand []int, capacities []int, depot int) (VRPResult, error) {
	var customers []int
	for i := range distance {
		if i != depot {
			customers = append(customers, i)
		}
	}
	if len(customers) == 0 {
		return VRPResult{}, nil
	}
	if len(capacities) == 0 {
		return VRPResult{}, ErrNoVehicles
	}

	maxCapacity := 0
	for _, c := range capacities {
		if c > maxCapacity {
			maxCapacity = c
		}
	}
	routes := clarkeWrightMerge(distance, demand, depot, customers, maxCapacity)
	assigned, dropped := assignToFleet(routes, capacities)

	result := VRPResult{Dropped: dropped}
	for vehicleIdx, nodes := range assigned {
		if len(nodes) == 0 {
			continue
		}
		ordered := twoOptClosed(distance, depot, nodes)
		result.Routes = append(result.Routes, VRPRoute{
			VehicleIndex: vehicleIdx,
			Nodes:        ordered,
			DistanceM:    tourCost(distance, depot, ordered),
			DurationS:    tourCost(duration, depot, ordered),
		})
	}

	sort.Slice(result.Routes, func(i, j int) bool {
		return result.Routes[i].VehicleIndex < result.Routes[j].VehicleIndex
	})
	sort.Ints(result.Dropped)

	return result, nil
}

// clarkeWrightMerge runs the classic savings construction: every customer
// starts in its own route, and routes merge along the highest-saving edges
// first as long as the combined demand stays within the largest available
// vehicle capacity.
func clarkeWrightMerge(dist Matrix, demand []int, depot int, customers []int, maxCapacity int) []*vrpRoute {
	routeOf := make(map[int]*vrpRoute, len(customers))
	for _, c := range customers {
		d := 1
		if demand != nil && c < len(demand) && demand[c] > 0 {
			d = demand[c]
		}
		routeOf[c] = &vrpRoute{nodes: []int{c}, demand: d}
	}

	type saving struct {
		i, j  int
		value int64
	}
	var savings []saving
	for idx, i := range customers {
		for _, j := range customers[idx+1:] {
			savings = append(savings, saving{i: i, j: j, value: dist[depot][i] + dist[depot][j] - dist[i][j]})
		}
	}
	sort.Slice(savings, func(a, b int) bool { return savings[a].value > savings[b].value })

	for _, s := range savings {
		ri, rj := routeOf[s.i], routeOf[s.j]
		if ri == rj {
			continue
		}
		if ri.demand+rj.demand > maxCapacity {
			continue
		}

		merged, ok := mergeAtEndpoints(ri, rj, s.i, s.j)
		if !ok {
			continue
		}

		combined := &vrpRoute{nodes: merged, demand: ri.demand + rj.demand}
		for _, n := range merged {
			routeOf[n] = combined
		}
	}

	seen := make(map[*vrpRoute]bool)
	var result []*vrpRoute
	for _, c := range customers {
		r := routeOf[c]
		if !seen[r] {
			seen[r] = true
			result = append(result, r)
		}
	}
	return result
}

// mergeAtEndpoints joins ri and rj into a single node list with i and j
// adjacent, provided both are route endpoints (an interior node can't be
// merged without breaking an existing link).
func mergeAtEndpoints(ri, rj *vrpRoute, i, j int) ([]int, bool) {
	switch {
	case last(ri.nodes) == i && first(rj.nodes) == j:
		return concat(ri.nodes, rj.nodes), true
	case first(ri.nodes) == i && last(rj.nodes) == j:
		return concat(rj.nodes, ri.nodes), true
	case last(ri.nodes) == i && last(rj.nodes) == j:
		return concat(ri.nodes, reversed(rj.nodes)), true
	case first(ri.nodes) == i && first(rj.nodes) == j:
		return concat(reversed(ri.nodes), rj.nodes), true
	default:
		return nil, false
	}
}

func first(nodes []int) int { return nodes[0] }
func last(nodes []int) int  { return nodes[len(nodes)-1] }

func reversed(nodes []int) []int {
	out := make([]int, len(nodes))
	for i, n := range nodes {
		out[len(nodes)-1-i] = n
	}
	return out
}

func concat(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}

// assignToFleet best-fits each savings route onto a vehicle large enough to
// carry it, largest routes first. A route that outgrows every unused
// vehicle sheds its lowest-priority (tail) customers until it fits; a route
// for which no vehicle remains at all is dropped entirely.
func assignToFleet(routes []*vrpRoute, capacities []int) ([][]int, []int) {
	sort.Slice(routes, func(i, j int) bool { return routes[i].demand > routes[j].demand })

	type vehicle struct {
		idx      int
		capacity int
	}
	vehicles := make([]vehicle, len(capacities))
	for i, cap := range capacities {
		vehicles[i] = vehicle{idx: i, capacity: cap}
	}
	sort.Slice(vehicles, func(i, j int) bool { return vehicles[i].capacity > vehicles[j].capacity })

	assigned := make([][]int, len(capacities))
	used := make([]bool, len(vehicles))
	var dropped []int

	for _, r := range routes {
		nodes := append([]int(nil), r.nodes...)
		demand := r.demand

		bestSlot := -1
		bestCapacity := -1
		for vi, v := range vehicles {
			if used[vi] || v.capacity < demand {
				continue
			}
			if bestSlot == -1 || v.capacity < bestCapacity {
				bestSlot = vi
				bestCapacity = v.capacity
			}
		}

		if bestSlot != -1 {
			used[bestSlot] = true
			assigned[vehicles[bestSlot].idx] = nodes
			continue
		}

		largestFree := -1
		for vi, v := range vehicles {
			if used[vi] {
				continue
			}
			if largestFree == -1 || v.capacity > vehicles[largestFree].capacity {
				largestFree = vi
			}
		}
		if largestFree == -1 {
			dropped = append(dropped, nodes...)
			continue
		}

		cap := vehicles[largestFree].capacity
		for len(nodes) > cap {
			dropped = append(dropped, nodes[len(nodes)-1])
			nodes = nodes[:len(nodes)-1]
		}
		used[largestFree] = true
		assigned[vehicles[largestFree].idx] = nodes
	}

	return assigned, dropped
}
