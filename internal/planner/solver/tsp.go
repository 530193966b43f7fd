package solver

import "errors"

// ErrInvalidEnd is returned when the fixed end index does not name a
// reachable node distinct from the start.
var ErrInvalidEnd = errors.New("solver: invalid fixed end index")

// SolveTSP orders the intermediate nodes of a path that starts at node 0 and
// must end at node `end`, minimizing total distance. It mirrors
// _resolver_ordem_embarque: node 0 is the driver's origin, `end` is the fixed
// destination, and the return value lists only the intermediate stops in
// visiting order.
func SolveTSP(dist Matrix, end int) ([]int, error) {
	n := len(dist)
	if end <= 0 || end >= n {
		return nil, ErrInvalidEnd
	}

	var intermediate []int
	for i := 0; i < n; i++ {
		if i != 0 && i != end {
			intermediate = append(intermediate, i)
		}
	}
	if len(intermediate) == 0 {
		return nil, nil
	}

	order := nearestNeighborPath(dist, 0, end, intermediate)
	order = twoOptPath(dist, 0, end, order)
	return order, nil
}

// nearestNeighborPath greedily extends a path from `start`, always choosing
// the closest remaining node. `end` is not appended; the result holds only
// the nodes passed in.
func nearestNeighborPath(dist Matrix, start, end int, nodes []int) []int {
	remaining := append([]int(nil), nodes...)
	order := make([]int, 0, len(nodes))
	current := start

	for len(remaining) > 0 {
		bestIdx := 0
		bestDist := dist[current][remaining[0]]
		for i := 1; i < len(remaining); i++ {
			if d := dist[current][remaining[i]]; d < bestDist {
				bestDist = d
				bestIdx = i
			}
		}
		current = remaining[bestIdx]
		order = append(order, current)
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}
	_ = end
	return order
}

// twoOptPath improves an open path start -> order... -> end by edge-swap
// local search, keeping both endpoints fixed.
func twoOptPath(dist Matrix, start, end int, order []int) []int {
	if len(order) < 2 {
		return order
	}

	path := append([]int(nil), order...)
	improved := true
	for improved {
		improved = false
		for i := 0; i < len(path)-1; i++ {
			for j := i + 1; j < len(path); j++ {
				prevI := start
				if i > 0 {
					prevI = path[i-1]
				}
				nextJ := end
				if j < len(path)-1 {
					nextJ = path[j+1]
				}

				before := dist[prevI][path[i]] + dist[path[j]][nextJ]
				after := dist[prevI][path[j]] + dist[path[i]][nextJ]
				if after < before {
					reverse(path, i, j)
					improved = true
				}
			}
		}
	}
	return path
}

// PathCost sums an open path start -> order... -> end.
func PathCost(dist Matrix, start, end int, order []int) int64 {
	if len(order) == 0 {
		return dist[start][end]
	}
	total := dist[start][order[0]]
	for k := 0; k < len(order)-1; k++ {
		total += dist[order[k]][order[k+1]]
	}
	total += dist[order[len(order)-1]][end]
	return total
}
