package planner

import (
	"github.com/Luks9/geo-rota/internal/domain/entity"
	"github.com/Luks9/geo-rota/internal/geo"
	"github.com/Luks9/geo-rota/internal/planner/solver"
)

// distanceMatrixFromCoordinates builds a pure-geodesic cost matrix, used by
// the driver selector's trial placements (spec.md §4.4) where calling out to
// the road-routing matrix provider for every candidate would be wasteful.
func distanceMatrixFromCoordinates(points []entity.Coordinates) solver.Matrix {
	n := len(points)
	m := make(solver.Matrix, n)
	for i := range m {
		m[i] = make([]int64, n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			m[i][j] = geo.DistanceMeters(points[i].Latitude, points[i].Longitude, points[j].Latitude, points[j].Longitude)
		}
	}
	return m
}

// totalGeodesicDistanceKM sums the ordered path driver -> passengers... ->
// destination in kilometers, matching _calcular_distancia_total (spec.md §4.5
// step 8: "sum of segment geodesic distances").
func totalGeodesicDistanceKM(points []entity.Coordinates, order []int, endIdx int) float64 {
	if len(order) == 0 {
		return geo.DistanceKM(points[0].Latitude, points[0].Longitude, points[endIdx].Latitude, points[endIdx].Longitude)
	}

	total := 0.0
	current := points[0]
	for _, idx := range order {
		next := points[idx]
		total += geo.DistanceKM(current.Latitude, current.Longitude, next.Latitude, next.Longitude)
		current = next
	}
	total += geo.DistanceKM(current.Latitude, current.Longitude, points[endIdx].Latitude, points[endIdx].Longitude)
	return total
}
