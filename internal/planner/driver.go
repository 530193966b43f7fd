package planner

import (
	"github.com/google/uuid"

	"github.com/Luks9/geo-rota/internal/domain/apperr"
	"github.com/Luks9/geo-rota/internal/domain/entity"
	"github.com/Luks9/geo-rota/internal/planner/solver"
)

// SelectDriver implements C5 (spec.md §4.4). When manualDriverID is set, it
// must name an apt+licensed candidate. Otherwise every apt+licensed
// candidate is trial-placed at position 0 of the pickup order and the one
// yielding the shortest estimated trip wins; candidates whose estimate fails
// to solve are skipped, and if none solve the first apt+licensed candidate
// is returned (mirrors _selecionar_motorista's fallback).
func SelectDriver(candidates []*entity.Employee, manualDriverID *uuid.UUID, coordinates map[uuid.UUID]entity.Coordinates, destination entity.Coordinates) (*entity.Employee, error) {
	if manualDriverID != nil {
		for _, c := range candidates {
			if c.ID == *manualDriverID && c.IsEligibleDriver() {
				return c, nil
			}
		}
		return nil, apperr.NewValidationError("manual driver is not eligible to drive")
	}

	var eligible []*entity.Employee
	for _, c := range candidates {
		if c.IsEligibleDriver() {
			eligible = append(eligible, c)
		}
	}
	if len(eligible) == 0 {
		return nil, apperr.ErrNoEligibleDriver
	}

	var best *entity.Employee
	var bestDistance int64 = -1

	for _, candidate := range eligible {
		driverCoord, ok := coordinates[candidate.ID]
		if !ok {
			continue
		}

		others := make([]*entity.Employee, 0, len(candidates)-1)
		for _, c := range candidates {
			if c.ID != candidate.ID {
				others = append(others, c)
			}
		}

		points := make([]entity.Coordinates, 0, len(others)+2)
		points = append(points, driverCoord)
		ok = true
		for _, o := range others {
			coord, found := coordinates[o.ID]
			if !found {
				ok = false
				break
			}
			points = append(points, coord)
		}
		if !ok {
			continue
		}
		points = append(points, destination)

		dist := distanceMatrixFromCoordinates(points)
		endIdx := len(points) - 1
		order, err := solver.SolveTSP(dist, endIdx)
		if err != nil {
			continue
		}

		distance := solver.PathCost(dist, 0, endIdx, order)
		if bestDistance == -1 || distance < bestDistance {
			bestDistance = distance
			best = candidate
		}
	}

	if best == nil {
		return eligible[0], nil
	}
	return best, nil
}
