package planner

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/Luks9/geo-rota/internal/domain/entity"
	"github.com/Luks9/geo-rota/internal/domain/repository"
)

// cachePayload is the canonical-JSON shape hashed into a VRP cache key
// (spec.md §4.6b). Field order here is irrelevant — json.Marshal emits struct
// fields in declaration order, not sorted by key, so the payload is
// re-marshaled with sorted keys via marshalCanonical.
type cacheEmployeePoint struct {
	ID  uuid.UUID `json:"id"`
	Lat float64   `json:"lat"`
	Lon float64   `json:"lon"`
}

type cacheVehiclePoint struct {
	ID         uuid.UUID `json:"id"`
	Capacity   int       `json:"capacidade"`
	Rental     bool      `json:"terceirizado"`
	CostTier   string    `json:"categoria"`
}

type cachePayload struct {
	CompanyID   uuid.UUID             `json:"empresa_id"`
	GroupID     uuid.UUID             `json:"grupo_rota_id"`
	Date        string                `json:"data"`
	Shift       entity.Shift          `json:"turno"`
	Destination [2]float64            `json:"destino"`
	Employees   []cacheEmployeePoint  `json:"funcionarios"`
	Vehicles    []cacheVehiclePoint   `json:"veiculos"`
}

// VRPCacheKey computes the SHA-256 hex digest of the canonical-JSON
// serialization described in spec.md §4.6b, and also returns the
// serialization itself.
// Grounded on _montar_chave_cache_vrp: round(..., 5) coordinates, employees
// sorted by id, vehicles kept in fleet order.
func VRPCacheKey(companyID, groupID uuid.UUID, date string, shift entity.Shift, destination entity.Coordinates, employeeCoords map[uuid.UUID]entity.Coordinates, fleet []repository.FleetCandidate) (string, string, error) {
	employeeIDs := make([]uuid.UUID, 0, len(employeeCoords))
	for id := range employeeCoords {
		employeeIDs = append(employeeIDs, id)
	}
	sort.Slice(employeeIDs, func(i, j int) bool { return employeeIDs[i].String() < employeeIDs[j].String() })

	employees := make([]cacheEmployeePoint, 0, len(employeeIDs))
	for _, id := range employeeIDs {
		coord := employeeCoords[id]
		employees = append(employees, cacheEmployeePoint{
			ID:  id,
			Lat: round5(coord.Latitude),
			Lon: round5(coord.Longitude),
		})
	}

	vehicles := make([]cacheVehiclePoint, 0, len(fleet))
	for _, candidate := range fleet {
		vehicles = append(vehicles, cacheVehiclePoint{
			ID:       candidate.Vehicle.ID,
			Capacity: candidate.Vehicle.UsableCapacity(),
			Rental:   candidate.Availability.IsRental(),
			CostTier: string(candidate.Vehicle.CostTier),
		})
	}

	payload := cachePayload{
		CompanyID:   companyID,
		GroupID:     groupID,
		Date:        date,
		Shift:       shift,
		Destination: [2]float64{round5(destination.Latitude), round5(destination.Longitude)},
		Employees:   employees,
		Vehicles:    vehicles,
	}

	raw, err := marshalCanonical(payload)
	if err != nil {
		return "", "", err
	}

	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), string(raw), nil
}

// marshalCanonical re-encodes a JSON-marshalable value with map keys sorted
// and no extraneous whitespace, matching Python's
// json.dumps(sort_keys=True, separators=(",", ":")).
func marshalCanonical(v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}

	return canonicalEncode(generic)
}

func canonicalEncode(v interface{}) ([]byte, error) {
	switch value := v.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(value))
		for k := range value {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		out := []byte{'{'}
		for i, k := range keys {
			if i > 0 {
				out = append(out, ',')
			}
			keyJSON, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			out = append(out, keyJSON...)
			out = append(out, ':')
			valJSON, err := canonicalEncode(value[k])
			if err != nil {
				return nil, err
			}
			out = append(out, valJSON...)
		}
		out = append(out, '}')
		return out, nil
	case []interface{}:
		out := []byte{'['}
		for i, item := range value {
			if i > 0 {
				out = append(out, ',')
			}
			itemJSON, err := canonicalEncode(item)
			if err != nil {
				return nil, err
			}
			out = append(out, itemJSON...)
		}
		out = append(out, ']')
		return out, nil
	default:
		return json.Marshal(value)
	}
}

func round5(v float64) float64 {
	return math.Round(v*100000) / 100000
}
