package entity

import (
	"time"

	"github.com/google/uuid"
)

// GeocodeCache is the durable tier of the geocoder's two-level cache
// (internal/geocode), keyed by normalized address.
type GeocodeCache struct {
	ID                 uuid.UUID `json:"id" db:"id"`
	NormalizedAddress  string    `json:"normalized_address" db:"normalized_address"`
	Latitude           float64   `json:"latitude" db:"latitude"`
	Longitude          float64   `json:"longitude" db:"longitude"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

func NewGeocodeCache(normalizedAddress string, lat, lon float64) *GeocodeCache {
	now := time.Now()
	return &GeocodeCache{
		ID:                uuid.New(),
		NormalizedAddress: normalizedAddress,
		Latitude:          lat,
		Longitude:         lon,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// VRPResultCache stores a serialized VRP plan keyed by a canonical context
// key (internal/planner cachekey.go), TTL-bounded by config.
type VRPResultCache struct {
	ID         uuid.UUID `json:"id" db:"id"`
	ContextKey string    `json:"context_key" db:"context_key"`
	Payload    string    `json:"payload" db:"payload"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

func NewVRPResultCache(contextKey, payload string) *VRPResultCache {
	now := time.Now()
	return &VRPResultCache{
		ID:         uuid.New(),
		ContextKey: contextKey,
		Payload:    payload,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (c *VRPResultCache) IsFresh(ttl time.Duration) bool {
	return time.Since(c.UpdatedAt) < ttl
}
