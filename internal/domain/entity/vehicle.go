package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Vehicle is a shuttle vehicle belonging to a company's fleet.
type Vehicle struct {
	ID             uuid.UUID `json:"id" db:"id"`
	CompanyID      uuid.UUID `json:"company_id" db:"company_id"`
	Plate          string    `json:"plate" db:"plate"`
	Type           string    `json:"type" db:"type"`
	SeatCapacity   int       `json:"seat_capacity" db:"seat_capacity"`
	FuelEfficiency float64   `json:"fuel_efficiency_km_l" db:"fuel_efficiency_km_l"`
	CostTier       CostTier  `json:"cost_tier" db:"cost_tier"`
	Active         bool      `json:"active" db:"active"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

func NewVehicle(companyID uuid.UUID, plate, vehicleType string, seatCapacity int, fuelEfficiency float64, tier CostTier) *Vehicle {
	now := time.Now()
	return &Vehicle{
		ID:             uuid.New(),
		CompanyID:      companyID,
		Plate:          plate,
		Type:           vehicleType,
		SeatCapacity:   seatCapacity,
		FuelEfficiency: fuelEfficiency,
		CostTier:       tier,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// UsableCapacity reserves one seat for the driver (glossary: Usable capacity).
func (v *Vehicle) UsableCapacity() int {
	if v.SeatCapacity <= 0 {
		return 0
	}
	return v.SeatCapacity - 1
}

func (v *Vehicle) Validate() error {
	if v.CompanyID == uuid.Nil {
		return ErrInvalidVehicleCompany
	}
	if v.Plate == "" {
		return ErrVehicleInvalidPlate
	}
	if v.SeatCapacity <= 0 {
		return ErrVehicleInvalidCapacity
	}
	return nil
}

var (
	ErrVehicleNotFound        = errors.New("vehicle not found")
	ErrInvalidVehicleCompany  = errors.New("vehicle must belong to a company")
	ErrVehicleInvalidPlate    = errors.New("invalid vehicle plate")
	ErrVehicleInvalidCapacity = errors.New("invalid vehicle seat capacity")
	ErrVehicleNotAvailable    = errors.New("vehicle not available")
	ErrInsufficientCapacity   = errors.New("insufficient vehicle capacity")
)
