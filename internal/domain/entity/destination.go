package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Destination is a shuttle target (usually a company site). Coordinates are
// memoized on first successful geocode and never cleared afterwards, per
// spec.md §3.
type Destination struct {
	ID           uuid.UUID `json:"id" db:"id"`
	CompanyID    uuid.UUID `json:"company_id" db:"company_id"`
	Name         string    `json:"name" db:"name"`
	Street       string    `json:"street" db:"street"`
	Number       string    `json:"number" db:"number"`
	Complement   *string   `json:"complement,omitempty" db:"complement"`
	Neighborhood string    `json:"neighborhood" db:"neighborhood"`
	City         string    `json:"city" db:"city"`
	State        string    `json:"state" db:"state"`
	Zip          string    `json:"zip" db:"zip"`
	Latitude     *float64  `json:"latitude,omitempty" db:"latitude"`
	Longitude    *float64  `json:"longitude,omitempty" db:"longitude"`
	Active       bool      `json:"active" db:"active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

func NewDestination(companyID uuid.UUID, name, street, number, neighborhood, city, state, zip string) *Destination {
	now := time.Now()
	return &Destination{
		ID:           uuid.New(),
		CompanyID:    companyID,
		Name:         name,
		Street:       street,
		Number:       number,
		Neighborhood: neighborhood,
		City:         city,
		State:        state,
		Zip:          zip,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (d *Destination) Address() string {
	addr := d.Street + ", " + d.Number
	if d.Complement != nil && *d.Complement != "" {
		addr += " " + *d.Complement
	}
	addr += " - " + d.Neighborhood + ", " + d.City + "-" + d.State + " " + d.Zip
	return addr
}

func (d *Destination) HasCoordinates() bool {
	return d.Latitude != nil && d.Longitude != nil
}

// SetCoordinates memoizes a geocode result. Once set, coordinates are never
// cleared by subsequent calls (spec.md §3 Destination invariant).
func (d *Destination) SetCoordinates(lat, lon float64) {
	if d.HasCoordinates() {
		return
	}
	d.Latitude = &lat
	d.Longitude = &lon
	d.UpdatedAt = time.Now()
}

func (d *Destination) Coordinates() Coordinates {
	if !d.HasCoordinates() {
		return Coordinates{}
	}
	return Coordinates{Latitude: *d.Latitude, Longitude: *d.Longitude}
}

var (
	ErrDestinationNotFound    = errors.New("destination not found")
	ErrInvalidDestinationName = errors.New("invalid destination name")
)
