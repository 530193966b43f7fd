package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Company owns employees, vehicles, route groups and destinations.
type Company struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Code        string    `json:"code" db:"code"`
	Name        string    `json:"name" db:"name"`
	BaseAddress string    `json:"base_address" db:"base_address"`
	City        string    `json:"city" db:"city"`
	State       string    `json:"state" db:"state"`
	Zip         string    `json:"zip" db:"zip"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

func NewCompany(code, name, baseAddress, city, state, zip string) *Company {
	now := time.Now()
	return &Company{
		ID:          uuid.New(),
		Code:        code,
		Name:        name,
		BaseAddress: baseAddress,
		City:        city,
		State:       state,
		Zip:         zip,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (c *Company) Validate() error {
	if c.Code == "" {
		return ErrInvalidCompanyCode
	}
	if c.Name == "" {
		return ErrInvalidCompanyName
	}
	if c.BaseAddress == "" {
		return ErrInvalidCompanyAddress
	}
	return nil
}

var (
	ErrCompanyNotFound       = errors.New("company not found")
	ErrInvalidCompanyCode    = errors.New("invalid company code")
	ErrInvalidCompanyName    = errors.New("invalid company name")
	ErrInvalidCompanyAddress = errors.New("invalid company base address")
)
