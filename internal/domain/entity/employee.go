package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Employee is a candidate rider, and potentially a driver, for a company's
// shuttle routes. Invariant: ApatToDrive implies Licensed (enforced in
// Validate, never just assumed by callers).
type Employee struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	CompanyID      uuid.UUID  `json:"company_id" db:"company_id"`
	FullName       string     `json:"full_name" db:"full_name"`
	NationalID     string     `json:"national_id" db:"national_id"`
	Email          *string    `json:"email,omitempty" db:"email"`
	Phone          *string    `json:"phone,omitempty" db:"phone"`
	Street         string     `json:"street" db:"street"`
	Number         string     `json:"number" db:"number"`
	Complement     *string    `json:"complement,omitempty" db:"complement"`
	Neighborhood   string     `json:"neighborhood" db:"neighborhood"`
	City           string     `json:"city" db:"city"`
	State          string     `json:"state" db:"state"`
	Zip            string     `json:"zip" db:"zip"`
	Licensed       bool       `json:"licensed" db:"licensed"`
	LicenseClass   *string    `json:"license_class,omitempty" db:"license_class"`
	LicenseExpiry  *time.Time `json:"license_expiry,omitempty" db:"license_expiry"`
	AptToDrive     bool       `json:"apt_to_drive" db:"apt_to_drive"`
	Active         bool       `json:"active" db:"active"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

func NewEmployee(companyID uuid.UUID, fullName, nationalID string) *Employee {
	now := time.Now()
	return &Employee{
		ID:         uuid.New(),
		CompanyID:  companyID,
		FullName:   fullName,
		NationalID: nationalID,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Address renders the full postal address used for geocoding.
func (e *Employee) Address() string {
	addr := e.Street + ", " + e.Number
	if e.Complement != nil && *e.Complement != "" {
		addr += " " + *e.Complement
	}
	addr += " - " + e.Neighborhood + ", " + e.City + "-" + e.State + " " + e.Zip
	return addr
}

// IsEligibleDriver reports whether this employee may ever be placed in the
// driver seat — it does not check availability or conflicts.
func (e *Employee) IsEligibleDriver() bool {
	return e.AptToDrive && e.Licensed
}

func (e *Employee) Validate() error {
	if e.CompanyID == uuid.Nil {
		return ErrInvalidEmployeeCompany
	}
	if e.FullName == "" {
		return ErrInvalidEmployeeName
	}
	if e.NationalID == "" {
		return ErrInvalidEmployeeNationalID
	}
	if e.AptToDrive && !e.Licensed {
		return ErrAptWithoutLicense
	}
	return nil
}

var (
	ErrEmployeeNotFound          = errors.New("employee not found")
	ErrInvalidEmployeeCompany    = errors.New("employee must belong to a company")
	ErrInvalidEmployeeName       = errors.New("invalid employee full name")
	ErrInvalidEmployeeNationalID = errors.New("invalid employee national id")
	ErrAptWithoutLicense         = errors.New("employee marked apt to drive without a license")
)
