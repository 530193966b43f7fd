package entity

import (
	"time"

	"github.com/google/uuid"
)

// Unavailability marks an employee unavailable to ride for a date range.
type Unavailability struct {
	ID         uuid.UUID          `json:"id" db:"id"`
	EmployeeID uuid.UUID          `json:"employee_id" db:"employee_id"`
	Kind       UnavailabilityKind `json:"kind" db:"kind"`
	Reason     *string            `json:"reason,omitempty" db:"reason"`
	Start      time.Time          `json:"start" db:"start_date"`
	End        time.Time          `json:"end" db:"end_date"`
}

func NewUnavailability(employeeID uuid.UUID, kind UnavailabilityKind, start, end time.Time) *Unavailability {
	return &Unavailability{ID: uuid.New(), EmployeeID: employeeID, Kind: kind, Start: start, End: end}
}

// ActiveOn reports whether the unavailability covers the given date
// (spec.md §3: "active when start ≤ date ≤ end").
func (u *Unavailability) ActiveOn(date time.Time) bool {
	d := truncateDate(date)
	return !d.Before(truncateDate(u.Start)) && !d.After(truncateDate(u.End))
}

func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
