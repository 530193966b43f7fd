package entity

import (
	"errors"

	"github.com/google/uuid"
)

// WorkSchedule records, per employee/weekday/shift, whether the employee
// commutes that day. Unique per (employee, weekday, shift).
type WorkSchedule struct {
	ID         uuid.UUID `json:"id" db:"id"`
	EmployeeID uuid.UUID `json:"employee_id" db:"employee_id"`
	Weekday    int       `json:"weekday" db:"weekday"` // 0=Monday .. 6=Sunday
	Shift      Shift     `json:"shift" db:"shift"`
	Available  bool      `json:"available" db:"available"`
	Start      *string   `json:"start,omitempty" db:"start_time"`
	End        *string   `json:"end,omitempty" db:"end_time"`
}

func NewWorkSchedule(employeeID uuid.UUID, weekday int, shift Shift, available bool) *WorkSchedule {
	return &WorkSchedule{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Weekday:    weekday,
		Shift:      shift,
		Available:  available,
	}
}

var ErrInvalidWeekday = errors.New("weekday must be between 0 and 6")
