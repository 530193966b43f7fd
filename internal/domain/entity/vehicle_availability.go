package entity

import (
	"time"

	"github.com/google/uuid"
)

// VehicleAvailability is a dated window during which a vehicle is allocable
// to (possibly) a specific group. GroupID nil means "any group".
type VehicleAvailability struct {
	ID              uuid.UUID     `json:"id" db:"id"`
	VehicleID       uuid.UUID     `json:"vehicle_id" db:"vehicle_id"`
	GroupID         *uuid.UUID    `json:"group_id,omitempty" db:"group_id"`
	Tenure          VehicleTenure `json:"tenure" db:"tenure"`
	PeriodStart     time.Time     `json:"period_start" db:"period_start"`
	PeriodEnd       time.Time     `json:"period_end" db:"period_end"`
	WeekdayMask     []int         `json:"weekday_mask,omitempty" db:"-"`
	MonthlyRenewal  bool          `json:"monthly_renewal" db:"monthly_renewal"`
	Active          bool          `json:"active" db:"active"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at" db:"updated_at"`
}

func NewVehicleAvailability(vehicleID uuid.UUID, groupID *uuid.UUID, tenure VehicleTenure, start, end time.Time) *VehicleAvailability {
	now := time.Now()
	return &VehicleAvailability{
		ID:          uuid.New(),
		VehicleID:   vehicleID,
		GroupID:     groupID,
		Tenure:      tenure,
		PeriodStart: start,
		PeriodEnd:   end,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Covers reports whether this availability covers the given date for the
// given group, per spec.md §3:
// "period-start ≤ date ≤ period-end ∧ (weekday-mask empty ∨ date.weekday ∈ mask) ∧ active".
func (a *VehicleAvailability) Covers(date time.Time, groupID uuid.UUID) bool {
	if !a.Active {
		return false
	}
	if a.GroupID != nil && *a.GroupID != groupID {
		return false
	}
	d := truncateDate(date)
	if d.Before(truncateDate(a.PeriodStart)) || d.After(truncateDate(a.PeriodEnd)) {
		return false
	}
	if len(a.WeekdayMask) == 0 {
		return true
	}
	weekday := isoWeekday(d)
	for _, w := range a.WeekdayMask {
		if w == weekday {
			return true
		}
	}
	return false
}

func (a *VehicleAvailability) IsRental() bool {
	return a.Tenure == TenureRental
}

// isoWeekday maps time.Weekday (Sunday=0) to the spec's 0=Monday..6=Sunday
// convention used throughout WorkSchedule/RouteGroup/VehicleAvailability.
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	return (wd + 6) % 7
}
