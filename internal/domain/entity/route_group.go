package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// RouteGroup bundles employees sharing a pickup regime.
type RouteGroup struct {
	ID                uuid.UUID        `json:"id" db:"id"`
	CompanyID         uuid.UUID        `json:"company_id" db:"company_id"`
	Name              string           `json:"name" db:"name"`
	Regime            RouteGroupRegime `json:"regime" db:"regime"`
	DefaultWeekdays   []int            `json:"default_weekdays" db:"-"`
	Description       *string          `json:"description,omitempty" db:"description"`
	CreatedAt         time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at" db:"updated_at"`
}

func NewRouteGroup(companyID uuid.UUID, name string, regime RouteGroupRegime, weekdays []int) *RouteGroup {
	now := time.Now()
	return &RouteGroup{
		ID:              uuid.New(),
		CompanyID:       companyID,
		Name:            name,
		Regime:          regime,
		DefaultWeekdays: weekdays,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// AdmitsWeekday reports whether the group plans on the given ISO weekday
// (0=Monday .. 6=Sunday, per spec.md §4.3 step 1). An empty weekday set
// admits every day.
func (g *RouteGroup) AdmitsWeekday(weekday int) bool {
	if len(g.DefaultWeekdays) == 0 {
		return true
	}
	for _, d := range g.DefaultWeekdays {
		if d == weekday {
			return true
		}
	}
	return false
}

// EmployeeGroupMembership links an employee to a route group.
type EmployeeGroupMembership struct {
	ID         uuid.UUID `json:"id" db:"id"`
	EmployeeID uuid.UUID `json:"employee_id" db:"employee_id"`
	GroupID    uuid.UUID `json:"group_id" db:"group_id"`
}

func NewEmployeeGroupMembership(employeeID, groupID uuid.UUID) *EmployeeGroupMembership {
	return &EmployeeGroupMembership{ID: uuid.New(), EmployeeID: employeeID, GroupID: groupID}
}

var (
	ErrRouteGroupNotFound = errors.New("route group not found")
	ErrInvalidGroupName   = errors.New("invalid route group name")
	ErrDuplicateMembership = errors.New("employee already belongs to this group")
)
