package entity

import "testing"

func TestRouteGroup_AdmitsWeekday_EmptySetAdmitsAll(t *testing.T) {
	g := &RouteGroup{}
	for weekday := 0; weekday < 7; weekday++ {
		if !g.AdmitsWeekday(weekday) {
			t.Fatalf("expected empty weekday set to admit weekday %d", weekday)
		}
	}
}

func TestRouteGroup_AdmitsWeekday_RestrictedSet(t *testing.T) {
	g := &RouteGroup{DefaultWeekdays: []int{1, 3, 5}}
	if !g.AdmitsWeekday(3) {
		t.Fatal("expected weekday 3 to be admitted")
	}
	if g.AdmitsWeekday(0) {
		t.Fatal("expected weekday 0 to be rejected")
	}
}
