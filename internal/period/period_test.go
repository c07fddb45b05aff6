package period

import (
	"testing"
	"time"

	"github.com/pullerize/postcal/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TestPartitionCoverage verifies that for every anchor day the twelve
// periods are contiguous, non-overlapping and span exactly one year.
func TestPartitionCoverage(t *testing.T) {
	for _, year := range []int{2023, 2024} { // plain and leap
		for anchor := 1; anchor <= 31; anchor++ {
			start := anchorIn(year, time.January, anchor)
			periods := Compute(start)

			if len(periods) != 12 {
				t.Fatalf("anchor %d year %d: got %d periods, want 12", anchor, year, len(periods))
			}
			if !periods[0].StartDate.Equal(start) {
				t.Errorf("anchor %d year %d: first period starts %v, want %v",
					anchor, year, periods[0].StartDate, start)
			}

			for i := 1; i < 12; i++ {
				gap := periods[i].StartDate.Sub(periods[i-1].EndDate)
				if gap != 24*time.Hour {
					t.Errorf("anchor %d year %d: period %d start %v does not follow period %d end %v",
						anchor, year, i+1, periods[i].StartDate, i, periods[i-1].EndDate)
				}
			}

			// The partition covers exactly one year: the day after the
			// last period's end is the anchor date one year later.
			wantNext := anchorIn(year+1, time.January, anchor)
			gotNext := periods[11].EndDate.AddDate(0, 0, 1)
			if !gotNext.Equal(wantNext) {
				t.Errorf("anchor %d year %d: partition ends %v, want day before %v",
					anchor, year, periods[11].EndDate, wantNext)
			}
		}
	}
}

// TestRolloverClamping covers anchor day 31 across short months: the
// April boundary must clamp to a valid date instead of truncating.
func TestRolloverClamping(t *testing.T) {
	periods := Compute(date(2024, time.January, 31))

	// Period 4 is anchored in April, which has 30 days.
	april := periods[3]
	if !april.StartDate.Equal(date(2024, time.April, 30)) {
		t.Errorf("april period starts %v, want 2024-04-30", april.StartDate)
	}
	// Its end is the day before the May 31 anchor.
	if !april.EndDate.Equal(date(2024, time.May, 30)) {
		t.Errorf("april period ends %v, want 2024-05-30", april.EndDate)
	}

	// February in a leap year clamps to the 29th.
	feb := periods[1]
	if !feb.StartDate.Equal(date(2024, time.February, 29)) {
		t.Errorf("february period starts %v, want 2024-02-29", feb.StartDate)
	}
}

// TestProjectScenario follows a project starting 2024-03-15.
func TestProjectScenario(t *testing.T) {
	start := date(2024, time.March, 15)
	periods := Compute(start)

	first := periods[0]
	if !first.StartDate.Equal(date(2024, time.March, 15)) {
		t.Errorf("period 1 starts %v, want 2024-03-15", first.StartDate)
	}
	if !first.EndDate.Equal(date(2024, time.April, 14)) {
		t.Errorf("period 1 ends %v, want 2024-04-14", first.EndDate)
	}

	if p, ok := ForDate(periods, date(2024, time.April, 14)); !ok || p.Index != 1 {
		t.Errorf("2024-04-14 resolved to period %d, want 1", p.Index)
	}
	if p, ok := ForDate(periods, date(2024, time.April, 15)); !ok || p.Index != 2 {
		t.Errorf("2024-04-15 resolved to period %d, want 2", p.Index)
	}
}

func TestForDateOutsideYear(t *testing.T) {
	periods := Compute(date(2024, time.March, 15))

	if _, ok := ForDate(periods, date(2024, time.March, 14)); ok {
		t.Error("day before the project year should not resolve to a period")
	}
	if _, ok := ForDate(periods, date(2025, time.March, 15)); ok {
		t.Error("first day of the next project year should not resolve to a period")
	}
}

func TestForProject(t *testing.T) {
	var p model.Project
	if got := ForProject(&p); got != nil {
		t.Errorf("project without start date should have no periods, got %d", len(got))
	}

	start := date(2024, time.March, 15)
	p.StartDate = &start
	periods := ForProject(&p)
	if len(periods) != 12 {
		t.Fatalf("got %d periods, want 12", len(periods))
	}
	if p.AnchorDay() != 15 {
		t.Errorf("anchor day = %d, want 15", p.AnchorDay())
	}
}
