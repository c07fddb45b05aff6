package model

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestEffectiveStatus(t *testing.T) {
	today := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		date   *time.Time
		stored Status
		want   Status
	}{
		{"yesterday in progress shows overdue", day(2024, time.June, 9), StatusInProgress, StatusOverdue},
		{"yesterday approved stays approved", day(2024, time.June, 9), StatusApproved, StatusApproved},
		{"yesterday cancelled stays cancelled", day(2024, time.June, 9), StatusCancelled, StatusCancelled},
		{"today is not overdue", day(2024, time.June, 10), StatusInProgress, StatusInProgress},
		{"tomorrow is in progress", day(2024, time.June, 11), StatusInProgress, StatusInProgress},
		{"undated draft is in progress", nil, StatusInProgress, StatusInProgress},
		{"stored overdue on future date displays in progress", day(2024, time.June, 11), StatusOverdue, StatusInProgress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Post{Date: tt.date, Status: tt.stored}
			if got := p.EffectiveStatus(today); got != tt.want {
				t.Errorf("EffectiveStatus = %s, want %s", got, tt.want)
			}
			// Resolution never mutates the stored status.
			if p.Status != tt.stored {
				t.Errorf("stored status mutated to %s", p.Status)
			}
		})
	}
}

// Time of day must not affect the comparison: a post dated today at
// midnight is not overdue late in the evening.
func TestEffectiveStatusIgnoresTimeOfDay(t *testing.T) {
	now := time.Date(2024, time.June, 10, 23, 55, 0, 0, time.UTC)
	p := Post{Date: day(2024, time.June, 10), Status: StatusInProgress}
	if got := p.EffectiveStatus(now); got != StatusInProgress {
		t.Errorf("EffectiveStatus = %s, want %s", got, StatusInProgress)
	}
}

func TestStatusOptions(t *testing.T) {
	today := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)

	past := StatusOptions(day(2024, time.June, 9), today)
	if len(past) != 3 || past[0] != StatusOverdue {
		t.Errorf("past date options = %v, want overdue first", past)
	}
	for _, s := range past {
		if s == StatusInProgress {
			t.Error("past dates must not offer in_progress")
		}
	}

	future := StatusOptions(day(2024, time.June, 11), today)
	if len(future) != 3 || future[0] != StatusInProgress {
		t.Errorf("future date options = %v, want in_progress first", future)
	}
	for _, s := range future {
		if s == StatusOverdue {
			t.Error("future dates must not offer overdue")
		}
	}

	undated := StatusOptions(nil, today)
	if undated[0] != StatusInProgress {
		t.Errorf("undated options = %v, want in_progress first", undated)
	}
}

func TestParseAndFormatDate(t *testing.T) {
	d, err := ParseDate("2024-03-15")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if FormatDate(d) != "2024-03-15" {
		t.Errorf("FormatDate = %q", FormatDate(d))
	}

	if d, err := ParseDate(""); err != nil || d != nil {
		t.Errorf("empty date should parse to nil, got %v, %v", d, err)
	}
	if _, err := ParseDate("15.03.2024"); err == nil {
		t.Error("expected error for non-ISO date")
	}
	if FormatDate(nil) != "" {
		t.Error("nil date should format as empty string")
	}
}
