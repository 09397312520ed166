package domain

import (
	"testing"
	"time"
)

func TestTripDayNumber(t *testing.T) {
	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	trip := &Trip{StartDate: start, EndDate: start.AddDate(0, 0, 3)}

	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{"start date", start, 1},
		{"late evening of first day", start.Add(23*time.Hour + 59*time.Minute), 1},
		{"second day", start.AddDate(0, 0, 1).Add(9 * time.Hour), 2},
		{"last day", start.AddDate(0, 0, 3), 4},
		{"past end date", start.AddDate(0, 0, 10), 11},
		{"before start clamps", start.AddDate(0, 0, -2), 1},
		{"zero date clamps", time.Time{}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := trip.DayNumber(tt.date); got != tt.want {
				t.Fatalf("DayNumber(%v) = %d, want %d", tt.date, got, tt.want)
			}
		})
	}
}

func TestTripDayNumberUsesStartLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	start := time.Date(2026, 3, 10, 0, 0, 0, 0, tokyo)
	trip := &Trip{StartDate: start, EndDate: start}

	// 2026-03-10 16:00 UTC is already 2026-03-11 in Tokyo.
	date := time.Date(2026, 3, 10, 16, 0, 0, 0, time.UTC)
	if got := trip.DayNumber(date); got != 2 {
		t.Fatalf("DayNumber = %d, want 2", got)
	}
}

func TestTripDayCount(t *testing.T) {
	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want int
	}{
		{"single day", start, 1},
		{"four days", start.AddDate(0, 0, 3), 4},
		{"end with time component", start.AddDate(0, 0, 2).Add(18 * time.Hour), 3},
		{"degenerate trip", start.AddDate(0, 0, -3), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trip := &Trip{StartDate: start, EndDate: tt.end}
			if got := trip.DayCount(); got != tt.want {
				t.Fatalf("DayCount = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTripDateForDay(t *testing.T) {
	start := time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC)
	trip := &Trip{StartDate: start, EndDate: start.AddDate(0, 0, 5)}

	got := trip.DateForDay(3)
	want := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("DateForDay(3) = %v, want %v", got, want)
	}

	if trip.ContainsDay(0) || trip.ContainsDay(7) || !trip.ContainsDay(6) {
		t.Fatalf("ContainsDay boundaries incorrect for a %d-day trip", trip.DayCount())
	}
}
