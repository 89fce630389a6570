package model

import (
	"testing"
	"time"
)

func TestSlotKeyStructuralEquality(t *testing.T) {
	slot := TimeSlot{ID: "s1", SlotType: "Theory", SlotName: "Slot-1 (Theory)", StartTime: "08:30", EndTime: "10:00"}
	a := NewSlotKey(Saturday, "cr-1", slot)
	b := NewSlotKey(Saturday, "cr-1", TimeSlot{ID: "other", SlotType: "Theory", StartTime: "08:30", EndTime: "10:00"})
	if a != b {
		t.Fatalf("keys with same cell coordinates must be equal: %+v vs %+v", a, b)
	}

	c := NewSlotKey(Saturday, "cr-1", TimeSlot{SlotType: "Lab", StartTime: "08:30", EndTime: "10:00"})
	if a == c {
		t.Fatalf("slot type must distinguish cells")
	}
	d := NewSlotKey(Sunday, "cr-1", slot)
	if a == d {
		t.Fatalf("day must distinguish cells")
	}
}

func TestDayOfWeekIsValid(t *testing.T) {
	for _, day := range DaysOfWeek {
		if !day.IsValid() {
			t.Fatalf("%s should be valid", day)
		}
	}
	if DayOfWeek("Funday").IsValid() {
		t.Fatalf("unknown day should be invalid")
	}
	if DayOfWeek("").IsValid() {
		t.Fatalf("empty day should be invalid")
	}
}

func TestFormatAMPM(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"08:30", "08:30 AM"},
		{"10:00", "10:00 AM"},
		{"13:00", "01:00 PM"},
		{"00:15", "12:15 AM"},
		{"garbage", "garbage"},
	}
	for _, tc := range cases {
		if got := FormatAMPM(tc.in); got != tc.want {
			t.Errorf("FormatAMPM(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTimeText(t *testing.T) {
	key := NewSlotKey(Saturday, "cr-1", TimeSlot{SlotType: "Theory", StartTime: "14:30", EndTime: "16:00"})
	if got := key.TimeText(); got != "02:30 PM - 04:00 PM" {
		t.Fatalf("TimeText() = %q", got)
	}
}

func TestSameDate(t *testing.T) {
	morning := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 6, 1, 22, 30, 0, 0, time.UTC)
	nextDay := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	if !SameDate(morning, evening) {
		t.Fatalf("same calendar date at different times must match")
	}
	if SameDate(morning, nextDay) {
		t.Fatalf("different dates must not match")
	}
	if !SameDate(time.Time{}, time.Time{}) {
		t.Fatalf("two zero times are the same (no date)")
	}
	if SameDate(time.Time{}, morning) || SameDate(morning, time.Time{}) {
		t.Fatalf("zero vs non-zero is a date change")
	}
}
