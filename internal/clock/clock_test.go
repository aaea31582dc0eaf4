package clock

import (
	"testing"
	"time"
)

func TestDayOfCrossesMonthBoundary(t *testing.T) {
	day := DayOf(time.Date(2026, 3, 1, 0, 30, 0, 0, time.UTC))
	if day.Today != "2026-03-01" || day.Yesterday != "2026-02-28" {
		t.Fatalf("unexpected day: %+v", day)
	}
}

func TestDayOfRespectsLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	instant := time.Date(2026, 2, 10, 2, 0, 0, 0, time.UTC)
	day := DayOf(instant.In(loc))
	if day.Today != "2026-02-09" {
		t.Fatalf("expected local day 2026-02-09, got %s", day.Today)
	}
}

func TestManualAdvance(t *testing.T) {
	m := NewManual(time.Date(2026, 2, 9, 23, 0, 0, 0, time.UTC))
	m.Advance(2 * time.Hour)
	if got := Today(m).Today; got != "2026-02-10" {
		t.Fatalf("expected rollover to 2026-02-10, got %s", got)
	}
}

func TestParseDay(t *testing.T) {
	got, err := ParseDay("2026-02-09", time.UTC)
	if err != nil {
		t.Fatalf("parse day: %v", err)
	}
	if !got.Equal(time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected parsed day: %s", got)
	}
	if _, err := ParseDay("09/02/2026", time.UTC); err == nil {
		t.Fatal("expected error for malformed day")
	}
}
