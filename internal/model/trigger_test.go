package model

import (
	"errors"
	"testing"
	"time"
)

func TestDailyTriggerLaterToday(t *testing.T) {
	trigger := DailyTrigger{Hour: 20, Minute: 0, Location: time.UTC}
	next, err := trigger.NextAfter(time.Date(2026, 2, 9, 13, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("next after failed: %v", err)
	}
	if next.Format("2006-01-02 15:04") != "2026-02-09 20:00" {
		t.Fatalf("unexpected next occurrence: %s", next.Format(time.RFC3339))
	}
}

func TestDailyTriggerRollsToTomorrow(t *testing.T) {
	trigger := DailyTrigger{Hour: 8, Minute: 0, Location: time.UTC}
	next, err := trigger.NextAfter(time.Date(2026, 2, 28, 8, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("next after failed: %v", err)
	}
	if next.Format("2006-01-02 15:04") != "2026-03-01 08:00" {
		t.Fatalf("unexpected next occurrence: %s", next.Format(time.RFC3339))
	}
}

func TestDailyTriggerPreview(t *testing.T) {
	trigger := DailyTrigger{Hour: 12, Minute: 30, Location: time.UTC}
	list, err := trigger.Preview(time.Date(2026, 2, 5, 18, 0, 0, 0, time.UTC), 3)
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	want := []string{"2026-02-06 12:30", "2026-02-07 12:30", "2026-02-08 12:30"}
	if len(list) != len(want) {
		t.Fatalf("expected %d preview items, got %d", len(want), len(list))
	}
	for i := range list {
		if got := list[i].Format("2006-01-02 15:04"); got != want[i] {
			t.Fatalf("preview[%d] got %s want %s", i, got, want[i])
		}
	}
}

func TestDailyTriggerRejectsInvalidClock(t *testing.T) {
	_, err := DailyTrigger{Hour: 24}.NextAfter(time.Now())
	if !errors.Is(err, ErrInvalidHour) {
		t.Fatalf("expected ErrInvalidHour, got %v", err)
	}
}
