package confession

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sandeepkv93/graced/internal/clock"
	"github.com/sandeepkv93/graced/internal/model"
)

var feb9 = clock.Day{Today: "2026-02-09", Yesterday: "2026-02-08"}

func TestRecordConfessionTracksLatestDate(t *testing.T) {
	s, err := Default().RecordConfession(model.ConfessionEntry{ID: "a", Date: "2026-01-10"})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	s, err = s.RecordConfession(model.ConfessionEntry{ID: "b", Date: "2025-12-24", Notes: "late entry"})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if s.LastConfessionDate != "2026-01-10" {
		t.Fatalf("expected latest date kept, got %s", s.LastConfessionDate)
	}
	if s.Entries[0].ID != "a" || s.Entries[1].ID != "b" {
		t.Fatalf("entries not ordered newest first: %+v", s.Entries)
	}
}

func TestRecordConfessionCapsLog(t *testing.T) {
	s := Default()
	for i := 1; i <= 25; i++ {
		var err error
		s, err = s.RecordConfession(model.ConfessionEntry{ID: fmt.Sprintf("e-%d", i), Date: fmt.Sprintf("2026-01-%02d", i)})
		if err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}
	if len(s.Entries) != EntryLimit {
		t.Fatalf("expected %d entries, got %d", EntryLimit, len(s.Entries))
	}
	if s.Entries[0].Date != "2026-01-25" || s.Entries[EntryLimit-1].Date != "2026-01-06" {
		t.Fatalf("unexpected retained window: %s..%s", s.Entries[0].Date, s.Entries[EntryLimit-1].Date)
	}
}

func TestRecordConfessionRejectsBadDate(t *testing.T) {
	s := Default()
	next, err := s.RecordConfession(model.ConfessionEntry{ID: "x", Date: "yesterday"})
	if !errors.Is(err, model.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if len(next.Entries) != 0 || next.LastConfessionDate != "" {
		t.Fatalf("state changed on invalid input: %+v", next)
	}
}

func TestAddGoalStartsInactive(t *testing.T) {
	s, err := Default().AddGoal(NewGoal("g-1", "Pride", "Humility", "", feb9))
	if err != nil {
		t.Fatalf("add goal: %v", err)
	}
	g := s.Goals[0]
	if g.Progress != 0 || g.IsActive || g.Completed {
		t.Fatalf("unexpected new goal flags: %+v", g)
	}
	if g.Text != "Overcome Pride through Humility" || g.DateAdded != feb9.Today {
		t.Fatalf("unexpected goal text/date: %+v", g)
	}

	s, err = s.AddGoal(NewCustomGoal("g-2", "  Pray the rosary daily ", feb9))
	if err != nil {
		t.Fatalf("add custom goal: %v", err)
	}
	if s.Goals[1].Text != "Pray the rosary daily" {
		t.Fatalf("unexpected custom goal: %+v", s.Goals[1])
	}
	if _, err := s.AddGoal(NewCustomGoal("g-3", " ", feb9)); err == nil {
		t.Fatal("expected empty custom goal error")
	}
}

func TestUpdateProgressClamps(t *testing.T) {
	s, _ := Default().AddGoal(NewGoal("g-1", "Anger", "Patience", "at work", feb9))
	if got := s.UpdateProgress("g-1", 140).Goals[0].Progress; got != 100 {
		t.Fatalf("expected clamp to 100, got %d", got)
	}
	if got := s.UpdateProgress("g-1", -5).Goals[0].Progress; got != 0 {
		t.Fatalf("expected clamp to 0, got %d", got)
	}
	if got := s.UpdateProgress("g-1", 40).Goals[0].Progress; got != 40 {
		t.Fatalf("expected 40, got %d", got)
	}
	if s.Goals[0].Progress != 0 {
		t.Fatal("update must not alias previous state")
	}
}

func TestToggleAndRemoveGoal(t *testing.T) {
	s, _ := Default().AddGoal(NewGoal("g-1", "Worry", "Trust", "", feb9))
	s, _ = s.AddGoal(NewGoal("g-2", "Lying", "Honesty", "", feb9))
	s = s.ToggleActive("g-1").ToggleActive("g-2").ToggleCompleted("g-2")
	active := s.ActiveGoalTexts()
	if len(active) != 1 || active[0] != "Overcome Worry through Trust" {
		t.Fatalf("unexpected active goals: %v", active)
	}
	s = s.RemoveGoal("g-1").RemoveGoal("missing")
	if len(s.Goals) != 1 || s.Goals[0].ID != "g-2" {
		t.Fatalf("unexpected goals after remove: %+v", s.Goals)
	}
}

func TestDaysSinceLastConfession(t *testing.T) {
	s := Default()
	if _, ok := s.DaysSinceLastConfession(time.Now()); ok {
		t.Fatal("expected no value before any confession")
	}
	s, _ = s.RecordConfession(model.ConfessionEntry{ID: "a", Date: "2026-02-01"})
	now := time.Date(2026, 2, 9, 15, 0, 0, 0, time.UTC)
	days, ok := s.DaysSinceLastConfession(now)
	if !ok || days != 9 {
		t.Fatalf("expected 9 days, got %d ok=%v", days, ok)
	}
	midnight := time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)
	if days, _ := s.DaysSinceLastConfession(midnight); days != 8 {
		t.Fatalf("expected 8 days at midnight, got %d", days)
	}
}

func TestShouldRemind(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	s := Default()
	if !s.ShouldRemind(now) {
		t.Fatal("never confessed must remind")
	}
	s, _ = s.RecordConfession(model.ConfessionEntry{ID: "a", Date: "2026-02-01"})
	if s.ShouldRemind(now) {
		t.Fatal("9 days is below the 30 day threshold")
	}
	s, err := s.SetReminderDays(7)
	if err != nil {
		t.Fatalf("set reminder days: %v", err)
	}
	if !s.ShouldRemind(now) {
		t.Fatal("9 days is past the 7 day threshold")
	}
	if s.SetReminder(false).ShouldRemind(now) {
		t.Fatal("disabled reminder must not remind")
	}
	if _, err := s.SetReminderDays(0); !errors.Is(err, ErrInvalidReminderDays) {
		t.Fatalf("expected ErrInvalidReminderDays, got %v", err)
	}
}

func TestLookupSin(t *testing.T) {
	if len(CommonSins) != 24 {
		t.Fatalf("expected 24 catalog entries, got %d", len(CommonSins))
	}
	s, ok := LookupSin("pride")
	if !ok || s.Virtue != "Humility" {
		t.Fatalf("unexpected lookup by name: %+v %v", s, ok)
	}
	s, ok = LookupSin("16")
	if !ok || s.Sin != "Excessive Drinking" {
		t.Fatalf("unexpected lookup by id: %+v %v", s, ok)
	}
	if _, ok := LookupSin("nope"); ok {
		t.Fatal("expected miss")
	}
}
