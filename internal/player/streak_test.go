package player

import (
	"testing"
	"time"

	"github.com/sandeepkv93/graced/internal/clock"
)

func withGoal(t *testing.T, goal int, day clock.Day) State {
	t.Helper()
	s, err := New(day).SetDailyGoal(goal)
	if err != nil {
		t.Fatalf("set goal: %v", err)
	}
	return s
}

func TestIncrementScenarioGoalThree(t *testing.T) {
	s := withGoal(t, 3, feb9)
	fired := 0
	for i := 0; i < 3; i++ {
		var edge bool
		s, edge = s.IncrementListened(feb9)
		if edge {
			fired++
		}
	}
	if s.Streak.Today.QuotesListened != 3 || !s.Streak.Today.GoalCompleted {
		t.Fatalf("unexpected today progress: %+v", s.Streak.Today)
	}
	if fired != 1 || !s.Celebrate {
		t.Fatalf("expected one celebration, fired=%d celebrate=%v", fired, s.Celebrate)
	}
	if s.Streak.CurrentStreak != 1 || s.Streak.LongestStreak != 1 {
		t.Fatalf("unexpected streak: %+v", s.Streak)
	}
	if s.Streak.LastCompletedDate != feb9.Today || s.Streak.TotalDaysCompleted != 1 {
		t.Fatalf("unexpected completion record: %+v", s.Streak)
	}
}

func TestGoalEdgeFiresOnlyOnThresholdCall(t *testing.T) {
	s := withGoal(t, 4, feb9)
	for i := 1; i <= 10; i++ {
		var edge bool
		s, edge = s.IncrementListened(feb9)
		if edge != (i == 4) {
			t.Fatalf("call %d: edge=%v", i, edge)
		}
	}
	if s.Streak.TotalDaysCompleted != 1 || s.Streak.TotalQuotesListened != 10 {
		t.Fatalf("unexpected totals: %+v", s.Streak)
	}
}

func TestCelebrationStaysUntilDismissed(t *testing.T) {
	s := withGoal(t, 1, feb9)
	s, _ = s.IncrementListened(feb9)
	s, edge := s.IncrementListened(feb9)
	if edge {
		t.Fatal("second call must not be an edge")
	}
	if !s.Celebrate {
		t.Fatal("celebration must remain pending until dismissed")
	}
	if s.DismissCelebration().Celebrate {
		t.Fatal("dismiss must clear celebration")
	}
}

func TestDayRolloverResetsTodayCount(t *testing.T) {
	s := withGoal(t, 3, feb9)
	for i := 0; i < 3; i++ {
		s, _ = s.IncrementListened(feb9)
	}
	total := s.Streak.TotalQuotesListened

	feb10 := clock.Day{Today: "2026-02-10", Yesterday: "2026-02-09"}
	s, edge := s.IncrementListened(feb10)
	if edge {
		t.Fatal("single listen must not complete a goal of 3")
	}
	if s.Streak.Today.Date != feb10.Today || s.Streak.Today.QuotesListened != 1 || s.Streak.Today.GoalCompleted {
		t.Fatalf("unexpected rolled-over progress: %+v", s.Streak.Today)
	}
	if s.Streak.TotalQuotesListened != total+1 {
		t.Fatalf("expected total %d, got %d", total+1, s.Streak.TotalQuotesListened)
	}
}

func TestResetDailyProgressIsIdempotent(t *testing.T) {
	s := withGoal(t, 5, feb9)
	s, _ = s.IncrementListened(feb9)
	same := s.ResetDailyProgressIfNeeded(feb9)
	if same.Streak.Today.QuotesListened != 1 {
		t.Fatalf("same-day reset must keep progress: %+v", same.Streak.Today)
	}
	feb10 := clock.Day{Today: "2026-02-10", Yesterday: "2026-02-09"}
	once := s.ResetDailyProgressIfNeeded(feb10)
	twice := once.ResetDailyProgressIfNeeded(feb10)
	if once.Streak.Today != twice.Streak.Today || twice.Streak.Today.QuotesListened != 0 {
		t.Fatalf("rollover not idempotent: %+v vs %+v", once.Streak.Today, twice.Streak.Today)
	}
}

func TestStreakContinuesFromYesterday(t *testing.T) {
	s := withGoal(t, 1, feb9)
	s.Streak.CurrentStreak = 4
	s.Streak.LongestStreak = 4
	s.Streak.LastCompletedDate = feb9.Yesterday

	s, edge := s.IncrementListened(feb9)
	if !edge {
		t.Fatal("expected goal edge")
	}
	if s.Streak.CurrentStreak != 5 || s.Streak.LongestStreak != 5 {
		t.Fatalf("expected streak 5, got %+v", s.Streak)
	}
}

func TestStreakResetsAfterGap(t *testing.T) {
	s := withGoal(t, 1, feb9)
	s.Streak.CurrentStreak = 9
	s.Streak.LongestStreak = 12
	s.Streak.LastCompletedDate = "2026-02-06"

	s, _ = s.IncrementListened(feb9)
	if s.Streak.CurrentStreak != 1 {
		t.Fatalf("expected streak reset to 1, got %d", s.Streak.CurrentStreak)
	}
	if s.Streak.LongestStreak != 12 {
		t.Fatalf("longest streak must be kept, got %d", s.Streak.LongestStreak)
	}
}

func TestLongestStreakNeverBelowCurrent(t *testing.T) {
	s := withGoal(t, 2, clock.Day{Today: "2026-01-01", Yesterday: "2025-12-31"})
	days := []string{"2026-01-01", "2026-01-02", "2026-01-03", "2026-01-05", "2026-01-06"}
	for _, d := range days {
		at, err := time.Parse(clock.DayLayout, d)
		if err != nil {
			t.Fatalf("parse %s: %v", d, err)
		}
		day := clock.DayOf(at)
		for i := 0; i < 3; i++ {
			s, _ = s.IncrementListened(day)
			if s.Streak.LongestStreak < s.Streak.CurrentStreak {
				t.Fatalf("%s: longest %d < current %d", d, s.Streak.LongestStreak, s.Streak.CurrentStreak)
			}
		}
		s = s.DismissCelebration()
	}
	if s.Streak.CurrentStreak != 2 || s.Streak.LongestStreak != 3 {
		t.Fatalf("unexpected final streak: %+v", s.Streak)
	}
}

func TestGoalCompletedDoesNotRevertWhenGoalRaised(t *testing.T) {
	s := withGoal(t, 2, feb9)
	s, _ = s.IncrementListened(feb9)
	s, _ = s.IncrementListened(feb9)
	s, err := s.SetDailyGoal(10)
	if err != nil {
		t.Fatalf("set goal: %v", err)
	}
	s, edge := s.IncrementListened(feb9)
	if edge || !s.Streak.Today.GoalCompleted {
		t.Fatalf("goal completion reverted or refired: edge=%v %+v", edge, s.Streak.Today)
	}
	if s.Streak.TotalDaysCompleted != 1 {
		t.Fatalf("expected one completed day, got %d", s.Streak.TotalDaysCompleted)
	}
}

func TestWeeklyStreakCounter(t *testing.T) {
	s := withGoal(t, 1, feb9)
	s.Streak.CurrentStreak = 6
	s.Streak.LongestStreak = 6
	s.Streak.LastCompletedDate = feb9.Yesterday
	s, _ = s.IncrementListened(feb9)
	if s.Streak.WeeklyStreaks != 1 || s.Streak.MonthlyStreaks != 0 {
		t.Fatalf("unexpected weekly/monthly counters: %+v", s.Streak)
	}
}

func TestRemainingAndStreakAlive(t *testing.T) {
	s := withGoal(t, 3, feb9)
	if s.Remaining(feb9) != 3 {
		t.Fatalf("expected 3 remaining, got %d", s.Remaining(feb9))
	}
	s, _ = s.IncrementListened(feb9)
	if s.Remaining(feb9) != 2 {
		t.Fatalf("expected 2 remaining, got %d", s.Remaining(feb9))
	}
	if s.StreakAlive(feb9) {
		t.Fatal("streak must not be alive before any completion")
	}
	s.Streak.LastCompletedDate = feb9.Yesterday
	if !s.StreakAlive(feb9) {
		t.Fatal("streak completed yesterday must be alive")
	}
}
