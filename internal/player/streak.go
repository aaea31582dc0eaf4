package player

import "github.com/sandeepkv93/graced/internal/clock"

// ResetDailyProgressIfNeeded starts a fresh zero record when the stored
// progress belongs to another calendar day.
func (s State) ResetDailyProgressIfNeeded(day clock.Day) State {
	if s.Streak.Today.Date == day.Today {
		return s
	}
	s.Streak.Today = DailyProgress{Date: day.Today}
	return s
}

// IncrementListened records one consumed teaching. The returned bool is true
// only on the call that first reaches the daily goal for day.Today.
func (s State) IncrementListened(day clock.Day) (State, bool) {
	s = s.ResetDailyProgressIfNeeded(day)

	streak := s.Streak
	count := streak.Today.QuotesListened + 1
	goalMet := count >= s.DailyGoal || streak.Today.GoalCompleted
	firstTimeToday := goalMet && !streak.Today.GoalCompleted

	streak.TotalQuotesListened++

	if firstTimeToday {
		switch {
		case streak.LastCompletedDate == day.Yesterday:
			streak.CurrentStreak++
		case streak.LastCompletedDate != day.Today:
			streak.CurrentStreak = 1
		}
		streak.LastCompletedDate = day.Today
		streak.TotalDaysCompleted++
		streak.LongestStreak = max(streak.LongestStreak, streak.CurrentStreak)
		if streak.CurrentStreak%7 == 0 {
			streak.WeeklyStreaks++
		}
		if streak.CurrentStreak%30 == 0 {
			streak.MonthlyStreaks++
		}
	}

	streak.Today = DailyProgress{
		Date:           day.Today,
		QuotesListened: count,
		GoalCompleted:  goalMet,
	}
	s.Streak = streak
	if firstTimeToday {
		s.Celebrate = true
	}
	return s, firstTimeToday
}

// Remaining reports how many more teachings are needed to meet today's goal.
func (s State) Remaining(day clock.Day) int {
	s = s.ResetDailyProgressIfNeeded(day)
	left := s.DailyGoal - s.Streak.Today.QuotesListened
	if left < 0 {
		return 0
	}
	return left
}

// StreakAlive reports whether the current streak can still be continued:
// the goal was met today or yesterday.
func (s State) StreakAlive(day clock.Day) bool {
	last := s.Streak.LastCompletedDate
	return last == day.Today || last == day.Yesterday
}
