package confession

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/sandeepkv93/graced/internal/clock"
	"github.com/sandeepkv93/graced/internal/model"
)

const (
	EntryLimit          = 20
	DefaultReminderDays = 30
)

var ErrInvalidReminderDays = errors.New("confession: reminder days must be positive")

type State struct {
	LastConfessionDate string                  `json:"lastConfessionDate,omitempty"`
	Entries            []model.ConfessionEntry `json:"entries"`
	Goals              []model.SpiritualGoal   `json:"spiritualGoals"`
	ReminderEnabled    bool                    `json:"confessionReminder"`
	ReminderDays       int                     `json:"reminderDays"`
}

func Default() State {
	return State{
		Entries:         []model.ConfessionEntry{},
		Goals:           []model.SpiritualGoal{},
		ReminderEnabled: true,
		ReminderDays:    DefaultReminderDays,
	}
}

// RecordConfession appends entry, keeps the most recent EntryLimit entries
// and moves LastConfessionDate to the newest entry date.
func (s State) RecordConfession(entry model.ConfessionEntry) (State, error) {
	if err := entry.Validate(); err != nil {
		return s, err
	}
	if entry.SpiritualGoals == nil {
		entry.SpiritualGoals = []string{}
	}
	entries := make([]model.ConfessionEntry, 0, len(s.Entries)+1)
	entries = append(entries, entry)
	entries = append(entries, s.Entries...)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})
	if len(entries) > EntryLimit {
		entries = entries[:EntryLimit]
	}
	s.Entries = entries
	s.LastConfessionDate = entries[0].Date
	return s, nil
}

func NewGoal(id, sin, virtue, description string, day clock.Day) model.SpiritualGoal {
	sin = strings.TrimSpace(sin)
	virtue = strings.TrimSpace(virtue)
	description = strings.TrimSpace(description)
	text := fmt.Sprintf("Overcome %s through %s", sin, virtue)
	if description != "" {
		text += ": " + description
	}
	return model.SpiritualGoal{
		ID:          id,
		Sin:         sin,
		Virtue:      virtue,
		Description: description,
		Text:        text,
		DateAdded:   day.Today,
	}
}

func NewCustomGoal(id, text string, day clock.Day) model.SpiritualGoal {
	return model.SpiritualGoal{
		ID:        id,
		Text:      strings.TrimSpace(text),
		DateAdded: day.Today,
	}
}

func (s State) AddGoal(goal model.SpiritualGoal) (State, error) {
	goal.Progress = 0
	goal.IsActive = false
	goal.Completed = false
	if err := goal.Validate(); err != nil {
		return s, err
	}
	goals := make([]model.SpiritualGoal, 0, len(s.Goals)+1)
	goals = append(goals, s.Goals...)
	s.Goals = append(goals, goal)
	return s, nil
}

func (s State) UpdateProgress(id string, percent int) State {
	percent = max(0, min(100, percent))
	return s.mapGoal(id, func(g *model.SpiritualGoal) { g.Progress = percent })
}

func (s State) ToggleActive(id string) State {
	return s.mapGoal(id, func(g *model.SpiritualGoal) { g.IsActive = !g.IsActive })
}

func (s State) ToggleCompleted(id string) State {
	return s.mapGoal(id, func(g *model.SpiritualGoal) { g.Completed = !g.Completed })
}

func (s State) RemoveGoal(id string) State {
	out := make([]model.SpiritualGoal, 0, len(s.Goals))
	for _, g := range s.Goals {
		if g.ID != id {
			out = append(out, g)
		}
	}
	s.Goals = out
	return s
}

// ActiveGoalTexts lists the goals a new confession entry is recorded against.
func (s State) ActiveGoalTexts() []string {
	out := make([]string, 0, len(s.Goals))
	for _, g := range s.Goals {
		if g.IsActive && !g.Completed {
			out = append(out, g.Text)
		}
	}
	return out
}

func (s State) SetReminder(enabled bool) State {
	s.ReminderEnabled = enabled
	return s
}

func (s State) SetReminderDays(days int) (State, error) {
	if days <= 0 {
		return s, fmt.Errorf("%w: %d", ErrInvalidReminderDays, days)
	}
	s.ReminderDays = days
	return s, nil
}

// DaysSinceLastConfession rounds the elapsed time since local midnight of the
// last confession day up to whole days. ok is false when none is recorded.
func (s State) DaysSinceLastConfession(now time.Time) (int, bool) {
	if s.LastConfessionDate == "" {
		return 0, false
	}
	last, err := clock.ParseDay(s.LastConfessionDate, now.Location())
	if err != nil {
		return 0, false
	}
	elapsed := now.Sub(last).Hours() / 24
	return int(math.Ceil(elapsed)), true
}

func (s State) ShouldRemind(now time.Time) bool {
	if !s.ReminderEnabled {
		return false
	}
	days, ok := s.DaysSinceLastConfession(now)
	if !ok {
		return true
	}
	return days >= s.ReminderDays
}

func (s State) mapGoal(id string, fn func(*model.SpiritualGoal)) State {
	out := make([]model.SpiritualGoal, len(s.Goals))
	copy(out, s.Goals)
	for i := range out {
		if out[i].ID == id {
			fn(&out[i])
		}
	}
	s.Goals = out
	return s
}
