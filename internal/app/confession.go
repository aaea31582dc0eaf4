package app

import (
	"strings"

	"github.com/sandeepkv93/graced/internal/confession"
	"github.com/sandeepkv93/graced/internal/model"
)

// RecordConfession logs a confession on date (today when empty) against the
// currently active spiritual goals.
func (a *App) RecordConfession(date, notes string) (model.ConfessionEntry, error) {
	if strings.TrimSpace(date) == "" {
		date = a.Today().Today
	}
	var entry model.ConfessionEntry
	_, err := a.updateConfession(func(c confession.State) (confession.State, error) {
		entry = model.ConfessionEntry{
			ID:             a.newID(),
			Date:           strings.TrimSpace(date),
			SpiritualGoals: c.ActiveGoalTexts(),
			Notes:          strings.TrimSpace(notes),
		}
		return c.RecordConfession(entry)
	})
	if err != nil {
		return model.ConfessionEntry{}, err
	}
	return entry, nil
}

func (a *App) AddGoal(sin, virtue, description string) (model.SpiritualGoal, error) {
	return a.addGoal(confession.NewGoal(a.newID(), sin, virtue, description, a.Today()))
}

// AddGoalFromCatalog adds the goal for a common sin looked up by id or name.
func (a *App) AddGoalFromCatalog(key string) (model.SpiritualGoal, error) {
	sin, ok := confession.LookupSin(key)
	if !ok {
		return model.SpiritualGoal{}, confession.ErrUnknownSin
	}
	return a.AddGoal(sin.Sin, sin.Virtue, sin.Description)
}

func (a *App) AddCustomGoal(text string) (model.SpiritualGoal, error) {
	return a.addGoal(confession.NewCustomGoal(a.newID(), text, a.Today()))
}

func (a *App) addGoal(g model.SpiritualGoal) (model.SpiritualGoal, error) {
	c, err := a.updateConfession(func(c confession.State) (confession.State, error) {
		return c.AddGoal(g)
	})
	if err != nil {
		return model.SpiritualGoal{}, err
	}
	return c.Goals[len(c.Goals)-1], nil
}

func (a *App) UpdateGoalProgress(id string, percent int) confession.State {
	c, _ := a.updateConfession(func(c confession.State) (confession.State, error) {
		return c.UpdateProgress(id, percent), nil
	})
	return c
}

func (a *App) ToggleGoalActive(id string) confession.State {
	c, _ := a.updateConfession(func(c confession.State) (confession.State, error) {
		return c.ToggleActive(id), nil
	})
	return c
}

func (a *App) ToggleGoalCompleted(id string) confession.State {
	c, _ := a.updateConfession(func(c confession.State) (confession.State, error) {
		return c.ToggleCompleted(id), nil
	})
	return c
}

func (a *App) RemoveGoal(id string) confession.State {
	c, _ := a.updateConfession(func(c confession.State) (confession.State, error) {
		return c.RemoveGoal(id), nil
	})
	return c
}

func (a *App) SetConfessionReminder(enabled bool) confession.State {
	c, _ := a.updateConfession(func(c confession.State) (confession.State, error) {
		return c.SetReminder(enabled), nil
	})
	return c
}

func (a *App) SetConfessionReminderDays(days int) (confession.State, error) {
	return a.updateConfession(func(c confession.State) (confession.State, error) {
		return c.SetReminderDays(days)
	})
}

// DueStatus is days since the last confession (Known is false when none was
// recorded) and whether a reminder is due now.
type DueStatus struct {
	Days   int
	Known  bool
	Remind bool
}

func (a *App) ConfessionDue() DueStatus {
	c := a.Confession()
	now := a.clock.Now()
	days, known := c.DaysSinceLastConfession(now)
	return DueStatus{Days: days, Known: known, Remind: c.ShouldRemind(now)}
}
