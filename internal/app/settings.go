package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sandeepkv93/graced/internal/model"
	"github.com/sandeepkv93/graced/internal/notify"
	"github.com/sandeepkv93/graced/internal/player"
	"github.com/sandeepkv93/graced/internal/settings"
)

var (
	ErrRescueDisabled = errors.New("app: rescue mode is disabled")
	ErrNoRescueQuotes = errors.New("app: no rescue teachings available")
)

// ScheduleStatus is the outcome of the latest reconcile pass.
func (a *App) ScheduleStatus() notify.Outcome {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}

// Reschedule reconciles the scheduler with the current effective schedule.
func (a *App) Reschedule(ctx context.Context) notify.Outcome {
	a.scheduleMu.Lock()
	defer a.scheduleMu.Unlock()
	return a.reconcile(ctx, a.Settings().EffectiveSchedule())
}

func (a *App) reconcile(ctx context.Context, desired []model.NotificationTime) notify.Outcome {
	out := a.reconciler.Apply(ctx, desired)
	if out.Err != nil {
		a.logger.Warn("notification schedule not fully applied", "error", out.Err)
	}
	a.mu.Lock()
	a.status = out
	a.mu.Unlock()
	return out
}

// updateSchedule applies fn and reconciles. Validation errors are returned;
// scheduler failures only land in ScheduleStatus.
func (a *App) updateSchedule(ctx context.Context, fn func(settings.State) (settings.State, error)) (settings.State, error) {
	a.scheduleMu.Lock()
	defer a.scheduleMu.Unlock()
	before := a.Settings().EffectiveSchedule()
	next, err := a.updateSettings(fn)
	if err != nil {
		return next, err
	}
	after := next.EffectiveSchedule()
	if len(before) == 0 && len(after) == 0 {
		return next, nil
	}
	a.reconcile(ctx, after)
	return next, nil
}

func (a *App) Scheduled(ctx context.Context) ([]notify.Registration, error) {
	return a.scheduler.ListScheduled(ctx)
}

func (a *App) SetNotificationsEnabled(ctx context.Context, enabled bool) (settings.State, error) {
	return a.updateSchedule(ctx, func(s settings.State) (settings.State, error) {
		return s.SetNotificationsEnabled(enabled), nil
	})
}

func (a *App) ToggleDailyNotifications(ctx context.Context) (settings.State, error) {
	return a.updateSchedule(ctx, func(s settings.State) (settings.State, error) {
		return s.ToggleDailyNotifications(), nil
	})
}

// AddNotificationTime creates an enabled time with a fresh id.
func (a *App) AddNotificationTime(ctx context.Context, hour, minute int, label string) (model.NotificationTime, error) {
	t := model.NotificationTime{
		ID:      a.newID(),
		Hour:    hour,
		Minute:  minute,
		Label:   strings.TrimSpace(label),
		Enabled: true,
	}
	_, err := a.updateSchedule(ctx, func(s settings.State) (settings.State, error) {
		return s.AddTime(t)
	})
	if err != nil {
		return model.NotificationTime{}, err
	}
	return t, nil
}

func (a *App) RemoveNotificationTime(ctx context.Context, id string) (settings.State, error) {
	return a.updateSchedule(ctx, func(s settings.State) (settings.State, error) {
		return s.RemoveTime(id), nil
	})
}

func (a *App) ToggleNotificationTime(ctx context.Context, id string) (settings.State, error) {
	return a.updateSchedule(ctx, func(s settings.State) (settings.State, error) {
		return s.ToggleTime(id), nil
	})
}

func (a *App) UpdateNotificationTime(ctx context.Context, id string, hour, minute int, label string) (settings.State, error) {
	return a.updateSchedule(ctx, func(s settings.State) (settings.State, error) {
		return s.UpdateTime(id, hour, minute, label)
	})
}

func (a *App) ResetNotificationTimes(ctx context.Context) (settings.State, error) {
	return a.updateSchedule(ctx, func(s settings.State) (settings.State, error) {
		return s.ResetToDefaults(), nil
	})
}

func (a *App) ToggleDarkMode() settings.State {
	s, _ := a.updateSettings(func(s settings.State) (settings.State, error) { return s.ToggleDarkMode(), nil })
	return s
}

func (a *App) ToggleBackgroundMusic() settings.State {
	s, _ := a.updateSettings(func(s settings.State) (settings.State, error) { return s.ToggleBackgroundMusic(), nil })
	return s
}

func (a *App) CompleteOnboarding() settings.State {
	s, _ := a.updateSettings(func(s settings.State) (settings.State, error) { return s.CompleteOnboarding(), nil })
	return s
}

func (a *App) ResetOnboarding() settings.State {
	s, _ := a.updateSettings(func(s settings.State) (settings.State, error) { return s.ResetOnboarding(), nil })
	return s
}

func (a *App) DismissTutorialOverlays() settings.State {
	s, _ := a.updateSettings(func(s settings.State) (settings.State, error) { return s.DismissTutorialOverlays(), nil })
	return s
}

func (a *App) UpdatePersonalInfo(info model.PersonalInfo) (settings.State, error) {
	return a.updateSettings(func(s settings.State) (settings.State, error) { return s.UpdatePersonalInfo(info) })
}

func (a *App) SignContract() settings.State {
	now := a.clock.Now()
	s, _ := a.updateSettings(func(s settings.State) (settings.State, error) { return s.SignContract(now), nil })
	return s
}

func (a *App) SignIn(profile model.UserProfile) (settings.State, error) {
	return a.updateSettings(func(s settings.State) (settings.State, error) { return s.SignIn(profile) })
}

func (a *App) SignOut() settings.State {
	s, _ := a.updateSettings(func(s settings.State) (settings.State, error) { return s.SignOut(), nil })
	return s
}

func (a *App) UpdateRescueSettings(r model.RescueSettings) (settings.State, error) {
	return a.updateSettings(func(s settings.State) (settings.State, error) { return s.UpdateRescueSettings(r) })
}

// Rescue picks a quote from the configured rescue categories and starts it.
func (a *App) Rescue() (model.Quote, error) {
	cfg := a.Settings().Rescue
	if !cfg.Enabled {
		return model.Quote{}, ErrRescueDisabled
	}
	q, ok := a.catalog.PickRescue(cfg, nil)
	if !ok {
		return model.Quote{}, ErrNoRescueQuotes
	}
	pool := a.catalog.RescuePool(cfg.QuoteCategories)
	a.updatePlayer(func(s player.State) player.State {
		s = s.PlayItem(q, pool)
		if !cfg.AutoPlayAudio {
			s = s.Pause()
		}
		return s
	})
	a.logger.Info("rescue mode", "quote", q.ID, "at", a.clock.Now().Format(time.RFC3339))
	return q, nil
}
