// Package settings holds user preferences and the notification schedule.
package settings

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/graced/internal/model"
)

type State struct {
	DarkMode               bool                     `json:"isDarkMode"`
	BackgroundMusic        bool                     `json:"enableBackgroundMusic"`
	DailyNotifications     bool                     `json:"dailyNotifications"`
	NotificationTimes      []model.NotificationTime `json:"notificationTimes"`
	HasCompletedOnboarding bool                     `json:"hasCompletedOnboarding"`
	ShowTutorialOverlays   bool                     `json:"showTutorialOverlays"`
	Personal               model.PersonalInfo       `json:"personalInfo"`
	Profile                model.UserProfile        `json:"userProfile"`
	Rescue                 model.RescueSettings     `json:"rescueModeSettings"`
}

func Default() State {
	return State{
		DailyNotifications:   true,
		NotificationTimes:    model.DefaultNotificationTimes(),
		ShowTutorialOverlays: true,
		Personal:             model.PersonalInfo{SpiritualGoals: []string{}},
		Rescue:               model.DefaultRescueSettings(),
	}
}

func (s State) ToggleDarkMode() State {
	s.DarkMode = !s.DarkMode
	return s
}

func (s State) ToggleBackgroundMusic() State {
	s.BackgroundMusic = !s.BackgroundMusic
	return s
}

func (s State) SetNotificationsEnabled(enabled bool) State {
	s.DailyNotifications = enabled
	return s
}

func (s State) ToggleDailyNotifications() State {
	return s.SetNotificationsEnabled(!s.DailyNotifications)
}

func (s State) AddTime(t model.NotificationTime) (State, error) {
	t.Label = strings.TrimSpace(t.Label)
	if err := t.Validate(); err != nil {
		return s, err
	}
	if s.findTime(t.ID) >= 0 {
		return s, fmt.Errorf("settings: notification id %q already exists", t.ID)
	}
	times := s.copyTimes(1)
	s.NotificationTimes = append(times, t)
	return s, nil
}

func (s State) RemoveTime(id string) State {
	out := make([]model.NotificationTime, 0, len(s.NotificationTimes))
	for _, t := range s.NotificationTimes {
		if t.ID != id {
			out = append(out, t)
		}
	}
	s.NotificationTimes = out
	return s
}

func (s State) ToggleTime(id string) State {
	times := s.copyTimes(0)
	if i := s.findTime(id); i >= 0 {
		times[i].Enabled = !times[i].Enabled
	}
	s.NotificationTimes = times
	return s
}

func (s State) UpdateTime(id string, hour, minute int, label string) (State, error) {
	i := s.findTime(id)
	if i < 0 {
		return s, nil
	}
	updated := s.NotificationTimes[i]
	updated.Hour = hour
	updated.Minute = minute
	updated.Label = strings.TrimSpace(label)
	if err := updated.Validate(); err != nil {
		return s, err
	}
	times := s.copyTimes(0)
	times[i] = updated
	s.NotificationTimes = times
	return s, nil
}

func (s State) ResetToDefaults() State {
	s.NotificationTimes = model.DefaultNotificationTimes()
	return s
}

// EffectiveSchedule is the set of times that should be registered with the
// notification scheduler for this state.
func (s State) EffectiveSchedule() []model.NotificationTime {
	if !s.DailyNotifications {
		return []model.NotificationTime{}
	}
	out := make([]model.NotificationTime, 0, len(s.NotificationTimes))
	for _, t := range s.NotificationTimes {
		if t.Enabled {
			out = append(out, t)
		}
	}
	return out
}

func (s State) CompleteOnboarding() State {
	s.HasCompletedOnboarding = true
	return s
}

func (s State) ResetOnboarding() State {
	s.HasCompletedOnboarding = false
	s.ShowTutorialOverlays = true
	return s
}

func (s State) DismissTutorialOverlays() State {
	s.ShowTutorialOverlays = false
	return s
}

// UpdatePersonalInfo replaces name, age and goals; contract fields are kept.
func (s State) UpdatePersonalInfo(info model.PersonalInfo) (State, error) {
	info.Name = strings.TrimSpace(info.Name)
	if err := info.Validate(); err != nil {
		return s, err
	}
	info.ContractSigned = s.Personal.ContractSigned
	info.SignatureDate = s.Personal.SignatureDate
	if info.SpiritualGoals == nil {
		info.SpiritualGoals = []string{}
	}
	s.Personal = info
	return s, nil
}

func (s State) SignContract(at time.Time) State {
	s.Personal.ContractSigned = true
	signed := at
	s.Personal.SignatureDate = &signed
	return s
}

func (s State) SignIn(profile model.UserProfile) (State, error) {
	if err := profile.Validate(); err != nil {
		return s, err
	}
	s.Profile = profile
	return s, nil
}

func (s State) SignOut() State {
	s.Profile = model.UserProfile{}
	return s
}

func (s State) UpdateRescueSettings(r model.RescueSettings) (State, error) {
	if err := r.Validate(); err != nil {
		return s, err
	}
	s.Rescue = r
	return s, nil
}

// DisplayName prefers the sign-in name over the onboarding name.
func (s State) DisplayName() string {
	if name := strings.TrimSpace(s.Profile.Name); name != "" {
		return name
	}
	if name := strings.TrimSpace(s.Personal.Name); name != "" {
		return name
	}
	return "Friend"
}

func (s State) findTime(id string) int {
	for i, t := range s.NotificationTimes {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s State) copyTimes(extra int) []model.NotificationTime {
	out := make([]model.NotificationTime, len(s.NotificationTimes), len(s.NotificationTimes)+extra)
	copy(out, s.NotificationTimes)
	return out
}
