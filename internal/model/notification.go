package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidHour   = errors.New("model: invalid hour")
	ErrInvalidMinute = errors.New("model: invalid minute")
	ErrEmptyLabel    = errors.New("model: notification label is required")
	ErrInvalidGoal   = errors.New("model: daily goal must be positive")
)

// NotificationTime is a user-configured daily reminder slot.
type NotificationTime struct {
	ID      string `json:"id"`
	Hour    int    `json:"hour"`
	Minute  int    `json:"minute"`
	Label   string `json:"label"`
	Enabled bool   `json:"enabled"`
}

func ValidateClock(hour, minute int) error {
	if hour < 0 || hour > 23 {
		return fmt.Errorf("%w: %d", ErrInvalidHour, hour)
	}
	if minute < 0 || minute > 59 {
		return fmt.Errorf("%w: %d", ErrInvalidMinute, minute)
	}
	return nil
}

func (n NotificationTime) Validate() error {
	if strings.TrimSpace(n.ID) == "" {
		return errors.New("model: notification id is required")
	}
	if err := ValidateClock(n.Hour, n.Minute); err != nil {
		return err
	}
	if strings.TrimSpace(n.Label) == "" {
		return ErrEmptyLabel
	}
	return nil
}

func (n NotificationTime) Clock() string {
	return fmt.Sprintf("%02d:%02d", n.Hour, n.Minute)
}

// ParseClock parses "HH:MM" (or "H:MM") into a validated hour and minute.
// Anything other than two runs of one or two digits around a colon is
// rejected.
func ParseClock(raw string) (int, int, error) {
	trimmed := strings.TrimSpace(raw)
	h, m, ok := strings.Cut(trimmed, ":")
	if !ok || !clockField(h) || !clockField(m) {
		return 0, 0, fmt.Errorf("model: invalid clock %q: expected HH:MM", raw)
	}
	hour, _ := strconv.Atoi(h)
	minute, _ := strconv.Atoi(m)
	if err := ValidateClock(hour, minute); err != nil {
		return 0, 0, err
	}
	return hour, minute, nil
}

func clockField(s string) bool {
	if len(s) == 0 || len(s) > 2 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func DefaultNotificationTimes() []NotificationTime {
	return []NotificationTime{
		{ID: "1", Hour: 8, Minute: 0, Label: "Morning Reflection", Enabled: true},
		{ID: "2", Hour: 12, Minute: 0, Label: "Midday Wisdom", Enabled: true},
		{ID: "3", Hour: 20, Minute: 0, Label: "Evening Peace", Enabled: true},
	}
}
