package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidDate = errors.New("model: invalid calendar date")

const dayLayout = "2006-01-02"

// ConfessionEntry is one dated journal record.
type ConfessionEntry struct {
	ID             string   `json:"id"`
	Date           string   `json:"date"`
	SpiritualGoals []string `json:"spiritualGoals"`
	Notes          string   `json:"notes,omitempty"`
}

func (e ConfessionEntry) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return errors.New("model: confession id is required")
	}
	return ValidateDay(e.Date)
}

func ValidateDay(value string) error {
	if _, err := time.Parse(dayLayout, value); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return nil
}

type SpiritualGoal struct {
	ID          string `json:"id"`
	Sin         string `json:"sin"`
	Virtue      string `json:"virtue"`
	Description string `json:"description,omitempty"`
	Text        string `json:"text"`
	Progress    int    `json:"progress"`
	DateAdded   string `json:"dateAdded"`
	IsActive    bool   `json:"isActive"`
	Completed   bool   `json:"completed"`
}

func (g SpiritualGoal) Validate() error {
	if strings.TrimSpace(g.ID) == "" {
		return errors.New("model: goal id is required")
	}
	if strings.TrimSpace(g.Text) == "" {
		return errors.New("model: goal text is required")
	}
	if g.Progress < 0 || g.Progress > 100 {
		return fmt.Errorf("model: goal progress out of range: %d", g.Progress)
	}
	return nil
}

// CommonSin pairs a sin with the virtue that overcomes it.
type CommonSin struct {
	ID          string
	Sin         string
	Virtue      string
	Description string
	Category    string
}
