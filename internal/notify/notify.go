package notify

import (
	"context"
	"errors"
	"time"

	"github.com/sandeepkv93/graced/internal/model"
)

var (
	ErrPermissionDenied = errors.New("notify: permission denied")
	ErrUnsupported      = errors.New("notify: platform does not support notifications")
)

// Alert describes a daily recurring notification to register.
type Alert struct {
	TimeID string `json:"timeId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	Hour   int    `json:"hour"`
	Minute int    `json:"minute"`
}

func (a Alert) Validate() error {
	return model.ValidateClock(a.Hour, a.Minute)
}

// Registration is an Alert accepted by a Scheduler.
type Registration struct {
	ID        string    `json:"id"`
	Alert     Alert     `json:"alert"`
	CreatedAt time.Time `json:"createdAt"`
}

// Scheduler is the device-level notification facility the app reconciles
// against. Registrations survive process restarts.
type Scheduler interface {
	RequestPermission(ctx context.Context) (bool, error)
	CancelAll(ctx context.Context) error
	ScheduleRecurring(ctx context.Context, a Alert) (string, error)
	ListScheduled(ctx context.Context) ([]Registration, error)
}

// Unsupported is the scheduler for platforms without notifications.
type Unsupported struct{}

func (Unsupported) RequestPermission(context.Context) (bool, error) { return false, nil }

func (Unsupported) CancelAll(context.Context) error { return nil }

func (Unsupported) ScheduleRecurring(context.Context, Alert) (string, error) {
	return "", ErrUnsupported
}

func (Unsupported) ListScheduled(context.Context) ([]Registration, error) {
	return []Registration{}, nil
}
