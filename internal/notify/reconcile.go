package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/sandeepkv93/graced/internal/model"
)

// Outcome is the result of one reconcile pass.
type Outcome struct {
	Generation uint64
	Desired    int
	Scheduled  int
	Permission bool
	Superseded bool
	Err        error
	At         time.Time
}

// Reconciler replaces the scheduler's registrations with the desired set.
// Passes run one at a time; a pass that is overtaken by a newer call before
// it starts is skipped, so the newest desired set always wins.
type Reconciler struct {
	scheduler Scheduler
	messages  *Rotator
	logger    hclog.Logger

	mu  sync.Mutex
	gen atomic.Uint64
}

func NewReconciler(s Scheduler, logger hclog.Logger) *Reconciler {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Reconciler{
		scheduler: s,
		messages:  &Rotator{},
		logger:    logger.Named("reconcile"),
	}
}

// Apply cancels every registration, then, when times has enabled entries,
// requests permission and registers one daily alert per enabled time.
// Permission denial is reported through Outcome.Err as ErrPermissionDenied.
func (r *Reconciler) Apply(ctx context.Context, times []model.NotificationTime) Outcome {
	gen := r.gen.Add(1)
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Outcome{Generation: gen, At: time.Now()}
	if r.gen.Load() != gen {
		out.Superseded = true
		return out
	}

	if err := r.scheduler.CancelAll(ctx); err != nil {
		out.Err = fmt.Errorf("cancel scheduled: %w", err)
		r.logger.Error("cancel failed", "generation", gen, "error", err)
		return out
	}

	alerts := AlertsFor(times, r.messages)
	out.Desired = len(alerts)
	if len(alerts) == 0 {
		r.logger.Debug("notifications cleared", "generation", gen)
		return out
	}

	granted, err := r.scheduler.RequestPermission(ctx)
	if err != nil {
		out.Err = fmt.Errorf("request permission: %w", err)
		r.logger.Error("permission request failed", "error", err)
		return out
	}
	out.Permission = granted
	if !granted {
		out.Err = ErrPermissionDenied
		r.logger.Warn("notification permission not granted", "generation", gen)
		return out
	}

	var errs []error
	for _, a := range alerts {
		id, err := r.scheduler.ScheduleRecurring(ctx, a)
		if err != nil {
			errs = append(errs, fmt.Errorf("schedule %s: %w", a.TimeID, err))
			continue
		}
		out.Scheduled++
		r.logger.Debug("scheduled notification", "id", id, "time_id", a.TimeID, "hour", a.Hour, "minute", a.Minute)
	}
	out.Err = errors.Join(errs...)
	r.logger.Info("notifications scheduled", "generation", gen, "count", out.Scheduled, "desired", out.Desired)
	return out
}

// Test registers nothing; it pushes a one-off alert straight to d.
func Test(ctx context.Context, d Deliverer) error {
	if !d.Available(ctx) {
		return ErrPermissionDenied
	}
	return d.Deliver(ctx, Notification{
		Title: "Test Notification 🔔",
		Body:  "This is a test notification to verify everything is working!",
		Tag:   "test",
	})
}
