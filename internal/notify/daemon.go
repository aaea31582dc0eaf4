package notify

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/sandeepkv93/graced/internal/clock"
	"github.com/sandeepkv93/graced/internal/model"
	"github.com/sandeepkv93/graced/internal/scheduler"
)

const DefaultPollInterval = 30 * time.Second

// Lister is the read side of a Scheduler.
type Lister interface {
	ListScheduled(ctx context.Context) ([]Registration, error)
}

// Daemon turns registrations into fired notifications. It polls the lister,
// arms one timer per registration and re-arms each alert for the next day
// after it fires.
type Daemon struct {
	lister    Lister
	engine    *scheduler.Engine
	deliverer Deliverer
	clock     clock.Clock
	logger    hclog.Logger
	interval  time.Duration

	fingerprint string
	regs        map[string]Registration
	delivered   int
}

type DaemonOptions struct {
	Interval time.Duration
	Buffer   int
	Clock    clock.Clock
	Logger   hclog.Logger
}

func NewDaemon(l Lister, d Deliverer, opts DaemonOptions) *Daemon {
	if opts.Interval <= 0 {
		opts.Interval = DefaultPollInterval
	}
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}
	return &Daemon{
		lister:    l,
		engine:    scheduler.NewEngine(opts.Buffer),
		deliverer: d,
		clock:     opts.Clock,
		logger:    opts.Logger.Named("daemon"),
		interval:  opts.Interval,
		regs:      make(map[string]Registration),
	}
}

// Run blocks until ctx is done.
func (d *Daemon) Run(ctx context.Context) error {
	d.engine.Start()
	defer d.engine.Stop()

	if err := d.Sync(ctx); err != nil {
		d.logger.Error("initial sync failed", "error", err)
	}
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("daemon stopped", "delivered", d.delivered, "dropped", d.engine.Dropped())
			return nil
		case <-ticker.C:
			if err := d.Sync(ctx); err != nil {
				d.logger.Error("sync failed", "error", err)
			}
		case a, ok := <-d.engine.C():
			if !ok {
				return nil
			}
			d.fire(ctx, a)
		}
	}
}

// Sync re-arms the engine when the registered set changed since the last call.
func (d *Daemon) Sync(ctx context.Context) error {
	regs, err := d.lister.ListScheduled(ctx)
	if err != nil {
		return err
	}
	fp := fingerprint(regs)
	if fp == d.fingerprint {
		return nil
	}
	d.engine.CancelAll()
	d.regs = make(map[string]Registration, len(regs))
	now := d.clock.Now()
	for _, reg := range regs {
		if err := d.arm(reg, now); err != nil {
			d.logger.Warn("skipping registration", "id", reg.ID, "error", err)
			continue
		}
		d.regs[reg.ID] = reg
	}
	d.fingerprint = fp
	d.logger.Info("armed notifications", "count", len(d.regs))
	return nil
}

// Pending lists armed alerts in firing order.
func (d *Daemon) Pending() []scheduler.Alert {
	return d.engine.Pending()
}

func (d *Daemon) arm(reg Registration, after time.Time) error {
	trigger := model.DailyTrigger{Hour: reg.Alert.Hour, Minute: reg.Alert.Minute, Location: after.Location()}
	at, err := trigger.NextAfter(after)
	if err != nil {
		return err
	}
	return d.engine.Schedule(scheduler.Alert{
		ID:        reg.ID,
		TimeID:    reg.Alert.TimeID,
		Title:     reg.Alert.Title,
		Body:      reg.Alert.Body,
		Hour:      reg.Alert.Hour,
		Minute:    reg.Alert.Minute,
		TriggerAt: at,
	})
}

func (d *Daemon) fire(ctx context.Context, a scheduler.Alert) {
	reg, ok := d.regs[a.ID]
	if !ok {
		return
	}
	n := Notification{Title: a.Title, Body: a.Body, Tag: a.ID, TimeID: a.TimeID}
	if err := d.deliverer.Deliver(ctx, n); err != nil {
		d.logger.Error("delivery failed", "id", a.ID, "error", err)
	} else {
		d.delivered++
		d.logger.Info("delivered", "title", a.Title, "at", a.TriggerAt.Format(time.RFC3339))
	}
	if err := d.arm(reg, a.TriggerAt); err != nil {
		d.logger.Error("re-arm failed", "id", a.ID, "error", err)
	}
}

func fingerprint(regs []Registration) string {
	parts := make([]string, 0, len(regs))
	for _, r := range regs {
		parts = append(parts, fmt.Sprintf("%s@%02d:%02d", r.ID, r.Alert.Hour, r.Alert.Minute))
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}
