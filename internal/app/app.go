// Package app owns the three persisted state containers. Every mutation runs
// a pure transition under one lock, queues the new snapshot for the store and,
// when the notification schedule may have changed, reconciles it with the
// notification scheduler.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/sandeepkv93/graced/internal/catalog"
	"github.com/sandeepkv93/graced/internal/clock"
	"github.com/sandeepkv93/graced/internal/confession"
	"github.com/sandeepkv93/graced/internal/model"
	"github.com/sandeepkv93/graced/internal/notify"
	"github.com/sandeepkv93/graced/internal/player"
	"github.com/sandeepkv93/graced/internal/settings"
	"github.com/sandeepkv93/graced/internal/storage"
)

type Options struct {
	Store     storage.Store
	Scheduler notify.Scheduler
	Catalog   catalog.Catalog
	Clock     clock.Clock
	Logger    hclog.Logger
	NewID     func() string
}

type App struct {
	store      storage.Store
	writer     *storage.Writer
	scheduler  notify.Scheduler
	reconciler *notify.Reconciler
	catalog    catalog.Catalog
	clock      clock.Clock
	logger     hclog.Logger
	newID      func() string

	// scheduleMu orders notification mutations with their reconcile pass.
	scheduleMu sync.Mutex

	mu         sync.Mutex
	settings   settings.State
	player     player.State
	confession confession.State
	status     notify.Outcome
}

func New(opts Options) *App {
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.Scheduler == nil {
		opts.Scheduler = notify.Unsupported{}
	}
	logger := opts.Logger.Named("app")
	return &App{
		store:      opts.Store,
		writer:     storage.NewWriter(opts.Store, opts.Logger),
		scheduler:  opts.Scheduler,
		reconciler: notify.NewReconciler(opts.Scheduler, opts.Logger),
		catalog:    opts.Catalog,
		clock:      opts.Clock,
		logger:     logger,
		newID:      opts.NewID,
		settings:   settings.Default(),
		player:     player.New(clock.Today(opts.Clock)),
		confession: confession.Default(),
	}
}

// Load rehydrates every container from the store, rolls daily progress over
// to today and, when daily notifications are on, reconciles the schedule.
// Missing or undecodable snapshots leave the defaults in place.
func (a *App) Load(ctx context.Context) error {
	a.mu.Lock()
	day := clock.Today(a.clock)
	s := settings.Default()
	p := player.New(day)
	c := confession.Default()
	if err := a.decode(ctx, storage.SettingsKey, &s); err != nil {
		a.mu.Unlock()
		return err
	}
	if err := a.decode(ctx, storage.PlayerKey, &p); err != nil {
		a.mu.Unlock()
		return err
	}
	if err := a.decode(ctx, storage.ConfessionKey, &c); err != nil {
		a.mu.Unlock()
		return err
	}
	a.settings = normalizeSettings(s)
	a.player = normalizePlayer(p)
	a.confession = normalizeConfession(c)

	rolled := a.player.ResetDailyProgressIfNeeded(day)
	if rolled.Streak.Today.Date != a.player.Streak.Today.Date {
		a.logger.Info("daily progress rolled over", "from", a.player.Streak.Today.Date, "to", day.Today)
		a.player = rolled
		a.persistLocked(storage.PlayerKey, a.player)
	}
	enabled := a.settings.DailyNotifications
	a.mu.Unlock()

	if enabled {
		a.Reschedule(ctx)
	}
	return nil
}

// Close waits for queued snapshot writes.
func (a *App) Close(ctx context.Context) error {
	return a.writer.Close(ctx)
}

// Flush waits for queued snapshot writes without stopping the writer.
func (a *App) Flush(ctx context.Context) error {
	return a.writer.Flush(ctx)
}

func (a *App) Settings() settings.State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.settings
}

func (a *App) Player() player.State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.player
}

func (a *App) Confession() confession.State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.confession
}

func (a *App) Catalog() catalog.Catalog {
	return a.catalog
}

func (a *App) Today() clock.Day {
	return clock.Today(a.clock)
}

func (a *App) Logger() hclog.Logger {
	return a.logger
}

func (a *App) decode(ctx context.Context, key string, dst any) error {
	raw, err := a.store.Load(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		a.logger.Warn("discarding unreadable snapshot", "key", key, "error", err)
	}
	return nil
}

func (a *App) persistLocked(key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		a.logger.Error("encode snapshot", "key", key, "error", err)
		return
	}
	if err := a.writer.Enqueue(key, raw); err != nil {
		a.logger.Error("queue snapshot", "key", key, "error", err)
	}
}

func (a *App) updatePlayer(fn func(player.State) player.State) player.State {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.player = fn(a.player)
	a.persistLocked(storage.PlayerKey, a.player)
	return a.player
}

func (a *App) updateSettings(fn func(settings.State) (settings.State, error)) (settings.State, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	next, err := fn(a.settings)
	if err != nil {
		return a.settings, err
	}
	a.settings = next
	a.persistLocked(storage.SettingsKey, a.settings)
	return a.settings, nil
}

func (a *App) updateConfession(fn func(confession.State) (confession.State, error)) (confession.State, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	next, err := fn(a.confession)
	if err != nil {
		return a.confession, err
	}
	a.confession = next
	a.persistLocked(storage.ConfessionKey, a.confession)
	return a.confession, nil
}

func normalizeSettings(s settings.State) settings.State {
	if s.Personal.SpiritualGoals == nil {
		s.Personal.SpiritualGoals = []string{}
	}
	if s.Rescue.QuoteCategories == nil {
		s.Rescue.QuoteCategories = []string{}
	}
	return s
}

func normalizePlayer(p player.State) player.State {
	if p.Favorites == nil {
		p.Favorites = []string{}
	}
	if p.History == nil {
		p.History = []string{}
	}
	if len(p.History) > player.HistoryLimit {
		p.History = p.History[:player.HistoryLimit]
	}
	if p.DailyGoal <= 0 {
		p.DailyGoal = player.DefaultDailyGoal
	}
	p.Streak.LongestStreak = max(p.Streak.LongestStreak, p.Streak.CurrentStreak)
	return p
}

func normalizeConfession(c confession.State) confession.State {
	if c.Entries == nil {
		c.Entries = []model.ConfessionEntry{}
	}
	if c.Goals == nil {
		c.Goals = []model.SpiritualGoal{}
	}
	if c.ReminderDays <= 0 {
		c.ReminderDays = confession.DefaultReminderDays
	}
	return c
}
