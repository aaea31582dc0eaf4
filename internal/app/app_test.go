package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sandeepkv93/graced/internal/catalog"
	"github.com/sandeepkv93/graced/internal/clock"
	"github.com/sandeepkv93/graced/internal/model"
	"github.com/sandeepkv93/graced/internal/notify"
	"github.com/sandeepkv93/graced/internal/storage"
)

type recordingScheduler struct {
	mu      sync.Mutex
	granted bool
	regs    []notify.Registration
	cancels int
}

func (s *recordingScheduler) RequestPermission(context.Context) (bool, error) {
	return s.granted, nil
}

func (s *recordingScheduler) CancelAll(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancels++
	s.regs = nil
	return nil
}

func (s *recordingScheduler) ScheduleRecurring(_ context.Context, a notify.Alert) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := fmt.Sprintf("reg-%d", len(s.regs)+1)
	s.regs = append(s.regs, notify.Registration{ID: id, Alert: a})
	return id, nil
}

func (s *recordingScheduler) ListScheduled(context.Context) ([]notify.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]notify.Registration(nil), s.regs...), nil
}

func (s *recordingScheduler) timeIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.regs))
	for _, r := range s.regs {
		out = append(out, r.Alert.TimeID)
	}
	return out
}

type harness struct {
	app   *App
	store storage.Store
	sched *recordingScheduler
	clock *clock.Manual
}

func newHarness(t *testing.T, store storage.Store, now time.Time) harness {
	t.Helper()
	if store == nil {
		var err error
		store, err = storage.NewFileStore(filepath.Join(t.TempDir(), "state"))
		if err != nil {
			t.Fatalf("file store: %v", err)
		}
	}
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	sched := &recordingScheduler{granted: true}
	clk := clock.NewManual(now)
	n := 0
	a := New(Options{
		Store:     store,
		Scheduler: sched,
		Catalog:   cat,
		Clock:     clk,
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	})
	if err := a.Load(t.Context()); err != nil {
		t.Fatalf("load: %v", err)
	}
	t.Cleanup(func() { _ = a.Close(context.Background()) })
	return harness{app: a, store: store, sched: sched, clock: clk}
}

func day(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
}

func TestLoadSchedulesDefaultsWhenEnabled(t *testing.T) {
	h := newHarness(t, nil, day(2026, 2, 9, 9))
	ids := h.sched.timeIDs()
	if len(ids) != 3 {
		t.Fatalf("expected 3 scheduled defaults, got %v", ids)
	}
	status := h.app.ScheduleStatus()
	if status.Err != nil || status.Scheduled != 3 {
		t.Fatalf("unexpected status: %+v", status)
	}
}

func TestToggleTimeReschedulesExactlyEnabled(t *testing.T) {
	h := newHarness(t, nil, day(2026, 2, 9, 9))
	ctx := t.Context()

	if _, err := h.app.ToggleNotificationTime(ctx, "2"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	ids := h.sched.timeIDs()
	if len(ids) != 2 || ids[0] != "1" || ids[1] != "3" {
		t.Fatalf("expected times 1 and 3 scheduled, got %v", ids)
	}

	if _, err := h.app.SetNotificationsEnabled(ctx, false); err != nil {
		t.Fatalf("disable: %v", err)
	}
	if len(h.sched.timeIDs()) != 0 {
		t.Fatal("expected nothing scheduled with notifications off")
	}

	cancels := h.sched.cancels
	if _, err := h.app.ToggleNotificationTime(ctx, "1"); err != nil {
		t.Fatalf("toggle while off: %v", err)
	}
	if h.sched.cancels != cancels {
		t.Fatal("toggling with notifications off must not touch the scheduler")
	}
}

func TestAddTimeValidatesAndSchedules(t *testing.T) {
	h := newHarness(t, nil, day(2026, 2, 9, 9))
	ctx := t.Context()

	if _, err := h.app.AddNotificationTime(ctx, 25, 0, "Late"); !errors.Is(err, model.ErrInvalidHour) {
		t.Fatalf("expected ErrInvalidHour, got %v", err)
	}
	if len(h.app.Settings().NotificationTimes) != 3 {
		t.Fatal("invalid time must not be added")
	}

	added, err := h.app.AddNotificationTime(ctx, 6, 30, " Dawn ")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !added.Enabled || added.Label != "Dawn" || added.ID == "" {
		t.Fatalf("unexpected added time: %+v", added)
	}
	if len(h.sched.timeIDs()) != 4 {
		t.Fatalf("expected 4 scheduled, got %v", h.sched.timeIDs())
	}
}

func TestPermissionDeniedIsRecordedNotReturned(t *testing.T) {
	h := newHarness(t, nil, day(2026, 2, 9, 9))
	h.sched.granted = false
	if _, err := h.app.ResetNotificationTimes(t.Context()); err != nil {
		t.Fatalf("mutation must succeed when permission is denied: %v", err)
	}
	if status := h.app.ScheduleStatus(); !errors.Is(status.Err, notify.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied in status, got %+v", status)
	}
}

func TestGoalScenarioAndPersistence(t *testing.T) {
	store, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "graced.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer store.Close()

	h := newHarness(t, store, day(2026, 2, 9, 9))
	if _, err := h.app.SetDailyGoal(3); err != nil {
		t.Fatalf("set goal: %v", err)
	}
	var completions []bool
	for _, id := range []string{"1", "2", "3", "4"} {
		_, done := h.app.MarkListened(id)
		completions = append(completions, done)
	}
	if completions[0] || completions[1] || !completions[2] || completions[3] {
		t.Fatalf("unexpected completion edges: %v", completions)
	}
	p := h.app.Player()
	if p.Streak.CurrentStreak != 1 || p.Streak.Today.QuotesListened != 4 || !p.Celebrate {
		t.Fatalf("unexpected streak: %+v celebrate=%v", p.Streak, p.Celebrate)
	}
	if p.History[0] != "4" || len(p.History) != 4 {
		t.Fatalf("unexpected history: %v", p.History)
	}
	if err := h.app.Close(t.Context()); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened := newHarness(t, store, day(2026, 2, 9, 18))
	p = reopened.app.Player()
	if p.DailyGoal != 3 || p.Streak.CurrentStreak != 1 || p.Streak.Today.QuotesListened != 4 {
		t.Fatalf("state not restored: goal=%d streak=%+v", p.DailyGoal, p.Streak)
	}
	if p.Celebrate || p.Playback.Current != nil {
		t.Fatal("session-only fields must not be restored")
	}
}

func TestLoadRollsOverToNewDay(t *testing.T) {
	store, err := storage.NewFileStore(filepath.Join(t.TempDir(), "state"))
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	h := newHarness(t, store, day(2026, 2, 9, 22))
	_, _ = h.app.SetDailyGoal(1)
	if _, done := h.app.MarkListened("1"); !done {
		t.Fatal("expected completion")
	}
	_ = h.app.Close(t.Context())

	next := newHarness(t, store, day(2026, 2, 10, 7))
	p := next.app.Player()
	if p.Streak.Today.Date != "2026-02-10" || p.Streak.Today.QuotesListened != 0 || p.Streak.Today.GoalCompleted {
		t.Fatalf("expected fresh day record, got %+v", p.Streak.Today)
	}
	if p.Streak.CurrentStreak != 1 || p.Streak.LastCompletedDate != "2026-02-09" {
		t.Fatalf("streak must survive rollover: %+v", p.Streak)
	}
	if _, done := next.app.MarkListened("2"); !done {
		t.Fatal("expected completion on the next day")
	}
	if got := next.app.Player().Streak.CurrentStreak; got != 2 {
		t.Fatalf("expected streak 2, got %d", got)
	}
}

func TestLoadMergesPartialSnapshot(t *testing.T) {
	store, err := storage.NewFileStore(filepath.Join(t.TempDir(), "state"))
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	raw, _ := json.Marshal(map[string]any{"isDarkMode": true, "dailyNotifications": false})
	if err := store.Save(t.Context(), storage.SettingsKey, raw); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := store.Save(t.Context(), storage.PlayerKey, []byte("{not json")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	h := newHarness(t, store, day(2026, 2, 9, 9))
	s := h.app.Settings()
	if !s.DarkMode || s.DailyNotifications {
		t.Fatalf("persisted fields lost: %+v", s)
	}
	if len(s.NotificationTimes) != 3 || !s.ShowTutorialOverlays || !s.Rescue.Enabled {
		t.Fatalf("missing fields must fall back to defaults: %+v", s)
	}
	if h.app.Player().DailyGoal != 10 {
		t.Fatal("unreadable player snapshot must fall back to defaults")
	}
	if len(h.sched.timeIDs()) != 0 {
		t.Fatal("disabled notifications must not be scheduled on load")
	}
}

func TestPlaybackThroughCatalog(t *testing.T) {
	h := newHarness(t, nil, day(2026, 2, 9, 9))
	p, err := h.app.Play("11", "Love")
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if p.Playback.Current.ID != "11" || len(p.Playback.Playlist) != 2 || p.Playback.Index != 1 {
		t.Fatalf("unexpected playback: %+v", p.Playback)
	}
	p = h.app.Next()
	if p.Playback.Current.ID != "3" {
		t.Fatalf("expected wrap to 3, got %s", p.Playback.Current.ID)
	}
	p = h.app.TogglePlayback()
	if p.Playback.IsPlaying {
		t.Fatal("expected paused")
	}
	if _, err := h.app.Play("missing", ""); !errors.Is(err, catalog.ErrUnknownQuote) {
		t.Fatalf("expected ErrUnknownQuote, got %v", err)
	}
	if !h.app.ToggleFavorite("3") || len(h.app.Favorites()) != 1 {
		t.Fatal("expected favorite added")
	}
	if _, done, err := h.app.ListenCurrent(); err != nil || done {
		t.Fatalf("unexpected listen result: done=%v err=%v", done, err)
	}
}

func TestConfessionFlow(t *testing.T) {
	h := newHarness(t, nil, day(2026, 2, 9, 9))
	goal, err := h.app.AddGoalFromCatalog("Anger")
	if err != nil {
		t.Fatalf("add goal: %v", err)
	}
	if goal.IsActive || goal.Virtue != "Patience" {
		t.Fatalf("unexpected goal: %+v", goal)
	}
	h.app.ToggleGoalActive(goal.ID)

	if due := h.app.ConfessionDue(); due.Known || !due.Remind {
		t.Fatalf("never confessed must be due: %+v", due)
	}
	entry, err := h.app.RecordConfession("2026-02-01", "first")
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(entry.SpiritualGoals) != 1 {
		t.Fatalf("expected active goal captured, got %v", entry.SpiritualGoals)
	}
	due := h.app.ConfessionDue()
	if !due.Known || due.Days != 9 || due.Remind {
		t.Fatalf("unexpected due status: %+v", due)
	}
	if _, err := h.app.AddGoalFromCatalog("nope"); err == nil {
		t.Fatal("expected unknown sin error")
	}
}

func TestRescueRespectsSettings(t *testing.T) {
	h := newHarness(t, nil, day(2026, 2, 9, 9))
	q, err := h.app.Rescue()
	if err != nil {
		t.Fatalf("rescue: %v", err)
	}
	if q.Category != "Temptation & Victory" && q.Category != "Peace & Courage" {
		t.Fatalf("unexpected rescue category %q", q.Category)
	}
	if cur := h.app.Player().Playback.Current; cur == nil || cur.ID != q.ID {
		t.Fatal("rescue quote should be playing")
	}
	off := h.app.Settings().Rescue
	off.Enabled = false
	if _, err := h.app.UpdateRescueSettings(off); err != nil {
		t.Fatalf("update rescue: %v", err)
	}
	if _, err := h.app.Rescue(); !errors.Is(err, ErrRescueDisabled) {
		t.Fatalf("expected ErrRescueDisabled, got %v", err)
	}
}

func TestRescueWithoutRescueTeachings(t *testing.T) {
	store, err := storage.NewFileStore(filepath.Join(t.TempDir(), "state"))
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	cat.Rescue = nil
	a := New(Options{
		Store:     store,
		Scheduler: &recordingScheduler{granted: true},
		Catalog:   cat,
		Clock:     clock.NewManual(day(2026, 2, 9, 9)),
	})
	if err := a.Load(t.Context()); err != nil {
		t.Fatalf("load: %v", err)
	}
	defer a.Close(context.Background())

	if _, err := a.Rescue(); !errors.Is(err, ErrNoRescueQuotes) {
		t.Fatalf("expected ErrNoRescueQuotes, got %v", err)
	}
	if a.Player().Playback.Current != nil {
		t.Fatal("nothing should play when the rescue pool is empty")
	}
}
