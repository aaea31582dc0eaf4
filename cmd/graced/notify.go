package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/graced/internal/model"
	"github.com/sandeepkv93/graced/internal/notify"
	"github.com/sandeepkv93/graced/internal/settings"
)

func newNotifyCmd(opts *rootOptions) *cobra.Command {
	n := &cobra.Command{Use: "notify", Short: "Daily reminder schedule"}

	n.AddCommand(&cobra.Command{
		Use:   "on",
		Short: "Enable daily reminders",
		Args:  cobra.NoArgs,
		RunE: scheduleRunE(opts, func(ctx context.Context, rt *runtime, _ []string) (settings.State, error) {
			return rt.app.SetNotificationsEnabled(ctx, true)
		}),
	})
	n.AddCommand(&cobra.Command{
		Use:   "off",
		Short: "Disable daily reminders",
		Args:  cobra.NoArgs,
		RunE: scheduleRunE(opts, func(ctx context.Context, rt *runtime, _ []string) (settings.State, error) {
			return rt.app.SetNotificationsEnabled(ctx, false)
		}),
	})
	n.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List reminder times",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, rt *runtime) error {
				printSchedule(cmd, rt, rt.app.Settings())
				return nil
			})
		},
	})
	var count int
	next := &cobra.Command{
		Use:   "next",
		Short: "Preview upcoming reminder firings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, rt *runtime) error {
				upcoming, err := upcomingFirings(rt, count)
				if err != nil {
					return err
				}
				if len(upcoming) == 0 {
					_, _ = fmt.Fprintln(out(cmd), "no reminders scheduled")
					return nil
				}
				for _, f := range upcoming {
					_, _ = fmt.Fprintf(out(cmd), "%s  %s\n", f.at.Format("Mon 2006-01-02 15:04"), notify.Title(f.slot.Label, f.slot.Hour))
				}
				return nil
			})
		},
	}
	next.Flags().IntVar(&count, "count", 5, "number of firings to show")
	n.AddCommand(next)
	n.AddCommand(&cobra.Command{
		Use:   "add <HH:MM> <label...>",
		Short: "Add a reminder time",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			hour, minute, err := model.ParseClock(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, opts, func(ctx context.Context, rt *runtime) error {
				t, err := rt.app.AddNotificationTime(ctx, hour, minute, strings.Join(args[1:], " "))
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out(cmd), "added %s %s (%s)\n", t.Clock(), t.Label, t.ID)
				printOutcome(cmd, rt)
				return nil
			})
		},
	})
	n.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a reminder time",
		Args:  cobra.ExactArgs(1),
		RunE: scheduleRunE(opts, func(ctx context.Context, rt *runtime, args []string) (settings.State, error) {
			return rt.app.RemoveNotificationTime(ctx, args[0])
		}),
	})
	n.AddCommand(&cobra.Command{
		Use:   "toggle <id>",
		Short: "Enable or disable one reminder time",
		Args:  cobra.ExactArgs(1),
		RunE: scheduleRunE(opts, func(ctx context.Context, rt *runtime, args []string) (settings.State, error) {
			return rt.app.ToggleNotificationTime(ctx, args[0])
		}),
	})
	n.AddCommand(&cobra.Command{
		Use:   "update <id> <HH:MM> <label...>",
		Short: "Change a reminder time",
		Args:  cobra.MinimumNArgs(3),
		RunE: scheduleRunE(opts, func(ctx context.Context, rt *runtime, args []string) (settings.State, error) {
			hour, minute, err := model.ParseClock(args[1])
			if err != nil {
				return rt.app.Settings(), err
			}
			return rt.app.UpdateNotificationTime(ctx, args[0], hour, minute, strings.Join(args[2:], " "))
		}),
	})
	n.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Restore the default reminder times",
		Args:  cobra.NoArgs,
		RunE: scheduleRunE(opts, func(ctx context.Context, rt *runtime, _ []string) (settings.State, error) {
			return rt.app.ResetNotificationTimes(ctx)
		}),
	})
	n.AddCommand(&cobra.Command{
		Use:   "scheduled",
		Short: "List registrations the daemon will fire",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, rt *runtime) error {
				regs, err := rt.app.Scheduled(ctx)
				if err != nil {
					return err
				}
				if len(regs) == 0 {
					_, _ = fmt.Fprintln(out(cmd), "nothing scheduled")
					printOutcome(cmd, rt)
					return nil
				}
				for _, r := range regs {
					_, _ = fmt.Fprintf(out(cmd), "%02d:%02d %s | %s\n", r.Alert.Hour, r.Alert.Minute, r.Alert.Title, r.Alert.Body)
				}
				return nil
			})
		},
	})
	n.AddCommand(&cobra.Command{
		Use:   "test",
		Short: "Send a test notification now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, rt *runtime) error {
				if err := notify.Test(ctx, rt.reach); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(out(cmd), "test notification sent")
				return nil
			})
		},
	})
	n.AddCommand(&cobra.Command{
		Use:   "vapid-keys",
		Short: "Generate a VAPID key pair for web push",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			priv, pub, err := webpush.GenerateVAPIDKeys()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out(cmd), "GRACED_WEBPUSH_PUBLIC_KEY=%s\nGRACED_WEBPUSH_PRIVATE_KEY=%s\n", pub, priv)
			return nil
		},
	})
	n.AddCommand(&cobra.Command{
		Use:   "subscribe <subscription-json>",
		Short: "Register a browser push subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, rt *runtime) error {
				path := rt.cfg.WebPush.SubscriptionsFile
				if path == "" {
					return errors.New("webpush.subscriptions_file is not configured")
				}
				sub, err := notify.ParseSubscription(args[0])
				if err != nil {
					return err
				}
				count, err := notify.AddSubscription(path, sub)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out(cmd), "%d push subscription(s) registered\n", count)
				return nil
			})
		},
	})
	return n
}

// scheduleRunE runs a schedule mutation, then prints the schedule and the
// reconcile outcome.
func scheduleRunE(opts *rootOptions, fn func(context.Context, *runtime, []string) (settings.State, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, opts, func(ctx context.Context, rt *runtime) error {
			s, err := fn(ctx, rt, args)
			if err != nil {
				return err
			}
			printSchedule(cmd, rt, s)
			return nil
		})
	}
}

func printSchedule(cmd *cobra.Command, rt *runtime, s settings.State) {
	state := "off"
	if s.DailyNotifications {
		state = "on"
	}
	_, _ = fmt.Fprintf(out(cmd), "daily reminders: %s\n", state)
	for _, t := range s.NotificationTimes {
		mark := " "
		if t.Enabled {
			mark = "x"
		}
		_, _ = fmt.Fprintf(out(cmd), "[%s] %s %-22s %s\n", mark, t.Clock(), t.Label, t.ID)
	}
	printOutcome(cmd, rt)
}

type firing struct {
	at   time.Time
	slot model.NotificationTime
}

// upcomingFirings merges the next count firings of every effective time.
func upcomingFirings(rt *runtime, count int) ([]firing, error) {
	if count <= 0 {
		return nil, nil
	}
	loc, err := rt.cfg.Location()
	if err != nil {
		return nil, err
	}
	now := rt.clock.Now()
	var all []firing
	for _, t := range rt.app.Settings().EffectiveSchedule() {
		trigger := model.DailyTrigger{Hour: t.Hour, Minute: t.Minute, Location: loc}
		list, err := trigger.Preview(now, count)
		if err != nil {
			return nil, err
		}
		for _, at := range list {
			all = append(all, firing{at: at, slot: t})
		}
	}
	slices.SortStableFunc(all, func(a, b firing) int { return a.at.Compare(b.at) })
	if len(all) > count {
		all = all[:count]
	}
	return all, nil
}

func printOutcome(cmd *cobra.Command, rt *runtime) {
	o := rt.app.ScheduleStatus()
	if o.Err != nil {
		_, _ = fmt.Fprintf(out(cmd), "scheduled: %d (%v)\n", o.Scheduled, o.Err)
		return
	}
	_, _ = fmt.Fprintf(out(cmd), "scheduled: %d\n", o.Scheduled)
}

func newDaemonCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Deliver scheduled reminders until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, rt *runtime) error {
				ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
				defer stop()
				return rt.daemon().Run(ctx)
			})
		},
	}
}

func (rt *runtime) daemon(extra ...notify.Deliverer) *notify.Daemon {
	return notify.NewDaemon(rt.registry, rt.deliverer(extra...), notify.DaemonOptions{
		Interval: rt.cfg.PollInterval,
		Buffer:   rt.cfg.SchedulerBuffer,
		Clock:    rt.clock,
		Logger:   rt.logger,
	})
}
