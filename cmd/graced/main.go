package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/graced/internal/app"
	"github.com/sandeepkv93/graced/internal/catalog"
	"github.com/sandeepkv93/graced/internal/clock"
	"github.com/sandeepkv93/graced/internal/config"
	"github.com/sandeepkv93/graced/internal/logging"
	"github.com/sandeepkv93/graced/internal/notify"
	"github.com/sandeepkv93/graced/internal/storage"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
	logFile    string
	logOut     io.Writer
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{logOut: os.Stderr}

	root := &cobra.Command{
		Use:           "graced",
		Short:         "Daily teachings, streaks and prayer reminders",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: <user config dir>/graced/config.yaml)")
	root.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "append logs to this file instead of stderr")

	var logFile *os.File
	root.PersistentPreRunE = func(*cobra.Command, []string) error {
		if opts.logFile == "" {
			return nil
		}
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		logFile = f
		opts.logOut = f
		return nil
	}
	root.PersistentPostRunE = func(*cobra.Command, []string) error {
		if logFile == nil {
			return nil
		}
		return logFile.Close()
	}

	root.AddCommand(newStatusCmd(opts))
	root.AddCommand(newPlayCmd(opts))
	root.AddCommand(newListenCmd(opts))
	root.AddCommand(newFavoriteCmd(opts))
	root.AddCommand(newFavoritesCmd(opts))
	root.AddCommand(newHistoryCmd(opts))
	root.AddCommand(newGoalCmd(opts))
	root.AddCommand(newResetDayCmd(opts))
	root.AddCommand(newShowCmd(opts))
	root.AddCommand(newCategoriesCmd(opts))
	root.AddCommand(newRescueCmd(opts))
	root.AddCommand(newNotifyCmd(opts))
	root.AddCommand(newConfessCmd(opts))
	root.AddCommand(newGoalsCmd(opts))
	root.AddCommand(newConfessionReminderCmd(opts))
	root.AddCommand(newProfileCmd(opts))
	root.AddCommand(newOnboardingCmd(opts))
	root.AddCommand(newThemeCmd(opts))
	root.AddCommand(newMusicCmd(opts))
	root.AddCommand(newSessionCmd(opts))
	root.AddCommand(newDaemonCmd(opts))
	return root
}

// runtime is everything one invocation needs, built from config.
type runtime struct {
	cfg      config.Config
	logger   hclog.Logger
	clock    clock.Clock
	store    storage.Store
	registry *notify.Registry
	// reach holds the deliverers that decide notification permission.
	reach notify.Multi
	push  *notify.WebPushDeliverer
	app   *app.App

	closeStore func() error
}

func loadRuntime(ctx context.Context, opts *rootOptions) (*runtime, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	logger := logging.New(cfg.LogLevel, opts.logOut)
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	rt := &runtime{cfg: cfg, logger: logger, clock: clock.System{Location: loc}}
	if err := rt.openStore(); err != nil {
		return nil, err
	}

	if cfg.DesktopNotifications {
		rt.reach = append(rt.reach, notify.NewDesktopDeliverer())
	}
	vapid := notify.VAPID{
		Subject:    cfg.WebPush.Subject,
		PublicKey:  cfg.WebPush.PublicKey,
		PrivateKey: cfg.WebPush.PrivateKey,
	}
	if vapid.Configured() && cfg.WebPush.SubscriptionsFile != "" {
		subs, err := notify.LoadSubscriptions(cfg.WebPush.SubscriptionsFile)
		if err != nil {
			logger.Warn("web push disabled", "error", err)
		} else {
			rt.push = notify.NewWebPushDeliverer(vapid, subs, nil, logger)
			rt.reach = append(rt.reach, rt.push)
		}
	}

	rt.registry = notify.NewRegistry(rt.store, rt.reach)
	rt.app = app.New(app.Options{
		Store:     rt.store,
		Scheduler: rt.registry,
		Catalog:   cat,
		Clock:     rt.clock,
		Logger:    logger,
	})
	if err := rt.app.Load(ctx); err != nil {
		_ = rt.closeStore()
		return nil, err
	}
	return rt, nil
}

func (rt *runtime) openStore() error {
	switch rt.cfg.Store {
	case config.StoreFile:
		fs, err := storage.NewFileStore(rt.cfg.StateDir())
		if err != nil {
			return err
		}
		rt.store = fs
		rt.closeStore = func() error { return nil }
	default:
		if err := os.MkdirAll(rt.cfg.DataDir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
		db, err := storage.OpenSQLite(rt.cfg.SQLitePath())
		if err != nil {
			return err
		}
		rt.store = db
		rt.closeStore = db.Close
	}
	return nil
}

// deliverer is what fired alerts go through: every reachable channel plus
// the log.
func (rt *runtime) deliverer(extra ...notify.Deliverer) notify.Deliverer {
	out := append(notify.Multi{}, rt.reach...)
	out = append(out, extra...)
	return append(out, notify.LogDeliverer{Logger: rt.logger.Named("delivered")})
}

func (rt *runtime) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return errors.Join(rt.app.Close(ctx), rt.closeStore())
}

// withApp loads the runtime, runs fn and flushes state before returning.
func withApp(cmd *cobra.Command, opts *rootOptions, fn func(ctx context.Context, rt *runtime) error) (err error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	rt, err := loadRuntime(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, rt.Close())
	}()
	return fn(ctx, rt)
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
