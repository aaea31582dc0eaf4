package main

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/graced/internal/update"
)

func newSessionCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Open the interactive listening session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.logFile == "" {
				opts.logOut = io.Discard
			}
			return withApp(cmd, opts, func(ctx context.Context, rt *runtime) error {
				ctx, cancel := context.WithCancel(ctx)
				defer cancel()

				alerts := update.NewChannelDeliverer(rt.cfg.SchedulerBuffer)
				daemonDone := make(chan error, 1)
				go func() { daemonDone <- rt.daemon(alerts).Run(ctx) }()

				program := tea.NewProgram(update.NewModel(ctx, rt.app, update.Options{Alerts: alerts.C}), tea.WithContext(ctx))
				_, err := program.Run()
				cancel()
				if errors.Is(err, tea.ErrProgramKilled) {
					err = nil
				}
				return errors.Join(err, <-daemonDone)
			})
		},
	}
}
