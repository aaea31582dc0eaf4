package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/graced/internal/confession"
)

func newConfessCmd(opts *rootOptions) *cobra.Command {
	var date, notes string
	cmd := &cobra.Command{
		Use:   "confess",
		Short: "Record a confession against the active goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, rt *runtime) error {
				entry, err := rt.app.RecordConfession(date, notes)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out(cmd), "recorded confession on %s (%d active goal(s))\n", entry.Date, len(entry.SpiritualGoals))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "confession date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&notes, "notes", "", "private notes")

	cmd.AddCommand(&cobra.Command{
		Use:   "log",
		Short: "List recorded confessions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, rt *runtime) error {
				c := rt.app.Confession()
				if len(c.Entries) == 0 {
					_, _ = fmt.Fprintln(out(cmd), "no confessions recorded")
					return nil
				}
				for _, e := range c.Entries {
					_, _ = fmt.Fprintf(out(cmd), "%s  %s\n", e.Date, strings.Join(e.SpiritualGoals, "; "))
				}
				return nil
			})
		},
	})
	return cmd
}

func newGoalsCmd(opts *rootOptions) *cobra.Command {
	goals := &cobra.Command{Use: "goals", Short: "Spiritual goals"}

	goals.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List spiritual goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, rt *runtime) error {
				printGoals(cmd, rt.app.Confession())
				return nil
			})
		},
	})

	var description string
	add := &cobra.Command{
		Use:   "add <sin> <virtue>",
		Short: "Add a goal to overcome a sin through a virtue",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, rt *runtime) error {
				g, err := rt.app.AddGoal(args[0], args[1], description)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out(cmd), "added %s: %s\n", g.ID, g.Text)
				return nil
			})
		},
	}
	add.Flags().StringVar(&description, "description", "", "optional description")
	goals.AddCommand(add)

	goals.AddCommand(&cobra.Command{
		Use:   "from <sin-id-or-name>",
		Short: "Add a goal from the common sins list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, rt *runtime) error {
				g, err := rt.app.AddGoalFromCatalog(args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out(cmd), "added %s: %s\n", g.ID, g.Text)
				return nil
			})
		},
	})
	goals.AddCommand(&cobra.Command{
		Use:   "custom <text...>",
		Short: "Add a free-text goal",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, rt *runtime) error {
				g, err := rt.app.AddCustomGoal(strings.Join(args, " "))
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out(cmd), "added %s: %s\n", g.ID, g.Text)
				return nil
			})
		},
	})
	goals.AddCommand(&cobra.Command{
		Use:   "progress <id> <percent>",
		Short: "Set a goal's progress (0-100)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pct, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("progress must be a number: %q", args[1])
			}
			return withApp(cmd, opts, func(ctx context.Context, rt *runtime) error {
				printGoals(cmd, rt.app.UpdateGoalProgress(args[0], pct))
				return nil
			})
		},
	})
	goals.AddCommand(&cobra.Command{
		Use:   "toggle <id>",
		Short: "Toggle whether a goal is an active focus",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, rt *runtime) error {
				printGoals(cmd, rt.app.ToggleGoalActive(args[0]))
				return nil
			})
		},
	})
	goals.AddCommand(&cobra.Command{
		Use:   "complete <id>",
		Short: "Toggle a goal's completed flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, rt *runtime) error {
				printGoals(cmd, rt.app.ToggleGoalCompleted(args[0]))
				return nil
			})
		},
	})
	goals.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, rt *runtime) error {
				printGoals(cmd, rt.app.RemoveGoal(args[0]))
				return nil
			})
		},
	})
	goals.AddCommand(&cobra.Command{
		Use:   "catalog",
		Short: "List common sins and their virtues",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, s := range confession.CommonSins {
				_, _ = fmt.Fprintf(out(cmd), "%-3s %-14s -> %-14s %s\n", s.ID, s.Sin, s.Virtue, s.Description)
			}
			return nil
		},
	})
	return goals
}

func printGoals(cmd *cobra.Command, c confession.State) {
	if len(c.Goals) == 0 {
		_, _ = fmt.Fprintln(out(cmd), "no goals")
		return
	}
	for _, g := range c.Goals {
		flags := ""
		if g.IsActive {
			flags += " active"
		}
		if g.Completed {
			flags += " completed"
		}
		_, _ = fmt.Fprintf(out(cmd), "%s %3d%% %s%s\n", g.ID, g.Progress, g.Text, flags)
	}
}

func newConfessionReminderCmd(opts *rootOptions) *cobra.Command {
	r := &cobra.Command{
		Use:   "confession-reminder",
		Short: "Show or change the confession reminder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, rt *runtime) error {
				printReminder(cmd, rt.app.Confession())
				due := rt.app.ConfessionDue()
				switch {
				case !due.Known:
					_, _ = fmt.Fprintln(out(cmd), "no confession recorded yet")
				default:
					_, _ = fmt.Fprintf(out(cmd), "last confession: %d day(s) ago\n", due.Days)
				}
				if due.Remind {
					_, _ = fmt.Fprintln(out(cmd), "a confession is due")
				}
				return nil
			})
		},
	}
	for _, enabled := range []bool{true, false} {
		use := "off"
		if enabled {
			use = "on"
		}
		r.AddCommand(&cobra.Command{
			Use:   use,
			Short: "Turn the confession reminder " + use,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withApp(cmd, opts, func(ctx context.Context, rt *runtime) error {
					printReminder(cmd, rt.app.SetConfessionReminder(enabled))
					return nil
				})
			},
		})
	}
	r.AddCommand(&cobra.Command{
		Use:   "days <n>",
		Short: "Remind after n days without confession",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			days, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("days must be a number: %q", args[0])
			}
			return withApp(cmd, opts, func(ctx context.Context, rt *runtime) error {
				c, err := rt.app.SetConfessionReminderDays(days)
				if err != nil {
					return err
				}
				printReminder(cmd, c)
				return nil
			})
		},
	})
	return r
}

func printReminder(cmd *cobra.Command, c confession.State) {
	_, _ = fmt.Fprintf(out(cmd), "confession reminder: %t every %d day(s)\n", c.ReminderEnabled, c.ReminderDays)
}
