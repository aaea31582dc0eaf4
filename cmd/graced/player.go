package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/graced/internal/app"
	"github.com/sandeepkv93/graced/internal/model"
	"github.com/sandeepkv93/graced/internal/views"
)

func newStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show today's progress, streak, reminders and confession summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, rt *runtime) error {
				_, _ = fmt.Fprintln(out(cmd), views.RenderStatus(statusData(rt.app)))
				return nil
			})
		},
	}
}

func statusData(a *app.App) views.StatusData {
	p := a.Player()
	s := a.Settings()
	c := a.Confession()
	due := a.ConfessionDue()
	sched := a.ScheduleStatus()

	data := views.StatusData{
		Name: s.DisplayName(),
		Progress: views.ProgressPanelData{
			Listened:      p.Streak.Today.QuotesListened,
			Goal:          p.DailyGoal,
			CurrentStreak: p.Streak.CurrentStreak,
			LongestStreak: p.Streak.LongestStreak,
			TotalDays:     p.Streak.TotalDaysCompleted,
			TotalListened: p.Streak.TotalQuotesListened,
		},
		Schedule: views.SchedulePanelData{
			Enabled:    s.DailyNotifications,
			Scheduled:  sched.Scheduled,
			Permission: sched.Permission,
		},
		Confession: views.ConfessionPanelData{
			DaysSince:   due.Days,
			Known:       due.Known,
			Remind:      due.Remind,
			ActiveGoals: c.ActiveGoalTexts(),
		},
		Favorites: len(p.Favorites),
		History:   len(p.History),
	}
	if sched.Err != nil {
		data.Schedule.ErrorText = sched.Err.Error()
	}
	for _, t := range s.NotificationTimes {
		data.Schedule.Times = append(data.Schedule.Times, views.ScheduleTimeData{
			ID: t.ID, Clock: t.Clock(), Label: t.Label, Enabled: t.Enabled,
		})
	}
	return data
}

func newPlayCmd(opts *rootOptions) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "play <id>",
		Short: "Show a teaching and its place in the playlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, rt *runtime) error {
				s, err := rt.app.Play(args[0], category)
				if err != nil {
					return err
				}
				q := s.Playback.Current
				_, _ = fmt.Fprintf(out(cmd), "%d/%d %s\n", s.Playback.Index+1, len(s.Playback.Playlist), q.Category)
				_, _ = fmt.Fprintln(out(cmd), views.RenderTeaching(q.Text, q.Attribution, q.Reference, ""))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "limit the playlist to one category")
	return cmd
}

func newListenCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "listen <id>",
		Short: "Record a teaching as listened",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, rt *runtime) error {
				if _, err := rt.app.Catalog().Lookup(args[0]); err != nil {
					return err
				}
				s, completed := rt.app.MarkListened(args[0])
				if completed {
					_, _ = fmt.Fprintf(out(cmd), "🎉 daily goal reached! streak: %d day(s)\n", s.Streak.CurrentStreak)
					rt.app.DismissCelebration()
					return nil
				}
				_, _ = fmt.Fprintf(out(cmd), "listened %d of %d today\n", s.Streak.Today.QuotesListened, s.DailyGoal)
				return nil
			})
		},
	}
}

func newFavoriteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "favorite <id>",
		Short: "Toggle a teaching in favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, rt *runtime) error {
				if _, err := rt.app.Catalog().Lookup(args[0]); err != nil {
					return err
				}
				if rt.app.ToggleFavorite(args[0]) {
					_, _ = fmt.Fprintf(out(cmd), "added %s to favorites\n", args[0])
				} else {
					_, _ = fmt.Fprintf(out(cmd), "removed %s from favorites\n", args[0])
				}
				return nil
			})
		},
	}
}

func newFavoritesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "favorites",
		Short: "List favorite teachings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, rt *runtime) error {
				printQuotes(cmd, rt.app.Favorites(), "no favorites")
				return nil
			})
		},
	}
}

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List recently listened teachings, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, rt *runtime) error {
				printQuotes(cmd, rt.app.History(), "no history")
				return nil
			})
		},
	}
}

func printQuotes(cmd *cobra.Command, quotes []model.Quote, empty string) {
	if len(quotes) == 0 {
		_, _ = fmt.Fprintln(out(cmd), empty)
		return
	}
	for _, q := range quotes {
		_, _ = fmt.Fprintf(out(cmd), "%-10s %-12s %s\n", q.ID, q.Category, q.Attribution)
	}
}

func newGoalCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "goal <n>",
		Short: "Set the daily listening goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("goal must be a number: %q", args[0])
			}
			return withApp(cmd, opts, func(ctx context.Context, rt *runtime) error {
				s, err := rt.app.SetDailyGoal(n)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out(cmd), "daily goal: %d\n", s.DailyGoal)
				return nil
			})
		},
	}
}

func newResetDayCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-day",
		Short: "Apply the daily rollover for today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, rt *runtime) error {
				s := rt.app.RolloverDay()
				_, _ = fmt.Fprintf(out(cmd), "%s: listened %d of %d\n", s.Streak.Today.Date, s.Streak.Today.QuotesListened, s.DailyGoal)
				return nil
			})
		},
	}
}

func newShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Render a teaching with its explanation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, rt *runtime) error {
				q, err := rt.app.Catalog().Lookup(args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(out(cmd), views.RenderTeaching(q.Text, q.Attribution, q.Reference, q.Explanation))
				return nil
			})
		},
	}
}

func newCategoriesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List teaching categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, rt *runtime) error {
				for _, c := range rt.app.Catalog().Categories {
					_, _ = fmt.Fprintf(out(cmd), "%s %-14s %s\n", c.Icon, c.Name, c.Description)
				}
				return nil
			})
		},
	}
}

func newRescueCmd(opts *rootOptions) *cobra.Command {
	rescue := &cobra.Command{
		Use:   "rescue",
		Short: "Draw a teaching for a moment of temptation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, rt *runtime) error {
				q, err := rt.app.Rescue()
				if errors.Is(err, app.ErrRescueDisabled) {
					return fmt.Errorf("%w (enable it with `graced rescue set --enabled`)", err)
				}
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(out(cmd), views.RenderTeaching(q.Text, q.Attribution, q.Reference, q.Explanation))
				for _, p := range rt.app.Settings().Rescue.CustomPrayers {
					_, _ = fmt.Fprintf(out(cmd), "prayer: %s\n", p)
				}
				return nil
			})
		},
	}

	rescue.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show rescue mode settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, rt *runtime) error {
				r := rt.app.Settings().Rescue
				_, _ = fmt.Fprintf(out(cmd), "enabled: %t\ncategories: %v\nautoplay: %t\nbreathing: %t\n",
					r.Enabled, r.QuoteCategories, r.AutoPlayAudio, r.ShowBreathingExercise)
				for _, c := range r.EmergencyContacts {
					_, _ = fmt.Fprintf(out(cmd), "contact: %s %s\n", c.Name, c.Phone)
				}
				return nil
			})
		},
	})

	var (
		enabled, autoplay, breathing bool
		categories, prayers          []string
		contacts                     []string
	)
	set := &cobra.Command{
		Use:   "set",
		Short: "Update rescue mode settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, rt *runtime) error {
				r := rt.app.Settings().Rescue
				flags := cmd.Flags()
				if flags.Changed("enabled") {
					r.Enabled = enabled
				}
				if flags.Changed("autoplay") {
					r.AutoPlayAudio = autoplay
				}
				if flags.Changed("breathing") {
					r.ShowBreathingExercise = breathing
				}
				if flags.Changed("category") {
					r.QuoteCategories = categories
				}
				if flags.Changed("prayer") {
					r.CustomPrayers = prayers
				}
				if flags.Changed("contact") {
					parsed, err := parseContacts(contacts)
					if err != nil {
						return err
					}
					r.EmergencyContacts = parsed
				}
				if _, err := rt.app.UpdateRescueSettings(r); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(out(cmd), "rescue settings updated")
				return nil
			})
		},
	}
	set.Flags().BoolVar(&enabled, "enabled", true, "enable rescue mode")
	set.Flags().BoolVar(&autoplay, "autoplay", true, "start playback immediately")
	set.Flags().BoolVar(&breathing, "breathing", true, "show the breathing exercise")
	set.Flags().StringSliceVar(&categories, "category", nil, "rescue quote categories")
	set.Flags().StringSliceVar(&prayers, "prayer", nil, "custom prayers")
	set.Flags().StringSliceVar(&contacts, "contact", nil, "emergency contacts as name=phone")
	rescue.AddCommand(set)
	return rescue
}

func parseContacts(raw []string) ([]model.Contact, error) {
	parsed := make([]model.Contact, 0, len(raw))
	for _, r := range raw {
		name, phone, ok := strings.Cut(r, "=")
		if !ok {
			return nil, fmt.Errorf("contact must be name=phone: %q", r)
		}
		parsed = append(parsed, model.Contact{Name: strings.TrimSpace(name), Phone: strings.TrimSpace(phone)})
	}
	return parsed, nil
}
