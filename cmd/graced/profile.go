package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/graced/internal/model"
	"github.com/sandeepkv93/graced/internal/settings"
)

func newProfileCmd(opts *rootOptions) *cobra.Command {
	profile := &cobra.Command{
		Use:   "profile",
		Short: "Personal information and sign-in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, rt *runtime) error {
				printProfile(cmd, rt.app.Settings())
				return nil
			})
		},
	}

	var (
		name  string
		age   int
		goals []string
	)
	set := &cobra.Command{
		Use:   "set",
		Short: "Update name, age and personal goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, rt *runtime) error {
				info := rt.app.Settings().Personal
				flags := cmd.Flags()
				if flags.Changed("name") {
					info.Name = name
				}
				if flags.Changed("age") {
					info.Age = &age
				}
				if flags.Changed("goal") {
					info.SpiritualGoals = goals
				}
				s, err := rt.app.UpdatePersonalInfo(info)
				if err != nil {
					return err
				}
				printProfile(cmd, s)
				return nil
			})
		},
	}
	set.Flags().StringVar(&name, "name", "", "display name")
	set.Flags().IntVar(&age, "age", 0, "age")
	set.Flags().StringSliceVar(&goals, "goal", nil, "personal spiritual goals")
	profile.AddCommand(set)

	profile.AddCommand(&cobra.Command{
		Use:   "sign",
		Short: "Sign the commitment contract",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, rt *runtime) error {
				printProfile(cmd, rt.app.SignContract())
				return nil
			})
		},
	})

	var provider, email, display, picture string
	signin := &cobra.Command{
		Use:   "signin",
		Short: "Record a sign-in identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, rt *runtime) error {
				s, err := rt.app.SignIn(model.UserProfile{Provider: provider, Email: email, Name: display, Picture: picture})
				if err != nil {
					return err
				}
				printProfile(cmd, s)
				return nil
			})
		},
	}
	signin.Flags().StringVar(&provider, "provider", "google", "identity provider")
	signin.Flags().StringVar(&email, "email", "", "account e-mail")
	signin.Flags().StringVar(&display, "name", "", "account display name")
	signin.Flags().StringVar(&picture, "picture", "", "avatar URL")
	profile.AddCommand(signin)

	profile.AddCommand(&cobra.Command{
		Use:   "signout",
		Short: "Forget the sign-in identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, rt *runtime) error {
				printProfile(cmd, rt.app.SignOut())
				return nil
			})
		},
	})
	return profile
}

func printProfile(cmd *cobra.Command, s settings.State) {
	p := s.Personal
	_, _ = fmt.Fprintf(out(cmd), "name: %s\n", s.DisplayName())
	if p.Age != nil {
		_, _ = fmt.Fprintf(out(cmd), "age: %d\n", *p.Age)
	}
	for _, g := range p.SpiritualGoals {
		_, _ = fmt.Fprintf(out(cmd), "goal: %s\n", g)
	}
	if p.ContractSigned && p.SignatureDate != nil {
		_, _ = fmt.Fprintf(out(cmd), "contract signed: %s\n", p.SignatureDate.Format(time.DateOnly))
	}
	if s.Profile.SignedIn() {
		_, _ = fmt.Fprintf(out(cmd), "signed in: %s (%s)\n", s.Profile.Email, s.Profile.Provider)
	}
}

func newOnboardingCmd(opts *rootOptions) *cobra.Command {
	o := &cobra.Command{Use: "onboarding", Short: "Onboarding and tutorial flags"}
	for _, sub := range []struct {
		use, short string
		apply      func(rt *runtime) settings.State
	}{
		{"complete", "Mark onboarding complete", func(rt *runtime) settings.State { return rt.app.CompleteOnboarding() }},
		{"reset", "Restart onboarding and tutorials", func(rt *runtime) settings.State { return rt.app.ResetOnboarding() }},
		{"dismiss-tutorial", "Hide tutorial overlays", func(rt *runtime) settings.State { return rt.app.DismissTutorialOverlays() }},
	} {
		o.AddCommand(&cobra.Command{
			Use:   sub.use,
			Short: sub.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withApp(cmd, opts, func(ctx context.Context, rt *runtime) error {
					s := sub.apply(rt)
					_, _ = fmt.Fprintf(out(cmd), "onboarding complete: %t | tutorials: %t\n", s.HasCompletedOnboarding, s.ShowTutorialOverlays)
					return nil
				})
			},
		})
	}
	return o
}

func newThemeCmd(opts *rootOptions) *cobra.Command {
	theme := &cobra.Command{Use: "theme", Short: "Appearance"}
	theme.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Toggle dark mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, rt *runtime) error {
				_, _ = fmt.Fprintf(out(cmd), "dark mode: %t\n", rt.app.ToggleDarkMode().DarkMode)
				return nil
			})
		},
	})
	return theme
}

func newMusicCmd(opts *rootOptions) *cobra.Command {
	music := &cobra.Command{Use: "music", Short: "Background music"}
	music.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Toggle background music",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, rt *runtime) error {
				_, _ = fmt.Fprintf(out(cmd), "background music: %t\n", rt.app.ToggleBackgroundMusic().BackgroundMusic)
				return nil
			})
		},
	})
	return music
}
