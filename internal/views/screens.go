package views

import (
	"fmt"
	"strings"
)

type PlayerPanelData struct {
	Title       string
	Attribution string
	Reference   string
	Category    string
	Playing     bool
	Position    int
	Total       int
	Favorite    bool
}

type ProgressPanelData struct {
	Listened      int
	Goal          int
	ProgressView  string
	CurrentStreak int
	LongestStreak int
	TotalDays     int
	TotalListened int
	Celebrate     bool
}

type ScheduleTimeData struct {
	ID      string
	Clock   string
	Label   string
	Enabled bool
}

type SchedulePanelData struct {
	Enabled    bool
	Times      []ScheduleTimeData
	Scheduled  int
	Permission bool
	ErrorText  string
}

type ConfessionPanelData struct {
	DaysSince   int
	Known       bool
	Remind      bool
	ActiveGoals []string
}

type HelpPanelData struct {
	Bindings []string
	HelpView string
}

// StatusData feeds the non-interactive status report.
type StatusData struct {
	Name       string
	Progress   ProgressPanelData
	Schedule   SchedulePanelData
	Confession ConfessionPanelData
	Favorites  int
	History    int
}

func RenderPlayerPanel(data PlayerPanelData) string {
	var b strings.Builder
	b.WriteString("now playing:\n")
	if data.Title == "" {
		b.WriteString("(nothing playing, use /play <id>)")
		return b.String()
	}
	state := "paused"
	if data.Playing {
		state = "playing"
	}
	fav := ""
	if data.Favorite {
		fav = " ♥"
	}
	fmt.Fprintf(&b, "%q%s\n", data.Title, fav)
	if data.Attribution != "" {
		fmt.Fprintf(&b, "  %s", data.Attribution)
		if data.Reference != "" {
			fmt.Fprintf(&b, " (%s)", data.Reference)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "category: %s\n", data.Category)
	fmt.Fprintf(&b, "%s | %d/%d", state, data.Position, data.Total)
	return b.String()
}

func RenderProgressPanel(data ProgressPanelData) string {
	var b strings.Builder
	b.WriteString("today:\n")
	fmt.Fprintf(&b, "listened %d of %d\n", data.Listened, data.Goal)
	if data.ProgressView != "" {
		b.WriteString(data.ProgressView + "\n")
	}
	fmt.Fprintf(&b, "streak: %d day(s) | longest: %d\n", data.CurrentStreak, data.LongestStreak)
	fmt.Fprintf(&b, "completed days: %d | teachings: %d", data.TotalDays, data.TotalListened)
	if data.Celebrate {
		b.WriteString("\n\n" + celebrateStyle.Render("🎉 daily goal reached! press enter"))
	}
	return b.String()
}

func RenderSchedulePanel(data SchedulePanelData) string {
	var b strings.Builder
	state := "off"
	if data.Enabled {
		state = "on"
	}
	fmt.Fprintf(&b, "reminders: %s\n", state)
	if len(data.Times) == 0 {
		b.WriteString("  (no times)\n")
	}
	for _, t := range data.Times {
		mark := " "
		if t.Enabled {
			mark = "x"
		}
		fmt.Fprintf(&b, "[%s] %s %s (%s)\n", mark, t.Clock, t.Label, t.ID)
	}
	fmt.Fprintf(&b, "scheduled: %d", data.Scheduled)
	if data.Enabled && !data.Permission {
		b.WriteString(" | permission not granted")
	}
	if data.ErrorText != "" {
		b.WriteString("\nerror: " + data.ErrorText)
	}
	return b.String()
}

func RenderConfessionPanel(data ConfessionPanelData) string {
	var b strings.Builder
	b.WriteString("confession:\n")
	if data.Known {
		fmt.Fprintf(&b, "last: %d day(s) ago", data.DaysSince)
	} else {
		b.WriteString("last: never recorded")
	}
	if data.Remind {
		b.WriteString(" | reminder due")
	}
	if len(data.ActiveGoals) > 0 {
		b.WriteString("\nfocus:")
		for _, g := range data.ActiveGoals {
			b.WriteString("\n- " + g)
		}
	}
	return b.String()
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s\n%s", strings.Join(data.Bindings, "\n"), data.HelpView)
}

// RenderStatus is the plain multi-section report printed by the status command.
func RenderStatus(data StatusData) string {
	sections := []string{}
	if data.Name != "" {
		sections = append(sections, headerStyle.Render("Peace be with you, "+data.Name))
	}
	sections = append(sections,
		RenderProgressPanel(data.Progress),
		fmt.Sprintf("favorites: %d | history: %d", data.Favorites, data.History),
		RenderSchedulePanel(data.Schedule),
		RenderConfessionPanel(data.Confession),
	)
	return strings.Join(sections, "\n\n")
}
