package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/graced/internal/model"
	"github.com/sandeepkv93/graced/internal/views"
)

func (m Model) handleScheduleKey(msg tea.KeyMsg) Model {
	times := m.app.Settings().NotificationTimes
	switch msg.String() {
	case "j", "down":
		m.Cursor = clampCursor(m.Cursor+1, len(times))
	case "k", "up":
		m.Cursor = clampCursor(m.Cursor-1, len(times))
	case " ", "enter":
		if len(times) == 0 {
			break
		}
		t := times[clampCursor(m.Cursor, len(times))]
		if _, err := m.app.ToggleNotificationTime(m.ctx, t.ID); err != nil {
			m.fail(err)
			break
		}
		m = m.reportSchedule("toggled " + t.Label)
	case "t":
		s, err := m.app.ToggleDailyNotifications(m.ctx)
		if err != nil {
			m.fail(err)
			break
		}
		m = m.reportSchedule(fmt.Sprintf("daily reminders: %t", s.DailyNotifications))
	case "d", "x":
		if len(times) == 0 {
			break
		}
		t := times[clampCursor(m.Cursor, len(times))]
		if _, err := m.app.RemoveNotificationTime(m.ctx, t.ID); err != nil {
			m.fail(err)
			break
		}
		m.Cursor = clampCursor(m.Cursor, len(times)-1)
		m = m.reportSchedule("removed " + t.Label)
	case "R":
		if _, err := m.app.ResetNotificationTimes(m.ctx); err != nil {
			m.fail(err)
			break
		}
		m.Cursor = 0
		m = m.reportSchedule("reminder times reset")
	}
	return m
}

// reportSchedule surfaces the last reconcile outcome next to text.
func (m Model) reportSchedule(text string) Model {
	out := m.app.ScheduleStatus()
	if out.Err != nil {
		m.Status = StatusBar{Text: text + " (" + out.Err.Error() + ")", IsError: true}
		return m
	}
	m.Status = StatusBar{Text: fmt.Sprintf("%s, %d scheduled", text, out.Scheduled)}
	return m
}

func (m Model) renderScheduleView() string {
	s := m.app.Settings()
	out := m.app.ScheduleStatus()
	data := views.SchedulePanelData{
		Enabled:    s.DailyNotifications,
		Scheduled:  out.Scheduled,
		Permission: out.Permission,
	}
	if out.Err != nil {
		data.ErrorText = out.Err.Error()
	}
	for _, t := range s.NotificationTimes {
		data.Times = append(data.Times, views.ScheduleTimeData{
			ID:      t.ID,
			Clock:   t.Clock(),
			Label:   t.Label,
			Enabled: t.Enabled,
		})
	}
	panel := views.RenderSchedulePanel(data)
	if len(data.Times) == 0 {
		return panel
	}
	lines := strings.Split(panel, "\n")
	row := clampCursor(m.Cursor, len(data.Times)) + 1
	lines[row] = ">" + lines[row]
	return strings.Join(lines, "\n")
}

func (m Model) handleJournalKey(msg tea.KeyMsg) Model {
	goals := m.app.Confession().Goals
	switch msg.String() {
	case "j", "down":
		m.Cursor = clampCursor(m.Cursor+1, len(goals))
	case "k", "up":
		m.Cursor = clampCursor(m.Cursor-1, len(goals))
	case "c":
		entry, err := m.app.RecordConfession("", "")
		if err != nil {
			m.fail(err)
			break
		}
		m.Status = StatusBar{Text: "confession recorded for " + entry.Date}
	case " ", "a":
		if len(goals) == 0 {
			break
		}
		g := goals[clampCursor(m.Cursor, len(goals))]
		m.app.ToggleGoalActive(g.ID)
		m.Status = StatusBar{Text: "toggled focus: " + g.Virtue}
	case "+", "=":
		m = m.stepGoal(goals, 10)
	case "-":
		m = m.stepGoal(goals, -10)
	case "enter":
		if len(goals) == 0 {
			break
		}
		g := goals[clampCursor(m.Cursor, len(goals))]
		m.app.ToggleGoalCompleted(g.ID)
		m.Status = StatusBar{Text: "toggled completed: " + g.Text}
	}
	return m
}

func (m Model) stepGoal(goals []model.SpiritualGoal, delta int) Model {
	if len(goals) == 0 {
		return m
	}
	g := goals[clampCursor(m.Cursor, len(goals))]
	c := m.app.UpdateGoalProgress(g.ID, g.Progress+delta)
	for _, updated := range c.Goals {
		if updated.ID == g.ID {
			m.Status = StatusBar{Text: fmt.Sprintf("%s: %d%%", updated.Virtue, updated.Progress)}
		}
	}
	return m
}

func (m Model) renderJournalView() string {
	due := m.app.ConfessionDue()
	c := m.app.Confession()
	var b strings.Builder
	b.WriteString(views.RenderConfessionPanel(views.ConfessionPanelData{
		DaysSince:   due.Days,
		Known:       due.Known,
		Remind:      due.Remind,
		ActiveGoals: c.ActiveGoalTexts(),
	}))
	b.WriteString("\n\ngoals:\n")
	if len(c.Goals) == 0 {
		b.WriteString("(none, use `graced goals add`)")
		return b.String()
	}
	for i, g := range c.Goals {
		cursor := " "
		if i == m.Cursor {
			cursor = ">"
		}
		flags := ""
		if g.IsActive {
			flags += "*"
		}
		if g.Completed {
			flags += "✓"
		}
		fmt.Fprintf(&b, "%s %-2s %3d%% %s\n", cursor, flags, g.Progress, truncate(g.Text, 34))
	}
	return strings.TrimSuffix(b.String(), "\n")
}
