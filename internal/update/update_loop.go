package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/graced/internal/notify"
	"github.com/sandeepkv93/graced/internal/views"
)

func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForAlertCmd(m.alerts), dayTickCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed), nil
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active"}
			return m, nil
		case m.Keys.Player:
			return m.switchView(ViewPlayer), nil
		case m.Keys.Favorites:
			return m.switchView(ViewFavorites), nil
		case m.Keys.Schedule:
			return m.switchView(ViewSchedule), nil
		case m.Keys.Journal:
			return m.switchView(ViewJournal), nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown"}
			} else {
				m.Status = StatusBar{Text: "help hidden"}
			}
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}

		switch m.CurrentView {
		case ViewPlayer:
			return m.handlePlayerKey(typed), nil
		case ViewFavorites:
			return m.handleFavoritesKey(typed), nil
		case ViewSchedule:
			return m.handleScheduleKey(typed), nil
		case ViewJournal:
			return m.handleJournalKey(typed), nil
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m = m.switchView(typed.View)
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	case AlertMsg:
		m.notify(typed.Notification.Title, typed.Notification.Body, "reminder")
		m.Status = StatusBar{Text: typed.Notification.Title}
		return m, waitForAlertCmd(m.alerts)
	case DayTickMsg:
		before := m.app.Player().Streak.Today.Date
		after := m.app.RolloverDay().Streak.Today.Date
		if before != after {
			m.Status = StatusBar{Text: "a new day: progress reset for " + after}
		}
		return m, dayTickCmd()
	}

	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	status := ""
	if m.Status.Text != "" {
		status = "status: " + m.Status.Text
		if m.Status.IsError {
			status = "status: error: " + m.Status.Text
		}
	}

	leftPane := ""
	switch m.CurrentView {
	case ViewPlayer:
		leftPane = m.renderPlayerView()
	case ViewFavorites:
		leftPane = m.renderFavoritesView()
	case ViewSchedule:
		leftPane = m.renderScheduleView()
	case ViewJournal:
		leftPane = m.renderJournalView()
	}
	rightPane := joinNonEmpty(m.renderProgressView(), m.renderCommandPalette(), m.renderHelpIfVisible())

	notification := ""
	if n := len(m.Notifications); n > 0 {
		last := m.Notifications[n-1]
		notification = fmt.Sprintf("%s %s\n%s", last.At.Format("15:04"), last.Title, last.Body)
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("graced | %s | %s", m.CurrentView, m.app.Today().Today),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		IsError:      m.Status.IsError,
		Notification: notification,
		Footer: fmt.Sprintf("keys: %s player | %s favorites | %s schedule | %s journal | / cmd | %s help | %s quit",
			m.Keys.Player, m.Keys.Favorites, m.Keys.Schedule, m.Keys.Journal, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) switchView(v View) Model {
	if m.CurrentView != v {
		m.Cursor = 0
	}
	m.CurrentView = v
	return m
}

func isKnownView(v View) bool {
	switch v {
	case ViewPlayer, ViewFavorites, ViewSchedule, ViewJournal:
		return true
	default:
		return false
	}
}

func waitForAlertCmd(ch <-chan notify.Notification) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return AlertMsg{Notification: n}
	}
}

func dayTickCmd() tea.Cmd {
	return tea.Tick(dayTickInterval, func(t time.Time) tea.Msg { return DayTickMsg{At: t} })
}

func (m *Model) notify(title, body, level string) {
	m.Notifications = append(m.Notifications, Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    time.Now(),
	})
	if len(m.Notifications) > notificationLogLimit {
		m.Notifications = m.Notifications[len(m.Notifications)-notificationLogLimit:]
	}
}

func (m *Model) fail(err error) {
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
}
