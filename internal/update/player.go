package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/graced/internal/views"
)

func (m Model) handlePlayerKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case " ":
		s := m.app.TogglePlayback()
		if s.Playback.Current == nil {
			m.Status = StatusBar{Text: "nothing to play"}
		} else if s.Playback.IsPlaying {
			m.Status = StatusBar{Text: "playing"}
		} else {
			m.Status = StatusBar{Text: "paused"}
		}
	case "n":
		m = m.reportCurrent(m.app.Next().Playback.Current != nil)
	case "p":
		m = m.reportCurrent(m.app.Previous().Playback.Current != nil)
	case "f":
		cur := m.app.Player().Playback.Current
		if cur == nil {
			m.Status = StatusBar{Text: "nothing playing to favorite"}
			break
		}
		if m.app.ToggleFavorite(cur.ID) {
			m.Status = StatusBar{Text: "added to favorites"}
		} else {
			m.Status = StatusBar{Text: "removed from favorites"}
		}
	case "l":
		m = m.listenCurrent()
	case "enter":
		if m.app.Player().Celebrate {
			m.app.DismissCelebration()
			m.Status = StatusBar{Text: "celebration dismissed"}
		}
	case "r":
		q, err := m.app.Rescue()
		if err != nil {
			m.fail(err)
			break
		}
		m.Status = StatusBar{Text: "rescue: " + q.Attribution}
	}
	return m
}

func (m Model) reportCurrent(ok bool) Model {
	cur := m.app.Player().Playback.Current
	if !ok || cur == nil {
		m.Status = StatusBar{Text: "nothing to play"}
		return m
	}
	m.Status = StatusBar{Text: "now playing " + cur.ID}
	return m
}

func (m Model) listenCurrent() Model {
	s, completed, err := m.app.ListenCurrent()
	if err != nil {
		m.fail(err)
		return m
	}
	if completed {
		m.Status = StatusBar{Text: fmt.Sprintf("daily goal reached! streak: %d", s.Streak.CurrentStreak)}
		m.notify("Daily goal reached", fmt.Sprintf("%d day streak", s.Streak.CurrentStreak), "info")
		return m
	}
	m.Status = StatusBar{Text: fmt.Sprintf("listened %d of %d", s.Streak.Today.QuotesListened, s.DailyGoal)}
	return m
}

func (m Model) handleFavoritesKey(msg tea.KeyMsg) Model {
	favs := m.app.Favorites()
	switch msg.String() {
	case "j", "down":
		m.Cursor = clampCursor(m.Cursor+1, len(favs))
	case "k", "up":
		m.Cursor = clampCursor(m.Cursor-1, len(favs))
	case "enter":
		if len(favs) == 0 {
			m.Status = StatusBar{Text: "no favorites yet"}
			break
		}
		q := favs[clampCursor(m.Cursor, len(favs))]
		m.app.PlayQuote(q, favs)
		m.Status = StatusBar{Text: "now playing " + q.ID}
		m.CurrentView = ViewPlayer
	case "p":
		s, err := m.app.PlayFavorites()
		if err != nil {
			m.fail(err)
			break
		}
		m.Status = StatusBar{Text: fmt.Sprintf("playing %d favorites", len(s.Playback.Playlist))}
		m.CurrentView = ViewPlayer
	case "f", "x":
		if len(favs) == 0 {
			break
		}
		q := favs[clampCursor(m.Cursor, len(favs))]
		m.app.ToggleFavorite(q.ID)
		m.Cursor = clampCursor(m.Cursor, len(favs)-1)
		m.Status = StatusBar{Text: "removed from favorites"}
	}
	return m
}

func (m Model) renderPlayerView() string {
	s := m.app.Player()
	cur := s.Playback.Current
	if cur == nil {
		return views.RenderPlayerPanel(views.PlayerPanelData{})
	}
	return views.RenderPlayerPanel(views.PlayerPanelData{
		Title:       cur.Text,
		Attribution: cur.Attribution,
		Reference:   cur.Reference,
		Category:    cur.Category,
		Playing:     s.Playback.IsPlaying,
		Position:    s.Playback.Index + 1,
		Total:       len(s.Playback.Playlist),
		Favorite:    s.IsFavorite(cur.ID),
	})
}

func (m Model) renderFavoritesView() string {
	favs := m.app.Favorites()
	var b strings.Builder
	b.WriteString("favorites:\n")
	if len(favs) == 0 {
		b.WriteString("(none yet, press f while a teaching plays)")
		return b.String()
	}
	for i, q := range favs {
		cursor := " "
		if i == m.Cursor {
			cursor = ">"
		}
		fmt.Fprintf(&b, "%s %s  %s\n", cursor, q.ID, truncate(q.Attribution, 28))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m Model) renderProgressView() string {
	s := m.app.Player()
	day := m.app.Today()
	listened := 0
	if s.Streak.Today.Date == day.Today {
		listened = s.Streak.Today.QuotesListened
	}
	return views.RenderProgressPanel(views.ProgressPanelData{
		Listened:      listened,
		Goal:          s.DailyGoal,
		ProgressView:  m.goalProgress.ViewAs(ratio(listened, s.DailyGoal)),
		CurrentStreak: s.Streak.CurrentStreak,
		LongestStreak: s.Streak.LongestStreak,
		TotalDays:     s.Streak.TotalDaysCompleted,
		TotalListened: s.Streak.TotalQuotesListened,
		Celebrate:     s.Celebrate,
	})
}
