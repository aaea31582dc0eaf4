package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/graced/internal/app"
	"github.com/sandeepkv93/graced/internal/commands"
	"github.com/sandeepkv93/graced/internal/model"
	"github.com/sandeepkv93/graced/internal/views"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m = m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		m.commandInput, _ = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) closePalette() Model {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.fail(err)
		return m.closePalette()
	}

	res, err := commands.Execute(cmd, m.handlers())
	if err != nil {
		m.fail(err)
	} else {
		m.Status = StatusBar{Text: res.Message}
	}
	return m.closePalette()
}

func (m *Model) handlers() commands.Handlers {
	a := m.app
	return commands.Handlers{
		Play: func(p commands.PlayArgs) (commands.Result, error) {
			if _, err := a.Play(p.ID, p.Category); err != nil {
				return commands.Result{}, err
			}
			m.CurrentView = ViewPlayer
			return commands.Result{Message: "now playing " + p.ID}, nil
		},
		Next: func() (commands.Result, error) {
			cur := a.Next().Playback.Current
			if cur == nil {
				return commands.Result{}, app.ErrNothingPlaying
			}
			return commands.Result{Message: "now playing " + cur.ID}, nil
		},
		Prev: func() (commands.Result, error) {
			cur := a.Previous().Playback.Current
			if cur == nil {
				return commands.Result{}, app.ErrNothingPlaying
			}
			return commands.Result{Message: "now playing " + cur.ID}, nil
		},
		Fav: func(f commands.FavArgs) (commands.Result, error) {
			id := f.ID
			if id == "" {
				cur := a.Player().Playback.Current
				if cur == nil {
					return commands.Result{}, app.ErrNothingPlaying
				}
				id = cur.ID
			} else if _, err := a.Catalog().Lookup(id); err != nil {
				return commands.Result{}, err
			}
			if a.ToggleFavorite(id) {
				return commands.Result{Message: "added to favorites: " + id}, nil
			}
			return commands.Result{Message: "removed from favorites: " + id}, nil
		},
		Goal: func(g commands.GoalArgs) (commands.Result, error) {
			if _, err := a.SetDailyGoal(g.Count); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("daily goal set to %d", g.Count)}, nil
		},
		Time: func(t commands.TimeArgs) (commands.Result, error) {
			var (
				err error
				msg string
			)
			switch t.Action {
			case commands.TimeAdd:
				var nt model.NotificationTime
				nt, err = a.AddNotificationTime(m.ctx, t.Hour, t.Minute, t.Label)
				msg = fmt.Sprintf("added %s %s (%s)", nt.Clock(), nt.Label, nt.ID)
			case commands.TimeRemove:
				_, err = a.RemoveNotificationTime(m.ctx, t.ID)
				msg = "removed " + t.ID
			case commands.TimeToggle:
				_, err = a.ToggleNotificationTime(m.ctx, t.ID)
				msg = "toggled " + t.ID
			}
			if err != nil {
				return commands.Result{}, err
			}
			if out := a.ScheduleStatus(); out.Err != nil {
				msg += " (" + out.Err.Error() + ")"
			}
			return commands.Result{Message: msg}, nil
		},
		Confess: func(c commands.ConfessArgs) (commands.Result, error) {
			entry, err := a.RecordConfession(c.Date, c.Notes)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "confession recorded for " + entry.Date}, nil
		},
		Rescue: func() (commands.Result, error) {
			q, err := a.Rescue()
			if err != nil {
				return commands.Result{}, err
			}
			m.CurrentView = ViewPlayer
			return commands.Result{Message: "rescue: " + q.ID}, nil
		},
	}
}
