package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/graced/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	bindings := m.helpBindings()
	return views.RenderHelpPanel(views.HelpPanelData{
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Player, Action: "player"},
		{Key: m.Keys.Favorites, Action: "favorites"},
		{Key: m.Keys.Schedule, Action: "reminder schedule"},
		{Key: m.Keys.Journal, Action: "confession journal"},
		{Key: "/", Action: "command palette"},
		{Key: m.Keys.Help, Action: "toggle help"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewPlayer:
		return []KeyBinding{
			{Key: "space", Action: "play/pause"},
			{Key: "n/p", Action: "next/previous teaching"},
			{Key: "f", Action: "toggle favorite"},
			{Key: "l", Action: "mark listened"},
			{Key: "enter", Action: "dismiss celebration"},
			{Key: "r", Action: "rescue mode"},
		}
	case ViewFavorites:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "enter", Action: "play from favorites"},
			{Key: "p", Action: "play all favorites"},
			{Key: "x", Action: "remove favorite"},
		}
	case ViewSchedule:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "space", Action: "enable/disable time"},
			{Key: "t", Action: "toggle daily reminders"},
			{Key: "x", Action: "remove time"},
			{Key: "R", Action: "reset to defaults"},
		}
	case ViewJournal:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "c", Action: "record confession today"},
			{Key: "space", Action: "toggle goal focus"},
			{Key: "+/-", Action: "goal progress"},
			{Key: "enter", Action: "toggle goal completed"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	all := append(m.globalBindings(), m.viewBindings()...)
	out := make([]key.Binding, 0, len(all))
	for _, kb := range all {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
