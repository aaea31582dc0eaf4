// Package update is the interactive listening session: a Bubble Tea model
// over *app.App with a command palette and in-session reminder log.
package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/sandeepkv93/graced/internal/app"
	"github.com/sandeepkv93/graced/internal/notify"
)

type View string

const (
	ViewPlayer    View = "Player"
	ViewFavorites View = "Favorites"
	ViewSchedule  View = "Schedule"
	ViewJournal   View = "Journal"
)

const (
	notificationLogLimit = 40
	dayTickInterval      = time.Minute
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Player    string
	Favorites string
	Schedule  string
	Journal   string
	Help      string
	Quit      string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// Notification is one entry in the session's reminder log.
type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type Model struct {
	CurrentView   View
	Cursor        int
	Palette       CommandPaletteState
	HelpVisible   bool
	Notifications []Notification
	Status        StatusBar
	Keys          GlobalKeyMap
	Quitting      bool
	LastError     error

	ctx    context.Context
	app    *app.App
	alerts <-chan notify.Notification

	commandInput textinput.Model
	goalProgress progress.Model
	helpModel    help.Model
}

type Options struct {
	// Alerts receives notifications fired while the session is open.
	Alerts <-chan notify.Notification
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type AlertMsg struct {
	Notification notify.Notification
}

type DayTickMsg struct {
	At time.Time
}

func NewModel(ctx context.Context, a *app.App, opts Options) Model {
	m := Model{
		CurrentView: ViewPlayer,
		ctx:         ctx,
		app:         a,
		alerts:      opts.Alerts,
		Keys: GlobalKeyMap{
			Player:    "1",
			Favorites: "2",
			Schedule:  "3",
			Journal:   "4",
			Help:      "?",
			Quit:      "q",
		},
	}
	m.initBubbleComponents()
	return m
}

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 40

	m.goalProgress = progress.New(progress.WithDefaultGradient(), progress.WithWidth(36))
	m.helpModel = help.New()
}

// ChannelDeliverer hands fired notifications to a running session. Deliver
// never blocks; a full buffer drops the notification.
type ChannelDeliverer struct {
	C chan notify.Notification
}

func NewChannelDeliverer(buffer int) ChannelDeliverer {
	if buffer <= 0 {
		buffer = 8
	}
	return ChannelDeliverer{C: make(chan notify.Notification, buffer)}
}

func (d ChannelDeliverer) Available(context.Context) bool { return true }

func (d ChannelDeliverer) Deliver(ctx context.Context, n notify.Notification) error {
	select {
	case d.C <- n:
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	return nil
}
