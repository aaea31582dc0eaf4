// Package player holds the playback pointer, favorites, history and the
// daily-goal streak engine. Every transition is a value-receiver method that
// returns the next State and never reads the wall clock.
package player

import (
	"github.com/sandeepkv93/graced/internal/clock"
	"github.com/sandeepkv93/graced/internal/model"
)

const (
	HistoryLimit     = 50
	DefaultDailyGoal = 10
)

type Direction int

const (
	Next Direction = iota
	Previous
)

type Playback struct {
	Current   *model.Quote  `json:"-"`
	Playlist  []model.Quote `json:"-"`
	Index     int           `json:"-"`
	IsPlaying bool          `json:"-"`
}

type DailyProgress struct {
	Date           string `json:"date"`
	QuotesListened int    `json:"quotesListened"`
	GoalCompleted  bool   `json:"goalCompleted"`
}

type Streak struct {
	CurrentStreak       int           `json:"currentStreak"`
	LongestStreak       int           `json:"longestStreak"`
	LastCompletedDate   string        `json:"lastCompletedDate,omitempty"`
	TotalDaysCompleted  int           `json:"totalDaysCompleted"`
	TotalQuotesListened int           `json:"totalQuotesListened"`
	WeeklyStreaks       int           `json:"weeklyStreak"`
	MonthlyStreaks      int           `json:"monthlyStreak"`
	Today               DailyProgress `json:"todayProgress"`
}

// State is the Player/Progress container. Playback and Celebrate are
// session-only and never persisted.
type State struct {
	Playback  Playback `json:"-"`
	Favorites []string `json:"favorites"`
	History   []string `json:"history"`
	Streak    Streak   `json:"streakData"`
	DailyGoal int      `json:"dailyGoal"`
	Celebrate bool     `json:"-"`
}

func New(day clock.Day) State {
	return State{
		Favorites: []string{},
		History:   []string{},
		Streak: Streak{
			Today: DailyProgress{Date: day.Today},
		},
		DailyGoal: DefaultDailyGoal,
	}
}

func (s State) PlayItem(item model.Quote, playlist []model.Quote) State {
	next := make([]model.Quote, 0, len(playlist)+1)
	next = append(next, playlist...)
	if len(next) == 0 {
		next = append(next, item)
	}
	index := indexOf(next, item.ID)
	if index < 0 {
		next = append([]model.Quote{item}, next...)
		index = 0
	}
	current := next[index]
	s.Playback = Playback{
		Current:   &current,
		Playlist:  next,
		Index:     index,
		IsPlaying: true,
	}
	return s
}

func (s State) Pause() State {
	s.Playback.IsPlaying = false
	return s
}

func (s State) Resume() State {
	s.Playback.IsPlaying = true
	return s
}

func (s State) Advance(dir Direction) State {
	n := len(s.Playback.Playlist)
	if n == 0 {
		return s
	}
	i := s.Playback.Index
	switch dir {
	case Next:
		i = (i + 1) % n
	case Previous:
		i = (i - 1 + n) % n
	default:
		return s
	}
	current := s.Playback.Playlist[i]
	s.Playback.Current = &current
	s.Playback.Index = i
	return s
}

func (s State) ToggleFavorite(id string) State {
	out := make([]string, 0, len(s.Favorites)+1)
	found := false
	for _, fav := range s.Favorites {
		if fav == id {
			found = true
			continue
		}
		out = append(out, fav)
	}
	if !found {
		out = append(out, id)
	}
	s.Favorites = out
	return s
}

func (s State) IsFavorite(id string) bool {
	for _, fav := range s.Favorites {
		if fav == id {
			return true
		}
	}
	return false
}

func (s State) AddToHistory(id string) State {
	out := make([]string, 0, min(len(s.History)+1, HistoryLimit))
	out = append(out, id)
	for _, prev := range s.History {
		if len(out) == HistoryLimit {
			break
		}
		if prev == id {
			continue
		}
		out = append(out, prev)
	}
	s.History = out
	return s
}

func (s State) SetDailyGoal(goal int) (State, error) {
	if goal <= 0 {
		return s, model.ErrInvalidGoal
	}
	s.DailyGoal = goal
	return s, nil
}

func (s State) DismissCelebration() State {
	s.Celebrate = false
	return s
}

func indexOf(list []model.Quote, id string) int {
	for i, q := range list {
		if q.ID == id {
			return i
		}
	}
	return -1
}
