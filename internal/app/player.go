package app

import (
	"errors"

	"github.com/sandeepkv93/graced/internal/model"
	"github.com/sandeepkv93/graced/internal/player"
	"github.com/sandeepkv93/graced/internal/storage"
)

var ErrNothingPlaying = errors.New("app: nothing is playing")

// Play starts quote id with a playlist drawn from category (every quote when
// empty).
func (a *App) Play(id, category string) (player.State, error) {
	q, err := a.catalog.Lookup(id)
	if err != nil {
		return a.Player(), err
	}
	return a.PlayQuote(q, a.catalog.ByCategory(category)), nil
}

func (a *App) PlayQuote(q model.Quote, playlist []model.Quote) player.State {
	return a.updatePlayer(func(s player.State) player.State {
		return s.PlayItem(q, playlist)
	})
}

// PlayFavorites plays the favorites list from its first entry.
func (a *App) PlayFavorites() (player.State, error) {
	favs := a.catalog.LookupAll(a.Player().Favorites)
	if len(favs) == 0 {
		return a.Player(), ErrNothingPlaying
	}
	return a.PlayQuote(favs[0], favs), nil
}

func (a *App) Pause() player.State {
	return a.updatePlayer(player.State.Pause)
}

func (a *App) Resume() player.State {
	return a.updatePlayer(player.State.Resume)
}

func (a *App) TogglePlayback() player.State {
	return a.updatePlayer(func(s player.State) player.State {
		if s.Playback.IsPlaying {
			return s.Pause()
		}
		return s.Resume()
	})
}

func (a *App) Next() player.State {
	return a.updatePlayer(func(s player.State) player.State { return s.Advance(player.Next) })
}

func (a *App) Previous() player.State {
	return a.updatePlayer(func(s player.State) player.State { return s.Advance(player.Previous) })
}

// ToggleFavorite flips id and reports whether it is now a favorite.
func (a *App) ToggleFavorite(id string) bool {
	s := a.updatePlayer(func(s player.State) player.State { return s.ToggleFavorite(id) })
	return s.IsFavorite(id)
}

// MarkListened records id as consumed: it moves to the front of history and
// counts toward today's goal. completed is true only when this call first
// reached the goal today.
func (a *App) MarkListened(id string) (player.State, bool) {
	day := a.Today()
	var completed bool
	s := a.updatePlayer(func(s player.State) player.State {
		s = s.AddToHistory(id)
		s, completed = s.IncrementListened(day)
		return s
	})
	if completed {
		a.logger.Info("daily goal completed", "streak", s.Streak.CurrentStreak, "date", day.Today)
	}
	return s, completed
}

// ListenCurrent marks the playing quote as listened.
func (a *App) ListenCurrent() (player.State, bool, error) {
	cur := a.Player().Playback.Current
	if cur == nil {
		return a.Player(), false, ErrNothingPlaying
	}
	s, completed := a.MarkListened(cur.ID)
	return s, completed, nil
}

func (a *App) SetDailyGoal(goal int) (player.State, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	next, err := a.player.SetDailyGoal(goal)
	if err != nil {
		return a.player, err
	}
	a.player = next
	a.persistLocked(storage.PlayerKey, a.player)
	return a.player, nil
}

func (a *App) DismissCelebration() player.State {
	return a.updatePlayer(player.State.DismissCelebration)
}

// RolloverDay applies the daily reset for the current clock day.
func (a *App) RolloverDay() player.State {
	day := a.Today()
	return a.updatePlayer(func(s player.State) player.State {
		return s.ResetDailyProgressIfNeeded(day)
	})
}

// Favorites resolves favorite ids against the catalog.
func (a *App) Favorites() []model.Quote {
	return a.catalog.LookupAll(a.Player().Favorites)
}

func (a *App) History() []model.Quote {
	return a.catalog.LookupAll(a.Player().History)
}
