package player

import (
	"errors"
	"fmt"
	"testing"

	"github.com/sandeepkv93/graced/internal/clock"
	"github.com/sandeepkv93/graced/internal/model"
)

var feb9 = clock.Day{Today: "2026-02-09", Yesterday: "2026-02-08"}

func quotes(n int) []model.Quote {
	out := make([]model.Quote, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, model.Quote{ID: fmt.Sprintf("q-%d", i), Text: "text", Category: "Faith"})
	}
	return out
}

func TestNewDefaults(t *testing.T) {
	s := New(feb9)
	if s.DailyGoal != 10 {
		t.Fatalf("expected default goal 10, got %d", s.DailyGoal)
	}
	if s.Streak.Today.Date != feb9.Today || s.Streak.Today.QuotesListened != 0 {
		t.Fatalf("unexpected today progress: %+v", s.Streak.Today)
	}
	if s.Playback.Current != nil || s.Playback.IsPlaying {
		t.Fatalf("expected empty playback, got %+v", s.Playback)
	}
}

func TestPlayItemDefaultsToSingleItemPlaylist(t *testing.T) {
	item := quotes(1)[0]
	s := New(feb9).PlayItem(item, nil)
	if len(s.Playback.Playlist) != 1 || s.Playback.Index != 0 || !s.Playback.IsPlaying {
		t.Fatalf("unexpected playback: %+v", s.Playback)
	}
	if s.Playback.Current == nil || s.Playback.Current.ID != item.ID {
		t.Fatalf("unexpected current item: %+v", s.Playback.Current)
	}
}

func TestPlayItemFindsIndexInPlaylist(t *testing.T) {
	list := quotes(5)
	s := New(feb9).PlayItem(list[3], list)
	if s.Playback.Index != 3 || s.Playback.Current.ID != "q-3" {
		t.Fatalf("unexpected pointer: index=%d current=%+v", s.Playback.Index, s.Playback.Current)
	}
}

func TestPlayItemMissingFromPlaylistKeepsPointerInvariant(t *testing.T) {
	list := quotes(3)
	stray := model.Quote{ID: "stray", Text: "t", Category: "Faith"}
	s := New(feb9).PlayItem(stray, list)
	if s.Playback.Index != 0 {
		t.Fatalf("expected index 0, got %d", s.Playback.Index)
	}
	if s.Playback.Playlist[s.Playback.Index].ID != s.Playback.Current.ID {
		t.Fatalf("pointer invariant broken: %+v", s.Playback)
	}
	if len(list) != 3 {
		t.Fatal("caller playlist must not be modified")
	}
}

func TestPauseResumeKeepsPosition(t *testing.T) {
	list := quotes(3)
	s := New(feb9).PlayItem(list[1], list).Pause().Pause()
	if s.Playback.IsPlaying || s.Playback.Index != 1 {
		t.Fatalf("unexpected paused playback: %+v", s.Playback)
	}
	s = s.Resume()
	if !s.Playback.IsPlaying || s.Playback.Current.ID != "q-1" {
		t.Fatalf("unexpected resumed playback: %+v", s.Playback)
	}
}

func TestAdvanceIsCircular(t *testing.T) {
	for n := 1; n <= 6; n++ {
		list := quotes(n)
		for start := 0; start < n; start++ {
			s := New(feb9).PlayItem(list[start], list)
			for i := 0; i < n; i++ {
				s = s.Advance(Next)
			}
			if s.Playback.Index != start {
				t.Fatalf("n=%d start=%d: %d nexts landed at %d", n, start, n, s.Playback.Index)
			}
			back := s.Advance(Next).Advance(Previous)
			if back.Playback.Index != start || back.Playback.Current.ID != list[start].ID {
				t.Fatalf("n=%d start=%d: next+previous landed at %d", n, start, back.Playback.Index)
			}
		}
	}
}

func TestAdvanceWrapsBothWays(t *testing.T) {
	list := quotes(3)
	s := New(feb9).PlayItem(list[2], list).Advance(Next)
	if s.Playback.Index != 0 || s.Playback.Current.ID != "q-0" {
		t.Fatalf("expected wrap to first, got %+v", s.Playback)
	}
	s = s.Advance(Previous)
	if s.Playback.Index != 2 || s.Playback.Current.ID != "q-2" {
		t.Fatalf("expected wrap to last, got %+v", s.Playback)
	}
}

func TestAdvanceOnEmptyPlaylistIsNoop(t *testing.T) {
	s := New(feb9).Advance(Next)
	if s.Playback.Current != nil || s.Playback.Index != 0 {
		t.Fatalf("expected untouched playback, got %+v", s.Playback)
	}
}

func TestToggleFavoriteIsSymmetric(t *testing.T) {
	s := New(feb9).ToggleFavorite("q-1").ToggleFavorite("q-2")
	if !s.IsFavorite("q-1") || !s.IsFavorite("q-2") || len(s.Favorites) != 2 {
		t.Fatalf("unexpected favorites: %v", s.Favorites)
	}
	s = s.ToggleFavorite("q-1")
	if s.IsFavorite("q-1") || len(s.Favorites) != 1 {
		t.Fatalf("expected q-1 removed: %v", s.Favorites)
	}
}

func TestAddToHistoryDeduplicatesToFront(t *testing.T) {
	s := New(feb9).AddToHistory("a").AddToHistory("b").AddToHistory("a")
	if len(s.History) != 2 || s.History[0] != "a" || s.History[1] != "b" {
		t.Fatalf("unexpected history: %v", s.History)
	}
}

func TestAddToHistoryCapsAtFifty(t *testing.T) {
	s := New(feb9)
	for i := 0; i < 51; i++ {
		s = s.AddToHistory(fmt.Sprintf("id-%d", i))
	}
	if len(s.History) != HistoryLimit {
		t.Fatalf("expected %d entries, got %d", HistoryLimit, len(s.History))
	}
	if s.History[0] != "id-50" || s.History[49] != "id-1" {
		t.Fatalf("unexpected history bounds: first=%s last=%s", s.History[0], s.History[49])
	}
}

func TestSetDailyGoalRejectsNonPositive(t *testing.T) {
	s := New(feb9)
	for _, goal := range []int{0, -3} {
		next, err := s.SetDailyGoal(goal)
		if !errors.Is(err, model.ErrInvalidGoal) {
			t.Fatalf("goal %d: expected ErrInvalidGoal, got %v", goal, err)
		}
		if next.DailyGoal != 10 {
			t.Fatalf("goal %d: state changed to %d", goal, next.DailyGoal)
		}
	}
	next, err := s.SetDailyGoal(3)
	if err != nil || next.DailyGoal != 3 {
		t.Fatalf("expected goal 3, got %d err=%v", next.DailyGoal, err)
	}
}
