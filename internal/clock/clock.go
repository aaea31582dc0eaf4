package clock

import (
	"sync"
	"time"
)

// DayLayout is the calendar-day format used for every persisted date.
const DayLayout = "2006-01-02"

type Clock interface {
	Now() time.Time
}

// System reads the wall clock in Location (local time when nil).
type System struct {
	Location *time.Location
}

func (s System) Now() time.Time {
	if s.Location == nil {
		return time.Now()
	}
	return time.Now().In(s.Location)
}

// Manual is a settable clock for tests and replays.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

func NewManual(now time.Time) *Manual {
	return &Manual{now: now}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Set(now time.Time) {
	m.mu.Lock()
	m.now = now
	m.mu.Unlock()
}

func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

// Day is the resolved pair of calendar days the streak rules compare against.
type Day struct {
	Today     string
	Yesterday string
}

func DayOf(now time.Time) Day {
	return Day{
		Today:     now.Format(DayLayout),
		Yesterday: now.AddDate(0, 0, -1).Format(DayLayout),
	}
}

func Today(c Clock) Day {
	return DayOf(c.Now())
}

// ParseDay parses a calendar day at local midnight in loc.
func ParseDay(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(DayLayout, value, loc)
}
