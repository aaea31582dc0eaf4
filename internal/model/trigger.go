package model

import (
	"time"
)

// DailyTrigger fires once a day at Hour:Minute in Location.
type DailyTrigger struct {
	Hour     int
	Minute   int
	Location *time.Location
}

func (t DailyTrigger) Validate() error {
	return ValidateClock(t.Hour, t.Minute)
}

// NextAfter returns the first firing strictly after from.
func (t DailyTrigger) NextAfter(from time.Time) (time.Time, error) {
	if err := t.Validate(); err != nil {
		return time.Time{}, err
	}
	loc := t.Location
	if loc == nil {
		loc = from.Location()
	}
	local := from.In(loc)
	y, m, d := local.Date()
	candidate := time.Date(y, m, d, t.Hour, t.Minute, 0, 0, loc)
	if !candidate.After(local) {
		candidate = time.Date(y, m, d+1, t.Hour, t.Minute, 0, 0, loc)
	}
	return candidate, nil
}

func (t DailyTrigger) Preview(from time.Time, count int) ([]time.Time, error) {
	if count <= 0 {
		return []time.Time{}, nil
	}
	out := make([]time.Time, 0, count)
	cursor := from
	for i := 0; i < count; i++ {
		next, err := t.NextAfter(cursor)
		if err != nil {
			return nil, err
		}
		out = append(out, next)
		cursor = next
	}
	return out, nil
}
