package notify

import (
	"fmt"
	"sync/atomic"

	"github.com/sandeepkv93/graced/internal/model"
)

var Messages = []string{
	"Your daily spiritual journey awaits 🙏",
	"Listen to God's word and find peace ✨",
	"Time for your spiritual reflection 📖",
	"Let His teachings guide your heart 💝",
	"Your soul thirsts for divine wisdom 🌟",
	"Come and receive today's blessing 🕊️",
	"The Lord calls you to listen 📢",
	"Find strength in His holy word 💪",
}

func TimeEmoji(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "🌅"
	case hour >= 12 && hour < 17:
		return "☀️"
	case hour >= 17 && hour < 21:
		return "🌆"
	default:
		return "🌙"
	}
}

func Title(label string, hour int) string {
	return fmt.Sprintf("%s %s", label, TimeEmoji(hour))
}

// Rotator hands out message bodies round-robin. The zero value is ready.
type Rotator struct {
	n atomic.Uint64
}

func (r *Rotator) Next() string {
	i := r.n.Add(1) - 1
	return Messages[i%uint64(len(Messages))]
}

// AlertsFor builds one alert per enabled time, in input order.
func AlertsFor(times []model.NotificationTime, r *Rotator) []Alert {
	out := make([]Alert, 0, len(times))
	for _, t := range times {
		if !t.Enabled {
			continue
		}
		out = append(out, Alert{
			TimeID: t.ID,
			Title:  Title(t.Label, t.Hour),
			Body:   r.Next(),
			Hour:   t.Hour,
			Minute: t.Minute,
		})
	}
	return out
}
