package present

import (
	"time"

	"github.com/worldsacross/tutor-viewer/internal/model"
)

// ClassStatusAt classifies a booking against now:
//   - active    when date <= now <= end_time
//   - completed when end_time < now
//   - upcoming  otherwise
//
// A bound that failed to parse never satisfies a comparison, so such bookings
// fall through to upcoming.
func ClassStatusAt(c model.Class, now time.Time) model.ClassStatus {
	if c.Date.Valid() && c.EndTime.Valid() && !c.Date.Time.After(now) && !c.EndTime.Time.Before(now) {
		return model.ClassStatusActive
	}
	if c.EndTime.Valid() && c.EndTime.Time.Before(now) {
		return model.ClassStatusCompleted
	}
	return model.ClassStatusUpcoming
}

// ClassStatsAt counts bookings per bound comparison. Each counter is evaluated
// independently, so upcoming only counts bookings whose date is strictly
// after now.
func ClassStatsAt(classes []model.Class, now time.Time) model.ClassStats {
	stats := model.ClassStats{Total: len(classes)}
	for _, c := range classes {
		if c.Date.Valid() && c.EndTime.Valid() && !c.Date.Time.After(now) && !c.EndTime.Time.Before(now) {
			stats.Active++
		}
		if c.EndTime.Valid() && c.EndTime.Time.Before(now) {
			stats.Completed++
		}
		if c.Date.Valid() && c.Date.Time.After(now) {
			stats.Upcoming++
		}
	}
	return stats
}
