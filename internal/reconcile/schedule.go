package reconcile

import (
	"time"

	"github.com/pfrederiksen/toto-draws/internal/draw"
)

// DefaultScheduleWindow is how far back the calendar fallback looks when the
// archive page is unreachable.
const DefaultScheduleWindow = 90 * 24 * time.Hour

// ExpectedDrawDates returns the Monday and Thursday dates within the window
// ending at now, oldest first. TOTO draws happen on those two weekdays, so
// this is the best guess at what a missing catalog would have listed.
func ExpectedDrawDates(now time.Time, window time.Duration) []time.Time {
	var dates []time.Time
	day := now.UTC().Truncate(24 * time.Hour)
	start := day.Add(-window)
	for d := start; !d.After(day); d = d.Add(24 * time.Hour) {
		if wd := d.Weekday(); wd == time.Monday || wd == time.Thursday {
			dates = append(dates, d)
		}
	}
	return dates
}

// PlaceholderLocators wraps expected draw dates as locators. They carry no
// query string, so they cannot be fetched; the runner reports them as
// diagnostics for draws the archive outage may be hiding.
func PlaceholderLocators(dates []time.Time) []draw.Locator {
	locators := make([]draw.Locator, len(dates))
	for i, d := range dates {
		locators[i] = draw.Locator{DrawDate: d}
	}
	return locators
}
