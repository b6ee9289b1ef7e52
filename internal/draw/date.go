package draw

import "time"

// drawDateLayouts are the month-name layouts the results and archive pages
// use, tried in order: "12 May 2025" appears with both the full and the
// abbreviated month name.
var drawDateLayouts = []string{
	"2 January 2006",
	"2 Jan 2006",
}

// ParseDrawDate attempts to parse a draw date token such as "12 May 2025".
// Returns time.Time{} (zero value) if no layout matches.
func ParseDrawDate(text string) time.Time {
	for _, layout := range drawDateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t
		}
	}
	return time.Time{}
}
