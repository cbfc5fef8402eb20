package domain

import "time"

// SinceWindow carries a lookback window from the HTTP layer to the repo
// layer for driver-scoped listings (trips, cut pay requests).
type SinceWindow struct {
	// Cutoff is the earliest timestamp included in the listing.
	Cutoff time.Time
}

// NewSinceWindow builds a SinceWindow from an optional sinceDays query param.
// A nil pointer falls back to 7 days; the window is capped at 90 days to
// prevent runaway queries over the full trip history.
func NewSinceWindow(sinceDays *int, now time.Time) SinceWindow {
	days := 7
	if sinceDays != nil && *sinceDays >= 1 {
		days = *sinceDays
		if days > 90 {
			days = 90
		}
	}
	return SinceWindow{Cutoff: now.AddDate(0, 0, -days)}
}
