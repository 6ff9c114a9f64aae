package render

import (
	"math"
	"strconv"
	"time"
)

// InvalidDate is shown for date tokens that cannot be parsed.
const InvalidDate = "Invalid Date"

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate reads a feed date token. Tokens without an offset are taken in loc.
// A bare number is a Unix timestamp in milliseconds.
func ParseDate(token string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, token, loc); err == nil {
			return t.In(loc), true
		}
	}
	if ms, err := strconv.ParseFloat(token, 64); err == nil && !math.IsNaN(ms) && math.Abs(ms) <= maxEpochMillis {
		return time.UnixMilli(int64(ms)).In(loc), true
	}
	return time.Time{}, false
}

// maxEpochMillis bounds numeric tokens to +-100,000,000 days around the epoch.
const maxEpochMillis = 8.64e15

// FormatDisplayDate renders a date token as a two-digit day/month label ("05.03").
func FormatDisplayDate(token string, loc *time.Location) string {
	t, ok := ParseDate(token, loc)
	if !ok {
		return InvalidDate
	}
	return t.Format("02.01")
}
