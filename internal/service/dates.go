package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

// Layouts an event date may arrive in. Stored dates always use the first
// display layout, matching the seed data.
var eventDateFormats = []string{
	"Jan 2, 2006",
	"January 2, 2006",
	"2006-01-02",
	"01/02/2006",
}

var eventTimeFormats = []string{
	"3:04 PM",
	"3:04PM",
	"15:04",
	"15:04:05",
}

const (
	storedDateLayout = "Jan 2, 2006"
	storedTimeLayout = "3:04 PM"
)

// parseEventDate reads a calendar date as midnight in loc.
func parseEventDate(s string, loc *time.Location) (time.Time, error) {
	cfg := &now.Config{TimeLocation: loc, TimeFormats: eventDateFormats}
	t, err := cfg.Parse(strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return now.With(t).BeginningOfDay(), nil
}

// parseEventTime reads a time of day as an offset from midnight.
func parseEventTime(s string) (time.Duration, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range eventTimeFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
		}
	}
	return 0, fmt.Errorf("parse time %q: unsupported format", s)
}

func formatEventTime(offset time.Duration) string {
	return time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC).Add(offset).Format(storedTimeLayout)
}

func sameDay(a, b time.Time) bool {
	return now.With(a).BeginningOfDay().Equal(now.With(b.In(a.Location())).BeginningOfDay())
}
