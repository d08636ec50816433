package service

import (
	"strings"
	"time"

	"go-fridge-tracker/internal/model"
)

// DefaultStatsWindow is how far back statistics and the change log reach
// when no start is given.
const DefaultStatsWindow = 30 * 24 * time.Hour

// ResolveWindow fills missing bounds: start defaults to now-span, end to now.
// Both bounds are inclusive.
func ResolveWindow(start *time.Time, end *time.Time, now time.Time, span time.Duration) (model.Window, error) {
	if span <= 0 {
		span = DefaultStatsWindow
	}
	now = now.UTC()

	w := model.Window{Start: now.Add(-span), End: now}
	if start != nil {
		w.Start = start.UTC()
	}
	if end != nil {
		w.End = end.UTC()
	}
	if w.Start.After(w.End) {
		return model.Window{}, invalid("start must not be after end", "start")
	}
	return w, nil
}

// ParseBound parses a window bound given as YYYY-MM-DD or RFC 3339. A date-only
// end bound covers the whole day. Blank input yields nil.
func ParseBound(value string, isEnd bool) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	if t, err := time.Parse(DateLayout, value); err == nil {
		if isEnd {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		return &t, nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		field := "start"
		if isEnd {
			field = "end"
		}
		return nil, invalid(field+" must be YYYY-MM-DD or RFC 3339", field)
	}
	t = t.UTC()
	return &t, nil
}
