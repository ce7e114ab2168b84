package utils

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout    = "2006-01-02"
	DisplayLayout = "02 Jan 2006, 3:04 PM"
)

// FormatTimestamp renders epoch seconds as "DD Mon YYYY, h:mm AM/PM" in loc.
// Missing timestamps render as "-".
func FormatTimestamp(epoch int64, loc *time.Location) string {
	if epoch <= 0 {
		return "-"
	}
	if loc == nil {
		loc = time.UTC
	}
	return time.Unix(epoch, 0).In(loc).Format(DisplayLayout)
}

// ParseDate parses a YYYY-MM-DD value as midnight in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(value), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected YYYY-MM-DD: %w", err)
	}
	return t, nil
}

// DayRange returns the half-open epoch range [start, end) covering the
// calendar day named by value in loc.
func DayRange(value string, loc *time.Location) (int64, int64, error) {
	start, err := ParseDate(value, loc)
	if err != nil {
		return 0, 0, err
	}
	return start.Unix(), start.AddDate(0, 0, 1).Unix(), nil
}

// StartOfDay truncates t to midnight in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
