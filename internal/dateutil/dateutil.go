// Package dateutil provides calendar-date parsing and week arithmetic.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// Layout is the canonical calendar date format.
const Layout = "2006-01-02"

// Validation errors.
var (
	ErrInvalidDateFormat = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidWeekStart  = errors.New("week start must be 'monday' or 'sunday'")
)

// weekdayMap maps weekday names to time.Weekday values.
var weekdayMap = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseDate parses a date string in YYYY-MM-DD format in the given location.
// A nil location means time.Local.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(Layout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// Format returns the canonical YYYY-MM-DD form of t.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// CanonicalDate normalizes a producer date into YYYY-MM-DD.
// It accepts plain dates, RFC3339 timestamps and "YYYY-MM-DD HH:MM:SS"
// values; for timestamps the calendar part as written is kept.
func CanonicalDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) < len(Layout) {
		return "", ErrInvalidDateFormat
	}
	if t, err := time.Parse(Layout, s); err == nil {
		return Format(t), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return Format(t), nil
	}
	// "2025-01-15 10:00:00", "2025-01-15T10:00:00" and friends
	if len(s) > len(Layout) && (s[len(Layout)] == ' ' || s[len(Layout)] == 'T') {
		if t, err := time.Parse(Layout, s[:len(Layout)]); err == nil {
			return Format(t), nil
		}
	}
	return "", ErrInvalidDateFormat
}

// DateOfMillis returns the local calendar date of an epoch-milliseconds
// timestamp in loc. A nil location means time.Local.
func DateOfMillis(ms int64, loc *time.Location) string {
	return Format(FromMillis(ms, loc))
}

// FromMillis converts epoch milliseconds to a time in loc.
func FromMillis(ms int64, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(ms).In(loc)
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseWeekStart parses "monday" or "sunday" (case-insensitive).
// Empty input defaults to Monday.
func ParseWeekStart(s string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "monday":
		return time.Monday, nil
	case "sunday":
		return time.Sunday, nil
	default:
		return time.Monday, ErrInvalidWeekStart
	}
}

// StartOfWeek returns the first day of the week containing t, where weeks
// begin on firstDay.
func StartOfWeek(t time.Time, firstDay time.Weekday) time.Time {
	t = TruncateToDay(t)
	back := (int(t.Weekday()) - int(firstDay) + 7) % 7
	return t.AddDate(0, 0, -back)
}

// WeekRange returns the first and last day of the week containing t.
func WeekRange(t time.Time, firstDay time.Weekday) (start, end time.Time) {
	start = StartOfWeek(t, firstDay)
	return start, start.AddDate(0, 0, 6)
}

// ParseRelativeDate parses a date string that can be:
//   - Empty string or "today": returns relativeTo date
//   - Absolute date: "2025-01-15" (YYYY-MM-DD)
//   - Keywords: "tomorrow", "yesterday"
//   - Weekday names: "monday" through "sunday" (next occurrence)
//   - Next prefixed: "next-monday" through "next-sunday", "next-week"
//
// All inputs are case-insensitive. Past dates are allowed.
// Returns ErrInvalidDateFormat for unrecognized input.
func ParseRelativeDate(s string, relativeTo time.Time) (time.Time, error) {
	today := TruncateToDay(relativeTo)
	input := strings.ToLower(strings.TrimSpace(s))

	switch input {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	case "next-week":
		return today.AddDate(0, 0, 7), nil
	}

	if strings.HasPrefix(input, "next-") {
		weekdayName := strings.TrimPrefix(input, "next-")
		if targetDay, ok := weekdayMap[weekdayName]; ok {
			return nextWeekday(today, targetDay), nil
		}
		return time.Time{}, ErrInvalidDateFormat
	}

	if targetDay, ok := weekdayMap[input]; ok {
		return nextWeekday(today, targetDay), nil
	}

	return ParseDate(input, relativeTo.Location())
}

// nextWeekday returns the next occurrence of the given weekday after today.
// If today is the target weekday, returns one week from today.
func nextWeekday(today time.Time, target time.Weekday) time.Time {
	daysUntil := int(target) - int(today.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return today.AddDate(0, 0, daysUntil)
}
