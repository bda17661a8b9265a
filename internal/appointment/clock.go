package appointment

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// lastMinute is 23:59 as a decimal hour, the latest end a day can hold.
var lastMinute = DecimalHour(23, 59)

// clockLayouts are tried in order after the token has been upper-cased,
// had "." replaced by ":" and its whitespace collapsed.
var clockLayouts = []string{
	"3:04 PM",
	"3:04PM",
	"3 PM",
	"3PM",
	"15:04",
}

// ParseClock converts a single time token to a decimal hour.
// Accepted forms: "10:30 AM", "8.00 PM", "7:30pm", "10 AM", "14:05".
func ParseClock(token string) (float64, error) {
	s := strings.Join(strings.Fields(token), " ")
	if s == "" {
		return 0, ErrUnrecognizedTime
	}
	s = strings.ToUpper(strings.ReplaceAll(s, ".", ":"))
	if zeroTwelveHour(s) {
		return 0, fmt.Errorf("%w: %q", ErrUnrecognizedTime, token)
	}

	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return DecimalHour(t.Hour(), t.Minute()), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnrecognizedTime, token)
}

// zeroTwelveHour reports an AM/PM token with hour 0, which time.Parse lets
// through as 12.
func zeroTwelveHour(s string) bool {
	if !strings.HasSuffix(s, "AM") && !strings.HasSuffix(s, "PM") {
		return false
	}
	i := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	return i > 0 && strings.Trim(s[:i], "0") == ""
}

// isDayEnd reports "24:00", which only makes sense as the end of a slot.
func isDayEnd(token string) bool {
	switch strings.ReplaceAll(token, ".", ":") {
	case "24:00", "24":
		return true
	}
	return false
}

// DecimalHour returns hour + minute/60.
func DecimalHour(hour, minute int) float64 {
	return float64(hour) + float64(minute)/60
}

// ParseSlot parses a slot that is either a single time or a dash-separated
// "start - end" pair. When the end is missing, or is not after the start,
// end = start + defaultMinutes/60. An end of "24:00" is clamped to 23:59. A non-positive defaultMinutes means
// DefaultDurationMinutes.
func ParseSlot(slot string, defaultMinutes int) (start, end float64, err error) {
	if defaultMinutes <= 0 {
		defaultMinutes = DefaultDurationMinutes
	}

	startTok, endTok, err := splitSlot(slot)
	if err != nil {
		return 0, 0, err
	}

	start, err = ParseClock(startTok)
	if err != nil {
		return 0, 0, fmt.Errorf("start time: %w", err)
	}

	fallback := start + float64(defaultMinutes)/60
	end = fallback
	switch {
	case endTok == "":
	case isDayEnd(endTok):
		end = 24
	default:
		end, err = ParseClock(endTok)
		if err != nil {
			return 0, 0, fmt.Errorf("end time: %w", err)
		}
		if end <= start {
			end = fallback
		}
	}

	if end >= 24 {
		end = lastMinute
	}
	if end <= start {
		return 0, 0, fmt.Errorf("%w: %q", ErrPastMidnight, slot)
	}
	return start, end, nil
}

// splitSlot splits a slot on its range separator. Hyphen, en dash and em
// dash are accepted; an empty end means no explicit end was given.
func splitSlot(slot string) (startTok, endTok string, err error) {
	s := strings.NewReplacer("–", "-", "—", "-").Replace(slot)
	s = strings.TrimSpace(s)
	if s == "" {
		return "", "", ErrEmptySlot
	}

	parts := strings.Split(s, "-")
	switch len(parts) {
	case 1:
		return parts[0], "", nil
	case 2:
		startTok = strings.TrimSpace(parts[0])
		endTok = strings.TrimSpace(parts[1])
		if startTok == "" {
			return "", "", fmt.Errorf("%w: %q", ErrMalformedSlot, slot)
		}
		return startTok, endTok, nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrMalformedSlot, slot)
	}
}

// FormatHour converts a decimal hour to "HH:MM", clamped to the day.
func FormatHour(h float64) string {
	m := int(math.Round(h * 60))
	if m < 0 {
		m = 0
	}
	if m >= 24*60 {
		m = 24*60 - 1
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
