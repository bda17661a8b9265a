package integration

import (
	"testing"
	"time"

	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/dateutil"
	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/layout"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := dateutil.ParseDate(s, time.UTC)
	if err != nil {
		t.Fatalf("failed to parse date %q: %v", s, err)
	}
	return d
}

// 1736899200000 is 2025-01-15 00:00 UTC.
const midnightUTC = `[{"id":"e","appointmentTime":1736899200000,"customerName":"Ana"}]`

func TestEpochRecordsFollowConfiguredTimezone(t *testing.T) {
	tests := []struct {
		tz    string
		date  string
		start float64
	}{
		{"UTC", "2025-01-15", 0},
		{"America/Los_Angeles", "2025-01-14", 16},
		{"Asia/Tokyo", "2025-01-15", 9},
		{"Asia/Kolkata", "2025-01-15", 5.5},
	}

	for _, tc := range tests {
		t.Run(tc.tz, func(t *testing.T) {
			repo := openRepo(t)
			cfg := utcConfig()
			cfg.Calendar.Timezone = tc.tz

			snap := load(t, repo, cfg, midnightUTC)
			laid := layout.Build(snap.Intervals, tc.date, "All Staff", "All Staff")
			if len(laid) != 1 {
				t.Fatalf("got %d appointments on %s, want 1", len(laid), tc.date)
			}
			if laid[0].Start != tc.start {
				t.Errorf("Start = %v, want %v", laid[0].Start, tc.start)
			}
			if laid[0].End != tc.start+0.5 {
				t.Errorf("End = %v, want %v", laid[0].End, tc.start+0.5)
			}
		})
	}
}

func TestSlotRecordsIgnoreTimezone(t *testing.T) {
	for _, tz := range []string{"UTC", "Pacific/Auckland", "America/New_York"} {
		t.Run(tz, func(t *testing.T) {
			repo := openRepo(t)
			cfg := utcConfig()
			cfg.Calendar.Timezone = tz

			snap := load(t, repo, cfg, `[{"id":"s","date":"2025-01-15","slot":"9:00 AM - 9:45 AM"}]`)
			laid := layout.Build(snap.Intervals, "2025-01-15", "All Staff", "All Staff")
			if len(laid) != 1 || laid[0].Start != 9 || laid[0].End != 9.75 {
				t.Errorf("laid out = %+v, want 09:00-09:45 on 2025-01-15", laid)
			}
		})
	}
}
