package tui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/appointment"
	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/config"
	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/db"
	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/snapshot"
)

// Wednesday 2025-01-15, 10:00 UTC.
var fixedNow = time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

func testModel(t *testing.T, copied *string) Model {
	t.Helper()
	cfg := config.Default()
	cfg.Calendar.Timezone = "UTC"
	return New(Options{
		Config: cfg,
		Now:    func() time.Time { return fixedNow },
		Copy: func(s string) error {
			if copied != nil {
				*copied = s
			}
			return nil
		},
	})
}

func interval(id, date, staff string, start, end float64) appointment.Interval {
	return appointment.Interval{ID: id, Title: "Appt " + id, StaffLabel: staff, Date: date, Start: start, End: end}
}

func loaded(t *testing.T, m Model) Model {
	t.Helper()
	snap := &snapshot.Snapshot{
		Version: 1,
		Records: 4,
		Intervals: []appointment.Interval{
			interval("a", "2025-01-15", "Maya", 9, 10),
			interval("b", "2025-01-15", "Jo", 9.5, 10.5),
			interval("c", "2025-01-16", "Maya", 14, 15),
		},
	}
	updated, _ := m.Update(snapshotLoadedMsg{snap: snap})
	return updated.(Model)
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "ctrl+d":
			msg = tea.KeyMsg{Type: tea.KeyCtrlD}
		case "ctrl+u":
			msg = tea.KeyMsg{Type: tea.KeyCtrlU}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func TestNew_AnchorsOnToday(t *testing.T) {
	m := testModel(t, nil)

	if got := m.nav.Selected(); got != "2025-01-15" {
		t.Errorf("selected = %q, want 2025-01-15", got)
	}
	if got := m.staffFilter(); got != "All Staff" {
		t.Errorf("staffFilter() = %q, want All Staff", got)
	}
	if m.loading {
		t.Error("model without a repository should not be loading")
	}
	if m.Init() != nil {
		t.Error("Init() without a repository should return nil")
	}
}

func TestUpdate_SnapshotLoaded(t *testing.T) {
	m := loaded(t, testModel(t, nil))

	want := []string{"All Staff", "Jo", "Maya"}
	if strings.Join(m.staff, ",") != strings.Join(want, ",") {
		t.Errorf("staff = %v, want %v", m.staff, want)
	}
	if m.dropped != 1 {
		t.Errorf("dropped = %d, want 1", m.dropped)
	}
	if !strings.Contains(m.statusMsg, "1 records") {
		t.Errorf("statusMsg = %q, want dropped count", m.statusMsg)
	}
	if n := len(m.dayLayout()); n != 2 {
		t.Errorf("len(dayLayout()) = %d, want 2", n)
	}
}

func TestUpdate_SnapshotKeepsStaffFilter(t *testing.T) {
	m := loaded(t, testModel(t, nil))
	m = press(t, m, "s", "s") // Maya
	if m.staffFilter() != "Maya" {
		t.Fatalf("staffFilter() = %q, want Maya", m.staffFilter())
	}

	snap := &snapshot.Snapshot{
		Version:   2,
		Intervals: []appointment.Interval{interval("z", "2025-01-15", "Maya", 11, 12)},
	}
	updated, _ := m.Update(snapshotLoadedMsg{snap: snap})
	m = updated.(Model)

	if m.staffFilter() != "Maya" {
		t.Errorf("staffFilter() after reload = %q, want Maya", m.staffFilter())
	}
	if n := len(m.dayLayout()); n != 1 {
		t.Errorf("len(dayLayout()) = %d, want 1", n)
	}
}

func TestUpdate_Error(t *testing.T) {
	m := testModel(t, nil)
	updated, _ := m.Update(errMsg{err: errors.New("disk on fire")})
	m = updated.(Model)

	if out := ansi.Strip(m.View()); !strings.Contains(out, "disk on fire") {
		t.Errorf("View() should show the error, got %q", out)
	}
}

func TestKeys_DayAndWeekNavigation(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want string
	}{
		{"next day", []string{"l"}, "2025-01-16"},
		{"prev day", []string{"h"}, "2025-01-14"},
		{"day stops at week end", []string{"l", "l", "l", "l", "l", "l"}, "2025-01-19"},
		{"next week", []string{"]"}, "2025-01-20"},
		{"prev week", []string{"["}, "2025-01-06"},
		{"back to today", []string{"]", "]", "t"}, "2025-01-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := press(t, testModel(t, nil), tt.keys...)
			if got := m.nav.Selected(); got != tt.want {
				t.Errorf("after %v selected = %q, want %q", tt.keys, got, tt.want)
			}
		})
	}
}

func TestKeys_StaffCycle(t *testing.T) {
	m := loaded(t, testModel(t, nil))

	m = press(t, m, "s")
	if m.staffFilter() != "Jo" {
		t.Errorf("after s, staff = %q, want Jo", m.staffFilter())
	}
	if n := len(m.dayLayout()); n != 1 {
		t.Errorf("Jo's day has %d appointments, want 1", n)
	}

	m = press(t, m, "s", "s")
	if m.staffFilter() != "All Staff" {
		t.Errorf("staff should wrap to All Staff, got %q", m.staffFilter())
	}

	m = press(t, m, "S")
	if m.staffFilter() != "Maya" {
		t.Errorf("after S, staff = %q, want Maya", m.staffFilter())
	}
}

func TestKeys_SelectAppointment(t *testing.T) {
	m := loaded(t, testModel(t, nil))

	if _, ok := m.selectedAppointment(); ok {
		t.Fatal("nothing should be selected initially")
	}

	m = press(t, m, "j")
	iv, ok := m.selectedAppointment()
	if !ok || iv.ID != "a" {
		t.Fatalf("after j, selected = %v, %v; want a", iv.ID, ok)
	}

	m = press(t, m, "j", "j")
	if iv, _ := m.selectedAppointment(); iv.ID != "a" {
		t.Errorf("selection should wrap, got %q", iv.ID)
	}

	m = press(t, m, "k")
	if iv, _ := m.selectedAppointment(); iv.ID != "b" {
		t.Errorf("after k, selected = %q, want b", iv.ID)
	}

	m = press(t, m, "l")
	if _, ok := m.selectedAppointment(); ok {
		t.Error("changing day should clear the selection")
	}
}

func TestKeys_Copy(t *testing.T) {
	var copied string
	m := loaded(t, testModel(t, &copied))

	m = press(t, m, "y")
	if !strings.HasPrefix(copied, "2025-01-15  All Staff\n") {
		t.Errorf("copied = %q", copied)
	}
	if !strings.Contains(copied, "[2/2]  Appt b (Jo)") {
		t.Errorf("copied text missing lane info: %q", copied)
	}
	if m.statusMsg != "Copied 2 appointments" {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}

	copied = ""
	m = press(t, m, "]", "y")
	if copied != "" {
		t.Errorf("empty day should not copy, got %q", copied)
	}
	if m.statusMsg != "No appointments to copy" {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}
}

func TestKeys_CopyFailure(t *testing.T) {
	m := loaded(t, testModel(t, nil))
	m.copy = func(string) error { return errors.New("no clipboard") }

	m = press(t, m, "y")
	if !strings.Contains(m.statusMsg, "no clipboard") {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}
}

func TestKeys_ZoomAndScroll(t *testing.T) {
	m := loaded(t, testModel(t, nil))
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 12})
	m = updated.(Model)

	if m.slotMinutes() != 30 {
		t.Fatalf("default slotMinutes() = %d, want 30", m.slotMinutes())
	}
	m = press(t, m, "z")
	if m.slotMinutes() != 15 {
		t.Errorf("after z, slotMinutes() = %d, want 15", m.slotMinutes())
	}
	m = press(t, m, "z")
	if m.slotMinutes() != 60 {
		t.Errorf("zoom should wrap to 60, got %d", m.slotMinutes())
	}

	m = press(t, m, "ctrl+d")
	if m.scroll == 0 {
		t.Error("ctrl+d should scroll down")
	}
	m = press(t, m, "ctrl+u", "ctrl+u")
	if m.scroll != 0 {
		t.Errorf("scroll = %d, want 0", m.scroll)
	}
}

func TestKeys_Quit(t *testing.T) {
	m := testModel(t, nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestKeys_ReloadPicksUpStaffNames(t *testing.T) {
	ctx := context.Background()
	repo, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test repo: %v", err)
	}
	t.Cleanup(func() {
		_ = repo.Close()
	})
	data := `[{"id":"a","date":"2025-01-15","slot":"9:00 AM","staff":{"id":"s1"}}]`
	if _, err := snapshot.Import(ctx, repo, []byte(data), nil); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	cfg := config.Default()
	cfg.Calendar.Timezone = "UTC"
	m := New(Options{Repo: repo, Config: cfg, Now: func() time.Time { return fixedNow }})
	updated, _ := m.Update(m.Init()())
	m = updated.(Model)
	if got := m.dayLayout(); len(got) != 1 || got[0].StaffLabel != "s1" {
		t.Fatalf("before rename dayLayout() = %+v, want one interval for s1", got)
	}

	if err := repo.SaveStaff(ctx, appointment.StaffDirectory{"s1": "Maya"}); err != nil {
		t.Fatalf("SaveStaff() error = %v", err)
	}
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if cmd == nil {
		t.Fatal("r should return a load command")
	}
	updated, _ = updated.(Model).Update(cmd())
	m = updated.(Model)

	if got := m.dayLayout(); len(got) != 1 || got[0].StaffLabel != "Maya" {
		t.Errorf("after reload dayLayout() = %+v, want one interval for Maya", got)
	}
	if got := strings.Join(m.staff, ","); got != "All Staff,Maya" {
		t.Errorf("staff choices = %q, want All Staff,Maya", got)
	}
	if !strings.HasPrefix(m.statusMsg, "Reloaded snapshot 2") {
		t.Errorf("statusMsg = %q, want reload of snapshot 2", m.statusMsg)
	}
	if m.loading || m.reloading {
		t.Error("reload should finish loading")
	}
}

func TestKeys_ReloadWithoutRepo(t *testing.T) {
	m := loaded(t, testModel(t, nil))
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if cmd != nil {
		t.Error("r without a repository should not load")
	}
	if updated.(Model).loading {
		t.Error("r without a repository should not mark the model loading")
	}
}

func TestView(t *testing.T) {
	m := loaded(t, testModel(t, nil))
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	m = updated.(Model)

	out := ansi.Strip(m.View())
	for _, want := range []string{"Wed 15 Jan 2025", "All Staff", "2 appointments", "Appt a", "Appt b", "Thu 16 ·1"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	m = press(t, m, "]")
	out = ansi.Strip(m.View())
	if !strings.Contains(out, "No appointments scheduled") {
		t.Errorf("empty week day should show the empty state, got %q", out)
	}
}

func TestView_SelectedStatus(t *testing.T) {
	m := press(t, loaded(t, testModel(t, nil)), "j")
	m.statusMsg = ""

	out := ansi.Strip(m.statusLine())
	if out != "09:00-10:00  Appt a  Maya  lane 1/2" {
		t.Errorf("statusLine() = %q", out)
	}
}
