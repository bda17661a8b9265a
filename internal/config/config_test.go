package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Layout.DefaultDurationMinutes != 30 {
		t.Errorf("expected default duration 30, got %d", cfg.Layout.DefaultDurationMinutes)
	}
	if cfg.Layout.AllStaffLabel != "All Staff" {
		t.Errorf("expected all staff label %q, got %q", "All Staff", cfg.Layout.AllStaffLabel)
	}
	if cfg.Geometry.RowHeightPerHour != 60 {
		t.Errorf("expected row height 60, got %v", cfg.Geometry.RowHeightPerHour)
	}
	if cfg.Geometry.GapPadding != 4 {
		t.Errorf("expected gap padding 4, got %v", cfg.Geometry.GapPadding)
	}
	if cfg.Calendar.WeekStart != "monday" {
		t.Errorf("expected week_start monday, got %s", cfg.Calendar.WeekStart)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected log level info, got %s", cfg.Log.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Should return defaults
	if cfg.Layout.DefaultDurationMinutes != 30 {
		t.Errorf("expected default duration, got %d", cfg.Layout.DefaultDurationMinutes)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[layout]
default_duration_minutes = 45
all_staff_label = "Everyone"

[geometry]
row_height_per_hour = 80
container_width = 400

[calendar]
week_start = "sunday"
timezone = "UTC"

[storage]
db_path = "/tmp/test.db"

[log]
level = "debug"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Layout.DefaultDurationMinutes != 45 {
		t.Errorf("expected duration 45, got %d", cfg.Layout.DefaultDurationMinutes)
	}
	if cfg.Layout.AllStaffLabel != "Everyone" {
		t.Errorf("expected all staff label Everyone, got %s", cfg.Layout.AllStaffLabel)
	}
	// Untouched keys keep defaults
	if cfg.Layout.UnknownStaffLabel != "Unknown Staff" {
		t.Errorf("expected default unknown staff label, got %s", cfg.Layout.UnknownStaffLabel)
	}
	if cfg.Geometry.RowHeightPerHour != 80 {
		t.Errorf("expected row height 80, got %v", cfg.Geometry.RowHeightPerHour)
	}
	if cfg.Geometry.LabelColumnWidth != 50 {
		t.Errorf("expected default label width 50, got %v", cfg.Geometry.LabelColumnWidth)
	}
	if cfg.FirstWeekday() != time.Sunday {
		t.Errorf("expected Sunday week start, got %v", cfg.FirstWeekday())
	}
	if cfg.Storage.DBPath != "/tmp/test.db" {
		t.Errorf("expected db_path /tmp/test.db, got %s", cfg.Storage.DBPath)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Log.Level)
	}
}

func TestLoadFrom_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")
	if err := os.WriteFile(configPath, []byte("[layout\nbroken"), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := LoadFrom(configPath); err == nil {
		t.Error("expected parse error for malformed file")
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[layout]
default_duration_minutes = 45

[calendar]
week_start = "sunday"

[storage]
db_path = "/tmp/test.db"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("DAYVIEW_DEFAULT_DURATION", "15")
	t.Setenv("DAYVIEW_LOG_LEVEL", "warn")
	t.Setenv("DAYVIEW_TIMEZONE", "Europe/Madrid")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Env should override file
	if cfg.Layout.DefaultDurationMinutes != 15 {
		t.Errorf("expected duration 15 from env, got %d", cfg.Layout.DefaultDurationMinutes)
	}
	// File value should be kept when no env override
	if cfg.Calendar.WeekStart != "sunday" {
		t.Errorf("expected week_start sunday from file, got %s", cfg.Calendar.WeekStart)
	}
	// Env should override default
	if cfg.Log.Level != "warn" {
		t.Errorf("expected log level warn from env, got %s", cfg.Log.Level)
	}
	loc, err := cfg.Location()
	if err != nil {
		t.Fatalf("Location() error: %v", err)
	}
	if loc.String() != "Europe/Madrid" {
		t.Errorf("expected Europe/Madrid, got %s", loc)
	}
}

func TestLoadFrom_EnvDurationNotANumber(t *testing.T) {
	t.Setenv("DAYVIEW_DEFAULT_DURATION", "half an hour")
	if _, err := LoadFrom("/nonexistent/path/config.toml"); err == nil {
		t.Error("expected error for non-numeric duration")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero duration", func(c *Config) { c.Layout.DefaultDurationMinutes = 0 }},
		{"day long duration", func(c *Config) { c.Layout.DefaultDurationMinutes = 24 * 60 }},
		{"blank wildcard", func(c *Config) { c.Layout.AllStaffLabel = "  " }},
		{"blank unknown staff", func(c *Config) { c.Layout.UnknownStaffLabel = "" }},
		{"wildcard equals unknown", func(c *Config) { c.Layout.UnknownStaffLabel = c.Layout.AllStaffLabel }},
		{"zero row height", func(c *Config) { c.Geometry.RowHeightPerHour = 0 }},
		{"zero container", func(c *Config) { c.Geometry.ContainerWidth = 0 }},
		{"negative gap", func(c *Config) { c.Geometry.GapPadding = -1 }},
		{"bad week start", func(c *Config) { c.Calendar.WeekStart = "wednesday" }},
		{"bad timezone", func(c *Config) { c.Calendar.Timezone = "Mars/Olympus" }},
		{"bad log level", func(c *Config) { c.Log.Level = "chatty" }},
		{"empty db path", func(c *Config) { c.Storage.DBPath = "" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLocation_DefaultsToLocal(t *testing.T) {
	loc, err := Default().Location()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc != time.Local {
		t.Errorf("expected time.Local, got %v", loc)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input string
		want  string
	}{
		{"~/test.db", filepath.Join(home, "test.db")},
		{"/absolute/path.db", "/absolute/path.db"},
		{"relative/path.db", "relative/path.db"},
		{"", ""},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := expandPath(tc.input)
			if got != tc.want {
				t.Errorf("expandPath(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.toml")

	cfg := Default()
	cfg.Layout.DefaultDurationMinutes = 20
	cfg.Geometry.ContainerWidth = 640
	cfg.Calendar.WeekStart = "sunday"
	cfg.Storage.DBPath = filepath.Join(tmpDir, "dayview.db")

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.Layout.DefaultDurationMinutes != 20 {
		t.Errorf("expected duration 20, got %d", loaded.Layout.DefaultDurationMinutes)
	}
	if loaded.Geometry.ContainerWidth != 640 {
		t.Errorf("expected container width 640, got %v", loaded.Geometry.ContainerWidth)
	}
	if loaded.Calendar.WeekStart != "sunday" {
		t.Errorf("expected week_start sunday, got %s", loaded.Calendar.WeekStart)
	}
	if loaded.Storage.DBPath != cfg.Storage.DBPath {
		t.Errorf("expected db_path %s, got %s", cfg.Storage.DBPath, loaded.Storage.DBPath)
	}
}
