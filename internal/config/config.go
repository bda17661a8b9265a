// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap/zapcore"

	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/dateutil"
)

// Config holds the application configuration.
type Config struct {
	Layout   LayoutConfig   `toml:"layout"`
	Geometry GeometryConfig `toml:"geometry"`
	Calendar CalendarConfig `toml:"calendar"`
	Storage  StorageConfig  `toml:"storage"`
	Log      LogConfig      `toml:"log"`
}

// LayoutConfig holds normalization fallbacks and the staff filter wildcard.
type LayoutConfig struct {
	DefaultDurationMinutes int    `toml:"default_duration_minutes"`
	AllStaffLabel          string `toml:"all_staff_label"`     // wildcard for the staff filter
	UnknownStaffLabel      string `toml:"unknown_staff_label"` // staff could not be resolved
	UntitledLabel          string `toml:"untitled_label"`      // no service or customer name
}

// GeometryConfig holds the day view measurements handed to renderers.
type GeometryConfig struct {
	RowHeightPerHour float64 `toml:"row_height_per_hour"`
	LabelColumnWidth float64 `toml:"label_column_width"`
	ContainerWidth   float64 `toml:"container_width"`
	GapPadding       float64 `toml:"gap_padding"`
}

// CalendarConfig holds calendar settings.
type CalendarConfig struct {
	WeekStart string `toml:"week_start"` // "monday" or "sunday"
	Timezone  string `toml:"timezone"`   // IANA name, empty means local
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
	File  string `toml:"file"`  // empty logs to stderr
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Layout: LayoutConfig{
			DefaultDurationMinutes: 30,
			AllStaffLabel:          "All Staff",
			UnknownStaffLabel:      "Unknown Staff",
			UntitledLabel:          "Untitled",
		},
		Geometry: GeometryConfig{
			RowHeightPerHour: 60,
			LabelColumnWidth: 50,
			ContainerWidth:   300,
			GapPadding:       4,
		},
		Calendar: CalendarConfig{
			WeekStart: "monday",
			Timezone:  "",
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "dayview.db"
	}
	return filepath.Join(home, ".local", "share", "dayview", "dayview.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "dayview", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Log.File = expandPath(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("DAYVIEW_DEFAULT_DURATION"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("DAYVIEW_DEFAULT_DURATION: %w", err)
		}
		cfg.Layout.DefaultDurationMinutes = n
	}
	if v := os.Getenv("DAYVIEW_ALL_STAFF_LABEL"); v != "" {
		cfg.Layout.AllStaffLabel = v
	}
	if v := os.Getenv("DAYVIEW_WEEK_START"); v != "" {
		cfg.Calendar.WeekStart = v
	}
	if v := os.Getenv("DAYVIEW_TIMEZONE"); v != "" {
		cfg.Calendar.Timezone = v
	}
	if v := os.Getenv("DAYVIEW_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("DAYVIEW_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("DAYVIEW_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Layout.DefaultDurationMinutes <= 0 {
		return errors.New("default_duration_minutes must be positive")
	}
	if c.Layout.DefaultDurationMinutes >= 24*60 {
		return errors.New("default_duration_minutes must be shorter than a day")
	}
	if strings.TrimSpace(c.Layout.AllStaffLabel) == "" {
		return errors.New("all_staff_label must be set")
	}
	if strings.TrimSpace(c.Layout.UnknownStaffLabel) == "" {
		return errors.New("unknown_staff_label must be set")
	}
	if c.Layout.AllStaffLabel == c.Layout.UnknownStaffLabel {
		return errors.New("all_staff_label and unknown_staff_label must differ")
	}

	if c.Geometry.RowHeightPerHour <= 0 {
		return errors.New("row_height_per_hour must be positive")
	}
	if c.Geometry.ContainerWidth <= 0 {
		return errors.New("container_width must be positive")
	}
	if c.Geometry.LabelColumnWidth < 0 || c.Geometry.GapPadding < 0 {
		return errors.New("label_column_width and gap_padding cannot be negative")
	}

	if _, err := dateutil.ParseWeekStart(c.Calendar.WeekStart); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

// Location returns the configured timezone, time.Local when unset.
func (c *Config) Location() (*time.Location, error) {
	if c.Calendar.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Calendar.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Calendar.Timezone, err)
	}
	return loc, nil
}

// FirstWeekday returns the configured first day of the week.
func (c *Config) FirstWeekday() time.Weekday {
	wd, _ := dateutil.ParseWeekStart(c.Calendar.WeekStart)
	return wd
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
