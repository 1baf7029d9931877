package game

import "time"

// Config holds frontend configuration
type Config struct {
	// ScreenWidth is the logical canvas width in pixels
	ScreenWidth int

	// ScreenHeight is the logical canvas height in pixels
	ScreenHeight int

	// Title is the window title
	Title string

	// StartLevel is the catalog index the session opens on
	StartLevel int

	// DBPath is the SQLite file holding progress; empty or ":memory:" keeps it in memory
	DBPath string

	// ShowSamples starts with the floor sample overlay enabled
	ShowSamples bool

	// ProfileDir receives CPU profiles of slow update ticks; empty disables profiling
	ProfileDir string

	// SlowTick is the update duration that triggers a profile
	SlowTick time.Duration
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		ScreenWidth:  800,
		ScreenHeight: 600,
		Title:        "Museum Guard",
		StartLevel:   0,
		DBPath:       "data/museum_guard.db",
		ShowSamples:  false,
		SlowTick:     time.Second / 60,
	}
}

// InMemory reports whether progress should not touch the disk
func (c Config) InMemory() bool {
	return c.DBPath == "" || c.DBPath == ":memory:"
}
