// Package config loads stride's configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/stride/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// Paths ending in .yaml or .yml are decoded with yaml.v3; everything else is
// TOML. Both formats share the same keys.
//
// # Example
//
//	week_starts_on = "monday"
//	initial_selected = "2026-10-21"
//	log_file = "~/.local/state/stride/stride.log"
//	ics_file = "~/training.ics"
//
//	[gesture]
//	threshold = 50.0
//	closed_height = 50.0
//	open_height = 300.0
//	activation_offset = 10.0
//	row_units = 10.0
//	column_units = 10.0
//	damping = 0.7
//	frequency = 6.0
//
//	[[workouts]]
//	name = "Long run"
//	rrule = "FREQ=WEEKLY;BYDAY=SU"
//	start = "2026-09-06"
//
// The gesture section is expressed in engine units. row_units and
// column_units convert terminal cells into those units so mouse drags map
// onto the same thresholds a touch screen would use.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, decode failures ("parse config: ..."), unknown weekday
// names, malformed dates and an open_height that does not exceed
// closed_height. Workout rules are only checked for date syntax here; the
// schedule package validates the RRULE itself and skips bad entries.
package config
