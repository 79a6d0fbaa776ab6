// Package app is the composition root for stride.
//
// # Overview
//
// Run wires configuration, preferences, logging, the workout schedule and the
// UI together, then blocks until the user quits or the context is cancelled.
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()     Read config.toml / config.yaml
//	       ├─────> setupLogging()    Route log to log_file via tea.LogToFile
//	       ├─────> prefs.Load()      Theme and last tab
//	       ├─────> schedule.Load()   Expand [[workouts]] and ics_file
//	       └─────> ui.Run()          Start TUI (blocks)
//
// # Logging
//
// The UI owns the terminal, so the standard logger is redirected to the
// configured log_file. Without one, log output is discarded.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Configuration file present but invalid
//   - Log file cannot be created
//   - Malformed -today value
//   - ICS file present but unreadable or unparsable
//
// Recoverable problems (logged, startup continues):
//   - Missing config, prefs or ICS file
//   - Individual workout rules or ICS events that fail to parse
//   - Preference writes that fail while the UI runs
//
// # Usage Example
//
//	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer cancel()
//
//	if err := app.Run(ctx, app.Options{Today: "2026-10-19"}); err != nil {
//		log.Fatalf("stride failed: %v", err)
//	}
package app
