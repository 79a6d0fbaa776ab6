// Package ui provides stride's terminal user interface.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program with four tabs: HOME, CALENDAR, LIBRARY and
// MY PAGE. Only the first two carry logic; each hosts its own
// calendar.Engine paired with a motion.Driver that animates it.
//
//   - HOME: an expandable calendar. Closed it shows one week of the date
//     strip; dragged open it grows row by row into the month grid. The
//     workouts planned for the selected day (or today) are listed below.
//   - CALENDAR: a month grid with weekend coloring. Horizontal drags and
//     the < > keys slide to the adjacent month.
//   - LIBRARY and MY PAGE: placeholders.
//
// # Package Structure
//
//   - ui.go: Model, Update loop, gesture and keyboard routing, Run
//   - view.go: rendering of the tabs' content and footer
//   - layout.go: screen geometry, hit-testing and offset clipping
//   - tabs.go: tab bar rendering and tab hit-testing
//   - keys.go: key bindings (bubbles/key)
//   - help.go: help overlay
//   - theme.go: color themes (Nightfox, Kanagawa, Slate)
//
// # Gestures
//
// Mouse input stands in for touch. A left press on the calendar starts a pan;
// motion reports the translation since the press, converted from cells to
// engine units with the configured row_units and column_units; release ends
// it. The engine decides which axis owns the gesture. A release that never
// claimed an axis is a tap and selects the day under the pointer.
//
// On the CALENDAR tab only the horizontal recognizer exists, so presses go
// straight to BeginHorizontalDrag.
//
// # Event Flow
//
//  1. Run() starts the program with the alternate screen and cell-motion
//     mouse reporting
//  2. Keys and mouse events mutate the engines
//  3. When a driver has running animations a 60 FPS frame tick steps it
//     until every channel settles
//  4. A minute tick moves "today" forward after midnight
//  5. View() reads interpolated heights and offsets straight from the
//     drivers, so frames render mid-animation positions
//
// # Key Bindings
//
//   - ←/→ or </>: Previous/next week (week mode) or month (month mode)
//   - ↑/↓: Collapse to week / expand to month (HOME)
//   - h/l: Select previous/next day
//   - t: Select today
//   - tab/shift+tab, 1-4: Switch tabs
//   - T: Cycle theme
//   - ?: Toggle help
//   - q or Ctrl+C: Quit
//
// Theme and tab changes are written to the preferences file as they happen.
package ui
