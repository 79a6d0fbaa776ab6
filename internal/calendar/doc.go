// Package calendar implements the calendar engine behind stride's Home and
// Calendar screens.
//
// # Overview
//
// The engine owns two things:
//
//   - A Window of consecutive days used by the week strip. It starts as whole
//     weeks from two weeks before today to two weeks after and grows by
//     14-day blocks when the strip settles near either edge. It never shrinks.
//   - A ViewState: the selected day, the display Mode (week strip or month
//     grid), the month anchor for month mode and the header RangeLabel.
//
// MonthGrid is a pure function that lays a month out as whole weeks, padding
// with inactive days from the adjacent months.
//
// # Gestures
//
// Hosts forward pan gestures through PanStart/PanUpdate/PanEnd. The first axis
// whose translation passes the activation offset owns the sequence:
//
//	vertical:   height follows the drag between ClosedHeight and OpenHeight,
//	            then snaps to week or month on release
//	horizontal: in month mode the grid follows the drag and a swipe wider
//	            than a third of the page changes month; in week mode it pages
//	            the strip
//
// # Animation
//
// The engine never runs timers. It hands start and target values to an
// Animator and stores the settled value from the completion callback. When no
// Animator is configured every transition settles immediately, which is what
// the tests rely on.
//
// # Concurrency
//
// An Engine is owned by one goroutine. In stride that is the Bubble Tea update
// loop, so no locking is needed.
package calendar
