package calendar

import (
	"math"
	"time"
)

// Mode is the display state of the calendar widget.
type Mode int

const (
	ModeWeek Mode = iota
	ModeMonth
)

func (m Mode) String() string {
	if m == ModeMonth {
		return "month"
	}
	return "week"
}

// RangeLabel holds the month labels of the first and last visible day.
type RangeLabel struct {
	Start string
	End   string
}

// Single reports whether the visible days fall in one month.
func (l RangeLabel) Single() bool { return l.Start == l.End }

func (l RangeLabel) String() string {
	if l.Single() {
		return l.Start
	}
	return l.Start + " - " + l.End
}

// ViewState is the interaction state rendered by the host.
type ViewState struct {
	Selected     Date
	HasSelection bool
	Mode         Mode
	Current      Date // month anchor for month mode
	Label        RangeLabel
}

// Options configure an Engine. Zero values use the defaults below.
type Options struct {
	WeekStartsOn     time.Weekday
	InitialSelected  *Date
	Mode             Mode
	Threshold        float64
	ClosedHeight     float64
	OpenHeight       float64
	ActivationOffset float64
	Width            float64
	Spring           Transition
	SlideDuration    time.Duration
	Animator         Animator
	OnSelect         func(Date)
}

const (
	DefaultThreshold        = 50
	DefaultClosedHeight     = 50
	DefaultOpenHeight       = 300
	DefaultActivationOffset = 10
	DefaultWidth            = 350
	DefaultSlideDuration    = 180 * time.Millisecond
)

// DefaultSpring is the damped spring used for height and snap-back.
var DefaultSpring = Spring(0.7, 6)

func (o Options) withDefaults() Options {
	if o.Threshold <= 0 {
		o.Threshold = DefaultThreshold
	}
	if o.ClosedHeight <= 0 {
		o.ClosedHeight = DefaultClosedHeight
	}
	if o.OpenHeight <= o.ClosedHeight {
		o.OpenHeight = math.Max(DefaultOpenHeight, o.ClosedHeight*6)
	}
	if o.ActivationOffset <= 0 {
		o.ActivationOffset = DefaultActivationOffset
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Spring == (Transition{}) {
		o.Spring = DefaultSpring
	}
	if o.SlideDuration <= 0 {
		o.SlideDuration = DefaultSlideDuration
	}
	if o.Animator == nil {
		o.Animator = instantAnimator{}
	}
	return o
}

// Engine owns the calendar's date window and view state machine. It is not
// safe for concurrent use; the host delivers events from a single goroutine.
type Engine struct {
	opts   Options
	today  Date
	state  ViewState
	window Window
	cursor int

	height       float64
	offset       float64
	heightOrigin float64
	offsetOrigin float64
	pendingMonth int // month step committed when the slide-out settles

	pan panState
}

// New initializes the engine around today. The window spans whole weeks from
// two weeks before today to two weeks after, and the visible page is the week
// containing today.
func New(today Date, opts Options) *Engine {
	opts = opts.withDefaults()
	e := &Engine{
		opts:   opts,
		today:  today,
		window: NewWindow(today, opts.WeekStartsOn),
		state: ViewState{
			Mode:    opts.Mode,
			Current: today,
		},
	}
	if opts.InitialSelected != nil {
		e.state.Selected = *opts.InitialSelected
		e.state.HasSelection = true
	}
	e.height = e.heightFor(opts.Mode)
	e.heightOrigin = e.height
	idx, _ := e.window.IndexOf(StartOfWeek(today, opts.WeekStartsOn))
	e.cursor = idx
	e.UpdateVisibleRange(idx)
	return e
}

// State returns the current view state.
func (e *Engine) State() ViewState { return e.state }

// Today returns the engine's reference day.
func (e *Engine) Today() Date { return e.today }

// SetToday moves the reference day, e.g. after midnight.
func (e *Engine) SetToday(d Date) { e.today = d }

// Cursor returns the window index of the first visible day.
func (e *Engine) Cursor() int { return e.cursor }

// Window returns a copy of the date window.
func (e *Engine) Window() Window {
	return Window{dates: e.window.Dates()}
}

// Height returns the settled or dragged calendar height.
func (e *Engine) Height() float64 { return e.height }

// Offset returns the settled or dragged horizontal month offset.
func (e *Engine) Offset() float64 { return e.offset }

// Options returns the effective options.
func (e *Engine) Options() Options { return e.opts }

// SetWidth updates the page width used for swipe thresholds.
func (e *Engine) SetWidth(w float64) {
	if w > 0 {
		e.opts.Width = w
	}
}

// MonthGrid returns the grid for the current month anchor.
func (e *Engine) MonthGrid() []DayCell {
	return MonthGrid(e.state.Current, e.opts.WeekStartsOn)
}

// Page returns the visible week-strip page.
func (e *Engine) Page() []DayCell {
	return WeekCells(e.window.Slice(e.cursor, DaysPerPage))
}

// Rows returns n consecutive week pages starting at the cursor. Pages past
// the window end are omitted.
func (e *Engine) Rows(n int) [][]DayCell {
	rows := make([][]DayCell, 0, n)
	for i := 0; i < n; i++ {
		dates := e.window.Slice(e.cursor+i*DaysPerPage, DaysPerPage)
		if len(dates) < DaysPerPage {
			break
		}
		rows = append(rows, WeekCells(dates))
	}
	return rows
}

// Select marks cell's day as selected. Padding cells are ignored.
func (e *Engine) Select(cell DayCell) bool {
	if !cell.Active {
		return false
	}
	e.state.Selected = cell.Date
	e.state.HasSelection = true
	if e.opts.OnSelect != nil {
		e.opts.OnSelect(cell.Date)
	}
	return true
}

// SelectDate selects d if it is selectable in the current mode: any day in
// week mode, only days of the anchored month in month mode.
func (e *Engine) SelectDate(d Date) bool {
	active := e.state.Mode == ModeWeek || d.SameMonth(e.state.Current)
	return e.Select(DayCell{Date: d, Number: d.Day, Active: active})
}

// ClearSelection drops the selected day.
func (e *Engine) ClearSelection() {
	e.state.Selected = Date{}
	e.state.HasSelection = false
}

// AdvanceMonth anchors the month view on day 1 of the adjacent month.
func (e *Engine) AdvanceMonth(dir int) Date {
	e.state.Current = e.state.Current.FirstOfMonth(sign(dir))
	return e.state.Current
}

// ExtendWindow grows the window by ExtendDays on one edge. Extending backward
// shifts the cursor so it keeps pointing at the same day.
func (e *Engine) ExtendWindow(dir Direction) int {
	n := e.window.Extend(dir)
	if dir == Backward {
		e.cursor += n
	}
	return n
}

// ScrollSettled records that the strip came to rest with index as the first
// visible day. When that is within the first page the window grows backward
// and the returned index, which the host must scroll to without animation,
// points at the same day in the extended window.
func (e *Engine) ScrollSettled(index int) int {
	e.cursor = clampInt(index, 0, e.window.Len()-DaysPerPage)
	e.UpdateVisibleRange(e.cursor)
	if e.cursor < DaysPerPage {
		e.ExtendWindow(Backward)
	}
	return e.cursor
}

// ScrollReachedEnd grows the window forward.
func (e *Engine) ScrollReachedEnd() {
	e.ExtendWindow(Forward)
}

// PageWeek moves the strip one page in dir and settles it, extending the
// window at either edge as needed.
func (e *Engine) PageWeek(dir int) int {
	e.ScrollSettled(e.cursor + sign(dir)*DaysPerPage)
	if e.cursor+DaysPerPage >= e.window.Len() {
		e.ScrollReachedEnd()
	}
	return e.cursor
}

// Reveal scrolls the strip to the page containing d, growing the window as
// far as needed.
func (e *Engine) Reveal(d Date) int {
	for d.Before(e.window.First()) {
		e.ExtendWindow(Backward)
	}
	for d.After(e.window.Last()) {
		e.ExtendWindow(Forward)
	}
	idx, _ := e.window.IndexOf(d)
	e.ScrollSettled(idx - idx%DaysPerPage)
	if e.cursor+DaysPerPage >= e.window.Len() {
		e.ScrollReachedEnd()
	}
	return e.cursor
}

// UpdateVisibleRange derives the header label from the days at startIndex and
// startIndex+6.
func (e *Engine) UpdateVisibleRange(startIndex int) RangeLabel {
	if e.window.Len() == 0 {
		return e.state.Label
	}
	start := clampInt(startIndex, 0, e.window.Len()-1)
	end := clampInt(start+DaysPerPage-1, 0, e.window.Len()-1)
	e.state.Label = RangeLabel{
		Start: e.window.At(start).MonthLabel(),
		End:   e.window.At(end).MonthLabel(),
	}
	return e.state.Label
}

// SetMode animates to m as if a drag had resolved to it.
func (e *Engine) SetMode(m Mode) {
	e.interrupt(ChannelHeight)
	e.settleMode(m)
}

// BeginVerticalDrag takes ownership of the height.
func (e *Engine) BeginVerticalDrag() {
	e.interrupt(ChannelHeight)
	e.heightOrigin = e.height
}

// UpdateVerticalDrag follows the finger, clamped to the closed/open bounds.
func (e *Engine) UpdateVerticalDrag(dy float64) float64 {
	e.height = clampFloat(e.heightOrigin+dy, e.opts.ClosedHeight, e.opts.OpenHeight)
	return e.height
}

// EndVerticalDrag resolves the drag to week or month mode and springs the
// height to the matching end. From month mode the calendar stays open unless
// the upward travel reaches the threshold; from week mode it opens only when
// the downward travel exceeds it.
func (e *Engine) EndVerticalDrag(dy float64) Mode {
	e.UpdateVerticalDrag(dy)
	var expand bool
	if e.state.Mode == ModeMonth {
		expand = -dy < e.opts.Threshold
	} else {
		expand = dy > e.opts.Threshold
	}
	target := ModeWeek
	if expand {
		target = ModeMonth
	}
	e.settleMode(target)
	return target
}

func (e *Engine) settleMode(target Mode) {
	prev := e.state.Mode
	e.state.Mode = target
	switch {
	case prev == ModeWeek && target == ModeMonth:
		e.state.Current = e.monthAnchor()
	case prev == ModeMonth && target == ModeWeek:
		e.revealAnchor()
	}
	to := e.heightFor(target)
	e.opts.Animator.Animate(ChannelHeight, e.height, to, e.opts.Spring, func(final float64) {
		e.height = final
	})
}

// monthAnchor picks the month to open: the selected day when it is on the
// visible page, otherwise the first visible day.
func (e *Engine) monthAnchor() Date {
	page := e.window.Slice(e.cursor, DaysPerPage)
	if len(page) == 0 {
		return e.state.Current
	}
	if e.state.HasSelection {
		for _, d := range page {
			if d == e.state.Selected {
				return d
			}
		}
	}
	return page[0]
}

// revealAnchor brings the strip to the selected day when it lies in the
// anchored month, otherwise to the month's first week.
func (e *Engine) revealAnchor() {
	target := e.state.Current.FirstOfMonth(0)
	if e.state.HasSelection && e.state.Selected.SameMonth(e.state.Current) {
		target = e.state.Selected
	}
	e.Reveal(target)
}

// BeginHorizontalDrag takes ownership of the month offset. It reports false
// outside month mode.
func (e *Engine) BeginHorizontalDrag() bool {
	if e.state.Mode != ModeMonth {
		return false
	}
	e.interrupt(ChannelOffset)
	e.offsetOrigin = e.offset
	return true
}

// UpdateHorizontalDrag moves the month view with the finger. Nothing is
// committed until the drag ends.
func (e *Engine) UpdateHorizontalDrag(dx float64) float64 {
	if e.state.Mode != ModeMonth {
		return e.offset
	}
	e.offset = e.offsetOrigin + dx
	return e.offset
}

// EndHorizontalDrag commits a month change when the swipe covers more than a
// third of the width, sliding the old month out before the new one appears.
// Shorter swipes spring back. It reports whether a change was committed.
func (e *Engine) EndHorizontalDrag(dx float64) bool {
	if e.state.Mode != ModeMonth {
		return false
	}
	e.UpdateHorizontalDrag(dx)
	if math.Abs(dx) > e.opts.Width/3 {
		dir := 1
		if dx > 0 {
			dir = -1
		}
		e.slideOut(dir)
		return true
	}
	e.opts.Animator.Animate(ChannelOffset, e.offset, 0, e.opts.Spring, func(final float64) {
		e.offset = final
	})
	return false
}

// SlideMonth plays the swipe choreography for dir without a drag.
func (e *Engine) SlideMonth(dir int) {
	if e.state.Mode != ModeMonth || dir == 0 {
		return
	}
	e.interrupt(ChannelOffset)
	e.slideOut(sign(dir))
}

// FinishSlide cuts a month slide in flight short and commits its month
// change. It reports false when no slide was running.
func (e *Engine) FinishSlide() bool {
	if e.pendingMonth == 0 {
		return false
	}
	e.interrupt(ChannelOffset)
	return true
}

func (e *Engine) slideOut(dir int) {
	e.pendingMonth = dir
	to := -float64(dir) * e.opts.Width
	e.opts.Animator.Animate(ChannelOffset, e.offset, to, Timing(e.opts.SlideDuration), func(float64) {
		e.commitSlide()
	})
}

func (e *Engine) commitSlide() {
	if e.pendingMonth != 0 {
		e.AdvanceMonth(e.pendingMonth)
		e.pendingMonth = 0
	}
	e.offset = 0
}

// interrupt stops ch and adopts its in-flight value. An interrupted slide-out
// commits its month change at once.
func (e *Engine) interrupt(ch Channel) {
	v, ok := e.opts.Animator.Stop(ch)
	switch ch {
	case ChannelHeight:
		if ok {
			e.height = v
		}
	case ChannelOffset:
		if e.pendingMonth != 0 {
			e.commitSlide()
			return
		}
		if ok {
			e.offset = v
		}
	}
}

func (e *Engine) heightFor(m Mode) float64 {
	if m == ModeMonth {
		return e.opts.OpenHeight
	}
	return e.opts.ClosedHeight
}

// Snapshot is a copy of everything the host needs to render one frame.
type Snapshot struct {
	State        ViewState
	Today        Date
	WeekStartsOn time.Weekday
	Window       []Date
	Cursor       int
	Page         []DayCell
	Grid         []DayCell
	Height       float64
	Offset       float64
	ClosedHeight float64
	OpenHeight   float64
	Width        float64
	Dragging     Axis
}

// Snapshot returns a copy of the current state. Mutating it does not affect
// the engine.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		State:        e.state,
		Today:        e.today,
		WeekStartsOn: e.opts.WeekStartsOn,
		Window:       e.window.Dates(),
		Cursor:       e.cursor,
		Page:         e.Page(),
		Grid:         e.MonthGrid(),
		Height:       e.height,
		Offset:       e.offset,
		ClosedHeight: e.opts.ClosedHeight,
		OpenHeight:   e.opts.OpenHeight,
		Width:        e.opts.Width,
		Dragging:     e.pan.axis,
	}
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
