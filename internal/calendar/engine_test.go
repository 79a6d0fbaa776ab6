package calendar

import (
	"testing"
	"time"
)

type pendingAnimation struct {
	from, to float64
	t        Transition
	done     func(float64)
}

// manualAnimator holds animations until the test settles them.
type manualAnimator struct {
	running map[Channel]pendingAnimation
	current map[Channel]float64
}

func newManualAnimator() *manualAnimator {
	return &manualAnimator{
		running: make(map[Channel]pendingAnimation),
		current: make(map[Channel]float64),
	}
}

func (a *manualAnimator) Animate(ch Channel, from, to float64, t Transition, done func(float64)) {
	a.running[ch] = pendingAnimation{from: from, to: to, t: t, done: done}
	a.current[ch] = from
}

func (a *manualAnimator) Stop(ch Channel) (float64, bool) {
	if _, ok := a.running[ch]; !ok {
		return 0, false
	}
	delete(a.running, ch)
	return a.current[ch], true
}

func (a *manualAnimator) settle(t *testing.T, ch Channel) {
	t.Helper()
	anim, ok := a.running[ch]
	if !ok {
		t.Fatalf("no %v animation running", ch)
	}
	delete(a.running, ch)
	anim.done(anim.to)
}

func TestNew_InitialState(t *testing.T) {
	sel := Date{2026, time.October, 21}
	e := New(monday, Options{InitialSelected: &sel})

	st := e.State()
	if st.Mode != ModeWeek {
		t.Fatalf("Mode = %v, want week", st.Mode)
	}
	if st.Current != monday {
		t.Fatalf("Current = %v, want %v", st.Current, monday)
	}
	if !st.HasSelection || st.Selected != sel {
		t.Fatalf("Selected = %v (%v), want %v", st.Selected, st.HasSelection, sel)
	}
	if !st.Label.Single() || st.Label.String() != "2026 October" {
		t.Fatalf("Label = %q, want single 2026 October", st.Label.String())
	}
	if e.Cursor() != 14 {
		t.Fatalf("Cursor = %d, want 14", e.Cursor())
	}
	page := e.Page()
	if page[0].Date != (Date{2026, time.October, 18}) || page[6].Date != (Date{2026, time.October, 24}) {
		t.Fatalf("page = %v .. %v", page[0].Date, page[6].Date)
	}
	if e.Height() != DefaultClosedHeight {
		t.Fatalf("Height = %v, want %v", e.Height(), DefaultClosedHeight)
	}
}

func TestSelect_IgnoresInactiveCells(t *testing.T) {
	var notified []Date
	e := New(monday, Options{Mode: ModeMonth, OnSelect: func(d Date) { notified = append(notified, d) }})

	grid := e.MonthGrid()
	if grid[0].Active {
		t.Fatalf("October 2026 grid should start with padding")
	}
	if e.Select(grid[0]) {
		t.Fatalf("Select(inactive) = true, want false")
	}
	if e.State().HasSelection {
		t.Fatalf("inactive tap changed the selection")
	}
	if len(notified) != 0 {
		t.Fatalf("OnSelect fired for inactive cell")
	}

	var active DayCell
	for _, c := range grid {
		if c.Active && c.Number == 9 {
			active = c
		}
	}
	if !e.Select(active) {
		t.Fatalf("Select(active) = false")
	}
	want := Date{2026, time.October, 9}
	if st := e.State(); st.Selected != want {
		t.Fatalf("Selected = %v, want %v", st.Selected, want)
	}
	if len(notified) != 1 || notified[0] != want {
		t.Fatalf("OnSelect calls = %v, want [%v]", notified, want)
	}
}

func TestSelectDate_MonthModeOnlyAnchoredMonth(t *testing.T) {
	e := New(monday, Options{Mode: ModeMonth})
	if e.SelectDate(Date{2026, time.November, 2}) {
		t.Fatalf("SelectDate outside anchored month should be ignored")
	}
	if !e.SelectDate(Date{2026, time.October, 2}) {
		t.Fatalf("SelectDate inside anchored month should select")
	}

	w := New(monday, Options{})
	if !w.SelectDate(Date{2026, time.November, 2}) {
		t.Fatalf("week mode should select any day")
	}
}

func TestAdvanceMonth_AnchorsOnFirstDay(t *testing.T) {
	e := New(Date{2026, time.January, 31}, Options{Mode: ModeMonth})

	if got, want := e.AdvanceMonth(1), (Date{2026, time.February, 1}); got != want {
		t.Fatalf("AdvanceMonth(+1) = %v, want %v", got, want)
	}
	if got, want := e.AdvanceMonth(-1), (Date{2026, time.January, 1}); got != want {
		t.Fatalf("AdvanceMonth(-1) = %v, want %v", got, want)
	}
	if got, want := e.AdvanceMonth(-1), (Date{2025, time.December, 1}); got != want {
		t.Fatalf("AdvanceMonth(-1) across year = %v, want %v", got, want)
	}
}

func TestExtendWindow_BackwardKeepsCursorOnSameDay(t *testing.T) {
	e := New(monday, Options{})
	before := e.Window().At(e.Cursor())

	e.ExtendWindow(Backward)
	if got := e.Window().At(e.Cursor()); got != before {
		t.Fatalf("cursor day = %v, want %v", got, before)
	}
}

func TestScrollSettled_NearStartExtendsAndRepositions(t *testing.T) {
	e := New(monday, Options{})
	first := e.Window().First()

	got := e.ScrollSettled(0)
	if got != 14 {
		t.Fatalf("repositioned index = %d, want 14", got)
	}
	w := e.Window()
	if w.At(got) != first {
		t.Fatalf("day at repositioned index = %v, want %v", w.At(got), first)
	}
	if w.First() != first.AddDays(-14) {
		t.Fatalf("First = %v, want %v", w.First(), first.AddDays(-14))
	}
	assertConsecutive(t, w.Dates())

	if idx := e.ScrollSettled(21); idx != 21 {
		t.Fatalf("ScrollSettled(21) = %d, want 21 (no extension)", idx)
	}
}

func TestPageWeek_ExtendsAtBothEdges(t *testing.T) {
	e := New(monday, Options{})
	start := e.Window().Len()

	e.PageWeek(1)
	e.PageWeek(1)
	if got := e.Window().Len(); got != start+14 {
		t.Fatalf("Len after paging to last page = %d, want %d", got, start+14)
	}
	if got, want := e.State().Label.String(), "2026 November"; got != want {
		t.Fatalf("Label = %q, want %q", got, want)
	}

	for i := 0; i < 4; i++ {
		e.PageWeek(-1)
	}
	if e.Cursor() < DaysPerPage {
		t.Fatalf("cursor %d left inside the first page", e.Cursor())
	}
	if e.Cursor()%DaysPerPage != 0 {
		t.Fatalf("cursor %d not page aligned", e.Cursor())
	}
	assertConsecutive(t, e.Window().Dates())
}

func TestUpdateVisibleRange_SpanningAndSingleMonth(t *testing.T) {
	e := New(monday, Options{})
	e.ScrollSettled(0) // window now starts 2026-09-20

	label := e.UpdateVisibleRange(7) // Sep 27 .. Oct 3
	if label.Single() {
		t.Fatalf("label %q should span two months", label)
	}
	if label.Start != "2026 September" || label.End != "2026 October" {
		t.Fatalf("label = %#v", label)
	}
	if got := label.String(); got != "2026 September - 2026 October" {
		t.Fatalf("String = %q", got)
	}

	label = e.UpdateVisibleRange(14) // Oct 4 .. Oct 10
	if label.Start != label.End {
		t.Fatalf("currentMonth %q != nextMonth %q for single-month page", label.Start, label.End)
	}
}

func TestEndVerticalDrag_ThresholdFromWeek(t *testing.T) {
	cases := []struct {
		name string
		dy   float64
		want Mode
	}{
		{"past threshold opens", 60, ModeMonth},
		{"short drag snaps back", 40, ModeWeek},
		{"exactly threshold stays closed", 50, ModeWeek},
		{"upward drag stays closed", -80, ModeWeek},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := New(monday, Options{})
			e.BeginVerticalDrag()
			if got := e.EndVerticalDrag(tc.dy); got != tc.want {
				t.Fatalf("EndVerticalDrag(%v) = %v, want %v", tc.dy, got, tc.want)
			}
			wantHeight := float64(DefaultClosedHeight)
			if tc.want == ModeMonth {
				wantHeight = DefaultOpenHeight
			}
			if e.Height() != wantHeight {
				t.Fatalf("Height = %v, want %v", e.Height(), wantHeight)
			}
		})
	}
}

func TestEndVerticalDrag_ThresholdFromMonth(t *testing.T) {
	cases := []struct {
		name string
		dy   float64
		want Mode
	}{
		{"short upward drag stays open", -49, ModeMonth},
		{"exactly threshold upward closes", -50, ModeWeek},
		{"long upward drag closes", -120, ModeWeek},
		{"downward drag stays open", 80, ModeMonth},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := New(monday, Options{Mode: ModeMonth})
			e.BeginVerticalDrag()
			if got := e.EndVerticalDrag(tc.dy); got != tc.want {
				t.Fatalf("EndVerticalDrag(%v) = %v, want %v", tc.dy, got, tc.want)
			}
		})
	}
}

func TestUpdateVerticalDrag_Clamps(t *testing.T) {
	e := New(monday, Options{})
	e.BeginVerticalDrag()
	if got := e.UpdateVerticalDrag(1000); got != DefaultOpenHeight {
		t.Fatalf("height = %v, want %v", got, DefaultOpenHeight)
	}
	if got := e.UpdateVerticalDrag(-1000); got != DefaultClosedHeight {
		t.Fatalf("height = %v, want %v", got, DefaultClosedHeight)
	}
	if got := e.UpdateVerticalDrag(25); got != DefaultClosedHeight+25 {
		t.Fatalf("height = %v, want %v", got, DefaultClosedHeight+25)
	}
}

func TestVerticalDrag_SpringsToResolvedHeight(t *testing.T) {
	anim := newManualAnimator()
	e := New(monday, Options{Animator: anim})

	e.BeginVerticalDrag()
	e.EndVerticalDrag(70)

	run, ok := anim.running[ChannelHeight]
	if !ok {
		t.Fatalf("height animation not started")
	}
	if !run.t.IsSpring() {
		t.Fatalf("height transition should be a spring")
	}
	if run.from != DefaultClosedHeight+70 || run.to != DefaultOpenHeight {
		t.Fatalf("animation %v -> %v, want %v -> %v", run.from, run.to, DefaultClosedHeight+70, DefaultOpenHeight)
	}
	if e.State().Mode != ModeMonth {
		t.Fatalf("mode should resolve on release")
	}
	anim.settle(t, ChannelHeight)
	if e.Height() != DefaultOpenHeight {
		t.Fatalf("Height = %v, want %v", e.Height(), DefaultOpenHeight)
	}
}

func TestVerticalDrag_InterruptsRunningSpring(t *testing.T) {
	anim := newManualAnimator()
	e := New(monday, Options{Animator: anim})

	e.BeginVerticalDrag()
	e.EndVerticalDrag(70)
	anim.current[ChannelHeight] = 180 // spring mid-flight

	e.BeginVerticalDrag()
	if _, ok := anim.running[ChannelHeight]; ok {
		t.Fatalf("new drag should stop the running spring")
	}
	if got := e.UpdateVerticalDrag(-10); got != 170 {
		t.Fatalf("height = %v, want drag to continue from 180", got)
	}
}

func TestHorizontalDrag_CommitsPastThirdOfWidth(t *testing.T) {
	cases := []struct {
		name string
		dx   float64
		want Date
		ok   bool
	}{
		{"swipe left goes forward", -150, Date{2026, time.November, 1}, true},
		{"swipe right goes back", 150, Date{2026, time.September, 1}, true},
		{"short swipe springs back", 100, monday, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := New(monday, Options{Mode: ModeMonth, Width: 350})
			if !e.BeginHorizontalDrag() {
				t.Fatalf("BeginHorizontalDrag = false in month mode")
			}
			if got := e.UpdateHorizontalDrag(tc.dx / 2); got != tc.dx/2 {
				t.Fatalf("offset = %v, want %v", got, tc.dx/2)
			}
			if e.State().Current != monday {
				t.Fatalf("update should not commit")
			}
			if got := e.EndHorizontalDrag(tc.dx); got != tc.ok {
				t.Fatalf("EndHorizontalDrag = %v, want %v", got, tc.ok)
			}
			if got := e.State().Current; got != tc.want {
				t.Fatalf("Current = %v, want %v", got, tc.want)
			}
			if e.Offset() != 0 {
				t.Fatalf("Offset = %v, want 0", e.Offset())
			}
		})
	}
}

func TestHorizontalDrag_IgnoredInWeekMode(t *testing.T) {
	e := New(monday, Options{})
	if e.BeginHorizontalDrag() {
		t.Fatalf("BeginHorizontalDrag = true in week mode")
	}
	if e.EndHorizontalDrag(-300) {
		t.Fatalf("EndHorizontalDrag committed in week mode")
	}
	if e.Offset() != 0 {
		t.Fatalf("Offset = %v, want 0", e.Offset())
	}
}

func TestDrags_KeepSeparateOrigins(t *testing.T) {
	e := New(monday, Options{Mode: ModeMonth, Width: 350})

	e.BeginHorizontalDrag()
	e.UpdateHorizontalDrag(-40)
	if got := e.UpdateVerticalDrag(-20); got != 280 {
		t.Fatalf("height after horizontal drag = %v, want 280", got)
	}

	e.BeginVerticalDrag()
	e.UpdateVerticalDrag(-30)
	if got := e.UpdateHorizontalDrag(10); got != 10 {
		t.Fatalf("offset after vertical drag = %v, want 10", got)
	}
}

func TestHorizontalDrag_SlidesOffScreenBeforeCommit(t *testing.T) {
	anim := newManualAnimator()
	e := New(monday, Options{Mode: ModeMonth, Width: 300, Animator: anim})

	e.BeginHorizontalDrag()
	e.EndHorizontalDrag(-120)

	run := anim.running[ChannelOffset]
	if run.t.IsSpring() {
		t.Fatalf("slide-out should be timed, got spring")
	}
	if run.to != -300 {
		t.Fatalf("slide target = %v, want -300", run.to)
	}
	if e.State().Current != monday {
		t.Fatalf("month changed before slide-out settled")
	}

	anim.settle(t, ChannelOffset)
	if got, want := e.State().Current, (Date{2026, time.November, 1}); got != want {
		t.Fatalf("Current = %v, want %v", got, want)
	}
	if e.Offset() != 0 {
		t.Fatalf("Offset = %v, want reset to 0", e.Offset())
	}
}

func TestHorizontalDrag_InterruptedSlideCommitsImmediately(t *testing.T) {
	anim := newManualAnimator()
	e := New(monday, Options{Mode: ModeMonth, Width: 300, Animator: anim})

	e.SlideMonth(1)
	e.PanStart()

	if got, want := e.State().Current, (Date{2026, time.November, 1}); got != want {
		t.Fatalf("Current = %v, want %v", got, want)
	}
	if e.Offset() != 0 {
		t.Fatalf("Offset = %v, want 0", e.Offset())
	}
}

func TestFinishSlide(t *testing.T) {
	anim := newManualAnimator()
	e := New(monday, Options{Mode: ModeMonth, Width: 300, Animator: anim})

	if e.FinishSlide() {
		t.Fatalf("FinishSlide with no slide running = true, want false")
	}

	e.SlideMonth(-1)
	if !e.FinishSlide() {
		t.Fatalf("FinishSlide during slide = false, want true")
	}
	if got, want := e.State().Current, (Date{2026, time.September, 1}); got != want {
		t.Fatalf("Current = %v, want %v", got, want)
	}
	if _, running := anim.running[ChannelOffset]; running {
		t.Fatalf("offset animation still running after FinishSlide")
	}
}

func TestModeToggle_AnchorsAndReveals(t *testing.T) {
	e := New(monday, Options{})

	e.SetMode(ModeMonth)
	if got, want := e.State().Current, (Date{2026, time.October, 18}); got != want {
		t.Fatalf("month anchor = %v, want first visible day %v", got, want)
	}

	e.SlideMonth(1)
	e.SlideMonth(1)
	e.SetMode(ModeWeek)

	w := e.Window()
	if got, want := w.At(e.Cursor()), (Date{2026, time.November, 29}); got != want {
		t.Fatalf("revealed page starts %v, want %v", got, want)
	}
	assertConsecutive(t, w.Dates())
}

func TestModeToggle_AnchorsOnVisibleSelection(t *testing.T) {
	sel := Date{2026, time.October, 22}
	e := New(monday, Options{InitialSelected: &sel})

	e.SetMode(ModeMonth)
	if e.State().Current != sel {
		t.Fatalf("month anchor = %v, want selected %v", e.State().Current, sel)
	}
}

func TestSnapshot_IsIndependent(t *testing.T) {
	e := New(monday, Options{})
	snap := e.Snapshot()
	snap.Window[0] = Date{}
	snap.Page[0].Number = 99

	again := e.Snapshot()
	if again.Window[0].IsZero() {
		t.Fatalf("Snapshot should copy window")
	}
	if again.Page[0].Number == 99 {
		t.Fatalf("Snapshot should copy page")
	}
	if len(again.Grid)%7 != 0 {
		t.Fatalf("grid length %d not a multiple of 7", len(again.Grid))
	}
}
