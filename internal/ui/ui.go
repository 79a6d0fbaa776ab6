package ui

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/stride/internal/calendar"
	"github.com/five82/stride/internal/config"
	"github.com/five82/stride/internal/motion"
	"github.com/five82/stride/internal/prefs"
	"github.com/five82/stride/internal/schedule"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Config    config.Config
	Today     calendar.Date // zero means Clock.Today()
	Clock     calendar.Clock
	Schedule  *schedule.Schedule
	ThemeName string
	Tab       string
	PrefsPath string
}

// pane pairs a calendar engine with the driver animating it.
type pane struct {
	name   string
	engine *calendar.Engine
	motion *motion.Driver
}

func newPane(name string, today calendar.Date, cfg config.Config, mode calendar.Mode) pane {
	driver := motion.New(FrameRate)
	g := cfg.Gesture
	engine := calendar.New(today, calendar.Options{
		WeekStartsOn:     cfg.WeekStartsOn,
		InitialSelected:  cfg.InitialSelected,
		Mode:             mode,
		Threshold:        g.Threshold,
		ClosedHeight:     g.ClosedHeight,
		OpenHeight:       g.OpenHeight,
		ActivationOffset: g.ActivationOffset,
		Width:            gridWidth * g.ColumnUnits,
		Spring:           calendar.Spring(g.Damping, g.Frequency),
		Animator:         driver,
		OnSelect: func(d calendar.Date) {
			log.Printf("%s: selected %s", name, d)
		},
	})
	return pane{name: name, engine: engine, motion: driver}
}

// height is the animated height when a spring is running, the settled one
// otherwise.
func (p pane) height() float64 {
	if v, ok := p.motion.Value(calendar.ChannelHeight); ok {
		return v
	}
	return p.engine.Height()
}

func (p pane) offset() float64 {
	if v, ok := p.motion.Value(calendar.ChannelOffset); ok {
		return v
	}
	return p.engine.Offset()
}

// dragState tracks one mouse press/motion/release sequence.
type dragState struct {
	active bool
	tab    Tab
	x0, y0 int
	dx, dy float64 // last translation in engine units
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	clock     calendar.Clock
	schedule  *schedule.Schedule
	gesture   config.Gesture
	prefsPath string

	// UI state
	theme    Theme
	keys     keyMap
	help     help.Model
	tab      Tab
	width    int
	height   int
	ready    bool
	showHelp bool

	// Calendar surfaces
	home  pane // expandable week/month calendar on the home tab
	month pane // month grid on the calendar tab

	drag      dragState
	animating bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	clock := opts.Clock
	if clock == nil {
		clock = calendar.SystemClock{}
	}
	today := opts.Today
	if today.IsZero() {
		today = clock.Today()
	}

	cfg := opts.Config
	if cfg.Gesture.RowUnits <= 0 || cfg.Gesture.ColumnUnits <= 0 {
		cfg.Gesture = config.Default().Gesture
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	return Model{
		clock:     clock,
		schedule:  opts.Schedule,
		gesture:   cfg.Gesture,
		prefsPath: prefsPath,
		theme:     GetTheme(themeName),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		tab:       ParseTab(opts.Tab),
		home:      newPane("home", today, cfg, calendar.ModeWeek),
		month:     newPane("calendar", today, cfg, calendar.ModeMonth),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return clockCmd(ClockInterval)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case frameMsg:
		return m.handleFrame()

	case clockMsg:
		return m.handleClock()
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	// Show help overlay if active
	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key closes help
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		return m.switchTab(m.tab.next(1))

	case key.Matches(msg, m.keys.ShiftTab):
		return m.switchTab(m.tab.next(-1))

	case key.Matches(msg, m.keys.JumpTab):
		return m.switchTab(Tab(msg.String()[0] - '1'))
	}

	if p, ok := m.activePane(); ok {
		m.handleCalendarKey(p, msg)
	}
	cmd := m.animate()
	return m, cmd
}

// handleCalendarKey applies calendar bindings to the pane on screen.
func (m *Model) handleCalendarKey(p pane, msg tea.KeyMsg) {
	e := p.engine
	switch {
	case key.Matches(msg, m.keys.PrevPage):
		page(e, -1)
	case key.Matches(msg, m.keys.NextPage):
		page(e, 1)
	case key.Matches(msg, m.keys.Collapse):
		if p.engine == m.home.engine {
			e.SetMode(calendar.ModeWeek)
		}
	case key.Matches(msg, m.keys.Expand):
		if p.engine == m.home.engine {
			e.SetMode(calendar.ModeMonth)
		}
	case key.Matches(msg, m.keys.PrevDay):
		e.FinishSlide()
		m.selectDay(p, focusDay(e).AddDays(-1))
	case key.Matches(msg, m.keys.NextDay):
		e.FinishSlide()
		m.selectDay(p, focusDay(e).AddDays(1))
	case key.Matches(msg, m.keys.Today):
		m.selectDay(p, e.Today())
	}
}

// page moves a week strip by one page or slides a month view by one month.
func page(e *calendar.Engine, dir int) {
	if e.State().Mode == calendar.ModeMonth {
		e.SlideMonth(dir)
		return
	}
	e.PageWeek(dir)
}

// focusDay is the day keyboard navigation starts from: the selection, else
// today when visible, else the first visible day.
func focusDay(e *calendar.Engine) calendar.Date {
	st := e.State()
	if st.HasSelection {
		return st.Selected
	}
	if st.Mode == calendar.ModeMonth {
		if st.Current.SameMonth(e.Today()) {
			return e.Today()
		}
		return st.Current.FirstOfMonth(0)
	}
	visible := e.Page()
	for _, c := range visible {
		if c.Date.Equal(e.Today()) {
			return c.Date
		}
	}
	return visible[0].Date
}

// show brings d into view: the strip pages to it in week mode, the month
// view steps to its month in month mode.
func show(e *calendar.Engine, d calendar.Date) {
	if e.State().Mode == calendar.ModeWeek {
		e.Reveal(d)
		return
	}
	e.FinishSlide()
	current := e.State().Current
	for !current.SameMonth(d) {
		dir := 1
		if d.Before(current) {
			dir = -1
		}
		current = e.AdvanceMonth(dir)
	}
}

// selectDay selects d on p and mirrors it onto the other surface.
func (m *Model) selectDay(p pane, d calendar.Date) {
	show(p.engine, d)
	if p.engine.SelectDate(d) {
		m.follow(p, d)
	}
}

// follow mirrors a selection made on src onto the other surface.
func (m *Model) follow(src pane, d calendar.Date) {
	for _, p := range []pane{m.home, m.month} {
		if p.engine == src.engine {
			continue
		}
		show(p.engine, d)
		p.engine.SelectDate(d)
	}
}

// handleMouse turns mouse presses, drags and releases into gestures.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		m.press(msg.X, msg.Y)
	case tea.MouseActionMotion:
		m.dragTo(msg.X, msg.Y)
	case tea.MouseActionRelease:
		m.release(msg.X, msg.Y)
	}

	cmd := m.animate()
	return m, cmd
}

func (m *Model) press(x, y int) {
	if y == tabBarRow {
		if t, ok := m.tabAt(x); ok {
			m.setTab(t)
		}
		return
	}

	p, ok := m.activePane()
	if !ok || !inCalendar(len(m.rows()), y) {
		return
	}
	m.drag = dragState{active: true, tab: m.tab, x0: x, y0: y}
	if m.tab == TabHome {
		p.engine.PanStart()
		return
	}
	p.engine.BeginHorizontalDrag()
}

// translation converts the cell distance from the press point of d into
// engine units.
func (m *Model) translation(d dragState, x, y int) (float64, float64) {
	dx := float64(x-d.x0) * m.gesture.ColumnUnits
	dy := float64(y-d.y0) * m.gesture.RowUnits
	return dx, dy
}

func (m *Model) dragTo(x, y int) {
	if !m.drag.active {
		return
	}
	dx, dy := m.translation(m.drag, x, y)
	m.drag.dx, m.drag.dy = dx, dy
	if m.drag.tab == TabHome {
		m.home.engine.PanUpdate(dx, dy)
		return
	}
	m.month.engine.UpdateHorizontalDrag(dx)
}

func (m *Model) release(x, y int) {
	if !m.drag.active {
		return
	}
	drag := m.drag
	m.drag = dragState{}
	dx, dy := m.translation(drag, x, y)

	if drag.tab == TabHome {
		if axis := m.home.engine.PanEnd(dx, dy); axis != calendar.AxisNone {
			log.Printf("home: %s drag ended at (%.0f, %.0f) in %s mode", axis, dx, dy, m.home.engine.State().Mode)
			return
		}
		m.tap(m.home, drag.x0, drag.y0)
		return
	}

	m.month.engine.EndHorizontalDrag(dx)
	if math.Abs(dx) <= m.gesture.ActivationOffset {
		m.tap(m.month, drag.x0, drag.y0)
	}
}

// tap selects the cell under a click that never became a drag.
func (m *Model) tap(p pane, x, y int) {
	cell, ok := cellAt(m.rows(), x, y)
	if !ok || !p.engine.Select(cell) {
		return
	}
	m.follow(p, cell.Date)
}

// activePane returns the calendar surface on the current tab.
func (m Model) activePane() (pane, bool) {
	switch m.tab {
	case TabHome:
		return m.home, true
	case TabCalendar:
		return m.month, true
	default:
		return pane{}, false
	}
}

// rows returns the week rows drawn on the current tab.
func (m Model) rows() [][]calendar.DayCell {
	switch m.tab {
	case TabHome:
		return m.homeRows()
	case TabCalendar:
		return weeks(m.month.engine.MonthGrid())
	default:
		return nil
	}
}

// homeRows returns the rows the home calendar shows at its current height:
// consecutive weeks from the strip in week mode, the top of the month grid in
// month mode.
func (m Model) homeRows() [][]calendar.DayCell {
	e := m.home.engine
	opts := e.Options()
	h := m.home.height()
	if e.State().Mode == calendar.ModeMonth {
		grid := weeks(e.MonthGrid())
		return grid[:visibleRows(h, opts.ClosedHeight, opts.OpenHeight, len(grid))]
	}
	return e.Rows(visibleRows(h, opts.ClosedHeight, opts.OpenHeight, maxWeekRows))
}

func (m *Model) setTab(t Tab) {
	if t < 0 || t >= tabCount || t == m.tab {
		return
	}
	m.cancelDrag()
	m.tab = t
	m.savePrefs()
}

// cancelDrag ends a drag whose release will never reach its surface. Home
// resolves the pan at the last translation; the month view springs back.
func (m *Model) cancelDrag() {
	drag := m.drag
	m.drag = dragState{}
	if !drag.active {
		return
	}
	if drag.tab == TabHome {
		m.home.engine.PanEnd(drag.dx, drag.dy)
		return
	}
	m.month.engine.EndHorizontalDrag(0)
}

// switchTab changes tabs and keeps the frame loop running for any drag the
// switch resolved.
func (m Model) switchTab(t Tab) (tea.Model, tea.Cmd) {
	m.setTab(t)
	cmd := m.animate()
	return m, cmd
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, Tab: m.tab.Key()}); err != nil {
		log.Printf("prefs: %v", err)
	}
}

// animate starts the frame loop if a driver has work and no loop is running.
func (m *Model) animate() tea.Cmd {
	if m.animating || !(m.home.motion.Active() || m.month.motion.Active()) {
		return nil
	}
	m.animating = true
	return frameCmd(m.home.motion.FrameInterval())
}

// handleFrame advances both drivers by one frame.
func (m Model) handleFrame() (tea.Model, tea.Cmd) {
	home := m.home.motion.Step()
	month := m.month.motion.Step()
	if home || month {
		return m, frameCmd(m.home.motion.FrameInterval())
	}
	m.animating = false
	return m, nil
}

// handleClock moves both calendars to the new day after midnight.
func (m Model) handleClock() (tea.Model, tea.Cmd) {
	today := m.clock.Today()
	if !today.Equal(m.home.engine.Today()) {
		log.Printf("clock: day rolled over to %s", today)
		m.home.engine.SetToday(today)
		m.month.engine.SetToday(today)
	}
	return m, clockCmd(ClockInterval)
}

// Messages

type frameMsg time.Time

type clockMsg time.Time

// Commands

func frameCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func clockCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return clockMsg(t)
	})
}

// Run starts the Bubble Tea program and blocks until it quits or the
// context is cancelled.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
