package calendar

import "math"

// Axis is the drag axis that owns the current gesture sequence.
type Axis int

const (
	AxisNone Axis = iota
	AxisVertical
	AxisHorizontal
)

func (a Axis) String() string {
	switch a {
	case AxisVertical:
		return "vertical"
	case AxisHorizontal:
		return "horizontal"
	default:
		return "none"
	}
}

type panState struct {
	active bool
	axis   Axis
	mode   Mode // mode when the horizontal recognizer claimed the gesture
}

// PanStart begins a gesture sequence. Any running animation is interrupted
// and its current value becomes the new drag origin.
func (e *Engine) PanStart() {
	e.interrupt(ChannelHeight)
	e.interrupt(ChannelOffset)
	e.pan = panState{active: true}
}

// PanUpdate forwards the translation since PanStart. The first axis to move
// past the activation offset owns the rest of the sequence.
func (e *Engine) PanUpdate(dx, dy float64) {
	if !e.pan.active {
		return
	}
	if e.pan.axis == AxisNone {
		e.pan.axis = e.claimAxis(dx, dy)
		switch e.pan.axis {
		case AxisVertical:
			e.BeginVerticalDrag()
		case AxisHorizontal:
			e.pan.mode = e.state.Mode
			if e.pan.mode == ModeMonth {
				e.BeginHorizontalDrag()
			}
		}
	}
	switch e.pan.axis {
	case AxisVertical:
		e.UpdateVerticalDrag(dy)
	case AxisHorizontal:
		if e.pan.mode == ModeMonth {
			e.UpdateHorizontalDrag(dx)
		}
	}
}

// PanEnd finishes the sequence and returns the axis that owned it. A
// sequence that never passed the activation offset owns nothing and lets
// interrupted animations run to their rest positions.
func (e *Engine) PanEnd(dx, dy float64) Axis {
	if !e.pan.active {
		return AxisNone
	}
	e.PanUpdate(dx, dy)
	axis := e.pan.axis
	switch axis {
	case AxisNone:
		e.resume()
	case AxisVertical:
		e.EndVerticalDrag(dy)
	case AxisHorizontal:
		if e.pan.mode == ModeMonth {
			e.EndHorizontalDrag(dx)
		} else if math.Abs(dx) > e.opts.Width/3 {
			dir := 1
			if dx > 0 {
				dir = -1
			}
			e.PageWeek(dir)
		}
	}
	e.pan = panState{}
	return axis
}

// resume restarts what PanStart interrupted when the sequence never claimed
// an axis, so a tap cannot leave the calendar stuck between rest positions.
func (e *Engine) resume() {
	if e.height != e.heightFor(e.state.Mode) {
		e.settleMode(e.state.Mode)
	}
	if e.offset != 0 {
		e.opts.Animator.Animate(ChannelOffset, e.offset, 0, e.opts.Spring, func(final float64) {
			e.offset = final
		})
	}
}

// PanActive reports whether a gesture sequence is in progress.
func (e *Engine) PanActive() bool { return e.pan.active }

func (e *Engine) claimAxis(dx, dy float64) Axis {
	ax, ay := math.Abs(dx), math.Abs(dy)
	act := e.opts.ActivationOffset
	switch {
	case ay > act && ay >= ax:
		return AxisVertical
	case ax > act:
		return AxisHorizontal
	default:
		return AxisNone
	}
}
