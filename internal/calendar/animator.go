package calendar

import "time"

// Channel identifies one animated value owned by the engine.
type Channel int

const (
	// ChannelHeight drives the expand/collapse height of the calendar.
	ChannelHeight Channel = iota
	// ChannelOffset drives the horizontal month swipe offset.
	ChannelOffset
)

func (c Channel) String() string {
	switch c {
	case ChannelHeight:
		return "height"
	case ChannelOffset:
		return "offset"
	default:
		return "unknown"
	}
}

// Transition describes how a channel moves to its target: a damped spring
// when Duration is zero, a timed tween otherwise.
type Transition struct {
	Damping   float64
	Frequency float64
	Duration  time.Duration
}

// Spring returns a damped spring transition.
func Spring(damping, frequency float64) Transition {
	return Transition{Damping: damping, Frequency: frequency}
}

// Timing returns a fixed-duration transition.
func Timing(d time.Duration) Transition {
	return Transition{Duration: d}
}

// IsSpring reports whether t is a spring transition.
func (t Transition) IsSpring() bool { return t.Duration <= 0 }

// Animator interpolates channel values over time on behalf of the engine.
//
// Animate starts (or redirects) ch from "from" toward "to" and calls done with
// the settled value once it arrives. A redirected or stopped animation never
// calls its previous done. Stop halts ch and returns its current value, or
// false when nothing was running.
type Animator interface {
	Animate(ch Channel, from, to float64, t Transition, done func(final float64))
	Stop(ch Channel) (float64, bool)
}

// instantAnimator settles every animation immediately.
type instantAnimator struct{}

func (instantAnimator) Animate(_ Channel, _, to float64, _ Transition, done func(float64)) {
	if done != nil {
		done(to)
	}
}

func (instantAnimator) Stop(Channel) (float64, bool) { return 0, false }
