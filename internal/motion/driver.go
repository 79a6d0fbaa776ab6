// Package motion drives calendar animations frame by frame using harmonica
// springs and eased tweens.
package motion

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/five82/stride/internal/calendar"
)

const (
	defaultFPS = 60

	// settleEpsilon is how close (in engine units) a spring must be to its
	// target, with matching velocity, before it counts as settled.
	settleEpsilon = 0.5

	// maxSpringFrames bounds an underdamped spring that never calms down.
	maxSpringFrames = 10 * defaultFPS
)

type animation struct {
	pos    float64
	vel    float64
	from   float64
	target float64

	spring harmonica.Spring
	frames int

	duration time.Duration
	elapsed  time.Duration

	done func(float64)
}

// Driver implements calendar.Animator. It holds at most one animation per
// channel and advances all of them on Step. It is not safe for concurrent
// use; Step runs on the UI goroutine so completion callbacks can touch the
// engine directly.
type Driver struct {
	fps   int
	frame time.Duration
	anims map[calendar.Channel]*animation
}

// New returns a driver stepping at fps frames per second (60 when fps <= 0).
func New(fps int) *Driver {
	if fps <= 0 {
		fps = defaultFPS
	}
	return &Driver{
		fps:   fps,
		frame: time.Second / time.Duration(fps),
		anims: make(map[calendar.Channel]*animation),
	}
}

// FrameInterval is the wall-clock time between Step calls.
func (d *Driver) FrameInterval() time.Duration { return d.frame }

// Animate starts ch toward to. A channel that is already moving is
// redirected from its current position and keeps its velocity.
func (d *Driver) Animate(ch calendar.Channel, from, to float64, t calendar.Transition, done func(float64)) {
	a := &animation{pos: from, from: from, target: to, done: done}
	if prev, ok := d.anims[ch]; ok {
		a.pos = prev.pos
		a.vel = prev.vel
		a.from = prev.pos
	}
	if t.IsSpring() {
		a.spring = harmonica.NewSpring(harmonica.FPS(d.fps), t.Frequency, t.Damping)
	} else {
		a.duration = t.Duration
	}
	d.anims[ch] = a
}

// Stop halts ch and returns where it was.
func (d *Driver) Stop(ch calendar.Channel) (float64, bool) {
	a, ok := d.anims[ch]
	if !ok {
		return 0, false
	}
	delete(d.anims, ch)
	return a.pos, true
}

// Value returns the interpolated value of ch while it is animating.
func (d *Driver) Value(ch calendar.Channel) (float64, bool) {
	a, ok := d.anims[ch]
	if !ok {
		return 0, false
	}
	return a.pos, true
}

// Active reports whether any channel is still moving.
func (d *Driver) Active() bool { return len(d.anims) > 0 }

// Step advances every channel by one frame and fires completion callbacks
// for the ones that settled. It reports whether another frame is needed.
func (d *Driver) Step() bool {
	var settled []calendar.Channel
	for ch, a := range d.anims {
		if a.advance(d.frame) {
			settled = append(settled, ch)
		}
	}
	for _, ch := range settled {
		a := d.anims[ch]
		delete(d.anims, ch)
		if a.done != nil {
			a.done(a.target)
		}
	}
	return d.Active()
}

func (a *animation) advance(frame time.Duration) bool {
	if a.duration > 0 {
		a.elapsed += frame
		if a.elapsed >= a.duration {
			a.pos = a.target
			return true
		}
		p := float64(a.elapsed) / float64(a.duration)
		a.pos = a.from + (a.target-a.from)*easeOutCubic(p)
		return false
	}

	a.pos, a.vel = a.spring.Update(a.pos, a.vel, a.target)
	a.frames++
	if math.Abs(a.pos-a.target) < settleEpsilon && math.Abs(a.vel) < settleEpsilon {
		a.pos = a.target
		return true
	}
	if a.frames >= maxSpringFrames {
		a.pos = a.target
		return true
	}
	return false
}

func easeOutCubic(p float64) float64 {
	q := 1 - p
	return 1 - q*q*q
}
