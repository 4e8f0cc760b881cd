// Package engine computes the colours a soft-light surface should show. It
// holds the base colour, the running effect and its step counter, and is
// independent of any UI toolkit: a host drives Tick on a timer and paints
// whatever it returns.
//
// An Engine is not safe for concurrent use. Hosts either keep it on a single
// goroutine or guard it with one mutex and hand colours off by value.
package engine

import "math"

const (
	// MinSpeed and MaxSpeed bound the tick interval in milliseconds
	MinSpeed = 50
	MaxSpeed = 1000
	// DefaultSpeed is the tick interval used before any effect is started
	DefaultSpeed = 500

	// pulsePeriod is the number of steps in one Sun or Moon pulse
	pulsePeriod = 100
	sunDepth    = 40
	moonDepth   = 30
)

// ClampSpeed bounds a tick interval to [MinSpeed,MaxSpeed]
func ClampSpeed(ms int) int {
	if ms < MinSpeed {
		return MinSpeed
	}
	if ms > MaxSpeed {
		return MaxSpeed
	}
	return ms
}

// Engine is the effect state machine. The zero value is not usable, use New.
type Engine struct {
	base    Color
	kind    EffectKind
	step    uint64
	speed   int
	palette []Color
	current Color
}

// New returns an idle engine with a white base colour
func New() *Engine {
	return &Engine{
		base:    White,
		current: White,
		speed:   DefaultSpeed,
	}
}

// SetBaseColor stores c. An idle engine shows c straight away; a running
// Custom effect rebuilds its palette from c but keeps its step.
func (e *Engine) SetBaseColor(c Color) {
	e.base = c
	switch e.kind {
	case EffectNone:
		e.current = c
	case EffectCustom:
		e.palette = buildPalette(EffectCustom, c)
	}
}

// StartEffect stops whatever is running and, unless kind is EffectNone,
// starts kind from step zero. Starting the running kind again restarts it.
func (e *Engine) StartEffect(kind EffectKind, speedMS int) {
	e.StopEffect()
	if kind == EffectNone {
		return
	}
	e.palette = buildPalette(kind, e.base)
	e.step = 0
	e.speed = speedMS
	e.kind = kind
}

// StopEffect returns the engine to idle. It is safe to call repeatedly.
func (e *Engine) StopEffect() {
	e.kind = EffectNone
	e.palette = nil
	e.current = e.base
}

// SetSpeed changes the tick interval without touching step or palette
func (e *Engine) SetSpeed(speedMS int) {
	e.speed = speedMS
}

// Tick advances one frame and returns the colour to render. An idle engine
// returns the base colour and does not change.
func (e *Engine) Tick() Color {
	if e.kind == EffectNone {
		return e.base
	}
	c := e.frame(e.step)
	e.step++
	e.current = c
	return c
}

func (e *Engine) frame(step uint64) Color {
	switch e.kind {
	case EffectSun:
		return pulse(e.palette[0], step, sunDepth, false)
	case EffectMoon:
		return pulse(e.palette[0], step, moonDepth, true)
	default:
		return e.palette[step%uint64(len(e.palette))]
	}
}

// pulse dims base along a triangle wave: full depth at step 0 (mod period),
// untouched at step 50. The blue channel only dims when dimBlue is set.
func pulse(base Color, step uint64, depth int, dimBlue bool) Color {
	intensity := math.Abs(float64(pulsePeriod/2)-float64(step%pulsePeriod)) / float64(pulsePeriod/2)
	shift := int(float64(depth) * intensity)

	b := int(base.B)
	if dimBlue {
		b -= shift
	}
	return RGB(int(base.R)-shift, int(base.G)-shift, b)
}

// BaseColor returns the user-selected colour
func (e *Engine) BaseColor() Color { return e.base }

// Kind returns the running effect, EffectNone when idle
func (e *Engine) Kind() EffectKind { return e.kind }

// Running reports whether an effect is active
func (e *Engine) Running() bool { return e.kind != EffectNone }

// Step returns the number of frames produced since the effect started
func (e *Engine) Step() uint64 { return e.step }

// Speed returns the tick interval in milliseconds
func (e *Engine) Speed() int { return e.speed }

// Current returns the colour the surface should currently show: the base
// colour when idle, otherwise the last ticked frame.
func (e *Engine) Current() Color { return e.current }

// Palette returns a copy of the active palette
func (e *Engine) Palette() []Color {
	if len(e.palette) == 0 {
		return nil
	}
	out := make([]Color, len(e.palette))
	copy(out, e.palette)
	return out
}

// Snapshot is a by-value copy of the engine state
type Snapshot struct {
	Base    Color
	Current Color
	Kind    EffectKind
	Step    uint64
	Speed   int
	Palette []Color
}

// Running reports whether the snapshot was taken with an effect active
func (s Snapshot) Running() bool { return s.Kind != EffectNone }

// Snapshot copies the current state
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Base:    e.base,
		Current: e.current,
		Kind:    e.kind,
		Step:    e.step,
		Speed:   e.speed,
		Palette: e.Palette(),
	}
}
