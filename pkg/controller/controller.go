package controller

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/wamphlett/softbox-controller/config"
	"github.com/wamphlett/softbox-controller/pkg/engine"
)

// Event names a state change that is reported to publishers
type Event string

const (
	EventStart         Event = "START"
	EventColourChanged Event = "COLOUR_CHANGED"
	EventEffectStarted Event = "EFFECT_STARTED"
	EventEffectStopped Event = "EFFECT_STOPPED"
	EventSpeedChanged  Event = "SPEED_CHANGED"
	EventShutdown      Event = "SHUTDOWN"
)

// ErrUnknownPreset is returned by ApplyPreset for names that are not presets
var ErrUnknownPreset = errors.New("unknown preset")

// Renderer paints colours. Render is called with the controller lock held
// and must not block; surfaces on other goroutines should hand the colour
// off through a mailbox.
type Renderer interface {
	Render(c engine.Color)
}

// Publisher is notified of state changes. Like Render, Publish must return
// quickly and must not call back into the controller.
type Publisher interface {
	Publish(event Event, state State)
}

// Controller drives an effect engine from a scheduler and fans every colour
// out to its renderers. All methods are safe for concurrent use.
type Controller struct {
	mu sync.Mutex

	engine     *engine.Engine
	scheduler  Scheduler
	renderers  []Renderer
	publishers []Publisher
	logger     *log.Logger

	// generation invalidates ticks queued by a scheduler that has since been stopped
	generation uint64

	initialEffect engine.EffectKind
	started       bool
}

// New creates a controller seeded from the config. The configured effect is
// started by Start, not here.
func New(cfg *config.Controller, opts ...Opt) (*Controller, error) {
	base, err := engine.ParseColor(cfg.BaseColour)
	if err != nil {
		return nil, fmt.Errorf("base colour: %w", err)
	}
	kind, err := engine.ParseEffectKind(cfg.Effect)
	if err != nil {
		return nil, fmt.Errorf("effect: %w", err)
	}

	c := &Controller{
		engine:        engine.New(),
		logger:        log.New(io.Discard, "", 0),
		initialEffect: kind,
	}
	c.engine.SetBaseColor(base)
	c.engine.SetSpeed(engine.ClampSpeed(cfg.Speed))

	for _, opt := range opts {
		opt(c)
	}
	if c.scheduler == nil {
		c.scheduler = NewTickerScheduler()
	}

	return c, nil
}

// Start paints the base colour, announces the controller and starts the
// configured effect. Calling Start more than once has no effect.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return
	}
	c.started = true

	c.logger.Printf("starting with base %s, effect %s, speed %dms", c.engine.BaseColor().Hex(), c.initialEffect, c.engine.Speed())
	c.render(c.engine.Current())
	c.publish(EventStart)

	if c.initialEffect != engine.EffectNone {
		c.startEffect(c.initialEffect, c.engine.Speed())
	}
}

// Shutdown stops the scheduler. Renderers keep the last colour they were given.
func (c *Controller) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.scheduler.Stop()
	c.generation++
	c.logger.Println("shutting down")
	c.publish(EventShutdown)
}

// SetBaseColour changes the user colour. When idle the colour is painted
// straight away; a running Custom effect picks it up on its next tick.
func (c *Controller) SetBaseColour(col engine.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if col == c.engine.BaseColor() {
		return
	}
	c.engine.SetBaseColor(col)
	if !c.engine.Running() {
		c.render(c.engine.Current())
	}
	c.publish(EventColourChanged)
}

// SetRGB clamps each channel into [0,255] and sets the base colour
func (c *Controller) SetRGB(r, g, b int) {
	c.SetBaseColour(engine.RGB(r, g, b))
}

// ApplyPreset sets the base colour to the named preset
func (c *Controller) ApplyPreset(name string) error {
	p, ok := engine.LookupPreset(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	c.SetBaseColour(p.Color)
	return nil
}

// StartEffect (re)starts kind at the given speed, clamped to the engine
// range. Starting EffectNone is the same as StopEffect.
func (c *Controller) StartEffect(kind engine.EffectKind, speedMS int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startEffect(kind, engine.ClampSpeed(speedMS))
}

// StartEffectByName parses name and starts that effect
func (c *Controller) StartEffectByName(name string, speedMS int) error {
	kind, err := engine.ParseEffectKind(name)
	if err != nil {
		return err
	}
	c.StartEffect(kind, speedMS)
	return nil
}

// NextEffect starts the effect after the current one in selector order
func (c *Controller) NextEffect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startEffect(c.engine.Kind().Next(), c.engine.Speed())
}

// StopEffect returns to the static base colour. It is safe to call when idle.
func (c *Controller) StopEffect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopEffect()
}

// SetSpeed changes the tick interval without restarting the effect
func (c *Controller) SetSpeed(speedMS int) {
	speedMS = engine.ClampSpeed(speedMS)

	c.mu.Lock()
	defer c.mu.Unlock()

	if speedMS == c.engine.Speed() {
		return
	}
	c.engine.SetSpeed(speedMS)
	if c.engine.Running() {
		c.scheduler.Reset(interval(speedMS))
	}
	c.publish(EventSpeedChanged)
}

// AdjustSpeed moves the speed by delta milliseconds
func (c *Controller) AdjustSpeed(delta int) {
	c.mu.Lock()
	speed := c.engine.Speed() + delta
	c.mu.Unlock()
	c.SetSpeed(speed)
}

// State returns a copy of the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state()
}

func (c *Controller) startEffect(kind engine.EffectKind, speedMS int) {
	c.scheduler.Stop()
	c.generation++
	wasRunning := c.engine.Running()

	c.engine.StartEffect(kind, speedMS)
	if !c.engine.Running() {
		c.render(c.engine.Current())
		if wasRunning {
			c.publish(EventEffectStopped)
		}
		return
	}

	gen := c.generation
	c.scheduler.Schedule(interval(speedMS), func() { c.tick(gen) })
	c.logger.Printf("effect %s started at %dms", kind, speedMS)
	c.publish(EventEffectStarted)
}

func (c *Controller) stopEffect() {
	c.scheduler.Stop()
	c.generation++
	wasRunning := c.engine.Running()

	c.engine.StopEffect()
	c.render(c.engine.Current())
	if wasRunning {
		c.logger.Println("effect stopped")
		c.publish(EventEffectStopped)
	}
}

// tick is the scheduler callback. Ticks from an older generation are dropped.
func (c *Controller) tick(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation || !c.engine.Running() {
		return
	}
	c.render(c.engine.Tick())
}

func (c *Controller) render(col engine.Color) {
	for _, r := range c.renderers {
		r.Render(col)
	}
}

func (c *Controller) publish(event Event) {
	state := c.state()
	c.logger.Printf("event: %s. state: %v", event, state)
	for _, p := range c.publishers {
		p.Publish(event, state)
	}
}

func (c *Controller) state() State {
	return newState(c.engine.Snapshot())
}

func interval(speedMS int) time.Duration {
	return time.Duration(speedMS) * time.Millisecond
}
