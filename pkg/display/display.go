// Package display is the terminal host for the soft light. It fills the
// whole terminal with the current colour and overlays a small control panel
// that can be hidden with Tab.
package display

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/wamphlett/softbox-controller/config"
	"github.com/wamphlett/softbox-controller/pkg/controller"
	"github.com/wamphlett/softbox-controller/pkg/engine"
	"github.com/wamphlett/softbox-controller/pkg/mailbox"
)

// Controls is what the display needs from the controller
type Controls interface {
	State() controller.State
	SetRGB(r, g, b int)
	ApplyPreset(name string) error
	StartEffect(kind engine.EffectKind, speedMS int)
	StopEffect()
	NextEffect()
	AdjustSpeed(delta int)
}

// Display paints colours on a tcell screen. It implements controller.Renderer.
type Display struct {
	screen tcell.Screen
	box    *mailbox.Mailbox
	logger *log.Logger

	speedStep   int
	channelStep int

	current   engine.Color
	showPanel bool
	presets   []engine.Preset

	closeOnce sync.Once
}

// New initialises a terminal screen
func New(cfg *config.Display, logger *log.Logger) (*Display, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen, cfg, logger)
}

// NewWithScreen uses an existing screen, initialising it
func NewWithScreen(screen tcell.Screen, cfg *config.Display, logger *log.Logger) (*Display, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.SetStyle(tcell.StyleDefault)
	screen.HideCursor()

	return &Display{
		screen:      screen,
		box:         mailbox.New(),
		logger:      logger,
		speedStep:   cfg.SpeedStep,
		channelStep: cfg.ChannelStep,
		current:     engine.White,
		showPanel:   true,
		presets:     engine.Presets(),
	}, nil
}

// Render queues c for the event loop. Colours arriving after Run returns are dropped.
func (d *Display) Render(c engine.Color) {
	d.box.Post(c)
}

// Run paints and handles keys until the user quits or ctx is cancelled. The
// screen is finalised before Run returns.
func (d *Display) Run(ctx context.Context, ctrl Controls) error {
	defer d.Close()

	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event, 10)
	go func() {
		defer close(events)
		for {
			ev := d.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	d.draw(ctrl.State())
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return errors.New("screen closed")
			}
			if !d.handleEvent(ev, ctrl) {
				return nil
			}
			d.draw(ctrl.State())
		case c, ok := <-d.box.C():
			if !ok {
				return nil
			}
			d.current = c
			d.draw(ctrl.State())
		case <-ctx.Done():
			return nil
		}
	}
}

// Close restores the terminal. Run calls it on return; it is safe to call again.
func (d *Display) Close() {
	d.closeOnce.Do(func() {
		d.box.Close()
		d.screen.Fini()
	})
}

// handleEvent applies an event and returns false when the user asked to quit
func (d *Display) handleEvent(ev tcell.Event, ctrl Controls) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		d.screen.Sync()
	case *tcell.EventKey:
		return d.handleKey(ev, ctrl)
	}
	return true
}

func (d *Display) handleKey(ev *tcell.EventKey, ctrl Controls) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyTab:
		d.showPanel = !d.showPanel
		return true
	case tcell.KeyLeft:
		ctrl.AdjustSpeed(-d.speedStep)
		return true
	case tcell.KeyRight:
		ctrl.AdjustSpeed(d.speedStep)
		return true
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			return ev.Rune() != 'c'
		}
		return d.handleRune(ev.Rune(), ctrl)
	}

	if ev.Key() >= tcell.KeyF1 && ev.Key() <= tcell.KeyF64 {
		if i := int(ev.Key() - tcell.KeyF1); i < len(d.presets) {
			if err := ctrl.ApplyPreset(d.presets[i].Name); err != nil {
				d.logger.Println("display:", err)
			}
		}
	}
	return true
}

func (d *Display) handleRune(r rune, ctrl Controls) bool {
	base := ctrl.State().Base
	red, green, blue := int(base.R), int(base.G), int(base.B)

	switch r {
	case 'q':
		return false
	case 'r':
		ctrl.SetRGB(red+d.channelStep, green, blue)
	case 'R':
		ctrl.SetRGB(red-d.channelStep, green, blue)
	case 'g':
		ctrl.SetRGB(red, green+d.channelStep, blue)
	case 'G':
		ctrl.SetRGB(red, green-d.channelStep, blue)
	case 'b':
		ctrl.SetRGB(red, green, blue+d.channelStep)
	case 'B':
		ctrl.SetRGB(red, green, blue-d.channelStep)
	case ' ', 'e':
		ctrl.NextEffect()
	case 's':
		ctrl.StopEffect()
	default:
		kinds := engine.Kinds()
		if i := int(r - '0'); i >= 0 && i < len(kinds) {
			ctrl.StartEffect(kinds[i], ctrl.State().Speed)
		}
	}
	return true
}
