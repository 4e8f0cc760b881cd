// Package panel reads a resistor-ladder button panel through the ADC
// sampler. Each button pulls the ADC to a known level; a press is reported
// after two consecutive matching polls and a hold after HoldDuration.
package panel

import (
	"log"
	"sync"
	"time"

	"github.com/wamphlett/softbox-controller/config"
	"github.com/wamphlett/softbox-controller/pkg/engine"
	"github.com/wamphlett/softbox-controller/pkg/sampler"
)

type button string

const (
	ButtonNone   button = "NONE"
	ButtonEffect button = "EFFECT"
	ButtonPreset button = "PRESET"
	ButtonFaster button = "FASTER"
	ButtonSlower button = "SLOWER"
)

// Controls is what the panel drives
type Controls interface {
	NextEffect()
	StopEffect()
	ApplyPreset(name string) error
	AdjustSpeed(delta int)
}

type buttonRegister struct {
	registerTime time.Time
	button       button
	accuracy     int
	held         bool
}

type targetRange struct {
	Button button
	upper  int
	lower  int
}

func (r *targetRange) InRange(input int) bool {
	return input >= r.lower && input <= r.upper
}

// Panel polls the sampler and turns button presses into controller calls
type Panel struct {
	reader sampler.Reader
	ctrl   Controls
	logger *log.Logger

	holdDuration time.Duration
	pollRate     time.Duration
	speedStep    int

	buttonRegister *buttonRegister
	targets        []*targetRange

	presets     []engine.Preset
	presetIndex int

	now       func() time.Time
	close     chan struct{}
	closeOnce sync.Once
}

// New configures a panel from the input config
func New(cfg *config.Input, reader sampler.Reader, ctrl Controls, logger *log.Logger) *Panel {
	p := &Panel{
		reader:       reader,
		ctrl:         ctrl,
		logger:       logger,
		holdDuration: cfg.HoldDuration,
		pollRate:     cfg.ReadRate,
		speedStep:    cfg.SpeedStep,
		presets:      engine.Presets(),
		presetIndex:  -1,
		now:          time.Now,
		close:        make(chan struct{}),
	}

	p.targets = configureButton(ButtonEffect, cfg.EffectTarget, cfg.TargetRange)
	p.targets = append(p.targets, configureButton(ButtonPreset, cfg.PresetTarget, cfg.TargetRange)...)
	p.targets = append(p.targets, configureButton(ButtonFaster, cfg.FasterTarget, cfg.TargetRange)...)
	p.targets = append(p.targets, configureButton(ButtonSlower, cfg.SlowerTarget, cfg.TargetRange)...)

	return p
}

// Start polls the sampler until Stop is called
func (p *Panel) Start() {
	ticker := time.NewTicker(p.pollRate)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.poll()
			case <-p.close:
				return
			}
		}
	}()
}

// Stop stops polling
func (p *Panel) Stop() {
	p.closeOnce.Do(func() { close(p.close) })
}

func (p *Panel) poll() {
	pollTime := p.now()
	result, ok := p.reader.Read()
	if !ok {
		return
	}

	for _, target := range p.targets {
		if !target.InRange(int(result)) {
			continue
		}

		if p.buttonRegister == nil || p.buttonRegister.button != target.Button {
			p.buttonRegister = &buttonRegister{
				registerTime: pollTime,
				button:       target.Button,
			}
		}
		// increase the accuracy
		p.buttonRegister.accuracy++

		if p.buttonRegister.accuracy == 2 {
			p.handlePress(target.Button)
		}

		// if the button was the same as the previous poll, check if its being held
		if !p.buttonRegister.held && pollTime.Sub(p.buttonRegister.registerTime) > p.holdDuration {
			p.handleHold(target.Button)
			p.buttonRegister.held = true
		}

		return
	}

	// if we haven't matched a button, set everything back to idle
	p.buttonRegister = nil
}

func (p *Panel) handlePress(b button) {
	switch b {
	case ButtonEffect:
		p.ctrl.NextEffect()
	case ButtonPreset:
		p.nextPreset()
	case ButtonFaster:
		p.ctrl.AdjustSpeed(-p.speedStep)
	case ButtonSlower:
		p.ctrl.AdjustSpeed(p.speedStep)
	}
	p.logger.Printf("panel: press %s", b)
}

func (p *Panel) handleHold(b button) {
	switch b {
	case ButtonEffect:
		p.ctrl.StopEffect()
	}
	p.logger.Printf("panel: hold %s", b)
}

func (p *Panel) nextPreset() {
	p.presetIndex = (p.presetIndex + 1) % len(p.presets)
	if err := p.ctrl.ApplyPreset(p.presets[p.presetIndex].Name); err != nil {
		p.logger.Println("panel:", err)
	}
}

func configureButton(b button, targets []int, tolerance int) []*targetRange {
	targetRanges := make([]*targetRange, len(targets))
	for i, target := range targets {
		targetRanges[i] = &targetRange{
			Button: b,
			lower:  target - tolerance,
			upper:  target + tolerance,
		}
	}
	return targetRanges
}
