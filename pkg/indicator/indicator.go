// Package indicator drives a status LED on a Raspberry Pi GPIO pin: lit
// while an effect is running, dark when the light is static.
package indicator

import (
	"fmt"
	"sync"

	"github.com/stianeikeland/go-rpio/v4"

	"github.com/wamphlett/softbox-controller/pkg/controller"
)

// Pin is the subset of rpio.Pin the indicator drives
type Pin interface {
	High()
	Low()
}

// Indicator implements controller.Publisher
type Indicator struct {
	mu  sync.Mutex
	pin Pin
	lit bool
}

// Open maps the GPIO memory and configures pin as an output
func Open(pin int) (*Indicator, error) {
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("open gpio: %w", err)
	}
	p := rpio.Pin(pin)
	p.Output()
	return New(p), nil
}

// New returns an indicator on an already configured pin, starting dark
func New(pin Pin) *Indicator {
	pin.Low()
	return &Indicator{pin: pin}
}

// Publish follows the running state of the controller
func (i *Indicator) Publish(event controller.Event, state controller.State) {
	i.mu.Lock()
	defer i.mu.Unlock()

	on := state.Running && event != controller.EventShutdown
	if on == i.lit {
		return
	}
	if on {
		i.pin.High()
	} else {
		i.pin.Low()
	}
	i.lit = on
}

// Close turns the LED off and releases the GPIO memory
func (i *Indicator) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.pin.Low()
	i.lit = false
	return rpio.Close()
}
