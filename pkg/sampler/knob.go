package sampler

import (
	"sync"
	"time"

	"github.com/wamphlett/softbox-controller/pkg/engine"
)

// maxReading is the top of the scaled sampler range
const maxReading = 1000.0

// SpeedSetter receives knob positions as effect speeds
type SpeedSetter interface {
	SetSpeed(speedMS int)
}

// Reader is satisfied by Sampler
type Reader interface {
	Read() (float64, bool)
}

// Knob turns sampler readings into SetSpeed calls
type Knob struct {
	reader   Reader
	target   SpeedSetter
	readRate time.Duration
	deadBand int

	last     int
	stop     chan struct{}
	stopOnce sync.Once
}

// NewKnob returns a knob that polls reader every readRate and only reports
// speed changes of at least deadBand milliseconds
func NewKnob(reader Reader, target SpeedSetter, readRate time.Duration, deadBand int) *Knob {
	return &Knob{
		reader:   reader,
		target:   target,
		readRate: readRate,
		deadBand: deadBand,
		last:     -1,
		stop:     make(chan struct{}),
	}
}

// SpeedForReading maps a reading in [0,1000] linearly onto the engine speed range
func SpeedForReading(reading float64) int {
	if reading < 0 {
		reading = 0
	}
	if reading > maxReading {
		reading = maxReading
	}
	span := float64(engine.MaxSpeed - engine.MinSpeed)
	return engine.MinSpeed + int(reading/maxReading*span+0.5)
}

// Start polls the reader until Stop is called
func (k *Knob) Start() {
	ticker := time.NewTicker(k.readRate)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				k.poll()
			case <-k.stop:
				return
			}
		}
	}()
}

// Stop stops polling
func (k *Knob) Stop() {
	k.stopOnce.Do(func() { close(k.stop) })
}

func (k *Knob) poll() {
	reading, ok := k.reader.Read()
	if !ok {
		return
	}
	speed := SpeedForReading(reading)
	if k.last >= 0 && abs(speed-k.last) < k.deadBand {
		return
	}
	k.last = speed
	k.target.SetSpeed(speed)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
