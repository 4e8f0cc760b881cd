// Package sampler reads a potentiometer through an ADS1115 and turns it
// into an effect speed.
package sampler

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/grant-carpenter/go-ads"
)

// fullScale is the largest positive ADS reading
const fullScale = 32767.0

// ADC is the part of the ADS driver the sampler needs
type ADC interface {
	ReadRetry(retry int) (uint16, error)
	Close() error
}

// Open initialises the host and returns an ADS on the given I2C bus
func Open(bus string, address uint16) (*ads.ADS, error) {
	if err := ads.HostInit(); err != nil {
		return nil, fmt.Errorf("init host: %w", err)
	}

	a, err := ads.NewADS(bus, address, "")
	if err != nil {
		return nil, fmt.Errorf("open ads on %s@%#x: %w", bus, address, err)
	}
	a.SetConfigGain(ads.ConfigGain2_3)
	return a, nil
}

// sample records the current sample readings
type sample struct {
	sum   int
	count int
}

// Result returns the averaged reading since the last read
func (s *sample) Result() (float64, bool) {
	if s.count == 0 {
		return 0, false
	}
	return float64(s.sum / s.count), true
}

// Sampler averages ADC readings, scaled to [0,1000], between reads
type Sampler struct {
	sync.Mutex
	currentSample *sample
	adc           ADC
	err           error
	stopSignal    chan struct{}
	stopOnce      sync.Once
	pollRate      time.Duration
}

// New returns a Sampler reading adc every pollRate once started
func New(adc ADC, pollRate time.Duration) *Sampler {
	return &Sampler{
		currentSample: &sample{},
		adc:           adc,
		stopSignal:    make(chan struct{}),
		pollRate:      pollRate,
	}
}

// Start starts the sampler. A read error stops sampling and is kept for Err.
func (s *Sampler) Start() {
	ticker := time.NewTicker(s.pollRate)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := s.sample(); err != nil {
					return
				}
			case <-s.stopSignal:
				return
			}
		}
	}()
}

// Stop stops the sampler reading the ADC and closes it
func (s *Sampler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopSignal)
		s.Lock()
		defer s.Unlock()
		_ = s.adc.Close()
	})
}

// sample reads the ADC value and adds it to the sample data
func (s *Sampler) sample() error {
	s.Lock()
	defer s.Unlock()
	// read retry from ads chip
	keyResult, err := s.adc.ReadRetry(5)
	if err != nil {
		s.err = fmt.Errorf("read ads: %w", err)
		return s.err
	}

	s.currentSample.sum += int(math.Round(float64(keyResult) / fullScale * 1000.0))
	s.currentSample.count++
	return nil
}

// Read returns the averaged reading and resets it. ok is false when nothing
// was sampled since the previous read.
func (s *Sampler) Read() (reading float64, ok bool) {
	s.Lock()
	defer s.Unlock()

	reading, ok = s.currentSample.Result()
	s.currentSample = &sample{}
	return reading, ok
}

// Err returns the error that stopped sampling, if any
func (s *Sampler) Err() error {
	s.Lock()
	defer s.Unlock()
	return s.err
}
