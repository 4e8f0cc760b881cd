package controller

import (
	"sync"
	"time"
)

// Scheduler calls a function on a fixed period. It is the host's timer.
type Scheduler interface {
	// Schedule replaces any running schedule with fn every period
	Schedule(every time.Duration, fn func())
	// Reset changes the period of the running schedule
	Reset(every time.Duration)
	// Stop cancels the running schedule. It must not wait for fn to return.
	Stop()
}

// TickerScheduler runs fn from a goroutine driven by a time.Ticker
type TickerScheduler struct {
	mu     sync.Mutex
	ticker *time.Ticker
	stop   chan struct{}
}

// NewTickerScheduler returns an idle scheduler
func NewTickerScheduler() *TickerScheduler {
	return &TickerScheduler{}
}

func (s *TickerScheduler) Schedule(every time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()

	ticker := time.NewTicker(every)
	stop := make(chan struct{})
	s.ticker, s.stop = ticker, stop

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				fn()
			case <-stop:
				return
			}
		}
	}()
}

func (s *TickerScheduler) Reset(every time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ticker != nil {
		s.ticker.Reset(every)
	}
}

func (s *TickerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *TickerScheduler) stopLocked() {
	if s.stop == nil {
		return
	}
	close(s.stop)
	s.stop = nil
	s.ticker = nil
}
