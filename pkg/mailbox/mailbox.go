// Package mailbox hands colours from the goroutine that computes them to the
// goroutine that paints them. It holds at most one value: a newer colour
// replaces one that has not been read yet.
package mailbox

import (
	"sync"

	"github.com/wamphlett/softbox-controller/pkg/engine"
)

// Mailbox is a single-slot, latest-value-wins channel of colours
type Mailbox struct {
	mu     sync.Mutex
	ch     chan engine.Color
	closed bool
}

// New returns an empty open mailbox
func New() *Mailbox {
	return &Mailbox{ch: make(chan engine.Color, 1)}
}

// Post stores c, replacing any unread colour. It never blocks. Posting to a
// closed mailbox does nothing.
func (m *Mailbox) Post(c engine.Color) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	select {
	case <-m.ch:
	default:
	}
	m.ch <- c
}

// C returns the receive side. It is closed once Close has been called and
// the pending colour, if any, has been read.
func (m *Mailbox) C() <-chan engine.Color {
	return m.ch
}

// Close marks the surface as gone. It is safe to call more than once.
func (m *Mailbox) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	close(m.ch)
}

// Closed reports whether Close has been called
func (m *Mailbox) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
